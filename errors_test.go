package qbit

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"testing"
)

func fakeResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

func TestMapStatus(t *testing.T) {
	endpointCodes := statusMap{
		http.StatusNotFound:  APIErrorCodeTorrentNotFound,
		http.StatusForbidden: APIErrorCodeNoWriteAccess,
	}

	tests := []struct {
		name   string
		status int
		m      statusMap
		check  func(t *testing.T, err error)
	}{
		{
			name:   "2xx is not an error",
			status: http.StatusOK,
			m:      endpointCodes,
			check: func(t *testing.T, err error) {
				if err != nil {
					t.Errorf("Expected nil, got %v", err)
				}
			},
		},
		{
			name:   "endpoint code wins",
			status: http.StatusNotFound,
			m:      endpointCodes,
			check: func(t *testing.T, err error) {
				var apiErr *APIError
				if !errors.As(err, &apiErr) {
					t.Fatalf("Expected an APIError, got %v", err)
				}
				if apiErr.Code != APIErrorCodeTorrentNotFound {
					t.Errorf("Expected TORRENT_NOT_FOUND, got %s", apiErr.Code)
				}
				if apiErr.Status != http.StatusNotFound {
					t.Errorf("Expected status 404, got %d", apiErr.Status)
				}
			},
		},
		{
			name:   "endpoint 403 overrides the session rule",
			status: http.StatusForbidden,
			m:      endpointCodes,
			check: func(t *testing.T, err error) {
				var apiErr *APIError
				if !errors.As(err, &apiErr) {
					t.Fatalf("Expected an APIError, got %v", err)
				}
				if apiErr.Code != APIErrorCodeNoWriteAccess {
					t.Errorf("Expected NO_WRITE_ACCESS, got %s", apiErr.Code)
				}
			},
		},
		{
			name:   "unmapped 403 means not logged in",
			status: http.StatusForbidden,
			m:      nil,
			check: func(t *testing.T, err error) {
				if !errors.Is(err, ErrNotLoggedIn) {
					t.Errorf("Expected ErrNotLoggedIn, got %v", err)
				}
			},
		},
		{
			name:   "unmapped status keeps the body",
			status: http.StatusInternalServerError,
			m:      endpointCodes,
			check: func(t *testing.T, err error) {
				var statusErr *StatusError
				if !errors.As(err, &statusErr) {
					t.Fatalf("Expected a StatusError, got %v", err)
				}
				if statusErr.Status != http.StatusInternalServerError {
					t.Errorf("Expected status 500, got %d", statusErr.Status)
				}
				if !bytes.Equal(statusErr.Body, []byte("boom")) {
					t.Errorf("Expected body to be kept, got %q", statusErr.Body)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, mapStatus(fakeResponse(tt.status, "boom"), tt.m))
		})
	}
}

func TestAPIErrorSentinels(t *testing.T) {
	wrapped := fmt.Errorf("login: %w", &APIError{Code: APIErrorCodeIPBanned, Status: http.StatusForbidden})
	if !errors.Is(wrapped, ErrIPBanned) {
		t.Error("Expected a wrapped IP ban to match ErrIPBanned")
	}
	if errors.Is(wrapped, ErrNotLoggedIn) {
		t.Error("Different codes must not match")
	}

	// Status is informational and must not affect matching.
	if !errors.Is(&APIError{Code: APIErrorCodeNotLoggedIn}, ErrNotLoggedIn) {
		t.Error("Expected matching to ignore the status")
	}
}

func TestIsAuthError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"ip banned", ErrIPBanned, true},
		{"not logged in", fmt.Errorf("call: %w", ErrNotLoggedIn), true},
		{"bad credentials", ErrBadCredentials, true},
		{"torrent not found", &APIError{Code: APIErrorCodeTorrentNotFound}, false},
		{"plain error", errors.New("boom"), false},
		{"nil", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsAuthError(tt.err); got != tt.want {
				t.Errorf("IsAuthError() = %v, expected %v", got, tt.want)
			}
		})
	}
}

func TestIsNotFound(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"torrent not found", &APIError{Code: APIErrorCodeTorrentNotFound, Status: 404}, true},
		{"category not found", &APIError{Code: APIErrorCodeCategoryNotFound, Status: 409}, true},
		{"wrapped", fmt.Errorf("torrent aaa: %w", &APIError{Code: APIErrorCodeTorrentNotFound}), true},
		{"auth failure", ErrNotLoggedIn, false},
		{"status error", &StatusError{Status: 404}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsNotFound(tt.err); got != tt.want {
				t.Errorf("IsNotFound() = %v, expected %v", got, tt.want)
			}
		})
	}
}

func TestIsRetryableError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"api error", ErrNotLoggedIn, false},
		{"decode error", &DecodeError{Body: []byte("<html>"), Err: errors.New("invalid character")}, false},
		{"bad gateway", &StatusError{Status: http.StatusBadGateway}, true},
		{"service unavailable", &StatusError{Status: http.StatusServiceUnavailable}, true},
		{"gateway timeout", &StatusError{Status: http.StatusGatewayTimeout}, true},
		{"internal server error", &StatusError{Status: http.StatusInternalServerError}, false},
		{"deadline exceeded", context.DeadlineExceeded, true},
		{"wrapped deadline", fmt.Errorf("send: %w", context.DeadlineExceeded), true},
		{"dns timeout", &net.DNSError{IsTimeout: true}, true},
		{"dns not found", &net.DNSError{IsNotFound: true}, false},
		{"connection refused", &net.OpError{Op: "dial", Err: errors.New("connect: connection refused")}, true},
		{"url error wrapping refused", &url.Error{Op: "Post", URL: "http://x", Err: &net.OpError{Op: "dial", Err: errors.New("connect: connection refused")}}, true},
		{"plain error", errors.New("boom"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsRetryableError(tt.err); got != tt.want {
				t.Errorf("IsRetryableError() = %v, expected %v", got, tt.want)
			}
		})
	}
}

func TestDecodeErrorUnwrap(t *testing.T) {
	cause := errors.New("unexpected end of JSON input")
	err := &DecodeError{Body: []byte("{"), Err: cause}
	if !errors.Is(err, cause) {
		t.Error("Expected DecodeError to unwrap to its cause")
	}
	if !strings.Contains(err.Error(), "decoding") {
		t.Errorf("Unexpected message %q", err.Error())
	}
}
