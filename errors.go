package qbit

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
)

// APIErrorCode identifies a daemon-reported failure for client-side handling
type APIErrorCode string

const (
	// APIErrorCodeIPBanned indicates the IP is banned for too many failed login attempts
	APIErrorCodeIPBanned APIErrorCode = "IP_BANNED"

	// APIErrorCodeNotLoggedIn indicates the route requires a login and the session is gone
	APIErrorCodeNotLoggedIn APIErrorCode = "NOT_LOGGED_IN"

	// APIErrorCodeBadCredentials indicates the username/password pair was rejected
	APIErrorCodeBadCredentials APIErrorCode = "BAD_CREDENTIALS"

	// APIErrorCodeTorrentNotFound indicates the given hash matches no torrent
	APIErrorCodeTorrentNotFound APIErrorCode = "TORRENT_NOT_FOUND"

	// APIErrorCodeTorrentNameEmpty indicates a rename was attempted with an empty name
	APIErrorCodeTorrentNameEmpty APIErrorCode = "TORRENT_NAME_EMPTY"

	// APIErrorCodeTorrentFileInvalid indicates the uploaded torrent file is not valid
	APIErrorCodeTorrentFileInvalid APIErrorCode = "TORRENT_FILE_INVALID"

	// APIErrorCodeInvalidTrackerURL indicates the new tracker URL is not valid
	APIErrorCodeInvalidTrackerURL APIErrorCode = "INVALID_TRACKER_URL"

	// APIErrorCodeConflictTrackerURL indicates the new URL already exists or the original was not found
	APIErrorCodeConflictTrackerURL APIErrorCode = "CONFLICT_TRACKER_URL"

	// APIErrorCodeInvalidPeers indicates none of the given peers are valid
	APIErrorCodeInvalidPeers APIErrorCode = "INVALID_PEERS"

	// APIErrorCodeQueueingDisabled indicates torrent queueing is not enabled
	APIErrorCodeQueueingDisabled APIErrorCode = "QUEUEING_DISABLED"

	// APIErrorCodeMetaNotDownloaded indicates the metadata is not ready or a file id was not found
	APIErrorCodeMetaNotDownloaded APIErrorCode = "META_NOT_DOWNLOADED"

	// APIErrorCodeSavePathEmpty indicates the save path is empty
	APIErrorCodeSavePathEmpty APIErrorCode = "SAVE_PATH_EMPTY"

	// APIErrorCodeNoWriteAccess indicates the daemon cannot write to the directory
	APIErrorCodeNoWriteAccess APIErrorCode = "NO_WRITE_ACCESS"

	// APIErrorCodeUnableToCreateDir indicates the save path directory could not be created
	APIErrorCodeUnableToCreateDir APIErrorCode = "UNABLE_TO_CREATE_DIR"

	// APIErrorCodeCategoryNotFound indicates the category name does not exist
	APIErrorCodeCategoryNotFound APIErrorCode = "CATEGORY_NOT_FOUND"

	// APIErrorCodeCategoryEditingFailed indicates the category could not be edited
	APIErrorCodeCategoryEditingFailed APIErrorCode = "CATEGORY_EDITING_FAILED"

	// APIErrorCodeInvalidPath indicates an invalid or already used file path in a rename
	APIErrorCodeInvalidPath APIErrorCode = "INVALID_PATH"
)

// APIError is a failure the daemon reported through a response status code.
type APIError struct {
	Code   APIErrorCode
	Status int
}

func (e *APIError) Error() string {
	message := strings.ToLower(strings.ReplaceAll(string(e.Code), "_", " "))
	if e.Status == 0 {
		return fmt.Sprintf("qbittorrent: %s", message)
	}
	return fmt.Sprintf("qbittorrent: %s (status %d)", message, e.Status)
}

// Is matches on the code alone so wrapped errors compare against the
// sentinels below with errors.Is.
func (e *APIError) Is(target error) bool {
	t, ok := target.(*APIError)
	return ok && t.Code == e.Code
}

// Sentinels for the auth failures every caller ends up checking.
var (
	ErrIPBanned       = &APIError{Code: APIErrorCodeIPBanned, Status: http.StatusForbidden}
	ErrNotLoggedIn    = &APIError{Code: APIErrorCodeNotLoggedIn, Status: http.StatusForbidden}
	ErrBadCredentials = &APIError{Code: APIErrorCodeBadCredentials, Status: http.StatusOK}
)

// StatusError is a non-2xx response with no specific meaning attached.
type StatusError struct {
	Status int
	Body   []byte
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("request failed. Status: %d, Response: %s", e.Status, e.Body)
}

// DecodeError is a failed JSON decode. Body keeps the raw payload so callers
// can inspect what the daemon actually sent.
type DecodeError struct {
	Body []byte
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("error decoding response: %v", e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// BadResponseError is a success response missing something the protocol
// requires, like a login answer without a session cookie.
type BadResponseError struct {
	Explain string
}

func (e *BadResponseError) Error() string {
	return fmt.Sprintf("bad response: %s", e.Explain)
}

// statusMap lists endpoint-specific status code meanings.
type statusMap map[int]APIErrorCode

// mapStatus converts a non-2xx response into a typed error. Endpoint-specific
// codes win, then the blanket 403 session rule, then a StatusError carrying
// the body. The body is only consumed on the StatusError path.
func mapStatus(resp *http.Response, m statusMap) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	if code, ok := m[resp.StatusCode]; ok {
		return &APIError{Code: code, Status: resp.StatusCode}
	}
	if resp.StatusCode == http.StatusForbidden {
		return &APIError{Code: APIErrorCodeNotLoggedIn, Status: resp.StatusCode}
	}
	body, _ := io.ReadAll(resp.Body)
	return &StatusError{Status: resp.StatusCode, Body: body}
}

// IsAuthError returns true if the error is a login or session failure
func IsAuthError(err error) bool {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	switch apiErr.Code {
	case APIErrorCodeIPBanned, APIErrorCodeNotLoggedIn, APIErrorCodeBadCredentials:
		return true
	}
	return false
}

// IsNotFound returns true if the error says the torrent or category does not exist
func IsNotFound(err error) bool {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	switch apiErr.Code {
	case APIErrorCodeTorrentNotFound, APIErrorCodeCategoryNotFound:
		return true
	}
	return false
}

// IsRetryableError returns true if the error is temporary and can be retried.
// Daemon-reported errors and decode failures are not; timeouts, transient
// network failures and upstream gateway hiccups are.
func IsRetryableError(err error) bool {
	if err == nil {
		return false
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return false
	}

	var decodeErr *DecodeError
	if errors.As(err, &decodeErr) {
		return false
	}

	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		switch statusErr.Status {
		case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
			return true
		}
		return false
	}

	return isTransientNetError(err)
}

// isTransientNetError classifies transport errors the way the net package
// reports them
func isTransientNetError(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	// Certificate problems need user intervention, never a retry
	var certErr *tls.CertificateVerificationError
	if errors.As(err, &certErr) {
		return false
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return dnsErr.IsTimeout || dnsErr.IsTemporary
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return opErr.Timeout() || strings.Contains(opErr.Error(), "connection refused")
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		if urlErr.Timeout() {
			return true
		}
		return isTransientNetError(urlErr.Err)
	}

	return false
}
