package qbit

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/George-Miao/qbit/request"
)

// DefaultTimeout is applied to the underlying http.Client when the caller
// does not supply one.
const DefaultTimeout = 30 * time.Second

// Client talks to one qBittorrent daemon. Methods map one-to-one onto the
// Web API; the only state shared between calls is the session cookie.
type Client struct {
	endpoint   string
	client     *http.Client
	credential *Credential
	basicAuth  *Credential
	logger     zerolog.Logger

	mu     sync.RWMutex
	cookie string
}

// New creates a Client for the daemon at endpoint, logging in with the given
// username and password on the first call that needs a session.
func New(endpoint, username, password string) (*Client, error) {
	return NewBuilder().
		Endpoint(endpoint).
		Credential(username, password).
		Build()
}

// NewWithCookie creates a Client that resumes an existing session. With no
// credential stored, an expired cookie cannot be refreshed: calls fail with
// ErrNotLoggedIn instead of re-logging in.
func NewWithCookie(endpoint, cookie string) (*Client, error) {
	return NewBuilder().
		Endpoint(endpoint).
		Cookie(cookie).
		Build()
}

// Cookie returns the current session cookie, or false when not logged in.
func (qb *Client) Cookie() (string, bool) {
	qb.mu.RLock()
	defer qb.mu.RUnlock()
	return qb.cookie, qb.cookie != ""
}

func (qb *Client) setCookie(cookie string) {
	qb.mu.Lock()
	qb.cookie = cookie
	qb.mu.Unlock()
}

// Login authenticates against auth/login and caches the session cookie.
// A cached cookie is reused unless force is set. Exactly one attempt is
// made; the caller decides whether a failure is worth retrying.
func (qb *Client) Login(ctx context.Context, force bool) error {
	if !force {
		if _, ok := qb.Cookie(); ok {
			return nil
		}
	}

	if qb.credential == nil {
		return ErrNotLoggedIn
	}

	data := url.Values{
		"username": {qb.credential.Username},
		"password": {qb.credential.Password},
	}

	resp, err := request.Do(ctx, qb.client, http.MethodPost,
		fmt.Sprintf("%s/api/v2/auth/login", qb.endpoint),
		request.WithForm(data),
		qb.withBasicAuth(),
	)
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusForbidden {
		return ErrIPBanned
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("error reading login response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return &StatusError{Status: resp.StatusCode, Body: body}
	}

	// The daemon answers 200 with a literal "Fails." body on bad credentials.
	if strings.TrimSpace(string(body)) == "Fails." {
		return ErrBadCredentials
	}

	for _, cookie := range resp.Cookies() {
		if cookie.Name == "SID" {
			qb.setCookie(cookie.Name + "=" + cookie.Value)
			qb.logger.Debug().Str("endpoint", qb.endpoint).Msg("logged in")
			return nil
		}
	}

	return &BadResponseError{Explain: "login response carried no SID cookie"}
}

// Logout tears the session down. The local cookie is dropped even if the
// daemon call fails.
func (qb *Client) Logout(ctx context.Context) error {
	cookie, ok := qb.Cookie()
	qb.setCookie("")
	if !ok {
		return nil
	}

	resp, err := request.Do(ctx, qb.client, http.MethodPost,
		fmt.Sprintf("%s/api/v2/auth/logout", qb.endpoint),
		request.WithForm(url.Values{}),
		request.WithCookie(cookie),
		qb.withBasicAuth(),
	)
	if err != nil {
		return fmt.Errorf("logout failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return &StatusError{Status: resp.StatusCode, Body: body}
	}

	qb.logger.Debug().Str("endpoint", qb.endpoint).Msg("logged out")
	return nil
}

func (qb *Client) withBasicAuth() request.Option {
	if qb.basicAuth == nil {
		return func(*request.Options) {}
	}
	return request.WithBasicAuth(qb.basicAuth.Username, qb.basicAuth.Password)
}

// do sends one request to an api/v2 path and returns the full response body.
// The session rules live here: log in first if no cookie is cached, and on a
// 403 drop the cookie, re-login once and retry the call once. A second 403
// surfaces as ErrNotLoggedIn rather than looping.
func (qb *Client) do(ctx context.Context, method, path string, m statusMap, opts ...request.Option) ([]byte, error) {
	if _, ok := qb.Cookie(); !ok && qb.credential != nil {
		if err := qb.Login(ctx, false); err != nil {
			return nil, err
		}
	}

	resp, err := qb.send(ctx, method, path, opts)
	if err != nil {
		return nil, err
	}

	// A 403 normally means the session died, but some endpoints overload it
	// (setLocation uses it for missing write access). An explicit mapping
	// wins over the re-login rule.
	_, overloaded := m[http.StatusForbidden]

	if resp.StatusCode == http.StatusForbidden && !overloaded {
		resp.Body.Close()
		qb.setCookie("")

		if qb.credential == nil {
			return nil, ErrNotLoggedIn
		}

		qb.logger.Debug().Str("path", path).Msg("session rejected, re-logging in")
		if err := qb.Login(ctx, true); err != nil {
			return nil, err
		}

		resp, err = qb.send(ctx, method, path, opts)
		if err != nil {
			return nil, err
		}
		if resp.StatusCode == http.StatusForbidden {
			resp.Body.Close()
			qb.setCookie("")
			return nil, ErrNotLoggedIn
		}
	}

	defer resp.Body.Close()

	if err := mapStatus(resp, m); err != nil {
		return nil, fmt.Errorf("%s failed: %w", path, err)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading response body: %w", err)
	}

	qb.logger.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Msg("request done")

	return body, nil
}

func (qb *Client) send(ctx context.Context, method, path string, opts []request.Option) (*http.Response, error) {
	cookie, _ := qb.Cookie()

	all := make([]request.Option, 0, len(opts)+2)
	all = append(all, request.WithCookie(cookie), qb.withBasicAuth())
	all = append(all, opts...)

	return request.Do(ctx, qb.client, method,
		fmt.Sprintf("%s/api/v2/%s", qb.endpoint, path), all...)
}

// get issues a GET with optional query parameters.
func (qb *Client) get(ctx context.Context, path string, query url.Values, m statusMap) ([]byte, error) {
	opts := []request.Option{}
	if len(query) > 0 {
		opts = append(opts, request.WithQuery(query))
	}
	return qb.do(ctx, http.MethodGet, path, m, opts...)
}

// postForm issues a form-encoded POST.
func (qb *Client) postForm(ctx context.Context, path string, form url.Values, m statusMap) ([]byte, error) {
	if form == nil {
		form = url.Values{}
	}
	return qb.do(ctx, http.MethodPost, path, m, request.WithForm(form))
}

// getJSON issues a GET and decodes the JSON body into out.
func (qb *Client) getJSON(ctx context.Context, path string, query url.Values, m statusMap, out any) error {
	body, err := qb.get(ctx, path, query, m)
	if err != nil {
		return err
	}
	return decodeJSON(body, out)
}

// postJSON issues a form POST and decodes the JSON body into out.
func (qb *Client) postJSON(ctx context.Context, path string, form url.Values, m statusMap, out any) error {
	body, err := qb.postForm(ctx, path, form, m)
	if err != nil {
		return err
	}
	return decodeJSON(body, out)
}

func decodeJSON(body []byte, out any) error {
	if err := json.Unmarshal(body, out); err != nil {
		return &DecodeError{Body: body, Err: err}
	}
	return nil
}
