package qbit

import (
	"crypto/tls"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// Builder assembles a Client through chained configuration. Zero values fall
// back to sane defaults in Build.
type Builder struct {
	endpoint   string
	credential *Credential
	cookie     string
	basicAuth  *Credential
	client     *http.Client
	timeout    time.Duration
	skipVerify bool
	logger     *zerolog.Logger
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Endpoint sets the daemon base URL, e.g. "http://localhost:8080".
func (b *Builder) Endpoint(endpoint string) *Builder {
	b.endpoint = endpoint
	return b
}

// Credential sets the username/password pair used for auth/login.
func (b *Builder) Credential(username, password string) *Builder {
	b.credential = &Credential{Username: username, Password: password}
	return b
}

// Cookie seeds the session with a pre-obtained SID cookie. Accepts either the
// bare value or the "SID=..." form.
func (b *Builder) Cookie(cookie string) *Builder {
	if cookie != "" && !strings.Contains(cookie, "=") {
		cookie = "SID=" + cookie
	}
	b.cookie = cookie
	return b
}

// BasicAuth sets HTTP basic auth credentials for daemons behind a reverse
// proxy that demands them on top of the session cookie.
func (b *Builder) BasicAuth(username, password string) *Builder {
	b.basicAuth = &Credential{Username: username, Password: password}
	return b
}

// HTTPClient supplies the transport. Timeout and SkipTLSVerify are ignored
// when this is set.
func (b *Builder) HTTPClient(client *http.Client) *Builder {
	b.client = client
	return b
}

// Timeout bounds each request when Build constructs the http.Client itself.
func (b *Builder) Timeout(timeout time.Duration) *Builder {
	b.timeout = timeout
	return b
}

// SkipTLSVerify disables certificate verification, for daemons behind
// self-signed certificates.
func (b *Builder) SkipTLSVerify() *Builder {
	b.skipVerify = true
	return b
}

// Logger sets the structured logger. Defaults to a no-op logger.
func (b *Builder) Logger(logger zerolog.Logger) *Builder {
	b.logger = &logger
	return b
}

// Build validates the configuration and returns the Client.
func (b *Builder) Build() (*Client, error) {
	if b.endpoint == "" {
		return nil, errors.New("endpoint is required")
	}

	u, err := url.Parse(b.endpoint)
	if err != nil {
		return nil, errors.Wrap(err, "invalid endpoint")
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, errors.Errorf("unsupported endpoint scheme %q", u.Scheme)
	}

	if b.credential == nil && b.cookie == "" {
		return nil, errors.New("either a credential or a cookie is required")
	}

	client := b.client
	if client == nil {
		timeout := b.timeout
		if timeout == 0 {
			timeout = DefaultTimeout
		}
		client = &http.Client{Timeout: timeout}
		if b.skipVerify {
			client.Transport = &http.Transport{
				TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
			}
		}
	}

	logger := zerolog.Nop()
	if b.logger != nil {
		logger = *b.logger
	}

	return &Client{
		endpoint:   strings.TrimRight(b.endpoint, "/"),
		client:     client,
		credential: b.credential,
		basicAuth:  b.basicAuth,
		logger:     logger,
		cookie:     b.cookie,
	}, nil
}
