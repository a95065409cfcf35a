package qbit

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
)

// GetVersion returns the daemon version, e.g. "v4.6.3".
func (qb *Client) GetVersion(ctx context.Context) (string, error) {
	body, err := qb.get(ctx, "app/version", nil, nil)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// GetWebAPIVersion returns the Web API version, e.g. "2.9.3".
func (qb *Client) GetWebAPIVersion(ctx context.Context) (string, error) {
	body, err := qb.get(ctx, "app/webapiVersion", nil, nil)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// GetBuildInfo returns the libraries the daemon was built against.
func (qb *Client) GetBuildInfo(ctx context.Context) (*BuildInfo, error) {
	var info BuildInfo
	if err := qb.getJSON(ctx, "app/buildInfo", nil, nil, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// Shutdown asks the daemon to exit. The session dies with it.
func (qb *Client) Shutdown(ctx context.Context) error {
	_, err := qb.postForm(ctx, "app/shutdown", nil, nil)
	if err != nil {
		return err
	}
	qb.setCookie("")
	return nil
}

// GetPreferences fetches the full daemon configuration.
func (qb *Client) GetPreferences(ctx context.Context) (*Preferences, error) {
	var prefs Preferences
	if err := qb.getJSON(ctx, "app/preferences", nil, nil, &prefs); err != nil {
		return nil, err
	}
	return &prefs, nil
}

// SetPreferences applies a partial configuration update. Only the fields set
// on prefs are serialized; everything else keeps its current daemon-side
// value.
func (qb *Client) SetPreferences(ctx context.Context, prefs *Preferences) error {
	payload, err := json.Marshal(prefs)
	if err != nil {
		return fmt.Errorf("failed to marshal preferences: %w", err)
	}

	form := url.Values{"json": {string(payload)}}
	_, err = qb.postForm(ctx, "app/setPreferences", form, nil)
	return err
}

// GetDefaultSavePath returns the default directory for new torrents.
func (qb *Client) GetDefaultSavePath(ctx context.Context) (string, error) {
	body, err := qb.get(ctx, "app/defaultSavePath", nil, nil)
	if err != nil {
		return "", err
	}
	return string(body), nil
}
