package qbit

import (
	"context"
	"net/url"
	"strconv"
	"strings"
)

// ConnectionStatus is the daemon's global connectivity as reported by
// transfer/info. Tokens from newer daemon versions decode without error.
type ConnectionStatus string

const (
	ConnectionStatusConnected    ConnectionStatus = "connected"
	ConnectionStatusFirewalled   ConnectionStatus = "firewalled"
	ConnectionStatusDisconnected ConnectionStatus = "disconnected"
)

// TransferInfo is the payload of transfer/info.
type TransferInfo struct {
	DlInfoSpeed      int64            `json:"dl_info_speed"`
	DlInfoData       int64            `json:"dl_info_data"`
	UpInfoSpeed      int64            `json:"up_info_speed"`
	UpInfoData       int64            `json:"up_info_data"`
	DlRateLimit      int64            `json:"dl_rate_limit"`
	UpRateLimit      int64            `json:"up_rate_limit"`
	DHTNodes         int64            `json:"dht_nodes"`
	ConnectionStatus ConnectionStatus `json:"connection_status"`
}

// GetTransferInfo returns the global transfer statistics.
func (qb *Client) GetTransferInfo(ctx context.Context) (*TransferInfo, error) {
	var info TransferInfo
	if err := qb.getJSON(ctx, "transfer/info", nil, nil, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// GetSpeedLimitsMode reports whether the alternative speed limits are active.
func (qb *Client) GetSpeedLimitsMode(ctx context.Context) (bool, error) {
	body, err := qb.get(ctx, "transfer/speedLimitsMode", nil, nil)
	if err != nil {
		return false, err
	}
	return strings.TrimSpace(string(body)) == "1", nil
}

// ToggleSpeedLimitsMode switches between the normal and alternative speed
// limits.
func (qb *Client) ToggleSpeedLimitsMode(ctx context.Context) error {
	_, err := qb.postForm(ctx, "transfer/toggleSpeedLimitsMode", nil, nil)
	return err
}

// GetDownloadLimit returns the global download limit in bytes/s. Zero means
// unlimited.
func (qb *Client) GetDownloadLimit(ctx context.Context) (int64, error) {
	return qb.getLimit(ctx, "transfer/downloadLimit")
}

// SetDownloadLimit changes the global download limit in bytes/s. Zero removes
// the limit.
func (qb *Client) SetDownloadLimit(ctx context.Context, limit int64) error {
	form := url.Values{"limit": {strconv.FormatInt(limit, 10)}}
	_, err := qb.postForm(ctx, "transfer/setDownloadLimit", form, nil)
	return err
}

// GetUploadLimit returns the global upload limit in bytes/s. Zero means
// unlimited.
func (qb *Client) GetUploadLimit(ctx context.Context) (int64, error) {
	return qb.getLimit(ctx, "transfer/uploadLimit")
}

// SetUploadLimit changes the global upload limit in bytes/s. Zero removes the
// limit.
func (qb *Client) SetUploadLimit(ctx context.Context, limit int64) error {
	form := url.Values{"limit": {strconv.FormatInt(limit, 10)}}
	_, err := qb.postForm(ctx, "transfer/setUploadLimit", form, nil)
	return err
}

// BanPeers blocks the given host:port peers daemon-wide.
func (qb *Client) BanPeers(ctx context.Context, peers ...string) error {
	form := url.Values{"peers": {strings.Join(peers, "|")}}
	_, err := qb.postForm(ctx, "transfer/banPeers", form, nil)
	return err
}

func (qb *Client) getLimit(ctx context.Context, path string) (int64, error) {
	body, err := qb.get(ctx, path, nil, nil)
	if err != nil {
		return 0, err
	}
	limit, err := strconv.ParseInt(strings.TrimSpace(string(body)), 10, 64)
	if err != nil {
		return 0, &DecodeError{Body: body, Err: err}
	}
	return limit, nil
}
