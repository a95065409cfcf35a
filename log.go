package qbit

import (
	"context"
	"net/url"
	"strconv"
)

// LogLevel is the severity bitmask of a main log entry.
type LogLevel int

const (
	LogLevelNormal   LogLevel = 1
	LogLevelInfo     LogLevel = 2
	LogLevelWarning  LogLevel = 4
	LogLevelCritical LogLevel = 8
)

func (l LogLevel) String() string {
	switch l {
	case LogLevelNormal:
		return "normal"
	case LogLevelInfo:
		return "info"
	case LogLevelWarning:
		return "warning"
	case LogLevelCritical:
		return "critical"
	}
	return "unknown"
}

// Log is one entry of log/main.
type Log struct {
	ID        int64    `json:"id"`
	Message   string   `json:"message"`
	Timestamp int64    `json:"timestamp"`
	Type      LogLevel `json:"type"`
}

// PeerLog is one entry of log/peers.
type PeerLog struct {
	ID        int64  `json:"id"`
	IP        string `json:"ip"`
	Timestamp int64  `json:"timestamp"`
	Blocked   bool   `json:"blocked"`
	Reason    string `json:"reason"`
}

// GetLogsOptions filters log/main. The level switches are pointers because
// the daemon defaults them to true: only an explicit false suppresses a
// level.
type GetLogsOptions struct {
	Normal      *bool
	Info        *bool
	Warning     *bool
	Critical    *bool
	LastKnownID int64
}

func (o *GetLogsOptions) values() url.Values {
	params := url.Values{}
	if o == nil {
		return params
	}
	if o.Normal != nil {
		params.Set("normal", strconv.FormatBool(*o.Normal))
	}
	if o.Info != nil {
		params.Set("info", strconv.FormatBool(*o.Info))
	}
	if o.Warning != nil {
		params.Set("warning", strconv.FormatBool(*o.Warning))
	}
	if o.Critical != nil {
		params.Set("critical", strconv.FormatBool(*o.Critical))
	}
	if o.LastKnownID != 0 {
		params.Set("last_known_id", strconv.FormatInt(o.LastKnownID, 10))
	}
	return params
}

// GetLogs returns main log entries newer than LastKnownID.
func (qb *Client) GetLogs(ctx context.Context, opts *GetLogsOptions) ([]Log, error) {
	var logs []Log
	if err := qb.getJSON(ctx, "log/main", opts.values(), nil, &logs); err != nil {
		return nil, err
	}
	return logs, nil
}

// GetPeerLogs returns peer log entries newer than lastKnownID.
func (qb *Client) GetPeerLogs(ctx context.Context, lastKnownID int64) ([]PeerLog, error) {
	query := url.Values{}
	if lastKnownID != 0 {
		query.Set("last_known_id", strconv.FormatInt(lastKnownID, 10))
	}

	var logs []PeerLog
	if err := qb.getJSON(ctx, "log/peers", query, nil, &logs); err != nil {
		return nil, err
	}
	return logs, nil
}
