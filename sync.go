package qbit

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

// ServerState is the daemon-wide block of sync/maindata.
type ServerState struct {
	AllTimeDl            int64            `json:"alltime_dl"`
	AllTimeUl            int64            `json:"alltime_ul"`
	AverageTimeQueue     int64            `json:"average_time_queue"`
	ConnectionStatus     ConnectionStatus `json:"connection_status"`
	DHTNodes             int64            `json:"dht_nodes"`
	DlInfoData           int64            `json:"dl_info_data"`
	DlInfoSpeed          int64            `json:"dl_info_speed"`
	DlRateLimit          int64            `json:"dl_rate_limit"`
	FreeSpaceOnDisk      int64            `json:"free_space_on_disk"`
	GlobalRatio          string           `json:"global_ratio"`
	QueuedIOJobs         int64            `json:"queued_io_jobs"`
	Queueing             bool             `json:"queueing"`
	ReadCacheHits        string           `json:"read_cache_hits"`
	ReadCacheOverload    string           `json:"read_cache_overload"`
	RefreshInterval      int64            `json:"refresh_interval"`
	TotalBuffersSize     int64            `json:"total_buffers_size"`
	TotalPeerConnections int64            `json:"total_peer_connections"`
	TotalQueuedSize      int64            `json:"total_queued_size"`
	TotalWastedSession   int64            `json:"total_wasted_session"`
	UpInfoData           int64            `json:"up_info_data"`
	UpInfoSpeed          int64            `json:"up_info_speed"`
	UpRateLimit          int64            `json:"up_rate_limit"`
	UseAltSpeedLimits    bool             `json:"use_alt_speed_limits"`
	WriteCacheOverload   string           `json:"write_cache_overload"`
}

// MainData is the delta payload of sync/maindata. With FullUpdate set the
// maps carry the complete state; otherwise only what changed since the rid
// the caller sent.
type MainData struct {
	Rid               int64               `json:"rid"`
	FullUpdate        bool                `json:"full_update"`
	Torrents          map[string]Torrent  `json:"torrents"`
	TorrentsRemoved   []string            `json:"torrents_removed"`
	Categories        map[string]Category `json:"categories"`
	CategoriesRemoved []string            `json:"categories_removed"`
	Tags              []string            `json:"tags"`
	TagsRemoved       []string            `json:"tags_removed"`
	ServerState       *ServerState        `json:"server_state"`
}

// Peer is one connection of sync/torrentPeers.
type Peer struct {
	IP           string  `json:"ip"`
	Port         int     `json:"port"`
	Client       string  `json:"client"`
	Connection   string  `json:"connection"`
	Country      string  `json:"country"`
	CountryCode  string  `json:"country_code"`
	DlSpeed      int64   `json:"dl_speed"`
	UpSpeed      int64   `json:"up_speed"`
	Downloaded   int64   `json:"downloaded"`
	Uploaded     int64   `json:"uploaded"`
	Files        string  `json:"files"`
	Flags        string  `json:"flags"`
	FlagsDesc    string  `json:"flags_desc"`
	Progress     float64 `json:"progress"`
	Relevance    float64 `json:"relevance"`
	PeerIDClient string  `json:"peer_id_client"`
}

// TorrentPeers is the delta payload of sync/torrentPeers, keyed by
// "ip:port".
type TorrentPeers struct {
	Rid          int64           `json:"rid"`
	FullUpdate   bool            `json:"full_update"`
	ShowFlags    bool            `json:"show_flags"`
	Peers        map[string]Peer `json:"peers"`
	PeersRemoved []string        `json:"peers_removed"`
}

// SyncMainData fetches the daemon state delta since rid. Pass 0 for the
// initial full snapshot and feed back the returned Rid on subsequent calls.
func (qb *Client) SyncMainData(ctx context.Context, rid int64) (*MainData, error) {
	query := url.Values{"rid": {strconv.FormatInt(rid, 10)}}

	var data MainData
	if err := qb.getJSON(ctx, "sync/maindata", query, nil, &data); err != nil {
		return nil, err
	}
	return &data, nil
}

// SyncTorrentPeers fetches the peer list delta of one torrent since rid.
func (qb *Client) SyncTorrentPeers(ctx context.Context, hash string, rid int64) (*TorrentPeers, error) {
	query := url.Values{
		"hash": {hash},
		"rid":  {strconv.FormatInt(rid, 10)},
	}

	var peers TorrentPeers
	err := qb.getJSON(ctx, "sync/torrentPeers", query, statusMap{
		http.StatusNotFound: APIErrorCodeTorrentNotFound,
	}, &peers)
	if err != nil {
		return nil, err
	}
	return &peers, nil
}
