package qbit

import (
	"net/url"
	"strconv"
	"strings"
)

// State is the torrent state token reported by the daemon. Unknown tokens
// from newer daemon versions decode without error.
type State string

const (
	// StateError: some error occurred, applies to paused torrents
	StateError State = "error"

	// StateMissingFiles: torrent data files are missing
	StateMissingFiles State = "missingFiles"

	// StateUploading: torrent is being seeded and data is being transferred
	StateUploading State = "uploading"

	// StatePausedUP: torrent is paused and has finished downloading
	StatePausedUP State = "pausedUP"

	// StateQueuedUP: queueing is enabled and torrent is queued for upload
	StateQueuedUP State = "queuedUP"

	// StateStalledUP: torrent is being seeded, but no connections were made
	StateStalledUP State = "stalledUP"

	// StateCheckingUP: torrent has finished downloading and is being checked
	StateCheckingUP State = "checkingUP"

	// StateForcedUP: torrent is forced to upload and ignores the queue limit
	StateForcedUP State = "forcedUP"

	// StateAllocating: torrent is allocating disk space for download
	StateAllocating State = "allocating"

	// StateDownloading: torrent is being downloaded and data is being transferred
	StateDownloading State = "downloading"

	// StateMetaDL: torrent has just started downloading and is fetching metadata
	StateMetaDL State = "metaDL"

	// StatePausedDL: torrent is paused and has not finished downloading
	StatePausedDL State = "pausedDL"

	// StateQueuedDL: queueing is enabled and torrent is queued for download
	StateQueuedDL State = "queuedDL"

	// StateStalledDL: torrent is being downloaded, but no connections were made
	StateStalledDL State = "stalledDL"

	// StateCheckingDL: torrent has not finished downloading and is being checked
	StateCheckingDL State = "checkingDL"

	// StateForcedDL: torrent is forced to download and ignores the queue limit
	StateForcedDL State = "forcedDL"

	// StateCheckingResumeData: checking resume data on daemon startup
	StateCheckingResumeData State = "checkingResumeData"

	// StateMoving: torrent is moving to another location
	StateMoving State = "moving"

	// StateUnknown: unknown status
	StateUnknown State = "unknown"
)

// TorrentFilter narrows torrents/info listings.
type TorrentFilter string

const (
	FilterAll                TorrentFilter = "all"
	FilterDownloading        TorrentFilter = "downloading"
	FilterCompleted          TorrentFilter = "completed"
	FilterPaused             TorrentFilter = "paused"
	FilterActive             TorrentFilter = "active"
	FilterInactive           TorrentFilter = "inactive"
	FilterResumed            TorrentFilter = "resumed"
	FilterStalled            TorrentFilter = "stalled"
	FilterStalledUploading   TorrentFilter = "stalledUploading"
	FilterStalledDownloading TorrentFilter = "stalledDownloading"
	FilterErrored            TorrentFilter = "errored"
)

// Priority is a per-file download priority.
type Priority int

const (
	PriorityDoNotDownload Priority = 0
	PriorityNormal        Priority = 1
	PriorityHigh          Priority = 6
	PriorityMaximal       Priority = 7
)

// PieceState is the download state of a single piece.
type PieceState int

const (
	PieceNotDownloaded PieceState = 0
	PieceDownloading   PieceState = 1
	PieceDownloaded    PieceState = 2
)

// Torrent is one entry of torrents/info.
type Torrent struct {
	AddedOn            int64   `json:"added_on"`
	AmountLeft         int64   `json:"amount_left"`
	AutoTMM            bool    `json:"auto_tmm"`
	Availability       float64 `json:"availability"`
	Category           string  `json:"category"`
	Completed          int64   `json:"completed"`
	CompletionOn       int64   `json:"completion_on"`
	ContentPath        string  `json:"content_path"`
	DlLimit            int64   `json:"dl_limit"`
	Dlspeed            int64   `json:"dlspeed"`
	Downloaded         int64   `json:"downloaded"`
	DownloadedSession  int64   `json:"downloaded_session"`
	Eta                int64   `json:"eta"`
	FirstLastPiecePrio bool    `json:"f_l_piece_prio"`
	ForceStart         bool    `json:"force_start"`
	Hash               string  `json:"hash"`
	InfohashV1         string  `json:"infohash_v1"`
	InfohashV2         string  `json:"infohash_v2"`
	LastActivity       int64   `json:"last_activity"`
	MagnetURI          string  `json:"magnet_uri"`
	MaxRatio           float64 `json:"max_ratio"`
	MaxSeedingTime     int64   `json:"max_seeding_time"`
	Name               string  `json:"name"`
	NumComplete        int64   `json:"num_complete"`
	NumIncomplete      int64   `json:"num_incomplete"`
	NumLeechs          int64   `json:"num_leechs"`
	NumSeeds           int64   `json:"num_seeds"`
	Priority           int64   `json:"priority"`
	Progress           float64 `json:"progress"`
	Ratio              float64 `json:"ratio"`
	RatioLimit         float64 `json:"ratio_limit"`
	SavePath           string  `json:"save_path"`
	SeedingTime        int64   `json:"seeding_time"`
	SeedingTimeLimit   int64   `json:"seeding_time_limit"`
	SeenComplete       int64   `json:"seen_complete"`
	SeqDl              bool    `json:"seq_dl"`
	Size               int64   `json:"size"`
	State              State   `json:"state"`
	SuperSeeding       bool    `json:"super_seeding"`
	Tags               string  `json:"tags"`
	TimeActive         int64   `json:"time_active"`
	TotalSize          int64   `json:"total_size"`
	Tracker            string  `json:"tracker"`
	UpLimit            int64   `json:"up_limit"`
	Uploaded           int64   `json:"uploaded"`
	UploadedSession    int64   `json:"uploaded_session"`
	Upspeed            int64   `json:"upspeed"`
}

// TorrentProperties is the payload of torrents/properties.
type TorrentProperties struct {
	SavePath               string  `json:"save_path"`
	CreationDate           int64   `json:"creation_date"`
	PieceSize              int64   `json:"piece_size"`
	Comment                string  `json:"comment"`
	TotalWasted            int64   `json:"total_wasted"`
	TotalUploaded          int64   `json:"total_uploaded"`
	TotalUploadedSession   int64   `json:"total_uploaded_session"`
	TotalDownloaded        int64   `json:"total_downloaded"`
	TotalDownloadedSession int64   `json:"total_downloaded_session"`
	UpLimit                int64   `json:"up_limit"`
	DlLimit                int64   `json:"dl_limit"`
	TimeElapsed            int64   `json:"time_elapsed"`
	SeedingTime            int64   `json:"seeding_time"`
	NbConnections          int64   `json:"nb_connections"`
	NbConnectionsLimit     int64   `json:"nb_connections_limit"`
	ShareRatio             float64 `json:"share_ratio"`
	AdditionDate           int64   `json:"addition_date"`
	CompletionDate         int64   `json:"completion_date"`
	CreatedBy              string  `json:"created_by"`
	DlSpeedAvg             int64   `json:"dl_speed_avg"`
	DlSpeed                int64   `json:"dl_speed"`
	Eta                    int64   `json:"eta"`
	LastSeen               int64   `json:"last_seen"`
	Peers                  int64   `json:"peers"`
	PeersTotal             int64   `json:"peers_total"`
	PiecesHave             int64   `json:"pieces_have"`
	PiecesNum              int64   `json:"pieces_num"`
	Reannounce             int64   `json:"reannounce"`
	Seeds                  int64   `json:"seeds"`
	SeedsTotal             int64   `json:"seeds_total"`
	TotalSize              int64   `json:"total_size"`
	UpSpeedAvg             int64   `json:"up_speed_avg"`
	UpSpeed                int64   `json:"up_speed"`
}

// TorrentContent is one file entry of torrents/files.
type TorrentContent struct {
	Index        int64    `json:"index"`
	Name         string   `json:"name"`
	Size         int64    `json:"size"`
	Progress     float64  `json:"progress"`
	Priority     Priority `json:"priority"`
	IsSeed       bool     `json:"is_seed"`
	PieceRange   []int64  `json:"piece_range"`
	Availability float64  `json:"availability"`
}

// GetTorrentListOptions narrows and pages torrents/info results. Category and
// Tag are pointers because the empty string is meaningful: it selects
// uncategorized and untagged torrents.
type GetTorrentListOptions struct {
	Filter   TorrentFilter
	Category *string
	Tag      *string
	Sort     string
	Reverse  bool
	Limit    int
	Offset   int
	Hashes   []string
}

func (o *GetTorrentListOptions) values() url.Values {
	params := url.Values{}
	if o == nil {
		return params
	}
	if o.Filter != "" {
		params.Set("filter", string(o.Filter))
	}
	if o.Category != nil {
		params.Set("category", *o.Category)
	}
	if o.Tag != nil {
		params.Set("tag", *o.Tag)
	}
	if o.Sort != "" {
		params.Set("sort", o.Sort)
	}
	if o.Reverse {
		params.Set("reverse", "true")
	}
	if o.Limit > 0 {
		params.Set("limit", strconv.Itoa(o.Limit))
	}
	if o.Offset != 0 {
		params.Set("offset", strconv.Itoa(o.Offset))
	}
	if len(o.Hashes) > 0 {
		params.Set("hashes", strings.Join(o.Hashes, "|"))
	}
	return params
}

// TorrentFile is a raw .torrent payload for torrents/add uploads. InfoHash
// is filled by the NewTorrentFile constructors; a zero-value literal works
// fine for uploading without validation.
type TorrentFile struct {
	Filename string
	Data     []byte
	InfoHash string
}

// TorrentSource tells torrents/add what to download: remote URLs or magnet
// links, or raw .torrent files. The two cannot be mixed; build one with
// SourceURLs or SourceFiles.
type TorrentSource struct {
	urls  []string
	files []TorrentFile
}

// SourceURLs adds torrents from HTTP(S) URLs, magnet links or bare info-hashes.
func SourceURLs(urls ...string) TorrentSource {
	return TorrentSource{urls: urls}
}

// SourceFiles adds torrents from raw .torrent file contents.
func SourceFiles(files ...TorrentFile) TorrentSource {
	return TorrentSource{files: files}
}

// AddTorrentOptions are the optional fields of torrents/add. The zero value
// sends nothing and keeps the daemon defaults.
type AddTorrentOptions struct {
	SavePath           string
	Cookie             string
	Category           string
	Tags               []string
	SkipChecking       bool
	Paused             bool
	RootFolder         *bool
	Rename             string
	UploadLimit        int64
	DownloadLimit      int64
	RatioLimit         float64
	SeedingTimeLimit   int64
	AutoTMM            *bool
	SequentialDownload bool
	FirstLastPiecePrio bool
}

func (o *AddTorrentOptions) values() url.Values {
	params := url.Values{}
	if o == nil {
		return params
	}
	if o.SavePath != "" {
		params.Set("savepath", o.SavePath)
	}
	if o.Cookie != "" {
		params.Set("cookie", o.Cookie)
	}
	if o.Category != "" {
		params.Set("category", o.Category)
	}
	if len(o.Tags) > 0 {
		params.Set("tags", strings.Join(o.Tags, ","))
	}
	if o.SkipChecking {
		params.Set("skip_checking", "true")
	}
	if o.Paused {
		params.Set("paused", "true")
	}
	if o.RootFolder != nil {
		params.Set("root_folder", strconv.FormatBool(*o.RootFolder))
	}
	if o.Rename != "" {
		params.Set("rename", o.Rename)
	}
	if o.UploadLimit > 0 {
		params.Set("upLimit", strconv.FormatInt(o.UploadLimit, 10))
	}
	if o.DownloadLimit > 0 {
		params.Set("dlLimit", strconv.FormatInt(o.DownloadLimit, 10))
	}
	if o.RatioLimit > 0 {
		params.Set("ratioLimit", strconv.FormatFloat(o.RatioLimit, 'f', -1, 64))
	}
	if o.SeedingTimeLimit > 0 {
		params.Set("seedingTimeLimit", strconv.FormatInt(o.SeedingTimeLimit, 10))
	}
	if o.AutoTMM != nil {
		params.Set("autoTMM", strconv.FormatBool(*o.AutoTMM))
	}
	if o.SequentialDownload {
		params.Set("sequentialDownload", "true")
	}
	if o.FirstLastPiecePrio {
		params.Set("firstLastPiecePrio", "true")
	}
	return params
}

// Share limit values with special meaning to the daemon.
const (
	ShareLimitGlobal  = -2
	ShareLimitNone    = -1
)

// ShareLimits are the arguments of torrents/setShareLimits. Seeding times are
// minutes; use ShareLimitGlobal or ShareLimitNone for the special values.
type ShareLimits struct {
	RatioLimit               float64
	SeedingTimeLimit         int64
	InactiveSeedingTimeLimit int64
}

func (l ShareLimits) values() url.Values {
	params := url.Values{}
	params.Set("ratioLimit", strconv.FormatFloat(l.RatioLimit, 'f', -1, 64))
	params.Set("seedingTimeLimit", strconv.FormatInt(l.SeedingTimeLimit, 10))
	params.Set("inactiveSeedingTimeLimit", strconv.FormatInt(l.InactiveSeedingTimeLimit, 10))
	return params
}
