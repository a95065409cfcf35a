package qbit

import "strings"

// Credential is the username/password pair sent to auth/login.
type Credential struct {
	Username string
	Password string
}

// Hashes selects the torrents a bulk operation applies to: an explicit set of
// info-hashes, or every torrent through the "all" sentinel.
type Hashes struct {
	hashes []string
	all    bool
}

// HashesOf selects the given info-hashes.
func HashesOf(hashes ...string) Hashes {
	return Hashes{hashes: hashes}
}

// AllTorrents selects every torrent known to the daemon.
func AllTorrents() Hashes {
	return Hashes{all: true}
}

// String renders the wire form: "all" or a "|"-joined hash list.
func (h Hashes) String() string {
	if h.all {
		return "all"
	}
	return strings.Join(h.hashes, "|")
}

// Category groups torrents under a shared save path.
type Category struct {
	Name     string `json:"name"`
	SavePath string `json:"savePath"`
}

// TrackerStatus is the tracker state reported by torrents/trackers.
type TrackerStatus int

const (
	// TrackerStatusDisabled means the entry is disabled (DHT, PeX and LSD rows)
	TrackerStatusDisabled TrackerStatus = iota

	// TrackerStatusNotContacted means the tracker has not been contacted yet
	TrackerStatusNotContacted

	// TrackerStatusWorking means the tracker was contacted and works
	TrackerStatusWorking

	// TrackerStatusUpdating means the tracker is updating
	TrackerStatusUpdating

	// TrackerStatusNotWorking means the tracker was contacted but does not work
	TrackerStatusNotWorking
)

func (s TrackerStatus) String() string {
	switch s {
	case TrackerStatusDisabled:
		return "disabled"
	case TrackerStatusNotContacted:
		return "not contacted"
	case TrackerStatusWorking:
		return "working"
	case TrackerStatusUpdating:
		return "updating"
	case TrackerStatusNotWorking:
		return "not working"
	}
	return "unknown"
}

// Tracker is one entry of torrents/trackers.
type Tracker struct {
	URL           string        `json:"url"`
	Status        TrackerStatus `json:"status"`
	Tier          int           `json:"tier"`
	NumPeers      int64         `json:"num_peers"`
	NumSeeds      int64         `json:"num_seeds"`
	NumLeeches    int64         `json:"num_leeches"`
	NumDownloaded int64         `json:"num_downloaded"`
	Msg           string        `json:"msg"`
}

// WebSeed is one entry of torrents/webseeds.
type WebSeed struct {
	URL string `json:"url"`
}

// BuildInfo describes the daemon build as reported by app/buildInfo.
type BuildInfo struct {
	Qt         string `json:"qt"`
	Libtorrent string `json:"libtorrent"`
	Boost      string `json:"boost"`
	OpenSSL    string `json:"openssl"`
	Bitness    int    `json:"bitness"`
}
