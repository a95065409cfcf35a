package qbit

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/George-Miao/qbit/request"
)

// GetTorrentList returns the torrents matching opts. A nil opts returns
// every torrent.
func (qb *Client) GetTorrentList(ctx context.Context, opts *GetTorrentListOptions) ([]Torrent, error) {
	var torrents []Torrent
	if err := qb.getJSON(ctx, "torrents/info", opts.values(), nil, &torrents); err != nil {
		return nil, err
	}
	return torrents, nil
}

// GetTorrent returns the single torrent with the given hash, or
// ErrTorrentNotFound when the daemon knows no such torrent.
func (qb *Client) GetTorrent(ctx context.Context, hash string) (*Torrent, error) {
	torrents, err := qb.GetTorrentList(ctx, &GetTorrentListOptions{Hashes: []string{hash}})
	if err != nil {
		return nil, err
	}
	if len(torrents) == 0 {
		return nil, fmt.Errorf("torrent %s: %w", hash, &APIError{Code: APIErrorCodeTorrentNotFound})
	}
	return &torrents[0], nil
}

// ExportTorrent returns the raw .torrent file bytes for a torrent.
func (qb *Client) ExportTorrent(ctx context.Context, hash string) ([]byte, error) {
	return qb.get(ctx, "torrents/export", hashQuery(hash), statusMap{
		http.StatusNotFound: APIErrorCodeTorrentNotFound,
	})
}

// GetTorrentProperties returns the detailed properties of one torrent.
func (qb *Client) GetTorrentProperties(ctx context.Context, hash string) (*TorrentProperties, error) {
	var props TorrentProperties
	err := qb.getJSON(ctx, "torrents/properties", hashQuery(hash), statusMap{
		http.StatusNotFound: APIErrorCodeTorrentNotFound,
	}, &props)
	if err != nil {
		return nil, err
	}
	return &props, nil
}

// GetTorrentTrackers returns the trackers of one torrent, including the
// built-in DHT/PeX/LSD pseudo entries.
func (qb *Client) GetTorrentTrackers(ctx context.Context, hash string) ([]Tracker, error) {
	var trackers []Tracker
	err := qb.getJSON(ctx, "torrents/trackers", hashQuery(hash), statusMap{
		http.StatusNotFound: APIErrorCodeTorrentNotFound,
	}, &trackers)
	if err != nil {
		return nil, err
	}
	return trackers, nil
}

// GetTorrentWebSeeds returns the web seeds of one torrent.
func (qb *Client) GetTorrentWebSeeds(ctx context.Context, hash string) ([]WebSeed, error) {
	var seeds []WebSeed
	err := qb.getJSON(ctx, "torrents/webseeds", hashQuery(hash), statusMap{
		http.StatusNotFound: APIErrorCodeTorrentNotFound,
	}, &seeds)
	if err != nil {
		return nil, err
	}
	return seeds, nil
}

// GetTorrentContents returns the files of one torrent. With indexes given,
// only those file entries are returned.
func (qb *Client) GetTorrentContents(ctx context.Context, hash string, indexes ...int) ([]TorrentContent, error) {
	query := hashQuery(hash)
	if len(indexes) > 0 {
		query.Set("indexes", joinInts(indexes))
	}

	var contents []TorrentContent
	err := qb.getJSON(ctx, "torrents/files", query, statusMap{
		http.StatusNotFound: APIErrorCodeTorrentNotFound,
	}, &contents)
	if err != nil {
		return nil, err
	}
	return contents, nil
}

// GetTorrentPieceStates returns the per-piece download states of one torrent.
func (qb *Client) GetTorrentPieceStates(ctx context.Context, hash string) ([]PieceState, error) {
	var states []PieceState
	err := qb.getJSON(ctx, "torrents/pieceStates", hashQuery(hash), statusMap{
		http.StatusNotFound: APIErrorCodeTorrentNotFound,
	}, &states)
	if err != nil {
		return nil, err
	}
	return states, nil
}

// GetTorrentPieceHashes returns the per-piece SHA-1 hashes of one torrent.
func (qb *Client) GetTorrentPieceHashes(ctx context.Context, hash string) ([]string, error) {
	var hashes []string
	err := qb.getJSON(ctx, "torrents/pieceHashes", hashQuery(hash), statusMap{
		http.StatusNotFound: APIErrorCodeTorrentNotFound,
	}, &hashes)
	if err != nil {
		return nil, err
	}
	return hashes, nil
}

// StopTorrents pauses the selected torrents.
func (qb *Client) StopTorrents(ctx context.Context, hashes Hashes) error {
	_, err := qb.postForm(ctx, "torrents/stop", hashesForm(hashes), nil)
	return err
}

// StartTorrents resumes the selected torrents.
func (qb *Client) StartTorrents(ctx context.Context, hashes Hashes) error {
	_, err := qb.postForm(ctx, "torrents/start", hashesForm(hashes), nil)
	return err
}

// DeleteTorrents removes the selected torrents, optionally deleting the
// downloaded data as well.
func (qb *Client) DeleteTorrents(ctx context.Context, hashes Hashes, deleteFiles bool) error {
	form := hashesForm(hashes)
	form.Set("deleteFiles", strconv.FormatBool(deleteFiles))
	_, err := qb.postForm(ctx, "torrents/delete", form, nil)
	return err
}

// RecheckTorrents rechecks the selected torrents against their data on disk.
func (qb *Client) RecheckTorrents(ctx context.Context, hashes Hashes) error {
	_, err := qb.postForm(ctx, "torrents/recheck", hashesForm(hashes), nil)
	return err
}

// ReannounceTorrents forces a tracker reannounce for the selected torrents.
func (qb *Client) ReannounceTorrents(ctx context.Context, hashes Hashes) error {
	_, err := qb.postForm(ctx, "torrents/reannounce", hashesForm(hashes), nil)
	return err
}

// AddTorrent submits new torrents from source with the given options. URL
// sources travel as a plain form; file sources switch the request to a
// multipart upload with one part per .torrent file.
func (qb *Client) AddTorrent(ctx context.Context, source TorrentSource, opts *AddTorrentOptions) error {
	m := statusMap{
		http.StatusUnsupportedMediaType: APIErrorCodeTorrentFileInvalid,
	}

	form := opts.values()

	if files := source.files; len(files) > 0 {
		reqOpts := []request.Option{request.WithForm(form)}
		for _, file := range files {
			reqOpts = append(reqOpts,
				request.WithFile("torrents", file.Filename, "application/x-bittorrent", file.Data))
		}
		_, err := qb.do(ctx, http.MethodPost, "torrents/add", m, reqOpts...)
		return err
	}

	form.Set("urls", strings.Join(source.urls, "\n"))
	_, err := qb.postForm(ctx, "torrents/add", form, m)
	return err
}

// AddTrackers registers additional tracker URLs on a torrent.
func (qb *Client) AddTrackers(ctx context.Context, hash string, urls ...string) error {
	form := url.Values{
		"hash": {hash},
		"urls": {strings.Join(urls, "\n")},
	}
	_, err := qb.postForm(ctx, "torrents/addTrackers", form, statusMap{
		http.StatusNotFound: APIErrorCodeTorrentNotFound,
	})
	return err
}

// EditTracker replaces one tracker URL of a torrent with another.
func (qb *Client) EditTracker(ctx context.Context, hash, origURL, newURL string) error {
	form := url.Values{
		"hash":    {hash},
		"origUrl": {origURL},
		"newUrl":  {newURL},
	}
	_, err := qb.postForm(ctx, "torrents/editTracker", form, statusMap{
		http.StatusBadRequest: APIErrorCodeInvalidTrackerURL,
		http.StatusNotFound:   APIErrorCodeTorrentNotFound,
		http.StatusConflict:   APIErrorCodeConflictTrackerURL,
	})
	return err
}

// RemoveTrackers deletes tracker URLs from a torrent.
func (qb *Client) RemoveTrackers(ctx context.Context, hash string, urls ...string) error {
	form := url.Values{
		"hash": {hash},
		"urls": {strings.Join(urls, "|")},
	}
	_, err := qb.postForm(ctx, "torrents/removeTrackers", form, statusMap{
		http.StatusNotFound: APIErrorCodeTorrentNotFound,
		http.StatusConflict: APIErrorCodeConflictTrackerURL,
	})
	return err
}

// AddPeers connects the selected torrents to the given host:port peers.
func (qb *Client) AddPeers(ctx context.Context, hashes Hashes, peers ...string) error {
	form := hashesForm(hashes)
	form.Set("peers", strings.Join(peers, "|"))
	_, err := qb.postForm(ctx, "torrents/addPeers", form, statusMap{
		http.StatusBadRequest: APIErrorCodeInvalidPeers,
	})
	return err
}

// IncreasePriority moves the selected torrents up in the download queue.
// Fails with QueueingDisabled unless queueing is enabled in the preferences.
func (qb *Client) IncreasePriority(ctx context.Context, hashes Hashes) error {
	return qb.queueMove(ctx, "torrents/increasePrio", hashes)
}

// DecreasePriority moves the selected torrents down in the download queue.
func (qb *Client) DecreasePriority(ctx context.Context, hashes Hashes) error {
	return qb.queueMove(ctx, "torrents/decreasePrio", hashes)
}

// TopPriority moves the selected torrents to the top of the download queue.
func (qb *Client) TopPriority(ctx context.Context, hashes Hashes) error {
	return qb.queueMove(ctx, "torrents/topPrio", hashes)
}

// BottomPriority moves the selected torrents to the bottom of the download
// queue.
func (qb *Client) BottomPriority(ctx context.Context, hashes Hashes) error {
	return qb.queueMove(ctx, "torrents/bottomPrio", hashes)
}

func (qb *Client) queueMove(ctx context.Context, path string, hashes Hashes) error {
	_, err := qb.postForm(ctx, path, hashesForm(hashes), statusMap{
		http.StatusConflict: APIErrorCodeQueueingDisabled,
	})
	return err
}

// SetFilePriority changes the download priority of files within a torrent,
// addressed by their torrents/files indexes.
func (qb *Client) SetFilePriority(ctx context.Context, hash string, priority Priority, indexes ...int) error {
	form := url.Values{
		"hash":     {hash},
		"id":       {joinInts(indexes)},
		"priority": {strconv.Itoa(int(priority))},
	}
	_, err := qb.postForm(ctx, "torrents/filePrio", form, statusMap{
		http.StatusNotFound: APIErrorCodeTorrentNotFound,
		http.StatusConflict: APIErrorCodeMetaNotDownloaded,
	})
	return err
}

// GetTorrentDownloadLimit returns the per-torrent download limits in bytes/s,
// keyed by hash. Zero means unlimited.
func (qb *Client) GetTorrentDownloadLimit(ctx context.Context, hashes Hashes) (map[string]int64, error) {
	var limits map[string]int64
	if err := qb.postJSON(ctx, "torrents/downloadLimit", hashesForm(hashes), nil, &limits); err != nil {
		return nil, err
	}
	return limits, nil
}

// SetTorrentDownloadLimit caps the download speed of the selected torrents
// in bytes/s. Zero removes the limit.
func (qb *Client) SetTorrentDownloadLimit(ctx context.Context, hashes Hashes, limit int64) error {
	form := hashesForm(hashes)
	form.Set("limit", strconv.FormatInt(limit, 10))
	_, err := qb.postForm(ctx, "torrents/setDownloadLimit", form, nil)
	return err
}

// GetTorrentUploadLimit returns the per-torrent upload limits in bytes/s,
// keyed by hash. Zero means unlimited.
func (qb *Client) GetTorrentUploadLimit(ctx context.Context, hashes Hashes) (map[string]int64, error) {
	var limits map[string]int64
	if err := qb.postJSON(ctx, "torrents/uploadLimit", hashesForm(hashes), nil, &limits); err != nil {
		return nil, err
	}
	return limits, nil
}

// SetTorrentUploadLimit caps the upload speed of the selected torrents in
// bytes/s. Zero removes the limit.
func (qb *Client) SetTorrentUploadLimit(ctx context.Context, hashes Hashes, limit int64) error {
	form := hashesForm(hashes)
	form.Set("limit", strconv.FormatInt(limit, 10))
	_, err := qb.postForm(ctx, "torrents/setUploadLimit", form, nil)
	return err
}

// SetTorrentShareLimit changes the seeding limits of the selected torrents.
func (qb *Client) SetTorrentShareLimit(ctx context.Context, hashes Hashes, limits ShareLimits) error {
	form := limits.values()
	form.Set("hashes", hashes.String())
	_, err := qb.postForm(ctx, "torrents/setShareLimits", form, nil)
	return err
}

// SetTorrentLocation moves the selected torrents to another save path.
func (qb *Client) SetTorrentLocation(ctx context.Context, hashes Hashes, location string) error {
	form := hashesForm(hashes)
	form.Set("location", location)
	_, err := qb.postForm(ctx, "torrents/setLocation", form, statusMap{
		http.StatusBadRequest: APIErrorCodeSavePathEmpty,
		http.StatusForbidden:  APIErrorCodeNoWriteAccess,
		http.StatusConflict:   APIErrorCodeUnableToCreateDir,
	})
	return err
}

// RenameTorrent changes the display name of one torrent.
func (qb *Client) RenameTorrent(ctx context.Context, hash, name string) error {
	form := url.Values{
		"hash": {hash},
		"name": {name},
	}
	_, err := qb.postForm(ctx, "torrents/rename", form, statusMap{
		http.StatusNotFound: APIErrorCodeTorrentNotFound,
		http.StatusConflict: APIErrorCodeTorrentNameEmpty,
	})
	return err
}

// SetTorrentCategory assigns the selected torrents to a category. An empty
// name clears the category.
func (qb *Client) SetTorrentCategory(ctx context.Context, hashes Hashes, category string) error {
	form := hashesForm(hashes)
	form.Set("category", category)
	_, err := qb.postForm(ctx, "torrents/setCategory", form, statusMap{
		http.StatusConflict: APIErrorCodeCategoryNotFound,
	})
	return err
}

// GetCategories returns all categories keyed by name.
func (qb *Client) GetCategories(ctx context.Context) (map[string]Category, error) {
	var categories map[string]Category
	if err := qb.getJSON(ctx, "torrents/categories", nil, nil, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// AddCategory creates a category. Adding an existing name is an error on the
// daemon side.
func (qb *Client) AddCategory(ctx context.Context, name, savePath string) error {
	form := url.Values{
		"category": {name},
		"savePath": {savePath},
	}
	_, err := qb.postForm(ctx, "torrents/createCategory", form, statusMap{
		http.StatusConflict: APIErrorCodeCategoryEditingFailed,
	})
	return err
}

// EditCategory changes the save path of an existing category.
func (qb *Client) EditCategory(ctx context.Context, name, savePath string) error {
	form := url.Values{
		"category": {name},
		"savePath": {savePath},
	}
	_, err := qb.postForm(ctx, "torrents/editCategory", form, statusMap{
		http.StatusConflict: APIErrorCodeCategoryEditingFailed,
	})
	return err
}

// RemoveCategories deletes categories. Unknown names are ignored by the
// daemon.
func (qb *Client) RemoveCategories(ctx context.Context, names ...string) error {
	form := url.Values{"categories": {strings.Join(names, "\n")}}
	_, err := qb.postForm(ctx, "torrents/removeCategories", form, nil)
	return err
}

// AddTorrentTags attaches tags to the selected torrents, creating unknown
// tags on the fly.
func (qb *Client) AddTorrentTags(ctx context.Context, hashes Hashes, tags ...string) error {
	form := hashesForm(hashes)
	form.Set("tags", strings.Join(tags, ","))
	_, err := qb.postForm(ctx, "torrents/addTags", form, nil)
	return err
}

// RemoveTorrentTags detaches tags from the selected torrents. With no tags
// given, all tags are removed.
func (qb *Client) RemoveTorrentTags(ctx context.Context, hashes Hashes, tags ...string) error {
	form := hashesForm(hashes)
	form.Set("tags", strings.Join(tags, ","))
	_, err := qb.postForm(ctx, "torrents/removeTags", form, nil)
	return err
}

// GetTags returns every tag known to the daemon.
func (qb *Client) GetTags(ctx context.Context) ([]string, error) {
	var tags []string
	if err := qb.getJSON(ctx, "torrents/tags", nil, nil, &tags); err != nil {
		return nil, err
	}
	return tags, nil
}

// CreateTags registers tags without attaching them to any torrent.
func (qb *Client) CreateTags(ctx context.Context, tags ...string) error {
	form := url.Values{"tags": {strings.Join(tags, ",")}}
	_, err := qb.postForm(ctx, "torrents/createTags", form, nil)
	return err
}

// DeleteTags removes tags from the daemon and from every torrent carrying
// them.
func (qb *Client) DeleteTags(ctx context.Context, tags ...string) error {
	form := url.Values{"tags": {strings.Join(tags, ",")}}
	_, err := qb.postForm(ctx, "torrents/deleteTags", form, nil)
	return err
}

// SetAutoManagement toggles Automatic Torrent Management for the selected
// torrents.
func (qb *Client) SetAutoManagement(ctx context.Context, hashes Hashes, enable bool) error {
	form := hashesForm(hashes)
	form.Set("enable", strconv.FormatBool(enable))
	_, err := qb.postForm(ctx, "torrents/setAutoManagement", form, nil)
	return err
}

// ToggleSequentialDownload flips sequential download for the selected
// torrents.
func (qb *Client) ToggleSequentialDownload(ctx context.Context, hashes Hashes) error {
	_, err := qb.postForm(ctx, "torrents/toggleSequentialDownload", hashesForm(hashes), nil)
	return err
}

// ToggleFirstLastPiecePriority flips first/last piece priority for the
// selected torrents.
func (qb *Client) ToggleFirstLastPiecePriority(ctx context.Context, hashes Hashes) error {
	_, err := qb.postForm(ctx, "torrents/toggleFirstLastPiecePrio", hashesForm(hashes), nil)
	return err
}

// SetForceStart toggles force start for the selected torrents.
func (qb *Client) SetForceStart(ctx context.Context, hashes Hashes, value bool) error {
	form := hashesForm(hashes)
	form.Set("value", strconv.FormatBool(value))
	_, err := qb.postForm(ctx, "torrents/setForceStart", form, nil)
	return err
}

// SetSuperSeeding toggles super seeding for the selected torrents.
func (qb *Client) SetSuperSeeding(ctx context.Context, hashes Hashes, value bool) error {
	form := hashesForm(hashes)
	form.Set("value", strconv.FormatBool(value))
	_, err := qb.postForm(ctx, "torrents/setSuperSeeding", form, nil)
	return err
}

// RenameFile renames a file within a torrent.
func (qb *Client) RenameFile(ctx context.Context, hash, oldPath, newPath string) error {
	return qb.renamePath(ctx, "torrents/renameFile", hash, oldPath, newPath)
}

// RenameFolder renames a folder within a torrent.
func (qb *Client) RenameFolder(ctx context.Context, hash, oldPath, newPath string) error {
	return qb.renamePath(ctx, "torrents/renameFolder", hash, oldPath, newPath)
}

func (qb *Client) renamePath(ctx context.Context, path, hash, oldPath, newPath string) error {
	form := url.Values{
		"hash":    {hash},
		"oldPath": {oldPath},
		"newPath": {newPath},
	}
	_, err := qb.postForm(ctx, path, form, statusMap{
		http.StatusConflict: APIErrorCodeInvalidPath,
	})
	return err
}

func hashQuery(hash string) url.Values {
	return url.Values{"hash": {hash}}
}

func hashesForm(hashes Hashes) url.Values {
	return url.Values{"hashes": {hashes.String()}}
}

func joinInts(values []int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, "|")
}
