package qbit

import (
	"bytes"
	"os"
	"path/filepath"

	"github.com/anacrolix/torrent/metainfo"
	"github.com/pkg/errors"
)

// NewTorrentFile wraps raw .torrent bytes for upload, validating the bencode
// structure first. The returned file carries the info-hash so callers can
// look the torrent up after adding it.
func NewTorrentFile(filename string, data []byte) (*TorrentFile, error) {
	mi, err := metainfo.Load(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrapf(err, "invalid torrent file %s", filename)
	}

	if _, err := mi.UnmarshalInfo(); err != nil {
		return nil, errors.Wrapf(err, "invalid info dict in %s", filename)
	}

	return &TorrentFile{
		Filename: filename,
		Data:     data,
		InfoHash: mi.HashInfoBytes().HexString(),
	}, nil
}

// NewTorrentFileFromPath reads and validates a .torrent file from disk.
func NewTorrentFileFromPath(path string) (*TorrentFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read %s", path)
	}
	return NewTorrentFile(filepath.Base(path), data)
}
