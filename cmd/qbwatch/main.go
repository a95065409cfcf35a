// Command qbwatch watches a drop directory and feeds .torrent and .magnet
// files to a qBittorrent daemon.
package main

import (
	"context"
	"flag"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/radovskyb/watcher"
	"github.com/rs/zerolog"

	"github.com/George-Miao/qbit"
	"github.com/George-Miao/qbit/config"
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	settings, err := config.Load(*configPath)
	if err != nil {
		bootLogger := zerolog.New(zerolog.NewConsoleWriter())
		bootLogger.Fatal().Err(err).Msg("failed to load config")
	}

	logger := settings.Logger()

	client, err := settings.Client()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to build client")
	}

	if err := client.Login(context.Background(), false); err != nil {
		logger.Fatal().Err(err).Str("addr", settings.Addr).Msg("login failed")
	}

	version, err := client.GetVersion(context.Background())
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to reach daemon")
	}
	logger.Info().Str("version", version).Msg("connected")

	watch(client, settings, logger)
}

func watch(client *qbit.Client, settings *config.Settings, logger zerolog.Logger) {
	w := watcher.New()
	w.SetMaxEvents(1)
	r := regexp.MustCompile(`\.(torrent|magnet)$`)
	w.AddFilterHook(watcher.RegexFilterHook(r, true))

	go func() {
		for {
			select {
			case event := <-w.Event:
				handle(client, settings, logger, event)
			case err := <-w.Error:
				logger.Fatal().Err(err).Msg("watcher error")
			case <-w.Closed:
				return
			}
		}
	}()

	if _, err := os.Stat(settings.WatchDir); os.IsNotExist(err) {
		logger.Fatal().Str("dir", settings.WatchDir).Msg("watch directory does not exist")
	}

	logger.Info().Str("dir", settings.WatchDir).Msg("watching for .torrent and .magnet files")
	if err := w.AddRecursive(settings.WatchDir); err != nil {
		logger.Fatal().Err(err).Msg("failed to watch directory")
	}

	if err := w.Start(time.Millisecond * 100); err != nil {
		logger.Fatal().Err(err).Msg("failed to start watcher")
	}
}

func handle(client *qbit.Client, settings *config.Settings, logger zerolog.Logger, event watcher.Event) {
	if event.Op != watcher.Create && event.Op != watcher.Write {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	var err error
	switch filepath.Ext(event.Path) {
	case ".torrent":
		err = addTorrentFile(ctx, client, settings, event.Path)
	case ".magnet":
		err = addMagnetFile(ctx, client, settings, event.Path)
	default:
		return
	}

	if err != nil {
		logger.Error().Err(err).Str("file", event.Path).Msg("failed to add")
		return
	}

	logger.Info().Str("file", event.Path).Msg("added")
	archive(logger, settings, event.Path)
}

func addTorrentFile(ctx context.Context, client *qbit.Client, settings *config.Settings, path string) error {
	file, err := qbit.NewTorrentFileFromPath(path)
	if err != nil {
		return err
	}
	return client.AddTorrent(ctx, qbit.SourceFiles(*file), addOptions(settings))
}

// addMagnetFile reads a .magnet file holding one magnet URI per line.
func addMagnetFile(ctx context.Context, client *qbit.Client, settings *config.Settings, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var urls []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if _, err := qbit.ParseMagnetLink(line); err != nil {
			return err
		}
		urls = append(urls, line)
	}
	if len(urls) == 0 {
		return nil
	}

	return client.AddTorrent(ctx, qbit.SourceURLs(urls...), addOptions(settings))
}

func addOptions(settings *config.Settings) *qbit.AddTorrentOptions {
	return &qbit.AddTorrentOptions{
		SavePath: settings.SavePath,
		Category: settings.Category,
	}
}

// archive moves a handled file out of the watch directory, or deletes it
// when no archive directory is configured.
func archive(logger zerolog.Logger, settings *config.Settings, path string) {
	if settings.ArchiveDir == "" {
		if err := os.Remove(path); err != nil {
			logger.Error().Err(err).Str("file", path).Msg("failed to remove")
		}
		return
	}

	if err := os.MkdirAll(settings.ArchiveDir, 0o755); err != nil {
		logger.Error().Err(err).Str("dir", settings.ArchiveDir).Msg("failed to create archive dir")
		return
	}
	dest := filepath.Join(settings.ArchiveDir, filepath.Base(path))
	if err := os.Rename(path, dest); err != nil {
		logger.Error().Err(err).Str("file", path).Msg("failed to archive")
	}
}
