package qbit

import (
	"encoding/json"
	"fmt"
)

// Preferences mirrors app/preferences. Every field is a pointer with
// omitempty so that a struct with only a few fields set serializes into a
// partial update: app/setPreferences only touches the keys present in the
// payload, everything else keeps its daemon-side value.
type Preferences struct {
	Locale                             *string                 `json:"locale,omitempty"`
	CreateSubfolderEnabled             *bool                   `json:"create_subfolder_enabled,omitempty"`
	StartPausedEnabled                 *bool                   `json:"start_paused_enabled,omitempty"`
	AutoDeleteMode                     *int64                  `json:"auto_delete_mode,omitempty"`
	PreallocateAll                     *bool                   `json:"preallocate_all,omitempty"`
	IncompleteFilesExt                 *bool                   `json:"incomplete_files_ext,omitempty"`
	AutoTMMEnabled                     *bool                   `json:"auto_tmm_enabled,omitempty"`
	TorrentChangedTMMEnabled           *bool                   `json:"torrent_changed_tmm_enabled,omitempty"`
	SavePathChangedTMMEnabled          *bool                   `json:"save_path_changed_tmm_enabled,omitempty"`
	CategoryChangedTMMEnabled          *bool                   `json:"category_changed_tmm_enabled,omitempty"`
	SavePath                           *string                 `json:"save_path,omitempty"`
	TempPathEnabled                    *bool                   `json:"temp_path_enabled,omitempty"`
	TempPath                           *string                 `json:"temp_path,omitempty"`
	ScanDirs                           map[string]ScanDirValue `json:"scan_dirs,omitempty"`
	ExportDir                          *string                 `json:"export_dir,omitempty"`
	ExportDirFin                       *string                 `json:"export_dir_fin,omitempty"`
	MailNotificationEnabled            *bool                   `json:"mail_notification_enabled,omitempty"`
	MailNotificationSender             *string                 `json:"mail_notification_sender,omitempty"`
	MailNotificationEmail              *string                 `json:"mail_notification_email,omitempty"`
	MailNotificationSMTP               *string                 `json:"mail_notification_smtp,omitempty"`
	MailNotificationSSLEnabled         *bool                   `json:"mail_notification_ssl_enabled,omitempty"`
	MailNotificationAuthEnabled        *bool                   `json:"mail_notification_auth_enabled,omitempty"`
	MailNotificationUsername           *string                 `json:"mail_notification_username,omitempty"`
	MailNotificationPassword           *string                 `json:"mail_notification_password,omitempty"`
	AutorunEnabled                     *bool                   `json:"autorun_enabled,omitempty"`
	AutorunProgram                     *string                 `json:"autorun_program,omitempty"`
	QueueingEnabled                    *bool                   `json:"queueing_enabled,omitempty"`
	MaxActiveDownloads                 *int64                  `json:"max_active_downloads,omitempty"`
	MaxActiveTorrents                  *int64                  `json:"max_active_torrents,omitempty"`
	MaxActiveUploads                   *int64                  `json:"max_active_uploads,omitempty"`
	DontCountSlowTorrents              *bool                   `json:"dont_count_slow_torrents,omitempty"`
	SlowTorrentDlRateThreshold         *int64                  `json:"slow_torrent_dl_rate_threshold,omitempty"`
	SlowTorrentUlRateThreshold         *int64                  `json:"slow_torrent_ul_rate_threshold,omitempty"`
	SlowTorrentInactiveTimer           *int64                  `json:"slow_torrent_inactive_timer,omitempty"`
	MaxRatioEnabled                    *bool                   `json:"max_ratio_enabled,omitempty"`
	MaxRatio                           *float64                `json:"max_ratio,omitempty"`
	MaxRatioAct                        *int64                  `json:"max_ratio_act,omitempty"`
	ListenPort                         *int64                  `json:"listen_port,omitempty"`
	UPnP                               *bool                   `json:"upnp,omitempty"`
	RandomPort                         *bool                   `json:"random_port,omitempty"`
	DlLimit                            *int64                  `json:"dl_limit,omitempty"`
	UpLimit                            *int64                  `json:"up_limit,omitempty"`
	MaxConnec                          *int64                  `json:"max_connec,omitempty"`
	MaxConnecPerTorrent                *int64                  `json:"max_connec_per_torrent,omitempty"`
	MaxUploads                         *int64                  `json:"max_uploads,omitempty"`
	MaxUploadsPerTorrent               *int64                  `json:"max_uploads_per_torrent,omitempty"`
	StopTrackerTimeout                 *int64                  `json:"stop_tracker_timeout,omitempty"`
	EnablePieceExtentAffinity          *bool                   `json:"enable_piece_extent_affinity,omitempty"`
	BittorrentProtocol                 *int64                  `json:"bittorrent_protocol,omitempty"`
	LimitUTPRate                       *bool                   `json:"limit_utp_rate,omitempty"`
	LimitTCPOverhead                   *bool                   `json:"limit_tcp_overhead,omitempty"`
	LimitLANPeers                      *bool                   `json:"limit_lan_peers,omitempty"`
	AltDlLimit                         *int64                  `json:"alt_dl_limit,omitempty"`
	AltUpLimit                         *int64                  `json:"alt_up_limit,omitempty"`
	SchedulerEnabled                   *bool                   `json:"scheduler_enabled,omitempty"`
	ScheduleFromHour                   *int64                  `json:"schedule_from_hour,omitempty"`
	ScheduleFromMin                    *int64                  `json:"schedule_from_min,omitempty"`
	ScheduleToHour                     *int64                  `json:"schedule_to_hour,omitempty"`
	ScheduleToMin                      *int64                  `json:"schedule_to_min,omitempty"`
	SchedulerDays                      *int64                  `json:"scheduler_days,omitempty"`
	DHT                                *bool                   `json:"dht,omitempty"`
	PeX                                *bool                   `json:"pex,omitempty"`
	LSD                                *bool                   `json:"lsd,omitempty"`
	Encryption                         *int64                  `json:"encryption,omitempty"`
	AnonymousMode                      *bool                   `json:"anonymous_mode,omitempty"`
	ProxyType                          *int64                  `json:"proxy_type,omitempty"`
	ProxyIP                            *string                 `json:"proxy_ip,omitempty"`
	ProxyPort                          *int64                  `json:"proxy_port,omitempty"`
	ProxyPeerConnections               *bool                   `json:"proxy_peer_connections,omitempty"`
	ProxyAuthEnabled                   *bool                   `json:"proxy_auth_enabled,omitempty"`
	ProxyUsername                      *string                 `json:"proxy_username,omitempty"`
	ProxyPassword                      *string                 `json:"proxy_password,omitempty"`
	ProxyTorrentsOnly                  *bool                   `json:"proxy_torrents_only,omitempty"`
	IPFilterEnabled                    *bool                   `json:"ip_filter_enabled,omitempty"`
	IPFilterPath                       *string                 `json:"ip_filter_path,omitempty"`
	IPFilterTrackers                   *bool                   `json:"ip_filter_trackers,omitempty"`
	WebUIDomainList                    *string                 `json:"web_ui_domain_list,omitempty"`
	WebUIAddress                       *string                 `json:"web_ui_address,omitempty"`
	WebUIPort                          *int64                  `json:"web_ui_port,omitempty"`
	WebUIUPnP                          *bool                   `json:"web_ui_upnp,omitempty"`
	WebUIUsername                      *string                 `json:"web_ui_username,omitempty"`
	WebUIPassword                      *string                 `json:"web_ui_password,omitempty"`
	WebUICSRFProtectionEnabled         *bool                   `json:"web_ui_csrf_protection_enabled,omitempty"`
	WebUIClickjackingProtectionEnabled *bool                   `json:"web_ui_clickjacking_protection_enabled,omitempty"`
	WebUISecureCookieEnabled           *bool                   `json:"web_ui_secure_cookie_enabled,omitempty"`
	WebUIMaxAuthFailCount              *int64                  `json:"web_ui_max_auth_fail_count,omitempty"`
	WebUIBanDuration                   *int64                  `json:"web_ui_ban_duration,omitempty"`
	WebUISessionTimeout                *int64                  `json:"web_ui_session_timeout,omitempty"`
	WebUIHostHeaderValidationEnabled   *bool                   `json:"web_ui_host_header_validation_enabled,omitempty"`
	BypassLocalAuth                    *bool                   `json:"bypass_local_auth,omitempty"`
	BypassAuthSubnetWhitelistEnabled   *bool                   `json:"bypass_auth_subnet_whitelist_enabled,omitempty"`
	BypassAuthSubnetWhitelist          *string                 `json:"bypass_auth_subnet_whitelist,omitempty"`
	AlternativeWebUIEnabled            *bool                   `json:"alternative_webui_enabled,omitempty"`
	AlternativeWebUIPath               *string                 `json:"alternative_webui_path,omitempty"`
	UseHTTPS                           *bool                   `json:"use_https,omitempty"`
	SSLKey                             *string                 `json:"ssl_key,omitempty"`
	SSLCert                            *string                 `json:"ssl_cert,omitempty"`
	WebUIHTTPSKeyPath                  *string                 `json:"web_ui_https_key_path,omitempty"`
	WebUIHTTPSCertPath                 *string                 `json:"web_ui_https_cert_path,omitempty"`
	DynDNSEnabled                      *bool                   `json:"dyndns_enabled,omitempty"`
	DynDNSService                      *int64                  `json:"dyndns_service,omitempty"`
	DynDNSUsername                     *string                 `json:"dyndns_username,omitempty"`
	DynDNSPassword                     *string                 `json:"dyndns_password,omitempty"`
	DynDNSDomain                       *string                 `json:"dyndns_domain,omitempty"`
	RSSRefreshInterval                 *int64                  `json:"rss_refresh_interval,omitempty"`
	RSSMaxArticlesPerFeed              *int64                  `json:"rss_max_articles_per_feed,omitempty"`
	RSSProcessingEnabled               *bool                   `json:"rss_processing_enabled,omitempty"`
	RSSAutoDownloadingEnabled          *bool                   `json:"rss_auto_downloading_enabled,omitempty"`
	RSSDownloadRepackProperEpisodes    *bool                   `json:"rss_download_repack_proper_episodes,omitempty"`
	RSSSmartEpisodeFilters             *string                 `json:"rss_smart_episode_filters,omitempty"`
	AddTrackersEnabled                 *bool                   `json:"add_trackers_enabled,omitempty"`
	AddTrackers                        *string                 `json:"add_trackers,omitempty"`
	WebUIUseCustomHTTPHeadersEnabled   *bool                   `json:"web_ui_use_custom_http_headers_enabled,omitempty"`
	WebUICustomHTTPHeaders             *string                 `json:"web_ui_custom_http_headers,omitempty"`
	MaxSeedingTimeEnabled              *bool                   `json:"max_seeding_time_enabled,omitempty"`
	MaxSeedingTime                     *int64                  `json:"max_seeding_time,omitempty"`
	AnnounceIP                         *string                 `json:"announce_ip,omitempty"`
	AnnounceToAllTiers                 *bool                   `json:"announce_to_all_tiers,omitempty"`
	AnnounceToAllTrackers              *bool                   `json:"announce_to_all_trackers,omitempty"`
	AsyncIOThreads                     *int64                  `json:"async_io_threads,omitempty"`
	BannedIPs                          *string                 `json:"banned_IPs,omitempty"`
	CheckingMemoryUse                  *int64                  `json:"checking_memory_use,omitempty"`
	CurrentInterfaceAddress            *string                 `json:"current_interface_address,omitempty"`
	CurrentNetworkInterface            *string                 `json:"current_network_interface,omitempty"`
	DiskCache                          *int64                  `json:"disk_cache,omitempty"`
	DiskCacheTTL                       *int64                  `json:"disk_cache_ttl,omitempty"`
	EmbeddedTrackerPort                *int64                  `json:"embedded_tracker_port,omitempty"`
	EnableCoalesceReadWrite            *bool                   `json:"enable_coalesce_read_write,omitempty"`
	EnableEmbeddedTracker              *bool                   `json:"enable_embedded_tracker,omitempty"`
	EnableMultiConnectionsFromSameIP   *bool                   `json:"enable_multi_connections_from_same_ip,omitempty"`
	EnableOSCache                      *bool                   `json:"enable_os_cache,omitempty"`
	EnableUploadSuggestions            *bool                   `json:"enable_upload_suggestions,omitempty"`
	FilePoolSize                       *int64                  `json:"file_pool_size,omitempty"`
	OutgoingPortsMax                   *int64                  `json:"outgoing_ports_max,omitempty"`
	OutgoingPortsMin                   *int64                  `json:"outgoing_ports_min,omitempty"`
	RecheckCompletedTorrents           *bool                   `json:"recheck_completed_torrents,omitempty"`
	ResolvePeerCountries               *bool                   `json:"resolve_peer_countries,omitempty"`
	SaveResumeDataInterval             *int64                  `json:"save_resume_data_interval,omitempty"`
	SendBufferLowWatermark             *int64                  `json:"send_buffer_low_watermark,omitempty"`
	SendBufferWatermark                *int64                  `json:"send_buffer_watermark,omitempty"`
	SendBufferWatermarkFactor          *int64                  `json:"send_buffer_watermark_factor,omitempty"`
	SocketBacklogSize                  *int64                  `json:"socket_backlog_size,omitempty"`
	UploadChokingAlgorithm             *int64                  `json:"upload_choking_algorithm,omitempty"`
	UploadSlotsBehavior                *int64                  `json:"upload_slots_behavior,omitempty"`
	UPnPLeaseDuration                  *int64                  `json:"upnp_lease_duration,omitempty"`
	UTPTCPMixedMode                    *int64                  `json:"utp_tcp_mixed_mode,omitempty"`
}

// ScanDirValue is one value of the scan_dirs map. The daemon encodes it as
// 0 (download to the monitored folder), 1 (download to the default save
// path), or a string path.
type ScanDirValue struct {
	mode int
	path string
}

const (
	scanDirMonitoredFolder = 0
	scanDirDefaultSavePath = 1
	scanDirExplicitPath    = 2
)

// ScanDirMonitoredFolder downloads into the monitored folder itself.
func ScanDirMonitoredFolder() ScanDirValue {
	return ScanDirValue{mode: scanDirMonitoredFolder}
}

// ScanDirDefaultSavePath downloads into the default save path.
func ScanDirDefaultSavePath() ScanDirValue {
	return ScanDirValue{mode: scanDirDefaultSavePath}
}

// ScanDirPath downloads into an explicit directory.
func ScanDirPath(path string) ScanDirValue {
	return ScanDirValue{mode: scanDirExplicitPath, path: path}
}

// Path returns the explicit download directory, or false for the two
// numeric modes.
func (v ScanDirValue) Path() (string, bool) {
	return v.path, v.mode == scanDirExplicitPath
}

func (v ScanDirValue) MarshalJSON() ([]byte, error) {
	if v.mode == scanDirExplicitPath {
		return json.Marshal(v.path)
	}
	return json.Marshal(v.mode)
}

func (v *ScanDirValue) UnmarshalJSON(data []byte) error {
	var mode int
	if err := json.Unmarshal(data, &mode); err == nil {
		switch mode {
		case scanDirMonitoredFolder, scanDirDefaultSavePath:
			v.mode = mode
			v.path = ""
			return nil
		}
		return fmt.Errorf("invalid scan_dirs value: %d", mode)
	}

	var path string
	if err := json.Unmarshal(data, &path); err != nil {
		return fmt.Errorf("invalid scan_dirs value: %s", data)
	}
	v.mode = scanDirExplicitPath
	v.path = path
	return nil
}

// Helpers for filling optional preference fields inline.

// Bool returns a pointer to v.
func Bool(v bool) *bool { return &v }

// Int returns a pointer to v.
func Int(v int64) *int64 { return &v }

// Float returns a pointer to v.
func Float(v float64) *float64 { return &v }

// String returns a pointer to v.
func String(v string) *string { return &v }
