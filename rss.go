package qbit

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
)

// RSSArticle is one article of a feed returned by rss/items with data.
type RSSArticle struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Date        string `json:"date"`
	Link        string `json:"link"`
	TorrentURL  string `json:"torrentURL"`
	IsRead      bool   `json:"isRead"`
}

// RSSFeed is one feed entry of rss/items.
type RSSFeed struct {
	UID           string       `json:"uid"`
	URL           string       `json:"url"`
	Title         string       `json:"title"`
	LastBuildDate string       `json:"lastBuildDate"`
	IsLoading     bool         `json:"isLoading"`
	HasError      bool         `json:"hasError"`
	Articles      []RSSArticle `json:"articles"`
}

// RSSRule is an auto-download rule as accepted by rss/setRule.
type RSSRule struct {
	Enabled                   bool     `json:"enabled"`
	MustContain               string   `json:"mustContain"`
	MustNotContain            string   `json:"mustNotContain"`
	UseRegex                  bool     `json:"useRegex"`
	EpisodeFilter             string   `json:"episodeFilter"`
	SmartFilter               bool     `json:"smartFilter"`
	PreviouslyMatchedEpisodes []string `json:"previouslyMatchedEpisodes,omitempty"`
	AffectedFeeds             []string `json:"affectedFeeds"`
	IgnoreDays                int      `json:"ignoreDays"`
	LastMatch                 string   `json:"lastMatch,omitempty"`
	AddPaused                 *bool    `json:"addPaused,omitempty"`
	AssignedCategory          string   `json:"assignedCategory"`
	SavePath                  string   `json:"savePath"`
}

// AddRSSFolder creates a folder in the RSS tree, e.g. "linux\distros".
func (qb *Client) AddRSSFolder(ctx context.Context, path string) error {
	form := url.Values{"path": {path}}
	_, err := qb.postForm(ctx, "rss/addFolder", form, nil)
	return err
}

// AddRSSFeed subscribes to feedURL, placed at path in the RSS tree.
func (qb *Client) AddRSSFeed(ctx context.Context, feedURL, path string) error {
	form := url.Values{
		"url":  {feedURL},
		"path": {path},
	}
	_, err := qb.postForm(ctx, "rss/addFeed", form, nil)
	return err
}

// RemoveRSSItem deletes a feed or folder, including everything beneath a
// folder.
func (qb *Client) RemoveRSSItem(ctx context.Context, path string) error {
	form := url.Values{"path": {path}}
	_, err := qb.postForm(ctx, "rss/removeItem", form, nil)
	return err
}

// MoveRSSItem moves or renames a feed or folder.
func (qb *Client) MoveRSSItem(ctx context.Context, itemPath, destPath string) error {
	form := url.Values{
		"itemPath": {itemPath},
		"destPath": {destPath},
	}
	_, err := qb.postForm(ctx, "rss/moveItem", form, nil)
	return err
}

// GetRSSItems returns the RSS tree keyed by item path. With withData the
// feed entries include their articles.
func (qb *Client) GetRSSItems(ctx context.Context, withData bool) (map[string]RSSFeed, error) {
	query := url.Values{"withData": {strconv.FormatBool(withData)}}

	var items map[string]RSSFeed
	if err := qb.getJSON(ctx, "rss/items", query, nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// MarkRSSAsRead marks one article, or with an empty articleID the whole
// item, as read.
func (qb *Client) MarkRSSAsRead(ctx context.Context, itemPath, articleID string) error {
	form := url.Values{"itemPath": {itemPath}}
	if articleID != "" {
		form.Set("articleId", articleID)
	}
	_, err := qb.postForm(ctx, "rss/markAsRead", form, nil)
	return err
}

// RefreshRSSItem triggers a fetch of a feed or folder.
func (qb *Client) RefreshRSSItem(ctx context.Context, itemPath string) error {
	form := url.Values{"itemPath": {itemPath}}
	_, err := qb.postForm(ctx, "rss/refreshItem", form, nil)
	return err
}

// SetRSSRule creates or replaces an auto-download rule.
func (qb *Client) SetRSSRule(ctx context.Context, name string, rule *RSSRule) error {
	def, err := json.Marshal(rule)
	if err != nil {
		return fmt.Errorf("failed to marshal rule: %w", err)
	}

	form := url.Values{
		"ruleName": {name},
		"ruleDef":  {string(def)},
	}
	_, err = qb.postForm(ctx, "rss/setRule", form, nil)
	return err
}

// RenameRSSRule renames an auto-download rule.
func (qb *Client) RenameRSSRule(ctx context.Context, name, newName string) error {
	form := url.Values{
		"ruleName":    {name},
		"newRuleName": {newName},
	}
	_, err := qb.postForm(ctx, "rss/renameRule", form, nil)
	return err
}

// RemoveRSSRule deletes an auto-download rule.
func (qb *Client) RemoveRSSRule(ctx context.Context, name string) error {
	form := url.Values{"ruleName": {name}}
	_, err := qb.postForm(ctx, "rss/removeRule", form, nil)
	return err
}

// GetRSSRules returns every auto-download rule keyed by name.
func (qb *Client) GetRSSRules(ctx context.Context) (map[string]RSSRule, error) {
	var rules map[string]RSSRule
	if err := qb.getJSON(ctx, "rss/rules", nil, nil, &rules); err != nil {
		return nil, err
	}
	return rules, nil
}
