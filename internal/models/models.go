package models

import (
	"strings"
	"time"
)

// Filter places an IgnoreFilter can match against.
const (
	FilterTitle    = "title"
	FilterCompany  = "company"
	FilterLocation = "location"
)

// Keyword is a named bundle of comma-separated search tokens.
type Keyword struct {
	ID    int64
	Name  string
	Words string // comma-separated token list
	Image string
}

// Tokens splits the comma-separated words into trimmed tokens.
func (k Keyword) Tokens() []string {
	parts := strings.Split(k.Words, ",")
	tokens := make([]string, 0, len(parts))
	for _, p := range parts {
		tokens = append(tokens, strings.TrimSpace(p))
	}
	return tokens
}

// IgnoreFilter rejects cards whose field contains the keyword.
// Keyword is stored lower-cased; matching is case-insensitive substring.
type IgnoreFilter struct {
	ID         int64
	Place      string // title | company | location
	Keyword    string
	Enable     bool
	CategoryID *int64
}

// IgnoreFilterCategory groups filters for expression searches.
type IgnoreFilterCategory struct {
	ID     int64
	Name   string
	Enable bool
}

// Channel is a Telegram output channel.
type Channel struct {
	ID          int64
	Name        string
	ChatID      int64
	LastCrawlAt *time.Time
}

// JobSearch is a stored crawl definition for LinkedIn job listings.
type JobSearch struct {
	ID             int64
	URL            string
	Name           string
	Enable         bool
	Message        string // notification template
	Priority       int
	PageCount      int // how many result pages to crawl
	JustEasyApply  bool
	OutputChannel  *Channel
	LastCrawlAt    *time.Time
	LastCrawlCount int

	Keywords        []Keyword
	IgnoreFilters   []IgnoreFilter // enabled filters only
	IgnoredAccounts []string       // account names whose content is always rejected
}

// KeywordTokens flattens every keyword of the search into one token list.
func (js *JobSearch) KeywordTokens() []string {
	var tokens []string
	for _, k := range js.Keywords {
		tokens = append(tokens, k.Tokens()...)
	}
	return tokens
}

// ExpressionSearch is a stored crawl definition for LinkedIn post searches.
type ExpressionSearch struct {
	ID            int64
	URL           string
	Name          string
	Enable        bool
	OutputChannel *Channel
	LastCrawlAt   *time.Time

	IgnoredKeywords []string // from enabled categories, lower-cased
	IgnoredAccounts []string
}

// Job is a persisted record of every crawled job card, eligible or not.
type Job struct {
	ID          int64
	NetworkID   string // stable platform id, unique, used for upserts
	URL         string
	Title       string
	Company     string
	Location    string
	Description string
	Language    string
	CompanySize string
	EasyApply   bool

	SearchID       *int64
	Eligible       bool
	RejectedReason string
	FoundKeywords  string // tokens found in description, comma-separated

	CreatedAt time.Time
}

// IgnoredJob is an append-only record of a rejected card.
type IgnoredJob struct {
	ID          int64
	URL         string
	Title       string
	Company     string
	Location    string
	Description string
	Language    string
	Reason      string
	CreatedAt   time.Time
}

// SocialChannel is a LinkedIn page whose posts the channel crawl stores.
type SocialChannel struct {
	ID          int64
	Name        string
	URL         string
	LastCrawlAt *time.Time
}

// Post is a feed/channel post stored by the channel crawl.
type Post struct {
	ID         int64
	ChannelID  int64
	NetworkID  string
	Body       string
	ShareCount int
	ViewsCount int
}

// Tag is a label scanned for inside ignored jobs.
type Tag struct {
	ID   int64
	Name string
}
