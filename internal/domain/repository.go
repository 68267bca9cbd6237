// Package domain contains the core data structures and domain logic for the application.
package domain

import (
	"bytes"
	"encoding/json"
	"time"
)

// UnknownLanguage is the breakdown bucket for repositories whose listing
// carried no primary language at all.
const UnknownLanguage = "Unknown"

// RepositoryRecord is the subset of repository metadata used for estimation.
// It is read from the listing endpoint and never mutated.
type RepositoryRecord struct {
	Name string
	// SizeKB is the repository size as reported by the API, in kilobytes.
	SizeKB int
	// Language is nil when the listing supplied no language.
	Language  *string
	CreatedAt time.Time
	PushedAt  time.Time
	Fork      bool
}

// RepositoryListing is the outcome of a best-effort listing.
// Truncated is set when a page request failed and the listing stopped early.
type RepositoryListing struct {
	Records   []RepositoryRecord
	Pages     int
	Truncated bool
}

// EstimationResult holds the estimate for a single repository.
type EstimationResult struct {
	Name         string  `json:"name"`
	Language     *string `json:"language"`
	SizeKB       int     `json:"size_kb"`
	EstimatedLOC int     `json:"estimated_loc"`
	Confidence   float64 `json:"confidence"`
	IsFork       bool    `json:"is_fork"`
	LastPushed   string  `json:"last_pushed"`
}

// LanguageName returns the breakdown key for the result.
func (r EstimationResult) LanguageName() string {
	if r.Language == nil {
		return UnknownLanguage
	}
	return *r.Language
}

// LanguageTotal is one entry of the language breakdown.
type LanguageTotal struct {
	Language string
	Lines    int
}

// LanguageBreakdown is an ordered language→lines mapping.
// It marshals to a JSON object that keeps the slice order.
type LanguageBreakdown []LanguageTotal

// MarshalJSON implements json.Marshaler.
func (b LanguageBreakdown) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, entry := range b {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(entry.Language)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		value, err := json.Marshal(entry.Lines)
		if err != nil {
			return nil, err
		}
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// AggregateReport is the full result of one LOC estimation run.
type AggregateReport struct {
	TotalLOC          int                `json:"total_loc"`
	Confidence        float64            `json:"confidence"`
	ConfidencePercent string             `json:"confidence_percent"`
	TotalRepos        int                `json:"total_repos"`
	LanguageBreakdown LanguageBreakdown  `json:"language_breakdown"`
	TopRepos          []EstimationResult `json:"top_repos"`
	Methodology       string             `json:"methodology"`
}
