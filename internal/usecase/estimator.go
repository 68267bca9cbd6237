package usecase

import (
	"math"
	"strings"
	"time"

	"github.com/naka-gawa/portfolio-stats/internal/domain"
)

const (
	// DefaultLinesPerKB applies to languages missing from the multiplier table.
	DefaultLinesPerKB = 25.0
	// BaseConfidence is the starting confidence of every estimate.
	BaseConfidence = 0.75

	activeConfidence   = 0.80
	inactiveConfidence = 0.70
	matureAgeFactor    = 1.10
	veteranAgeFactor   = 1.05
	forkLOCFactor      = 0.30
	forkConfidence     = 0.80
	docsConfidence     = 0.90
	docsLanguage       = "Markdown"
)

// DefaultLanguageMultipliers returns a fresh copy of the lines-per-kilobyte table.
func DefaultLanguageMultipliers() map[string]float64 {
	return map[string]float64{
		"TypeScript": 25,
		"JavaScript": 28,
		"Python":     32,
		"Java":       20,
		"C++":        18,
		"C":          18,
		"Go":         22,
		"Rust":       20,
		"Swift":      24,
		"Ruby":       30,
		"PHP":        26,
		"HTML":       35,
		"CSS":        40,
		"SCSS":       38,
		"Shell":      35,
		"Dockerfile": 30,
		"YAML":       45,
		"JSON":       50,
		"Markdown":   40,
		"SQL":        25,
	}
}

// Estimator derives a heuristic line count and confidence from repository metadata.
type Estimator struct {
	multipliers map[string]float64
	now         func() time.Time
}

// NewEstimator creates an Estimator. The multiplier table is copied, so
// later changes to the argument do not affect estimates. A nil now uses time.Now.
func NewEstimator(multipliers map[string]float64, now func() time.Time) *Estimator {
	table := make(map[string]float64, len(multipliers))
	for language, multiplier := range multipliers {
		table[language] = multiplier
	}
	if now == nil {
		now = time.Now
	}
	return &Estimator{multipliers: table, now: now}
}

// Estimate computes the estimate for a single repository.
func (e *Estimator) Estimate(record domain.RepositoryRecord) domain.EstimationResult {
	now := e.now()

	multiplier := DefaultLinesPerKB
	if record.Language != nil {
		if m, ok := e.multipliers[*record.Language]; ok {
			multiplier = m
		}
	}

	// Older repositories tend to carry more code per KB.
	if !record.CreatedAt.IsZero() {
		ageDays := daysBetween(record.CreatedAt, now)
		if ageDays > 365 {
			multiplier *= matureAgeFactor
		}
		if ageDays > 730 {
			multiplier *= veteranAgeFactor
		}
	}

	confidence := BaseConfidence
	lastPushed := "Never"
	if !record.PushedAt.IsZero() {
		lastPushed = record.PushedAt.UTC().Format(time.RFC3339)
		switch sincePush := daysBetween(record.PushedAt, now); {
		case sincePush < 30:
			confidence = activeConfidence
		case sincePush > 365:
			confidence = inactiveConfidence
		}
	}

	loc := int(math.Floor(float64(record.SizeKB) * multiplier))

	if record.Fork {
		loc = int(math.Floor(float64(loc) * forkLOCFactor))
		confidence *= forkConfidence
	}

	if (record.Language != nil && *record.Language == docsLanguage) ||
		strings.Contains(strings.ToLower(record.Name), "docs") {
		confidence *= docsConfidence
	}

	if loc < 0 {
		loc = 0
	}

	return domain.EstimationResult{
		Name:         record.Name,
		Language:     record.Language,
		SizeKB:       record.SizeKB,
		EstimatedLOC: loc,
		Confidence:   confidence,
		IsFork:       record.Fork,
		LastPushed:   lastPushed,
	}
}

// daysBetween returns the number of whole days from t to now.
func daysBetween(t, now time.Time) int {
	return int(now.Sub(t).Hours() / 24)
}
