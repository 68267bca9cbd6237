package usecase

import (
	"fmt"
	"sort"

	"github.com/montanaflynn/stats"
	"github.com/naka-gawa/portfolio-stats/internal/domain"
)

const (
	// TopReposLimit is how many repositories the report ranks.
	TopReposLimit = 10
	// Methodology describes how the estimate was produced.
	Methodology = "GitHub API size with language-specific multipliers and repository characteristics"
)

// BuildReport folds all estimation results into one AggregateReport.
func BuildReport(results []domain.EstimationResult) *domain.AggregateReport {
	report := &domain.AggregateReport{
		TotalRepos:  len(results),
		Methodology: Methodology,
	}

	confidences := make(stats.Float64Data, 0, len(results))
	linesByLanguage := make(map[string]int)
	var languageOrder []string
	for _, result := range results {
		report.TotalLOC += result.EstimatedLOC
		confidences = append(confidences, result.Confidence)

		language := result.LanguageName()
		if _, seen := linesByLanguage[language]; !seen {
			languageOrder = append(languageOrder, language)
		}
		linesByLanguage[language] += result.EstimatedLOC
	}

	// Mean fails only on empty input, which falls back to the base confidence.
	confidence, err := stats.Mean(confidences)
	if err != nil {
		confidence = BaseConfidence
	}
	report.Confidence = confidence
	report.ConfidencePercent = fmt.Sprintf("%.1f%%", confidence*100)

	breakdown := make(domain.LanguageBreakdown, 0, len(languageOrder))
	for _, language := range languageOrder {
		breakdown = append(breakdown, domain.LanguageTotal{Language: language, Lines: linesByLanguage[language]})
	}
	sort.SliceStable(breakdown, func(i, j int) bool {
		return breakdown[i].Lines > breakdown[j].Lines
	})
	report.LanguageBreakdown = breakdown

	ranked := make([]domain.EstimationResult, len(results))
	copy(ranked, results)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].EstimatedLOC > ranked[j].EstimatedLOC
	})
	if len(ranked) > TopReposLimit {
		ranked = ranked[:TopReposLimit]
	}
	report.TopRepos = ranked

	return report
}
