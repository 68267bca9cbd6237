// Package usecase contains the business logic of the application.
package usecase

import (
	"context"

	"github.com/naka-gawa/portfolio-stats/internal/domain"
	"github.com/naka-gawa/portfolio-stats/internal/gateway"
	"github.com/sirupsen/logrus"
)

// Aggregator is the use case for estimating an account's lines of code.
// It orchestrates listing, per-repository estimation and report building.
type Aggregator struct {
	lister    gateway.RepositoryLister
	estimator *Estimator
	logger    logrus.FieldLogger
}

// NewAggregator creates a new Aggregator instance.
func NewAggregator(lister gateway.RepositoryLister, estimator *Estimator, logger logrus.FieldLogger) *Aggregator {
	return &Aggregator{
		lister:    lister,
		estimator: estimator,
		logger:    logger,
	}
}

// Aggregate lists the account's repositories and builds the report.
// The returned listing tells whether the report may undercount because the
// listing stopped early.
func (a *Aggregator) Aggregate(ctx context.Context, account string) (*domain.AggregateReport, domain.RepositoryListing) {
	a.logger.Debug("Usecase: Starting LOC estimation...")

	listing := a.lister.ListRepositories(ctx, account)
	if listing.Truncated {
		a.logger.WithField("fetched", len(listing.Records)).Warn("Usecase: repository listing is incomplete, totals may undercount")
	}

	results := make([]domain.EstimationResult, 0, len(listing.Records))
	for _, record := range listing.Records {
		results = append(results, a.estimator.Estimate(record))
	}

	report := BuildReport(results)
	a.logger.WithField("total_loc", report.TotalLOC).Debug("Usecase: Aggregation complete.")
	return report, listing
}
