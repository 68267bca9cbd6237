package usecase

import (
	"context"

	"github.com/naka-gawa/portfolio-stats/internal/domain"
	"github.com/naka-gawa/portfolio-stats/internal/gateway"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// ImageCollector looks up one representative photo per topic.
type ImageCollector struct {
	searcher    gateway.ImageSearcher
	topics      []domain.Topic
	orientation string
	concurrency int
	logger      logrus.FieldLogger
}

// NewImageCollector creates an ImageCollector. A concurrency below 1 means
// one lookup at a time.
func NewImageCollector(searcher gateway.ImageSearcher, topics []domain.Topic, orientation string, concurrency int, logger logrus.FieldLogger) *ImageCollector {
	if concurrency < 1 {
		concurrency = 1
	}
	return &ImageCollector{
		searcher:    searcher,
		topics:      append([]domain.Topic(nil), topics...),
		orientation: orientation,
		concurrency: concurrency,
		logger:      logger,
	}
}

// Collect searches every topic. A failed lookup is logged and recorded on
// its own entry; it never stops the batch. Lookups are returned in topic order.
func (c *ImageCollector) Collect(ctx context.Context) []domain.ImageLookup {
	lookups := make([]domain.ImageLookup, len(c.topics))

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(c.concurrency)
	for i, topic := range c.topics {
		i, topic := i, topic
		eg.Go(func() error {
			lookups[i] = c.lookup(egCtx, topic)
			return nil
		})
	}
	// Workers never return an error.
	_ = eg.Wait()

	return lookups
}

func (c *ImageCollector) lookup(ctx context.Context, topic domain.Topic) domain.ImageLookup {
	image, err := c.searcher.SearchImage(ctx, topic.Query, c.orientation)
	if err != nil {
		c.logger.WithError(err).WithField("query", topic.Query).Warn("Error fetching image")
		return domain.ImageLookup{Topic: topic, Err: err}
	}
	if image == nil {
		c.logger.WithField("query", topic.Query).Info("No image found")
	}
	return domain.ImageLookup{Topic: topic, Image: image}
}
