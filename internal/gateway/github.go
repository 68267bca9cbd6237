// Package gateway provides gateways to the remote APIs the application consumes
// (GitHub, Unsplash) and to the report file it produces.
package gateway

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/go-github/v62/github"
	"github.com/naka-gawa/portfolio-stats/internal/config"
	"github.com/naka-gawa/portfolio-stats/internal/domain"
	"github.com/sirupsen/logrus"
	"golang.org/x/oauth2"

	"github.com/gofri/go-github-ratelimit/github_ratelimit"
)

// reposPerPage is the fixed page size of the repository listing.
const reposPerPage = 100

// RepositoryLister defines the behavior of a gateway listing an account's repositories.
type RepositoryLister interface {
	// ListRepositories is best-effort: a failed page ends the listing and
	// the records gathered so far are returned with Truncated set.
	ListRepositories(ctx context.Context, account string) domain.RepositoryListing
}

// GitHubGateway is the concrete implementation of the RepositoryLister interface.
type GitHubGateway struct {
	restClient *github.Client
	logger     logrus.FieldLogger
}

// NewGitHubGateway is a constructor that creates a new instance of GitHubGateway.
// An empty token yields an anonymous client.
func NewGitHubGateway(cfg config.GitHubConfig, logger logrus.FieldLogger) (RepositoryLister, error) {
	var base http.RoundTripper = http.DefaultTransport
	if cfg.WaitOnRateLimit {
		rateLimitWaiter, err := github_ratelimit.NewRateLimitWaiter(nil, github_ratelimit.WithSingleSleepLimit(1*time.Hour, nil))
		if err != nil {
			return nil, fmt.Errorf("failed to create rate limit waiter: %w", err)
		}
		base = rateLimitWaiter
	}

	transport := base
	if cfg.Token != "" {
		transport = &oauth2.Transport{
			Base:   base,
			Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.Token}),
		}
	}

	client := github.NewClient(&http.Client{Transport: transport})
	if cfg.BaseURL != "" {
		baseURL := cfg.BaseURL
		if !strings.HasSuffix(baseURL, "/") {
			baseURL += "/"
		}
		parsed, err := url.Parse(baseURL)
		if err != nil {
			return nil, fmt.Errorf("invalid GitHub API URL %q: %w", cfg.BaseURL, err)
		}
		client.BaseURL = parsed
	}

	return &GitHubGateway{
		restClient: client,
		logger:     logger,
	}, nil
}

// ListRepositories requests pages 1, 2, ... until an empty page comes back.
func (g *GitHubGateway) ListRepositories(ctx context.Context, account string) domain.RepositoryListing {
	g.logger.WithField("account", account).Debug("Fetching repositories using REST API...")
	opts := &github.RepositoryListByUserOptions{
		ListOptions: github.ListOptions{PerPage: reposPerPage, Page: 1},
	}
	listing := domain.RepositoryListing{Records: []domain.RepositoryRecord{}}
	for {
		repos, _, err := g.restClient.Repositories.ListByUser(ctx, account, opts)
		if err != nil {
			g.logger.WithError(err).WithField("page", opts.Page).Warn("Error fetching repos, listing truncated")
			listing.Truncated = true
			break
		}
		listing.Pages++
		if len(repos) == 0 {
			break
		}
		for _, repo := range repos {
			listing.Records = append(listing.Records, toRecord(repo))
		}
		g.logger.WithField("page", opts.Page).Debugf("  Fetched %d repositories", len(repos))
		opts.Page++
	}
	g.logger.WithField("count", len(listing.Records)).Debug("Completed fetching repositories.")
	return listing
}

func toRecord(repo *github.Repository) domain.RepositoryRecord {
	record := domain.RepositoryRecord{
		Name:      repo.GetName(),
		SizeKB:    repo.GetSize(),
		CreatedAt: repo.GetCreatedAt().Time,
		PushedAt:  repo.GetPushedAt().Time,
		Fork:      repo.GetFork(),
	}
	if repo.Language != nil {
		language := *repo.Language
		record.Language = &language
	}
	return record
}
