package source

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/google/go-github/v41/github"
	"github.com/huangsam/burndown/internal/contract"
	"github.com/huangsam/burndown/schema"
	"golang.org/x/oauth2"
)

// defaultIssuePoints is the story points of an issue without a points label.
const defaultIssuePoints = 1.0

// GitHubSource reads ticket records from the issues of a GitHub repository.
// Pull requests are skipped.
type GitHubSource struct {
	cfg    contract.GitHubConfig
	owner  string
	repo   string
	client *github.Client
}

var _ contract.RecordSource = &GitHubSource{} // Compile-time check

// NewGitHubSource creates a GitHub source. A non-empty BaseURL targets GitHub Enterprise.
func NewGitHubSource(cfg contract.GitHubConfig) (*GitHubSource, error) {
	parts := strings.Split(cfg.Repo, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return nil, fmt.Errorf("invalid repository format: %s, expected format: owner/repo", cfg.Repo)
	}

	var httpClient *http.Client
	if cfg.Token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.Token})
		httpClient = oauth2.NewClient(context.Background(), ts)
	}
	client := github.NewClient(httpClient)

	if cfg.BaseURL != "" {
		baseURL := cfg.BaseURL
		if !strings.HasSuffix(baseURL, "/") {
			baseURL += "/"
		}
		parsedURL, err := url.Parse(baseURL)
		if err != nil {
			return nil, fmt.Errorf("invalid github api url: %w", err)
		}
		client.BaseURL = parsedURL
		client.UploadURL = parsedURL
	}

	return &GitHubSource{cfg: cfg, owner: parts[0], repo: parts[1], client: client}, nil
}

// Kind implements the RecordSource interface.
func (s *GitHubSource) Kind() schema.SourceKind { return schema.GitHubSource }

// Describe implements the RecordSource interface.
func (s *GitHubSource) Describe() string {
	return fmt.Sprintf("%s%s/%s?labels=%s&prefix=%s", s.client.BaseURL, s.owner, s.repo, strings.Join(s.cfg.Labels, ","), s.cfg.PointsPrefix)
}

// Load implements the RecordSource interface.
func (s *GitHubSource) Load(ctx context.Context) ([]schema.TicketRecord, error) {
	opts := &github.IssueListByRepoOptions{
		State:  "all",
		Labels: s.cfg.Labels,
		ListOptions: github.ListOptions{
			PerPage: 100,
		},
	}

	var records []schema.TicketRecord
	for {
		issues, resp, err := s.client.Issues.ListByRepo(ctx, s.owner, s.repo, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch GitHub issues: %w", err)
		}
		for _, issue := range issues {
			if issue.IsPullRequest() {
				continue
			}
			records = append(records, s.toRecord(issue))
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}
	return records, nil
}

// toRecord converts a GitHub issue to a ticket record.
func (s *GitHubSource) toRecord(issue *github.Issue) schema.TicketRecord {
	record := schema.TicketRecord{
		Key:         fmt.Sprintf("#%d", issue.GetNumber()),
		Created:     issue.GetCreatedAt().UTC(),
		StoryPoints: s.labelPoints(issue.Labels),
	}
	if issue.GetState() == "closed" && issue.ClosedAt != nil {
		closed := issue.ClosedAt.UTC()
		record.Resolved = &closed
	}
	return record
}

// labelPoints returns the value of the first label carrying the points prefix.
func (s *GitHubSource) labelPoints(labels []*github.Label) float64 {
	for _, label := range labels {
		name := label.GetName()
		if !strings.HasPrefix(strings.ToLower(name), strings.ToLower(s.cfg.PointsPrefix)) {
			continue
		}
		value := strings.TrimSpace(name[len(s.cfg.PointsPrefix):])
		if points, err := strconv.ParseFloat(value, 64); err == nil {
			return points
		}
	}
	return defaultIssuePoints
}
