package source

import (
	"context"
	"fmt"
	"strconv"
	"time"

	jira "github.com/andygrunwald/go-jira"
	"github.com/huangsam/burndown/internal/contract"
	"github.com/huangsam/burndown/schema"
)

// jiraPageSize is the number of issues requested per search call.
const jiraPageSize = 100

// JiraSource reads ticket records from a Jira JQL search.
type JiraSource struct {
	cfg    contract.JiraConfig
	client *jira.Client
}

var _ contract.RecordSource = &JiraSource{} // Compile-time check

// NewJiraSource creates a Jira source using basic auth with an API token.
func NewJiraSource(cfg contract.JiraConfig) (*JiraSource, error) {
	// Create JIRA authentication transport
	tp := jira.BasicAuthTransport{
		Username: cfg.Username,
		Password: cfg.Token,
	}
	client, err := jira.NewClient(tp.Client(), cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to create jira client: %w", err)
	}
	return &JiraSource{cfg: cfg, client: client}, nil
}

// Kind implements the RecordSource interface.
func (s *JiraSource) Kind() schema.SourceKind { return schema.JiraSource }

// Describe implements the RecordSource interface.
func (s *JiraSource) Describe() string {
	return fmt.Sprintf("%s?jql=%s&points=%s", s.cfg.URL, s.cfg.JQL, s.cfg.PointsField)
}

// Load implements the RecordSource interface. It pages through the search
// until every matching issue has been read.
func (s *JiraSource) Load(ctx context.Context) ([]schema.TicketRecord, error) {
	opts := &jira.SearchOptions{
		MaxResults: jiraPageSize,
		Fields:     []string{"created", "resolutiondate", s.cfg.PointsField},
	}

	var records []schema.TicketRecord
	for {
		issues, resp, err := s.client.Issue.SearchWithContext(ctx, s.cfg.JQL, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to search jira issues: %w", err)
		}
		for _, issue := range issues {
			if record, ok := s.toRecord(issue); ok {
				records = append(records, record)
			}
		}

		opts.StartAt += len(issues)
		if len(issues) == 0 || resp == nil || opts.StartAt >= resp.Total {
			break
		}
	}
	return records, nil
}

// toRecord converts a Jira issue to a ticket record. The boolean is false for
// issues without a creation date, which never count toward scope.
// Timestamps keep the instance's offset so contract.ToDate buckets them on the local calendar day.
func (s *JiraSource) toRecord(issue jira.Issue) (schema.TicketRecord, bool) {
	if issue.Fields == nil {
		return schema.TicketRecord{}, false
	}
	created := time.Time(issue.Fields.Created)
	if created.IsZero() {
		return schema.TicketRecord{}, false
	}

	record := schema.TicketRecord{Key: issue.Key, Created: created}
	if resolved := time.Time(issue.Fields.Resolutiondate); !resolved.IsZero() {
		record.Resolved = &resolved
	}
	record.StoryPoints = pointsValue(issue.Fields.Unknowns[s.cfg.PointsField])
	return record, true
}

// pointsValue reads a story point custom field. Missing, unreadable or negative values count as zero.
func pointsValue(raw any) float64 {
	var points float64
	switch v := raw.(type) {
	case float64:
		points = v
	case int:
		points = float64(v)
	case string:
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			points = f
		}
	}
	if !schema.ValidStoryPoints(points) {
		return 0
	}
	return points
}
