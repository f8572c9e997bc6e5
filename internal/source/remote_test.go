package source

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/huangsam/burndown/internal/contract"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJiraSourceLoad(t *testing.T) {
	issues := []map[string]any{
		{"key": "PROJ-1", "fields": map[string]any{"created": "2024-01-01T09:00:00.000+0000", "resolutiondate": "2024-01-04T17:30:00.000+0000", "customfield_10016": 5}},
		{"key": "PROJ-2", "fields": map[string]any{"created": "2024-01-02T09:00:00.000+0000", "resolutiondate": nil, "customfield_10016": "3"}},
		{"key": "PROJ-3", "fields": map[string]any{"created": "2024-01-03T09:00:00.000+0000", "resolutiondate": nil, "customfield_10016": nil}},
	}
	const pageSize = 2

	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		assert.Equal(t, "/rest/api/2/search", r.URL.Path)
		assert.Equal(t, "project = PROJ", r.URL.Query().Get("jql"))
		user, pass, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "bot@example.com", user)
		assert.Equal(t, "secret", pass)

		startAt, _ := strconv.Atoi(r.URL.Query().Get("startAt"))
		end := min(startAt+pageSize, len(issues))
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"startAt":    startAt,
			"maxResults": pageSize,
			"total":      len(issues),
			"issues":     issues[startAt:end],
		})
	}))
	defer server.Close()

	src, err := NewJiraSource(contract.JiraConfig{
		URL:         server.URL,
		Username:    "bot@example.com",
		Token:       "secret",
		JQL:         "project = PROJ",
		PointsField: contract.DefaultJiraPointsField,
	})
	require.NoError(t, err)
	assert.Contains(t, src.Describe(), "project = PROJ")

	records, err := src.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, calls, "Should page through every issue")
	require.Len(t, records, 3)

	assert.Equal(t, "PROJ-1", records[0].Key)
	assert.True(t, time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC).Equal(records[0].Created))
	require.NotNil(t, records[0].Resolved)
	assert.True(t, time.Date(2024, 1, 4, 17, 30, 0, 0, time.UTC).Equal(*records[0].Resolved))
	assert.Equal(t, 5.0, records[0].StoryPoints)

	assert.Nil(t, records[1].Resolved)
	assert.Equal(t, 3.0, records[1].StoryPoints)
	assert.Zero(t, records[2].StoryPoints)
}

// jiraServer serves a single search page with the given issues.
func jiraServer(t *testing.T, issues []map[string]any) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"startAt":    0,
			"maxResults": len(issues),
			"total":      len(issues),
			"issues":     issues,
		})
	}))
	t.Cleanup(server.Close)
	return server
}

func TestJiraSourceLoadKeepsInstanceOffset(t *testing.T) {
	server := jiraServer(t, []map[string]any{
		{"key": "NYC-1", "fields": map[string]any{"created": "2024-01-05T21:00:00.000-0500", "resolutiondate": "2024-01-10T20:30:00.000-0500", "customfield_10016": 2}},
	})

	src, err := NewJiraSource(contract.JiraConfig{URL: server.URL, JQL: "project = NYC", PointsField: contract.DefaultJiraPointsField})
	require.NoError(t, err)
	records, err := src.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 1)

	assert.Equal(t, time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC), contract.ToDate(records[0].Created), "Evening tickets stay on their local day")
	require.NotNil(t, records[0].Resolved)
	assert.Equal(t, time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC), contract.ToDate(*records[0].Resolved))
}

func TestJiraSourceLoadSkipsIssuesWithoutCreated(t *testing.T) {
	server := jiraServer(t, []map[string]any{
		{"key": "PROJ-1", "fields": map[string]any{"created": "2024-01-01T09:00:00.000+0000", "customfield_10016": 5}},
		{"key": "PROJ-2", "fields": map[string]any{"customfield_10016": 3}},
		{"key": "PROJ-3"},
	})

	src, err := NewJiraSource(contract.JiraConfig{URL: server.URL, JQL: "project = PROJ", PointsField: contract.DefaultJiraPointsField})
	require.NoError(t, err)
	records, err := src.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "PROJ-1", records[0].Key)
}

func TestJiraSourceLoadError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"errorMessages":["bad jql"]}`, http.StatusBadRequest)
	}))
	defer server.Close()

	src, err := NewJiraSource(contract.JiraConfig{URL: server.URL, JQL: "nonsense"})
	require.NoError(t, err)
	_, err = src.Load(context.Background())
	assert.ErrorContains(t, err, "failed to search jira issues")
}

func TestGitHubSourceLoad(t *testing.T) {
	var server *httptest.Server
	server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/repos/acme/widgets/issues", r.URL.Path)
		assert.Equal(t, "all", r.URL.Query().Get("state"))
		assert.Equal(t, "sprint-1", r.URL.Query().Get("labels"))
		assert.Equal(t, "Bearer token-123", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		if r.URL.Query().Get("page") == "2" {
			_, _ = fmt.Fprint(w, `[{"number": 4, "state": "open", "created_at": "2024-01-04T00:00:00Z", "labels": [{"name": "points:8"}]}]`)
			return
		}
		w.Header().Set("Link", fmt.Sprintf(`<%s/repos/acme/widgets/issues?page=2>; rel="next"`, server.URL))
		_, _ = fmt.Fprint(w, `[
			{"number": 1, "state": "closed", "created_at": "2024-01-01T10:00:00Z", "closed_at": "2024-01-03T12:00:00Z", "labels": [{"name": "Points: 3"}]},
			{"number": 2, "state": "open", "created_at": "2024-01-02T10:00:00Z", "labels": [{"name": "bug"}]},
			{"number": 3, "state": "open", "created_at": "2024-01-02T11:00:00Z", "pull_request": {"url": "https://example.com/pr/3"}}
		]`)
	}))
	defer server.Close()

	src, err := NewGitHubSource(contract.GitHubConfig{
		Repo:         "acme/widgets",
		Token:        "token-123",
		BaseURL:      server.URL,
		Labels:       []string{"sprint-1"},
		PointsPrefix: contract.DefaultPointsPrefix,
	})
	require.NoError(t, err)

	records, err := src.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 3, "Pull requests should be skipped")

	assert.Equal(t, "#1", records[0].Key)
	require.NotNil(t, records[0].Resolved)
	assert.Equal(t, time.Date(2024, 1, 3, 12, 0, 0, 0, time.UTC), *records[0].Resolved)
	assert.Equal(t, 3.0, records[0].StoryPoints)

	assert.Equal(t, "#2", records[1].Key)
	assert.Nil(t, records[1].Resolved)
	assert.Equal(t, 1.0, records[1].StoryPoints, "Issues without a points label count as one")

	assert.Equal(t, "#4", records[2].Key)
	assert.Equal(t, 8.0, records[2].StoryPoints)
}

func TestGitHubSourceLoadError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"message": "Not Found"}`, http.StatusNotFound)
	}))
	defer server.Close()

	src, err := NewGitHubSource(contract.GitHubConfig{Repo: "acme/missing", BaseURL: server.URL + "/"})
	require.NoError(t, err)
	_, err = src.Load(context.Background())
	assert.ErrorContains(t, err, "failed to fetch GitHub issues")
}
