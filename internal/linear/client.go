// Package linear is a typed client for the slice of Linear's GraphQL API
// the planner consumes: teams, projects, cycles, issues and their status
// history, plus the project-field writebacks.
package linear

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/veho-technologies/tech-execution-planning/config"
	"github.com/veho-technologies/tech-execution-planning/pkg/cache"
)

// ErrNotConfigured is returned when no API key is set. Handlers map it to a
// 500 with the message passed through so misconfiguration is diagnosable.
var ErrNotConfigured = errors.New("linear: api key is not configured")

// historyPageSize bounds one page of issue history. Linear caps page sizes
// at 250; 200 matches what the dashboard has always requested.
const historyPageSize = 200

// Client talks to the Linear GraphQL endpoint. A nil cache disables the
// read-through layer and every lookup goes straight to the API.
type Client struct {
	endpoint   string
	apiKey     string
	httpClient *http.Client
	cache      *cache.Client
	logger     *zap.Logger
}

// NewClient builds a Client from config.
func NewClient(cfg *config.LinearConfig, cacheClient *cache.Client, logger *zap.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		endpoint:   cfg.Endpoint,
		apiKey:     cfg.APIKey,
		httpClient: &http.Client{Timeout: timeout},
		cache:      cacheClient,
		logger:     logger,
	}
}

type graphqlRequest struct {
	Query     string                 `json:"query"`
	Variables map[string]interface{} `json:"variables,omitempty"`
}

type graphqlError struct {
	Message string `json:"message"`
}

type graphqlResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []graphqlError  `json:"errors"`
}

// do executes one GraphQL request and decodes data into out.
func (c *Client) do(ctx context.Context, query string, variables map[string]interface{}, out interface{}) error {
	if c.apiKey == "" {
		return ErrNotConfigured
	}

	body, err := json.Marshal(graphqlRequest{Query: query, Variables: variables})
	if err != nil {
		return fmt.Errorf("linear: encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("linear: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("linear: request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("linear: read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("linear: HTTP %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}

	var gqlResp graphqlResponse
	if err := json.Unmarshal(raw, &gqlResp); err != nil {
		return fmt.Errorf("linear: decode response: %w", err)
	}
	if len(gqlResp.Errors) > 0 {
		msgs := make([]string, len(gqlResp.Errors))
		for i, e := range gqlResp.Errors {
			msgs[i] = e.Message
		}
		return fmt.Errorf("linear: %s", strings.Join(msgs, "; "))
	}

	if err := json.Unmarshal(gqlResp.Data, out); err != nil {
		return fmt.Errorf("linear: decode data: %w", err)
	}
	return nil
}

// cachedQuery runs the query through the read-through cache.
func (c *Client) cachedQuery(ctx context.Context, key, query string, variables map[string]interface{}, out interface{}) error {
	if c.cache.GetJSON(ctx, key, out) {
		return nil
	}
	if err := c.do(ctx, query, variables, out); err != nil {
		return err
	}
	c.cache.SetJSON(ctx, key, out)
	return nil
}

// ── reads ──

const teamsQuery = `query Teams {
  teams { nodes { id name key } }
}`

// Teams lists every Linear team visible to the API key.
func (c *Client) Teams(ctx context.Context) ([]Team, error) {
	var data struct {
		Teams struct {
			Nodes []Team `json:"nodes"`
		} `json:"teams"`
	}
	if err := c.cachedQuery(ctx, "linear:teams", teamsQuery, nil, &data); err != nil {
		return nil, err
	}
	return data.Teams.Nodes, nil
}

const teamProjectsQuery = `query TeamProjects($teamId: String!) {
  team(id: $teamId) {
    projects {
      nodes {
        id name description state priority progress url
        startDate targetDate createdAt updatedAt
        lead { id name email }
      }
    }
  }
}`

// TeamProjects lists the projects of one team, including leads.
func (c *Client) TeamProjects(ctx context.Context, teamID string) ([]Project, error) {
	var data struct {
		Team struct {
			Projects struct {
				Nodes []Project `json:"nodes"`
			} `json:"projects"`
		} `json:"team"`
	}
	key := "linear:projects:" + teamID
	if err := c.cachedQuery(ctx, key, teamProjectsQuery, map[string]interface{}{"teamId": teamID}, &data); err != nil {
		return nil, err
	}
	return data.Team.Projects.Nodes, nil
}

const projectQuery = `query Project($projectId: String!) {
  project(id: $projectId) {
    id name description state priority progress url
    startDate targetDate createdAt updatedAt
    lead { id name email }
  }
}`

// Project fetches one project by ID. Never cached: the bulk refresh exists
// to bypass stale data.
func (c *Client) Project(ctx context.Context, projectID string) (*Project, error) {
	var data struct {
		Project *Project `json:"project"`
	}
	if err := c.do(ctx, projectQuery, map[string]interface{}{"projectId": projectID}, &data); err != nil {
		return nil, err
	}
	if data.Project == nil {
		return nil, fmt.Errorf("linear: project %s not found", projectID)
	}
	return data.Project, nil
}

const teamCyclesQuery = `query TeamCycles($teamId: String!) {
  team(id: $teamId) {
    cycles {
      nodes { id name number startsAt endsAt completedAt progress }
    }
  }
}`

// TeamCycles lists the cycles of one team.
func (c *Client) TeamCycles(ctx context.Context, teamID string) ([]Cycle, error) {
	var data struct {
		Team struct {
			Cycles struct {
				Nodes []Cycle `json:"nodes"`
			} `json:"cycles"`
		} `json:"team"`
	}
	key := "linear:cycles:" + teamID
	if err := c.cachedQuery(ctx, key, teamCyclesQuery, map[string]interface{}{"teamId": teamID}, &data); err != nil {
		return nil, err
	}
	return data.Team.Cycles.Nodes, nil
}

const issueQuery = `query Issue($issueId: String!) {
  issue(id: $issueId) {
    id identifier title priority priorityLabel estimate url createdAt updatedAt
    state { id name type }
    assignee { id name email }
    project { id name }
  }
}`

// Issue fetches one issue with assignee, project, state and estimate.
// Never cached: sync-actuals needs fresh state.
func (c *Client) Issue(ctx context.Context, issueID string) (*Issue, error) {
	var data struct {
		Issue *Issue `json:"issue"`
	}
	if err := c.do(ctx, issueQuery, map[string]interface{}{"issueId": issueID}, &data); err != nil {
		return nil, err
	}
	if data.Issue == nil {
		return nil, fmt.Errorf("linear: issue %s not found", issueID)
	}
	return data.Issue, nil
}

const cycleIssuesQuery = `query CycleIssues($cycleId: String!, $after: String) {
  cycle(id: $cycleId) {
    issues(first: 100, after: $after) {
      pageInfo { hasNextPage endCursor }
      nodes {
        id identifier title priority priorityLabel estimate url createdAt updatedAt
        state { id name type }
        assignee { id name email }
        project { id name }
      }
    }
  }
}`

// CycleIssues lists every issue in a cycle, following pagination.
func (c *Client) CycleIssues(ctx context.Context, cycleID string) ([]Issue, error) {
	var all []Issue
	var after *string
	for {
		var data struct {
			Cycle struct {
				Issues struct {
					PageInfo struct {
						HasNextPage bool   `json:"hasNextPage"`
						EndCursor   string `json:"endCursor"`
					} `json:"pageInfo"`
					Nodes []Issue `json:"nodes"`
				} `json:"issues"`
			} `json:"cycle"`
		}
		vars := map[string]interface{}{"cycleId": cycleID}
		if after != nil {
			vars["after"] = *after
		}
		if err := c.do(ctx, cycleIssuesQuery, vars, &data); err != nil {
			return nil, err
		}
		all = append(all, data.Cycle.Issues.Nodes...)
		if !data.Cycle.Issues.PageInfo.HasNextPage {
			return all, nil
		}
		cursor := data.Cycle.Issues.PageInfo.EndCursor
		after = &cursor
	}
}

const issueHistoryQuery = `query IssueHistory($issueId: String!, $first: Int!, $after: String) {
  issue(id: $issueId) {
    history(first: $first, after: $after) {
      pageInfo { hasNextPage endCursor }
      nodes {
        createdAt
        toState { id name type }
      }
    }
  }
}`

// IssueHistory fetches an issue's chronological status-transition history,
// following pagination. Entries that did not change the workflow state come
// back with a nil ToState and are kept for the caller to filter.
func (c *Client) IssueHistory(ctx context.Context, issueID string) ([]HistoryEntry, error) {
	var all []HistoryEntry
	var after *string
	for {
		var data struct {
			Issue struct {
				History struct {
					PageInfo struct {
						HasNextPage bool   `json:"hasNextPage"`
						EndCursor   string `json:"endCursor"`
					} `json:"pageInfo"`
					Nodes []HistoryEntry `json:"nodes"`
				} `json:"history"`
			} `json:"issue"`
		}
		vars := map[string]interface{}{"issueId": issueID, "first": historyPageSize}
		if after != nil {
			vars["after"] = *after
		}
		if err := c.do(ctx, issueHistoryQuery, vars, &data); err != nil {
			return nil, err
		}
		all = append(all, data.Issue.History.Nodes...)
		if !data.Issue.History.PageInfo.HasNextPage {
			return all, nil
		}
		cursor := data.Issue.History.PageInfo.EndCursor
		after = &cursor
	}
}

// ── writes ──

const updateProjectMutation = `mutation UpdateProject($projectId: String!, $input: ProjectUpdateInput!) {
  projectUpdate(id: $projectId, input: $input) { success }
}`

// UpdateProject writes date/priority/state fields on a Linear project.
func (c *Client) UpdateProject(ctx context.Context, projectID string, input ProjectUpdateInput) error {
	var data struct {
		ProjectUpdate struct {
			Success bool `json:"success"`
		} `json:"projectUpdate"`
	}
	err := c.do(ctx, updateProjectMutation, map[string]interface{}{
		"projectId": projectID,
		"input":     input,
	}, &data)
	if err != nil {
		return err
	}
	if !data.ProjectUpdate.Success {
		return fmt.Errorf("linear: project update rejected for %s", projectID)
	}
	return nil
}

const createProjectUpdateMutation = `mutation CreateProjectUpdate($projectId: String!, $body: String!) {
  projectUpdateCreate(input: { projectId: $projectId, body: $body }) { success }
}`

// CreateProjectUpdate posts a free-text update to a project's feed, used as
// an audit trail for field changes made from the planner.
func (c *Client) CreateProjectUpdate(ctx context.Context, projectID, body string) error {
	var data struct {
		ProjectUpdateCreate struct {
			Success bool `json:"success"`
		} `json:"projectUpdateCreate"`
	}
	err := c.do(ctx, createProjectUpdateMutation, map[string]interface{}{
		"projectId": projectID,
		"body":      body,
	}, &data)
	if err != nil {
		return err
	}
	if !data.ProjectUpdateCreate.Success {
		return fmt.Errorf("linear: project update post rejected for %s", projectID)
	}
	return nil
}
