package linear

import "time"

// Team is a Linear team.
type Team struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Key  string `json:"key"`
}

// User is a Linear user, used for assignees and project leads.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Project is a Linear project with the descriptive metadata the dashboard
// reads live instead of storing.
type Project struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	State       string     `json:"state"`
	Priority    int        `json:"priority"`
	Progress    float64    `json:"progress"`
	URL         string     `json:"url"`
	StartDate   *string    `json:"startDate"`
	TargetDate  *string    `json:"targetDate"`
	Lead        *User      `json:"lead"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// Cycle is Linear's sprint-like time grouping of issues.
type Cycle struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Number      int        `json:"number"`
	StartsAt    time.Time  `json:"startsAt"`
	EndsAt      time.Time  `json:"endsAt"`
	CompletedAt *time.Time `json:"completedAt"`
	Progress    float64    `json:"progress"`
}

// WorkflowState is an issue's workflow status.
type WorkflowState struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
}

// IssueProjectRef is the project summary embedded in an issue payload.
type IssueProjectRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Issue is a Linear issue with the fields the planner consumes.
type Issue struct {
	ID            string           `json:"id"`
	Identifier    string           `json:"identifier"`
	Title         string           `json:"title"`
	Priority      int              `json:"priority"`
	PriorityLabel string           `json:"priorityLabel"`
	Estimate      *float64         `json:"estimate"`
	State         *WorkflowState   `json:"state"`
	Assignee      *User            `json:"assignee"`
	Project       *IssueProjectRef `json:"project"`
	URL           string           `json:"url"`
	CreatedAt     time.Time        `json:"createdAt"`
	UpdatedAt     time.Time        `json:"updatedAt"`
}

// HistoryEntry is one status transition from an issue's history. Only
// entries that changed the workflow state carry a ToState.
type HistoryEntry struct {
	CreatedAt time.Time      `json:"createdAt"`
	ToState   *WorkflowState `json:"toState"`
}

// ProjectUpdateInput carries the mutable project fields the planner writes
// back. Nil fields are left untouched.
type ProjectUpdateInput struct {
	StartDate  *string `json:"startDate,omitempty"`
	TargetDate *string `json:"targetDate,omitempty"`
	Priority   *int    `json:"priority,omitempty"`
	State      *string `json:"state,omitempty"`
}

// PriorityLabel maps Linear's numeric priority to its display name.
func PriorityLabel(priority int) string {
	switch priority {
	case 1:
		return "Urgent"
	case 2:
		return "High"
	case 3:
		return "Normal"
	case 4:
		return "Low"
	default:
		return "None"
	}
}
