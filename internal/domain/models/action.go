package models

type ActionPriority string

const (
	PriorityHigh   ActionPriority = "high"
	PriorityMedium ActionPriority = "medium"
	PriorityLow    ActionPriority = "low"
)

var priorityOrder = map[ActionPriority]int{
	PriorityHigh:   3,
	PriorityMedium: 2,
	PriorityLow:    1,
}

func (p ActionPriority) Order() int {
	return priorityOrder[p]
}

// ActionItem is one prioritized, time-bound entry of the next-actions list.
type ActionItem struct {
	Priority ActionPriority `json:"priority"`
	Action   string         `json:"action"`
	Company  string         `json:"company"`
	DueDate  string         `json:"due_date"`
	Details  string         `json:"details"`
}
