package provisioning

import "time"

// Mismatch is an existing column whose remote type differs from its declaration.
// It is reported, never corrected.
type Mismatch struct {
	Column   string `json:"column"`
	Declared string `json:"declared"`
	Actual   string `json:"actual"`
}

// ListReport is the outcome of synchronizing one list.
type ListReport struct {
	List           string     `json:"list"`
	ListID         string     `json:"listId"`
	ListCreated    bool       `json:"listCreated"`
	ColumnsCreated []string   `json:"columnsCreated,omitempty"`
	ColumnsSkipped []string   `json:"columnsSkipped,omitempty"`
	Mismatches     []Mismatch `json:"mismatches,omitempty"`
}

// Run statuses.
const (
	StatusSucceeded = "succeeded"
	StatusFailed    = "failed"
)

// RunReport is the outcome of one provisioning run.
type RunReport struct {
	RunID      string       `json:"runId"`
	SiteID     string       `json:"siteId,omitempty"`
	Status     string       `json:"status"`
	StartedAt  time.Time    `json:"startedAt"`
	FinishedAt time.Time    `json:"finishedAt"`
	Lists      []ListReport `json:"lists"`
	ListIDs    NameToID     `json:"listIds"`
	FailedList string       `json:"failedList,omitempty"`
	Error      string       `json:"error,omitempty"`
}

// ListsProcessed counts lists synchronized to completion.
func (r *RunReport) ListsProcessed() int {
	n := len(r.Lists)
	if r.FailedList != "" && n > 0 {
		n--
	}
	return n
}

func (r *RunReport) ListsCreated() int {
	n := 0
	for _, l := range r.Lists {
		if l.ListCreated {
			n++
		}
	}
	return n
}

func (r *RunReport) ColumnsCreated() int {
	n := 0
	for _, l := range r.Lists {
		n += len(l.ColumnsCreated)
	}
	return n
}

func (r *RunReport) ColumnsSkipped() int {
	n := 0
	for _, l := range r.Lists {
		n += len(l.ColumnsSkipped)
	}
	return n
}

func (r *RunReport) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}
