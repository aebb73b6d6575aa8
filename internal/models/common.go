package models

// ErrorResponse is the error body the backend sends on non-2xx responses
type ErrorResponse struct {
	Message string `json:"message"`
}

// Case status values
const (
	StatusActive  = "active"
	StatusPending = "pending"
	StatusClosed  = "closed"
)

// Case priority values
const (
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"
)

// Case represents a matter handled by the practice
type Case struct {
	ID          int    `json:"id" yaml:"id"`
	CaseNumber  string `json:"caseNumber" yaml:"case_number"`
	Title       string `json:"title" yaml:"title"`
	Client      string `json:"client" yaml:"client"`
	Court       string `json:"court" yaml:"court"`
	FilingDate  string `json:"filingDate" yaml:"filing_date"`
	NextHearing string `json:"nextHearing" yaml:"next_hearing"`
	Status      string `json:"status" yaml:"status"`
	Priority    string `json:"priority" yaml:"priority"`
}

// Hearing represents a scheduled court appearance
type Hearing struct {
	ID         int    `json:"id" yaml:"id"`
	CaseNumber string `json:"caseNumber" yaml:"case_number"`
	Title      string `json:"title" yaml:"title"`
	Date       string `json:"date" yaml:"date"`
	Time       string `json:"time" yaml:"time"`
	Court      string `json:"court" yaml:"court"`
}

// DashboardStats summarises the case load
type DashboardStats struct {
	TotalCases   int `json:"totalCases" yaml:"total_cases"`
	PendingCases int `json:"pendingCases" yaml:"pending_cases"`
	ClosedCases  int `json:"closedCases" yaml:"closed_cases"`
	UrgentCases  int `json:"urgentCases" yaml:"urgent_cases"`
}

// Dashboard is the overview shown after login
type Dashboard struct {
	Stats            DashboardStats `json:"stats" yaml:"stats"`
	RecentCases      []Case         `json:"recentCases" yaml:"recent_cases"`
	UpcomingHearings []Hearing      `json:"upcomingHearings" yaml:"upcoming_hearings"`
}
