package search

import "time"

// Result is one ranked player hit. Per-request only, never persisted.
type Result struct {
	ID             string          `json:"id"`
	Score          float64         `json:"score"`
	FullName       string          `json:"full_name"`
	FirstName      string          `json:"first_name,omitempty"`
	LastName       string          `json:"last_name,omitempty"`
	MiddleName     string          `json:"middle_name,omitempty"`
	FundName       string          `json:"fund_name,omitempty"`
	Nicknames      []NicknameEntry `json:"nicknames,omitempty"`
	Display        []string        `json:"display,omitempty"`
	CasesCount     int             `json:"cases_count"`
	LatestCaseDate *time.Time      `json:"latest_case_date,omitempty"`
}
