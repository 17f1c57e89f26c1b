// Package search holds the denormalized search document and the transient
// result DTO exchanged with the index backend.
package search

import "time"

// Document is the flattened projection of one player at the moment of
// (re)indexing. The document id always equals the player id; a write either
// replaces the whole document or leaves the prior version queryable. Owned
// exclusively by the index writer.
type Document struct {
	ID         string `json:"id"`
	FullName   string `json:"full_name"`
	FirstName  string `json:"first_name,omitempty"`
	LastName   string `json:"last_name,omitempty"`
	MiddleName string `json:"middle_name,omitempty"`

	BirthDate   *time.Time `json:"birth_date,omitempty"`
	Description string     `json:"description,omitempty"`

	FundID   string `json:"fund_id"`
	FundName string `json:"fund_name,omitempty"`

	Nicknames      []NicknameEntry `json:"nicknames"`
	Contacts       []ContactEntry  `json:"contacts"`
	Locations      []LocationEntry `json:"locations"`
	PaymentMethods []PaymentEntry  `json:"payment_methods"`
	SocialProfiles []SocialEntry   `json:"social_profiles"`

	// Display holds pre-rendered "<type>: <value>" lines for contacts and
	// locations. Stored for rendering only, excluded from matching.
	Display []string `json:"display,omitempty"`

	CasesCount     int        `json:"cases_count"`
	LatestCaseDate *time.Time `json:"latest_case_date,omitempty"`
}

// NicknameEntry is one nested nickname element. Room and discipline are
// matched together within the same element, never across elements.
type NicknameEntry struct {
	Nickname   string `json:"nickname"`
	Room       string `json:"room,omitempty"`
	Discipline string `json:"discipline,omitempty"`
}

// ContactEntry is one nested contact element.
type ContactEntry struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

// LocationEntry is one nested location element.
type LocationEntry struct {
	Country string `json:"country,omitempty"`
	City    string `json:"city,omitempty"`
	Address string `json:"address,omitempty"`
}

// PaymentEntry is one nested payment-method element.
type PaymentEntry struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

// SocialEntry is one nested social-profile element.
type SocialEntry struct {
	Network string `json:"network"`
	Handle  string `json:"handle"`
}
