package domain

import (
	"time"

	"github.com/google/uuid"
)

// Player is the authoritative player aggregate as read from the relational
// store. The search subsystem never mutates it; it is loaded with all owned
// collections eagerly populated (possibly empty, never nil-checked by
// callers) and projected into a search document.
type Player struct {
	ID             uuid.UUID
	FullName       string
	FirstName      string
	LastName       string
	MiddleName     string
	BirthDate      *time.Time
	ContactInfo    string
	AdditionalInfo string
	Description    string

	Contacts       []Contact
	Locations      []Location
	Nicknames      []Nickname
	PaymentMethods []PaymentMethod
	SocialProfiles []SocialProfile
	Cases          []CaseRef

	FundID   uuid.UUID
	FundName string
}

// Contact is an owned contact record (phone, email, messenger handle).
type Contact struct {
	Type        string
	Value       string
	Description string
}

// Location is an owned location record.
type Location struct {
	Country string
	City    string
	Address string
}

// Nickname is an in-game identity, tagged with the poker room and the
// discipline it was observed in.
type Nickname struct {
	Nickname   string
	Room       string
	Discipline string
}

// PaymentMethod is an owned payment identity (wallet, card, crypto address).
type PaymentMethod struct {
	Type  string
	Value string
}

// SocialProfile is an owned social-media handle.
type SocialProfile struct {
	Network string
	Handle  string
}

// CaseRef is the slice of a case the search subsystem cares about:
// enough to compute per-player aggregates.
type CaseRef struct {
	ID        uuid.UUID
	CreatedAt time.Time
}
