package index

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/fundguard/playersearch/internal/domain"
	"github.com/fundguard/playersearch/internal/domain/search"
)

// Project flattens a player aggregate into a search document. Partial
// source data is fine: missing collections project as empty slices and
// zero aggregates. The one hard invariant is a non-zero player id, since
// the document id is the player id.
func Project(p *domain.Player) (*search.Document, error) {
	if p == nil {
		return nil, fmt.Errorf("nil player")
	}
	if p.ID == uuid.Nil {
		return nil, fmt.Errorf("player has no id")
	}

	doc := &search.Document{
		ID:          p.ID.String(),
		FullName:    strings.TrimSpace(p.FullName),
		FirstName:   p.FirstName,
		LastName:    p.LastName,
		MiddleName:  p.MiddleName,
		BirthDate:   p.BirthDate,
		Description: joinNonEmpty(" ", p.Description, p.AdditionalInfo),
		FundName:    p.FundName,
	}
	if p.FundID != uuid.Nil {
		doc.FundID = p.FundID.String()
	}

	// Discrete name parts win; otherwise best-effort split of the stored
	// full name (not authoritative).
	if doc.FirstName == "" && doc.LastName == "" {
		doc.FirstName, doc.LastName, doc.MiddleName = splitFullName(doc.FullName)
	}
	if doc.FullName == "" {
		doc.FullName = joinNonEmpty(" ", p.FirstName, p.MiddleName, p.LastName)
	}

	doc.Nicknames = make([]search.NicknameEntry, 0, len(p.Nicknames))
	for _, n := range p.Nicknames {
		doc.Nicknames = append(doc.Nicknames, search.NicknameEntry{
			Nickname:   n.Nickname,
			Room:       n.Room,
			Discipline: n.Discipline,
		})
	}

	doc.Contacts = make([]search.ContactEntry, 0, len(p.Contacts))
	for _, c := range p.Contacts {
		doc.Contacts = append(doc.Contacts, search.ContactEntry{Type: c.Type, Value: c.Value})
		doc.Display = append(doc.Display, c.Type+": "+c.Value)
	}

	doc.Locations = make([]search.LocationEntry, 0, len(p.Locations))
	for _, l := range p.Locations {
		doc.Locations = append(doc.Locations, search.LocationEntry{
			Country: l.Country,
			City:    l.City,
			Address: l.Address,
		})
		if line := joinNonEmpty(", ", l.Country, l.City, l.Address); line != "" {
			doc.Display = append(doc.Display, "location: "+line)
		}
	}

	doc.PaymentMethods = make([]search.PaymentEntry, 0, len(p.PaymentMethods))
	for _, m := range p.PaymentMethods {
		doc.PaymentMethods = append(doc.PaymentMethods, search.PaymentEntry{Type: m.Type, Value: m.Value})
	}

	doc.SocialProfiles = make([]search.SocialEntry, 0, len(p.SocialProfiles))
	for _, sp := range p.SocialProfiles {
		doc.SocialProfiles = append(doc.SocialProfiles, search.SocialEntry{Network: sp.Network, Handle: sp.Handle})
	}

	doc.CasesCount = len(p.Cases)
	for _, c := range p.Cases {
		if doc.LatestCaseDate == nil || c.CreatedAt.After(*doc.LatestCaseDate) {
			created := c.CreatedAt
			doc.LatestCaseDate = &created
		}
	}

	return doc, nil
}

// splitFullName breaks a stored full name by whitespace. Two tokens are
// read as "First Last"; a legal triple is read as "Last First Middle" with
// any tail folded into the middle name. Best-effort only.
func splitFullName(full string) (first, last, middle string) {
	parts := strings.Fields(full)
	switch len(parts) {
	case 0:
		return "", "", ""
	case 1:
		return parts[0], "", ""
	case 2:
		return parts[0], parts[1], ""
	default:
		return parts[1], parts[0], strings.Join(parts[2:], " ")
	}
}

func joinNonEmpty(sep string, parts ...string) string {
	kept := parts[:0:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}
