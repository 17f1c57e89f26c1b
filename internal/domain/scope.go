package domain

import "github.com/google/uuid"

// Scope is the tenant scope of an already-authenticated caller. It is a
// mandatory parameter on every read path: non-admin callers only see
// players created by their own fund, admins see everything. The gateway
// authenticates the caller; this subsystem only enforces the scope.
type Scope struct {
	fundID uuid.UUID
	admin  bool
}

// NewScope creates a fund-bound scope for a regular caller.
func NewScope(fundID uuid.UUID) Scope {
	return Scope{fundID: fundID}
}

// AdminScope creates an unrestricted scope.
func AdminScope() Scope {
	return Scope{admin: true}
}

// FundID returns the caller's fund. Zero for admin scopes.
func (s Scope) FundID() uuid.UUID { return s.fundID }

// Admin reports whether the scope is unrestricted.
func (s Scope) Admin() bool { return s.admin }

// Allows reports whether a record owned by fundID is visible to the caller.
func (s Scope) Allows(fundID uuid.UUID) bool {
	return s.admin || s.fundID == fundID
}
