package entities

import "strings"

// Role represents a user role with an ordered privilege rank
type Role string

const (
	RoleRoot     Role = "ROOT"
	RoleAdmin    Role = "ADMIN"
	RoleStaff    Role = "STAFF"
	RoleSupport  Role = "SUPPORT"
	RoleInvestor Role = "INVESTOR"
	RoleGuest    Role = "GUEST"
)

// roleRanks maps each role to its privilege rank. Rank 0 is the highest
// privilege; STAFF and SUPPORT share a rank and are interchangeable.
var roleRanks = map[Role]int{
	RoleRoot:     0,
	RoleAdmin:    1,
	RoleStaff:    2,
	RoleSupport:  2,
	RoleInvestor: 3,
	RoleGuest:    4,
}

// Rank returns the numeric privilege rank of the role
func (r Role) Rank() int {
	return roleRanks[r]
}

// IsValid reports whether the role is a member of the role table
func (r Role) IsValid() bool {
	_, ok := roleRanks[r]
	return ok
}

// IsAtLeast reports whether the role is equal-or-more-privileged than min
func (r Role) IsAtLeast(min Role) bool {
	return r.Rank() <= min.Rank()
}

// IsRoot reports whether the role is the ROOT role
func (r Role) IsRoot() bool {
	return r == RoleRoot
}

// AliasGroup returns the set of roles sharing this role's rank
func (r Role) AliasGroup() []Role {
	if r == RoleStaff || r == RoleSupport {
		return []Role{RoleStaff, RoleSupport}
	}
	if !r.IsValid() {
		return nil
	}
	return []Role{r}
}

// ParseRole converts a raw string into a Role. Raw input is only validated
// here; the rest of the domain never sees an unchecked role value.
func ParseRole(raw string) (Role, bool) {
	role := Role(strings.ToUpper(strings.TrimSpace(raw)))
	if !role.IsValid() {
		return "", false
	}
	return role, true
}
