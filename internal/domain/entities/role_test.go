package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoleRankOrdering(t *testing.T) {
	assert.Equal(t, 0, RoleRoot.Rank())
	assert.Equal(t, 1, RoleAdmin.Rank())
	assert.Equal(t, 2, RoleStaff.Rank())
	assert.Equal(t, 2, RoleSupport.Rank())
	assert.Equal(t, 3, RoleInvestor.Rank())
	assert.Equal(t, 4, RoleGuest.Rank())
}

func TestRoleIsAtLeast(t *testing.T) {
	assert.True(t, RoleRoot.IsAtLeast(RoleAdmin))
	assert.True(t, RoleAdmin.IsAtLeast(RoleAdmin))
	assert.True(t, RoleAdmin.IsAtLeast(RoleInvestor))
	assert.False(t, RoleInvestor.IsAtLeast(RoleAdmin))
	assert.False(t, RoleGuest.IsAtLeast(RoleInvestor))

	// STAFF and SUPPORT share a rank, so each satisfies a gate set on the other.
	assert.True(t, RoleStaff.IsAtLeast(RoleSupport))
	assert.True(t, RoleSupport.IsAtLeast(RoleStaff))
}

func TestRoleAliasGroup(t *testing.T) {
	assert.ElementsMatch(t, []Role{RoleStaff, RoleSupport}, RoleStaff.AliasGroup())
	assert.ElementsMatch(t, []Role{RoleStaff, RoleSupport}, RoleSupport.AliasGroup())
	assert.Equal(t, []Role{RoleAdmin}, RoleAdmin.AliasGroup())
	assert.Nil(t, Role("WIZARD").AliasGroup())
}

func TestParseRole(t *testing.T) {
	tests := []struct {
		raw  string
		want Role
		ok   bool
	}{
		{"ROOT", RoleRoot, true},
		{"admin", RoleAdmin, true},
		{"  staff  ", RoleStaff, true},
		{"Support", RoleSupport, true},
		{"investor", RoleInvestor, true},
		{"GUEST", RoleGuest, true},
		{"", "", false},
		{"superuser", "", false},
		{"ROOT ADMIN", "", false},
	}

	for _, tt := range tests {
		got, ok := ParseRole(tt.raw)
		assert.Equal(t, tt.ok, ok, "raw=%q", tt.raw)
		assert.Equal(t, tt.want, got, "raw=%q", tt.raw)
	}
}

func TestRoleIsValid(t *testing.T) {
	for _, r := range []Role{RoleRoot, RoleAdmin, RoleStaff, RoleSupport, RoleInvestor, RoleGuest} {
		assert.True(t, r.IsValid(), "role %s", r)
	}
	assert.False(t, Role("OPERATOR").IsValid())
	assert.False(t, Role("root").IsValid())
}
