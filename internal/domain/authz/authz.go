// Package authz is the single authorization choke point for the domain
// layer. Every mutating usecase asks the evaluator before the first storage
// round-trip; no component downstream re-implements privilege checks.
package authz

import (
	"github.com/google/uuid"
	"fundstack.backend/internal/domain/entities"
)

// Operation names a guarded domain operation
type Operation string

const (
	OpViewOwnProfile       Operation = "ViewOwnProfile"
	OpUpdateOwnProfile     Operation = "UpdateOwnProfile"
	OpViewAnyProfile       Operation = "ViewAnyProfile"
	OpListUsers            Operation = "ListUsers"
	OpUpdateUserStatus     Operation = "UpdateUserStatus"
	OpUpdateUserRole       Operation = "UpdateUserRole"
	OpDeleteUser           Operation = "DeleteUser"
	OpCreateStructure      Operation = "CreateStructure"
	OpViewStructure        Operation = "ViewStructure"
	OpUpdateStructure      Operation = "UpdateStructure"
	OpUpdateFinancials     Operation = "UpdateFinancials"
	OpDeleteStructure      Operation = "DeleteStructure"
	OpCreateInvestment     Operation = "CreateInvestment"
	OpDeployContract       Operation = "DeployContract"
	OpUpdateContractStatus Operation = "UpdateContractStatus"
	OpUpdateContract       Operation = "UpdateContract"
	OpDeleteContract       Operation = "DeleteContract"
)

// Actor is the resolved caller identity and role
type Actor struct {
	ID   uuid.UUID
	Role entities.Role
}

// Resource is the optional ownership and role context of the target
type Resource struct {
	OwnerID    uuid.UUID
	TargetRole entities.Role
}

// Decision is the evaluator verdict. Reason is set only on deny.
type Decision struct {
	Allowed bool
	Reason  string
}

func allow() Decision            { return Decision{Allowed: true} }
func deny(reason string) Decision { return Decision{Reason: reason} }

// rootOnly lists operations only ROOT accounts may perform
var rootOnly = map[Operation]bool{
	OpListUsers:        true,
	OpUpdateUserStatus: true,
	OpUpdateUserRole:   true,
	OpDeleteUser:       true,
}

// ownScoped lists operations scoped to a resource the actor owns
var ownScoped = map[Operation]bool{
	OpViewOwnProfile:   true,
	OpUpdateOwnProfile: true,
}

// viewAny maps an own-scoped operation to the minimum role that may act
// on resources owned by somebody else
var viewAny = map[Operation]entities.Role{
	OpViewOwnProfile: entities.RoleAdmin,
}

// minRole grants the remaining operations by minimum role rank.
// STAFF and SUPPORT alias to the same rank and pass the same gates.
var minRole = map[Operation]entities.Role{
	OpViewAnyProfile:       entities.RoleAdmin,
	OpCreateStructure:      entities.RoleAdmin,
	OpViewStructure:        entities.RoleInvestor,
	OpUpdateStructure:      entities.RoleAdmin,
	OpUpdateFinancials:     entities.RoleAdmin,
	OpDeleteStructure:      entities.RoleAdmin,
	OpCreateInvestment:     entities.RoleStaff,
	OpDeployContract:       entities.RoleAdmin,
	OpUpdateContractStatus: entities.RoleAdmin,
	OpUpdateContract:       entities.RoleAdmin,
	OpDeleteContract:       entities.RoleAdmin,
}

// targetsAccount lists operations that modify another account and are
// therefore subject to the ROOT-protection invariant
var targetsAccount = map[Operation]bool{
	OpUpdateUserStatus: true,
	OpUpdateUserRole:   true,
	OpDeleteUser:       true,
}

// Authorize decides ALLOW or DENY for op. Rules are evaluated in order and
// the first match wins; the result is total over the declared operation set.
func Authorize(actor Actor, op Operation, res Resource) Decision {
	// ROOT accounts can never be deactivated, demoted or deleted, not even
	// by another ROOT account.
	if targetsAccount[op] && res.TargetRole.IsRoot() {
		return deny("cannot modify root account")
	}

	if actor.Role.IsRoot() {
		return allow()
	}

	if rootOnly[op] {
		return deny("root access required")
	}

	if ownScoped[op] {
		if res.OwnerID == actor.ID {
			return allow()
		}
		if elevated, ok := viewAny[op]; ok && actor.Role.IsAtLeast(elevated) {
			return allow()
		}
		return deny("not resource owner")
	}

	if min, ok := minRole[op]; ok && actor.Role.IsAtLeast(min) {
		return allow()
	}

	return deny("insufficient privilege")
}
