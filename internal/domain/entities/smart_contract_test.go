package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeploymentStatusIsTerminal(t *testing.T) {
	assert.False(t, DeploymentStatusPending.IsTerminal())
	assert.False(t, DeploymentStatusDeploying.IsTerminal())
	assert.True(t, DeploymentStatusDeployed.IsTerminal())
	assert.True(t, DeploymentStatusFailed.IsTerminal())
}

func TestValidDeploymentStatus(t *testing.T) {
	for _, s := range []DeploymentStatus{DeploymentStatusPending, DeploymentStatusDeploying, DeploymentStatusDeployed, DeploymentStatusFailed} {
		assert.True(t, ValidDeploymentStatus(s), "status %s", s)
	}
	assert.False(t, ValidDeploymentStatus("SHIPPED"))
	assert.False(t, ValidDeploymentStatus(""))
}

func TestValidStructureType(t *testing.T) {
	for _, st := range []StructureType{StructureTypeFund, StructureTypeSALLC, StructureTypeSPV, StructureTypeTrust, StructureTypeGPEntity} {
		assert.True(t, ValidStructureType(st), "type %s", st)
	}
	assert.False(t, ValidStructureType("HOLDING"))
}

func TestUserFullName(t *testing.T) {
	u := &User{FirstName: "Alice", LastName: "Nguyen"}
	assert.Equal(t, "Alice Nguyen", u.FullName())

	u.LastName = ""
	assert.Equal(t, "Alice", u.FullName())
}
