package commands_test

import (
	"testing"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewManagerDecisionCommand(t *testing.T) {
	orderID := kernel.NewUUID()
	storeID := kernel.NewUUID()

	cmd, err := commands.NewManagerDecisionCommand(orderID, storeID, commands.DecisionReject, "out of stock")

	require.NoError(t, err)
	require.NoError(t, cmd.Validate())
	assert.True(t, cmd.OrderID().IsEqual(orderID))
	assert.True(t, cmd.StoreID().IsEqual(storeID))
	assert.Equal(t, commands.DecisionReject, cmd.Decision())
	assert.Equal(t, "out of stock", cmd.Reason())
}

func TestNewManagerDecisionCommand_EmptyReasonIsAllowed(t *testing.T) {
	cmd, err := commands.NewManagerDecisionCommand(
		kernel.NewUUID(), kernel.NewUUID(), commands.DecisionAccept, "",
	)

	require.NoError(t, err)
	assert.Empty(t, cmd.Reason())
}

func TestNewManagerDecisionCommand_ValidationErrors(t *testing.T) {
	validID := kernel.NewUUID()

	tests := []struct {
		name     string
		orderID  kernel.UUID
		storeID  kernel.UUID
		decision commands.Decision
	}{
		{"invalid order id", kernel.UUID{}, validID, commands.DecisionAccept},
		{"invalid store id", validID, kernel.UUID{}, commands.DecisionAccept},
		{"empty decision", validID, validID, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := commands.NewManagerDecisionCommand(tt.orderID, tt.storeID, tt.decision, "")
			require.Error(t, err)
		})
	}
}

func TestNewManagerDecisionCommand_UnknownDecisionIsConstructable(t *testing.T) {
	// The handler resolves unknown decisions; the constructor only requires
	// a non-empty value.
	cmd, err := commands.NewManagerDecisionCommand(
		kernel.NewUUID(), kernel.NewUUID(), commands.Decision("escalate"), "",
	)

	require.NoError(t, err)
	assert.Equal(t, commands.Decision("escalate"), cmd.Decision())
}

func TestManagerDecisionCommand_ZeroValueFailsValidation(t *testing.T) {
	var cmd commands.ManagerDecisionCommand

	err := cmd.Validate()

	require.Error(t, err)
	require.ErrorIs(t, err, commands.ErrManagerDecisionCommandIsNotConstructed)
}
