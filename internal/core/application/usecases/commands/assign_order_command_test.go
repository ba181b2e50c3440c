package commands_test

import (
	"testing"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAssignOrderCommand(t *testing.T) {
	orderID := kernel.NewUUID()

	cmd, err := commands.NewAssignOrderCommand(orderID)

	require.NoError(t, err)
	require.NoError(t, cmd.Validate())
	require.NotNil(t, cmd.OrderID())
	assert.True(t, cmd.OrderID().IsEqual(orderID))
}

func TestNewAssignOrderCommand_InvalidOrderID(t *testing.T) {
	_, err := commands.NewAssignOrderCommand(kernel.UUID{})

	require.Error(t, err)
}

func TestNewAssignNextPendingOrderCommand(t *testing.T) {
	cmd := commands.NewAssignNextPendingOrderCommand()

	require.NoError(t, cmd.Validate())
	assert.Nil(t, cmd.OrderID())
}

func TestAssignOrderCommand_ZeroValueFailsValidation(t *testing.T) {
	var cmd commands.AssignOrderCommand

	err := cmd.Validate()

	require.Error(t, err)
	require.ErrorIs(t, err, commands.ErrAssignOrderCommandIsNotConstructed)
}
