package commands_test

import (
	"testing"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSetOrderStatusCommand(t *testing.T) {
	t.Run("should create valid command", func(t *testing.T) {
		id := kernel.NewUUID()

		cmd, err := commands.NewSetOrderStatusCommand(id, order.Preparing, kernel.RoleVendor)

		require.NoError(t, err)
		assert.Equal(t, id, cmd.OrderID())
		assert.Equal(t, order.Preparing, cmd.Status())
		assert.Equal(t, kernel.RoleVendor, cmd.Actor())
		require.NoError(t, cmd.Validate())
	})

	t.Run("should return error when order id is invalid", func(t *testing.T) {
		_, err := commands.NewSetOrderStatusCommand(kernel.UUID{}, order.Preparing, kernel.RoleVendor)

		require.Error(t, err)
	})

	t.Run("should return error when status is invalid", func(t *testing.T) {
		_, err := commands.NewSetOrderStatusCommand(kernel.NewUUID(), order.Unknown, kernel.RoleVendor)

		require.Error(t, err)
	})

	t.Run("should return error when actor role is invalid", func(t *testing.T) {
		_, err := commands.NewSetOrderStatusCommand(kernel.NewUUID(), order.Preparing, kernel.RoleUnknown)

		require.Error(t, err)
	})

	t.Run("should fail validation on zero-value command", func(t *testing.T) {
		var cmd commands.SetOrderStatusCommand

		assert.ErrorIs(t, cmd.Validate(), commands.ErrSetOrderStatusCommandIsNotConstructed)
	})
}
