package commands_test

import (
	"testing"

	"logistics/internal/core/application/usecases/commands"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/user"
	"logistics/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCreateOrderCommand_ValidInput(t *testing.T) {
	id := kernel.NewUUID()
	customerID := kernel.NewUUID()
	manager := newActor(t, user.RoleManager, nil)

	cmd, err := commands.NewCreateOrderCommand(id, customerID, 3, manager)
	require.NoError(t, err)
	require.NoError(t, cmd.Validate())
	assert.Equal(t, id, cmd.OrderID())
	assert.Equal(t, customerID, cmd.CustomerID())
	assert.Equal(t, 3, cmd.ParcelCount())
	assert.Equal(t, manager, cmd.Actor())
}

func TestNewCreateOrderCommand_InvalidInput(t *testing.T) {
	manager := newActor(t, user.RoleManager, nil)

	tests := []struct {
		name        string
		orderID     kernel.UUID
		customerID  kernel.UUID
		parcelCount int
		actor       user.Actor
		wantErr     error
	}{
		{"missing order id", kernel.UUID{}, kernel.NewUUID(), 1, manager, errs.ErrValueIsRequired},
		{"missing customer id", kernel.NewUUID(), kernel.UUID{}, 1, manager, errs.ErrValueIsRequired},
		{"no parcels", kernel.NewUUID(), kernel.NewUUID(), 0, manager, errs.ErrValueIsOutOfRange},
		{"too many parcels", kernel.NewUUID(), kernel.NewUUID(), commands.MaxParcelsPerOrder + 1, manager, errs.ErrValueIsOutOfRange},
		{"missing actor", kernel.NewUUID(), kernel.NewUUID(), 1, user.Actor{}, errs.ErrValueIsRequired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, err := commands.NewCreateOrderCommand(tt.orderID, tt.customerID, tt.parcelCount, tt.actor)
			require.ErrorIs(t, err, tt.wantErr)
			require.ErrorIs(t, cmd.Validate(), commands.ErrCreateOrderCommandIsNotConstructed)
		})
	}
}

func TestNewCreateOrderCommand_ReportsAllErrors(t *testing.T) {
	_, err := commands.NewCreateOrderCommand(kernel.UUID{}, kernel.UUID{}, 0, user.Actor{})

	require.ErrorIs(t, err, errs.ErrValueIsRequired)
	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	assert.Contains(t, err.Error(), "customerID")
	assert.Contains(t, err.Error(), "actor")
}
