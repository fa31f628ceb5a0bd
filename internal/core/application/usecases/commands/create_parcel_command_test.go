package commands_test

import (
	"testing"

	"parceltrack/internal/core/application/usecases/commands"
	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/user"
	"parceltrack/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCreateParcelCommand_ValidInput(t *testing.T) {
	id := kernel.NewUUID()
	sender := newPrincipal(user.RoleSender)

	cmd, err := commands.NewCreateParcelCommand(id, sender, "Bob@Example.com", " 2 Side St ", "fragile", 1.5, " mugs ")

	require.NoError(t, err)
	require.NoError(t, cmd.Validate())
	assert.Equal(t, id, cmd.ParcelID())
	assert.Equal(t, "bob@example.com", cmd.ReceiverEmail().String())

	shipment := cmd.Shipment()
	assert.Equal(t, "1 Main St", shipment.SenderAddress)
	assert.Equal(t, "2 Side St", shipment.ReceiverAddress)
	assert.Equal(t, "fragile", shipment.Type.String())
	assert.InDelta(t, 1.5, shipment.Weight.Kilograms(), 1e-9)
	assert.Equal(t, "mugs", shipment.Description)
}

func TestNewCreateParcelCommand_InvalidInput(t *testing.T) {
	_, err := commands.NewCreateParcelCommand(kernel.UUID{}, user.Principal{}, "nope", "", "", 0.05, "")

	require.Error(t, err)
	require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	assert.Contains(t, err.Error(), "receiverAddress")
	assert.Contains(t, err.Error(), "parcelType")
	assert.Contains(t, err.Error(), "weight")
	assert.Contains(t, err.Error(), "description")
}

func TestCreateParcelCommand_LiteralIsInvalid(t *testing.T) {
	var cmd commands.CreateParcelCommand

	require.ErrorIs(t, cmd.Validate(), commands.ErrCreateParcelCommandIsNotConstructed)
}
