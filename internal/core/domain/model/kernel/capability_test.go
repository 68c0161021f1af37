package kernel_test

import (
	"testing"

	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCapability(t *testing.T) {
	c, err := kernel.ParseCapability(" Accountant ")
	require.NoError(t, err)
	assert.Equal(t, kernel.Accountant, c)

	_, err = kernel.ParseCapability("cashier")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestCapabilitySet(t *testing.T) {
	set := kernel.NewCapabilitySet(kernel.Warehouse, kernel.Salesperson, kernel.UnknownCapability)

	assert.True(t, set.Has(kernel.Warehouse))
	assert.True(t, set.HasAny(kernel.Accountant, kernel.Salesperson))
	assert.False(t, set.Has(kernel.Administrator))
	assert.False(t, set.Has(kernel.UnknownCapability))
	assert.Equal(t, []string{"salesperson", "warehouse"}, set.Strings())
	assert.True(t, kernel.NewCapabilitySet().IsEmpty())
}

func TestNewActor(t *testing.T) {
	t.Run("valid actor", func(t *testing.T) {
		id := kernel.NewUUID()
		actor, err := kernel.NewActor(id, kernel.Accountant)

		require.NoError(t, err)
		assert.True(t, actor.ID().IsEqual(id))
		assert.True(t, actor.Can(kernel.Administrator, kernel.Accountant))
		assert.False(t, actor.IsSystem())
	})

	t.Run("requires capabilities", func(t *testing.T) {
		_, err := kernel.NewActor(kernel.NewUUID())
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("requires id", func(t *testing.T) {
		_, err := kernel.NewActor(kernel.UUID{}, kernel.Customer)
		require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
	})
}

func TestSystemActor(t *testing.T) {
	actor := kernel.SystemActor()

	require.NoError(t, actor.Validate())
	assert.True(t, actor.IsSystem())
	assert.True(t, actor.Can(kernel.Administrator))
}
