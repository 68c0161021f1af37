package reconciliation_test

import (
	"testing"
	"time"

	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/core/domain/model/reconciliation"
	"checkout/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var openedAt = time.Date(2025, 3, 20, 9, 0, 0, 0, time.UTC)

func newReconciliation(t *testing.T) *reconciliation.Reconciliation {
	t.Helper()
	r, err := reconciliation.NewReconciliation(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), openedAt)
	require.NoError(t, err)
	return r
}

func TestNewReconciliation(t *testing.T) {
	r := newReconciliation(t)

	assert.Equal(t, reconciliation.Pending, r.Status())
	assert.Nil(t, r.Resolution())

	_, err := reconciliation.NewReconciliation(kernel.NewUUID(), kernel.UUID{}, kernel.UUID{}, openedAt)
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestReconciliation_MarkReconciled(t *testing.T) {
	r := newReconciliation(t)
	actor := kernel.NewUUID()
	at := openedAt.Add(time.Hour)

	require.NoError(t, r.MarkReconciled(actor, at))

	assert.Equal(t, reconciliation.Reconciled, r.Status())
	res := r.Resolution()
	require.NotNil(t, res)
	assert.True(t, res.ActorID.IsEqual(actor))
	assert.Equal(t, at, res.At)

	err := r.MarkDiscrepancy(actor, "late", at)
	require.ErrorIs(t, err, errs.ErrInvalidTransition)
	assert.Equal(t, reconciliation.Reconciled, r.Status())
}

func TestReconciliation_ResolutionIsAtomic(t *testing.T) {
	t.Run("missing actor changes nothing", func(t *testing.T) {
		r := newReconciliation(t)

		require.ErrorIs(t, r.MarkReconciled(kernel.UUID{}, openedAt), errs.ErrValueIsRequired)
		assert.Equal(t, reconciliation.Pending, r.Status())
		assert.Nil(t, r.Resolution())
	})

	t.Run("missing timestamp changes nothing", func(t *testing.T) {
		r := newReconciliation(t)

		require.ErrorIs(t, r.MarkReconciled(kernel.NewUUID(), time.Time{}), errs.ErrValueIsRequired)
		assert.Equal(t, reconciliation.Pending, r.Status())
		assert.Nil(t, r.Resolution())
	})
}

func TestReconciliation_MarkDiscrepancy(t *testing.T) {
	r := newReconciliation(t)

	require.ErrorIs(t, r.MarkDiscrepancy(kernel.NewUUID(), " ", openedAt), errs.ErrValueIsRequired)
	require.NoError(t, r.MarkDiscrepancy(kernel.NewUUID(), "gateway paid 9990, invoice says 10000", openedAt))

	assert.Equal(t, reconciliation.Discrepancy, r.Status())
	assert.Equal(t, "gateway paid 9990, invoice says 10000", r.Notes())
	require.NotNil(t, r.Resolution())

	// discrepancy is final
	require.ErrorIs(t, r.MarkReconciled(kernel.NewUUID(), openedAt), errs.ErrInvalidTransition)
}

func TestRestoreReconciliation(t *testing.T) {
	_, err := reconciliation.RestoreReconciliation(reconciliation.State{
		ID:     kernel.NewUUID(),
		Status: reconciliation.Reconciled,
	})
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)

	restored, err := reconciliation.RestoreReconciliation(reconciliation.State{
		ID:            kernel.NewUUID(),
		TransactionID: kernel.NewUUID(),
		InvoiceID:     kernel.NewUUID(),
		Status:        reconciliation.Reconciled,
		Resolution:    &reconciliation.Resolution{ActorID: kernel.NewUUID(), At: openedAt},
	})
	require.NoError(t, err)
	assert.Equal(t, reconciliation.Reconciled, restored.Status())
}
