package commands_test

import (
	"testing"

	"checkout/internal/core/application/usecases/commands"
	"checkout/internal/core/domain/model/invoice"
	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/core/domain/model/reconciliation"
	"checkout/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type reconciliationFixture struct {
	txs     *MockTransactionRepository
	invs    *MockInvoiceRepository
	recs    *MockReconciliationRepository
	uow     *MockUoW
	factory *MockReconciliationUoWFactory
}

func newReconciliationFixture() reconciliationFixture {
	f := reconciliationFixture{
		txs:     new(MockTransactionRepository),
		invs:    new(MockInvoiceRepository),
		recs:    new(MockReconciliationRepository),
		uow:     new(MockUoW),
		factory: new(MockReconciliationUoWFactory),
	}
	f.factory.On("Create").Return(f.uow)
	f.uow.On("TransactionRepository").Return(f.txs)
	f.uow.On("InvoiceRepository").Return(f.invs)
	f.uow.On("ReconciliationRepository").Return(f.recs)
	f.uow.On("Rollback", mock.Anything).Return(nil)
	return f
}

func pendingReconciliation(t *testing.T) *reconciliation.Reconciliation {
	t.Helper()
	r, err := reconciliation.NewReconciliation(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), testTime)
	require.NoError(t, err)
	return r
}

func TestCreateReconciliationCommandHandler_Handle(t *testing.T) {
	ctx := t.Context()
	accountant := newActor(t, kernel.Accountant)

	t.Run("pairs transaction and invoice of the same order", func(t *testing.T) {
		f := newReconciliationFixture()
		inv := invoiceIn(t, invoice.Sent)
		tx := pendingTransaction(t, inv.OrderID())

		f.uow.On("Begin", ctx).Return(nil).Once()
		f.txs.On("Get", ctx, tx.ID()).Return(tx, nil).Once()
		f.invs.On("Get", ctx, inv.ID()).Return(inv, nil).Once()
		f.recs.On("ExistsForTransaction", ctx, tx.ID()).Return(false, nil).Once()
		f.recs.On("ExistsForInvoice", ctx, inv.ID()).Return(false, nil).Once()
		f.recs.On("Add", ctx, mock.AnythingOfType("*reconciliation.Reconciliation")).Return(nil).Once()
		f.uow.On("Commit", ctx).Return(nil).Once()

		cmd, err := commands.NewCreateReconciliationCommand(tx.ID(), inv.ID(), accountant)
		require.NoError(t, err)

		r, err := commands.NewCreateReconciliationCommandHandler(f.factory).Handle(ctx, cmd)
		require.NoError(t, err)
		assert.Equal(t, reconciliation.Pending, r.Status())
		assert.Equal(t, tx.ID(), r.TransactionID())
		assert.Equal(t, inv.ID(), r.InvoiceID())
		assert.Nil(t, r.Resolution())
		f.recs.AssertExpectations(t)
	})

	t.Run("different orders", func(t *testing.T) {
		f := newReconciliationFixture()
		inv := invoiceIn(t, invoice.Sent)
		tx := pendingTransaction(t, kernel.NewUUID())

		f.uow.On("Begin", ctx).Return(nil).Once()
		f.txs.On("Get", ctx, tx.ID()).Return(tx, nil).Once()
		f.invs.On("Get", ctx, inv.ID()).Return(inv, nil).Once()

		cmd, err := commands.NewCreateReconciliationCommand(tx.ID(), inv.ID(), accountant)
		require.NoError(t, err)

		_, err = commands.NewCreateReconciliationCommandHandler(f.factory).Handle(ctx, cmd)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		f.recs.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
	})

	t.Run("transaction already reconciled", func(t *testing.T) {
		f := newReconciliationFixture()
		inv := invoiceIn(t, invoice.Sent)
		tx := pendingTransaction(t, inv.OrderID())

		f.uow.On("Begin", ctx).Return(nil).Once()
		f.txs.On("Get", ctx, tx.ID()).Return(tx, nil).Once()
		f.invs.On("Get", ctx, inv.ID()).Return(inv, nil).Once()
		f.recs.On("ExistsForTransaction", ctx, tx.ID()).Return(true, nil).Once()

		cmd, err := commands.NewCreateReconciliationCommand(tx.ID(), inv.ID(), accountant)
		require.NoError(t, err)

		_, err = commands.NewCreateReconciliationCommandHandler(f.factory).Handle(ctx, cmd)
		require.ErrorIs(t, err, errs.ErrAlreadyReconciled)
		f.uow.AssertNotCalled(t, "Commit", mock.Anything)
	})

	t.Run("salesperson may not reconcile", func(t *testing.T) {
		f := newReconciliationFixture()
		cmd, err := commands.NewCreateReconciliationCommand(kernel.NewUUID(), kernel.NewUUID(), newActor(t, kernel.Salesperson))
		require.NoError(t, err)

		_, err = commands.NewCreateReconciliationCommandHandler(f.factory).Handle(ctx, cmd)
		require.ErrorIs(t, err, errs.ErrPermissionDenied)
		f.factory.AssertNotCalled(t, "Create")
	})
}

func TestMarkReconciledCommandHandler_Handle(t *testing.T) {
	ctx := t.Context()
	f := newReconciliationFixture()
	r := pendingReconciliation(t)
	actor := newActor(t, kernel.Administrator)

	f.uow.On("Begin", ctx).Return(nil).Once()
	f.recs.On("GetForUpdate", ctx, r.ID()).Return(r, nil).Once()
	f.recs.On("Update", ctx, r).Return(nil).Once()
	f.uow.On("Commit", ctx).Return(nil).Once()

	cmd, err := commands.NewMarkReconciledCommand(r.ID(), actor)
	require.NoError(t, err)
	require.NoError(t, commands.NewMarkReconciledCommandHandler(f.factory).Handle(ctx, cmd))

	assert.Equal(t, reconciliation.Reconciled, r.Status())
	require.NotNil(t, r.Resolution())
	assert.Equal(t, actor.ID(), r.Resolution().ActorID)
}

func TestMarkDiscrepancyCommandHandler_Handle(t *testing.T) {
	ctx := t.Context()
	actor := newActor(t, kernel.Accountant)

	t.Run("records notes", func(t *testing.T) {
		f := newReconciliationFixture()
		r := pendingReconciliation(t)
		f.uow.On("Begin", ctx).Return(nil).Once()
		f.recs.On("GetForUpdate", ctx, r.ID()).Return(r, nil).Once()
		f.recs.On("Update", ctx, r).Return(nil).Once()
		f.uow.On("Commit", ctx).Return(nil).Once()

		cmd, err := commands.NewMarkDiscrepancyCommand(r.ID(), actor, "gateway charged 9500")
		require.NoError(t, err)
		require.NoError(t, commands.NewMarkDiscrepancyCommandHandler(f.factory).Handle(ctx, cmd))

		assert.Equal(t, reconciliation.Discrepancy, r.Status())
		assert.Equal(t, "gateway charged 9500", r.Notes())
	})

	t.Run("discrepancy is final", func(t *testing.T) {
		f := newReconciliationFixture()
		r := pendingReconciliation(t)
		require.NoError(t, r.MarkDiscrepancy(actor.ID(), "short", testTime))
		f.uow.On("Begin", ctx).Return(nil).Once()
		f.recs.On("GetForUpdate", ctx, r.ID()).Return(r, nil).Once()

		cmd, err := commands.NewMarkReconciledCommand(r.ID(), actor)
		require.NoError(t, err)
		require.ErrorIs(t, commands.NewMarkReconciledCommandHandler(f.factory).Handle(ctx, cmd), errs.ErrInvalidTransition)
		f.recs.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("notes are required", func(t *testing.T) {
		_, err := commands.NewMarkDiscrepancyCommand(kernel.NewUUID(), actor, "  ")
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}
