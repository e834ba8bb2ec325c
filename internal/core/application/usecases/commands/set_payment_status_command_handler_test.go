package commands_test

import (
	"testing"

	"storefront/internal/core/application/usecases/commands"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNewSetPaymentStatusCommand(t *testing.T) {
	_, err := commands.NewSetPaymentStatusCommand(0, " ", "paid")
	require.ErrorIs(t, err, errs.ErrValueIsRequired)

	_, err = commands.NewSetPaymentStatusCommand(1, "", "refunded")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)

	cmd, err := commands.NewSetPaymentStatusCommand(0, " pi_123 ", "paid")
	require.NoError(t, err)
	assert.Equal(t, "pi_123", cmd.Reference())
}

func TestSetPaymentStatusCommandHandler_Handle_IsIdempotent(t *testing.T) {
	ctx := t.Context()
	stored := storedOrder(t, 42, order.StatusProcessing, order.DeliveryNone)

	uow := new(MockUoW)
	repo := new(MockOrderRepository)
	uow.On("OrderRepository").Return(repo)
	uow.On("Begin", ctx).Return(nil).Twice()
	uow.On("Rollback", ctx).Return(nil).Twice()
	uow.On("Commit", ctx).Return(nil).Once()
	repo.On("GetByPaymentReference", ctx, "pi_123").Return(stored, nil).Twice()
	repo.On("Update", ctx, stored).Run(func(args mock.Arguments) {
		events := stored.PendingEvents()
		require.Len(t, events, 1)
		assert.Equal(t, order.EventPaymentStatusChanged, events[0].Kind)
		assert.Equal(t, order.SourceSystem, events[0].Source)
		assert.True(t, events[0].Actor.IsSystem())
		require.Len(t, stored.PendingAudit(), 1)
		persist(args)
	}).Return(nil).Once()

	cmd, err := commands.NewSetPaymentStatusCommand(0, "pi_123", "paid")
	require.NoError(t, err)
	h := commands.NewSetPaymentStatusCommandHandler(orderUoW(uow))

	o, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.Equal(t, order.PaymentPaid, o.Payment().Status)

	o, err = h.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.Equal(t, order.PaymentPaid, o.Payment().Status)

	uow.AssertExpectations(t)
	repo.AssertExpectations(t)
}

func TestSetPaymentStatusCommandHandler_Handle_PaidIsFinal(t *testing.T) {
	ctx := t.Context()
	state := storedOrder(t, 42, order.StatusProcessing, order.DeliveryNone).State()
	state.Payment.Status = order.PaymentPaid
	stored, err := order.RestoreOrder(state)
	require.NoError(t, err)

	uow := new(MockUoW)
	repo := new(MockOrderRepository)
	uow.On("OrderRepository").Return(repo)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	repo.On("GetForUpdate", ctx, int64(42)).Return(stored, nil).Once()

	cmd, err := commands.NewSetPaymentStatusCommand(42, "", "failed")
	require.NoError(t, err)

	_, err = commands.NewSetPaymentStatusCommandHandler(orderUoW(uow)).Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrTransitionNotAllowed)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	uow.AssertExpectations(t)
}
