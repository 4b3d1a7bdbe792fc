package commands_test

import (
	"errors"
	"testing"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/partner"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newStoredOrder(t *testing.T, status order.Status, partnerID *kernel.UUID) *order.Order {
	t.Helper()
	item, err := order.NewItem("Dosa", 120, 1)
	require.NoError(t, err)
	createdAt := time.Now().UTC().Add(-time.Hour)

	o, err := order.RestoreOrder(kernel.NewUUID(), "customer-1", "3 Park Lane",
		[]order.Item{item}, status, partnerID, nil, createdAt, nil,
		[]order.StatusChange{{Status: order.Created, At: createdAt}}, 2)
	require.NoError(t, err)
	return o
}

func ptr[T any](v T) *T {
	return &v
}

func TestSetOrderStatusCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	stored := newStoredOrder(t, order.Created, nil)
	cmd, _ := commands.NewSetOrderStatusCommand(stored.ID(), order.Preparing, kernel.RoleVendor)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", mock.Anything, stored.ID()).Return(stored, nil).Once(),
		orderRepo.On("Update", mock.Anything, stored).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewSetOrderStatusCommandHandler(factory)
	updated, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.Preparing, updated.Status())
	orderRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestSetOrderStatusCommandHandler_Handle_IdempotentNoOp(t *testing.T) {
	ctx := t.Context()
	stored := newStoredOrder(t, order.Preparing, nil)
	cmd, _ := commands.NewSetOrderStatusCommand(stored.ID(), order.Preparing, kernel.RoleVendor)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", mock.Anything, stored.ID()).Return(stored, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewSetOrderStatusCommandHandler(factory)
	updated, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.Preparing, updated.Status())
	orderRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
	orderRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestSetOrderStatusCommandHandler_Handle_TerminalReleasesPartner(t *testing.T) {
	ctx := t.Context()
	partnerID := kernel.NewUUID()
	stored := newStoredOrder(t, order.Arrived, &partnerID)
	carrier, err := partner.RestoreDeliveryPartner(partnerID, "Asha", "+91-90000-00001", "",
		partner.Busy, ptr(stored.ID()), 2)
	require.NoError(t, err)
	cmd, _ := commands.NewSetOrderStatusCommand(stored.ID(), order.Delivered, kernel.RoleDeliveryPartner)

	orderRepo := new(MockOrderRepository)
	partnerRepo := new(MockPartnerRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", mock.Anything, stored.ID()).Return(stored, nil).Once(),
		uow.On("PartnerRepository").Return(partnerRepo).Once(),
		partnerRepo.On("Get", mock.Anything, partnerID).Return(carrier, nil).Once(),
		partnerRepo.On("Update", mock.Anything, carrier).Return(nil).Once(),
		orderRepo.On("Update", mock.Anything, stored).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewSetOrderStatusCommandHandler(factory)
	updated, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.Delivered, updated.Status())
	assert.Nil(t, updated.Partner())
	assert.True(t, carrier.IsIdle(), "partner must be freed in the same transaction")
	orderRepo.AssertExpectations(t)
	partnerRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestSetOrderStatusCommandHandler_Handle_TerminalWithMissingPartnerRow(t *testing.T) {
	ctx := t.Context()
	partnerID := kernel.NewUUID()
	stored := newStoredOrder(t, order.Arrived, &partnerID)
	cmd, _ := commands.NewSetOrderStatusCommand(stored.ID(), order.Delivered, kernel.RoleDeliveryPartner)

	orderRepo := new(MockOrderRepository)
	partnerRepo := new(MockPartnerRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", mock.Anything, stored.ID()).Return(stored, nil).Once(),
		uow.On("PartnerRepository").Return(partnerRepo).Once(),
		partnerRepo.On("Get", mock.Anything, partnerID).
			Return(nil, errs.NewObjectNotFoundError("partnerID", partnerID)).Once(),
		orderRepo.On("Update", mock.Anything, stored).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewSetOrderStatusCommandHandler(factory)
	updated, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.Delivered, updated.Status())
	partnerRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestSetOrderStatusCommandHandler_Handle_InvalidTransition(t *testing.T) {
	ctx := t.Context()
	stored := newStoredOrder(t, order.Created, nil)
	cmd, _ := commands.NewSetOrderStatusCommand(stored.ID(), order.Delivered, kernel.RoleDeliveryPartner)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", mock.Anything, stored.ID()).Return(stored, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewSetOrderStatusCommandHandler(factory)
	updated, err := h.Handle(ctx, cmd)

	require.Error(t, err)
	assert.ErrorIs(t, err, order.ErrInvalidTransition)
	assert.Nil(t, updated)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestSetOrderStatusCommandHandler_Handle_OrderNotFound(t *testing.T) {
	ctx := t.Context()
	orderID := kernel.NewUUID()
	cmd, _ := commands.NewSetOrderStatusCommand(orderID, order.Preparing, kernel.RoleVendor)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", mock.Anything, orderID).
			Return(nil, errs.NewObjectNotFoundError("orderID", orderID)).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewSetOrderStatusCommandHandler(factory)
	_, err := h.Handle(ctx, cmd)

	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestSetOrderStatusCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	cmd := commands.SetOrderStatusCommand{} // not constructed properly
	factory := new(MockUoWFactory)

	h := commands.NewSetOrderStatusCommandHandler(factory)
	_, err := h.Handle(ctx, cmd)

	require.Error(t, err)
	factory.AssertNotCalled(t, "Create")
}

func TestSetOrderStatusCommandHandler_Handle_UpdateConflict(t *testing.T) {
	ctx := t.Context()
	stored := newStoredOrder(t, order.Created, nil)
	cmd, _ := commands.NewSetOrderStatusCommand(stored.ID(), order.Preparing, kernel.RoleVendor)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", mock.Anything, stored.ID()).Return(stored, nil).Once(),
		orderRepo.On("Update", mock.Anything, stored).
			Return(errs.NewVersionConflictError("orderID", stored.ID())).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewSetOrderStatusCommandHandler(factory)
	_, err := h.Handle(ctx, cmd)

	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrVersionConflict)
	assert.False(t, errors.Is(err, errs.ErrObjectNotFound))
}
