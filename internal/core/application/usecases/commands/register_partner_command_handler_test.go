package commands_test

import (
	"errors"
	"testing"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/partner"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestRegisterPartnerCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	id := kernel.NewUUID()
	cmd, _ := commands.NewRegisterPartnerCommand(id, "Ravi", "+91-98765-43210", "Bike")

	repo := new(MockPartnerRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("PartnerRepository").Return(repo).Once(),
		repo.On("Add", mock.Anything, mock.AnythingOfType("*partner.DeliveryPartner")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockPartnerUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewRegisterPartnerCommandHandler(factory)
	registered, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	require.NotNil(t, registered)
	assert.Equal(t, id, registered.ID())
	assert.Equal(t, partner.Available, registered.Availability())
	assert.True(t, registered.IsIdle())
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestRegisterPartnerCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	cmd := commands.RegisterPartnerCommand{} // not constructed properly
	factory := new(MockPartnerUoWFactory)

	h := commands.NewRegisterPartnerCommandHandler(factory)
	registered, err := h.Handle(ctx, cmd)

	require.Error(t, err)
	assert.Nil(t, registered)
	factory.AssertNotCalled(t, "Create")
}

func TestRegisterPartnerCommandHandler_Handle_AddError(t *testing.T) {
	ctx := t.Context()
	cmd, _ := commands.NewRegisterPartnerCommand(kernel.NewUUID(), "Ravi", "+91-98765-43210", "")

	repo := new(MockPartnerRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("PartnerRepository").Return(repo).Once(),
		repo.On("Add", mock.Anything, mock.AnythingOfType("*partner.DeliveryPartner")).
			Return(errors.New("add error")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockPartnerUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewRegisterPartnerCommandHandler(factory)
	_, err := h.Handle(ctx, cmd)

	require.Error(t, err)
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}
