package services_test

import (
	"testing"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/partner"
	"fulfillment/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPreparingOrder(t *testing.T) *order.Order {
	t.Helper()
	item, err := order.NewItem("Biryani", 220, 1)
	require.NoError(t, err)
	o, err := order.NewOrder(kernel.NewUUID(), "customer-1", "5 Hill Road", []order.Item{item}, time.Now().UTC())
	require.NoError(t, err)
	_, err = o.TransitionTo(order.Preparing, kernel.RoleVendor, time.Now().UTC())
	require.NoError(t, err)
	return o
}

func newIdlePartner(t *testing.T) *partner.DeliveryPartner {
	t.Helper()
	p, err := partner.NewDeliveryPartner(kernel.NewUUID(), "Asha", "+91-90000-00001", "Scooter")
	require.NoError(t, err)
	return p
}

func TestAssignmentService_Assign(t *testing.T) {
	svc := services.NewAssignmentService()
	now := time.Now().UTC()

	t.Run("should pair preparing order with idle partner", func(t *testing.T) {
		o := newPreparingOrder(t)
		p := newIdlePartner(t)

		err := svc.Assign(o, p, now)

		require.NoError(t, err)
		assert.Equal(t, order.Assigned, o.Status())
		require.NotNil(t, o.Partner())
		assert.Equal(t, p.ID(), *o.Partner())
		assert.Equal(t, partner.Busy, p.Availability())
		require.NotNil(t, p.CurrentOrder())
		assert.Equal(t, o.ID(), *p.CurrentOrder())
	})

	t.Run("should return error when order is not preparing", func(t *testing.T) {
		item, err := order.NewItem("Biryani", 220, 1)
		require.NoError(t, err)
		o, err := order.NewOrder(kernel.NewUUID(), "customer-1", "5 Hill Road", []order.Item{item}, now)
		require.NoError(t, err)
		p := newIdlePartner(t)

		err = svc.Assign(o, p, now)

		assert.ErrorIs(t, err, order.ErrNotPreparing)
		assert.Equal(t, order.Created, o.Status())
		assert.True(t, p.IsIdle(), "failed assignment must leave the partner untouched")
	})

	t.Run("should return error when partner already carries an order", func(t *testing.T) {
		o := newPreparingOrder(t)
		p := newIdlePartner(t)
		require.NoError(t, p.Take(kernel.NewUUID()))

		err := svc.Assign(o, p, now)

		assert.ErrorIs(t, err, partner.ErrAlreadyAssigned)
		assert.Equal(t, order.Preparing, o.Status())
	})

	t.Run("should return error when partner is inactive", func(t *testing.T) {
		o := newPreparingOrder(t)
		p := newIdlePartner(t)
		require.NoError(t, p.Deactivate())

		err := svc.Assign(o, p, now)

		assert.ErrorIs(t, err, partner.ErrNotAvailable)
		assert.Equal(t, order.Preparing, o.Status())
	})

	t.Run("should return error for unconstructed aggregates", func(t *testing.T) {
		err := svc.Assign(&order.Order{}, newIdlePartner(t), now)
		assert.ErrorIs(t, err, order.ErrOrderIsNotConstructed)

		err = svc.Assign(newPreparingOrder(t), &partner.DeliveryPartner{}, now)
		assert.ErrorIs(t, err, partner.ErrDeliveryPartnerIsNotConstructed)
	})
}

func TestAssignmentService_Release(t *testing.T) {
	svc := services.NewAssignmentService()

	t.Run("should free busy partner", func(t *testing.T) {
		p := newIdlePartner(t)
		require.NoError(t, p.Take(kernel.NewUUID()))

		require.NoError(t, svc.Release(p))

		assert.True(t, p.IsIdle())
	})

	t.Run("should be idempotent on idle partner", func(t *testing.T) {
		p := newIdlePartner(t)

		require.NoError(t, svc.Release(p))
		require.NoError(t, svc.Release(p))

		assert.True(t, p.IsIdle())
	})

	t.Run("should return error for unconstructed partner", func(t *testing.T) {
		err := svc.Release(&partner.DeliveryPartner{})

		assert.ErrorIs(t, err, partner.ErrDeliveryPartnerIsNotConstructed)
	})
}
