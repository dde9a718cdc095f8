package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comandahq/comanda/internal/model"
)

func TestCRMGroupsByNormalizedPhone(t *testing.T) {
	f := newFixture(t)
	rest := f.restaurant(t, model.PlanPro)
	svc := NewCRMService(f.orders, f.restaurants)

	// same phone under different formatting merges into one client
	f.order(t, rest.ID, func(o *model.Order) {
		o.ClientName = "Ana"
		o.ClientPhone = phoneOf(model.NormalizePhone("+55 (11) 98765-4321"))
		o.TotalPrice = 30
	}, 48*time.Hour)
	f.order(t, rest.ID, func(o *model.Order) {
		o.ClientName = "Ana Paula"
		o.ClientPhone = phoneOf(model.NormalizePhone("5511987654321"))
		o.TotalPrice = 20
	}, 24*time.Hour)
	// phone-less orders never merge with each other
	f.order(t, rest.ID, func(o *model.Order) { o.ClientName = "Balcão"; o.TotalPrice = 5 }, 2*time.Hour)
	f.order(t, rest.ID, func(o *model.Order) { o.ClientName = "Balcão"; o.TotalPrice = 7 }, time.Hour)

	clients, err := svc.Clients(context.Background(), rest.ID)
	require.NoError(t, err)
	require.Len(t, clients, 3)

	// most recently active first
	assert.Equal(t, 7.0, clients[0].TotalSpent)
	assert.Equal(t, 5.0, clients[1].TotalSpent)

	ana := clients[2]
	assert.Equal(t, "5511987654321", ana.Phone)
	assert.Equal(t, 2, ana.TotalOrders)
	assert.Equal(t, 50.0, ana.TotalSpent)
	// most recent non-empty name wins
	assert.Equal(t, "Ana Paula", ana.Name)
}

func TestCRMTieBreakPrefersLastProcessed(t *testing.T) {
	f := newFixture(t)
	rest := f.restaurant(t, model.PlanPro)
	svc := NewCRMService(f.orders, f.restaurants)

	ts := time.Now().Add(-time.Hour).Truncate(time.Second)
	first := f.order(t, rest.ID, func(o *model.Order) {
		o.ClientName = "Primeiro"
		o.ClientPhone = phoneOf("11900000001")
	}, 0)
	second := f.order(t, rest.ID, func(o *model.Order) {
		o.ClientName = "Segundo"
		o.ClientPhone = phoneOf("11900000001")
	}, 0)
	require.NoError(t, f.db.Model(first).UpdateColumn("created_at", ts).Error)
	require.NoError(t, f.db.Model(second).UpdateColumn("created_at", ts).Error)

	clients, err := svc.Clients(context.Background(), rest.ID)
	require.NoError(t, err)
	require.Len(t, clients, 1)
	// equal timestamps: the order processed later (ascending fetch) wins
	assert.Equal(t, "Segundo", clients[0].Name)
}

func TestCRMPlanGate(t *testing.T) {
	f := newFixture(t)
	svc := NewCRMService(f.orders, f.restaurants)
	ctx := context.Background()

	rest := f.restaurant(t, model.PlanBasic)
	_, err := svc.Clients(ctx, rest.ID)
	var denied *PlanDeniedError
	require.ErrorAs(t, err, &denied)
	assert.Equal(t, "basic", denied.CurrentPlan)
	assert.Equal(t, "pro", denied.UpgradeTo)

	// pro is enough for CRM
	pro := f.restaurant(t, model.PlanPro)
	_, err = svc.Clients(ctx, pro.ID)
	assert.NoError(t, err)

	_, err = svc.Clients(ctx, "missing")
	assert.ErrorIs(t, err, ErrRestaurantNotFound)
}
