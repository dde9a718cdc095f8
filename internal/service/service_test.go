package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/comandahq/comanda/internal/model"
	"github.com/comandahq/comanda/internal/repository"
)

type fixture struct {
	db          *gorm.DB
	orders      repository.OrderRepository
	restaurants repository.RestaurantRepository
	clients     repository.ClientRepository
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.Restaurant{}, &model.Order{}, &model.Client{}))
	return &fixture{
		db:          db,
		orders:      repository.NewOrderRepository(db),
		restaurants: repository.NewRestaurantRepository(db),
		clients:     repository.NewClientRepository(db),
	}
}

func (f *fixture) restaurant(t *testing.T, plan string) *model.Restaurant {
	t.Helper()
	r := &model.Restaurant{
		ID:    uuid.New().String(),
		Name:  "Cantina da Nona",
		Email: uuid.New().String()[:8] + "@example.com",
		Plan:  plan,
	}
	require.NoError(t, f.db.Create(r).Error)
	return r
}

// order inserts directly, bypassing the service defaults, and backdates
// created_at when age is non-zero.
func (f *fixture) order(t *testing.T, restaurantID string, mutate func(*model.Order), age time.Duration) *model.Order {
	t.Helper()
	o := &model.Order{
		ID:           uuid.New().String(),
		RestaurantID: restaurantID,
		ClientName:   "Cliente",
		Status:       "pending",
		Origin:       model.OriginIAWhatsApp,
	}
	if mutate != nil {
		mutate(o)
	}
	require.NoError(t, f.orders.Create(context.Background(), o))
	if age > 0 {
		created := time.Now().Add(-age)
		require.NoError(t, f.db.Model(o).UpdateColumn("created_at", created).Error)
		o.CreatedAt = created
	}
	return o
}

func phoneOf(s string) *string { return &s }
