package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/comandahq/comanda/internal/model"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.Restaurant{}, &model.Order{}, &model.Client{}))
	return db
}

func seedRestaurant(t *testing.T, db *gorm.DB, plan string) *model.Restaurant {
	t.Helper()
	r := &model.Restaurant{
		ID:    uuid.New().String(),
		Name:  "Cantina da Nona",
		Email: uuid.New().String()[:8] + "@example.com",
		Plan:  plan,
	}
	require.NoError(t, db.Create(r).Error)
	return r
}

func TestCreateAssignsSequentialNumbers(t *testing.T) {
	db := setupTestDB(t)
	repo := NewOrderRepository(db)
	ctx := context.Background()
	rest := seedRestaurant(t, db, model.PlanBasic)
	other := seedRestaurant(t, db, model.PlanBasic)

	for i := 1; i <= 3; i++ {
		order := &model.Order{ID: uuid.New().String(), RestaurantID: rest.ID, ClientName: "Ana"}
		require.NoError(t, repo.Create(ctx, order))
		assert.Equal(t, int64(i), order.OrderNumber)
	}

	// sequences are per restaurant
	order := &model.Order{ID: uuid.New().String(), RestaurantID: other.ID, ClientName: "Bia"}
	require.NoError(t, repo.Create(ctx, order))
	assert.Equal(t, int64(1), order.OrderNumber)
}

func TestCreateUnknownRestaurant(t *testing.T) {
	db := setupTestDB(t)
	repo := NewOrderRepository(db)

	order := &model.Order{ID: uuid.New().String(), RestaurantID: "nope", ClientName: "Ana"}
	err := repo.Create(context.Background(), order)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestUpdateKeepsNumberAndTracking(t *testing.T) {
	db := setupTestDB(t)
	repo := NewOrderRepository(db)
	ctx := context.Background()
	rest := seedRestaurant(t, db, model.PlanBasic)

	order := &model.Order{
		ID:           uuid.New().String(),
		RestaurantID: rest.ID,
		ClientName:   "Ana",
		TrackingCode: "ABC12345",
		Status:       "pending",
		TotalPrice:   10,
	}
	require.NoError(t, repo.Create(ctx, order))

	order.Status = "preparing"
	order.TotalPrice = 25.5
	order.Items = model.StringList{"1x feijoada"}
	order.OrderNumber = 999          // must not be written
	order.TrackingCode = "OVERWRITE" // must not be written
	require.NoError(t, repo.Update(ctx, order))

	got, err := repo.GetByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, "preparing", got.Status)
	assert.Equal(t, 25.5, got.TotalPrice)
	assert.Equal(t, model.StringList{"1x feijoada"}, got.Items)
	assert.Equal(t, int64(1), got.OrderNumber)
	assert.Equal(t, "ABC12345", got.TrackingCode)
}

func TestUpdateStatus(t *testing.T) {
	db := setupTestDB(t)
	repo := NewOrderRepository(db)
	ctx := context.Background()
	rest := seedRestaurant(t, db, model.PlanBasic)

	order := &model.Order{ID: uuid.New().String(), RestaurantID: rest.ID, ClientName: "Ana", Status: "pending"}
	require.NoError(t, repo.Create(ctx, order))

	got, err := repo.UpdateStatus(ctx, order.ID, "delivering")
	require.NoError(t, err)
	assert.Equal(t, "delivering", got.Status)

	_, err = repo.UpdateStatus(ctx, "missing", "pending")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestListByRestaurantSince(t *testing.T) {
	db := setupTestDB(t)
	repo := NewOrderRepository(db)
	ctx := context.Background()
	rest := seedRestaurant(t, db, model.PlanBasic)

	old := &model.Order{ID: uuid.New().String(), RestaurantID: rest.ID, ClientName: "Ana"}
	require.NoError(t, repo.Create(ctx, old))
	require.NoError(t, db.Model(old).UpdateColumn("created_at", time.Now().AddDate(0, 0, -10)).Error)

	recent := &model.Order{ID: uuid.New().String(), RestaurantID: rest.ID, ClientName: "Bia"}
	require.NoError(t, repo.Create(ctx, recent))

	within, err := repo.ListByRestaurantSince(ctx, rest.ID, time.Now().AddDate(0, 0, -7))
	require.NoError(t, err)
	require.Len(t, within, 1)
	assert.Equal(t, recent.ID, within[0].ID)

	all, err := repo.ListByRestaurant(ctx, rest.ID)
	require.NoError(t, err)
	require.Len(t, all, 2)
	// ascending creation order
	assert.Equal(t, old.ID, all[0].ID)
}

func TestDelete(t *testing.T) {
	db := setupTestDB(t)
	repo := NewOrderRepository(db)
	ctx := context.Background()
	rest := seedRestaurant(t, db, model.PlanBasic)

	order := &model.Order{ID: uuid.New().String(), RestaurantID: rest.ID, ClientName: "Ana"}
	require.NoError(t, repo.Create(ctx, order))
	require.NoError(t, repo.Delete(ctx, order.ID))

	_, err := repo.GetByID(ctx, order.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestClientUpsert(t *testing.T) {
	db := setupTestDB(t)
	repo := NewClientRepository(db)
	ctx := context.Background()
	rest := seedRestaurant(t, db, model.PlanBasic)

	first := &model.Client{ID: uuid.New().String(), RestaurantID: rest.ID, Phone: "11987654321", Name: "Ana"}
	require.NoError(t, repo.Upsert(ctx, first))

	// same (restaurant, phone) refreshes the name instead of duplicating
	second := &model.Client{ID: uuid.New().String(), RestaurantID: rest.ID, Phone: "11987654321", Name: "Ana Paula"}
	require.NoError(t, repo.Upsert(ctx, second))

	clients, err := repo.ListByRestaurant(ctx, rest.ID)
	require.NoError(t, err)
	require.Len(t, clients, 1)
	assert.Equal(t, "Ana Paula", clients[0].Name)
	assert.Equal(t, first.ID, clients[0].ID)
}
