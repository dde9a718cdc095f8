package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/comandahq/comanda/internal/model"
)

// ClientRepository 客户目录仓储接口
type ClientRepository interface {
	// Upsert inserts the directory record or refreshes the name of an
	// existing (restaurant, phone) pair.
	Upsert(ctx context.Context, client *model.Client) error

	ListByRestaurant(ctx context.Context, restaurantID string) ([]*model.Client, error)
}

type clientRepository struct {
	db *gorm.DB
}

func NewClientRepository(db *gorm.DB) ClientRepository {
	return &clientRepository{db: db}
}

func (r *clientRepository) Upsert(ctx context.Context, client *model.Client) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "restaurant_id"}, {Name: "phone"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "updated_at"}),
	}).Create(client).Error
}

func (r *clientRepository) ListByRestaurant(ctx context.Context, restaurantID string) ([]*model.Client, error) {
	var clients []*model.Client
	err := r.db.WithContext(ctx).
		Where("restaurant_id = ?", restaurantID).
		Order("updated_at DESC").
		Find(&clients).Error
	return clients, err
}
