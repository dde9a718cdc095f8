package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/comandahq/comanda/internal/model"
)

// RestaurantRepository 餐厅仓储接口
type RestaurantRepository interface {
	Create(ctx context.Context, restaurant *model.Restaurant) error
	GetByID(ctx context.Context, id string) (*model.Restaurant, error)
	GetByEmail(ctx context.Context, email string) (*model.Restaurant, error)
}

type restaurantRepository struct {
	db *gorm.DB
}

func NewRestaurantRepository(db *gorm.DB) RestaurantRepository {
	return &restaurantRepository{db: db}
}

func (r *restaurantRepository) Create(ctx context.Context, restaurant *model.Restaurant) error {
	return r.db.WithContext(ctx).Create(restaurant).Error
}

func (r *restaurantRepository) GetByID(ctx context.Context, id string) (*model.Restaurant, error) {
	var restaurant model.Restaurant
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&restaurant).Error; err != nil {
		return nil, err
	}
	return &restaurant, nil
}

func (r *restaurantRepository) GetByEmail(ctx context.Context, email string) (*model.Restaurant, error) {
	var restaurant model.Restaurant
	err := r.db.WithContext(ctx).
		Where("email = ?", strings.ToLower(strings.TrimSpace(email))).
		First(&restaurant).Error
	if err != nil {
		return nil, err
	}
	return &restaurant, nil
}
