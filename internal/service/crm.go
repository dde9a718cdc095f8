package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"gorm.io/gorm"

	"github.com/comandahq/comanda/internal/model"
	"github.com/comandahq/comanda/internal/repository"
)

// ClientSummary is one row of the CRM view, recomputed from the order
// collection on every request.
type ClientSummary struct {
	Name        string    `json:"name"`
	Phone       string    `json:"phone,omitempty"`
	TotalOrders int       `json:"total_orders"`
	TotalSpent  float64   `json:"total_spent"`
	LastOrderAt time.Time `json:"last_order_at"`
}

// CRMService groups a restaurant's orders into per-client summaries.
type CRMService struct {
	orders      repository.OrderRepository
	restaurants repository.RestaurantRepository
}

func NewCRMService(orders repository.OrderRepository, restaurants repository.RestaurantRepository) *CRMService {
	return &CRMService{orders: orders, restaurants: restaurants}
}

// Clients returns the restaurant's client summaries, most recently active
// first.
func (s *CRMService) Clients(ctx context.Context, restaurantID string) ([]*ClientSummary, error) {
	restaurant, err := s.restaurants.GetByID(ctx, restaurantID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRestaurantNotFound
		}
		return nil, err
	}
	plan := restaurant.ResolvedPlan()
	if !CanUseCRM(plan) {
		return nil, &PlanDeniedError{CurrentPlan: plan, UpgradeTo: model.PlanPro}
	}

	orders, err := s.orders.ListByRestaurant(ctx, restaurantID)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}

	groups := make(map[string]*ClientSummary)
	result := make([]*ClientSummary, 0)
	for _, order := range orders {
		// phone-less orders get a synthetic per-order key so they never
		// merge with each other
		key := order.Phone()
		if key == "" {
			key = "order:" + order.ID
		}

		summary, ok := groups[key]
		if !ok {
			summary = &ClientSummary{Phone: order.Phone()}
			groups[key] = summary
			result = append(result, summary)
		}
		summary.TotalOrders++
		summary.TotalSpent += order.TotalPrice

		// >= keeps the last-processed order among equal timestamps; orders
		// arrive in ascending creation order, so ties resolve to the most
		// recently inserted one
		if !order.CreatedAt.Before(summary.LastOrderAt) {
			summary.LastOrderAt = order.CreatedAt
			if order.ClientName != "" {
				summary.Name = order.ClientName
			}
		}
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].LastOrderAt.After(result[j].LastOrderAt)
	})
	return result, nil
}
