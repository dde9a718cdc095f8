package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/comandahq/comanda/internal/model"
	"github.com/comandahq/comanda/internal/repository"
	"github.com/comandahq/comanda/internal/status"
)

// MetricsReport is the fixed-shape result of the windowed aggregation.
// Every known bucket is present even at zero.
type MetricsReport struct {
	Period          string             `json:"period"`
	TotalOrders     int                `json:"total_orders"`
	TotalRevenue    float64            `json:"total_revenue"`
	AverageTicket   float64            `json:"average_ticket"`
	OrdersByOrigin  map[string]int     `json:"orders_by_origin"`
	OrdersByStatus  map[string]int     `json:"orders_by_status"`
	OrdersByService map[string]int     `json:"orders_by_service_type"`
	UniqueClients   int                `json:"unique_clients"`
}

// MetricsService computes the plan-gated metrics report, with a
// read-through redis cache in front of the aggregation.
type MetricsService struct {
	orders      repository.OrderRepository
	restaurants repository.RestaurantRepository
	cache       *redis.Client
	ttl         time.Duration
}

// NewMetricsService builds the service. cache may be nil, in which case
// every request aggregates from the store.
func NewMetricsService(orders repository.OrderRepository, restaurants repository.RestaurantRepository, cache *redis.Client, ttl time.Duration) *MetricsService {
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &MetricsService{orders: orders, restaurants: restaurants, cache: cache, ttl: ttl}
}

// Report aggregates the restaurant's orders within the period window.
func (s *MetricsService) Report(ctx context.Context, restaurantID, period string) (*MetricsReport, error) {
	restaurant, err := s.restaurants.GetByID(ctx, restaurantID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRestaurantNotFound
		}
		return nil, err
	}
	plan := restaurant.ResolvedPlan()
	if !CanUseResults(plan) {
		return nil, &PlanDeniedError{CurrentPlan: plan, UpgradeTo: model.PlanAdvanced}
	}

	key := fmt.Sprintf("metrics:%s:%s", restaurantID, period)
	if s.cache != nil {
		if data, err := s.cache.Get(ctx, key).Bytes(); err == nil {
			var cached MetricsReport
			if uErr := json.Unmarshal(data, &cached); uErr == nil {
				return &cached, nil
			}
		}
	}

	orders, err := s.orders.ListByRestaurantSince(ctx, restaurantID, periodStart(period, time.Now()))
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	report := aggregate(orders, period)

	if s.cache != nil {
		if payload, err := json.Marshal(report); err == nil {
			_ = s.cache.Set(ctx, key, payload, s.ttl).Err()
		}
	}
	return report, nil
}

// periodStart parses an "Nd" lookback token. Unparseable tokens leave the
// window at now, yielding an empty window.
func periodStart(period string, now time.Time) time.Time {
	token := strings.ToLower(strings.TrimSpace(period))
	if !strings.HasSuffix(token, "d") {
		return now
	}
	days, err := strconv.Atoi(strings.TrimSuffix(token, "d"))
	if err != nil || days <= 0 {
		return now
	}
	return now.AddDate(0, 0, -days)
}

func aggregate(orders []*model.Order, period string) *MetricsReport {
	report := &MetricsReport{
		Period: period,
		OrdersByOrigin: map[string]int{
			model.OriginIAWhatsApp: 0,
			model.OriginPDV:        0,
			model.OriginBalcao:     0,
			model.OriginOther:      0,
		},
		OrdersByStatus: map[string]int{
			status.Pending:    0,
			status.Preparing:  0,
			status.Mounting:   0,
			status.Delivering: 0,
			status.Finished:   0,
			status.Canceled:   0,
		},
		OrdersByService: map[string]int{
			model.ServiceDelivery: 0,
			model.ServiceLocal:    0,
		},
	}

	phones := make(map[string]struct{})
	for _, order := range orders {
		report.TotalOrders++
		report.TotalRevenue += order.TotalPrice

		switch order.Origin {
		case model.OriginIAWhatsApp, model.OriginPDV, model.OriginBalcao:
			report.OrdersByOrigin[order.Origin]++
		default:
			report.OrdersByOrigin[model.OriginOther]++
		}

		// cancelled normalizes to canceled; unknown statuses stay out of
		// the buckets but still count in total_orders
		st := order.Status
		if st == status.Cancelled {
			st = status.Canceled
		}
		if _, ok := report.OrdersByStatus[st]; ok {
			report.OrdersByStatus[st]++
		}

		if _, ok := report.OrdersByService[order.ServiceType]; ok {
			report.OrdersByService[order.ServiceType]++
		}

		if phone := order.Phone(); phone != "" {
			phones[phone] = struct{}{}
		}
	}

	report.UniqueClients = len(phones)
	if report.TotalOrders > 0 {
		report.AverageTicket = report.TotalRevenue / float64(report.TotalOrders)
	}
	return report
}
