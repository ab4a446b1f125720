package service

import (
	"context"
	"encoding/json"
	"time"

	"unboxx/internal/dto"
	"unboxx/internal/model"
	"unboxx/internal/realtime"
	"unboxx/internal/repository"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

const dashboardKeyPrefix = "dashboard:"

// DashboardTables are the tables whose changes affect dashboard metrics.
var DashboardTables = []string{"orders", "product_variants", "revenues"}

// Cache is a byte cache with prefix invalidation; infra.RedisCache implements it.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, val []byte, ttl time.Duration) error
	DeletePrefix(ctx context.Context, prefix string) error
}

type DashboardService interface {
	Get(ctx context.Context, caller Caller) (*dto.DashboardResponse, error)
	// Refresh recomputes the caller's metrics, skipping the cache read, and
	// stores the result.
	Refresh(ctx context.Context, caller Caller) (*dto.DashboardResponse, error)
	// Invalidate drops every cached dashboard.
	Invalidate(ctx context.Context) error
}

type dashboardService struct {
	reports  repository.ReportRepository
	products repository.ProductRepository
	profiles repository.ProfileRepository
	cache    Cache
	ttl      time.Duration
}

// NewDashboardService builds the metrics service. cache may be nil.
func NewDashboardService(reports repository.ReportRepository, products repository.ProductRepository, profiles repository.ProfileRepository, cache Cache, ttl time.Duration) DashboardService {
	return &dashboardService{reports: reports, products: products, profiles: profiles, cache: cache, ttl: ttl}
}

func (s *dashboardService) Get(ctx context.Context, caller Caller) (*dto.DashboardResponse, error) {
	return s.get(ctx, caller, true)
}

func (s *dashboardService) Refresh(ctx context.Context, caller Caller) (*dto.DashboardResponse, error) {
	return s.get(ctx, caller, false)
}

func (s *dashboardService) get(ctx context.Context, caller Caller, readCache bool) (*dto.DashboardResponse, error) {
	customer, ok, err := companyScope(ctx, s.profiles, caller)
	if err != nil {
		return nil, classify(err)
	}
	if !ok {
		return emptyDashboard(), nil
	}

	key := dashboardKeyPrefix + "all"
	if customer != "" {
		key = dashboardKeyPrefix + "c:" + customer
	}
	if s.cache != nil && readCache {
		if raw, hit, err := s.cache.Get(ctx, key); err != nil {
			log.Warn().Err(err).Msg("dashboard: cache read failed")
		} else if hit {
			var cached dto.DashboardResponse
			if json.Unmarshal(raw, &cached) == nil {
				return &cached, nil
			}
		}
	}

	resp, err := s.compute(ctx, customer)
	if err != nil {
		return nil, classify(err)
	}
	if s.cache != nil {
		if raw, err := json.Marshal(resp); err == nil {
			if err := s.cache.Set(ctx, key, raw, s.ttl); err != nil {
				log.Warn().Err(err).Msg("dashboard: cache write failed")
			}
		}
	}
	return resp, nil
}

func (s *dashboardService) compute(ctx context.Context, customer string) (*dto.DashboardResponse, error) {
	store, err := s.reports.CountOrders(ctx, model.OrderTypeStore, customer)
	if err != nil {
		return nil, err
	}
	bulk, err := s.reports.CountOrders(ctx, model.OrderTypeBulk, customer)
	if err != nil {
		return nil, err
	}
	lowStock, err := s.products.CountLowStockVariants(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := s.reports.StatusBreakdown(ctx, customer)
	if err != nil {
		return nil, err
	}
	revenue, err := s.reports.RevenueTotal(ctx, customer)
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, r := range rows {
		counts[r.Status] = r.Count
	}
	resp := emptyDashboard()
	resp.StoreOrders = dto.OrderTypeMetrics{Processing: store.Processing, Total: store.Total}
	resp.BulkOrders = dto.OrderTypeMetrics{Processing: bulk.Processing, Total: bulk.Total}
	resp.LowStockItems = lowStock
	resp.RevenueTotal = revenue
	for i := range resp.StatusCounts {
		resp.StatusCounts[i].Count = counts[resp.StatusCounts[i].Status]
	}
	return resp, nil
}

// emptyDashboard lists every order status with a zero count.
func emptyDashboard() *dto.DashboardResponse {
	resp := &dto.DashboardResponse{RevenueTotal: decimal.Zero}
	for _, st := range model.OrderStatuses {
		resp.StatusCounts = append(resp.StatusCounts, dto.StatusCount{Status: st})
	}
	return resp
}

func (s *dashboardService) Invalidate(ctx context.Context) error {
	if s.cache == nil {
		return nil
	}
	return s.cache.DeletePrefix(ctx, dashboardKeyPrefix)
}

// StartDashboardInvalidator drops cached dashboards whenever one of
// DashboardTables changes. It stops when ctx is cancelled.
func StartDashboardInvalidator(ctx context.Context, hub *realtime.Hub, svc DashboardService) {
	sub := hub.Subscribe(DashboardTables...)
	go func() {
		defer sub.Unsubscribe()
		log.Info().Msg("dashboard: cache invalidator started")
		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("dashboard: cache invalidator stopped")
				return
			case ev, ok := <-sub.C:
				if !ok {
					return
				}
				if err := svc.Invalidate(ctx); err != nil {
					log.Warn().Err(err).Str("table", ev.Table).Msg("dashboard: invalidate failed")
				}
			}
		}
	}()
}
