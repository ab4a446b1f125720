package service

import (
	"context"

	"unboxx/internal/dto"
	"unboxx/internal/repository"
)

const topProductsLimit = 5

type ReportService interface {
	Get(ctx context.Context, caller Caller) (*dto.ReportResponse, error)
}

type reportService struct {
	reports  repository.ReportRepository
	profiles repository.ProfileRepository
}

func NewReportService(reports repository.ReportRepository, profiles repository.ProfileRepository) ReportService {
	return &reportService{reports: reports, profiles: profiles}
}

func (s *reportService) Get(ctx context.Context, caller Caller) (*dto.ReportResponse, error) {
	resp := &dto.ReportResponse{TopProducts: []dto.TopProduct{}, StorePerformance: []dto.StorePerformance{}}

	customer, ok, err := companyScope(ctx, s.profiles, caller)
	if err != nil {
		return nil, classify(err)
	}
	if !ok {
		return resp, nil
	}

	top, err := s.reports.TopProducts(ctx, customer, topProductsLimit)
	if err != nil {
		return nil, classify(err)
	}
	for i, r := range top {
		resp.TopProducts = append(resp.TopProducts, dto.TopProduct{
			Rank: i + 1, SKU: r.SKU, Name: r.Name, Store: r.Store, Price: r.Price, Quantity: r.Quantity,
		})
	}

	perf, err := s.reports.StorePerformance(ctx, customer)
	if err != nil {
		return nil, classify(err)
	}
	for _, r := range perf {
		resp.StorePerformance = append(resp.StorePerformance, dto.StorePerformance{
			Store: r.Store, Revenue: r.Revenue, Orders: r.Orders,
		})
	}
	return resp, nil
}
