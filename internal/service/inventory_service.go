package service

import (
	"context"

	"unboxx/internal/dto"
	"unboxx/internal/model"
	"unboxx/internal/repository"
	"unboxx/internal/viewstate"

	"github.com/google/uuid"
)

type InventoryService interface {
	// List returns products with derived stock statuses and the caller's
	// expansion flag per product.
	List(ctx context.Context, caller Caller, filter dto.InventoryFilter) (*dto.InventoryListResponse, error)
	Stores(ctx context.Context) ([]string, error)
	ToggleRow(ctx context.Context, caller Caller, productID uuid.UUID) (*dto.ToggleResponse, error)
	// ToggleAll collapses every row when all listed rows are expanded,
	// otherwise expands all of them.
	ToggleAll(ctx context.Context, caller Caller, filter dto.InventoryFilter) (*dto.ToggleAllResponse, error)
	SetVariantStock(ctx context.Context, variantID uuid.UUID, req dto.SetStockRequest) (*dto.VariantResponse, error)
}

type inventoryService struct {
	products repository.ProductRepository
	rows     viewstate.Store
}

func NewInventoryService(products repository.ProductRepository, rows viewstate.Store) InventoryService {
	return &inventoryService{products: products, rows: rows}
}

func inventoryScope(c Caller) string { return "inventory:" + c.AuthID.String() }

func (s *inventoryService) List(ctx context.Context, caller Caller, filter dto.InventoryFilter) (*dto.InventoryListResponse, error) {
	normalizePage(&filter.Page)
	products, total, err := s.products.List(ctx, filter)
	if err != nil {
		return nil, classify(err)
	}
	lowStock, err := s.products.CountLowStockVariants(ctx)
	if err != nil {
		return nil, classify(err)
	}
	expandedIDs, err := s.rows.Expanded(ctx, inventoryScope(caller))
	if err != nil {
		return nil, err
	}
	expanded := make(map[string]bool, len(expandedIDs))
	for _, id := range expandedIDs {
		expanded[id] = true
	}

	resp := &dto.InventoryListResponse{
		Data:       make([]dto.ProductResponse, 0, len(products)),
		Total:      total,
		LowStock:   lowStock,
		Page:       filter.Page.Page,
		Limit:      filter.Limit,
		TotalPages: dto.TotalPages(total, filter.Limit),
	}
	for i := range products {
		pr := toProductResponse(&products[i])
		pr.Expanded = expanded[pr.ID]
		resp.Data = append(resp.Data, pr)
	}
	return resp, nil
}

func (s *inventoryService) Stores(ctx context.Context) ([]string, error) {
	stores, err := s.products.Stores(ctx)
	if err != nil {
		return nil, classify(err)
	}
	if stores == nil {
		stores = []string{}
	}
	return stores, nil
}

func (s *inventoryService) ToggleRow(ctx context.Context, caller Caller, productID uuid.UUID) (*dto.ToggleResponse, error) {
	if _, err := s.products.FindByID(ctx, productID); err != nil {
		return nil, classify(err)
	}
	on, err := s.rows.Toggle(ctx, inventoryScope(caller), productID.String())
	if err != nil {
		return nil, err
	}
	return &dto.ToggleResponse{ProductID: productID.String(), Expanded: on}, nil
}

func (s *inventoryService) ToggleAll(ctx context.Context, caller Caller, filter dto.InventoryFilter) (*dto.ToggleAllResponse, error) {
	normalizePage(&filter.Page)
	products, _, err := s.products.List(ctx, filter)
	if err != nil {
		return nil, classify(err)
	}
	visible := make([]string, len(products))
	for i := range products {
		visible[i] = products[i].ID.String()
	}
	ids, err := viewstate.ToggleAll(ctx, s.rows, inventoryScope(caller), visible)
	if err != nil {
		return nil, err
	}
	return &dto.ToggleAllResponse{Expanded: ids}, nil
}

func (s *inventoryService) SetVariantStock(ctx context.Context, variantID uuid.UUID, req dto.SetStockRequest) (*dto.VariantResponse, error) {
	fields := map[string]interface{}{"stock": req.Stock}
	if req.MinStock != nil {
		fields["min_stock"] = *req.MinStock
	}
	if err := s.products.UpdateVariantStock(ctx, variantID, fields); err != nil {
		return nil, classify(err)
	}
	v, err := s.products.FindVariantByID(ctx, variantID)
	if err != nil {
		return nil, classify(err)
	}
	resp := toVariantResponse(v)
	return &resp, nil
}

func toVariantResponse(v *model.ProductVariant) dto.VariantResponse {
	return dto.VariantResponse{
		ID:         v.ID.String(),
		VariantSKU: v.VariantSKU,
		Size:       v.Size,
		Color:      v.Color,
		Stock:      v.Stock,
		MinStock:   v.MinStock,
		Status:     v.Status(),
	}
}

func toProductResponse(p *model.Product) dto.ProductResponse {
	resp := dto.ProductResponse{
		ID:       p.ID.String(),
		SKU:      p.SKU,
		Name:     p.Name,
		Store:    p.Store,
		Price:    p.Price,
		SOH:      p.TotalStock(),
		Status:   p.Status(),
		Variants: make([]dto.VariantResponse, 0, len(p.Variants)),
	}
	for i := range p.Variants {
		resp.Variants = append(resp.Variants, toVariantResponse(&p.Variants[i]))
	}
	return resp
}
