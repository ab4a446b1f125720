package service

import (
	"context"
	"io"
	"time"

	"unboxx/internal/dto"
	"unboxx/internal/infra"
	"unboxx/internal/model"
	"unboxx/internal/repository"
	"unboxx/internal/worker"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const dateLayout = "2006-01-02"

// OrderJobs is the async side of order creation.
type OrderJobs interface {
	EnqueueOrderPDF(ctx context.Context, payload worker.OrderPDFJobPayload) error
}

type OrderService interface {
	List(ctx context.Context, caller Caller, filter dto.OrderFilter) (*dto.OrderListResponse, error)
	Get(ctx context.Context, caller Caller, id uuid.UUID) (*dto.OrderDetailResponse, error)
	Create(ctx context.Context, caller Caller, req dto.CreateOrderRequest) (*dto.OrderResponse, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, req dto.UpdateOrderStatusRequest) (*dto.OrderResponse, error)
	// RenderPDF writes the order summary to w and returns a download file name.
	RenderPDF(ctx context.Context, caller Caller, id uuid.UUID, w io.Writer) (string, error)
}

type orderService struct {
	orders   repository.OrderRepository
	profiles repository.ProfileRepository
	jobs     OrderJobs
}

// NewOrderService wires the order use cases. jobs may be nil, in which case
// no confirmation PDF/mail is produced.
func NewOrderService(orders repository.OrderRepository, profiles repository.ProfileRepository, jobs OrderJobs) OrderService {
	return &orderService{orders: orders, profiles: profiles, jobs: jobs}
}

func (s *orderService) List(ctx context.Context, caller Caller, filter dto.OrderFilter) (*dto.OrderListResponse, error) {
	normalizePage(&filter.Page)
	resp := &dto.OrderListResponse{Data: []dto.OrderResponse{}, Page: filter.Page.Page, Limit: filter.Limit}

	customer, ok, err := companyScope(ctx, s.profiles, caller)
	if err != nil {
		return nil, classify(err)
	}
	if !ok {
		return resp, nil
	}
	filter.Customer = customer

	orders, total, err := s.orders.List(ctx, filter)
	if err != nil {
		return nil, classify(err)
	}
	for i := range orders {
		resp.Data = append(resp.Data, toOrderResponse(&orders[i]))
	}
	resp.Total = total
	resp.TotalPages = dto.TotalPages(total, filter.Limit)
	return resp, nil
}

func (s *orderService) find(ctx context.Context, caller Caller, id uuid.UUID) (*model.Order, error) {
	customer, ok, err := companyScope(ctx, s.profiles, caller)
	if err != nil {
		return nil, classify(err)
	}
	if !ok {
		return nil, ErrNotFound
	}
	o, err := s.orders.FindByID(ctx, id, customer)
	if err != nil {
		return nil, classify(err)
	}
	return o, nil
}

func (s *orderService) Get(ctx context.Context, caller Caller, id uuid.UUID) (*dto.OrderDetailResponse, error) {
	o, err := s.find(ctx, caller, id)
	if err != nil {
		return nil, err
	}
	return toOrderDetailResponse(o), nil
}

func (s *orderService) Create(ctx context.Context, caller Caller, req dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	p, err := s.profiles.FindByAuthID(ctx, caller.AuthID)
	if repository.IsNotFound(err) {
		return nil, ErrNoCompany
	}
	if err != nil {
		return nil, classify(err)
	}
	if p.Customer == nil {
		return nil, ErrNoCompany
	}

	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		return nil, &ValidationError{Fields: map[string]string{"Date": "datetime"}}
	}
	orderType := req.OrderType
	if orderType == "" {
		orderType = model.OrderTypeStore
	}

	o := &model.Order{
		OrderNumber:       req.OrderNumber,
		OrderType:         orderType,
		Customer:          p.Customer.Name,
		Store:             req.Store,
		Date:              date,
		Qty:               req.Qty,
		Amount:            req.Amount,
		Status:            req.Status,
		FulfillmentStatus: model.OrderPending,
	}
	if orderType == model.OrderTypeBulk {
		o.Title = req.Title
	}
	if err := s.orders.Create(ctx, o); err != nil {
		return nil, classify(err)
	}

	if s.jobs != nil {
		notify := caller.Email
		if p.Customer.Email != nil {
			notify = *p.Customer.Email
		}
		if err := s.jobs.EnqueueOrderPDF(ctx, worker.OrderPDFJobPayload{OrderID: o.ID.String(), NotifyEmail: notify}); err != nil {
			// The order is stored; the confirmation is best effort.
			log.Error().Err(err).Str("order", o.OrderNumber).Msg("order: failed to enqueue confirmation")
		}
	}

	resp := toOrderResponse(o)
	return &resp, nil
}

func (s *orderService) UpdateStatus(ctx context.Context, id uuid.UUID, req dto.UpdateOrderStatusRequest) (*dto.OrderResponse, error) {
	fields := map[string]interface{}{}
	if req.Status != nil {
		fields["status"] = *req.Status
	}
	if req.FulfillmentStatus != nil {
		fields["fulfillment_status"] = *req.FulfillmentStatus
	}
	if len(fields) > 0 {
		if err := s.orders.UpdateStatus(ctx, id, fields); err != nil {
			return nil, classify(err)
		}
	}

	o, err := s.orders.FindByID(ctx, id, "")
	if err != nil {
		return nil, classify(err)
	}
	resp := toOrderResponse(o)
	return &resp, nil
}

func (s *orderService) RenderPDF(ctx context.Context, caller Caller, id uuid.UUID, w io.Writer) (string, error) {
	o, err := s.find(ctx, caller, id)
	if err != nil {
		return "", err
	}
	if err := infra.RenderOrderPDF(o, w); err != nil {
		return "", err
	}
	return "order_" + o.OrderNumber + ".pdf", nil
}

func toOrderResponse(o *model.Order) dto.OrderResponse {
	return dto.OrderResponse{
		ID:                o.ID.String(),
		OrderNumber:       o.OrderNumber,
		OrderType:         o.OrderType,
		Title:             o.Title,
		Customer:          o.Customer,
		Store:             o.Store,
		Date:              o.Date.Format(dateLayout),
		Qty:               o.Qty,
		Amount:            o.Amount,
		Status:            o.Status,
		FulfillmentStatus: o.FulfillmentStatus,
		HasTracking:       o.Tracking != nil,
	}
}

func toOrderDetailResponse(o *model.Order) *dto.OrderDetailResponse {
	resp := &dto.OrderDetailResponse{
		OrderResponse: toOrderResponse(o),
		Items:         make([]dto.OrderItemResponse, 0, len(o.Items)),
	}
	for _, it := range o.Items {
		resp.Items = append(resp.Items, dto.OrderItemResponse{
			SKU:       it.SKU,
			Name:      it.Name,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
			Subtotal:  it.Subtotal(),
		})
	}
	if a := o.ShippingAddress; a != nil {
		resp.ShippingAddress = &dto.ShippingAddressResponse{
			Name: a.Name, Email: a.Email, Phone: a.Phone,
			Line1: a.Line1, Line2: a.Line2, City: a.City, Region: a.Region,
			PostalCode: a.PostalCode, Country: a.Country,
		}
	}
	if t := o.Tracking; t != nil {
		resp.Tracking = &dto.TrackingResponse{
			Carrier: t.Carrier, TrackingNumber: t.TrackingNumber, URL: t.URL, Status: t.Status,
		}
	}
	return resp
}
