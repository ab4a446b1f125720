package service

import (
	"context"
	"errors"
	"sort"
	"strings"

	"unboxx/internal/dto"
	"unboxx/internal/model"
	"unboxx/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ── In-memory Repository Stubs ───────────────────────────────────────────────

type stubAuthUserRepo struct {
	users map[uuid.UUID]*model.AuthUser
}

var _ repository.AuthUserRepository = (*stubAuthUserRepo)(nil)

func newStubAuthUserRepo() *stubAuthUserRepo {
	return &stubAuthUserRepo{users: map[uuid.UUID]*model.AuthUser{}}
}

func (r *stubAuthUserRepo) Create(_ context.Context, u *model.AuthUser) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	r.users[u.ID] = u
	return nil
}

func (r *stubAuthUserRepo) FindByEmail(_ context.Context, email string) (*model.AuthUser, error) {
	for _, u := range r.users {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubAuthUserRepo) FindByID(_ context.Context, id uuid.UUID) (*model.AuthUser, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

func (r *stubAuthUserRepo) Update(_ context.Context, u *model.AuthUser) error {
	r.users[u.ID] = u
	return nil
}

// stubProfileRepo and stubCustomerRepo share state so that profile reads
// see the linked company, as the gorm Preload does.
type stubProfileRepo struct {
	byAuth    map[uuid.UUID]*model.Profile
	customers *stubCustomerRepo
}

var _ repository.ProfileRepository = (*stubProfileRepo)(nil)

type stubCustomerRepo struct {
	rows     map[uuid.UUID]*model.Customer
	profiles *stubProfileRepo
	linkErr  error
}

var _ repository.CustomerRepository = (*stubCustomerRepo)(nil)

func newStubProfileStore() (*stubProfileRepo, *stubCustomerRepo) {
	p := &stubProfileRepo{byAuth: map[uuid.UUID]*model.Profile{}}
	c := &stubCustomerRepo{rows: map[uuid.UUID]*model.Customer{}, profiles: p}
	p.customers = c
	return p, c
}

func (r *stubProfileRepo) Create(_ context.Context, p *model.Profile) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	cp := *p
	r.byAuth[p.AuthID] = &cp
	return nil
}

func (r *stubProfileRepo) FindByAuthID(_ context.Context, authID uuid.UUID) (*model.Profile, error) {
	p, ok := r.byAuth[authID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *p
	cp.Customer = nil
	if cp.CustomerID != nil {
		if c, ok := r.customers.rows[*cp.CustomerID]; ok {
			cc := *c
			cp.Customer = &cc
		}
	}
	return &cp, nil
}

func (r *stubProfileRepo) Update(_ context.Context, p *model.Profile) error {
	if _, ok := r.byAuth[p.AuthID]; !ok {
		return gorm.ErrRecordNotFound
	}
	cp := *p
	cp.Customer = nil
	r.byAuth[p.AuthID] = &cp
	return nil
}

func (r *stubProfileRepo) UpdateFields(_ context.Context, authID uuid.UUID, fields map[string]interface{}) error {
	p, ok := r.byAuth[authID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	for k, v := range fields {
		s, _ := v.(*string)
		switch k {
		case "first_name":
			p.FirstName = s
		case "surname":
			p.Surname = s
		case "phone":
			p.Phone = s
		}
	}
	return nil
}

func (r *stubCustomerRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Customer, error) {
	c, ok := r.rows[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *stubCustomerRepo) Update(_ context.Context, c *model.Customer) error {
	cp := *c
	r.rows[c.ID] = &cp
	return nil
}

// CreateAndLink is all-or-nothing like the transactional implementation.
func (r *stubCustomerRepo) CreateAndLink(_ context.Context, c *model.Customer, p *model.Profile) error {
	if r.linkErr != nil {
		return r.linkErr
	}
	stored, ok := r.profiles.byAuth[p.AuthID]
	switch {
	case p.ID == uuid.Nil:
		p.ID = uuid.New()
		cp := *p
		stored = &cp
		r.profiles.byAuth[p.AuthID] = stored
	case !ok:
		return gorm.ErrRecordNotFound
	}
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	cc := *c
	r.rows[c.ID] = &cc
	id := c.ID
	stored.CustomerID = &id
	p.CustomerID = &id
	return nil
}

type stubOrderRepo struct {
	rows      map[uuid.UUID]*model.Order
	createErr error
	// booked collects revenue from moves into Delivered.
	booked    []model.Revenue
}

var _ repository.OrderRepository = (*stubOrderRepo)(nil)

func newStubOrderRepo() *stubOrderRepo { return &stubOrderRepo{rows: map[uuid.UUID]*model.Order{}} }

func (r *stubOrderRepo) Create(_ context.Context, o *model.Order) error {
	if r.createErr != nil {
		return r.createErr
	}
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	cp := *o
	r.rows[o.ID] = &cp
	return nil
}

func (r *stubOrderRepo) FindByID(_ context.Context, id uuid.UUID, customer string) (*model.Order, error) {
	o, ok := r.rows[id]
	if !ok || (customer != "" && o.Customer != customer) {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *o
	return &cp, nil
}

func (r *stubOrderRepo) List(_ context.Context, f dto.OrderFilter) ([]model.Order, int64, error) {
	var out []model.Order
	for _, o := range r.rows {
		if f.Customer != "" && o.Customer != f.Customer {
			continue
		}
		if f.Type != "" && o.OrderType != f.Type {
			continue
		}
		if f.Status != "" && o.Status != f.Status {
			continue
		}
		out = append(out, *o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].OrderNumber < out[j].OrderNumber })
	return out, int64(len(out)), nil
}

func (r *stubOrderRepo) UpdateStatus(_ context.Context, id uuid.UUID, fields map[string]interface{}) error {
	o, ok := r.rows[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if v, ok := fields["status"].(string); ok {
		if v == model.OrderDelivered && o.Status != model.OrderDelivered {
			r.booked = append(r.booked, model.Revenue{Store: o.Store, Customer: o.Customer, Amount: o.Amount})
		}
		o.Status = v
	}
	if v, ok := fields["fulfillment_status"].(string); ok {
		o.FulfillmentStatus = v
	}
	return nil
}

type stubProductRepo struct {
	products []model.Product
}

var _ repository.ProductRepository = (*stubProductRepo)(nil)

func (r *stubProductRepo) Create(_ context.Context, p *model.Product) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.products = append(r.products, *p)
	return nil
}

func (r *stubProductRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Product, error) {
	for i := range r.products {
		if r.products[i].ID == id {
			p := r.products[i]
			return &p, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubProductRepo) match(f dto.InventoryFilter) []model.Product {
	var out []model.Product
	for _, p := range r.products {
		if f.Store != "" && p.Store != f.Store {
			continue
		}
		if f.Status != "" && p.Status() != f.Status {
			continue
		}
		out = append(out, p)
	}
	return out
}

func (r *stubProductRepo) List(_ context.Context, f dto.InventoryFilter) ([]model.Product, int64, error) {
	out := r.match(f)
	return out, int64(len(out)), nil
}

func (r *stubProductRepo) Stores(context.Context) ([]string, error) {
	seen := map[string]bool{}
	var out []string
	for _, p := range r.products {
		if !seen[p.Store] {
			seen[p.Store] = true
			out = append(out, p.Store)
		}
	}
	sort.Strings(out)
	return out, nil
}

func (r *stubProductRepo) CountLowStockVariants(context.Context) (int64, error) {
	var n int64
	for _, p := range r.products {
		for _, v := range p.Variants {
			if v.Status() == model.StatusLowStock {
				n++
			}
		}
	}
	return n, nil
}

func (r *stubProductRepo) FindVariantByID(_ context.Context, id uuid.UUID) (*model.ProductVariant, error) {
	for _, p := range r.products {
		for _, v := range p.Variants {
			if v.ID == id {
				cp := v
				return &cp, nil
			}
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubProductRepo) UpdateVariantStock(_ context.Context, id uuid.UUID, fields map[string]interface{}) error {
	for i := range r.products {
		for j := range r.products[i].Variants {
			v := &r.products[i].Variants[j]
			if v.ID != id {
				continue
			}
			if s, ok := fields["stock"].(int); ok {
				v.Stock = s
			}
			if m, ok := fields["min_stock"].(int); ok {
				v.MinStock = m
			}
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

type stubInvoiceRepo struct {
	rows []model.Invoice
	err  error
}

var _ repository.InvoiceRepository = (*stubInvoiceRepo)(nil)

func (r *stubInvoiceRepo) Create(_ context.Context, inv *model.Invoice) error {
	r.rows = append(r.rows, *inv)
	return nil
}

func (r *stubInvoiceRepo) ListAll(_ context.Context, f dto.InvoiceFilter) ([]model.Invoice, error) {
	if r.err != nil {
		return nil, r.err
	}
	var out []model.Invoice
	for _, inv := range r.rows {
		if f.Company != "" && inv.Company != f.Company {
			continue
		}
		if f.Status != "" && inv.Status != f.Status {
			continue
		}
		out = append(out, inv)
	}
	return out, nil
}

func (r *stubInvoiceRepo) List(ctx context.Context, f dto.InvoiceFilter) ([]model.Invoice, int64, error) {
	out, err := r.ListAll(ctx, f)
	return out, int64(len(out)), err
}

type stubReportRepo struct {
	counts   map[string]repository.OrderCounts
	statuses []repository.StatusCountRow
	revenue  decimal.Decimal
	top      []repository.TopProductRow
	perf     []repository.StorePerformanceRow
	calls    int
	// lastCustomer is the scope of the most recent query.
	lastCustomer string
}

var _ repository.ReportRepository = (*stubReportRepo)(nil)

func (r *stubReportRepo) CountOrders(_ context.Context, orderType, customer string) (repository.OrderCounts, error) {
	r.calls++
	r.lastCustomer = customer
	return r.counts[orderType], nil
}

func (r *stubReportRepo) StatusBreakdown(_ context.Context, customer string) ([]repository.StatusCountRow, error) {
	r.lastCustomer = customer
	return r.statuses, nil
}

func (r *stubReportRepo) RevenueTotal(_ context.Context, customer string) (decimal.Decimal, error) {
	r.lastCustomer = customer
	return r.revenue, nil
}

func (r *stubReportRepo) TopProducts(_ context.Context, customer string, limit int) ([]repository.TopProductRow, error) {
	r.lastCustomer = customer
	if len(r.top) > limit {
		return r.top[:limit], nil
	}
	return r.top, nil
}

func (r *stubReportRepo) StorePerformance(_ context.Context, customer string) ([]repository.StorePerformanceRow, error) {
	r.lastCustomer = customer
	return r.perf, nil
}

var errBoom = errors.New("boom")

// ── Fixtures ─────────────────────────────────────────────────────────────────

func clientCaller() Caller {
	return Caller{AuthID: uuid.New(), Email: "jane@acme.test", Role: model.RoleClient}
}

func adminCaller() Caller {
	return Caller{AuthID: uuid.New(), Email: "ops@unboxx.test", Role: model.RoleAdmin}
}

// linkCompany seeds a profile for c linked to a company called name.
func linkCompany(profiles *stubProfileRepo, customers *stubCustomerRepo, c Caller, name string) *model.Customer {
	cust := &model.Customer{ID: uuid.New(), Name: name, FirstName: "Jane", Surname: "Doe"}
	customers.rows[cust.ID] = cust
	id := cust.ID
	profiles.byAuth[c.AuthID] = &model.Profile{
		ID: uuid.New(), AuthID: c.AuthID, Email: c.Email, Role: c.Role, CustomerID: &id,
	}
	return cust
}
