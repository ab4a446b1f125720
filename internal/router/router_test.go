package router

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"unboxx/internal/config"
	"unboxx/internal/dto"
	"unboxx/internal/infra"
	"unboxx/internal/model"
	"unboxx/internal/realtime"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func init() { gin.SetMode(gin.TestMode) }

type testApp struct {
	t   *testing.T
	db  *gorm.DB
	hub *realtime.Hub
	r   *gin.Engine
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name)), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, infra.Migrate(db))

	cfg := &config.Config{
		Env:                "test",
		JWTSecret:          "router-test-secret",
		JWTExpirationHours: 1,
		JWTRefreshHours:    2,
		SessionCookie:      "portal_session",
		LoginPath:          "/login",
	}
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	hub := realtime.NewHub()
	return &testApp{t: t, db: db, hub: hub, r: New(ctx, cfg, db, nil, hub)}
}

// user creates a login identity and, for admins, a profile carrying the role.
func (a *testApp) user(email, password, role string) {
	a.t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(a.t, err)
	u := &model.AuthUser{Email: email, PasswordHash: string(hash), Active: true}
	require.NoError(a.t, a.db.Create(u).Error)
	if role == model.RoleAdmin {
		require.NoError(a.t, a.db.Create(&model.Profile{AuthID: u.ID, Email: email, Role: role}).Error)
	}
}

func (a *testApp) login(email, password string) string {
	a.t.Helper()
	w := a.do(http.MethodPost, "/v1/auth/login", "", map[string]string{"email": email, "password": password})
	require.Equal(a.t, http.StatusOK, w.Code, w.Body.String())
	var resp dto.LoginResponse
	require.NoError(a.t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.AccessToken
}

func (a *testApp) do(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	a.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(a.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.r.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func (a *testApp) order(num, typ, customer, status string, day int) *model.Order {
	a.t.Helper()
	o := &model.Order{
		OrderNumber: num, OrderType: typ, Customer: customer, Store: "Shopify US",
		Date: time.Date(2024, 5, day, 0, 0, 0, 0, time.UTC), Qty: 1, Amount: decimal.NewFromInt(100),
		Status: status, FulfillmentStatus: model.OrderPending,
	}
	require.NoError(a.t, a.db.Create(o).Error)
	return o
}

var protectedGETs = []string{
	"/v1/auth/me", "/v1/profile", "/v1/company",
	"/v1/orders", "/v1/orders/" + uuid.NewString(), "/v1/orders/live",
	"/v1/inventory", "/v1/inventory/stores", "/v1/inventory/live",
	"/v1/invoices", "/v1/invoices/export", "/v1/invoices/live",
	"/v1/dashboard", "/v1/dashboard/live", "/v1/reports", "/v1/realtime/orders",
}

func TestProtectedViewsRedirectToLogin(t *testing.T) {
	app := newTestApp(t)
	for _, path := range protectedGETs {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		req.Header.Set("Accept", "text/html")
		w := httptest.NewRecorder()
		app.r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusSeeOther, w.Code, path)
		assert.Equal(t, "/login", w.Header().Get("Location"), path)

		w = app.do(http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
	}
}

func TestHealth_WithoutRedis(t *testing.T) {
	app := newTestApp(t)
	w := app.do(http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"ok":true,"db":"connected","redis":"disabled"}`, w.Body.String())
}

func TestLogin_SetsCookieAndMe(t *testing.T) {
	app := newTestApp(t)
	app.user("jane@acme.test", "s3cret!", model.RoleClient)

	w := app.do(http.MethodPost, "/v1/auth/login", "", map[string]string{"email": "jane@acme.test", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = app.do(http.MethodPost, "/v1/auth/login", "", map[string]string{"email": "JANE@acme.test", "password": "s3cret!"})
	require.Equal(t, http.StatusOK, w.Code)
	var session *http.Cookie
	for _, ck := range w.Result().Cookies() {
		if ck.Name == "portal_session" {
			session = ck
		}
	}
	require.NotNil(t, session)
	assert.True(t, session.HttpOnly)

	req := httptest.NewRequest(http.MethodGet, "/v1/auth/me", nil)
	req.AddCookie(session)
	w = httptest.NewRecorder()
	app.r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	me := decode[dto.SessionUser](t, w)
	assert.Equal(t, "jane@acme.test", me.Email)
	assert.Equal(t, model.RoleClient, me.Role)
	assert.Nil(t, me.ProfileID)

	w = app.do(http.MethodPost, "/v1/auth/logout", "", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestCompanyCreationLinksProfile(t *testing.T) {
	app := newTestApp(t)
	app.user("jane@acme.test", "s3cret!", model.RoleClient)
	tok := app.login("jane@acme.test", "s3cret!")

	w := app.do(http.MethodGet, "/v1/company", tok, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = app.do(http.MethodPut, "/v1/company", tok, map[string]string{"name": "Acme"})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = app.do(http.MethodPut, "/v1/company", tok, map[string]string{"name": "Acme", "first_name": "Jane", "surname": "Doe"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	saved := decode[dto.SaveCompanyResponse](t, w)
	assert.True(t, saved.Created)

	w = app.do(http.MethodGet, "/v1/profile", tok, nil)
	require.Equal(t, http.StatusOK, w.Code)
	profile := decode[dto.ProfileResponse](t, w)
	assert.True(t, profile.Exists)
	require.NotNil(t, profile.CustomerID)
	assert.Equal(t, saved.Company.ID, *profile.CustomerID)

	w = app.do(http.MethodPut, "/v1/company", tok, map[string]string{"name": "Acme Pty", "first_name": "Jane", "surname": "Doe"})
	require.Equal(t, http.StatusOK, w.Code)
	updated := decode[dto.SaveCompanyResponse](t, w)
	assert.False(t, updated.Created)
	assert.Equal(t, saved.Company.ID, updated.Company.ID)
	assert.Equal(t, "Acme Pty", updated.Company.Name)
}

func TestOrders_ScopedSearchAndAdminStatus(t *testing.T) {
	app := newTestApp(t)
	app.user("ops@unboxx.test", "adminpass", model.RoleAdmin)
	app.user("jane@acme.test", "s3cret!", model.RoleClient)
	admin := app.login("ops@unboxx.test", "adminpass")
	client := app.login("jane@acme.test", "s3cret!")

	w := app.do(http.MethodGet, "/v1/orders", client, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decode[dto.OrderListResponse](t, w).Data, "no company, no orders")

	w = app.do(http.MethodPost, "/v1/orders", client, map[string]interface{}{
		"order_number": "ORD-1", "store": "Shopify US", "date": "2024-05-01", "qty": 1, "amount": "10", "status": "Pending",
	})
	assert.Equal(t, http.StatusConflict, w.Code)

	require.Equal(t, http.StatusCreated, app.do(http.MethodPut, "/v1/company", client,
		map[string]string{"name": "Acme", "first_name": "Jane", "surname": "Doe"}).Code)

	app.order("ORD-100", model.OrderTypeStore, "Acme", model.OrderProcessing, 1)
	app.order("ORD-101", model.OrderTypeStore, "Globex", model.OrderProcessing, 2)
	bulk := app.order("BLK-1", model.OrderTypeBulk, "Acme", model.OrderPending, 3)

	w = app.do(http.MethodGet, "/v1/orders?type=store", client, nil)
	require.Equal(t, http.StatusOK, w.Code)
	list := decode[dto.OrderListResponse](t, w)
	require.Len(t, list.Data, 1)
	assert.Equal(t, "ORD-100", list.Data[0].OrderNumber)

	w = app.do(http.MethodGet, "/v1/orders?search=ord-10", admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 2, decode[dto.OrderListResponse](t, w).Total)

	w = app.do(http.MethodGet, "/v1/orders?type=weird", admin, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = app.do(http.MethodPost, "/v1/orders", client, map[string]interface{}{
		"order_number": "ORD-200", "store": "Amazon", "date": "2024-05-04", "qty": 2, "amount": "20.50", "status": "Pending",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode[dto.OrderResponse](t, w)
	assert.Equal(t, "Acme", created.Customer)

	path := "/v1/orders/" + bulk.ID.String() + "/status"
	w = app.do(http.MethodPatch, path, client, map[string]string{"status": "Delivered"})
	assert.Equal(t, http.StatusForbidden, w.Code)
	w = app.do(http.MethodPatch, path, admin, map[string]string{"status": "Delivered"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, model.OrderDelivered, decode[dto.OrderResponse](t, w).Status)

	w = app.do(http.MethodGet, "/v1/dashboard", client, nil)
	require.Equal(t, http.StatusOK, w.Code)
	dash := decode[dto.DashboardResponse](t, w)
	assert.EqualValues(t, 2, dash.StoreOrders.Total)
	assert.True(t, dash.RevenueTotal.Equal(decimal.NewFromInt(100)), dash.RevenueTotal.String())

	w = app.do(http.MethodGet, "/v1/orders/"+bulk.ID.String()+"/pdf", client, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF-")))

	other := app.order("ORD-300", model.OrderTypeStore, "Globex", model.OrderPending, 5)
	w = app.do(http.MethodGet, "/v1/orders/"+other.ID.String(), client, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	w = app.do(http.MethodGet, "/v1/orders/not-a-uuid", client, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestInventory_ToggleTwiceCollapses(t *testing.T) {
	app := newTestApp(t)
	app.user("jane@acme.test", "s3cret!", model.RoleClient)
	tok := app.login("jane@acme.test", "s3cret!")

	p := &model.Product{SKU: "TS-1", Name: "Tee", Store: "Shopify US", Price: decimal.NewFromInt(20),
		Variants: []model.ProductVariant{{VariantSKU: "TS-1-S", Stock: 2, MinStock: 2}}}
	require.NoError(t, app.db.Create(p).Error)

	toggle := "/v1/inventory/" + p.ID.String() + "/toggle"
	w := app.do(http.MethodPost, toggle, tok, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, decode[dto.ToggleResponse](t, w).Expanded)
	w = app.do(http.MethodPost, toggle, tok, nil)
	assert.False(t, decode[dto.ToggleResponse](t, w).Expanded)

	w = app.do(http.MethodGet, "/v1/inventory?status=Low%20Stock", tok, nil)
	require.Equal(t, http.StatusOK, w.Code)
	list := decode[dto.InventoryListResponse](t, w)
	require.Len(t, list.Data, 1)
	assert.False(t, list.Data[0].Expanded)
	assert.Equal(t, model.StatusLowStock, list.Data[0].Status)

	w = app.do(http.MethodPost, "/v1/inventory/toggle-all", tok, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{p.ID.String()}, decode[dto.ToggleAllResponse](t, w).Expanded)

	w = app.do(http.MethodPatch, "/v1/inventory/variants/"+p.Variants[0].ID.String()+"/stock", tok, map[string]int{"stock": 9})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestInvoices_ExportCSV(t *testing.T) {
	app := newTestApp(t)
	app.user("ops@unboxx.test", "adminpass", model.RoleAdmin)
	tok := app.login("ops@unboxx.test", "adminpass")
	require.NoError(t, app.db.Create(&model.Invoice{
		Number: "INV-1", Company: "Acme", Description: "Storage", Amount: decimal.NewFromInt(50),
		InvoiceDate: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), DueDate: time.Date(2024, 5, 31, 0, 0, 0, 0, time.UTC),
		Status: model.InvoiceOutstanding,
	}).Error)

	w := app.do(http.MethodGet, "/v1/invoices/export?search=inv", tok, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "attachment")
	lines := strings.Split(strings.TrimSpace(w.Body.String()), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "Invoice Number,"))
	assert.Contains(t, lines[1], "INV-1")
}

func TestRealtime_UnknownTable(t *testing.T) {
	app := newTestApp(t)
	app.user("jane@acme.test", "s3cret!", model.RoleClient)
	tok := app.login("jane@acme.test", "s3cret!")
	assert.Equal(t, http.StatusNotFound, app.do(http.MethodGet, "/v1/realtime/auth_users", tok, nil).Code)
	assert.Equal(t, http.StatusBadRequest, app.do(http.MethodGet, "/v1/realtime/orders?event=TRUNCATE", tok, nil).Code)
}

// syncRecorder guards the body so the test can read it while the stream writes.
type syncRecorder struct {
	*httptest.ResponseRecorder
	mu sync.Mutex
}

func (r *syncRecorder) Write(b []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.ResponseRecorder.Write(b)
}

func (r *syncRecorder) WriteString(s string) (int, error) {
	return r.Write([]byte(s))
}

func (r *syncRecorder) body() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.ResponseRecorder.Body.String()
}

func TestOrdersLive_RefetchesOncePerChange(t *testing.T) {
	app := newTestApp(t)
	app.user("ops@unboxx.test", "adminpass", model.RoleAdmin)
	tok := app.login("ops@unboxx.test", "adminpass")
	app.order("ORD-1", model.OrderTypeStore, "Acme", model.OrderPending, 1)

	ctx, cancel := context.WithCancel(context.Background())
	req := httptest.NewRequest(http.MethodGet, "/v1/orders/live", nil).WithContext(ctx)
	req.Header.Set("Authorization", "Bearer "+tok)
	rec := &syncRecorder{ResponseRecorder: httptest.NewRecorder()}

	done := make(chan struct{})
	go func() {
		defer close(done)
		app.r.ServeHTTP(rec, req)
	}()

	require.Eventually(t, func() bool { return strings.Count(rec.body(), "event:snapshot") == 1 }, 2*time.Second, 10*time.Millisecond)
	assert.Equal(t, 1, app.hub.Subscribers("orders"))

	app.order("ORD-2", model.OrderTypeStore, "Acme", model.OrderPending, 2)
	app.hub.Publish(realtime.Event{Table: "orders", Op: realtime.OpInsert})
	require.Eventually(t, func() bool { return strings.Count(rec.body(), "event:snapshot") == 2 }, 2*time.Second, 10*time.Millisecond)
	assert.Contains(t, rec.body(), "ORD-2")

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("stream did not stop")
	}
	assert.Equal(t, 0, app.hub.Subscribers("orders"))
	assert.Equal(t, 2, strings.Count(rec.body(), "event:snapshot"))
}
