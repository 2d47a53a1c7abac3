package handlers

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"github.com/sinashm/go-shop/app/helpers"
	"github.com/sinashm/go-shop/app/models"
	"github.com/sinashm/go-shop/app/services"
	"github.com/sinashm/go-shop/app/utils/renderer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// Test Helpers
// =============================================================================

type stubCartRepository struct {
	carts map[string]*models.Cart // keyed by user id
}

func (s *stubCartRepository) GetByUserID(ctx context.Context, userID string) (*models.Cart, error) {
	return s.carts[userID], nil
}

func (s *stubCartRepository) FirstOrCreateByUserID(ctx context.Context, userID string) (*models.Cart, error) {
	if cart, ok := s.carts[userID]; ok {
		return cart, nil
	}
	cart := &models.Cart{ID: "cart-" + userID, UserID: userID}
	s.carts[userID] = cart
	return cart, nil
}

func (s *stubCartRepository) AddItem(ctx context.Context, cartID, productType, productID string, quantity int) error {
	return nil
}

func (s *stubCartRepository) RemoveItem(ctx context.Context, cartID, itemID string) error {
	return nil
}

func (s *stubCartRepository) Delete(ctx context.Context, cartID string) error {
	for userID, cart := range s.carts {
		if cart.ID == cartID {
			delete(s.carts, userID)
		}
	}
	return nil
}

func (s *stubCartRepository) GetItemCount(ctx context.Context, userID string) (int, error) {
	cart := s.carts[userID]
	if cart == nil {
		return 0, nil
	}
	return len(cart.CartItems), nil
}

type stubProductRepository struct {
	products map[string]*models.Product
}

func (s *stubProductRepository) Create(ctx context.Context, product *models.Product) error {
	s.products[product.ID] = product
	return nil
}

func (s *stubProductRepository) GetByID(ctx context.Context, id string) (*models.Product, error) {
	return s.products[id], nil
}

func (s *stubProductRepository) GetBySlug(ctx context.Context, slug string) (*models.Product, error) {
	for _, p := range s.products {
		if p.Slug == slug {
			return p, nil
		}
	}
	return nil, nil
}

func (s *stubProductRepository) GetAll(ctx context.Context) ([]models.Product, error) {
	var all []models.Product
	for _, p := range s.products {
		all = append(all, *p)
	}
	return all, nil
}

type stubOrderRepository struct {
	orders map[string]*models.Order
	seq    int
}

func (s *stubOrderRepository) Create(ctx context.Context, order *models.Order) error {
	s.seq++
	if order.ID == "" {
		order.ID = fmt.Sprintf("order-%d", s.seq)
	}
	if order.FactorCode == "" {
		order.FactorCode = models.NewFactorCode()
	}
	s.orders[order.ID] = order
	return nil
}

func (s *stubOrderRepository) FindByIDForUser(ctx context.Context, orderID, userID string) (*models.Order, error) {
	order, ok := s.orders[orderID]
	if !ok || order.UserID != userID {
		return nil, nil
	}
	copied := *order
	return &copied, nil
}

func (s *stubOrderRepository) FindByUserID(ctx context.Context, userID string) ([]models.Order, error) {
	var out []models.Order
	for _, order := range s.orders {
		if order.UserID == userID {
			out = append(out, *order)
		}
	}
	return out, nil
}

func (s *stubOrderRepository) UpdatePaidStatus(ctx context.Context, orderID, paidStatus string) error {
	if order, ok := s.orders[orderID]; ok {
		order.PaidStatus = paidStatus
	}
	return nil
}

func (s *stubOrderRepository) Delete(ctx context.Context, orderID string) error {
	delete(s.orders, orderID)
	return nil
}

type stubOrderItemRepository struct {
	items map[string]*models.OrderItem
	seq   int
}

func (s *stubOrderItemRepository) BulkCreate(ctx context.Context, items []models.OrderItem) error {
	for i := range items {
		s.seq++
		if items[i].ID == "" {
			items[i].ID = fmt.Sprintf("item-%d", s.seq)
		}
		copied := items[i]
		s.items[copied.ID] = &copied
	}
	return nil
}

func (s *stubOrderItemRepository) FindByIDForUser(ctx context.Context, itemID, userID string) (*models.OrderItem, error) {
	item, ok := s.items[itemID]
	if !ok {
		return nil, nil
	}
	copied := *item
	return &copied, nil
}

func (s *stubOrderItemRepository) Delete(ctx context.Context, itemID string) error {
	delete(s.items, itemID)
	return nil
}

func (s *stubOrderItemRepository) CountByOrderID(ctx context.Context, orderID string) (int, error) {
	count := 0
	for _, item := range s.items {
		if item.OrderID == orderID {
			count++
		}
	}
	return count, nil
}

type stubGateway struct {
	createResult *services.PaymentCreateResult

	verifyResult      *services.PaymentVerifyResult
	verifyCalls       int
	verifyAuthorities []string
}

func (s *stubGateway) Create(ctx context.Context, req services.PaymentRequest) (*services.PaymentCreateResult, error) {
	return s.createResult, nil
}

func (s *stubGateway) Verify(ctx context.Context, amount int64, authority string) (*services.PaymentVerifyResult, error) {
	s.verifyCalls++
	s.verifyAuthorities = append(s.verifyAuthorities, authority)
	return s.verifyResult, nil
}

type orderHandlerFixture struct {
	cartRepo    *stubCartRepository
	productRepo *stubProductRepository
	orderRepo   *stubOrderRepository
	gateway     *stubGateway
	handler     *OrderHandler
}

func newOrderHandlerFixture() *orderHandlerFixture {
	cartRepo := &stubCartRepository{carts: make(map[string]*models.Cart)}
	productRepo := &stubProductRepository{products: make(map[string]*models.Product)}
	orderRepo := &stubOrderRepository{orders: make(map[string]*models.Order)}
	orderItemRepo := &stubOrderItemRepository{items: make(map[string]*models.OrderItem)}
	gateway := &stubGateway{
		createResult: &services.PaymentCreateResult{Code: 100, Authority: "A0001", URL: "https://gateway.example/pay/A0001"},
		verifyResult: &services.PaymentVerifyResult{Code: 100, RefID: 42},
	}

	svc := services.NewCheckoutService(cartRepo, productRepo, orderRepo, orderItemRepo, gateway, "http://localhost:8080")

	return &orderHandlerFixture{
		cartRepo:    cartRepo,
		productRepo: productRepo,
		orderRepo:   orderRepo,
		gateway:     gateway,
		handler:     NewOrderHandler(renderer.New(), svc, orderRepo, productRepo),
	}
}

func (f *orderHandlerFixture) seedWaitingOrder(orderID, userID string, amount int64) {
	f.orderRepo.orders[orderID] = &models.Order{
		ID:          orderID,
		UserID:      userID,
		FactorCode:  "INV-20260830-test0001",
		PaidStatus:  models.PaidStatusWaiting,
		TotalAmount: decimal.NewFromInt(amount),
	}
}

func authedGet(target, userID string, vars map[string]string) *http.Request {
	r := httptest.NewRequest(http.MethodGet, target, nil)
	r = r.WithContext(context.WithValue(r.Context(), helpers.ContextKeyUserID, userID))
	if vars != nil {
		r = mux.SetURLVars(r, vars)
	}
	return r
}

func assertFlashRedirect(t *testing.T, rec *httptest.ResponseRecorder, wantPath, wantStatus, wantMessage string) {
	t.Helper()
	require.Equal(t, http.StatusSeeOther, rec.Code)
	loc, err := url.Parse(rec.Header().Get("Location"))
	require.NoError(t, err)
	assert.Equal(t, wantPath, loc.Path)
	assert.Equal(t, wantStatus, loc.Query().Get("status"))
	assert.Equal(t, wantMessage, loc.Query().Get("message"))
}

// =============================================================================
// CheckoutGet
// =============================================================================

func TestCheckoutGetEmptyCartRedirects(t *testing.T) {
	f := newOrderHandlerFixture()

	rec := httptest.NewRecorder()
	f.handler.CheckoutGet(rec, authedGet("/checkout", "user-1", nil))

	assertFlashRedirect(t, rec, "/carts", "error", "سبد خرید شما خالی است.")
	assert.Empty(t, f.orderRepo.orders)
}

func TestCheckoutGetRedirectsToGateway(t *testing.T) {
	f := newOrderHandlerFixture()
	f.productRepo.products["prod-a"] = &models.Product{ID: "prod-a", Name: "product a", OfferPrice: decimal.NewFromInt(100)}
	f.cartRepo.carts["user-1"] = &models.Cart{
		ID:     "cart-user-1",
		UserID: "user-1",
		CartItems: []models.CartItem{
			{ID: "ci-1", CartID: "cart-user-1", ProductType: "product", ProductID: "prod-a", Quantity: 2},
		},
	}

	rec := httptest.NewRecorder()
	f.handler.CheckoutGet(rec, authedGet("/checkout", "user-1", nil))

	require.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "https://gateway.example/pay/A0001", rec.Header().Get("Location"))
	assert.Nil(t, f.cartRepo.carts["user-1"])
}

// =============================================================================
// VerifyPaymentGet
// =============================================================================

func TestVerifyPaymentGetCancelledFlash(t *testing.T) {
	f := newOrderHandlerFixture()
	f.seedWaitingOrder("order-1", "user-1", 250)

	rec := httptest.NewRecorder()
	f.handler.VerifyPaymentGet(rec, authedGet(
		"/orders/order-1/verify?Authority=A0001&Status=NOK",
		"user-1",
		map[string]string{"orderID": "order-1"},
	))

	assertFlashRedirect(t, rec, "/orders/order-1", "error", "تراکنش توسط کاربر لغو شد.")
	assert.Equal(t, 0, f.gateway.verifyCalls)
	assert.Equal(t, models.PaidStatusWaiting, f.orderRepo.orders["order-1"].PaidStatus)
}

func TestVerifyPaymentGetPaidFlash(t *testing.T) {
	f := newOrderHandlerFixture()
	f.seedWaitingOrder("order-1", "user-1", 250)

	rec := httptest.NewRecorder()
	f.handler.VerifyPaymentGet(rec, authedGet(
		"/orders/order-1/verify?Authority=A0001&Status=OK",
		"user-1",
		map[string]string{"orderID": "order-1"},
	))

	assertFlashRedirect(t, rec, "/orders/order-1", "success", "پرداخت با موفقیت انجام شد. کد پیگیری: 42")
	// The Authority query parameter reaches the gateway verbatim.
	assert.Equal(t, []string{"A0001"}, f.gateway.verifyAuthorities)
	assert.Equal(t, models.PaidStatusPaid, f.orderRepo.orders["order-1"].PaidStatus)
}

func TestVerifyPaymentGetFailureCodeFlash(t *testing.T) {
	f := newOrderHandlerFixture()
	f.gateway.verifyResult = &services.PaymentVerifyResult{Code: -51}
	f.seedWaitingOrder("order-1", "user-1", 250)

	rec := httptest.NewRecorder()
	f.handler.VerifyPaymentGet(rec, authedGet(
		"/orders/order-1/verify?Authority=A0001&Status=OK",
		"user-1",
		map[string]string{"orderID": "order-1"},
	))

	assertFlashRedirect(t, rec, "/orders/order-1", "error", "پرداخت ناموفق بود. کد خطا: -51")
	assert.Equal(t, models.PaidStatusWaiting, f.orderRepo.orders["order-1"].PaidStatus)
}

func TestVerifyPaymentGetUnknownOrder(t *testing.T) {
	f := newOrderHandlerFixture()

	rec := httptest.NewRecorder()
	f.handler.VerifyPaymentGet(rec, authedGet(
		"/orders/order-404/verify?Authority=A0001&Status=OK",
		"user-1",
		map[string]string{"orderID": "order-404"},
	))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, 0, f.gateway.verifyCalls)
}
