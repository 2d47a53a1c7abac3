package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/shopspring/decimal"
	"github.com/sinashm/go-shop/app/models"
	"github.com/sinashm/go-shop/app/repositories"
)

var (
	ErrEmptyCart         = errors.New("cart is empty or not found")
	ErrOrderNotFound     = errors.New("order not found")
	ErrOrderItemNotFound = errors.New("order item not found")

	// ErrPaymentCreate wraps the raw gateway response when no redirect URL
	// came back.
	ErrPaymentCreate = errors.New("failed to create payment")
)

type CheckoutService struct {
	cartRepo      repositories.CartRepository
	productRepo   repositories.ProductRepository
	orderRepo     repositories.OrderRepository
	orderItemRepo repositories.OrderItemRepository
	gateway       PaymentGateway
	appURL        string
}

func NewCheckoutService(
	cartRepo repositories.CartRepository,
	productRepo repositories.ProductRepository,
	orderRepo repositories.OrderRepository,
	orderItemRepo repositories.OrderItemRepository,
	gateway PaymentGateway,
	appURL string,
) *CheckoutService {
	return &CheckoutService{
		cartRepo:      cartRepo,
		productRepo:   productRepo,
		orderRepo:     orderRepo,
		orderItemRepo: orderItemRepo,
		gateway:       gateway,
		appURL:        appURL,
	}
}

// CheckoutResult carries the created order and the gateway URL the user is
// redirected to.
type CheckoutResult struct {
	Order      *models.Order
	PaymentURL string
}

// CreateOrder snapshots the user's cart into a WAITING order, deletes the
// cart, and opens a payment session for the order total.
//
// The cart is gone as soon as its lines are copied; a gateway failure after
// that point leaves a WAITING order behind and no cart to retry from.
func (s *CheckoutService) CreateOrder(ctx context.Context, userID, email string) (*CheckoutResult, error) {
	cart, err := s.cartRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get cart: %w", err)
	}
	if cart == nil || len(cart.CartItems) == 0 {
		return nil, ErrEmptyCart
	}

	total := decimal.Zero
	orderItems := make([]models.OrderItem, 0, len(cart.CartItems))

	for _, cartItem := range cart.CartItems {
		product, err := s.productRepo.GetByID(ctx, cartItem.ProductID)
		if err != nil {
			return nil, fmt.Errorf("failed to get product %s: %w", cartItem.ProductID, err)
		}
		if product != nil {
			total = total.Add(product.OfferPrice.Mul(decimal.NewFromInt(int64(cartItem.Quantity))))
		}

		orderItems = append(orderItems, models.OrderItem{
			ProductType: cartItem.ProductType,
			ProductID:   cartItem.ProductID,
			Quantity:    cartItem.Quantity,
		})
	}

	order := &models.Order{
		UserID:      userID,
		PaidStatus:  models.PaidStatusWaiting,
		TotalAmount: total,
	}
	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	for i := range orderItems {
		orderItems[i].OrderID = order.ID
	}
	if err := s.orderItemRepo.BulkCreate(ctx, orderItems); err != nil {
		return nil, fmt.Errorf("failed to create order items: %w", err)
	}

	// The cart is consumed here regardless of how the payment request goes.
	if err := s.cartRepo.Delete(ctx, cart.ID); err != nil {
		return nil, fmt.Errorf("failed to delete cart: %w", err)
	}

	callbackURL := fmt.Sprintf("%s/orders/%s/verify", s.appURL, order.ID)
	result, err := s.gateway.Create(ctx, PaymentRequest{
		Amount:      order.TotalAmount.Round(0).IntPart(),
		Description: fmt.Sprintf("Order #%s", order.FactorCode),
		CallbackURL: callbackURL,
		Email:       email,
	})
	if err != nil {
		return nil, fmt.Errorf("payment gateway request failed: %w", err)
	}

	if result.URL == "" {
		log.Printf("CreateOrder: gateway refused payment for order %s: %s", order.FactorCode, result.Raw)
		return nil, fmt.Errorf("%w: %s", ErrPaymentCreate, result.Raw)
	}

	log.Printf("CreateOrder: order %s created, redirecting to gateway", order.FactorCode)
	return &CheckoutResult{Order: order, PaymentURL: result.URL}, nil
}

// VerifyOutcome describes how a payment callback ended.
type VerifyOutcome struct {
	Order     *models.Order
	Cancelled bool
	Paid      bool
	RefID     int64
	Code      int
}

// VerifyPayment settles the gateway callback for an order. A status flag
// other than "OK" means the user cancelled; the gateway is not consulted and
// nothing changes. Otherwise the stored amount and the authority token go to
// the gateway's verify operation, and a result code of exactly
// PaymentSuccessCode moves the order to PAID. Any other code leaves it
// WAITING.
func (s *CheckoutService) VerifyPayment(ctx context.Context, orderID, userID, authority, status string) (*VerifyOutcome, error) {
	order, err := s.orderRepo.FindByIDForUser(ctx, orderID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}

	if status != "OK" {
		log.Printf("VerifyPayment: order %s cancelled by user", order.FactorCode)
		return &VerifyOutcome{Order: order, Cancelled: true}, nil
	}

	result, err := s.gateway.Verify(ctx, order.TotalAmount.Round(0).IntPart(), authority)
	if err != nil {
		return nil, fmt.Errorf("payment verification request failed: %w", err)
	}

	if result.Code != PaymentSuccessCode {
		log.Printf("VerifyPayment: order %s verification failed with code %d", order.FactorCode, result.Code)
		return &VerifyOutcome{Order: order, Code: result.Code}, nil
	}

	if err := s.orderRepo.UpdatePaidStatus(ctx, order.ID, models.PaidStatusPaid); err != nil {
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}
	order.PaidStatus = models.PaidStatusPaid

	log.Printf("VerifyPayment: order %s paid, ref id %d", order.FactorCode, result.RefID)
	return &VerifyOutcome{Order: order, Paid: true, RefID: result.RefID, Code: result.Code}, nil
}

// RemoveOrderItem deletes one line from an order the user owns. Removing the
// last line removes the order as well; orderDeleted reports that.
func (s *CheckoutService) RemoveOrderItem(ctx context.Context, itemID, userID string) (orderID string, orderDeleted bool, err error) {
	item, err := s.orderItemRepo.FindByIDForUser(ctx, itemID, userID)
	if err != nil {
		return "", false, fmt.Errorf("failed to get order item: %w", err)
	}
	if item == nil {
		return "", false, ErrOrderItemNotFound
	}

	if err := s.orderItemRepo.Delete(ctx, item.ID); err != nil {
		return "", false, fmt.Errorf("failed to delete order item: %w", err)
	}

	remaining, err := s.orderItemRepo.CountByOrderID(ctx, item.OrderID)
	if err != nil {
		return "", false, fmt.Errorf("failed to count order items: %w", err)
	}

	if remaining == 0 {
		if err := s.orderRepo.Delete(ctx, item.OrderID); err != nil {
			return "", false, fmt.Errorf("failed to delete emptied order: %w", err)
		}
		return item.OrderID, true, nil
	}

	return item.OrderID, false, nil
}

// DeleteOrder removes an order the user owns together with its items.
func (s *CheckoutService) DeleteOrder(ctx context.Context, orderID, userID string) error {
	order, err := s.orderRepo.FindByIDForUser(ctx, orderID, userID)
	if err != nil {
		return fmt.Errorf("failed to get order: %w", err)
	}
	if order == nil {
		return ErrOrderNotFound
	}
	return s.orderRepo.Delete(ctx, order.ID)
}
