package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sinashm/go-shop/app/helpers"
	"github.com/sinashm/go-shop/app/models"
	"github.com/sinashm/go-shop/app/repositories"
	"github.com/sinashm/go-shop/app/services"
	"github.com/unrolled/render"
)

type OrderHandler struct {
	render      *render.Render
	checkoutSvc *services.CheckoutService
	orderRepo   repositories.OrderRepository
	productRepo repositories.ProductRepository
}

func NewOrderHandler(
	r *render.Render,
	checkoutSvc *services.CheckoutService,
	orderRepo repositories.OrderRepository,
	productRepo repositories.ProductRepository,
) *OrderHandler {
	return &OrderHandler{
		render:      r,
		checkoutSvc: checkoutSvc,
		orderRepo:   orderRepo,
		productRepo: productRepo,
	}
}

// CheckoutGet turns the user's cart into an order and sends them to the
// payment gateway.
func (h *OrderHandler) CheckoutGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := helpers.GetUserIDFromContext(ctx)

	email := ""
	if user := helpers.GetUserFromContext(ctx); user != nil {
		email = user.Email
	}

	result, err := h.checkoutSvc.CreateOrder(ctx, userID, email)
	if err != nil {
		if errors.Is(err, services.ErrEmptyCart) {
			helpers.RedirectWithMessage(w, r, "/carts", "error", "سبد خرید شما خالی است.")
			return
		}
		if errors.Is(err, services.ErrPaymentCreate) {
			// The gateway refused the session; surface its raw answer.
			http.Error(w, "Error creating payment: "+err.Error(), http.StatusBadGateway)
			return
		}
		log.Printf("CheckoutGet: checkout failed for user %s: %v", userID, err)
		helpers.RedirectWithMessage(w, r, "/carts", "error", "خطا در ایجاد سفارش.")
		return
	}

	http.Redirect(w, r, result.PaymentURL, http.StatusFound)
}

// VerifyPaymentGet is the gateway callback. Zarinpal sends the user back
// with Authority and Status query parameters.
func (h *OrderHandler) VerifyPaymentGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := helpers.GetUserIDFromContext(ctx)
	orderID := mux.Vars(r)["orderID"]

	authority := r.URL.Query().Get("Authority")
	status := r.URL.Query().Get("Status")

	outcome, err := h.checkoutSvc.VerifyPayment(ctx, orderID, userID, authority, status)
	if err != nil {
		if errors.Is(err, services.ErrOrderNotFound) {
			http.NotFound(w, r)
			return
		}
		log.Printf("VerifyPaymentGet: verification failed for order %s: %v", orderID, err)
		helpers.RedirectWithMessage(w, r, "/orders/"+orderID, "error", "خطا در بررسی وضعیت پرداخت.")
		return
	}

	detailURL := "/orders/" + outcome.Order.ID
	switch {
	case outcome.Cancelled:
		helpers.RedirectWithMessage(w, r, detailURL, "error", "تراکنش توسط کاربر لغو شد.")
	case outcome.Paid:
		helpers.RedirectWithMessage(w, r, detailURL, "success", fmt.Sprintf("پرداخت با موفقیت انجام شد. کد پیگیری: %d", outcome.RefID))
	default:
		helpers.RedirectWithMessage(w, r, detailURL, "error", fmt.Sprintf("پرداخت ناموفق بود. کد خطا: %d", outcome.Code))
	}
}

func (h *OrderHandler) OrderListGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := helpers.GetUserIDFromContext(ctx)

	orders, err := h.orderRepo.FindByUserID(ctx, userID)
	if err != nil {
		log.Printf("OrderListGet: failed to list orders for user %s: %v", userID, err)
		helpers.RedirectWithMessage(w, r, "/", "error", "خطا در بارگذاری سفارش‌ها.")
		return
	}

	data := helpers.GetBaseData(r, map[string]interface{}{
		"Title":  "سفارش‌های من",
		"Orders": orders,
	})
	_ = h.render.HTML(w, http.StatusOK, "order_list", data)
}

// OrderLine pairs an order item with its resolved product, when the generic
// reference points at the product table.
type OrderLine struct {
	Item    models.OrderItem
	Product *models.Product
}

func (h *OrderHandler) OrderDetailGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := helpers.GetUserIDFromContext(ctx)
	orderID := mux.Vars(r)["orderID"]

	order, err := h.orderRepo.FindByIDForUser(ctx, orderID, userID)
	if err != nil {
		log.Printf("OrderDetailGet: failed to load order %s: %v", orderID, err)
		helpers.RedirectWithMessage(w, r, "/orders", "error", "خطا در بارگذاری سفارش.")
		return
	}
	if order == nil {
		http.NotFound(w, r)
		return
	}

	lines := make([]OrderLine, 0, len(order.OrderItems))
	for _, item := range order.OrderItems {
		line := OrderLine{Item: item}
		if item.ProductType == models.ProductTypeProduct {
			product, err := h.productRepo.GetByID(ctx, item.ProductID)
			if err != nil {
				log.Printf("OrderDetailGet: failed to resolve product %s: %v", item.ProductID, err)
			} else {
				line.Product = product
			}
		}
		lines = append(lines, line)
	}

	data := helpers.GetBaseData(r, map[string]interface{}{
		"Title": "جزئیات سفارش " + order.FactorCode,
		"Order": order,
		"Lines": lines,
	})
	_ = h.render.HTML(w, http.StatusOK, "order_detail", data)
}

func (h *OrderHandler) OrderDeletePost(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := helpers.GetUserIDFromContext(ctx)
	orderID := mux.Vars(r)["orderID"]

	if err := h.checkoutSvc.DeleteOrder(ctx, orderID, userID); err != nil {
		if errors.Is(err, services.ErrOrderNotFound) {
			helpers.RedirectWithMessage(w, r, "/orders", "error", "سفارشی یافت نشد.")
			return
		}
		log.Printf("OrderDeletePost: failed to delete order %s: %v", orderID, err)
		helpers.RedirectWithMessage(w, r, "/orders", "error", "خطا در حذف سفارش.")
		return
	}

	helpers.RedirectWithMessage(w, r, "/orders", "success", "سفارش با موفقیت حذف شد.")
}

func (h *OrderHandler) RemoveOrderItemGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := helpers.GetUserIDFromContext(ctx)
	itemID := mux.Vars(r)["itemID"]

	orderID, orderDeleted, err := h.checkoutSvc.RemoveOrderItem(ctx, itemID, userID)
	if err != nil {
		if errors.Is(err, services.ErrOrderItemNotFound) {
			http.NotFound(w, r)
			return
		}
		log.Printf("RemoveOrderItemGet: failed to remove item %s: %v", itemID, err)
		helpers.RedirectWithMessage(w, r, "/orders", "error", "خطا در حذف محصول از سفارش.")
		return
	}

	if orderDeleted {
		helpers.RedirectWithMessage(w, r, "/orders", "info", "تمام محصولات این سفارش حذف شد. سفارش نیز حذف شد.")
		return
	}

	http.Redirect(w, r, "/orders/"+orderID, http.StatusSeeOther)
}
