package handlers

import (
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"github.com/sinashm/go-shop/app/helpers"
	"github.com/sinashm/go-shop/app/models"
	"github.com/sinashm/go-shop/app/repositories"
	"github.com/unrolled/render"
)

type CartHandler struct {
	render      *render.Render
	cartRepo    repositories.CartRepository
	productRepo repositories.ProductRepository
}

func NewCartHandler(r *render.Render, cartRepo repositories.CartRepository, productRepo repositories.ProductRepository) *CartHandler {
	return &CartHandler{
		render:      r,
		cartRepo:    cartRepo,
		productRepo: productRepo,
	}
}

// CartLine pairs a cart item with its resolved product for the template.
type CartLine struct {
	Item     models.CartItem
	Product  *models.Product
	Subtotal decimal.Decimal
}

func (h *CartHandler) CartGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := helpers.GetUserIDFromContext(ctx)

	cart, err := h.cartRepo.GetByUserID(ctx, userID)
	if err != nil {
		log.Printf("CartGet: failed to load cart for user %s: %v", userID, err)
		helpers.RedirectWithMessage(w, r, "/", "error", "خطا در بارگذاری سبد خرید.")
		return
	}

	lines := []CartLine{}
	total := decimal.Zero
	if cart != nil {
		for _, item := range cart.CartItems {
			product, err := h.productRepo.GetByID(ctx, item.ProductID)
			if err != nil {
				log.Printf("CartGet: failed to load product %s: %v", item.ProductID, err)
				continue
			}

			line := CartLine{Item: item, Product: product}
			if product != nil {
				line.Subtotal = product.OfferPrice.Mul(decimal.NewFromInt(int64(item.Quantity)))
				total = total.Add(line.Subtotal)
			}
			lines = append(lines, line)
		}
	}

	data := helpers.GetBaseData(r, map[string]interface{}{
		"Title": "سبد خرید",
		"Cart":  cart,
		"Lines": lines,
		"Total": total,
	})
	_ = h.render.HTML(w, http.StatusOK, "cart", data)
}

func (h *CartHandler) CartAddPost(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := helpers.GetUserIDFromContext(ctx)

	if err := r.ParseForm(); err != nil {
		helpers.RedirectWithMessage(w, r, "/carts", "error", "خطا در پردازش فرم.")
		return
	}

	productID := r.PostFormValue("product_id")
	product, err := h.productRepo.GetByID(ctx, productID)
	if err != nil || product == nil {
		helpers.RedirectWithMessage(w, r, "/", "error", "محصول یافت نشد.")
		return
	}

	cart, err := h.cartRepo.FirstOrCreateByUserID(ctx, userID)
	if err != nil {
		log.Printf("CartAddPost: failed to get cart for user %s: %v", userID, err)
		helpers.RedirectWithMessage(w, r, "/", "error", "خطا در ایجاد سبد خرید.")
		return
	}

	if err := h.cartRepo.AddItem(ctx, cart.ID, models.ProductTypeProduct, product.ID, 1); err != nil {
		log.Printf("CartAddPost: failed to add product %s to cart %s: %v", product.ID, cart.ID, err)
		helpers.RedirectWithMessage(w, r, "/carts", "error", "خطا در افزودن محصول به سبد خرید.")
		return
	}

	helpers.RedirectWithMessage(w, r, "/carts", "success", "محصول به سبد خرید اضافه شد.")
}

func (h *CartHandler) CartRemoveItemPost(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := helpers.GetUserIDFromContext(ctx)
	itemID := mux.Vars(r)["itemID"]

	cart, err := h.cartRepo.GetByUserID(ctx, userID)
	if err != nil || cart == nil {
		helpers.RedirectWithMessage(w, r, "/carts", "error", "سبد خرید یافت نشد.")
		return
	}

	if err := h.cartRepo.RemoveItem(ctx, cart.ID, itemID); err != nil {
		log.Printf("CartRemoveItemPost: failed to remove item %s from cart %s: %v", itemID, cart.ID, err)
		helpers.RedirectWithMessage(w, r, "/carts", "error", "خطا در حذف محصول از سبد خرید.")
		return
	}

	helpers.RedirectWithMessage(w, r, "/carts", "success", "محصول از سبد خرید حذف شد.")
}
