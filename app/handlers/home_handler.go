package handlers

import (
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sinashm/go-shop/app/helpers"
	"github.com/sinashm/go-shop/app/repositories"
	"github.com/unrolled/render"
)

type HomeHandler struct {
	render      *render.Render
	productRepo repositories.ProductRepository
	postRepo    repositories.BlogPostRepository
}

func NewHomeHandler(r *render.Render, productRepo repositories.ProductRepository, postRepo repositories.BlogPostRepository) *HomeHandler {
	return &HomeHandler{
		render:      r,
		productRepo: productRepo,
		postRepo:    postRepo,
	}
}

func (h *HomeHandler) HomeGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	products, err := h.productRepo.GetAll(ctx)
	if err != nil {
		log.Printf("HomeGet: failed to list products: %v", err)
	}

	posts, err := h.postRepo.FindPublished(ctx, "", "")
	if err != nil {
		log.Printf("HomeGet: failed to list posts: %v", err)
	}
	if len(posts) > 3 {
		posts = posts[:3]
	}

	data := helpers.GetBaseData(r, map[string]interface{}{
		"Title":    "فروشگاه",
		"Products": products,
		"Posts":    posts,
	})
	_ = h.render.HTML(w, http.StatusOK, "home", data)
}

func (h *HomeHandler) ProductDetailGet(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["slug"]

	product, err := h.productRepo.GetBySlug(r.Context(), slug)
	if err != nil {
		log.Printf("ProductDetailGet: failed to load product %s: %v", slug, err)
		helpers.RedirectWithMessage(w, r, "/", "error", "خطا در بارگذاری محصول.")
		return
	}
	if product == nil {
		http.NotFound(w, r)
		return
	}

	data := helpers.GetBaseData(r, map[string]interface{}{
		"Title":   product.Name,
		"Product": product,
	})
	_ = h.render.HTML(w, http.StatusOK, "product_detail", data)
}
