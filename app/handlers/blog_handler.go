package handlers

import (
	"fmt"
	"log"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/sinashm/go-shop/app/helpers"
	"github.com/sinashm/go-shop/app/models"
	"github.com/sinashm/go-shop/app/repositories"
	"github.com/unrolled/render"
)

type BlogHandler struct {
	render       *render.Render
	validator    *validator.Validate
	postRepo     repositories.BlogPostRepository
	categoryRepo repositories.BlogCategoryRepository
	tagRepo      repositories.TagRepository
	commentRepo  repositories.CommentRepository
}

func NewBlogHandler(
	r *render.Render,
	validator *validator.Validate,
	postRepo repositories.BlogPostRepository,
	categoryRepo repositories.BlogCategoryRepository,
	tagRepo repositories.TagRepository,
	commentRepo repositories.CommentRepository,
) *BlogHandler {
	return &BlogHandler{
		render:       r,
		validator:    validator,
		postRepo:     postRepo,
		categoryRepo: categoryRepo,
		tagRepo:      tagRepo,
		commentRepo:  commentRepo,
	}
}

type CommentForm struct {
	Content string `form:"content" validate:"required,min=3,max=2000"`
}

func (h *BlogHandler) BlogListGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	categorySlug := r.URL.Query().Get("category")
	tagSlug := r.URL.Query().Get("tag")

	// Filter slugs come from the query string; resolve them before querying
	// so a bogus slug gets a flash instead of a silently empty listing.
	var activeCategory *models.BlogCategory
	if categorySlug != "" {
		category, err := h.categoryRepo.FindBySlug(ctx, categorySlug)
		if err != nil {
			log.Printf("BlogListGet: failed to resolve category %s: %v", categorySlug, err)
			helpers.RedirectWithMessage(w, r, "/blog", "error", "خطا در بارگذاری مقالات.")
			return
		}
		if category == nil {
			helpers.RedirectWithMessage(w, r, "/blog", "error", "دسته‌بندی یافت نشد.")
			return
		}
		activeCategory = category
	}

	var activeTag *models.Tag
	if tagSlug != "" {
		tag, err := h.tagRepo.FindBySlug(ctx, tagSlug)
		if err != nil {
			log.Printf("BlogListGet: failed to resolve tag %s: %v", tagSlug, err)
			helpers.RedirectWithMessage(w, r, "/blog", "error", "خطا در بارگذاری مقالات.")
			return
		}
		if tag == nil {
			helpers.RedirectWithMessage(w, r, "/blog", "error", "برچسب یافت نشد.")
			return
		}
		activeTag = tag
	}

	posts, err := h.postRepo.FindPublished(ctx, categorySlug, tagSlug)
	if err != nil {
		log.Printf("BlogListGet: failed to list posts: %v", err)
		helpers.RedirectWithMessage(w, r, "/", "error", "خطا در بارگذاری مقالات.")
		return
	}

	categories, err := h.categoryRepo.FindAll(ctx)
	if err != nil {
		log.Printf("BlogListGet: failed to list categories: %v", err)
	}

	tags, err := h.tagRepo.FindAll(ctx)
	if err != nil {
		log.Printf("BlogListGet: failed to list tags: %v", err)
	}

	data := helpers.GetBaseData(r, map[string]interface{}{
		"Title":          "وبلاگ",
		"Posts":          posts,
		"Categories":     categories,
		"Tags":           tags,
		"ActiveCategory": activeCategory,
		"ActiveTag":      activeTag,
	})
	_ = h.render.HTML(w, http.StatusOK, "blog_list", data)
}

func (h *BlogHandler) BlogDetailGet(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["slug"]

	post, err := h.postRepo.FindPublishedBySlug(r.Context(), slug)
	if err != nil {
		log.Printf("BlogDetailGet: failed to load post %s: %v", slug, err)
		helpers.RedirectWithMessage(w, r, "/blog", "error", "خطا در بارگذاری مقاله.")
		return
	}
	if post == nil {
		http.NotFound(w, r)
		return
	}

	commentCount, err := h.commentRepo.CountActiveByPost(r.Context(), post.ID)
	if err != nil {
		log.Printf("BlogDetailGet: failed to count comments for %s: %v", slug, err)
	}

	data := helpers.GetBaseData(r, map[string]interface{}{
		"Title":        post.Title,
		"Post":         post,
		"CommentCount": commentCount,
	})
	_ = h.render.HTML(w, http.StatusOK, "blog_detail", data)
}

// CommentPost stores a visitor's comment. It goes in inactive and stays off
// the page until a moderator approves it.
func (h *BlogHandler) CommentPost(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["slug"]
	userID := helpers.GetUserIDFromContext(r.Context())

	post, err := h.postRepo.FindPublishedBySlug(r.Context(), slug)
	if err != nil || post == nil {
		http.NotFound(w, r)
		return
	}

	if err := r.ParseForm(); err != nil {
		helpers.RedirectWithMessage(w, r, "/blog/"+slug, "error", "خطا در پردازش فرم.")
		return
	}

	form := CommentForm{Content: r.PostFormValue("content")}
	if err := h.validator.Struct(form); err != nil {
		helpers.RedirectWithMessage(w, r, "/blog/"+slug, "error", "متن دیدگاه باید بین ۳ تا ۲۰۰۰ کاراکتر باشد.")
		return
	}

	comment := &models.Comment{
		BlogPostID: post.ID,
		UserID:     userID,
		Content:    form.Content,
	}
	if err := h.commentRepo.Create(r.Context(), comment); err != nil {
		log.Printf("CommentPost: failed to create comment on %s: %v", slug, err)
		helpers.RedirectWithMessage(w, r, "/blog/"+slug, "error", "خطا در ثبت دیدگاه.")
		return
	}

	helpers.RedirectWithMessage(w, r, fmt.Sprintf("/blog/%s", slug), "success", "دیدگاه شما ثبت شد و پس از تایید نمایش داده می‌شود.")
}
