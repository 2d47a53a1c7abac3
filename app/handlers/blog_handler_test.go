package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/sinashm/go-shop/app/helpers"
	"github.com/sinashm/go-shop/app/models"
	"github.com/sinashm/go-shop/app/utils/renderer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The renderer resolves the `templates` directory relative to the working
// directory, so run this package's tests from the module root.
func TestMain(m *testing.M) {
	if err := os.Chdir("../.."); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

// =============================================================================
// Test Helpers
// =============================================================================

type stubBlogPostRepository struct {
	posts          map[string]*models.BlogPost // keyed by slug
	publishedCalls [][2]string                 // category slug, tag slug
}

func (s *stubBlogPostRepository) Create(ctx context.Context, post *models.BlogPost) error {
	s.posts[post.Slug] = post
	return nil
}

func (s *stubBlogPostRepository) FindPublished(ctx context.Context, categorySlug, tagSlug string) ([]models.BlogPost, error) {
	s.publishedCalls = append(s.publishedCalls, [2]string{categorySlug, tagSlug})
	var out []models.BlogPost
	for _, post := range s.posts {
		out = append(out, *post)
	}
	return out, nil
}

func (s *stubBlogPostRepository) FindPublishedBySlug(ctx context.Context, slug string) (*models.BlogPost, error) {
	return s.posts[slug], nil
}

type stubBlogCategoryRepository struct {
	categories map[string]*models.BlogCategory // keyed by slug
}

func (s *stubBlogCategoryRepository) FirstOrCreateByType(ctx context.Context, categoryType string) (*models.BlogCategory, error) {
	return &models.BlogCategory{ID: "cat-" + categoryType, Type: categoryType, Slug: categoryType}, nil
}

func (s *stubBlogCategoryRepository) FindBySlug(ctx context.Context, slug string) (*models.BlogCategory, error) {
	return s.categories[slug], nil
}

func (s *stubBlogCategoryRepository) FindAll(ctx context.Context) ([]models.BlogCategory, error) {
	var out []models.BlogCategory
	for _, category := range s.categories {
		out = append(out, *category)
	}
	return out, nil
}

type stubTagRepository struct {
	tags map[string]*models.Tag // keyed by slug
}

func (s *stubTagRepository) FirstOrCreateByName(ctx context.Context, name string) (*models.Tag, error) {
	return &models.Tag{ID: "tag-" + name, Name: name}, nil
}

func (s *stubTagRepository) FindBySlug(ctx context.Context, slug string) (*models.Tag, error) {
	return s.tags[slug], nil
}

func (s *stubTagRepository) FindAll(ctx context.Context) ([]models.Tag, error) {
	var out []models.Tag
	for _, tag := range s.tags {
		out = append(out, *tag)
	}
	return out, nil
}

type stubCommentRepository struct {
	created []*models.Comment
	counted []string
}

func (s *stubCommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	s.created = append(s.created, comment)
	return nil
}

func (s *stubCommentRepository) CountActiveByPost(ctx context.Context, blogPostID string) (int, error) {
	s.counted = append(s.counted, blogPostID)
	return 3, nil
}

type blogHandlerFixture struct {
	postRepo     *stubBlogPostRepository
	categoryRepo *stubBlogCategoryRepository
	tagRepo      *stubTagRepository
	commentRepo  *stubCommentRepository
	handler      *BlogHandler
}

func newBlogHandlerFixture() *blogHandlerFixture {
	postRepo := &stubBlogPostRepository{posts: make(map[string]*models.BlogPost)}
	categoryRepo := &stubBlogCategoryRepository{categories: make(map[string]*models.BlogCategory)}
	tagRepo := &stubTagRepository{tags: make(map[string]*models.Tag)}
	commentRepo := &stubCommentRepository{}

	return &blogHandlerFixture{
		postRepo:     postRepo,
		categoryRepo: categoryRepo,
		tagRepo:      tagRepo,
		commentRepo:  commentRepo,
		handler:      NewBlogHandler(renderer.New(), validator.New(), postRepo, categoryRepo, tagRepo, commentRepo),
	}
}

// =============================================================================
// BlogListGet
// =============================================================================

func TestBlogListGetPassesFilterSlugsThrough(t *testing.T) {
	f := newBlogHandlerFixture()
	f.categoryRepo.categories["tutorials"] = &models.BlogCategory{ID: "cat-1", Type: models.CategoryTypeTutorials, Slug: "tutorials"}
	f.tagRepo.tags["offers"] = &models.Tag{ID: "tag-1", Name: "تخفیف", Slug: "offers"}

	rec := httptest.NewRecorder()
	f.handler.BlogListGet(rec, httptest.NewRequest(http.MethodGet, "/blog?category=tutorials&tag=offers", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, [][2]string{{"tutorials", "offers"}}, f.postRepo.publishedCalls)
}

func TestBlogListGetUnknownCategoryRedirects(t *testing.T) {
	f := newBlogHandlerFixture()

	rec := httptest.NewRecorder()
	f.handler.BlogListGet(rec, httptest.NewRequest(http.MethodGet, "/blog?category=nope", nil))

	assertFlashRedirect(t, rec, "/blog", "error", "دسته‌بندی یافت نشد.")
	assert.Empty(t, f.postRepo.publishedCalls)
}

func TestBlogListGetUnknownTagRedirects(t *testing.T) {
	f := newBlogHandlerFixture()

	rec := httptest.NewRecorder()
	f.handler.BlogListGet(rec, httptest.NewRequest(http.MethodGet, "/blog?tag=nope", nil))

	assertFlashRedirect(t, rec, "/blog", "error", "برچسب یافت نشد.")
	assert.Empty(t, f.postRepo.publishedCalls)
}

// =============================================================================
// BlogDetailGet / CommentPost
// =============================================================================

func TestBlogDetailGetCountsApprovedComments(t *testing.T) {
	f := newBlogHandlerFixture()
	f.postRepo.posts["hello"] = &models.BlogPost{ID: "post-1", Title: "سلام", Slug: "hello", Published: true}

	r := httptest.NewRequest(http.MethodGet, "/blog/hello", nil)
	r = mux.SetURLVars(r, map[string]string{"slug": "hello"})

	rec := httptest.NewRecorder()
	f.handler.BlogDetailGet(rec, r)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"post-1"}, f.commentRepo.counted)
}

func TestBlogDetailGetUnknownSlug(t *testing.T) {
	f := newBlogHandlerFixture()

	r := httptest.NewRequest(http.MethodGet, "/blog/nope", nil)
	r = mux.SetURLVars(r, map[string]string{"slug": "nope"})

	rec := httptest.NewRecorder()
	f.handler.BlogDetailGet(rec, r)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Empty(t, f.commentRepo.counted)
}

func TestCommentPostCreatesForModeration(t *testing.T) {
	f := newBlogHandlerFixture()
	f.postRepo.posts["hello"] = &models.BlogPost{ID: "post-1", Title: "سلام", Slug: "hello", Published: true}

	form := url.Values{"content": {"دیدگاه من"}}
	r := httptest.NewRequest(http.MethodPost, "/blog/hello/comments", strings.NewReader(form.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	r = r.WithContext(context.WithValue(r.Context(), helpers.ContextKeyUserID, "user-1"))
	r = mux.SetURLVars(r, map[string]string{"slug": "hello"})

	rec := httptest.NewRecorder()
	f.handler.CommentPost(rec, r)

	assertFlashRedirect(t, rec, "/blog/hello", "success", "دیدگاه شما ثبت شد و پس از تایید نمایش داده می‌شود.")
	require.Len(t, f.commentRepo.created, 1)
	comment := f.commentRepo.created[0]
	assert.Equal(t, "post-1", comment.BlogPostID)
	assert.Equal(t, "user-1", comment.UserID)
	assert.Equal(t, "دیدگاه من", comment.Content)
	assert.False(t, comment.Active)
}
