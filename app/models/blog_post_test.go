package models

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBlogPostBeforeSaveDerivesEmptyFields(t *testing.T) {
	post := &BlogPost{
		Title:   "My First Post",
		Content: "<p>" + strings.Repeat("word ", 450) + "</p>",
	}
	require.NoError(t, post.BeforeSave(nil))

	assert.NotEmpty(t, post.ID)
	assert.Equal(t, "my-first-post", post.Slug)
	assert.Equal(t, "My First Post", post.MetaTitle)
	assert.NotEmpty(t, post.Excerpt)
	assert.NotContains(t, post.Excerpt, "<p>")
	assert.Equal(t, 2, post.ReadingTime)
}

func TestBlogPostBeforeSaveKeepsExplicitFields(t *testing.T) {
	post := &BlogPost{
		Title:     "My First Post",
		Slug:      "custom-slug",
		MetaTitle: "Custom meta",
		Excerpt:   "Custom excerpt",
		Content:   "three little words",
	}
	require.NoError(t, post.BeforeSave(nil))

	assert.Equal(t, "custom-slug", post.Slug)
	assert.Equal(t, "Custom meta", post.MetaTitle)
	assert.Equal(t, "Custom excerpt", post.Excerpt)

	// Reading time is the one derivation that follows the content on every
	// save.
	assert.Equal(t, 1, post.ReadingTime)
}

func TestCommentBeforeSaveSanitizesContent(t *testing.T) {
	comment := &Comment{
		BlogPostID: "post-1",
		UserID:     "user-1",
		Content:    `<a href="http://evil">nice</a> <script>alert(1)</script>post`,
	}
	require.NoError(t, comment.BeforeSave(nil))

	assert.NotContains(t, comment.Content, "<")
	assert.Contains(t, comment.Content, "nice")
	assert.False(t, comment.Active)
}

func TestCategoryAndTagSlugDerivation(t *testing.T) {
	category := &BlogCategory{Type: CategoryTypeProductVideos}
	require.NoError(t, category.BeforeSave(nil))
	assert.Equal(t, "product-videos", category.Slug)
	assert.Equal(t, "معرفی محصولات", category.Label())

	tag := &Tag{Name: "New Arrivals"}
	require.NoError(t, tag.BeforeSave(nil))
	assert.Equal(t, "new-arrivals", tag.Slug)
}

func TestNewFactorCode(t *testing.T) {
	code := NewFactorCode()
	assert.True(t, strings.HasPrefix(code, "INV-"))
	assert.NotEqual(t, code, NewFactorCode())
}

func TestOrderIsPaid(t *testing.T) {
	order := &Order{PaidStatus: PaidStatusWaiting}
	assert.False(t, order.IsPaid())
	order.PaidStatus = PaidStatusPaid
	assert.True(t, order.IsPaid())
}
