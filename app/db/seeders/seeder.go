package seeders

import (
	"context"

	"github.com/sinashm/go-shop/app/db/fakers"
	"github.com/sinashm/go-shop/app/models"
	"github.com/sinashm/go-shop/app/repositories"
	"gorm.io/gorm"
)

var categoryTypes = []string{
	models.CategoryTypeTutorials,
	models.CategoryTypeNews,
	models.CategoryTypeWorkshop,
	models.CategoryTypeProductVideos,
}

var tagNames = []string{"آموزش", "محصول جدید", "تخفیف", "رویداد"}

// DBSeed fills an empty database with sample content through the same
// repositories the app uses, so every model hook runs.
func DBSeed(db *gorm.DB) error {
	ctx := context.Background()

	productRepo := repositories.NewProductRepository(db)
	categoryRepo := repositories.NewBlogCategoryRepository(db)
	tagRepo := repositories.NewTagRepository(db)
	postRepo := repositories.NewBlogPostRepository(db)

	user := fakers.UserFaker()
	if err := db.FirstOrCreate(user, models.User{Email: user.Email}).Error; err != nil {
		return err
	}

	for i := 0; i < 10; i++ {
		if err := productRepo.Create(ctx, fakers.ProductFaker()); err != nil {
			return err
		}
	}

	var categories []models.BlogCategory
	for _, categoryType := range categoryTypes {
		category, err := categoryRepo.FirstOrCreateByType(ctx, categoryType)
		if err != nil {
			return err
		}
		categories = append(categories, *category)
	}

	var tags []models.Tag
	for _, name := range tagNames {
		tag, err := tagRepo.FirstOrCreateByName(ctx, name)
		if err != nil {
			return err
		}
		tags = append(tags, *tag)
	}

	for i := 0; i < 8; i++ {
		category := categories[i%len(categories)]
		post := fakers.BlogPostFaker(&category, tags[:1+i%len(tags)])
		if err := postRepo.Create(ctx, post); err != nil {
			return err
		}
	}

	return nil
}
