package database

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/truest-construction/site-backend/models"
	"gorm.io/gorm"
)

type BlogPostRepo struct {
	db *gorm.DB
}

func NewBlogPostRepo(db *gorm.DB) *BlogPostRepo {
	return &BlogPostRepo{db}
}

// FindAll returns every blog post, newest date first
func (r *BlogPostRepo) FindAll(ctx context.Context) ([]*models.BlogPost, error) {
	var blogPosts []*models.BlogPost
	err := r.db.WithContext(ctx).Order("date DESC").Order("created_at DESC").Find(&blogPosts).Error
	return blogPosts, err
}

// FindPublished returns published blog posts, newest date first
func (r *BlogPostRepo) FindPublished(ctx context.Context) ([]*models.BlogPost, error) {
	var blogPosts []*models.BlogPost
	err := r.db.WithContext(ctx).
		Where("published = ?", true).
		Order("date DESC").Order("created_at DESC").
		Find(&blogPosts).Error
	return blogPosts, err
}

// FindByID returns a blog post by its ID, or nil if there is none
func (r *BlogPostRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.BlogPost, error) {
	return r.findOne(ctx, "id = ?", id)
}

// FindBySlug returns a blog post by its slug, or nil if there is none
func (r *BlogPostRepo) FindBySlug(ctx context.Context, slug string) (*models.BlogPost, error) {
	return r.findOne(ctx, "slug = ?", slug)
}

func (r *BlogPostRepo) findOne(ctx context.Context, query string, arg any) (*models.BlogPost, error) {
	var blogPost models.BlogPost
	err := r.db.WithContext(ctx).Where(query, arg).First(&blogPost).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &blogPost, nil
}

// Add inserts a new blog post into the database
func (r *BlogPostRepo) Add(ctx context.Context, blogPost *models.BlogPost) error {
	return r.db.WithContext(ctx).Create(blogPost).Error
}

// Update writes every field of an existing blog post
func (r *BlogPostRepo) Update(ctx context.Context, blogPost *models.BlogPost) error {
	return r.db.WithContext(ctx).Save(blogPost).Error
}

// SetPublished flips the publish flag and returns the updated post, or nil if there is none
func (r *BlogPostRepo) SetPublished(ctx context.Context, id uuid.UUID, published bool) (*models.BlogPost, error) {
	result := r.db.WithContext(ctx).Model(&models.BlogPost{}).Where("id = ?", id).Update("published", published)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, nil
	}
	return r.FindByID(ctx, id)
}

// Delete removes a blog post by id and reports whether a row was removed
func (r *BlogPostRepo) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.BlogPost{})
	return result.RowsAffected > 0, result.Error
}
