package services

import (
	"context"
	"time"

	"go_trial/foodhub/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type CreateCategoryInput struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
}

type CategoryService struct {
	categories CategoryRepository
	now        func() time.Time
}

func NewCategoryService(categories CategoryRepository) *CategoryService {
	return &CategoryService{categories: categories, now: time.Now}
}

func (s *CategoryService) Create(ctx context.Context, in CreateCategoryInput) (*models.Category, error) {
	categorySlug, err := uniqueSlug(ctx, in.Name, s.categories.SlugExists)
	if err != nil {
		return nil, err
	}
	now := s.now()
	category := &models.Category{
		Name:        in.Name,
		Slug:        categorySlug,
		Description: in.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.categories.Create(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *CategoryService) Get(ctx context.Context, id primitive.ObjectID) (*models.Category, error) {
	category, err := s.categories.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "category "+id.Hex())
	}
	return category, nil
}

func (s *CategoryService) GetBySlug(ctx context.Context, categorySlug string) (*models.Category, error) {
	category, err := s.categories.GetBySlug(ctx, categorySlug)
	if err != nil {
		return nil, notFound(err, "category "+categorySlug)
	}
	return category, nil
}

func (s *CategoryService) List(ctx context.Context) ([]models.Category, error) {
	return s.categories.List(ctx)
}

// Update regenerates the slug when the name changes.
func (s *CategoryService) Update(ctx context.Context, id primitive.ObjectID, update models.CategoryUpdate) (*models.Category, error) {
	current, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	update.Slug = nil
	if update.Name != nil && *update.Name != current.Name {
		categorySlug, err := uniqueSlug(ctx, *update.Name, s.categories.SlugExists)
		if err != nil {
			return nil, err
		}
		update.Slug = &categorySlug
	}
	category, err := s.categories.Update(ctx, id, update)
	if err != nil {
		return nil, notFound(err, "category "+id.Hex())
	}
	return category, nil
}
