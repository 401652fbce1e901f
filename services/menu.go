package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go_trial/foodhub/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type CreateMenuItemInput struct {
	Name            string             `json:"name" validate:"required"`
	Description     string             `json:"description"`
	Price           float64            `json:"price" validate:"required,gt=0"`
	ImageURL        string             `json:"imageUrl" validate:"omitempty,url"`
	Category        primitive.ObjectID `json:"category" validate:"required"`
	Restaurant      primitive.ObjectID `json:"restaurant" validate:"required"`
	IsAvailable     *bool              `json:"isAvailable"`
	IsSpecial       bool               `json:"isSpecial"`
	DiscountPercent float64            `json:"discountPercent" validate:"min=0,max=100"`
	PreparationTime int                `json:"preparationTime" validate:"omitempty,min=1"`
}

type MenuService struct {
	items       MenuItemRepository
	categories  CategoryRepository
	restaurants RestaurantRepository
	now         func() time.Time
}

func NewMenuService(items MenuItemRepository, categories CategoryRepository, restaurants RestaurantRepository) *MenuService {
	return &MenuService{items: items, categories: categories, restaurants: restaurants, now: time.Now}
}

func (s *MenuService) Create(ctx context.Context, in CreateMenuItemInput) (*models.MenuItem, error) {
	if in.DiscountPercent < 0 || in.DiscountPercent > 100 {
		return nil, fmt.Errorf("%w: discount must be between 0 and 100", ErrValidation)
	}
	if _, err := s.restaurants.GetByID(ctx, in.Restaurant); err != nil {
		return nil, notFound(err, "restaurant "+in.Restaurant.Hex())
	}
	if _, err := s.categories.GetByID(ctx, in.Category); err != nil {
		return nil, notFound(err, "category "+in.Category.Hex())
	}
	itemSlug, err := uniqueSlug(ctx, in.Name, s.items.SlugExists)
	if err != nil {
		return nil, err
	}

	now := s.now()
	item := &models.MenuItem{
		Name:            in.Name,
		Slug:            itemSlug,
		Description:     in.Description,
		Price:           in.Price,
		ImageURL:        in.ImageURL,
		Category:        in.Category,
		Restaurant:      in.Restaurant,
		IsAvailable:     true,
		IsSpecial:       in.IsSpecial,
		DiscountPercent: in.DiscountPercent,
		PreparationTime: in.PreparationTime,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if in.IsAvailable != nil {
		item.IsAvailable = *in.IsAvailable
	}
	if item.PreparationTime == 0 {
		item.PreparationTime = 15
	}
	if err := s.items.Create(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *MenuService) Get(ctx context.Context, id primitive.ObjectID) (*models.MenuItem, error) {
	item, err := s.items.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "menu item "+id.Hex())
	}
	return item, nil
}

// ListByRestaurant orders items by category, then name.
func (s *MenuService) ListByRestaurant(ctx context.Context, restaurant primitive.ObjectID) ([]models.MenuItem, error) {
	return s.items.List(ctx, models.MenuFilter{Restaurant: &restaurant})
}

// Search matches name or description case-insensitively, optionally within one restaurant.
func (s *MenuService) Search(ctx context.Context, term string, restaurant *primitive.ObjectID) ([]models.MenuItem, error) {
	if term == "" {
		return nil, fmt.Errorf("%w: search term is required", ErrValidation)
	}
	return s.items.List(ctx, models.MenuFilter{Restaurant: restaurant, Search: term})
}

func (s *MenuService) ListByCategory(ctx context.Context, restaurant, category primitive.ObjectID) ([]models.MenuItem, error) {
	return s.items.List(ctx, models.MenuFilter{Restaurant: &restaurant, Category: &category})
}

// Categories returns the distinct categories used on a restaurant's menu.
func (s *MenuService) Categories(ctx context.Context, restaurant primitive.ObjectID) ([]primitive.ObjectID, error) {
	return s.items.CategoryIDs(ctx, restaurant)
}

func (s *MenuService) Update(ctx context.Context, id primitive.ObjectID, update models.MenuItemUpdate) (*models.MenuItem, error) {
	if update.DiscountPercent != nil && (*update.DiscountPercent < 0 || *update.DiscountPercent > 100) {
		return nil, fmt.Errorf("%w: discount must be between 0 and 100", ErrValidation)
	}
	current, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if update.Category != nil {
		if _, err := s.categories.GetByID(ctx, *update.Category); err != nil {
			return nil, notFound(err, "category "+update.Category.Hex())
		}
	}
	update.Slug = nil
	if update.Name != nil && *update.Name != current.Name {
		itemSlug, err := uniqueSlug(ctx, *update.Name, s.items.SlugExists)
		if err != nil {
			return nil, err
		}
		update.Slug = &itemSlug
	}

	item, err := s.items.Update(ctx, id, update)
	if err != nil {
		return nil, notFound(err, "menu item "+id.Hex())
	}
	return item, nil
}

func (s *MenuService) Delete(ctx context.Context, id primitive.ObjectID) (*models.MenuItem, error) {
	item, err := s.items.SoftDelete(ctx, id)
	if err != nil {
		return nil, notFound(err, "menu item "+id.Hex())
	}
	return item, nil
}

// ByCategorySlug lists live items of the category; an unknown slug yields an empty list.
func (s *MenuService) ByCategorySlug(ctx context.Context, categorySlug string) ([]models.MenuItem, error) {
	category, err := s.categories.GetBySlug(ctx, categorySlug)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return []models.MenuItem{}, nil
		}
		return nil, err
	}
	return s.items.List(ctx, models.MenuFilter{Category: &category.ID})
}

// BySlug finds an item by its slug, requiring it to sit in the named category.
func (s *MenuService) BySlug(ctx context.Context, categorySlug, itemSlug string) (*models.MenuItem, error) {
	category, err := s.categories.GetBySlug(ctx, categorySlug)
	if err != nil {
		return nil, notFound(err, "category "+categorySlug)
	}
	item, err := s.items.GetBySlug(ctx, itemSlug)
	if err != nil {
		return nil, notFound(err, "menu item "+itemSlug)
	}
	if item.Category != category.ID {
		return nil, fmt.Errorf("%w: menu item %s is not in category %s", ErrNotFound, itemSlug, categorySlug)
	}
	return item, nil
}
