package store

import (
	"context"
	"fmt"
	"regexp"

	"go_trial/foodhub/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type CategoryStore struct {
	coll *mongo.Collection
}

func NewCategoryStore(coll *mongo.Collection) *CategoryStore {
	return &CategoryStore{coll: coll}
}

func (s *CategoryStore) Create(ctx context.Context, category *models.Category) error {
	res, err := s.coll.InsertOne(ctx, category)
	if err != nil {
		return err
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		category.ID = id
	}
	return nil
}

func (s *CategoryStore) findOne(ctx context.Context, filter bson.M) (*models.Category, error) {
	var category models.Category
	if err := s.coll.FindOne(ctx, filter).Decode(&category); err != nil {
		return nil, err
	}
	return &category, nil
}

func (s *CategoryStore) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Category, error) {
	return s.findOne(ctx, bson.M{"_id": id, "isDeleted": false})
}

func (s *CategoryStore) GetBySlug(ctx context.Context, slug string) (*models.Category, error) {
	return s.findOne(ctx, bson.M{"slug": slug, "isDeleted": false})
}

func (s *CategoryStore) List(ctx context.Context) ([]models.Category, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	return findAll[models.Category](ctx, s.coll, bson.M{"isDeleted": false}, opts)
}

func (s *CategoryStore) Update(ctx context.Context, id primitive.ObjectID, update models.CategoryUpdate) (*models.Category, error) {
	set := bson.M{"updatedAt": now()}
	setIf(set, "name", update.Name)
	setIf(set, "description", update.Description)
	setIf(set, "slug", update.Slug)

	var category models.Category
	if err := updateOne(ctx, s.coll, bson.M{"_id": id, "isDeleted": false}, bson.M{"$set": set}, &category); err != nil {
		return nil, err
	}
	return &category, nil
}

// SlugExists also counts deleted categories since the unique index still holds their slugs.
func (s *CategoryStore) SlugExists(ctx context.Context, slug string) (bool, error) {
	n, err := s.coll.CountDocuments(ctx, bson.M{"slug": slug})
	return n > 0, err
}

type MenuItemStore struct {
	coll *mongo.Collection
}

func NewMenuItemStore(coll *mongo.Collection) *MenuItemStore {
	return &MenuItemStore{coll: coll}
}

func (s *MenuItemStore) Create(ctx context.Context, item *models.MenuItem) error {
	res, err := s.coll.InsertOne(ctx, item)
	if err != nil {
		return err
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		item.ID = id
	}
	return nil
}

func (s *MenuItemStore) findOne(ctx context.Context, filter bson.M) (*models.MenuItem, error) {
	var item models.MenuItem
	if err := s.coll.FindOne(ctx, filter).Decode(&item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *MenuItemStore) GetByID(ctx context.Context, id primitive.ObjectID) (*models.MenuItem, error) {
	return s.findOne(ctx, bson.M{"_id": id, "isDeleted": false})
}

func (s *MenuItemStore) GetBySlug(ctx context.Context, slug string) (*models.MenuItem, error) {
	return s.findOne(ctx, bson.M{"slug": slug, "isDeleted": false})
}

func (s *MenuItemStore) List(ctx context.Context, filter models.MenuFilter) ([]models.MenuItem, error) {
	query := bson.M{"isDeleted": false}
	if filter.Restaurant != nil {
		query["restaurant"] = *filter.Restaurant
	}
	if filter.Category != nil {
		query["category"] = *filter.Category
	}
	if filter.Search != "" {
		pattern := primitive.Regex{Pattern: regexp.QuoteMeta(filter.Search), Options: "i"}
		query["$or"] = bson.A{bson.M{"name": pattern}, bson.M{"description": pattern}}
	}
	opts := options.Find().SetSort(bson.D{{Key: "category", Value: 1}, {Key: "name", Value: 1}})
	return findAll[models.MenuItem](ctx, s.coll, query, opts)
}

func (s *MenuItemStore) Update(ctx context.Context, id primitive.ObjectID, update models.MenuItemUpdate) (*models.MenuItem, error) {
	set := bson.M{"updatedAt": now()}
	setIf(set, "name", update.Name)
	setIf(set, "slug", update.Slug)
	setIf(set, "description", update.Description)
	setIf(set, "price", update.Price)
	setIf(set, "imageUrl", update.ImageURL)
	setIf(set, "category", update.Category)
	setIf(set, "isAvailable", update.IsAvailable)
	setIf(set, "isSpecial", update.IsSpecial)
	setIf(set, "discountPercent", update.DiscountPercent)
	setIf(set, "preparationTime", update.PreparationTime)

	var item models.MenuItem
	if err := updateOne(ctx, s.coll, bson.M{"_id": id, "isDeleted": false}, bson.M{"$set": set}, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *MenuItemStore) SoftDelete(ctx context.Context, id primitive.ObjectID) (*models.MenuItem, error) {
	var item models.MenuItem
	update := bson.M{"$set": bson.M{"isDeleted": true, "updatedAt": now()}}
	if err := updateOne(ctx, s.coll, bson.M{"_id": id, "isDeleted": false}, update, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *MenuItemStore) CategoryIDs(ctx context.Context, restaurant primitive.ObjectID) ([]primitive.ObjectID, error) {
	values, err := s.coll.Distinct(ctx, "category", bson.M{"restaurant": restaurant, "isDeleted": false})
	if err != nil {
		return nil, err
	}
	ids := make([]primitive.ObjectID, 0, len(values))
	for _, v := range values {
		id, ok := v.(primitive.ObjectID)
		if !ok {
			return nil, fmt.Errorf("unexpected category value %T", v)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func (s *MenuItemStore) SlugExists(ctx context.Context, slug string) (bool, error) {
	n, err := s.coll.CountDocuments(ctx, bson.M{"slug": slug})
	return n > 0, err
}
