package repository

import (
	"context"
	"errors"
	"time"

	"github.com/muskan-fatima97/ClassyShop/internal/entity"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

var (
	ErrCategoryAlreadyExists = errors.New("category already exists")
	ErrCategoryNotFound      = errors.New("category not found")
)

const categoriesCollectionName = "categories"

type CategoryRepository struct {
	db     *mongo.Database
	logger *zap.Logger
}

func NewCategoryRepository(db *mongo.Database, logger *zap.Logger) *CategoryRepository {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Compound unique index: the same category name may exist once per
	// gender section.
	index := mongo.IndexModel{
		Keys:    bson.D{{Key: "name", Value: 1}, {Key: "gender", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	if _, err := db.Collection(categoriesCollectionName).Indexes().CreateOne(ctx, index); err != nil {
		logger.Warn("Failed to create indexes for categories collection (may already exist)", zap.Error(err))
	}

	return &CategoryRepository{
		db:     db,
		logger: logger.Named("CategoryRepository"),
	}
}

func (r *CategoryRepository) Create(ctx context.Context, category *entity.Category) (primitive.ObjectID, error) {
	if category.ID.IsZero() {
		category.ID = primitive.NewObjectID()
	}
	now := time.Now()
	category.CreatedAt = now
	category.UpdatedAt = now

	_, err := r.db.Collection(categoriesCollectionName).InsertOne(ctx, category)
	if err != nil {
		if isDuplicateKey(err) {
			r.logger.Warn("Duplicate category during creation",
				zap.String("name", category.Name), zap.String("gender", category.Gender))
			return primitive.NilObjectID, ErrCategoryAlreadyExists
		}
		r.logger.Error("Database error during category creation", zap.String("name", category.Name), zap.Error(err))
		return primitive.NilObjectID, err
	}
	r.logger.Info("Category created", zap.String("categoryID", category.ID.Hex()))
	return category.ID, nil
}

// GetByNameAndGender is the natural-key lookup used as the in-transaction
// precondition check before an insert.
func (r *CategoryRepository) GetByNameAndGender(ctx context.Context, name, gender string) (*entity.Category, error) {
	var category entity.Category
	err := r.db.Collection(categoriesCollectionName).FindOne(ctx, bson.M{"name": name, "gender": gender}).Decode(&category)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrCategoryNotFound
		}
		r.logger.Error("Database error fetching category by name", zap.String("name", name), zap.Error(err))
		return nil, err
	}
	return &category, nil
}

// GetByName resolves a product's category reference. When the same name
// exists in several gender sections the first match wins, matching how
// products reference categories by display name.
func (r *CategoryRepository) GetByName(ctx context.Context, name string) (*entity.Category, error) {
	var category entity.Category
	err := r.db.Collection(categoriesCollectionName).FindOne(ctx, bson.M{"name": name}).Decode(&category)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrCategoryNotFound
		}
		r.logger.Error("Database error fetching category by name", zap.String("name", name), zap.Error(err))
		return nil, err
	}
	return &category, nil
}

func (r *CategoryRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*entity.Category, error) {
	var category entity.Category
	err := r.db.Collection(categoriesCollectionName).FindOne(ctx, bson.M{"_id": id}).Decode(&category)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrCategoryNotFound
		}
		r.logger.Error("Database error fetching category by ID", zap.String("categoryID", id.Hex()), zap.Error(err))
		return nil, err
	}
	return &category, nil
}

func (r *CategoryRepository) List(ctx context.Context) ([]*entity.Category, error) {
	findOptions := options.Find().SetSort(bson.M{"created_at": -1})
	cursor, err := r.db.Collection(categoriesCollectionName).Find(ctx, bson.M{}, findOptions)
	if err != nil {
		r.logger.Error("Database error listing categories", zap.Error(err))
		return nil, err
	}
	defer cursor.Close(ctx)

	var categories []*entity.Category
	if err = cursor.All(ctx, &categories); err != nil {
		r.logger.Error("Error decoding listed categories", zap.Error(err))
		return nil, err
	}
	return categories, nil
}

type UpdateCategoryParams struct {
	Name        *string
	Description *string
	Gender      *string
}

func (r *CategoryRepository) Update(ctx context.Context, id primitive.ObjectID, params UpdateCategoryParams) (*entity.Category, error) {
	set := bson.M{"updated_at": time.Now()}
	if params.Name != nil {
		set["name"] = *params.Name
	}
	if params.Description != nil {
		set["description"] = *params.Description
	}
	if params.Gender != nil {
		set["gender"] = *params.Gender
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated entity.Category
	err := r.db.Collection(categoriesCollectionName).
		FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).
		Decode(&updated)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrCategoryNotFound
		}
		if isDuplicateKey(err) {
			r.logger.Warn("Duplicate category during update", zap.String("categoryID", id.Hex()))
			return nil, ErrCategoryAlreadyExists
		}
		r.logger.Error("Database error during category update", zap.String("categoryID", id.Hex()), zap.Error(err))
		return nil, err
	}
	r.logger.Info("Category updated", zap.String("categoryID", id.Hex()))
	return &updated, nil
}

func (r *CategoryRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.db.Collection(categoriesCollectionName).DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		r.logger.Error("Database error during category delete", zap.String("categoryID", id.Hex()), zap.Error(err))
		return err
	}
	if result.DeletedCount == 0 {
		return ErrCategoryNotFound
	}
	r.logger.Info("Category deleted", zap.String("categoryID", id.Hex()))
	return nil
}
