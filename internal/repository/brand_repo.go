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
	ErrBrandAlreadyExists = errors.New("brand already exists")
	ErrBrandNotFound      = errors.New("brand not found")
)

const brandsCollectionName = "brands"

type BrandRepository struct {
	db     *mongo.Database
	logger *zap.Logger
}

func NewBrandRepository(db *mongo.Database, logger *zap.Logger) *BrandRepository {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	index := mongo.IndexModel{
		Keys:    bson.D{{Key: "name", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	if _, err := db.Collection(brandsCollectionName).Indexes().CreateOne(ctx, index); err != nil {
		logger.Warn("Failed to create indexes for brands collection (may already exist)", zap.Error(err))
	}

	return &BrandRepository{
		db:     db,
		logger: logger.Named("BrandRepository"),
	}
}

func (r *BrandRepository) Create(ctx context.Context, brand *entity.Brand) (primitive.ObjectID, error) {
	if brand.ID.IsZero() {
		brand.ID = primitive.NewObjectID()
	}
	now := time.Now()
	brand.CreatedAt = now
	brand.UpdatedAt = now

	_, err := r.db.Collection(brandsCollectionName).InsertOne(ctx, brand)
	if err != nil {
		if isDuplicateKey(err) {
			r.logger.Warn("Duplicate brand during creation", zap.String("name", brand.Name))
			return primitive.NilObjectID, ErrBrandAlreadyExists
		}
		r.logger.Error("Database error during brand creation", zap.String("name", brand.Name), zap.Error(err))
		return primitive.NilObjectID, err
	}
	r.logger.Info("Brand created", zap.String("brandID", brand.ID.Hex()))
	return brand.ID, nil
}

func (r *BrandRepository) GetByName(ctx context.Context, name string) (*entity.Brand, error) {
	var brand entity.Brand
	err := r.db.Collection(brandsCollectionName).FindOne(ctx, bson.M{"name": name}).Decode(&brand)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrBrandNotFound
		}
		r.logger.Error("Database error fetching brand by name", zap.String("name", name), zap.Error(err))
		return nil, err
	}
	return &brand, nil
}

func (r *BrandRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*entity.Brand, error) {
	var brand entity.Brand
	err := r.db.Collection(brandsCollectionName).FindOne(ctx, bson.M{"_id": id}).Decode(&brand)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrBrandNotFound
		}
		r.logger.Error("Database error fetching brand by ID", zap.String("brandID", id.Hex()), zap.Error(err))
		return nil, err
	}
	return &brand, nil
}

func (r *BrandRepository) List(ctx context.Context) ([]*entity.Brand, error) {
	findOptions := options.Find().SetSort(bson.M{"created_at": -1})
	cursor, err := r.db.Collection(brandsCollectionName).Find(ctx, bson.M{}, findOptions)
	if err != nil {
		r.logger.Error("Database error listing brands", zap.Error(err))
		return nil, err
	}
	defer cursor.Close(ctx)

	var brands []*entity.Brand
	if err = cursor.All(ctx, &brands); err != nil {
		r.logger.Error("Error decoding listed brands", zap.Error(err))
		return nil, err
	}
	return brands, nil
}

type UpdateBrandParams struct {
	Name        *string
	Description *string
}

func (r *BrandRepository) Update(ctx context.Context, id primitive.ObjectID, params UpdateBrandParams) (*entity.Brand, error) {
	set := bson.M{"updated_at": time.Now()}
	if params.Name != nil {
		set["name"] = *params.Name
	}
	if params.Description != nil {
		set["description"] = *params.Description
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated entity.Brand
	err := r.db.Collection(brandsCollectionName).
		FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).
		Decode(&updated)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrBrandNotFound
		}
		if isDuplicateKey(err) {
			r.logger.Warn("Duplicate brand during update", zap.String("brandID", id.Hex()))
			return nil, ErrBrandAlreadyExists
		}
		r.logger.Error("Database error during brand update", zap.String("brandID", id.Hex()), zap.Error(err))
		return nil, err
	}
	r.logger.Info("Brand updated", zap.String("brandID", id.Hex()))
	return &updated, nil
}

func (r *BrandRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.db.Collection(brandsCollectionName).DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		r.logger.Error("Database error during brand delete", zap.String("brandID", id.Hex()), zap.Error(err))
		return err
	}
	if result.DeletedCount == 0 {
		return ErrBrandNotFound
	}
	r.logger.Info("Brand deleted", zap.String("brandID", id.Hex()))
	return nil
}
