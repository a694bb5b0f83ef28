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
	ErrProductAlreadyExists = errors.New("product already exists")
	ErrProductNotFound      = errors.New("product not found")
)

const productsCollectionName = "products"

type ProductRepository struct {
	db     *mongo.Database
	logger *zap.Logger
}

func NewProductRepository(db *mongo.Database, logger *zap.Logger) *ProductRepository {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "name", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "category", Value: 1}}},
		{Keys: bson.D{{Key: "brand", Value: 1}}},
	}
	if _, err := db.Collection(productsCollectionName).Indexes().CreateMany(ctx, indexes); err != nil {
		logger.Warn("Failed to create indexes for products collection (may already exist)", zap.Error(err))
	}

	return &ProductRepository{
		db:     db,
		logger: logger.Named("ProductRepository"),
	}
}

func (r *ProductRepository) Create(ctx context.Context, product *entity.Product) (primitive.ObjectID, error) {
	if product.ID.IsZero() {
		product.ID = primitive.NewObjectID()
	}
	now := time.Now()
	product.CreatedAt = now
	product.UpdatedAt = now
	if product.Images == nil {
		product.Images = []string{}
	}

	_, err := r.db.Collection(productsCollectionName).InsertOne(ctx, product)
	if err != nil {
		if isDuplicateKey(err) {
			r.logger.Warn("Duplicate product during creation", zap.String("name", product.Name))
			return primitive.NilObjectID, ErrProductAlreadyExists
		}
		r.logger.Error("Database error during product creation", zap.String("name", product.Name), zap.Error(err))
		return primitive.NilObjectID, err
	}
	r.logger.Info("Product created", zap.String("productID", product.ID.Hex()))
	return product.ID, nil
}

func (r *ProductRepository) GetByName(ctx context.Context, name string) (*entity.Product, error) {
	var product entity.Product
	err := r.db.Collection(productsCollectionName).FindOne(ctx, bson.M{"name": name}).Decode(&product)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrProductNotFound
		}
		r.logger.Error("Database error fetching product by name", zap.String("name", name), zap.Error(err))
		return nil, err
	}
	return &product, nil
}

func (r *ProductRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*entity.Product, error) {
	var product entity.Product
	err := r.db.Collection(productsCollectionName).FindOne(ctx, bson.M{"_id": id}).Decode(&product)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrProductNotFound
		}
		r.logger.Error("Database error fetching product by ID", zap.String("productID", id.Hex()), zap.Error(err))
		return nil, err
	}
	return &product, nil
}

func (r *ProductRepository) find(ctx context.Context, filter bson.M, skip, limit int64) ([]*entity.Product, int64, error) {
	findOptions := options.Find().
		SetSort(bson.M{"created_at": -1}).
		SetSkip(skip).
		SetLimit(limit)

	cursor, err := r.db.Collection(productsCollectionName).Find(ctx, filter, findOptions)
	if err != nil {
		r.logger.Error("Database error listing products", zap.Error(err))
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var products []*entity.Product
	if err = cursor.All(ctx, &products); err != nil {
		r.logger.Error("Error decoding listed products", zap.Error(err))
		return nil, 0, err
	}

	total, err := r.db.Collection(productsCollectionName).CountDocuments(ctx, filter)
	if err != nil {
		r.logger.Error("Database error counting products", zap.Error(err))
		return nil, 0, err
	}
	return products, total, nil
}

func (r *ProductRepository) List(ctx context.Context, skip, limit int64) ([]*entity.Product, int64, error) {
	return r.find(ctx, bson.M{}, skip, limit)
}

func (r *ProductRepository) Search(ctx context.Context, query string, skip, limit int64) ([]*entity.Product, int64, error) {
	filter := bson.M{
		"$or": []bson.M{
			{"name": bson.M{"$regex": query, "$options": "i"}},
			{"description": bson.M{"$regex": query, "$options": "i"}},
		},
	}
	return r.find(ctx, filter, skip, limit)
}

func (r *ProductRepository) ListByCategory(ctx context.Context, categoryID primitive.ObjectID, skip, limit int64) ([]*entity.Product, int64, error) {
	return r.find(ctx, bson.M{"category": categoryID}, skip, limit)
}

func (r *ProductRepository) ListByBrand(ctx context.Context, brandID primitive.ObjectID, skip, limit int64) ([]*entity.Product, int64, error) {
	return r.find(ctx, bson.M{"brand": brandID}, skip, limit)
}

type UpdateProductParams struct {
	Name        *string
	CategoryID  *primitive.ObjectID
	BrandID     *primitive.ObjectID
	Price       *float64
	Quantity    *int
	Images      []string
	Description *string
}

func (r *ProductRepository) Update(ctx context.Context, id primitive.ObjectID, params UpdateProductParams) (*entity.Product, error) {
	set := bson.M{"updated_at": time.Now()}
	if params.Name != nil {
		set["name"] = *params.Name
	}
	if params.CategoryID != nil {
		set["category"] = *params.CategoryID
	}
	if params.BrandID != nil {
		set["brand"] = *params.BrandID
	}
	if params.Price != nil {
		set["price"] = *params.Price
	}
	if params.Quantity != nil {
		set["quantity"] = *params.Quantity
	}
	if params.Images != nil {
		set["images"] = params.Images
	}
	if params.Description != nil {
		set["description"] = *params.Description
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated entity.Product
	err := r.db.Collection(productsCollectionName).
		FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).
		Decode(&updated)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrProductNotFound
		}
		if isDuplicateKey(err) {
			r.logger.Warn("Duplicate product during update", zap.String("productID", id.Hex()))
			return nil, ErrProductAlreadyExists
		}
		r.logger.Error("Database error during product update", zap.String("productID", id.Hex()), zap.Error(err))
		return nil, err
	}
	r.logger.Info("Product updated", zap.String("productID", id.Hex()))
	return &updated, nil
}

func (r *ProductRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.db.Collection(productsCollectionName).DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		r.logger.Error("Database error during product delete", zap.String("productID", id.Hex()), zap.Error(err))
		return err
	}
	if result.DeletedCount == 0 {
		return ErrProductNotFound
	}
	r.logger.Info("Product deleted", zap.String("productID", id.Hex()))
	return nil
}
