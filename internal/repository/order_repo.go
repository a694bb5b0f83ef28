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

var ErrOrderNotFound = errors.New("order not found")

const ordersCollectionName = "orders"

type OrderRepository struct {
	db     *mongo.Database
	logger *zap.Logger
}

func NewOrderRepository(db *mongo.Database, logger *zap.Logger) *OrderRepository {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	index := mongo.IndexModel{Keys: bson.D{{Key: "user", Value: 1}}}
	if _, err := db.Collection(ordersCollectionName).Indexes().CreateOne(ctx, index); err != nil {
		logger.Warn("Failed to create indexes for orders collection (may already exist)", zap.Error(err))
	}

	return &OrderRepository{
		db:     db,
		logger: logger.Named("OrderRepository"),
	}
}

func (r *OrderRepository) Create(ctx context.Context, order *entity.Order) (primitive.ObjectID, error) {
	if order.ID.IsZero() {
		order.ID = primitive.NewObjectID()
	}
	now := time.Now()
	order.CreatedAt = now
	order.UpdatedAt = now
	if order.Status == "" {
		order.Status = entity.OrderStatusPending
	}

	_, err := r.db.Collection(ordersCollectionName).InsertOne(ctx, order)
	if err != nil {
		r.logger.Error("Database error during order creation", zap.String("userID", order.UserID.Hex()), zap.Error(err))
		return primitive.NilObjectID, err
	}
	r.logger.Info("Order created", zap.String("orderID", order.ID.Hex()), zap.Float64("total", order.TotalPrice))
	return order.ID, nil
}

func (r *OrderRepository) list(ctx context.Context, filter bson.M) ([]*entity.Order, error) {
	findOptions := options.Find().SetSort(bson.M{"created_at": -1})
	cursor, err := r.db.Collection(ordersCollectionName).Find(ctx, filter, findOptions)
	if err != nil {
		r.logger.Error("Database error listing orders", zap.Error(err))
		return nil, err
	}
	defer cursor.Close(ctx)

	var orders []*entity.Order
	if err = cursor.All(ctx, &orders); err != nil {
		r.logger.Error("Error decoding listed orders", zap.Error(err))
		return nil, err
	}
	return orders, nil
}

func (r *OrderRepository) ListByUser(ctx context.Context, userID primitive.ObjectID) ([]*entity.Order, error) {
	return r.list(ctx, bson.M{"user": userID})
}

func (r *OrderRepository) ListAll(ctx context.Context) ([]*entity.Order, error) {
	return r.list(ctx, bson.M{})
}

func (r *OrderRepository) UpdateStatus(ctx context.Context, id primitive.ObjectID, status entity.OrderStatus) (*entity.Order, error) {
	update := bson.M{
		"$set": bson.M{
			"status":     status,
			"updated_at": time.Now(),
		},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated entity.Order
	err := r.db.Collection(ordersCollectionName).
		FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).
		Decode(&updated)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrOrderNotFound
		}
		r.logger.Error("Database error during order status update", zap.String("orderID", id.Hex()), zap.Error(err))
		return nil, err
	}
	r.logger.Info("Order status updated", zap.String("orderID", id.Hex()), zap.String("status", string(status)))
	return &updated, nil
}
