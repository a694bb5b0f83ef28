package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/muskan-fatima97/ClassyShop/internal/entity"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

var (
	ErrDuplicateEmail = errors.New("email already exist")
	ErrUserNotFound   = errors.New("user not found")
)

const usersCollectionName = "users"

type UserRepository struct {
	db     *mongo.Database
	logger *zap.Logger
}

func NewUserRepository(db *mongo.Database, logger *zap.Logger) *UserRepository {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Ensure indexes (idempotent operation)
	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "reset_password_token", Value: 1}}, Options: options.Index().SetSparse(true)},
	}
	if _, err := db.Collection(usersCollectionName).Indexes().CreateMany(ctx, indexes); err != nil {
		logger.Warn("Failed to create indexes for users collection (may already exist)", zap.Error(err))
	}

	return &UserRepository{
		db:     db,
		logger: logger.Named("UserRepository"),
	}
}

// isDuplicateKey matches unique-index violations however the driver
// surfaces them: InsertOne wraps them in a WriteException while
// findAndModify reports a top-level CommandError.
func isDuplicateKey(err error) bool {
	return mongo.IsDuplicateKeyError(err)
}

func (r *UserRepository) Create(ctx context.Context, user *entity.User) (primitive.ObjectID, error) {
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	user.Email = strings.ToLower(user.Email)
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	_, err := r.db.Collection(usersCollectionName).InsertOne(ctx, user)
	if err != nil {
		if isDuplicateKey(err) {
			r.logger.Warn("Duplicate email during user creation", zap.String("email", user.Email))
			return primitive.NilObjectID, ErrDuplicateEmail
		}
		r.logger.Error("Database error during user creation", zap.String("email", user.Email), zap.Error(err))
		return primitive.NilObjectID, err
	}
	r.logger.Info("User created", zap.String("userID", user.ID.Hex()))
	return user.ID, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	var user entity.User
	err := r.db.Collection(usersCollectionName).FindOne(ctx, bson.M{"email": strings.ToLower(email)}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrUserNotFound
		}
		r.logger.Error("Database error fetching user by email", zap.String("email", email), zap.Error(err))
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) GetByID(ctx context.Context, userID primitive.ObjectID) (*entity.User, error) {
	var user entity.User
	err := r.db.Collection(usersCollectionName).FindOne(ctx, bson.M{"_id": userID}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrUserNotFound
		}
		r.logger.Error("Database error fetching user by ID", zap.String("userID", userID.Hex()), zap.Error(err))
		return nil, err
	}
	return &user, nil
}

// ListByRole returns all users with the given role, newest first. The
// password hash travels on the entity; callers project it away.
func (r *UserRepository) ListByRole(ctx context.Context, role string) ([]*entity.User, error) {
	findOptions := options.Find().SetSort(bson.M{"created_at": -1})
	cursor, err := r.db.Collection(usersCollectionName).Find(ctx, bson.M{"role": role}, findOptions)
	if err != nil {
		r.logger.Error("Database error listing users", zap.String("role", role), zap.Error(err))
		return nil, err
	}
	defer cursor.Close(ctx)

	var users []*entity.User
	if err = cursor.All(ctx, &users); err != nil {
		r.logger.Error("Error decoding listed users", zap.Error(err))
		return nil, err
	}
	return users, nil
}

func (r *UserRepository) SaveResetToken(ctx context.Context, userID primitive.ObjectID, token string, expiry time.Time) error {
	update := bson.M{
		"$set": bson.M{
			"reset_password_token":  token,
			"reset_password_expiry": expiry,
			"updated_at":            time.Now(),
		},
	}
	result, err := r.db.Collection(usersCollectionName).UpdateOne(ctx, bson.M{"_id": userID}, update)
	if err != nil {
		r.logger.Error("Database error saving reset token", zap.String("userID", userID.Hex()), zap.Error(err))
		return err
	}
	if result.MatchedCount == 0 {
		return ErrUserNotFound
	}
	r.logger.Info("Reset token saved", zap.String("userID", userID.Hex()), zap.Time("expiry", expiry))
	return nil
}

// GetByResetToken matches the stored token and requires its expiry to
// still be in the future.
func (r *UserRepository) GetByResetToken(ctx context.Context, token string, now time.Time) (*entity.User, error) {
	filter := bson.M{
		"reset_password_token":  token,
		"reset_password_expiry": bson.M{"$gt": now},
	}
	var user entity.User
	err := r.db.Collection(usersCollectionName).FindOne(ctx, filter).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrUserNotFound
		}
		r.logger.Error("Database error fetching user by reset token", zap.Error(err))
		return nil, err
	}
	return &user, nil
}

// UpdatePassword replaces the stored hash and invalidates any
// outstanding reset token in the same write.
func (r *UserRepository) UpdatePassword(ctx context.Context, userID primitive.ObjectID, hashedPassword string) error {
	update := bson.M{
		"$set": bson.M{
			"password":   hashedPassword,
			"updated_at": time.Now(),
		},
		"$unset": bson.M{
			"reset_password_token":  "",
			"reset_password_expiry": "",
		},
	}
	result, err := r.db.Collection(usersCollectionName).UpdateOne(ctx, bson.M{"_id": userID}, update)
	if err != nil {
		r.logger.Error("Database error updating password", zap.String("userID", userID.Hex()), zap.Error(err))
		return err
	}
	if result.MatchedCount == 0 {
		return ErrUserNotFound
	}
	r.logger.Info("Password updated", zap.String("userID", userID.Hex()))
	return nil
}
