package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/muskan-fatima97/ClassyShop/internal/entity"
	"github.com/muskan-fatima97/ClassyShop/internal/platform/metrics"
	"github.com/muskan-fatima97/ClassyShop/internal/port/cache"
	"github.com/muskan-fatima97/ClassyShop/internal/repository"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type CategoryRepository interface {
	Create(ctx context.Context, category *entity.Category) (primitive.ObjectID, error)
	GetByNameAndGender(ctx context.Context, name, gender string) (*entity.Category, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*entity.Category, error)
	List(ctx context.Context) ([]*entity.Category, error)
	Update(ctx context.Context, id primitive.ObjectID, params repository.UpdateCategoryParams) (*entity.Category, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

const categoryListCacheKey = "all"

type CategoryUsecase struct {
	repo     CategoryRepository
	txn      repository.TxnRunner
	cache    cache.CacheRepository
	metrics  *metrics.Manager
	cacheTTL time.Duration
	logger   *zap.Logger
}

func NewCategoryUsecase(
	repo CategoryRepository,
	txn repository.TxnRunner,
	cacheRepo cache.CacheRepository,
	m *metrics.Manager,
	cacheTTL time.Duration,
	logger *zap.Logger,
) *CategoryUsecase {
	return &CategoryUsecase{
		repo:     repo,
		txn:      txn,
		cache:    cacheRepo,
		metrics:  m,
		cacheTTL: cacheTTL,
		logger:   logger.Named("CategoryUsecase"),
	}
}

// flushCache runs strictly after a committed write. An aborted
// transaction never reaches here, so readers can't observe an entry
// for a rolled-back write.
func (uc *CategoryUsecase) flushCache(ctx context.Context) {
	if err := uc.cache.Flush(ctx); err != nil {
		uc.logger.Warn("Failed to flush category cache after commit", zap.Error(err))
	}
}

type CreateCategoryInput struct {
	Name        string
	Description string
	Gender      string
}

func (uc *CategoryUsecase) Create(ctx context.Context, input CreateCategoryInput) (*entity.Category, error) {
	if input.Name == "" {
		return nil, NewValidationError("Category name is required")
	}
	if !validCategoryGender(input.Gender) {
		return nil, NewValidationError("Gender must be Men, Women, or Kids")
	}

	category := &entity.Category{
		Name:        input.Name,
		Description: input.Description,
		Gender:      input.Gender,
	}

	err := uc.txn.Run(ctx, func(txCtx context.Context) error {
		_, err := uc.repo.GetByNameAndGender(txCtx, category.Name, category.Gender)
		if err == nil {
			return repository.ErrCategoryAlreadyExists
		}
		if !errors.Is(err, repository.ErrCategoryNotFound) {
			return err
		}
		_, err = uc.repo.Create(txCtx, category)
		return err
	})
	if err != nil {
		return nil, err
	}

	uc.flushCache(ctx)
	return category, nil
}

// List serves the whole-collection read through the cache. The boolean
// reports whether the result came from the cache.
func (uc *CategoryUsecase) List(ctx context.Context) ([]*entity.Category, bool, error) {
	cached, err := uc.cache.Get(ctx, categoryListCacheKey)
	if err == nil {
		var categories []*entity.Category
		unmarshalErr := json.Unmarshal(cached, &categories)
		if unmarshalErr == nil {
			uc.metrics.CacheHit("category")
			return categories, true, nil
		}
		uc.logger.Error("Failed to unmarshal categories from cache", zap.Error(unmarshalErr))
		if delErr := uc.cache.Delete(ctx, categoryListCacheKey); delErr != nil {
			uc.logger.Warn("Failed to delete corrupted cache entry", zap.Error(delErr))
		}
	} else if !errors.Is(err, cache.ErrNotFound) {
		uc.logger.Warn("Failed to get categories from cache (not a cache miss)", zap.Error(err))
	}

	categories, err := uc.repo.List(ctx)
	if err != nil {
		return nil, false, err
	}
	uc.metrics.CacheMiss("category")

	if data, marshalErr := json.Marshal(categories); marshalErr == nil {
		if setErr := uc.cache.Set(ctx, categoryListCacheKey, data, uc.cacheTTL); setErr != nil {
			uc.logger.Warn("Failed to set categories in cache", zap.Error(setErr))
		}
	}
	return categories, false, nil
}

type UpdateCategoryInput struct {
	Name        *string
	Description *string
	Gender      *string
}

func (uc *CategoryUsecase) Update(ctx context.Context, id string, input UpdateCategoryInput) (*entity.Category, error) {
	categoryID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, NewValidationError("Invalid category ID")
	}
	if input.Gender != nil && !validCategoryGender(*input.Gender) {
		return nil, NewValidationError("Gender must be Men, Women, or Kids")
	}

	var updated *entity.Category
	err = uc.txn.Run(ctx, func(txCtx context.Context) error {
		updated, err = uc.repo.Update(txCtx, categoryID, repository.UpdateCategoryParams{
			Name:        input.Name,
			Description: input.Description,
			Gender:      input.Gender,
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	uc.flushCache(ctx)
	return updated, nil
}

func (uc *CategoryUsecase) Delete(ctx context.Context, id string) error {
	categoryID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return NewValidationError("Invalid category ID")
	}

	err = uc.txn.Run(ctx, func(txCtx context.Context) error {
		return uc.repo.Delete(txCtx, categoryID)
	})
	if err != nil {
		return err
	}

	uc.flushCache(ctx)
	return nil
}
