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

type BrandRepository interface {
	Create(ctx context.Context, brand *entity.Brand) (primitive.ObjectID, error)
	GetByName(ctx context.Context, name string) (*entity.Brand, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*entity.Brand, error)
	List(ctx context.Context) ([]*entity.Brand, error)
	Update(ctx context.Context, id primitive.ObjectID, params repository.UpdateBrandParams) (*entity.Brand, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

const brandListCacheKey = "all"

type BrandUsecase struct {
	repo     BrandRepository
	txn      repository.TxnRunner
	cache    cache.CacheRepository
	metrics  *metrics.Manager
	cacheTTL time.Duration
	logger   *zap.Logger
}

func NewBrandUsecase(
	repo BrandRepository,
	txn repository.TxnRunner,
	cacheRepo cache.CacheRepository,
	m *metrics.Manager,
	cacheTTL time.Duration,
	logger *zap.Logger,
) *BrandUsecase {
	return &BrandUsecase{
		repo:     repo,
		txn:      txn,
		cache:    cacheRepo,
		metrics:  m,
		cacheTTL: cacheTTL,
		logger:   logger.Named("BrandUsecase"),
	}
}

func (uc *BrandUsecase) flushCache(ctx context.Context) {
	if err := uc.cache.Flush(ctx); err != nil {
		uc.logger.Warn("Failed to flush brand cache after commit", zap.Error(err))
	}
}

type CreateBrandInput struct {
	Name        string
	Description string
}

func (uc *BrandUsecase) Create(ctx context.Context, input CreateBrandInput) (*entity.Brand, error) {
	if input.Name == "" {
		return nil, NewValidationError("Brand name is required")
	}

	brand := &entity.Brand{
		Name:        input.Name,
		Description: input.Description,
	}

	err := uc.txn.Run(ctx, func(txCtx context.Context) error {
		_, err := uc.repo.GetByName(txCtx, brand.Name)
		if err == nil {
			return repository.ErrBrandAlreadyExists
		}
		if !errors.Is(err, repository.ErrBrandNotFound) {
			return err
		}
		_, err = uc.repo.Create(txCtx, brand)
		return err
	})
	if err != nil {
		return nil, err
	}

	uc.flushCache(ctx)
	return brand, nil
}

func (uc *BrandUsecase) List(ctx context.Context) ([]*entity.Brand, bool, error) {
	cached, err := uc.cache.Get(ctx, brandListCacheKey)
	if err == nil {
		var brands []*entity.Brand
		unmarshalErr := json.Unmarshal(cached, &brands)
		if unmarshalErr == nil {
			uc.metrics.CacheHit("brand")
			return brands, true, nil
		}
		uc.logger.Error("Failed to unmarshal brands from cache", zap.Error(unmarshalErr))
		if delErr := uc.cache.Delete(ctx, brandListCacheKey); delErr != nil {
			uc.logger.Warn("Failed to delete corrupted cache entry", zap.Error(delErr))
		}
	} else if !errors.Is(err, cache.ErrNotFound) {
		uc.logger.Warn("Failed to get brands from cache (not a cache miss)", zap.Error(err))
	}

	brands, err := uc.repo.List(ctx)
	if err != nil {
		return nil, false, err
	}
	uc.metrics.CacheMiss("brand")

	if data, marshalErr := json.Marshal(brands); marshalErr == nil {
		if setErr := uc.cache.Set(ctx, brandListCacheKey, data, uc.cacheTTL); setErr != nil {
			uc.logger.Warn("Failed to set brands in cache", zap.Error(setErr))
		}
	}
	return brands, false, nil
}

func (uc *BrandUsecase) GetByID(ctx context.Context, id string) (*entity.Brand, error) {
	brandID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, NewValidationError("Invalid brand ID")
	}
	return uc.repo.GetByID(ctx, brandID)
}

type UpdateBrandInput struct {
	Name        *string
	Description *string
}

func (uc *BrandUsecase) Update(ctx context.Context, id string, input UpdateBrandInput) (*entity.Brand, error) {
	brandID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, NewValidationError("Invalid brand ID")
	}

	var updated *entity.Brand
	err = uc.txn.Run(ctx, func(txCtx context.Context) error {
		updated, err = uc.repo.Update(txCtx, brandID, repository.UpdateBrandParams{
			Name:        input.Name,
			Description: input.Description,
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	uc.flushCache(ctx)
	return updated, nil
}

func (uc *BrandUsecase) Delete(ctx context.Context, id string) error {
	brandID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return NewValidationError("Invalid brand ID")
	}

	err = uc.txn.Run(ctx, func(txCtx context.Context) error {
		return uc.repo.Delete(txCtx, brandID)
	})
	if err != nil {
		return err
	}

	uc.flushCache(ctx)
	return nil
}
