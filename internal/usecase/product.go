package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/muskan-fatima97/ClassyShop/internal/entity"
	"github.com/muskan-fatima97/ClassyShop/internal/platform/metrics"
	"github.com/muskan-fatima97/ClassyShop/internal/port/cache"
	"github.com/muskan-fatima97/ClassyShop/internal/repository"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) (primitive.ObjectID, error)
	GetByName(ctx context.Context, name string) (*entity.Product, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*entity.Product, error)
	List(ctx context.Context, skip, limit int64) ([]*entity.Product, int64, error)
	Search(ctx context.Context, query string, skip, limit int64) ([]*entity.Product, int64, error)
	ListByCategory(ctx context.Context, categoryID primitive.ObjectID, skip, limit int64) ([]*entity.Product, int64, error)
	ListByBrand(ctx context.Context, brandID primitive.ObjectID, skip, limit int64) ([]*entity.Product, int64, error)
	Update(ctx context.Context, id primitive.ObjectID, params repository.UpdateProductParams) (*entity.Product, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// CategoryResolver and BrandResolver resolve product references by
// display name at write time and hydrate names on reads.
type CategoryResolver interface {
	GetByName(ctx context.Context, name string) (*entity.Category, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*entity.Category, error)
}

type BrandResolver interface {
	GetByName(ctx context.Context, name string) (*entity.Brand, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*entity.Brand, error)
}

// CatalogEventPublisher is optional; a nil publisher disables events.
type CatalogEventPublisher interface {
	PublishCatalogChanged(ctx context.Context, resource, action, id string) error
}

// NameRef is the projection of a referenced category or brand carried
// on product reads.
type NameRef struct {
	ID   primitive.ObjectID `json:"_id"`
	Name string             `json:"name"`
}

type ProductView struct {
	ID          primitive.ObjectID `json:"_id"`
	Name        string             `json:"name"`
	Category    NameRef            `json:"category"`
	Brand       NameRef            `json:"brand"`
	Price       float64            `json:"price"`
	Quantity    int                `json:"quantity"`
	Images      []string           `json:"images"`
	Description string             `json:"description"`
	CreatedAt   time.Time          `json:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt"`
}

type Pagination struct {
	TotalRecords int64 `json:"totalRecords"`
	TotalPages   int64 `json:"totalPages"`
	CurrentPage  int   `json:"currentPage"`
	PerPage      int   `json:"perPage"`
}

type ProductPage struct {
	Products   []*ProductView `json:"products"`
	Pagination Pagination     `json:"pagination"`
}

func productListCacheKey(page, limit int) string {
	return fmt.Sprintf("all-%d-%d", page, limit)
}

func productCacheKey(id string) string {
	return fmt.Sprintf("product-%s", id)
}

type ProductUsecase struct {
	products   ProductRepository
	categories CategoryResolver
	brands     BrandResolver
	txn        repository.TxnRunner
	cache      cache.CacheRepository
	metrics    *metrics.Manager
	events     CatalogEventPublisher
	cacheTTL   time.Duration
	logger     *zap.Logger
}

func NewProductUsecase(
	products ProductRepository,
	categories CategoryResolver,
	brands BrandResolver,
	txn repository.TxnRunner,
	cacheRepo cache.CacheRepository,
	m *metrics.Manager,
	events CatalogEventPublisher,
	cacheTTL time.Duration,
	logger *zap.Logger,
) *ProductUsecase {
	return &ProductUsecase{
		products:   products,
		categories: categories,
		brands:     brands,
		txn:        txn,
		cache:      cacheRepo,
		metrics:    m,
		events:     events,
		cacheTTL:   cacheTTL,
		logger:     logger.Named("ProductUsecase"),
	}
}

// notifyCatalogChanged fires after a committed write; delivery is best
// effort and never fails the request.
func (uc *ProductUsecase) notifyCatalogChanged(ctx context.Context, action, id string) {
	if uc.events == nil {
		return
	}
	if err := uc.events.PublishCatalogChanged(ctx, "product", action, id); err != nil {
		uc.logger.Warn("Failed to publish catalog changed event",
			zap.String("action", action), zap.String("productID", id), zap.Error(err))
	}
}

func (uc *ProductUsecase) flushCache(ctx context.Context) {
	if err := uc.cache.Flush(ctx); err != nil {
		uc.logger.Warn("Failed to flush product cache after commit", zap.Error(err))
	}
}

// hydrate resolves category/brand names for a batch of products,
// memoizing lookups across the batch.
func (uc *ProductUsecase) hydrate(ctx context.Context, products []*entity.Product) ([]*ProductView, error) {
	categoryNames := make(map[primitive.ObjectID]string)
	brandNames := make(map[primitive.ObjectID]string)

	views := make([]*ProductView, 0, len(products))
	for _, p := range products {
		categoryName, ok := categoryNames[p.CategoryID]
		if !ok {
			if category, err := uc.categories.GetByID(ctx, p.CategoryID); err == nil {
				categoryName = category.Name
			} else if !errors.Is(err, repository.ErrCategoryNotFound) {
				return nil, err
			}
			categoryNames[p.CategoryID] = categoryName
		}
		brandName, ok := brandNames[p.BrandID]
		if !ok {
			if brand, err := uc.brands.GetByID(ctx, p.BrandID); err == nil {
				brandName = brand.Name
			} else if !errors.Is(err, repository.ErrBrandNotFound) {
				return nil, err
			}
			brandNames[p.BrandID] = brandName
		}
		views = append(views, &ProductView{
			ID:          p.ID,
			Name:        p.Name,
			Category:    NameRef{ID: p.CategoryID, Name: categoryName},
			Brand:       NameRef{ID: p.BrandID, Name: brandName},
			Price:       p.Price,
			Quantity:    p.Quantity,
			Images:      p.Images,
			Description: p.Description,
			CreatedAt:   p.CreatedAt,
			UpdatedAt:   p.UpdatedAt,
		})
	}
	return views, nil
}

type CreateProductInput struct {
	Name        string
	Category    string
	Brand       string
	Price       float64
	Quantity    int
	Images      []string
	Description string
}

// Create resolves both references and checks name uniqueness inside the
// same transaction snapshot as the insert. Any failure aborts the
// transaction and leaves the cache untouched.
func (uc *ProductUsecase) Create(ctx context.Context, input CreateProductInput) (*ProductView, error) {
	var errs []string
	if input.Name == "" || input.Category == "" || input.Brand == "" || input.Description == "" {
		errs = append(errs, "Missing required fields")
	}
	if input.Price <= 0 {
		errs = append(errs, "Price must be a positive number")
	}
	if input.Quantity < 0 {
		errs = append(errs, "Quantity cannot be negative")
	}
	if len(errs) > 0 {
		return nil, &ValidationError{Errors: errs}
	}

	product := &entity.Product{
		Name:        input.Name,
		Price:       input.Price,
		Quantity:    input.Quantity,
		Images:      input.Images,
		Description: input.Description,
	}
	var categoryName, brandName string

	err := uc.txn.Run(ctx, func(txCtx context.Context) error {
		category, err := uc.categories.GetByName(txCtx, input.Category)
		if err != nil {
			return err
		}
		brand, err := uc.brands.GetByName(txCtx, input.Brand)
		if err != nil {
			return err
		}
		product.CategoryID = category.ID
		product.BrandID = brand.ID
		categoryName = category.Name
		brandName = brand.Name

		_, err = uc.products.GetByName(txCtx, product.Name)
		if err == nil {
			return repository.ErrProductAlreadyExists
		}
		if !errors.Is(err, repository.ErrProductNotFound) {
			return err
		}
		_, err = uc.products.Create(txCtx, product)
		return err
	})
	if err != nil {
		return nil, err
	}

	uc.flushCache(ctx)
	uc.notifyCatalogChanged(ctx, "created", product.ID.Hex())

	return &ProductView{
		ID:          product.ID,
		Name:        product.Name,
		Category:    NameRef{ID: product.CategoryID, Name: categoryName},
		Brand:       NameRef{ID: product.BrandID, Name: brandName},
		Price:       product.Price,
		Quantity:    product.Quantity,
		Images:      product.Images,
		Description: product.Description,
		CreatedAt:   product.CreatedAt,
		UpdatedAt:   product.UpdatedAt,
	}, nil
}

func normalizePaging(page, limit int) (int, int, int64) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	skip := int64(page-1) * int64(limit)
	return page, limit, skip
}

func buildPage(views []*ProductView, total int64, page, limit int) *ProductPage {
	totalPages := total / int64(limit)
	if total%int64(limit) != 0 {
		totalPages++
	}
	return &ProductPage{
		Products: views,
		Pagination: Pagination{
			TotalRecords: total,
			TotalPages:   totalPages,
			CurrentPage:  page,
			PerPage:      limit,
		},
	}
}

// GetAll serves the paginated listing through the cache, keyed by
// (page, limit).
func (uc *ProductUsecase) GetAll(ctx context.Context, page, limit int) (*ProductPage, bool, error) {
	page, limit, skip := normalizePaging(page, limit)
	key := productListCacheKey(page, limit)

	cached, err := uc.cache.Get(ctx, key)
	if err == nil {
		var result ProductPage
		if unmarshalErr := json.Unmarshal(cached, &result); unmarshalErr == nil {
			uc.metrics.CacheHit("product")
			return &result, true, nil
		}
		if delErr := uc.cache.Delete(ctx, key); delErr != nil {
			uc.logger.Warn("Failed to delete corrupted cache entry", zap.String("key", key), zap.Error(delErr))
		}
	} else if !errors.Is(err, cache.ErrNotFound) {
		uc.logger.Warn("Failed to get products from cache (not a cache miss)", zap.String("key", key), zap.Error(err))
	}

	products, total, err := uc.products.List(ctx, skip, int64(limit))
	if err != nil {
		return nil, false, err
	}
	views, err := uc.hydrate(ctx, products)
	if err != nil {
		return nil, false, err
	}
	uc.metrics.CacheMiss("product")

	result := buildPage(views, total, page, limit)
	if data, marshalErr := json.Marshal(result); marshalErr == nil {
		if setErr := uc.cache.Set(ctx, key, data, uc.cacheTTL); setErr != nil {
			uc.logger.Warn("Failed to set products in cache", zap.String("key", key), zap.Error(setErr))
		}
	}
	return result, false, nil
}

func (uc *ProductUsecase) GetByID(ctx context.Context, id string) (*ProductView, bool, error) {
	productID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, false, NewValidationError("Invalid product ID")
	}
	key := productCacheKey(id)

	cached, err := uc.cache.Get(ctx, key)
	if err == nil {
		var view ProductView
		if unmarshalErr := json.Unmarshal(cached, &view); unmarshalErr == nil {
			uc.metrics.CacheHit("product")
			return &view, true, nil
		}
		if delErr := uc.cache.Delete(ctx, key); delErr != nil {
			uc.logger.Warn("Failed to delete corrupted cache entry", zap.String("key", key), zap.Error(delErr))
		}
	} else if !errors.Is(err, cache.ErrNotFound) {
		uc.logger.Warn("Failed to get product from cache (not a cache miss)", zap.String("key", key), zap.Error(err))
	}

	product, err := uc.products.GetByID(ctx, productID)
	if err != nil {
		return nil, false, err
	}
	views, err := uc.hydrate(ctx, []*entity.Product{product})
	if err != nil {
		return nil, false, err
	}
	uc.metrics.CacheMiss("product")

	view := views[0]
	if data, marshalErr := json.Marshal(view); marshalErr == nil {
		if setErr := uc.cache.Set(ctx, key, data, uc.cacheTTL); setErr != nil {
			uc.logger.Warn("Failed to set product in cache", zap.String("key", key), zap.Error(setErr))
		}
	}
	return view, false, nil
}

// Search is an uncached passthrough; result sets vary too much per
// query to be worth caching under the full-flush invalidation scheme.
func (uc *ProductUsecase) Search(ctx context.Context, query string, page, limit int) (*ProductPage, error) {
	if query == "" {
		return nil, NewValidationError("Please provide a search query")
	}
	page, limit, skip := normalizePaging(page, limit)

	products, total, err := uc.products.Search(ctx, query, skip, int64(limit))
	if err != nil {
		return nil, err
	}
	views, err := uc.hydrate(ctx, products)
	if err != nil {
		return nil, err
	}
	return buildPage(views, total, page, limit), nil
}

func (uc *ProductUsecase) GetByCategory(ctx context.Context, categoryName string, page, limit int) (*ProductPage, error) {
	if categoryName == "" {
		return nil, NewValidationError("Category name is required")
	}
	page, limit, skip := normalizePaging(page, limit)

	category, err := uc.categories.GetByName(ctx, categoryName)
	if err != nil {
		return nil, err
	}

	products, total, err := uc.products.ListByCategory(ctx, category.ID, skip, int64(limit))
	if err != nil {
		return nil, err
	}
	views, err := uc.hydrate(ctx, products)
	if err != nil {
		return nil, err
	}
	return buildPage(views, total, page, limit), nil
}

func (uc *ProductUsecase) GetByBrand(ctx context.Context, brandName string, page, limit int) (*ProductPage, error) {
	if brandName == "" {
		return nil, NewValidationError("Brand name is required")
	}
	page, limit, skip := normalizePaging(page, limit)

	brand, err := uc.brands.GetByName(ctx, brandName)
	if err != nil {
		return nil, err
	}

	products, total, err := uc.products.ListByBrand(ctx, brand.ID, skip, int64(limit))
	if err != nil {
		return nil, err
	}
	views, err := uc.hydrate(ctx, products)
	if err != nil {
		return nil, err
	}
	return buildPage(views, total, page, limit), nil
}

type UpdateProductInput struct {
	Name        *string
	Category    *string
	Brand       *string
	Price       *float64
	Quantity    *int
	Images      []string
	Description *string
}

// Update re-resolves any changed reference inside the transaction; an
// unresolvable name fails the whole operation before the write.
func (uc *ProductUsecase) Update(ctx context.Context, id string, input UpdateProductInput) (*ProductView, error) {
	productID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, NewValidationError("Invalid product ID")
	}
	if input.Price != nil && *input.Price <= 0 {
		return nil, NewValidationError("Price must be a positive number")
	}
	if input.Quantity != nil && *input.Quantity < 0 {
		return nil, NewValidationError("Quantity cannot be negative")
	}

	var updated *entity.Product
	err = uc.txn.Run(ctx, func(txCtx context.Context) error {
		params := repository.UpdateProductParams{
			Name:        input.Name,
			Price:       input.Price,
			Quantity:    input.Quantity,
			Images:      input.Images,
			Description: input.Description,
		}
		if input.Category != nil {
			category, err := uc.categories.GetByName(txCtx, *input.Category)
			if err != nil {
				return err
			}
			params.CategoryID = &category.ID
		}
		if input.Brand != nil {
			brand, err := uc.brands.GetByName(txCtx, *input.Brand)
			if err != nil {
				return err
			}
			params.BrandID = &brand.ID
		}
		updated, err = uc.products.Update(txCtx, productID, params)
		return err
	})
	if err != nil {
		return nil, err
	}

	uc.flushCache(ctx)
	uc.notifyCatalogChanged(ctx, "updated", id)

	views, err := uc.hydrate(ctx, []*entity.Product{updated})
	if err != nil {
		return nil, err
	}
	return views[0], nil
}

func (uc *ProductUsecase) Delete(ctx context.Context, id string) error {
	productID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return NewValidationError("Invalid product ID")
	}

	err = uc.txn.Run(ctx, func(txCtx context.Context) error {
		return uc.products.Delete(txCtx, productID)
	})
	if err != nil {
		return err
	}

	uc.flushCache(ctx)
	uc.notifyCatalogChanged(ctx, "deleted", id)
	return nil
}
