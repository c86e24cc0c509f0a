package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/samber/lo"
	"go.uber.org/zap"

	"aurora/internal/models/db_models"
	"aurora/internal/models/request_models"
	"aurora/internal/repositories"
	"aurora/pkg/storage"
	"aurora/pkg/utils"
)

const msgProductNameTaken = "product with this name already exists."

// ProductServiceInterface manages the catalog. Callers are expected to have
// passed the catalog write policy before reaching the mutating methods.
type ProductServiceInterface interface {
	GetProductByID(ctx context.Context, id string) (*db_models.Product, error)
	ListProducts(ctx context.Context, category string, page, pageSize int) ([]db_models.Product, error)
	CreateProduct(ctx context.Context, request request_models.CreateProductRequest) (*db_models.Product, error)
	UpdateProduct(ctx context.Context, id string, request request_models.UpdateProductRequest) (*db_models.Product, error)
	DeleteProduct(ctx context.Context, id string) error
	UpdateImage(ctx context.Context, id string, data []byte) (*db_models.Product, error)
	SeedProducts(ctx context.Context) (int, error)
}

type ProductService struct {
	productRepo repositories.ProductRepository
	objects     storage.ObjectStore
	log         *zap.Logger
}

func NewProductService(productRepo repositories.ProductRepository, objects storage.ObjectStore, log *zap.Logger) *ProductService {
	return &ProductService{
		productRepo: productRepo,
		objects:     objects,
		log:         log.Named("products"),
	}
}

func (p *ProductService) GetProductByID(ctx context.Context, id string) (*db_models.Product, error) {
	id, ok := parseID(id)
	if !ok {
		return nil, utils.ErrNotFound
	}

	product, err := p.productRepo.GetByID(ctx, id)
	if err != nil {
		p.log.Error("get product", zap.String("product_id", id), zap.Error(err))
		return nil, utils.ErrDatabaseError
	}
	if product == nil {
		return nil, utils.ErrNotFound
	}
	return product, nil
}

func (p *ProductService) ListProducts(ctx context.Context, category string, page, pageSize int) ([]db_models.Product, error) {
	if page < 1 {
		return nil, utils.ErrInvalidPage
	}
	if pageSize < 1 || pageSize > 100 {
		return nil, utils.ErrInvalidPageSize
	}

	products, err := p.productRepo.List(ctx, strings.TrimSpace(category), page, pageSize)
	if err != nil {
		p.log.Error("list products", zap.Error(err))
		return nil, utils.ErrDatabaseError
	}
	if products == nil {
		products = []db_models.Product{}
	}
	return products, nil
}

func (p *ProductService) CreateProduct(ctx context.Context, request request_models.CreateProductRequest) (*db_models.Product, error) {
	product := &db_models.Product{
		Name:        strings.TrimSpace(request.Name),
		Brand:       strings.TrimSpace(request.Brand),
		Category:    strings.TrimSpace(request.Category),
		Description: request.Description,
		Price:       request.Price,
		Stock:       request.Stock,
		SuitableFor: request.SuitableFor,
		Targets:     request.Targets,
		WhenToApply: request.WhenToApply,
	}
	if err := validateProduct(product); err != nil {
		return nil, err
	}

	if _, err := p.productRepo.CreateProduct(ctx, product); err != nil {
		if errors.Is(err, utils.ErrDuplicateKey) {
			return nil, utils.NewConflictError("name", msgProductNameTaken)
		}
		p.log.Error("create product", zap.Error(err))
		return nil, utils.ErrDatabaseError
	}
	return product, nil
}

func (p *ProductService) UpdateProduct(ctx context.Context, id string, request request_models.UpdateProductRequest) (*db_models.Product, error) {
	product, err := p.GetProductByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if request.Name != nil {
		product.Name = strings.TrimSpace(*request.Name)
	}
	if request.Brand != nil {
		product.Brand = strings.TrimSpace(*request.Brand)
	}
	if request.Category != nil {
		product.Category = strings.TrimSpace(*request.Category)
	}
	if request.Description != nil {
		product.Description = *request.Description
	}
	if request.Price != nil {
		product.Price = *request.Price
	}
	if request.Stock != nil {
		product.Stock = *request.Stock
	}
	if request.SuitableFor != nil {
		product.SuitableFor = *request.SuitableFor
	}
	if request.Targets != nil {
		product.Targets = *request.Targets
	}
	if request.WhenToApply != nil {
		product.WhenToApply = *request.WhenToApply
	}

	if err := validateProduct(product); err != nil {
		return nil, err
	}

	if err := p.save(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

func (p *ProductService) save(ctx context.Context, product *db_models.Product) error {
	err := p.productRepo.UpdateProduct(ctx, product)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, utils.ErrDuplicateKey):
		return utils.NewConflictError("name", msgProductNameTaken)
	case errors.Is(err, utils.ErrNotFound):
		return utils.ErrNotFound
	default:
		p.log.Error("update product", zap.String("product_id", product.ID.String()), zap.Error(err))
		return utils.ErrDatabaseError
	}
}

func validateProduct(product *db_models.Product) error {
	verr := utils.NewValidationError()
	if product.Name == "" {
		verr.Add("name", msgRequired)
	}
	if product.Price < 0 {
		verr.Add("price", "Ensure this value is greater than or equal to 0.")
	}
	if product.Stock < 0 {
		verr.Add("stock", "Ensure this value is greater than or equal to 0.")
	}
	return verr.OrNil()
}

func (p *ProductService) DeleteProduct(ctx context.Context, id string) error {
	product, err := p.GetProductByID(ctx, id)
	if err != nil {
		return err
	}

	if err := p.productRepo.Delete(ctx, product.ID.String()); err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return err
		}
		p.log.Error("delete product", zap.String("product_id", id), zap.Error(err))
		return utils.ErrDatabaseError
	}

	if product.ImageKey != "" {
		if err := p.objects.Delete(ctx, product.ImageKey); err != nil {
			p.log.Warn("delete product image", zap.String("key", product.ImageKey), zap.Error(err))
		}
	}
	return nil
}

// UpdateImage stores data as the product picture, replacing any previous one.
func (p *ProductService) UpdateImage(ctx context.Context, id string, data []byte) (*db_models.Product, error) {
	product, err := p.GetProductByID(ctx, id)
	if err != nil {
		return nil, err
	}

	contentType, ext, err := storage.DetectImage(data)
	if err != nil {
		verr := utils.NewValidationError()
		verr.Add("image", "Upload a valid image.")
		return nil, verr
	}

	key := storage.ObjectKey("products", ext, time.Now().UTC())
	url, err := p.objects.Put(ctx, key, bytes.NewReader(data), int64(len(data)), contentType)
	if err != nil {
		p.log.Error("store product image", zap.String("key", key), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", utils.ErrStorage, err)
	}

	previous := product.ImageKey
	product.ImageKey = key
	product.ImageURL = url
	if err := p.save(ctx, product); err != nil {
		_ = p.objects.Delete(ctx, key)
		return nil, err
	}

	if previous != "" {
		if err := p.objects.Delete(ctx, previous); err != nil {
			p.log.Warn("delete replaced product image", zap.String("key", previous), zap.Error(err))
		}
	}
	return product, nil
}

// SeedProducts inserts the starter catalog, skipping names already present.
// It returns how many products were added.
func (p *ProductService) SeedProducts(ctx context.Context) (int, error) {
	catalog := starterCatalog()
	names := lo.Map(catalog, func(prod db_models.Product, _ int) string { return prod.Name })

	existing, err := p.productRepo.ExistingNames(ctx, names)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}

	missing := lo.Reject(catalog, func(prod db_models.Product, _ int) bool {
		return lo.Contains(existing, prod.Name)
	})

	added := 0
	for i := range missing {
		if _, err := p.productRepo.CreateProduct(ctx, &missing[i]); err != nil {
			if errors.Is(err, utils.ErrDuplicateKey) {
				// inserted concurrently by another seeder
				continue
			}
			return added, fmt.Errorf("%w: seed %s: %v", utils.ErrDatabaseError, missing[i].Name, err)
		}
		added++
	}

	p.log.Info("catalog seeded", zap.Int("added", added), zap.Int("skipped", len(catalog)-added))
	return added, nil
}
