package catalog

import (
	"context"
	"errors"
	"fmt"
	"path"

	"github.com/google/uuid"
	"github.com/renztrending/backend/internal/domain/audit"
	"github.com/renztrending/backend/internal/domain/catalog"
	"github.com/renztrending/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// RelatedLimit caps the related-products strip
const RelatedLimit = 8

const (
	newArrivalsSize = 6
	homeStripSize   = 3
)

var allowedImageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

// sortOptions maps storefront sort keys to column and direction
var sortOptions = map[string][2]string{
	"newest":     {"created_at", "desc"},
	"price_asc":  {"selling_price", "asc"},
	"price_desc": {"selling_price", "desc"},
	"popular":    {"buy_count", "desc"},
	"rating":     {"rating", "desc"},
	"name":       {"name", "asc"},
}

// ProductService handles catalog browsing and product administration
type ProductService struct {
	productRepo  catalog.ProductRepository
	categoryRepo catalog.CategoryRepository
	cache        ProductCache
	storage      ImageStorage
	auditLog     audit.Log
	logger       *zap.Logger
}

// NewProductService creates a new ProductService
func NewProductService(
	productRepo catalog.ProductRepository,
	categoryRepo catalog.CategoryRepository,
	cache ProductCache,
	storage ImageStorage,
	auditLog audit.Log,
	logger *zap.Logger,
) *ProductService {
	if cache == nil {
		cache = NopProductCache{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProductService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		cache:        cache,
		storage:      storage,
		auditLog:     auditLog,
		logger:       logger,
	}
}

// List returns a page of products matching the storefront filter
func (s *ProductService) List(ctx context.Context, f ProductListFilter) ([]ProductResponse, int64, error) {
	filter := shared.DefaultFilter().Paged(f.Page, f.PageSize, f.Search)
	if opt, ok := sortOptions[f.Sort]; ok {
		filter.OrderBy, filter.OrderDir = opt[0], opt[1]
	}
	if f.MinPrice != nil {
		filter.Filters["min_price"] = *f.MinPrice
	}
	if f.MaxPrice != nil {
		filter.Filters["max_price"] = *f.MaxPrice
	}
	if f.Category != "" {
		categoryID, err := s.resolveCategory(ctx, f.Category)
		if errors.Is(err, shared.ErrNotFound) {
			return []ProductResponse{}, 0, nil
		}
		if err != nil {
			return nil, 0, err
		}
		filter.Filters["category_id"] = categoryID
	}

	products, err := s.productRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.productRepo.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	return ToProductResponses(products), total, nil
}

// resolveCategory accepts a category ID or slug
func (s *ProductService) resolveCategory(ctx context.Context, ref string) (uuid.UUID, error) {
	if id, err := uuid.Parse(ref); err == nil {
		return id, nil
	}
	category, err := s.categoryRepo.FindBySlug(ctx, ref)
	if err != nil {
		return uuid.Nil, err
	}
	return category.ID, nil
}

// GetBySlug returns the product page, served from cache when possible
func (s *ProductService) GetBySlug(ctx context.Context, slug string) (*ProductDetailResponse, error) {
	if cached, err := s.cache.Get(ctx, slug); err != nil {
		s.logger.Warn("Product cache read failed", zap.String("slug", slug), zap.Error(err))
	} else if cached != nil {
		return cached, nil
	}

	product, err := s.productRepo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	detail := ToProductDetailResponse(product)

	siblings, err := s.productRepo.FindGroupSiblings(ctx, product.ID)
	if err != nil {
		return nil, err
	}
	if len(siblings) > 0 {
		detail.Group = ToProductResponses(siblings)
	}

	if err := s.cache.Set(ctx, slug, detail); err != nil {
		s.logger.Warn("Product cache write failed", zap.String("slug", slug), zap.Error(err))
	}
	return detail, nil
}

// Related returns a random selection of products from the same category
func (s *ProductService) Related(ctx context.Context, slug string) ([]ProductResponse, error) {
	product, err := s.productRepo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if product.CategoryID == nil {
		return []ProductResponse{}, nil
	}
	related, err := s.productRepo.FindRelated(ctx, product, RelatedLimit)
	if err != nil {
		return nil, err
	}
	return ToProductResponses(related), nil
}

// Home returns the landing feed: categories, the newest products, the hot
// releases among them, the best sellers and the premium picks
func (s *ProductService) Home(ctx context.Context) (*HomeResponse, error) {
	categories, err := s.categoryRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	counts, err := s.categoryRepo.CountProducts(ctx)
	if err != nil {
		return nil, err
	}

	newest, err := s.topProducts(ctx, "created_at", newArrivalsSize)
	if err != nil {
		return nil, err
	}
	trendy, err := s.topProducts(ctx, "buy_count", homeStripSize)
	if err != nil {
		return nil, err
	}
	deals, err := s.topProducts(ctx, "selling_price", homeStripSize)
	if err != nil {
		return nil, err
	}

	resp := &HomeResponse{
		Categories: make([]CategoryResponse, len(categories)),
		NewlyAdded: ToProductResponses(newest),
		HotRelease: ToProductResponses(newest[:min(homeStripSize, len(newest))]),
		Trendy:     ToProductResponses(trendy),
		BestDeal:   ToProductResponses(deals),
	}
	for i := range categories {
		resp.Categories[i] = ToCategoryResponse(&categories[i], counts[categories[i].ID])
	}
	return resp, nil
}

// topProducts returns the first n products by column, highest first
func (s *ProductService) topProducts(ctx context.Context, column string, n int) ([]catalog.Product, error) {
	filter := shared.DefaultFilter().Paged(1, n, "")
	filter.OrderBy, filter.OrderDir = column, "desc"
	return s.productRepo.FindAll(ctx, filter)
}

// Create adds a product to the catalog
func (s *ProductService) Create(ctx context.Context, req CreateProductRequest) (*ProductDetailResponse, error) {
	product, err := catalog.NewProduct(req.Name, req.MarketPrice, req.SellingPrice, req.Stock)
	if err != nil {
		return nil, err
	}
	if err := s.ensureSlugAvailable(ctx, product.Slug, nil); err != nil {
		return nil, err
	}
	if req.CategoryID != nil {
		if err := s.ensureCategory(ctx, *req.CategoryID); err != nil {
			return nil, err
		}
		product.SetCategory(req.CategoryID)
	}
	if err := product.SetAvailableSizes(req.AvailSizes); err != nil {
		return nil, err
	}
	product.Description = req.Description
	product.Brand = req.Brand
	product.ColorID = req.ColorID
	product.SizeID = req.SizeID
	product.Tags = req.Tags
	product.Fabric = req.Fabric
	product.GSM = req.GSM
	product.ProductType = req.ProductType
	product.Sleeve = req.Sleeve
	product.Fit = req.Fit
	product.IdealFor = req.IdealFor
	product.NetWeight = req.NetWeight

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}
	s.record(ctx, audit.ActionProductCreated, product.ID, map[string]any{"name": product.Name, "slug": product.Slug})

	return ToProductDetailResponse(product), nil
}

// Update applies a partial update; a rename regenerates the slug
func (s *ProductService) Update(ctx context.Context, id uuid.UUID, req UpdateProductRequest) (*ProductDetailResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	oldSlug := product.Slug

	if req.Name != nil && *req.Name != product.Name {
		if err := product.Rename(*req.Name); err != nil {
			return nil, err
		}
		if err := s.ensureSlugAvailable(ctx, product.Slug, &product.ID); err != nil {
			return nil, err
		}
	}
	if req.MarketPrice != nil || req.SellingPrice != nil {
		market, selling := product.MarketPrice, product.SellingPrice
		if req.MarketPrice != nil {
			market = *req.MarketPrice
		}
		if req.SellingPrice != nil {
			selling = *req.SellingPrice
		}
		if err := product.SetPrices(market, selling); err != nil {
			return nil, err
		}
	}
	if req.CategoryID != nil {
		if err := s.ensureCategory(ctx, *req.CategoryID); err != nil {
			return nil, err
		}
		product.SetCategory(req.CategoryID)
	}
	if req.AvailSizes != nil {
		if err := product.SetAvailableSizes(req.AvailSizes); err != nil {
			return nil, err
		}
	}
	applyOptional(&product.Description, req.Description)
	applyOptional(&product.Brand, req.Brand)
	applyOptional(&product.ProductType, req.ProductType)
	applyOptional(&product.Sleeve, req.Sleeve)
	applyOptional(&product.Fit, req.Fit)
	applyOptional(&product.IdealFor, req.IdealFor)
	applyOptional(&product.GSM, req.GSM)
	applyOptional(&product.NetWeight, req.NetWeight)
	if req.ColorID != nil {
		product.ColorID = req.ColorID
	}
	if req.SizeID != nil {
		product.SizeID = req.SizeID
	}
	if req.Tags != nil {
		product.Tags = req.Tags
	}
	if req.Fabric != nil {
		product.Fabric = req.Fabric
	}
	product.IncrementVersion()

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}
	s.invalidate(ctx, oldSlug, product.Slug)
	s.record(ctx, audit.ActionProductUpdated, product.ID, map[string]any{"slug": product.Slug})

	return ToProductDetailResponse(product), nil
}

// AddVariant adds a size/color variant with its own SKU and stock
func (s *ProductService) AddVariant(ctx context.Context, productID uuid.UUID, req AddVariantRequest) (*VariantResponse, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	variant, err := catalog.NewProductVariant(product.ID, req.SKU, req.Size, req.Price, req.MarketPrice, req.Stock)
	if err != nil {
		return nil, err
	}
	variant.ColorID = req.ColorID

	exists, err := s.productRepo.ExistsVariantSKU(ctx, variant.SKU)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError(shared.CodeAlreadyExists, "A variant with this SKU already exists")
	}
	if err := s.productRepo.SaveVariant(ctx, variant); err != nil {
		return nil, err
	}
	s.invalidate(ctx, product.Slug)

	resp := ToVariantResponse(variant)
	return &resp, nil
}

// UploadImage stores an image in object storage and attaches it to the product
func (s *ProductService) UploadImage(ctx context.Context, productID uuid.UUID, req UploadImageRequest) (*ImageResponse, error) {
	if s.storage == nil {
		return nil, shared.NewDomainError(shared.CodeInvalidState, "Image storage is not configured")
	}
	ext, ok := allowedImageTypes[req.ContentType]
	if !ok {
		return nil, shared.NewValidationError("Only JPEG, PNG and WebP images are allowed")
	}
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	key := path.Join("products", product.ID.String(), uuid.NewString()+ext)
	if err := s.storage.Upload(ctx, key, req.Body, req.ContentType); err != nil {
		return nil, fmt.Errorf("upload product image: %w", err)
	}

	primary := req.IsPrimary || len(product.Images) == 0
	image := catalog.NewProductImage(product.ID, key, s.storage.PublicURL(key), req.AltText, primary)
	if err := s.productRepo.SaveImage(ctx, image); err != nil {
		if delErr := s.storage.DeleteObject(ctx, key); delErr != nil {
			s.logger.Warn("Failed to remove orphaned image", zap.String("key", key), zap.Error(delErr))
		}
		return nil, err
	}
	s.invalidate(ctx, product.Slug)

	return &ImageResponse{ID: image.ID, URL: image.URL, AltText: image.AltText, IsPrimary: image.IsPrimary}, nil
}

// CreateGroup links products presented together on the product page
func (s *ProductService) CreateGroup(ctx context.Context, req CreateGroupRequest) (*GroupResponse, error) {
	group, err := catalog.NewProductGroup(req.Name, req.ProductIDs)
	if err != nil {
		return nil, err
	}
	products, err := s.productRepo.FindByIDs(ctx, group.ProductIDs)
	if err != nil {
		return nil, err
	}
	if len(products) != len(group.ProductIDs) {
		return nil, shared.NewNotFoundError("One or more products were not found")
	}
	if err := s.productRepo.SaveGroup(ctx, group); err != nil {
		return nil, err
	}
	slugs := make([]string, len(products))
	for i := range products {
		slugs[i] = products[i].Slug
	}
	s.invalidate(ctx, slugs...)

	return &GroupResponse{ID: group.ID, Name: group.Name, ProductIDs: group.ProductIDs}, nil
}

func (s *ProductService) ensureSlugAvailable(ctx context.Context, slug string, excludeID *uuid.UUID) error {
	exists, err := s.productRepo.ExistsBySlug(ctx, slug, excludeID)
	if err != nil {
		return err
	}
	if exists {
		return shared.NewDomainError(shared.CodeAlreadyExists, "A product with this name already exists")
	}
	return nil
}

func (s *ProductService) ensureCategory(ctx context.Context, id uuid.UUID) error {
	if _, err := s.categoryRepo.FindByID(ctx, id); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.NewValidationError("Category does not exist")
		}
		return err
	}
	return nil
}

func (s *ProductService) invalidate(ctx context.Context, slugs ...string) {
	if err := s.cache.Invalidate(ctx, slugs...); err != nil {
		s.logger.Warn("Product cache invalidation failed", zap.Strings("slugs", slugs), zap.Error(err))
	}
}

func (s *ProductService) record(ctx context.Context, action string, productID uuid.UUID, details map[string]any) {
	recordAudit(ctx, s.auditLog, s.logger, audit.NewEntry(audit.ActorFrom(ctx), action, "product", productID.String(), details))
}

// recordAudit writes an audit entry; audit failures never fail the request
func recordAudit(ctx context.Context, log audit.Log, logger *zap.Logger, entry audit.Entry) {
	if log == nil {
		return
	}
	if err := log.Record(ctx, entry); err != nil {
		logger.Warn("Failed to record audit entry",
			zap.String("action", entry.Action),
			zap.String("entity_id", entry.EntityID),
			zap.Error(err))
	}
}

func applyOptional[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}
