package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	catalogapp "github.com/renztrending/backend/internal/application/catalog"
	"github.com/renztrending/backend/internal/application/engagement"
	"github.com/shopspring/decimal"
)

// ProductService is the catalog use-case surface used by the storefront and admin handlers
type ProductService interface {
	List(ctx context.Context, f catalogapp.ProductListFilter) ([]catalogapp.ProductResponse, int64, error)
	Home(ctx context.Context) (*catalogapp.HomeResponse, error)
	GetBySlug(ctx context.Context, slug string) (*catalogapp.ProductDetailResponse, error)
	Related(ctx context.Context, slug string) ([]catalogapp.ProductResponse, error)
	Create(ctx context.Context, req catalogapp.CreateProductRequest) (*catalogapp.ProductDetailResponse, error)
	Update(ctx context.Context, id uuid.UUID, req catalogapp.UpdateProductRequest) (*catalogapp.ProductDetailResponse, error)
	AddVariant(ctx context.Context, productID uuid.UUID, req catalogapp.AddVariantRequest) (*catalogapp.VariantResponse, error)
	UploadImage(ctx context.Context, productID uuid.UUID, req catalogapp.UploadImageRequest) (*catalogapp.ImageResponse, error)
	CreateGroup(ctx context.Context, req catalogapp.CreateGroupRequest) (*catalogapp.GroupResponse, error)
}

// CategoryService is the category use-case surface
type CategoryService interface {
	Create(ctx context.Context, req catalogapp.CreateCategoryRequest) (*catalogapp.CategoryResponse, error)
	List(ctx context.Context) ([]catalogapp.CategoryResponse, error)
	Tree(ctx context.Context) ([]catalogapp.CategoryTreeNode, error)
}

// ProductReviewLister lists the reviews of a product page
type ProductReviewLister interface {
	ListForProductSlug(ctx context.Context, slug string, f engagement.ReviewListFilter) (*engagement.ReviewListResponse, error)
}

// CatalogHandler serves the public storefront catalog
type CatalogHandler struct {
	BaseHandler
	products   ProductService
	categories CategoryService
	reviews    ProductReviewLister
}

// NewCatalogHandler creates a new CatalogHandler
func NewCatalogHandler(products ProductService, categories CategoryService, reviews ProductReviewLister) *CatalogHandler {
	return &CatalogHandler{products: products, categories: categories, reviews: reviews}
}

// ListProducts godoc
// @ID           listProducts
// @Summary      List products
// @Description  Search, filter by category and price, and sort the storefront listing
// @Tags         catalog
// @Produce      json
// @Param        search query string false "Name, brand or tag search"
// @Param        category query string false "Category slug"
// @Param        min_price query string false "Minimum selling price"
// @Param        max_price query string false "Maximum selling price"
// @Param        sort query string false "newest, price_asc, price_desc, popular, rating or name"
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20)
// @Success      200 {object} APIResponse[[]catalogapp.ProductResponse]
// @Failure      400 {object} ErrorResponse
// @Router       /catalog/products [get]
func (h *CatalogHandler) ListProducts(c *gin.Context) {
	var f catalogapp.ProductListFilter
	if !h.bindQuery(c, &f) {
		return
	}
	var ok bool
	if f.MinPrice, ok = h.priceQuery(c, "min_price"); !ok {
		return
	}
	if f.MaxPrice, ok = h.priceQuery(c, "max_price"); !ok {
		return
	}
	if f.MinPrice != nil && f.MaxPrice != nil && f.MinPrice.GreaterThan(*f.MaxPrice) {
		h.BadRequest(c, "min_price must not exceed max_price")
		return
	}

	items, total, err := h.products.List(c.Request.Context(), f)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, items, total, f.Page, f.PageSize)
}

// priceQuery parses an optional non-negative decimal query parameter
func (h *CatalogHandler) priceQuery(c *gin.Context, name string) (*decimal.Decimal, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	d, err := decimal.NewFromString(raw)
	if err != nil || d.IsNegative() {
		h.BadRequest(c, "Invalid "+name)
		return nil, false
	}
	return &d, true
}

// Home godoc
// @ID           getHome
// @Summary      Storefront home feed
// @Description  Categories plus the newly added, hot release, trendy and best deal strips
// @Tags         catalog
// @Produce      json
// @Success      200 {object} APIResponse[catalogapp.HomeResponse]
// @Router       /catalog/home [get]
func (h *CatalogHandler) Home(c *gin.Context) {
	resp, err := h.products.Home(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// GetProduct godoc
// @ID           getProduct
// @Summary      Get a product page
// @Tags         catalog
// @Produce      json
// @Param        slug path string true "Product slug"
// @Success      200 {object} APIResponse[catalogapp.ProductDetailResponse]
// @Failure      404 {object} ErrorResponse
// @Router       /catalog/products/{slug} [get]
func (h *CatalogHandler) GetProduct(c *gin.Context) {
	resp, err := h.products.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// RelatedProducts godoc
// @ID           listRelatedProducts
// @Summary      Related products
// @Description  Other products from the same category
// @Tags         catalog
// @Produce      json
// @Param        slug path string true "Product slug"
// @Success      200 {object} APIResponse[[]catalogapp.ProductResponse]
// @Failure      404 {object} ErrorResponse
// @Router       /catalog/products/{slug}/related [get]
func (h *CatalogHandler) RelatedProducts(c *gin.Context) {
	resp, err := h.products.Related(c.Request.Context(), c.Param("slug"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// ProductReviews godoc
// @ID           listProductReviews
// @Summary      Product reviews
// @Tags         catalog
// @Produce      json
// @Param        slug path string true "Product slug"
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20)
// @Success      200 {object} APIResponse[engagement.ReviewListResponse]
// @Failure      404 {object} ErrorResponse
// @Router       /catalog/products/{slug}/reviews [get]
func (h *CatalogHandler) ProductReviews(c *gin.Context) {
	var f engagement.ReviewListFilter
	if !h.bindQuery(c, &f) {
		return
	}
	resp, err := h.reviews.ListForProductSlug(c.Request.Context(), c.Param("slug"), f)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, resp, resp.Total, f.Page, f.PageSize)
}

// ListCategories godoc
// @ID           listCategories
// @Summary      Category tree
// @Description  Top-level categories with their subcategories and product counts
// @Tags         catalog
// @Produce      json
// @Success      200 {object} APIResponse[[]catalogapp.CategoryTreeNode]
// @Router       /catalog/categories [get]
func (h *CatalogHandler) ListCategories(c *gin.Context) {
	resp, err := h.categories.Tree(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}
