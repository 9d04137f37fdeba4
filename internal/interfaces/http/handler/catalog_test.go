package handler

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	catalogapp "github.com/renztrending/backend/internal/application/catalog"
	"github.com/renztrending/backend/internal/application/engagement"
	"github.com/renztrending/backend/internal/domain/shared"
	"github.com/renztrending/backend/internal/interfaces/http/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type catalogFixture struct {
	products   *MockProductService
	categories *MockCategoryService
	reviews    *MockReviewService
	router     *gin.Engine
}

func setupCatalogRouter() catalogFixture {
	f := catalogFixture{
		products:   new(MockProductService),
		categories: new(MockCategoryService),
		reviews:    new(MockReviewService),
	}
	h := NewCatalogHandler(f.products, f.categories, f.reviews)
	f.router = gin.New()
	f.router.GET("/catalog/home", h.Home)
	f.router.GET("/catalog/products", h.ListProducts)
	f.router.GET("/catalog/products/:slug", h.GetProduct)
	f.router.GET("/catalog/products/:slug/related", h.RelatedProducts)
	f.router.GET("/catalog/products/:slug/reviews", h.ProductReviews)
	f.router.GET("/catalog/categories", h.ListCategories)
	return f
}

func TestCatalogHandler_ListProducts(t *testing.T) {
	f := setupCatalogRouter()
	items := []catalogapp.ProductResponse{{ID: uuid.New(), Name: "Oversized Tee", Slug: "oversized-tee"}}

	f.products.On("List", mock.Anything, mock.MatchedBy(func(filter catalogapp.ProductListFilter) bool {
		return filter.Search == "tee" &&
			filter.Category == "men" &&
			filter.Sort == "price_asc" &&
			filter.Page == 2 &&
			filter.MinPrice != nil && filter.MinPrice.Equal(decimal.NewFromInt(299)) &&
			filter.MaxPrice != nil && filter.MaxPrice.Equal(decimal.RequireFromString("999.50"))
	})).Return(items, int64(41), nil)

	w := doJSON(f.router, http.MethodGet,
		"/catalog/products?search=tee&category=men&sort=price_asc&page=2&min_price=299&max_price=999.50", nil)

	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	require.NotNil(t, resp.Meta)
	assert.Equal(t, int64(41), resp.Meta.Total)
	assert.Equal(t, 2, resp.Meta.Page)
	assert.Equal(t, dto.DefaultPageSize, resp.Meta.PageSize)
	f.products.AssertExpectations(t)
}

func TestCatalogHandler_ListProductsRejectsBadFilters(t *testing.T) {
	tests := []struct {
		name  string
		query string
	}{
		{"non numeric price", "min_price=cheap"},
		{"negative price", "max_price=-1"},
		{"inverted range", "min_price=500&max_price=100"},
		{"unknown sort", "sort=random"},
		{"page size too large", "page_size=1000"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := setupCatalogRouter()
			w := doJSON(f.router, http.MethodGet, "/catalog/products?"+tt.query, nil)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			f.products.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
		})
	}
}

func TestCatalogHandler_GetProduct(t *testing.T) {
	f := setupCatalogRouter()
	detail := &catalogapp.ProductDetailResponse{
		ProductResponse: catalogapp.ProductResponse{Name: "Oversized Tee", Slug: "oversized-tee"},
	}
	f.products.On("GetBySlug", mock.Anything, "oversized-tee").Return(detail, nil)
	f.products.On("GetBySlug", mock.Anything, "missing").Return(nil, shared.NewNotFoundError("Product not found"))

	w := doJSON(f.router, http.MethodGet, "/catalog/products/oversized-tee", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(f.router, http.MethodGet, "/catalog/products/missing", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, dto.ErrCodeNotFound, decodeResponse(t, w).Error.Code)
}

func TestCatalogHandler_RelatedProducts(t *testing.T) {
	f := setupCatalogRouter()
	f.products.On("Related", mock.Anything, "oversized-tee").Return([]catalogapp.ProductResponse{{Slug: "boxy-tee"}}, nil)

	w := doJSON(f.router, http.MethodGet, "/catalog/products/oversized-tee/related", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "boxy-tee")
}

func TestCatalogHandler_ProductReviews(t *testing.T) {
	f := setupCatalogRouter()
	list := &engagement.ReviewListResponse{
		Items:         []engagement.ReviewResponse{{Rating: 5, Comment: "Great fit"}},
		Total:         1,
		AverageRating: decimal.NewFromInt(5),
	}
	f.reviews.On("ListForProductSlug", mock.Anything, "oversized-tee", engagement.ReviewListFilter{Page: 1}).Return(list, nil)

	w := doJSON(f.router, http.MethodGet, "/catalog/products/oversized-tee/reviews?page=1", nil)

	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	require.NotNil(t, resp.Meta)
	assert.Equal(t, int64(1), resp.Meta.Total)
	assert.Contains(t, w.Body.String(), "Great fit")
}

func TestCatalogHandler_ListCategories(t *testing.T) {
	f := setupCatalogRouter()
	tree := []catalogapp.CategoryTreeNode{{
		CategoryResponse: catalogapp.CategoryResponse{Name: "Men", Slug: "men", TotalProducts: 12},
		Children: []catalogapp.CategoryTreeNode{{
			CategoryResponse: catalogapp.CategoryResponse{Name: "T-Shirts", Slug: "t-shirts", TotalProducts: 7},
		}},
	}}
	f.categories.On("Tree", mock.Anything).Return(tree, nil)

	w := doJSON(f.router, http.MethodGet, "/catalog/categories", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "t-shirts")
}

func TestCatalogHandler_UnexpectedErrorIsOpaque(t *testing.T) {
	f := setupCatalogRouter()
	f.categories.On("Tree", mock.Anything).Return(nil, assert.AnError)

	w := doJSON(f.router, http.MethodGet, "/catalog/categories", nil)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, internalErrorMessage, decodeResponse(t, w).Error.Message)
}

func TestCatalogHandler_Home(t *testing.T) {
	f := setupCatalogRouter()
	tee := catalogapp.ProductResponse{ID: uuid.New(), Name: "Oversized Tee", Slug: "oversized-tee", Badge: "Hot", ImageURL: "/media/tee.webp"}
	f.products.On("Home", mock.Anything).Return(&catalogapp.HomeResponse{
		Categories: []catalogapp.CategoryResponse{{Name: "Men", Slug: "men"}},
		NewlyAdded: []catalogapp.ProductResponse{tee},
		HotRelease: []catalogapp.ProductResponse{tee},
		Trendy:     []catalogapp.ProductResponse{tee},
		BestDeal:   []catalogapp.ProductResponse{},
	}, nil)

	w := doJSON(f.router, http.MethodGet, "/catalog/home", nil)

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	for _, key := range []string{`"newly_added"`, `"hot_release"`, `"trendy"`, `"best_deal"`, `"categories"`} {
		assert.Contains(t, body, key)
	}
	assert.Contains(t, body, `"badge":"Hot"`)
	assert.Contains(t, body, `"image_url":"/media/tee.webp"`)
}
