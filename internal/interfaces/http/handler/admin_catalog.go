package handler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	catalogapp "github.com/renztrending/backend/internal/application/catalog"
	"github.com/renztrending/backend/internal/interfaces/http/dto"
)

const (
	// maxImageSize bounds a single product image upload
	maxImageSize = 8 << 20
	// maxStockImportSize bounds a stock CSV upload
	maxStockImportSize = 2 << 20
)

// AttributeService manages colors and the size chart
type AttributeService interface {
	ListColors(ctx context.Context) ([]catalogapp.ColorResponse, error)
	CreateColor(ctx context.Context, req catalogapp.CreateColorRequest) (*catalogapp.ColorResponse, error)
	ListSizes(ctx context.Context) ([]catalogapp.SizeResponse, error)
	CreateSize(ctx context.Context, req catalogapp.CreateSizeRequest) (*catalogapp.SizeResponse, error)
}

// InventoryService manages stock levels
type InventoryService interface {
	Summary(ctx context.Context) (*catalogapp.InventorySummaryResponse, error)
	UpdateStock(ctx context.Context, productID uuid.UUID, req catalogapp.StockUpdateRequest) (*catalogapp.ProductResponse, error)
	BulkUpdate(ctx context.Context, req catalogapp.BulkStockUpdateRequest) (*catalogapp.BulkStockUpdateResponse, error)
	ImportStock(ctx context.Context, r io.Reader) (*catalogapp.StockImportResponse, error)
}

// AdminCatalogHandler serves product, category, attribute and stock management
type AdminCatalogHandler struct {
	BaseHandler
	products   ProductService
	categories CategoryService
	attributes AttributeService
	inventory  InventoryService
}

// NewAdminCatalogHandler creates a new AdminCatalogHandler
func NewAdminCatalogHandler(products ProductService, categories CategoryService, attributes AttributeService, inventory InventoryService) *AdminCatalogHandler {
	return &AdminCatalogHandler{
		products:   products,
		categories: categories,
		attributes: attributes,
		inventory:  inventory,
	}
}

// ListProducts godoc
// @ID           adminListProducts
// @Summary      List products
// @Tags         admin
// @Produce      json
// @Param        search query string false "Search"
// @Param        category query string false "Category slug"
// @Param        sort query string false "Sort"
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20)
// @Success      200 {object} APIResponse[[]catalogapp.ProductResponse]
// @Security     BearerAuth
// @Router       /admin/products [get]
func (h *AdminCatalogHandler) ListProducts(c *gin.Context) {
	var f catalogapp.ProductListFilter
	if !h.bindQuery(c, &f) {
		return
	}
	items, total, err := h.products.List(c.Request.Context(), f)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, items, total, f.Page, f.PageSize)
}

// CreateProduct godoc
// @ID           adminCreateProduct
// @Summary      Create a product
// @Description  The slug is derived from the name and made unique
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        request body catalogapp.CreateProductRequest true "Product"
// @Success      201 {object} APIResponse[catalogapp.ProductDetailResponse]
// @Failure      400 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /admin/products [post]
func (h *AdminCatalogHandler) CreateProduct(c *gin.Context) {
	var req catalogapp.CreateProductRequest
	if !h.bindJSON(c, &req) {
		return
	}
	resp, err := h.products.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// UpdateProduct godoc
// @ID           adminUpdateProduct
// @Summary      Update a product
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        id path string true "Product ID"
// @Param        request body catalogapp.UpdateProductRequest true "Changed fields"
// @Success      200 {object} APIResponse[catalogapp.ProductDetailResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /admin/products/{id} [put]
func (h *AdminCatalogHandler) UpdateProduct(c *gin.Context) {
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}
	var req catalogapp.UpdateProductRequest
	if !h.bindJSON(c, &req) {
		return
	}
	resp, err := h.products.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// AddVariant godoc
// @ID           adminAddVariant
// @Summary      Add a variant
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        id path string true "Product ID"
// @Param        request body catalogapp.AddVariantRequest true "Variant"
// @Success      201 {object} APIResponse[catalogapp.VariantResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /admin/products/{id}/variants [post]
func (h *AdminCatalogHandler) AddVariant(c *gin.Context) {
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}
	var req catalogapp.AddVariantRequest
	if !h.bindJSON(c, &req) {
		return
	}
	resp, err := h.products.AddVariant(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// UploadImage godoc
// @ID           adminUploadProductImage
// @Summary      Upload a product image
// @Tags         admin
// @Accept       multipart/form-data
// @Produce      json
// @Param        id path string true "Product ID"
// @Param        image formData file true "Image file"
// @Param        alt_text formData string false "Alt text"
// @Param        is_primary formData bool false "Make this the primary image"
// @Success      201 {object} APIResponse[catalogapp.ImageResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /admin/products/{id}/images [post]
func (h *AdminCatalogHandler) UploadImage(c *gin.Context) {
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}
	header, err := c.FormFile("image")
	if err != nil {
		h.BadRequest(c, "An image file is required")
		return
	}
	if header.Size > maxImageSize {
		h.Error(c, http.StatusRequestEntityTooLarge, dto.ErrCodePayloadTooLarge, "Image exceeds 8MB")
		return
	}
	isPrimary := false
	if raw := c.PostForm("is_primary"); raw != "" {
		if isPrimary, err = strconv.ParseBool(raw); err != nil {
			h.BadRequest(c, "Invalid is_primary")
			return
		}
	}

	file, err := header.Open()
	if err != nil {
		h.BadRequest(c, "Could not read the uploaded image")
		return
	}
	defer file.Close()

	resp, err := h.products.UploadImage(c.Request.Context(), id, catalogapp.UploadImageRequest{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Body:        file,
		AltText:     c.PostForm("alt_text"),
		IsPrimary:   isPrimary,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// CreateGroup godoc
// @ID           adminCreateProductGroup
// @Summary      Group products
// @Description  Grouped products are shown together on each other's page
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        request body catalogapp.CreateGroupRequest true "Group"
// @Success      201 {object} APIResponse[catalogapp.GroupResponse]
// @Failure      400 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /admin/product-groups [post]
func (h *AdminCatalogHandler) CreateGroup(c *gin.Context) {
	var req catalogapp.CreateGroupRequest
	if !h.bindJSON(c, &req) {
		return
	}
	resp, err := h.products.CreateGroup(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// ListCategories godoc
// @ID           adminListCategories
// @Summary      List categories with product counts
// @Tags         admin
// @Produce      json
// @Success      200 {object} APIResponse[[]catalogapp.CategoryResponse]
// @Security     BearerAuth
// @Router       /admin/categories [get]
func (h *AdminCatalogHandler) ListCategories(c *gin.Context) {
	resp, err := h.categories.List(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// CreateCategory godoc
// @ID           adminCreateCategory
// @Summary      Create a category
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        request body catalogapp.CreateCategoryRequest true "Category"
// @Success      201 {object} APIResponse[catalogapp.CategoryResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /admin/categories [post]
func (h *AdminCatalogHandler) CreateCategory(c *gin.Context) {
	var req catalogapp.CreateCategoryRequest
	if !h.bindJSON(c, &req) {
		return
	}
	resp, err := h.categories.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// ListColors godoc
// @ID           adminListColors
// @Summary      List colors
// @Tags         admin
// @Produce      json
// @Success      200 {object} APIResponse[[]catalogapp.ColorResponse]
// @Security     BearerAuth
// @Router       /admin/colors [get]
func (h *AdminCatalogHandler) ListColors(c *gin.Context) {
	resp, err := h.attributes.ListColors(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// CreateColor godoc
// @ID           adminCreateColor
// @Summary      Create a color
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        request body catalogapp.CreateColorRequest true "Color"
// @Success      201 {object} APIResponse[catalogapp.ColorResponse]
// @Security     BearerAuth
// @Router       /admin/colors [post]
func (h *AdminCatalogHandler) CreateColor(c *gin.Context) {
	var req catalogapp.CreateColorRequest
	if !h.bindJSON(c, &req) {
		return
	}
	resp, err := h.attributes.CreateColor(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// ListSizes godoc
// @ID           adminListSizes
// @Summary      Size chart
// @Tags         admin
// @Produce      json
// @Success      200 {object} APIResponse[[]catalogapp.SizeResponse]
// @Security     BearerAuth
// @Router       /admin/sizes [get]
func (h *AdminCatalogHandler) ListSizes(c *gin.Context) {
	resp, err := h.attributes.ListSizes(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// CreateSize godoc
// @ID           adminCreateSize
// @Summary      Add a size chart row
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        request body catalogapp.CreateSizeRequest true "Size"
// @Success      201 {object} APIResponse[catalogapp.SizeResponse]
// @Security     BearerAuth
// @Router       /admin/sizes [post]
func (h *AdminCatalogHandler) CreateSize(c *gin.Context) {
	var req catalogapp.CreateSizeRequest
	if !h.bindJSON(c, &req) {
		return
	}
	resp, err := h.attributes.CreateSize(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// InventorySummary godoc
// @ID           adminInventorySummary
// @Summary      Stock overview
// @Description  Totals plus the low stock and out of stock products
// @Tags         admin
// @Produce      json
// @Success      200 {object} APIResponse[catalogapp.InventorySummaryResponse]
// @Security     BearerAuth
// @Router       /admin/inventory [get]
func (h *AdminCatalogHandler) InventorySummary(c *gin.Context) {
	resp, err := h.inventory.Summary(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// UpdateStock godoc
// @ID           adminUpdateStock
// @Summary      Set a product's stock
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        id path string true "Product ID"
// @Param        request body catalogapp.StockUpdateRequest true "Stock"
// @Success      200 {object} APIResponse[catalogapp.ProductResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /admin/inventory/{id} [put]
func (h *AdminCatalogHandler) UpdateStock(c *gin.Context) {
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}
	var req catalogapp.StockUpdateRequest
	if !h.bindJSON(c, &req) {
		return
	}
	resp, err := h.inventory.UpdateStock(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// BulkUpdateStock godoc
// @ID           adminBulkUpdateStock
// @Summary      Set the stock of many products
// @Description  All rows are applied in one transaction
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        request body catalogapp.BulkStockUpdateRequest true "Rows"
// @Success      200 {object} APIResponse[catalogapp.BulkStockUpdateResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /admin/inventory/bulk [post]
func (h *AdminCatalogHandler) BulkUpdateStock(c *gin.Context) {
	var req catalogapp.BulkStockUpdateRequest
	if !h.bindJSON(c, &req) {
		return
	}
	resp, err := h.inventory.BulkUpdate(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// ImportStock godoc
// @ID           adminImportStock
// @Summary      Set stock from a CSV file
// @Description  The file needs product_id and stock columns. Any invalid row rejects the whole file.
// @Tags         admin
// @Accept       multipart/form-data
// @Produce      json
// @Param        file formData file true "CSV file"
// @Success      200 {object} APIResponse[catalogapp.StockImportResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      413 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /admin/inventory/import [post]
func (h *AdminCatalogHandler) ImportStock(c *gin.Context) {
	header, err := c.FormFile("file")
	if err != nil {
		h.BadRequest(c, "A CSV file is required")
		return
	}
	if header.Size > maxStockImportSize {
		h.Error(c, http.StatusRequestEntityTooLarge, dto.ErrCodePayloadTooLarge, "CSV file exceeds 2MB")
		return
	}
	file, err := header.Open()
	if err != nil {
		h.BadRequest(c, "Could not read the uploaded file")
		return
	}
	defer file.Close()

	resp, err := h.inventory.ImportStock(c.Request.Context(), file)
	var importErr *catalogapp.StockImportError
	if errors.As(err, &importErr) {
		details := make([]dto.ValidationDetail, len(importErr.Errors))
		for i, rowErr := range importErr.Errors {
			field := "row " + strconv.Itoa(rowErr.Row)
			if rowErr.Column != "" {
				field += " " + rowErr.Column
			}
			details[i] = dto.ValidationDetail{Field: field, Message: rowErr.Message}
		}
		msg := fmt.Sprintf("%d invalid row(s); nothing was imported", importErr.Total)
		c.JSON(http.StatusBadRequest, dto.NewValidationErrorResponse(msg, getRequestID(c), details))
		return
	}
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}
