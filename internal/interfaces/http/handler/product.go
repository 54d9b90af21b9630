package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	catalogapp "github.com/ikpixels/marketplace/internal/application/catalog"
)

// CatalogUseCases is the product side of the catalog service
type CatalogUseCases interface {
	ListMarketplace(ctx context.Context, q catalogapp.MarketplaceQuery) (*catalogapp.MarketplacePage, error)
	GetProductDetail(ctx context.Context, id uuid.UUID) (*catalogapp.ProductResponse, error)
	GetProduct(ctx context.Context, id uuid.UUID) (*catalogapp.ProductResponse, error)
	CreateProduct(ctx context.Context, req catalogapp.ProductRequest) (*catalogapp.ProductResponse, error)
	UpdateProduct(ctx context.Context, id uuid.UUID, req catalogapp.ProductRequest) (*catalogapp.ProductResponse, error)
	DeleteProduct(ctx context.Context, id uuid.UUID) error
	CreateUploadURL(ctx context.Context, req catalogapp.UploadURLRequest) (*catalogapp.UploadURLResponse, error)
	ProductDownloadURL(ctx context.Context, accountID, productID uuid.UUID) (*catalogapp.DownloadResponse, error)
}

// ProductHandler handles marketplace and product administration requests
type ProductHandler struct {
	BaseHandler
	catalog CatalogUseCases
}

// NewProductHandler creates a new product handler
func NewProductHandler(catalog CatalogUseCases) *ProductHandler {
	return &ProductHandler{catalog: catalog}
}

// ListMarketplace godoc
// @ID           listMarketplace
// @Summary      Browse the marketplace
// @Description  Returns one page of products, filtered by search text and category
// @Tags         marketplace
// @Produce      json
// @Param        search   query string false "Search text"
// @Param        category query string false "Category" Enums(code, apps, websites, templates)
// @Param        page     query int    false "Page number" minimum(1)
// @Success      200 {object} APIResponse[catalogapp.MarketplacePage]
// @Router       /marketplace/products [get]
func (h *ProductHandler) ListMarketplace(c *gin.Context) {
	var q catalogapp.MarketplaceQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.BindError(c, err)
		return
	}

	page, err := h.catalog.ListMarketplace(c.Request.Context(), q)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, page)
}

// GetProductDetail godoc
// @ID           getMarketplaceProduct
// @Summary      Product detail
// @Description  Returns a product and counts the view
// @Tags         marketplace
// @Produce      json
// @Param        id path string true "Product ID" format(uuid)
// @Success      200 {object} APIResponse[catalogapp.ProductResponse]
// @Failure      404 {object} ErrorResponse
// @Router       /marketplace/products/{id} [get]
func (h *ProductHandler) GetProductDetail(c *gin.Context) {
	id, err := pathUUID(c, "id")
	if err != nil {
		h.HandleError(c, err)
		return
	}

	product, err := h.catalog.GetProductDetail(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, product)
}

// Download godoc
// @ID           downloadProduct
// @Summary      Presigned download link for a purchased product
// @Tags         marketplace
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Product ID" format(uuid)
// @Success      200 {object} APIResponse[catalogapp.DownloadResponse]
// @Failure      403 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /marketplace/products/{id}/download [get]
func (h *ProductHandler) Download(c *gin.Context) {
	buyer, err := accountID(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	id, err := pathUUID(c, "id")
	if err != nil {
		h.HandleError(c, err)
		return
	}

	link, err := h.catalog.ProductDownloadURL(c.Request.Context(), buyer, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, link)
}

// GetProduct godoc
// @ID           adminGetProduct
// @Summary      Get a product without counting a view
// @Tags         admin-products
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Product ID" format(uuid)
// @Success      200 {object} APIResponse[catalogapp.ProductResponse]
// @Failure      404 {object} ErrorResponse
// @Router       /admin/products/{id} [get]
func (h *ProductHandler) GetProduct(c *gin.Context) {
	id, err := pathUUID(c, "id")
	if err != nil {
		h.HandleError(c, err)
		return
	}

	product, err := h.catalog.GetProduct(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, product)
}

// CreateProduct godoc
// @ID           adminCreateProduct
// @Summary      Create a product
// @Tags         admin-products
// @Accept       json,x-www-form-urlencoded
// @Produce      json
// @Security     BearerAuth
// @Param        request body catalogapp.ProductRequest true "Product fields"
// @Success      201 {object} APIResponse[catalogapp.ProductResponse]
// @Failure      400 {object} ErrorResponse
// @Router       /admin/products [post]
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var req catalogapp.ProductRequest
	if err := c.ShouldBind(&req); err != nil {
		h.BindError(c, err)
		return
	}

	product, err := h.catalog.CreateProduct(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, product)
}

// UpdateProduct godoc
// @ID           adminUpdateProduct
// @Summary      Replace a product's fields
// @Tags         admin-products
// @Accept       json,x-www-form-urlencoded
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Product ID" format(uuid)
// @Param        request body catalogapp.ProductRequest true "Product fields"
// @Success      200 {object} APIResponse[catalogapp.ProductResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Router       /admin/products/{id} [put]
func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	id, err := pathUUID(c, "id")
	if err != nil {
		h.HandleError(c, err)
		return
	}
	var req catalogapp.ProductRequest
	if err := c.ShouldBind(&req); err != nil {
		h.BindError(c, err)
		return
	}

	product, err := h.catalog.UpdateProduct(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, product)
}

// DeleteProduct godoc
// @ID           adminDeleteProduct
// @Summary      Delete a product
// @Tags         admin-products
// @Security     BearerAuth
// @Param        id path string true "Product ID" format(uuid)
// @Success      204
// @Failure      404 {object} ErrorResponse
// @Router       /admin/products/{id} [delete]
func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	id, err := pathUUID(c, "id")
	if err != nil {
		h.HandleError(c, err)
		return
	}
	if err := h.catalog.DeleteProduct(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// CreateUploadURL godoc
// @ID           adminCreateUploadURL
// @Summary      Presigned upload for a product image or deliverable
// @Tags         admin-products
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body catalogapp.UploadURLRequest true "Object to upload"
// @Success      200 {object} APIResponse[catalogapp.UploadURLResponse]
// @Failure      400 {object} ErrorResponse
// @Router       /admin/products/upload-url [post]
func (h *ProductHandler) CreateUploadURL(c *gin.Context) {
	var req catalogapp.UploadURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	upload, err := h.catalog.CreateUploadURL(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, upload)
}
