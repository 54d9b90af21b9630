package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	catalogapp "github.com/ikpixels/marketplace/internal/application/catalog"
	"github.com/ikpixels/marketplace/internal/domain/shared"
)

// GalleryUseCases is the showcase side of the catalog service
type GalleryUseCases interface {
	ListGallery(ctx context.Context) ([]catalogapp.GalleryItemResponse, error)
	Home(ctx context.Context) (*catalogapp.HomeResponse, error)
	ListGalleryAdmin(ctx context.Context, filter shared.Filter) (*shared.Paginated[catalogapp.GalleryItemResponse], error)
	GetGalleryItem(ctx context.Context, id uuid.UUID) (*catalogapp.GalleryItemResponse, error)
	CreateGalleryItem(ctx context.Context, req catalogapp.GalleryRequest) (*catalogapp.GalleryItemResponse, error)
	UpdateGalleryItem(ctx context.Context, id uuid.UUID, req catalogapp.GalleryRequest) (*catalogapp.GalleryItemResponse, error)
	DeleteGalleryItem(ctx context.Context, id uuid.UUID) error
}

// GalleryListQuery pages the admin gallery
type GalleryListQuery struct {
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string `form:"order_by" binding:"omitempty,oneof=created_at title"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

func (q GalleryListQuery) filter() shared.Filter {
	f := shared.DefaultFilter()
	if q.Page > 0 {
		f.Page = q.Page
	}
	if q.PageSize > 0 {
		f.PageSize = q.PageSize
	}
	if q.OrderBy != "" {
		f.OrderBy = q.OrderBy
	}
	if q.OrderDir != "" {
		f.OrderDir = q.OrderDir
	}
	return f
}

// GalleryHandler serves the gallery, the home feed and gallery administration
type GalleryHandler struct {
	BaseHandler
	gallery GalleryUseCases
}

// NewGalleryHandler creates a new gallery handler
func NewGalleryHandler(gallery GalleryUseCases) *GalleryHandler {
	return &GalleryHandler{gallery: gallery}
}

// List godoc
// @ID           listGallery
// @Summary      Showcase gallery
// @Description  Returns the twelve newest active gallery items
// @Tags         marketplace
// @Produce      json
// @Success      200 {object} APIResponse[[]catalogapp.GalleryItemResponse]
// @Router       /gallery [get]
func (h *GalleryHandler) List(c *gin.Context) {
	items, err := h.gallery.ListGallery(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, items)
}

// Home godoc
// @ID           getHome
// @Summary      Landing page feed
// @Description  Returns the newest products and the first active gallery items
// @Tags         marketplace
// @Produce      json
// @Success      200 {object} APIResponse[catalogapp.HomeResponse]
// @Router       /home [get]
func (h *GalleryHandler) Home(c *gin.Context) {
	home, err := h.gallery.Home(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, home)
}

// AdminList godoc
// @ID           adminListGallery
// @Summary      List every gallery item
// @Tags         admin-gallery
// @Produce      json
// @Security     BearerAuth
// @Param        page      query int    false "Page number"
// @Param        page_size query int    false "Page size"
// @Param        order_by  query string false "Sort field" Enums(created_at, title)
// @Param        order_dir query string false "Sort direction" Enums(asc, desc)
// @Success      200 {object} APIResponse[[]catalogapp.GalleryItemResponse]
// @Router       /admin/gallery [get]
func (h *GalleryHandler) AdminList(c *gin.Context) {
	var q GalleryListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.BindError(c, err)
		return
	}

	page, err := h.gallery.ListGalleryAdmin(c.Request.Context(), q.filter())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// Get godoc
// @ID           adminGetGalleryItem
// @Summary      Get a gallery item
// @Tags         admin-gallery
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Gallery item ID" format(uuid)
// @Success      200 {object} APIResponse[catalogapp.GalleryItemResponse]
// @Failure      404 {object} ErrorResponse
// @Router       /admin/gallery/{id} [get]
func (h *GalleryHandler) Get(c *gin.Context) {
	id, err := pathUUID(c, "id")
	if err != nil {
		h.HandleError(c, err)
		return
	}

	item, err := h.gallery.GetGalleryItem(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, item)
}

// Create godoc
// @ID           adminCreateGalleryItem
// @Summary      Create a gallery item
// @Description  media_key is a key from /admin/products/upload-url with kind=gallery, or an absolute URL
// @Tags         admin-gallery
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body catalogapp.GalleryRequest true "Gallery fields"
// @Success      201 {object} APIResponse[catalogapp.GalleryItemResponse]
// @Failure      400 {object} ErrorResponse
// @Router       /admin/gallery [post]
func (h *GalleryHandler) Create(c *gin.Context) {
	var req catalogapp.GalleryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	item, err := h.gallery.CreateGalleryItem(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, item)
}

// Update godoc
// @ID           adminUpdateGalleryItem
// @Summary      Replace a gallery item's fields
// @Tags         admin-gallery
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Gallery item ID" format(uuid)
// @Param        request body catalogapp.GalleryRequest true "Gallery fields"
// @Success      200 {object} APIResponse[catalogapp.GalleryItemResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /admin/gallery/{id} [put]
func (h *GalleryHandler) Update(c *gin.Context) {
	id, err := pathUUID(c, "id")
	if err != nil {
		h.HandleError(c, err)
		return
	}
	var req catalogapp.GalleryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	item, err := h.gallery.UpdateGalleryItem(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, item)
}

// Delete godoc
// @ID           adminDeleteGalleryItem
// @Summary      Delete a gallery item and its stored media
// @Tags         admin-gallery
// @Security     BearerAuth
// @Param        id path string true "Gallery item ID" format(uuid)
// @Success      204
// @Failure      404 {object} ErrorResponse
// @Router       /admin/gallery/{id} [delete]
func (h *GalleryHandler) Delete(c *gin.Context) {
	id, err := pathUUID(c, "id")
	if err != nil {
		h.HandleError(c, err)
		return
	}
	if err := h.gallery.DeleteGalleryItem(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
