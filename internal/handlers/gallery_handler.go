package handlers

import (
	"bytes"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/MaryEddythe/Lustrea/internal/httperr"
	"github.com/MaryEddythe/Lustrea/internal/httpresp"
	"github.com/MaryEddythe/Lustrea/internal/infra/storage"
	"github.com/MaryEddythe/Lustrea/internal/models"
)

type GalleryHandler struct {
	db       *gorm.DB
	uploader storage.Uploader
	baseURL  string
}

func NewGalleryHandler(db *gorm.DB, uploader storage.Uploader, baseURL string) *GalleryHandler {
	return &GalleryHandler{
		db:       db,
		uploader: uploader,
		baseURL:  strings.TrimRight(baseURL, "/"),
	}
}

// ------------------------------
// Requests
// ------------------------------

type CreateGalleryRequest struct {
	Title       string `json:"title" binding:"required,max=100"`
	Category    string `json:"category" binding:"required,max=50"`
	ImageURL    string `json:"image_url" binding:"required,url,max=500"`
	Description string `json:"description" binding:"max=500"`
	Featured    bool   `json:"featured"`
	SortOrder   *int   `json:"sort_order"`
}

type UpdateGalleryRequest struct {
	Title       *string `json:"title" binding:"omitempty,max=100"`
	Category    *string `json:"category" binding:"omitempty,max=50"`
	ImageURL    *string `json:"image_url" binding:"omitempty,url,max=500"`
	Description *string `json:"description" binding:"omitempty,max=500"`
	Featured    *bool   `json:"featured"`
	SortOrder   *int    `json:"sort_order"`
}

type SortOrderRequest struct {
	Items []struct {
		ID        uint `json:"id" binding:"required"`
		SortOrder int  `json:"sort_order"`
	} `json:"items" binding:"required,dive"`
}

// ------------------------------
// Public
// ------------------------------

func (h *GalleryHandler) List(c *gin.Context) {
	q := h.db.Model(&models.Gallery{})

	if category := c.Query("category"); category != "" && !strings.EqualFold(category, "all") {
		q = q.Where("category = ?", category)
	}
	if c.Query("featured") == "true" {
		q = q.Where("featured = true")
	}
	if search := c.Query("search"); search != "" {
		like := "%" + search + "%"
		q = q.Where("title ILIKE ? OR description ILIKE ?", like, like)
	}

	var items []models.Gallery
	if err := q.
		Order("sort_order ASC").
		Order("created_at DESC").
		Find(&items).Error; err != nil {
		httperr.Internal(c, "Failed to retrieve gallery")
		return
	}

	httpresp.OK(c, items, "Gallery items retrieved successfully")
}

func (h *GalleryHandler) Categories(c *gin.Context) {
	var categories []string
	if err := h.db.
		Model(&models.Gallery{}).
		Distinct("category").
		Order("category ASC").
		Pluck("category", &categories).Error; err != nil {
		httperr.Internal(c, "Failed to retrieve categories")
		return
	}

	httpresp.OK(c, categories, "Categories retrieved successfully")
}

func (h *GalleryHandler) Featured(c *gin.Context) {
	var items []models.Gallery
	if err := h.db.
		Where("featured = true").
		Order("sort_order ASC").
		Order("created_at DESC").
		Find(&items).Error; err != nil {
		httperr.Internal(c, "Failed to retrieve featured items")
		return
	}

	httpresp.OK(c, items, "Featured gallery items retrieved successfully")
}

func (h *GalleryHandler) Get(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var item models.Gallery
	if err := h.db.First(&item, id).Error; err != nil {
		httperr.NotFound(c, "Gallery item not found")
		return
	}

	httpresp.OK(c, item, "Gallery item retrieved successfully")
}

// ------------------------------
// Admin
// ------------------------------

func (h *GalleryHandler) Create(c *gin.Context) {
	var req CreateGalleryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.ValidationFailed(c, map[string]string{"body": err.Error()})
		return
	}

	item := models.Gallery{
		Title:       req.Title,
		Category:    req.Category,
		ImageURL:    req.ImageURL,
		Description: req.Description,
		Featured:    req.Featured,
	}

	if req.SortOrder != nil {
		item.SortOrder = *req.SortOrder
	} else {
		var max int
		h.db.Model(&models.Gallery{}).
			Select("COALESCE(MAX(sort_order), 0)").
			Scan(&max)
		item.SortOrder = max + 1
	}

	if err := h.db.Create(&item).Error; err != nil {
		httperr.Internal(c, "Failed to create gallery item")
		return
	}

	httpresp.Created(c, item, "Gallery item created successfully")
}

// Upload stores a full-size gallery image plus a webp thumbnail and
// creates the record pointing at both.
func (h *GalleryHandler) Upload(c *gin.Context) {
	title := c.PostForm("title")
	category := c.PostForm("category")
	if title == "" || category == "" {
		httperr.ValidationFailed(c, map[string]string{
			"title":    "Title is required",
			"category": "Category is required",
		})
		return
	}

	fh, err := c.FormFile("image")
	if err != nil {
		httperr.ValidationFailed(c, map[string]string{"image": "Image file is required"})
		return
	}

	ctx := c.Request.Context()

	ref, err := storeImage(ctx, h.uploader, fh, "gallery")
	if err != nil {
		mapUploadError(c, err)
		return
	}

	item := models.Gallery{
		Title:       title,
		Category:    category,
		ImageURL:    h.baseURL + "/" + ref,
		Description: c.PostForm("description"),
		Featured:    c.PostForm("featured") == "true",
	}

	// Thumbnail generation is best effort; the full image is already
	// stored.
	if f, err := fh.Open(); err == nil {
		if thumb, err := storage.WebpThumbnail(f); err == nil {
			thumbRef, err := h.uploader.Put(ctx, storage.UploadInput{
				Prefix:      "gallery/thumbs",
				Filename:    strings.TrimSuffix(fh.Filename, filepath.Ext(fh.Filename)) + ".webp",
				ContentType: "image/webp",
				Body:        bytes.NewReader(thumb),
			})
			if err == nil {
				item.ThumbURL = h.baseURL + "/" + thumbRef
			}
		}
		f.Close()
	}

	var max int
	h.db.Model(&models.Gallery{}).
		Select("COALESCE(MAX(sort_order), 0)").
		Scan(&max)
	item.SortOrder = max + 1

	if err := h.db.Create(&item).Error; err != nil {
		httperr.Internal(c, "Failed to create gallery item")
		return
	}

	httpresp.Created(c, item, "Gallery item created successfully")
}

func (h *GalleryHandler) Update(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var item models.Gallery
	if err := h.db.First(&item, id).Error; err != nil {
		httperr.NotFound(c, "Gallery item not found")
		return
	}

	var req UpdateGalleryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.ValidationFailed(c, map[string]string{"body": err.Error()})
		return
	}

	if req.Title != nil {
		item.Title = *req.Title
	}
	if req.Category != nil {
		item.Category = *req.Category
	}
	if req.ImageURL != nil {
		item.ImageURL = *req.ImageURL
	}
	if req.Description != nil {
		item.Description = *req.Description
	}
	if req.Featured != nil {
		item.Featured = *req.Featured
	}
	if req.SortOrder != nil {
		item.SortOrder = *req.SortOrder
	}

	if err := h.db.Save(&item).Error; err != nil {
		httperr.Internal(c, "Failed to update gallery item")
		return
	}

	httpresp.OK(c, item, "Gallery item updated successfully")
}

func (h *GalleryHandler) Delete(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var item models.Gallery
	if err := h.db.First(&item, id).Error; err != nil {
		httperr.NotFound(c, "Gallery item not found")
		return
	}

	if err := h.db.Delete(&item).Error; err != nil {
		httperr.Internal(c, "Failed to delete gallery item")
		return
	}

	httpresp.OK(c, nil, "Gallery item deleted successfully")
}

func (h *GalleryHandler) UpdateSortOrder(c *gin.Context) {
	var req SortOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.ValidationFailed(c, map[string]string{"items": err.Error()})
		return
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		for _, it := range req.Items {
			if err := tx.Model(&models.Gallery{}).
				Where("id = ?", it.ID).
				Update("sort_order", it.SortOrder).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		httperr.Internal(c, "Failed to update sort order")
		return
	}

	httpresp.OK(c, nil, "Sort order updated successfully")
}
