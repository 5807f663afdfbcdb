package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/MaryEddythe/Lustrea/internal/audit"
	"github.com/MaryEddythe/Lustrea/internal/httperr"
	"github.com/MaryEddythe/Lustrea/internal/httpresp"
	"github.com/MaryEddythe/Lustrea/internal/middleware"
	"github.com/MaryEddythe/Lustrea/internal/models"
)

type ServiceHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewServiceHandler(db *gorm.DB, dispatcher *audit.Dispatcher) *ServiceHandler {
	return &ServiceHandler{db: db, audit: dispatcher}
}

type CreateServiceRequest struct {
	Name        string   `json:"name" binding:"required,max=100"`
	Category    string   `json:"category" binding:"required,max=50"`
	Description string   `json:"description" binding:"max=1000"`
	Price       float64  `json:"price" binding:"required,gt=0"`
	Duration    int      `json:"duration" binding:"required,gt=0"`
	Features    []string `json:"features"`
	ImageURL    string   `json:"image_url" binding:"omitempty,url,max=500"`
	Active      *bool    `json:"active"`
}

type UpdateServiceRequest struct {
	Name        *string  `json:"name" binding:"omitempty,max=100"`
	Category    *string  `json:"category" binding:"omitempty,max=50"`
	Description *string  `json:"description" binding:"omitempty,max=1000"`
	Price       *float64 `json:"price" binding:"omitempty,gt=0"`
	Duration    *int     `json:"duration" binding:"omitempty,gt=0"`
	Features    []string `json:"features"`
	ImageURL    *string  `json:"image_url" binding:"omitempty,url,max=500"`
	Active      *bool    `json:"active"`
}

// List returns every service, inactive ones included, for admin screens.
func (h *ServiceHandler) List(c *gin.Context) {
	var services []models.Service
	if err := h.db.Order("category ASC").Order("name ASC").Find(&services).Error; err != nil {
		httperr.Internal(c, "Failed to retrieve services")
		return
	}

	httpresp.OK(c, services, "Services retrieved successfully")
}

func (h *ServiceHandler) Create(c *gin.Context) {
	var req CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.ValidationFailed(c, map[string]string{"body": err.Error()})
		return
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}

	service := models.Service{
		Name:        req.Name,
		Category:    req.Category,
		Description: req.Description,
		Price:       req.Price,
		DurationMin: req.Duration,
		Features:    req.Features,
		ImageURL:    req.ImageURL,
		Active:      active,
	}

	if err := h.db.Create(&service).Error; err != nil {
		httperr.Internal(c, "Failed to create service")
		return
	}

	adminID := c.MustGet(middleware.ContextAdminID).(uint)
	h.audit.Dispatch(audit.Event{
		AdminID:  &adminID,
		Action:   "service_created",
		Entity:   "service",
		EntityID: &service.ID,
	})

	httpresp.Created(c, service, "Service created successfully")
}

func (h *ServiceHandler) Update(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var service models.Service
	if err := h.db.First(&service, id).Error; err != nil {
		httperr.NotFound(c, "Service not found")
		return
	}

	var req UpdateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.ValidationFailed(c, map[string]string{"body": err.Error()})
		return
	}

	if req.Name != nil {
		service.Name = *req.Name
	}
	if req.Category != nil {
		service.Category = *req.Category
	}
	if req.Description != nil {
		service.Description = *req.Description
	}
	if req.Price != nil {
		service.Price = *req.Price
	}
	if req.Duration != nil {
		service.DurationMin = *req.Duration
	}
	if req.Features != nil {
		service.Features = req.Features
	}
	if req.ImageURL != nil {
		service.ImageURL = *req.ImageURL
	}
	if req.Active != nil {
		service.Active = *req.Active
	}

	if err := h.db.Save(&service).Error; err != nil {
		httperr.Internal(c, "Failed to update service")
		return
	}

	adminID := c.MustGet(middleware.ContextAdminID).(uint)
	h.audit.Dispatch(audit.Event{
		AdminID:  &adminID,
		Action:   "service_updated",
		Entity:   "service",
		EntityID: &service.ID,
	})

	httpresp.OK(c, service, "Service updated successfully")
}

// Delete deactivates a service that has appointments and removes one
// that never had any. Past bookings keep their service reference.
func (h *ServiceHandler) Delete(c *gin.Context) {
	adminID := c.MustGet(middleware.ContextAdminID).(uint)

	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var service models.Service
	if err := h.db.First(&service, id).Error; err != nil {
		httperr.NotFound(c, "Service not found")
		return
	}

	var count int64
	if err := h.db.Model(&models.Appointment{}).
		Where("service_id = ?", service.ID).
		Count(&count).Error; err != nil {
		httperr.Internal(c, "Failed to delete service")
		return
	}

	if count > 0 {
		service.Active = false
		if err := h.db.Save(&service).Error; err != nil {
			httperr.Internal(c, "Failed to deactivate service")
			return
		}

		h.audit.Dispatch(audit.Event{
			AdminID:  &adminID,
			Action:   "service_deactivated",
			Entity:   "service",
			EntityID: &service.ID,
		})

		httpresp.OK(c, service, "Service has existing appointments and was deactivated instead")
		return
	}

	if err := h.db.Delete(&service).Error; err != nil {
		httperr.Internal(c, "Failed to delete service")
		return
	}

	h.audit.Dispatch(audit.Event{
		AdminID:  &adminID,
		Action:   "service_deleted",
		Entity:   "service",
		EntityID: &service.ID,
	})

	httpresp.OK(c, nil, "Service deleted successfully")
}
