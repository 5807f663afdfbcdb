package handlers

import (
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domain "github.com/MaryEddythe/Lustrea/internal/domain/appointment"
	"github.com/MaryEddythe/Lustrea/internal/httperr"
	"github.com/MaryEddythe/Lustrea/internal/httpresp"
	"github.com/MaryEddythe/Lustrea/internal/infra/storage"
	"github.com/MaryEddythe/Lustrea/internal/models"
	"github.com/MaryEddythe/Lustrea/internal/timezone"
	ucAppointment "github.com/MaryEddythe/Lustrea/internal/usecase/appointment"
)

////////////////////////////////////////////////////////
// HANDLER
////////////////////////////////////////////////////////

type PublicHandler struct {
	db           *gorm.DB
	uploader     storage.Uploader
	availability *ucAppointment.GetAvailability
	createUC     *ucAppointment.CreateBooking
}

func NewPublicHandler(
	db *gorm.DB,
	uploader storage.Uploader,
	availability *ucAppointment.GetAvailability,
	createUC *ucAppointment.CreateBooking,
) *PublicHandler {
	return &PublicHandler{
		db:           db,
		uploader:     uploader,
		availability: availability,
		createUC:     createUC,
	}
}

////////////////////////////////////////////////////////
// SERVICES
////////////////////////////////////////////////////////

func (h *PublicHandler) ListServices(c *gin.Context) {
	category := strings.TrimSpace(c.Query("category"))

	q := h.db.Where("active = true")
	if category != "" && !strings.EqualFold(category, "all") {
		q = q.Where("LOWER(category) = ?", strings.ToLower(category))
	}

	var services []models.Service
	if err := q.Order("id ASC").Find(&services).Error; err != nil {
		httperr.Internal(c, "Failed to retrieve services")
		return
	}

	httpresp.OK(c, services, "Services retrieved successfully")
}

func (h *PublicHandler) ServiceCategories(c *gin.Context) {
	var categories []string
	if err := h.db.
		Model(&models.Service{}).
		Where("active = true").
		Distinct("category").
		Order("category ASC").
		Pluck("category", &categories).Error; err != nil {
		httperr.Internal(c, "Failed to retrieve categories")
		return
	}

	httpresp.OK(c, categories, "Categories retrieved successfully")
}

func (h *PublicHandler) GetService(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "Invalid service id")
		return
	}

	var service models.Service
	if err := h.db.First(&service, uint(id)).Error; err != nil {
		httperr.NotFound(c, "Service not found")
		return
	}

	httpresp.OK(c, service, "Service retrieved successfully")
}

////////////////////////////////////////////////////////
// AVAILABILITY
////////////////////////////////////////////////////////

func (h *PublicHandler) AvailableSlots(c *gin.Context) {
	dateStr := c.Query("date")
	if dateStr == "" {
		httperr.ValidationFailed(c, map[string]string{"date": "Date is required"})
		return
	}

	date, err := time.ParseInLocation(
		domain.DateLayout,
		dateStr,
		timezone.Location(timezone.DefaultTimezone),
	)
	if err != nil {
		httperr.ValidationFailed(c, map[string]string{"date": "Date must be YYYY-MM-DD"})
		return
	}

	var serviceID uint
	if s := c.Query("service_id"); s != "" {
		id, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			httperr.ValidationFailed(c, map[string]string{"service_id": "Invalid service id"})
			return
		}
		serviceID = uint(id)
	}

	slots, err := h.availability.Execute(c.Request.Context(), domain.AvailabilityInput{
		ServiceID: serviceID,
		Date:      date,
	})
	if err != nil {
		mapBookingError(c, err)
		return
	}

	httpresp.OK(c, gin.H{
		"date":  dateStr,
		"slots": slots,
	}, "Available slots retrieved successfully")
}

////////////////////////////////////////////////////////
// CREATE APPOINTMENT (multipart)
////////////////////////////////////////////////////////

type CreateAppointmentRequest struct {
	Name      string `form:"name" binding:"required"`
	Email     string `form:"email" binding:"required,email"`
	Phone     string `form:"phone" binding:"required"`
	ServiceID uint   `form:"service_id" binding:"required"`
	Date      string `form:"appointment_date" binding:"required"`
	Time      string `form:"appointment_time" binding:"required"`
	Notes     string `form:"notes" binding:"max=1000"`
}

func (h *PublicHandler) CreateAppointment(c *gin.Context) {
	var req CreateAppointmentRequest
	if err := c.ShouldBind(&req); err != nil {
		httperr.ValidationFailed(c, map[string]string{"body": err.Error()})
		return
	}

	ctx := c.Request.Context()

	// Optional uploads: the nail design reference and the GCash
	// placement fee screenshot.
	var designRef, proofRef string

	if fh, err := c.FormFile("design_image"); err == nil && fh != nil {
		ref, err := storeImage(ctx, h.uploader, fh, "design_images")
		if err != nil {
			mapUploadError(c, err)
			return
		}
		designRef = ref
	}

	if fh, err := c.FormFile("payment_proof"); err == nil && fh != nil {
		ref, err := storeImage(ctx, h.uploader, fh, "payment_proofs")
		if err != nil {
			mapUploadError(c, err)
			return
		}
		proofRef = ref
	}

	ap, err := h.createUC.Execute(ctx, ucAppointment.CreateBookingInput{
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		ServiceID:    req.ServiceID,
		Date:         req.Date,
		Time:         req.Time,
		Notes:        req.Notes,
		DesignImage:  designRef,
		PaymentProof: proofRef,
	})
	if err != nil {
		mapBookingError(c, err)
		return
	}

	httpresp.Created(c, ap, "Appointment booked successfully")
}

////////////////////////////////////////////////////////
// ERROR MAPPING
////////////////////////////////////////////////////////

func mapBookingError(c *gin.Context, err error) {
	switch {
	case httperr.IsBusiness(err, "slot_taken"):
		httperr.Unprocessable(c, "Time slot is not available")
	case httperr.IsBusiness(err, "date_in_past"):
		httperr.Unprocessable(c, "Appointment date must not be in the past")
	case httperr.IsBusiness(err, "too_far_ahead"):
		httperr.Unprocessable(c, "Appointments can only be booked up to 3 months ahead")
	case httperr.IsBusiness(err, "closed_day"):
		httperr.Unprocessable(c, "The salon is closed on Sundays")
	case httperr.IsBusiness(err, "invalid_date"):
		httperr.Unprocessable(c, "Invalid appointment date")
	case httperr.IsBusiness(err, "invalid_time"):
		httperr.Unprocessable(c, "Invalid time slot")
	case httperr.IsBusiness(err, "too_soon"):
		httperr.Unprocessable(c, "Same-day bookings need at least one hour of notice")
	case httperr.IsBusiness(err, "service_not_found"),
		httperr.IsBusiness(err, "service_inactive"):
		httperr.Unprocessable(c, "Selected service is not available")
	case httperr.IsBusiness(err, "appointment_not_found"):
		httperr.NotFound(c, "Appointment not found")
	case httperr.IsBusiness(err, "invalid_status"),
		httperr.IsBusiness(err, "invalid_state"):
		httperr.Unprocessable(c, "Invalid status transition")
	default:
		httperr.Internal(c, "Something went wrong")
	}
}

func mapUploadError(c *gin.Context, err error) {
	switch {
	case httperr.IsBusiness(err, "file_too_large"):
		httperr.Unprocessable(c, "Uploaded file exceeds the 10MB limit")
	case httperr.IsBusiness(err, "not_an_image"):
		httperr.Unprocessable(c, "Uploaded file must be an image")
	default:
		httperr.Internal(c, "Failed to store uploaded file")
	}
}
