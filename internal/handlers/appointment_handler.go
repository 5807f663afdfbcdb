package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/MaryEddythe/Lustrea/internal/audit"
	domain "github.com/MaryEddythe/Lustrea/internal/domain/appointment"
	"github.com/MaryEddythe/Lustrea/internal/httperr"
	"github.com/MaryEddythe/Lustrea/internal/httpresp"
	"github.com/MaryEddythe/Lustrea/internal/middleware"
	"github.com/MaryEddythe/Lustrea/internal/models"
	"github.com/MaryEddythe/Lustrea/internal/timezone"
	ucAppointment "github.com/MaryEddythe/Lustrea/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	db       *gorm.DB
	updateUC *ucAppointment.UpdateBooking
	audit    *audit.Dispatcher
}

func NewAppointmentHandler(
	db *gorm.DB,
	updateUC *ucAppointment.UpdateBooking,
	audit *audit.Dispatcher,
) *AppointmentHandler {
	return &AppointmentHandler{
		db:       db,
		updateUC: updateUC,
		audit:    audit,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type UpdateAppointmentRequest struct {
	Name      *string `json:"name"`
	Email     *string `json:"email" binding:"omitempty,email"`
	Phone     *string `json:"phone"`
	ServiceID *uint   `json:"service_id"`
	Date      *string `json:"appointment_date"`
	Time      *string `json:"appointment_time"`
	Status    *string `json:"status"`
	Notes     *string `json:"notes" binding:"omitempty,max=1000"`
}

// ======================================================
// LIST (filters + pagination)
// ======================================================

func (h *AppointmentHandler) List(c *gin.Context) {
	q := h.db.Model(&models.Appointment{}).Preload("Service")

	if status := c.Query("status"); status != "" && status != "all" {
		q = q.Where("status = ?", status)
	}
	if from := c.Query("date_from"); from != "" {
		q = q.Where("date >= ?", from)
	}
	if to := c.Query("date_to"); to != "" {
		q = q.Where("date <= ?", to)
	}
	if serviceID := c.Query("service_id"); serviceID != "" {
		q = q.Where("service_id = ?", serviceID)
	}
	if search := c.Query("search"); search != "" {
		like := "%" + search + "%"
		q = q.Where("name ILIKE ? OR email ILIKE ? OR phone ILIKE ?", like, like, like)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		httperr.Internal(c, "Failed to retrieve appointments")
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "15"))
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 15
	}

	var appointments []models.Appointment
	if err := q.
		Order("date DESC").
		Order("time DESC").
		Offset((page - 1) * perPage).
		Limit(perPage).
		Find(&appointments).Error; err != nil {
		httperr.Internal(c, "Failed to retrieve appointments")
		return
	}

	httpresp.OK(c, httpresp.Page[models.Appointment]{
		Items:   appointments,
		Total:   total,
		Page:    page,
		PerPage: perPage,
	}, "Appointments retrieved successfully")
}

// ======================================================
// GET / UPDATE / DELETE
// ======================================================

func (h *AppointmentHandler) Get(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "Invalid appointment id")
		return
	}

	var ap models.Appointment
	if err := h.db.Preload("Service").First(&ap, uint(id)).Error; err != nil {
		httperr.NotFound(c, "Appointment not found")
		return
	}

	httpresp.OK(c, ap, "Appointment retrieved successfully")
}

func (h *AppointmentHandler) Update(c *gin.Context) {
	adminID := c.MustGet(middleware.ContextAdminID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "Invalid appointment id")
		return
	}

	var req UpdateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.ValidationFailed(c, map[string]string{"body": err.Error()})
		return
	}

	ap, err := h.updateUC.Execute(c.Request.Context(), ucAppointment.UpdateBookingInput{
		AppointmentID: uint(id),
		AdminID:       adminID,
		Name:          req.Name,
		Email:         req.Email,
		Phone:         req.Phone,
		ServiceID:     req.ServiceID,
		Date:          req.Date,
		Time:          req.Time,
		Status:        req.Status,
		Notes:         req.Notes,
	})
	if err != nil {
		mapBookingError(c, err)
		return
	}

	httpresp.OK(c, ap, "Appointment updated successfully")
}

func (h *AppointmentHandler) Delete(c *gin.Context) {
	adminID := c.MustGet(middleware.ContextAdminID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "Invalid appointment id")
		return
	}

	var ap models.Appointment
	if err := h.db.First(&ap, uint(id)).Error; err != nil {
		httperr.NotFound(c, "Appointment not found")
		return
	}

	if err := h.db.Delete(&ap).Error; err != nil {
		httperr.Internal(c, "Failed to delete appointment")
		return
	}

	h.audit.Dispatch(audit.Event{
		AdminID:  &adminID,
		Action:   "appointment_deleted",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	httpresp.OK(c, nil, "Appointment deleted successfully")
}

// ======================================================
// STATISTICS
// ======================================================

func (h *AppointmentHandler) Statistics(c *gin.Context) {
	now := timezone.Now()
	today := now.Format(domain.DateLayout)

	weekStart := now.AddDate(0, 0, -int((now.Weekday()+6)%7)) // Monday
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	count := func(q *gorm.DB) int64 {
		var n int64
		q.Count(&n)
		return n
	}
	model := func() *gorm.DB { return h.db.Model(&models.Appointment{}) }

	stats := gin.H{
		"total_appointments": count(model()),
		"today_appointments": count(model().Where("date = ?", today)),
		"week_appointments":  count(model().Where("date >= ?", weekStart.Format(domain.DateLayout))),
		"month_appointments": count(model().Where("date >= ?", monthStart.Format(domain.DateLayout))),
		"pending_appointments":   count(model().Where("status = ?", string(domain.StatusPending))),
		"confirmed_appointments": count(model().Where("status = ?", string(domain.StatusConfirmed))),
		"completed_appointments": count(model().Where("status = ?", string(domain.StatusCompleted))),
		"cancelled_appointments": count(model().Where("status = ?", string(domain.StatusCancelled))),
		"upcoming_appointments": count(model().
			Where("date >= ?", today).
			Where("status NOT IN ?", []string{
				string(domain.StatusCancelled),
				string(domain.StatusCompleted),
			})),
	}

	httpresp.OK(c, stats, "Statistics retrieved successfully")
}
