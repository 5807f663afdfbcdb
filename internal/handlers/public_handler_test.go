package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MaryEddythe/Lustrea/internal/audit"
	domain "github.com/MaryEddythe/Lustrea/internal/domain/appointment"
	"github.com/MaryEddythe/Lustrea/internal/httperr"
	"github.com/MaryEddythe/Lustrea/internal/infra/storage"
	"github.com/MaryEddythe/Lustrea/internal/models"
	"github.com/MaryEddythe/Lustrea/internal/timezone"
	ucAppointment "github.com/MaryEddythe/Lustrea/internal/usecase/appointment"
)

// ------------------------------
// Fakes
// ------------------------------

type stubRepo struct {
	service    *models.Service
	booked     []string
	reserveErr error
	reserved   []*models.Appointment
}

var _ domain.Repository = (*stubRepo)(nil)

func (s *stubRepo) GetService(context.Context, uint) (*models.Service, error) {
	if s.service == nil {
		return nil, errors.New("record not found")
	}
	return s.service, nil
}

func (s *stubRepo) ListBookedTimes(context.Context, string) ([]string, error) {
	return s.booked, nil
}

func (s *stubRepo) ReserveAppointment(_ context.Context, ap *models.Appointment) error {
	if s.reserveErr != nil {
		return s.reserveErr
	}
	ap.ID = 1
	s.reserved = append(s.reserved, ap)
	return nil
}

func (s *stubRepo) AssertSlotFree(context.Context, string, string, uint) error { return nil }

func (s *stubRepo) GetAppointment(context.Context, uint) (*models.Appointment, error) {
	return nil, errors.New("record not found")
}

func (s *stubRepo) UpdateAppointment(context.Context, *models.Appointment) error { return nil }
func (s *stubRepo) DeleteAppointment(context.Context, uint) error                { return nil }

type stubUploader struct {
	keys []string
}

func (u *stubUploader) Put(_ context.Context, in storage.UploadInput) (string, error) {
	key := strings.Trim(in.Prefix, "/") + "/" + in.Filename
	u.keys = append(u.keys, key)
	return key, nil
}

func bookingRouter(repo *stubRepo, uploader *stubUploader) *gin.Engine {
	gin.SetMode(gin.TestMode)

	dispatcher := audit.NewDispatcher(nil)
	h := NewPublicHandler(
		nil,
		uploader,
		ucAppointment.NewGetAvailability(repo),
		ucAppointment.NewCreateBooking(repo, dispatcher),
	)

	r := gin.New()
	r.GET("/available-slots", h.AvailableSlots)
	r.POST("/appointments", h.CreateAppointment)
	return r
}

// nextOpenDate returns the next weekday strictly after today, formatted
// for the booking API.
func nextOpenDate(wd time.Weekday) string {
	d := timezone.Now().AddDate(0, 0, 1)
	for d.Weekday() != wd {
		d = d.AddDate(0, 0, 1)
	}
	return d.Format(domain.DateLayout)
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// ------------------------------
// Available slots
// ------------------------------

func TestAvailableSlots_RequiresDate(t *testing.T) {
	r := bookingRouter(&stubRepo{}, &stubUploader{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/available-slots", nil))

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestAvailableSlots_Weekday(t *testing.T) {
	repo := &stubRepo{booked: []string{"09:00"}}
	r := bookingRouter(repo, &stubUploader{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(
		http.MethodGet,
		"/available-slots?date="+nextOpenDate(time.Monday),
		nil,
	))

	require.Equal(t, http.StatusOK, w.Code)

	var resp envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)

	var data struct {
		Slots []domain.TimeSlot `json:"slots"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &data))
	assert.Len(t, data.Slots, 17)
	assert.Equal(t, "09:30", data.Slots[0].Start)
}

func TestAvailableSlots_SundayEmpty(t *testing.T) {
	r := bookingRouter(&stubRepo{}, &stubUploader{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(
		http.MethodGet,
		"/available-slots?date="+nextOpenDate(time.Sunday),
		nil,
	))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"slots":[]`)
}

// ------------------------------
// Booking
// ------------------------------

func bookingForm(date string) url.Values {
	return url.Values{
		"name":             {"Maria Santos"},
		"email":            {"maria@example.com"},
		"phone":            {"09171234567"},
		"service_id":       {"1"},
		"appointment_date": {date},
		"appointment_time": {"10:00"},
	}
}

func postForm(r *gin.Engine, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(
		http.MethodPost,
		"/appointments",
		strings.NewReader(form.Encode()),
	)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreateAppointment_Success(t *testing.T) {
	repo := &stubRepo{service: &models.Service{ID: 1, Name: "Gel Manicure", Active: true}}
	r := bookingRouter(repo, &stubUploader{})

	w := postForm(r, bookingForm(nextOpenDate(time.Monday)))

	require.Equal(t, http.StatusCreated, w.Code)
	require.Len(t, repo.reserved, 1)
	assert.Equal(t, "pending", repo.reserved[0].Status)
	assert.Contains(t, w.Body.String(), `"success":true`)
}

func TestCreateAppointment_MissingFields(t *testing.T) {
	r := bookingRouter(&stubRepo{}, &stubUploader{})

	form := bookingForm(nextOpenDate(time.Monday))
	form.Del("email")

	w := postForm(r, form)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestCreateAppointment_SlotTaken(t *testing.T) {
	repo := &stubRepo{
		service:    &models.Service{ID: 1, Active: true},
		reserveErr: httperr.ErrBusiness("slot_taken"),
	}
	r := bookingRouter(repo, &stubUploader{})

	w := postForm(r, bookingForm(nextOpenDate(time.Monday)))

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "Time slot is not available")
}

func TestCreateAppointment_SundayClosed(t *testing.T) {
	repo := &stubRepo{service: &models.Service{ID: 1, Active: true}}
	r := bookingRouter(repo, &stubUploader{})

	w := postForm(r, bookingForm(nextOpenDate(time.Sunday)))

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "closed on Sundays")
}

func TestCreateAppointment_WithUploads(t *testing.T) {
	repo := &stubRepo{service: &models.Service{ID: 1, Active: true}}
	uploader := &stubUploader{}
	r := bookingRouter(repo, uploader)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for key, vals := range bookingForm(nextOpenDate(time.Tuesday)) {
		mw.WriteField(key, vals[0])
	}

	hdr := textproto.MIMEHeader{}
	hdr.Set("Content-Disposition", `form-data; name="payment_proof"; filename="gcash.png"`)
	hdr.Set("Content-Type", "image/png")
	fw, err := mw.CreatePart(hdr)
	require.NoError(t, err)
	fw.Write([]byte("fake png bytes"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/appointments", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	require.Len(t, uploader.keys, 1)
	assert.True(t, strings.HasPrefix(uploader.keys[0], "payment_proofs/"))
	require.Len(t, repo.reserved, 1)
	assert.Equal(t, uploader.keys[0], repo.reserved[0].PaymentProof)
}

func TestCreateAppointment_RejectsNonImageUpload(t *testing.T) {
	repo := &stubRepo{service: &models.Service{ID: 1, Active: true}}
	r := bookingRouter(repo, &stubUploader{})

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for key, vals := range bookingForm(nextOpenDate(time.Tuesday)) {
		mw.WriteField(key, vals[0])
	}

	// CreateFormFile tags the part as application/octet-stream.
	fw, err := mw.CreateFormFile("payment_proof", "receipt.pdf")
	require.NoError(t, err)
	fw.Write([]byte("%PDF-1.4"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/appointments", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "must be an image")
	assert.Empty(t, repo.reserved)
}
