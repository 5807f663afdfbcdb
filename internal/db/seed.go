package db

import (
	"log"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	domain "github.com/MaryEddythe/Lustrea/internal/domain/appointment"
	"github.com/MaryEddythe/Lustrea/internal/models"
	"github.com/MaryEddythe/Lustrea/internal/timezone"
)

// Seed populates reference data on an empty database. Each block is
// skipped when its table already has rows, so restarts are safe.
func Seed(db *gorm.DB) {
	seedAdmins(db)
	seedServices(db)
	seedGallery(db)
	seedTimeSlots(db)
}

func seedAdmins(db *gorm.DB) {
	var count int64
	db.Model(&models.Admin{}).Count(&count)
	if count > 0 {
		return
	}

	admins := []struct {
		name     string
		email    string
		password string
		role     string
	}{
		{"Admin User", "admin@luxenails.com", "admin123", "admin"},
		{"Super Admin", "superadmin@luxenails.com", "superadmin123", "super_admin"},
	}

	for _, a := range admins {
		hashed, err := bcrypt.GenerateFromPassword([]byte(a.password), bcrypt.DefaultCost)
		if err != nil {
			log.Printf("seed: hash admin password: %v", err)
			continue
		}
		db.Create(&models.Admin{
			Name:         a.name,
			Email:        a.email,
			PasswordHash: string(hashed),
			Role:         a.role,
			Active:       true,
		})
	}
}

func seedServices(db *gorm.DB) {
	var count int64
	db.Model(&models.Service{}).Count(&count)
	if count > 0 {
		return
	}

	// Prices are minimums; custom designs are quoted individually.
	services := []models.Service{
		{
			Name:        "Soft Gel Extensions",
			Category:    "Extensions",
			Description: "Lightweight and durable nail extensions for a classy, natural look.",
			DurationMin: 120,
			Price:       500,
			Features:    models.FeatureList{"Full soft gel tips", "Gel polish color of choice", "Cured with UV/LED lamp", "Custom shapes (almond, coffin, square)"},
			Active:      true,
		},
		{
			Name:        "Gel Manicure",
			Category:    "Manicure",
			Description: "Long-lasting gel polish that stays chip-free for up to 2 weeks.",
			DurationMin: 45,
			Price:       300,
			Features:    models.FeatureList{"Nail preparation", "Gel base coat", "Color application", "UV curing", "Top coat"},
			Active:      true,
		},
		{
			Name:        "Classic Manicure",
			Category:    "Manicure",
			Description: "Relaxing nail treatment with exfoliation, massage, and polish.",
			DurationMin: 45,
			Price:       200,
			Features:    models.FeatureList{"Nail soak", "Exfoliation", "Callus removal", "Hand massage", "Polish application"},
			Active:      true,
		},
		{
			Name:        "Gel Pedicure",
			Category:    "Pedicure",
			Description: "Premium pedicure with long-lasting gel polish finish.",
			DurationMin: 60,
			Price:       140,
			Features:    models.FeatureList{"Luxury foot soak", "Exfoliation", "Massage", "Gel polish", "Moisturizing treatment"},
			Active:      true,
		},
		{
			Name:        "Nail Art Design",
			Category:    "Nail Art",
			Description: "Custom nail art designs created by our talented artists.",
			DurationMin: 60,
			Price:       300,
			Features:    models.FeatureList{"Consultation", "Custom design", "Hand-painted art", "Protective top coat"},
			Active:      true,
		},
		{
			Name:        "French Manicure",
			Category:    "Manicure",
			Description: "Timeless French tip design with natural or colored base.",
			DurationMin: 40,
			Price:       300,
			Features:    models.FeatureList{"Nail preparation", "Base application", "French tip design", "Glossy finish"},
			Active:      true,
		},
	}

	for i := range services {
		db.Create(&services[i])
	}
}

func seedGallery(db *gorm.DB) {
	var count int64
	db.Model(&models.Gallery{}).Count(&count)
	if count > 0 {
		return
	}

	items := []models.Gallery{
		{Title: "French Manicure", Category: "Classic", ImageURL: "https://images.unsplash.com/photo-1604654894610-df63bc536371?w=400", Description: "Elegant French manicure with perfect white tips", Featured: true, SortOrder: 1},
		{Title: "Floral Nail Art", Category: "Nail Art", ImageURL: "https://images.unsplash.com/photo-1632345031435-8727f6897d53?w=400", Description: "Beautiful hand-painted floral designs", Featured: true, SortOrder: 2},
		{Title: "Gel Pedicure", Category: "Pedicure", ImageURL: "https://images.unsplash.com/photo-1519014816548-bf5fe059798b?w=400", Description: "Relaxing gel pedicure with vibrant colors", SortOrder: 3},
		{Title: "Geometric Design", Category: "Nail Art", ImageURL: "https://images.unsplash.com/photo-1610992015732-2449b76344bc?w=400", Description: "Modern geometric patterns in gold and black", Featured: true, SortOrder: 4},
		{Title: "Ombre Nails", Category: "Gel", ImageURL: "https://images.unsplash.com/photo-1607779097040-26e80aa78e66?w=400", Description: "Stunning ombre effect from pink to white", SortOrder: 5},
		{Title: "Luxury Pedicure", Category: "Pedicure", ImageURL: "https://images.unsplash.com/photo-1560472354-b33ff0c44a43?w=400", Description: "Premium pedicure treatment with spa experience", SortOrder: 6},
		{Title: "Marble Effect", Category: "Nail Art", ImageURL: "https://images.unsplash.com/photo-1583847268964-b28dc8f51f92?w=400", Description: "Sophisticated marble effect nail art", Featured: true, SortOrder: 7},
		{Title: "Classic Red", Category: "Classic", ImageURL: "https://images.unsplash.com/photo-1522337360788-8b13dee7a37e?w=400", Description: "Timeless classic red manicure", SortOrder: 8},
		{Title: "Glitter Accent", Category: "Gel", ImageURL: "https://images.unsplash.com/photo-1596462502278-27bfdc403348?w=400", Description: "Glamorous glitter accent nails", SortOrder: 9},
	}

	for i := range items {
		db.Create(&items[i])
	}
}

// seedTimeSlots materializes the domain schedule into the time_slots
// table so the calendar is inspectable in SQL; the schedule itself
// stays the source of truth for availability.
func seedTimeSlots(db *gorm.DB) {
	var count int64
	db.Model(&models.TimeSlot{}).Count(&count)
	if count > 0 {
		return
	}

	weekdays := models.DayList{1, 2, 3, 4, 5}
	saturday := models.DayList{6}

	monday := nextWeekday(time.Monday)
	for _, slot := range domain.SlotsFor(monday) {
		db.Create(&models.TimeSlot{
			StartTime:  slot.Start,
			EndTime:    slot.End,
			DaysOfWeek: weekdays,
			Active:     true,
		})
	}

	sat := nextWeekday(time.Saturday)
	for _, slot := range domain.SlotsFor(sat) {
		db.Create(&models.TimeSlot{
			StartTime:  slot.Start,
			EndTime:    slot.End,
			DaysOfWeek: saturday,
			Active:     true,
		})
	}
}

func nextWeekday(day time.Weekday) time.Time {
	t := timezone.Now()
	for t.Weekday() != day {
		t = t.AddDate(0, 0, 1)
	}
	return t
}
