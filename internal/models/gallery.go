package models

import "time"

type Gallery struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Title       string `gorm:"size:100;not null" json:"title"`
	Category    string `gorm:"size:50" json:"category"`
	ImageURL    string `gorm:"size:500;not null" json:"image_url"`
	ThumbURL    string `gorm:"size:500" json:"thumb_url"`
	Description string `gorm:"size:500" json:"description"`

	Featured  bool `gorm:"default:false" json:"featured"`
	SortOrder int  `gorm:"default:0" json:"sort_order"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
