package entities

import "time"

type Photo struct {
	PhotoID      uint       `gorm:"primaryKey" json:"photo_id"`
	PlantID      uint       `gorm:"index" json:"plant_id"`
	FileName     string     `json:"file_name"`
	OriginalName string     `json:"original_name"`
	ContentType  string     `json:"content_type"`
	Size         int64      `json:"size"`
	Caption      string     `json:"caption"`
	IsMain       bool       `json:"is_main"`
	TakenAt      *time.Time `json:"taken_at"`
	URL          string     `gorm:"-" json:"url"`
	CreatedAt    time.Time  `json:"created_at"`
}
