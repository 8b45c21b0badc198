package entities

import "time"

type Category struct {
	CategoryID uint      `gorm:"primaryKey" json:"category_id"`
	Name       string    `gorm:"uniqueIndex" json:"name"`
	CreatedAt  time.Time `json:"created_at"`
}

type Tag struct {
	TagID      uint      `gorm:"primaryKey" json:"tag_id"`
	Name       string    `json:"name"`
	Slug       string    `gorm:"uniqueIndex:idx_tag_category_slug" json:"slug"`
	CategoryID *uint     `gorm:"uniqueIndex:idx_tag_category_slug" json:"category_id"`
	Category   *Category `gorm:"foreignKey:CategoryID;references:CategoryID" json:"category,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}
