package entities

import "time"

type AuditLog struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	UserID        string         `gorm:"index" json:"user_id"`
	Action        string         `gorm:"index" json:"action"`      // create|update|delete|attach|detach|upload|...
	EntityType    string         `gorm:"index" json:"entity_type"` // plant|care_event|tag|photo|...
	EntityID      uint           `json:"entity_id"`
	PlantID       *uint          `gorm:"index" json:"plant_id"`
	Details       map[string]any `gorm:"serializer:json" json:"details,omitempty"`
	PayloadDigest string         `json:"payload_digest"`
	IP            string         `json:"ip"`
	UserAgent     string         `json:"user_agent"`
	CreatedAt     time.Time      `gorm:"index" json:"created_at"`
}
