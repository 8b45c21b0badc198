package entities

import "time"

const (
	CareWatering    = "watering"
	CareFertilizing = "fertilizing"
	CareRepotting   = "repotting"
	CareDisease     = "disease"
)

// CareKinds lists the accepted CareEvent kinds.
var CareKinds = []string{CareWatering, CareFertilizing, CareRepotting, CareDisease}

type CareEvent struct {
	EventID   uint      `gorm:"primaryKey" json:"event_id"`
	PlantID   uint      `gorm:"index" json:"plant_id"`
	Kind      string    `gorm:"index" json:"kind"`
	Date      time.Time `gorm:"index" json:"date"`
	Amount    *float64  `json:"amount"`
	Unit      string    `json:"unit"`      // ml|bâton|pastille|cuillère|dose|unité|...
	Product   string    `json:"product"`   // fertilizing
	PotSize   string    `json:"pot_size"`  // repotting
	Substrate string    `json:"substrate"` // repotting
	Disease   string    `json:"disease"`   // disease
	Treatment string    `json:"treatment"` // disease
	Resolved  bool      `json:"resolved"`  // disease
	Notes     string    `json:"notes"`

	DoseLabel string `gorm:"-" json:"dose_label,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
