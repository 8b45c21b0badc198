package entities

import (
	"time"

	"golang.org/x/text/cases"
	"gorm.io/gorm"
)

type Plant struct {
	PlantID     uint       `gorm:"primaryKey" json:"plant_id"`
	UserID      string     `json:"user_id" gorm:"index"`
	Name        string     `json:"name"`
	Species     string     `json:"species"`
	Family      string     `json:"family"`
	Location    string     `json:"location"`     // Emplacement
	Light       string     `json:"light"`        // Luminosité
	HealthState string     `json:"health_state"` // État de la plante
	AcquiredAt  *time.Time `json:"acquired_at"`
	Notes       string     `json:"notes"`
	Archived    bool       `json:"archived" gorm:"index"`
	SearchKey   string     `json:"-"`

	Tags []Tag `gorm:"many2many:plant_tags;joinForeignKey:PlantID;joinReferences:TagID" json:"tags,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeSave keeps SearchKey, the case-folded name and species, in step.
func (p *Plant) BeforeSave(*gorm.DB) error {
	p.SearchKey = PlantSearchKey(p.Name + "\n" + p.Species)
	return nil
}

// PlantSearchKey folds s the way SearchKey is stored. SQLite LOWER only
// folds ASCII.
func PlantSearchKey(s string) string { return cases.Fold().String(s) }

// SeasonalFrequency holds the number of days between two waterings or two
// fertilizings for one season. A nil interval means the action is not tracked.
type SeasonalFrequency struct {
	ID              uint   `gorm:"primaryKey" json:"id"`
	PlantID         uint   `gorm:"uniqueIndex:idx_plant_season" json:"plant_id"`
	Season          string `gorm:"uniqueIndex:idx_plant_season" json:"season"` // printemps|été|automne|hiver
	WateringDays    *int   `json:"watering_days"`
	FertilizingDays *int   `json:"fertilizing_days"`
	Default         bool   `gorm:"-" json:"default,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
