package service

import (
	"errors"
	"time"

	"github.com/Willysmile/Gestion-des-plantes-sub001/entities"
	"github.com/Willysmile/Gestion-des-plantes-sub001/pkg/plant/repository"
)

var (
	ErrNameRequired    = errors.New("name is required")
	ErrInvalidSeason   = errors.New("invalid season")
	ErrInvalidInterval = errors.New("interval must be a positive number of days")
)

type PlantService interface {
	Create(p *entities.Plant) (*entities.Plant, error)
	Get(id uint, uid string) (*entities.Plant, error)
	List(uid string, f repository.ListFilter) ([]entities.Plant, error)
	UpdatePartial(id uint, uid string, patch PlantPatch) (*entities.Plant, error)
	Delete(id uint, uid string) error

	Frequencies(id uint, uid string) ([]entities.SeasonalFrequency, error)
	SetFrequency(id uint, uid, season string, wateringDays, fertilizingDays *int) (*entities.SeasonalFrequency, error)
	// CurrentFrequency is the frequency row in effect at now.
	CurrentFrequency(plantID uint, now time.Time) (entities.SeasonalFrequency, error)
}

// PlantPatch applies only the non-nil fields. AcquiredAt is parsed by the
// caller; a zero time clears it.
type PlantPatch struct {
	Name        *string    `json:"name"`
	Species     *string    `json:"species"`
	Family      *string    `json:"family"`
	Location    *string    `json:"location"`
	Light       *string    `json:"light"`
	HealthState *string    `json:"health_state"`
	AcquiredAt  *time.Time `json:"-"`
	Notes       *string    `json:"notes"`
	Archived    *bool      `json:"archived"`
}

// TagSyncer keeps the automatic tags in line with the plant fields.
type TagSyncer interface {
	SyncAutomatic(p *entities.Plant) error
}
