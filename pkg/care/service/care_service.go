package service

import (
	"errors"
	"time"

	"github.com/Willysmile/Gestion-des-plantes-sub001/entities"
	"github.com/Willysmile/Gestion-des-plantes-sub001/pkg/care/repository"
	plantrepo "github.com/Willysmile/Gestion-des-plantes-sub001/pkg/plant/repository"
	"github.com/Willysmile/Gestion-des-plantes-sub001/pkg/season"
)

var (
	ErrInvalidKind     = errors.New("invalid kind")
	ErrDiseaseRequired = errors.New("disease is required")
	ErrNegativeAmount  = errors.New("amount must be >= 0")
	ErrInvalidDate     = errors.New("invalid date")
)

type CareService interface {
	Record(plantID uint, e *entities.CareEvent) (*entities.CareEvent, error)
	Get(id uint) (*entities.CareEvent, error)
	// History is newest first; every row carries its dose label.
	History(plantID uint, f repository.Filter) ([]entities.CareEvent, error)
	UpdatePartial(id uint, patch CarePatch) (*entities.CareEvent, error)
	Delete(id uint) error

	// Latest returns the most recent event per kind; kinds never recorded
	// are absent.
	Latest(plantID uint) (map[string]entities.CareEvent, error)
	Status(plantID uint, now time.Time) ([]season.Status, error)
	Reminders(uid string, now time.Time) ([]Reminder, error)
}

// CarePatch applies only the non-nil fields. Date is parsed by the caller in
// the configured zone.
type CarePatch struct {
	Date      *time.Time `json:"-"`
	Amount    *float64   `json:"amount"`
	Unit      *string    `json:"unit"`
	Product   *string    `json:"product"`
	PotSize   *string    `json:"pot_size"`
	Substrate *string    `json:"substrate"`
	Disease   *string    `json:"disease"`
	Treatment *string    `json:"treatment"`
	Resolved  *bool      `json:"resolved"`
	Notes     *string    `json:"notes"`
}

// Reminder is a due or overdue care action.
type Reminder struct {
	PlantID   uint   `json:"plant_id"`
	PlantName string `json:"plant_name"`
	season.Status
}

// Plants is what reminders need from the plant side.
type Plants interface {
	List(uid string, f plantrepo.ListFilter) ([]entities.Plant, error)
	CurrentFrequency(plantID uint, now time.Time) (entities.SeasonalFrequency, error)
}
