package repository

import (
	"time"

	"github.com/Willysmile/Gestion-des-plantes-sub001/entities"
)

type Filter struct {
	Kind string
	From *time.Time // inclusive
	To   *time.Time // exclusive
}

type CareRepository interface {
	Create(e *entities.CareEvent) error
	FindByID(id uint) (*entities.CareEvent, error)
	List(plantID uint, f Filter) ([]entities.CareEvent, error)
	Latest(plantID uint, kind string) (*entities.CareEvent, error)
	Update(e *entities.CareEvent) error
	Delete(id uint) error
}
