package repository

import "github.com/Willysmile/Gestion-des-plantes-sub001/entities"

type PhotoRepository interface {
	Create(p *entities.Photo) error
	FindByID(id uint) (*entities.Photo, error)
	// List returns the main photo first, then newest first.
	List(plantID uint) ([]entities.Photo, error)
	Count(plantID uint) (int64, error)
	Update(p *entities.Photo) error
	// SetMain clears the flag on the plant's other photos and sets it on id.
	SetMain(plantID, id uint) error
	Delete(id uint) error
}
