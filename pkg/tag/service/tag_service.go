package service

import (
	"errors"

	"github.com/Willysmile/Gestion-des-plantes-sub001/entities"
	"github.com/Willysmile/Gestion-des-plantes-sub001/pkg/display"
)

var (
	ErrNameRequired      = errors.New("name is required")
	ErrDuplicate         = errors.New("already exists")
	ErrAutomaticCategory = errors.New("tags of automatic categories are managed from the plant fields")
)

type TagService interface {
	ListCategories() ([]entities.Category, error)
	CreateCategory(name string) (*entities.Category, error)

	ListTags(categoryID *uint) ([]entities.Tag, error)
	CreateTag(name string, categoryID *uint) (*entities.Tag, error)
	DeleteTag(id uint) error

	PlantTags(plantID uint) (display.TagGroups, error)
	Attach(plantID, tagID uint) (*entities.Tag, error)
	Detach(plantID, tagID uint) error

	// SyncAutomatic makes the plant carry exactly one tag per automatic
	// category whose source field is set, and none for empty fields.
	SyncAutomatic(p *entities.Plant) error
}
