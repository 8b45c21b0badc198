package repository

import "github.com/Willysmile/Gestion-des-plantes-sub001/entities"

type TagRepository interface {
	ListCategories() ([]entities.Category, error)
	CreateCategory(c *entities.Category) error
	CategoryByName(name string) (*entities.Category, error)
	CategoryByID(id uint) (*entities.Category, error)

	ListTags(categoryID *uint) ([]entities.Tag, error)
	CreateTag(t *entities.Tag) error
	FindTag(id uint) (*entities.Tag, error)
	FindTagBySlug(categoryID *uint, slug string) (*entities.Tag, error)
	DeleteTag(id uint) error

	PlantTags(plantID uint) ([]entities.Tag, error)
	PlantTagsInCategory(plantID, categoryID uint) ([]entities.Tag, error)
	Attach(plantID, tagID uint) error
	Detach(plantID, tagID uint) error
}
