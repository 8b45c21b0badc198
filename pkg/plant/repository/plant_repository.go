package repository

import "github.com/Willysmile/Gestion-des-plantes-sub001/entities"

type ListFilter struct {
	Query    string // matched against name and species
	Archived *bool
}

type PlantRepository interface {
	Create(p *entities.Plant) error
	FindByID(id uint, uid string) (*entities.Plant, error)
	List(uid string, f ListFilter) ([]entities.Plant, error)
	Update(p *entities.Plant) error
	Delete(id uint, uid string) error
	Count() (int64, error)

	Frequencies(plantID uint) ([]entities.SeasonalFrequency, error)
	UpsertFrequency(f *entities.SeasonalFrequency) error
}
