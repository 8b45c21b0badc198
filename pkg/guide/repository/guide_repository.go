package repository

import "github.com/Willysmile/Gestion-des-plantes-sub001/entities"

type GuideRepository interface {
	// Create stores the guide and its chunks in one transaction.
	Create(g *entities.CareGuide, chunks []entities.GuideChunk) error
	List() ([]entities.CareGuide, error)
	AllChunks() ([]entities.GuideChunk, error)
	ByIDs(ids []uint) (map[uint]entities.CareGuide, error)
	Delete(id uint) error
}
