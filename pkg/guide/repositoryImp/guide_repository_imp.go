package repositoryImp

import (
	"gorm.io/gorm"

	"github.com/Willysmile/Gestion-des-plantes-sub001/entities"
	"github.com/Willysmile/Gestion-des-plantes-sub001/pkg/guide/repository"
)

type repo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.GuideRepository { return &repo{db} }

func (r *repo) Create(g *entities.CareGuide, chunks []entities.GuideChunk) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(g).Error; err != nil {
			return err
		}
		if len(chunks) == 0 {
			return nil
		}
		for i := range chunks {
			chunks[i].GuideID = g.GuideID
		}
		return tx.Create(&chunks).Error
	})
}

func (r *repo) List() ([]entities.CareGuide, error) {
	var out []entities.CareGuide
	return out, r.db.Order("guide_id DESC").Find(&out).Error
}

func (r *repo) AllChunks() ([]entities.GuideChunk, error) {
	var out []entities.GuideChunk
	return out, r.db.Order("guide_id ASC, ord ASC").Find(&out).Error
}

func (r *repo) ByIDs(ids []uint) (map[uint]entities.CareGuide, error) {
	if len(ids) == 0 {
		return map[uint]entities.CareGuide{}, nil
	}
	var gs []entities.CareGuide
	if err := r.db.Where("guide_id IN ?", ids).Find(&gs).Error; err != nil {
		return nil, err
	}
	m := make(map[uint]entities.CareGuide, len(gs))
	for _, g := range gs {
		m[g.GuideID] = g
	}
	return m, nil
}

func (r *repo) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("guide_id = ?", id).Delete(&entities.GuideChunk{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&entities.CareGuide{}, "guide_id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
