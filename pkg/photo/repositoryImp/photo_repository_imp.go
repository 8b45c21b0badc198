package repositoryImp

import (
	"gorm.io/gorm"

	"github.com/Willysmile/Gestion-des-plantes-sub001/entities"
	"github.com/Willysmile/Gestion-des-plantes-sub001/pkg/photo/repository"
)

type photoRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.PhotoRepository { return &photoRepo{db} }

func (r *photoRepo) Create(p *entities.Photo) error { return r.db.Create(p).Error }

func (r *photoRepo) FindByID(id uint) (*entities.Photo, error) {
	var p entities.Photo
	if err := r.db.First(&p, "photo_id = ?", id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *photoRepo) List(plantID uint) ([]entities.Photo, error) {
	var out []entities.Photo
	err := r.db.Where("plant_id = ?", plantID).
		Order("is_main DESC, created_at DESC, photo_id DESC").Find(&out).Error
	return out, err
}

func (r *photoRepo) Count(plantID uint) (int64, error) {
	var n int64
	return n, r.db.Model(&entities.Photo{}).Where("plant_id = ?", plantID).Count(&n).Error
}

func (r *photoRepo) Update(p *entities.Photo) error { return r.db.Save(p).Error }

func (r *photoRepo) SetMain(plantID, id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&entities.Photo{}).Where("plant_id = ? AND photo_id <> ?", plantID, id).
			Update("is_main", false).Error; err != nil {
			return err
		}
		res := tx.Model(&entities.Photo{}).Where("plant_id = ? AND photo_id = ?", plantID, id).Update("is_main", true)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func (r *photoRepo) Delete(id uint) error {
	res := r.db.Delete(&entities.Photo{}, "photo_id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
