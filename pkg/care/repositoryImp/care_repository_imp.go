package repositoryImp

import (
	"gorm.io/gorm"

	"github.com/Willysmile/Gestion-des-plantes-sub001/entities"
	"github.com/Willysmile/Gestion-des-plantes-sub001/pkg/care/repository"
)

type careRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.CareRepository { return &careRepo{db} }

func (r *careRepo) Create(e *entities.CareEvent) error { return r.db.Create(e).Error }

func (r *careRepo) FindByID(id uint) (*entities.CareEvent, error) {
	var e entities.CareEvent
	if err := r.db.First(&e, "event_id = ?", id).Error; err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *careRepo) List(plantID uint, f repository.Filter) ([]entities.CareEvent, error) {
	q := r.db.Where("plant_id = ?", plantID)
	if f.Kind != "" {
		q = q.Where("kind = ?", f.Kind)
	}
	if f.From != nil {
		q = q.Where("date >= ?", *f.From)
	}
	if f.To != nil {
		q = q.Where("date < ?", *f.To)
	}
	var out []entities.CareEvent
	if err := q.Order("date DESC, event_id DESC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *careRepo) Latest(plantID uint, kind string) (*entities.CareEvent, error) {
	var e entities.CareEvent
	err := r.db.Where("plant_id = ? AND kind = ?", plantID, kind).
		Order("date DESC, event_id DESC").Take(&e).Error
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *careRepo) Update(e *entities.CareEvent) error { return r.db.Save(e).Error }

func (r *careRepo) Delete(id uint) error {
	res := r.db.Delete(&entities.CareEvent{}, "event_id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
