package repositoryImp

import (
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Willysmile/Gestion-des-plantes-sub001/entities"
	"github.com/Willysmile/Gestion-des-plantes-sub001/pkg/plant/repository"
)

type plantRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.PlantRepository { return &plantRepo{db} }

func (r *plantRepo) Create(p *entities.Plant) error { return r.db.Omit("Tags").Create(p).Error }

func (r *plantRepo) FindByID(id uint, uid string) (*entities.Plant, error) {
	var p entities.Plant
	if err := r.db.Where("plant_id = ? AND user_id = ?", id, uid).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *plantRepo) List(uid string, f repository.ListFilter) ([]entities.Plant, error) {
	q := r.db.Where("user_id = ?", uid)
	if s := strings.TrimSpace(f.Query); s != "" {
		q = q.Where("search_key LIKE ?", "%"+entities.PlantSearchKey(s)+"%")
	}
	if f.Archived != nil {
		q = q.Where("archived = ?", *f.Archived)
	}
	var out []entities.Plant
	if err := q.Order("name ASC, plant_id ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *plantRepo) Update(p *entities.Plant) error { return r.db.Omit("Tags").Save(p).Error }

func (r *plantRepo) Delete(id uint, uid string) error {
	res := r.db.Where("plant_id = ? AND user_id = ?", id, uid).Delete(&entities.Plant{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *plantRepo) Count() (int64, error) {
	var n int64
	return n, r.db.Model(&entities.Plant{}).Count(&n).Error
}

func (r *plantRepo) Frequencies(plantID uint) ([]entities.SeasonalFrequency, error) {
	var out []entities.SeasonalFrequency
	return out, r.db.Where("plant_id = ?", plantID).Find(&out).Error
}

func (r *plantRepo) UpsertFrequency(f *entities.SeasonalFrequency) error {
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "plant_id"}, {Name: "season"}},
		DoUpdates: clause.AssignmentColumns([]string{"watering_days", "fertilizing_days", "updated_at"}),
	}).Create(f).Error
}
