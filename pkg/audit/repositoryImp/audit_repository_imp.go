package repositoryImp

import (
	"gorm.io/gorm"

	"github.com/Willysmile/Gestion-des-plantes-sub001/entities"
	"github.com/Willysmile/Gestion-des-plantes-sub001/pkg/audit/repository"
)

type auditRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.AuditRepository { return &auditRepo{db} }

func (r *auditRepo) Create(l *entities.AuditLog) error { return r.db.Create(l).Error }

func (r *auditRepo) List(f repository.Filter) ([]entities.AuditLog, error) {
	q := r.db.Model(&entities.AuditLog{}).Where("user_id = ?", f.UserID)
	if f.PlantID != nil {
		q = q.Where("plant_id = ?", *f.PlantID)
	}
	if f.EntityType != "" {
		q = q.Where("entity_type = ?", f.EntityType)
	}
	if f.Action != "" {
		q = q.Where("action = ?", f.Action)
	}
	var out []entities.AuditLog
	if err := q.Order("created_at DESC, id DESC").Limit(f.Limit).Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
