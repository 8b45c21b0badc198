package repository

import "github.com/Willysmile/Gestion-des-plantes-sub001/entities"

type Filter struct {
	UserID     string
	PlantID    *uint
	EntityType string
	Action     string
	Limit      int
}

type AuditRepository interface {
	Create(l *entities.AuditLog) error
	List(f Filter) ([]entities.AuditLog, error)
}
