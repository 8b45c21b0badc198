package service

import (
	"context"

	"github.com/Willysmile/Gestion-des-plantes-sub001/entities"
	"github.com/Willysmile/Gestion-des-plantes-sub001/pkg/audit/repository"
)

type AuditService interface {
	Record(ctx context.Context, l *entities.AuditLog)
	List(f repository.Filter) ([]entities.AuditLog, error)
}
