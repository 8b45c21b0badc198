package serviceImp

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Willysmile/Gestion-des-plantes-sub001/entities"
	"github.com/Willysmile/Gestion-des-plantes-sub001/pkg/audit"
	"github.com/Willysmile/Gestion-des-plantes-sub001/pkg/audit/repository"
	"github.com/Willysmile/Gestion-des-plantes-sub001/pkg/audit/service"
)

const (
	defaultLimit = 50
	maxLimit     = 500
)

type auditSvc struct{ r repository.AuditRepository }

func NewAuditService(r repository.AuditRepository) service.AuditService { return &auditSvc{r} }

func (s *auditSvc) Record(_ context.Context, l *entities.AuditLog) {
	if l == nil {
		return
	}
	if l.CreatedAt.IsZero() {
		l.CreatedAt = time.Now().UTC()
	}
	if l.PayloadDigest == "" {
		l.PayloadDigest = audit.DigestJSON(l.Details)
	}
	if err := s.r.Create(l); err != nil {
		log.Error().Err(err).
			Str("action", l.Action).
			Str("entity", l.EntityType).
			Uint("entity_id", l.EntityID).
			Msg("audit write failed")
	}
}

func (s *auditSvc) List(f repository.Filter) ([]entities.AuditLog, error) {
	if f.Limit <= 0 {
		f.Limit = defaultLimit
	}
	if f.Limit > maxLimit {
		f.Limit = maxLimit
	}
	out, err := s.r.List(f)
	if out == nil && err == nil {
		out = []entities.AuditLog{}
	}
	return out, err
}
