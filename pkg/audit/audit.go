// Package audit records who changed what. Entries are written after the
// change succeeded; a failed write is logged and never fails the request.
package audit

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"

	"github.com/labstack/echo/v4"

	"github.com/Willysmile/Gestion-des-plantes-sub001/entities"
	"github.com/Willysmile/Gestion-des-plantes-sub001/pkg/httputil"
)

const (
	ActionCreate = "create"
	ActionUpdate = "update"
	ActionDelete = "delete"
	ActionAttach = "attach"
	ActionDetach = "detach"
	ActionUpload = "upload"
	ActionImport = "import"
)

// Entry builds an audit log for the current request. plantID may be nil for
// entries not tied to a plant.
func Entry(c echo.Context, action, entityType string, entityID uint, plantID *uint, details map[string]any) *entities.AuditLog {
	return &entities.AuditLog{
		UserID:     httputil.UID(c),
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		PlantID:    plantID,
		Details:    details,
		IP:         c.RealIP(),
		UserAgent:  c.Request().UserAgent(),
	}
}

// DigestJSON returns the hex SHA-256 of v's JSON encoding, or "" for nil or
// unencodable values.
func DigestJSON(v map[string]any) string {
	if len(v) == 0 {
		return ""
	}
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}
