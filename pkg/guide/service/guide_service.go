package service

import (
	"context"
	"errors"

	"github.com/Willysmile/Gestion-des-plantes-sub001/entities"
)

var (
	ErrTitleRequired    = errors.New("title is required")
	ErrTextRequired     = errors.New("text is required")
	ErrDomainNotAllowed = errors.New("domain not allowed")
	ErrBadURL           = errors.New("bad url")
)

// Hit is a matching chunk with its guide's title and source.
type Hit struct {
	ChunkID    uint    `json:"chunk_id"`
	GuideID    uint    `json:"guide_id"`
	Ord        int     `json:"ord"`
	Text       string  `json:"text"`
	Score      float64 `json:"score"`
	GuideTitle string  `json:"guide_title,omitempty"`
	SourceURL  string  `json:"source_url,omitempty"`
}

type GuideService interface {
	Ingest(title, species, text, sourceURL string) (*entities.CareGuide, int, error)
	// IngestURL fetches an allowed page; title overrides the page title when set.
	IngestURL(ctx context.Context, rawURL, title, species string) (*entities.CareGuide, int, error)
	List() ([]entities.CareGuide, error)
	Delete(id uint) error
	// Search returns at most k chunks with a positive score, best first.
	Search(q string, k int) ([]Hit, error)
}
