package entities

import "time"

type CareGuide struct {
	GuideID   uint      `gorm:"primaryKey" json:"guide_id"`
	Title     string    `json:"title"`
	Species   string    `json:"species"`
	SourceURL string    `json:"source_url"`
	CreatedAt time.Time `json:"created_at"`
}

type GuideChunk struct {
	ChunkID   uint      `gorm:"primaryKey" json:"chunk_id"`
	GuideID   uint      `gorm:"index" json:"guide_id"`
	Ord       int       `json:"ord"`
	Text      string    `json:"text"`
	Embedding []byte    `json:"-"` // little-endian float32, empty without an embedder
	CreatedAt time.Time `json:"created_at"`
}
