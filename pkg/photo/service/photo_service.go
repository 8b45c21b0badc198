package service

import (
	"errors"
	"io"

	"github.com/Willysmile/Gestion-des-plantes-sub001/entities"
)

var (
	ErrNotImage = errors.New("only image uploads are accepted")
	ErrTooLarge = errors.New("file too large")
)

// Upload is one incoming file.
type Upload struct {
	Name        string
	ContentType string
	Size        int64
	Body        io.Reader
}

type PhotoService interface {
	Upload(plantID uint, in Upload, caption string) (*entities.Photo, error)
	Get(id uint) (*entities.Photo, error)
	List(plantID uint) ([]entities.Photo, error)
	SetMain(plantID, id uint) error
	UpdateCaption(id uint, caption string) (*entities.Photo, error)
	// Delete removes the row and the stored file. When the main photo goes,
	// the newest remaining one takes its place.
	Delete(id uint) error
}
