package serviceImp

import (
	"fmt"
	"io"
	"mime"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/Willysmile/Gestion-des-plantes-sub001/entities"
	"github.com/Willysmile/Gestion-des-plantes-sub001/pkg/metrics"
	"github.com/Willysmile/Gestion-des-plantes-sub001/pkg/photo/repository"
	"github.com/Willysmile/Gestion-des-plantes-sub001/pkg/photo/service"
)

// URLPrefix is where the upload dir is served.
const URLPrefix = "/uploads/"

var imageExt = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
	"image/heic": ".heic",
}

type photoSvc struct {
	r        repository.PhotoRepository
	dir      string
	maxBytes int64
}

func NewPhotoService(r repository.PhotoRepository, dir string, maxBytes int64) service.PhotoService {
	return &photoSvc{r: r, dir: dir, maxBytes: maxBytes}
}

func withURL(p *entities.Photo) { p.URL = path.Join(URLPrefix, p.FileName) }

func (s *photoSvc) Upload(plantID uint, in service.Upload, caption string) (*entities.Photo, error) {
	ct, _, _ := mime.ParseMediaType(in.ContentType)
	ext, ok := imageExt[ct]
	if !ok {
		return nil, fmt.Errorf("%q: %w", in.ContentType, service.ErrNotImage)
	}
	if s.maxBytes > 0 && in.Size > s.maxBytes {
		return nil, service.ErrTooLarge
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return nil, err
	}

	name := uuid.NewString() + ext
	dst := filepath.Join(s.dir, name)
	f, err := os.Create(dst)
	if err != nil {
		return nil, err
	}
	body := in.Body
	if s.maxBytes > 0 {
		body = io.LimitReader(in.Body, s.maxBytes+1)
	}
	n, err := io.Copy(f, body)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err == nil && s.maxBytes > 0 && n > s.maxBytes {
		err = service.ErrTooLarge
	}
	if err != nil {
		os.Remove(dst)
		return nil, err
	}

	count, err := s.r.Count(plantID)
	if err != nil {
		os.Remove(dst)
		return nil, err
	}
	p := &entities.Photo{
		PlantID:      plantID,
		FileName:     name,
		OriginalName: filepath.Base(in.Name),
		ContentType:  ct,
		Size:         n,
		Caption:      strings.TrimSpace(caption),
		IsMain:       count == 0,
	}
	if err := s.r.Create(p); err != nil {
		os.Remove(dst)
		return nil, err
	}
	metrics.IncPhotoUploaded()
	withURL(p)
	return p, nil
}

func (s *photoSvc) Get(id uint) (*entities.Photo, error) {
	p, err := s.r.FindByID(id)
	if err != nil {
		return nil, err
	}
	withURL(p)
	return p, nil
}

func (s *photoSvc) List(plantID uint) ([]entities.Photo, error) {
	out, err := s.r.List(plantID)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []entities.Photo{}
	}
	for i := range out {
		withURL(&out[i])
	}
	return out, nil
}

func (s *photoSvc) SetMain(plantID, id uint) error { return s.r.SetMain(plantID, id) }

func (s *photoSvc) UpdateCaption(id uint, caption string) (*entities.Photo, error) {
	p, err := s.r.FindByID(id)
	if err != nil {
		return nil, err
	}
	p.Caption = strings.TrimSpace(caption)
	if err := s.r.Update(p); err != nil {
		return nil, err
	}
	withURL(p)
	return p, nil
}

func (s *photoSvc) Delete(id uint) error {
	p, err := s.r.FindByID(id)
	if err != nil {
		return err
	}
	if err := s.r.Delete(id); err != nil {
		return err
	}
	if err := os.Remove(filepath.Join(s.dir, p.FileName)); err != nil && !os.IsNotExist(err) {
		log.Warn().Err(err).Str("file", p.FileName).Msg("[photo] remove file")
	}
	if !p.IsMain {
		return nil
	}
	rest, err := s.r.List(p.PlantID)
	if err != nil || len(rest) == 0 {
		return err
	}
	return s.r.SetMain(p.PlantID, rest[0].PhotoID)
}
