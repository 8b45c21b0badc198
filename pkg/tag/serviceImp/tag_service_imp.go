package serviceImp

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"gorm.io/gorm"

	"github.com/Willysmile/Gestion-des-plantes-sub001/entities"
	"github.com/Willysmile/Gestion-des-plantes-sub001/pkg/display"
	"github.com/Willysmile/Gestion-des-plantes-sub001/pkg/tag/repository"
	"github.com/Willysmile/Gestion-des-plantes-sub001/pkg/tag/service"
)

type tagSvc struct{ r repository.TagRepository }

func NewTagService(r repository.TagRepository) service.TagService { return &tagSvc{r} }

// Slug folds case so "Salon" and "SALON" are the same tag.
func Slug(name string) string {
	return cases.Fold().String(strings.TrimSpace(name))
}

func (s *tagSvc) ListCategories() ([]entities.Category, error) { return s.r.ListCategories() }

func (s *tagSvc) CreateCategory(name string) (*entities.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, service.ErrNameRequired
	}
	if _, err := s.r.CategoryByName(name); err == nil {
		return nil, fmt.Errorf("category %q: %w", name, service.ErrDuplicate)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	c := &entities.Category{Name: name}
	if err := s.r.CreateCategory(c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *tagSvc) ListTags(categoryID *uint) ([]entities.Tag, error) { return s.r.ListTags(categoryID) }

func (s *tagSvc) CreateTag(name string, categoryID *uint) (*entities.Tag, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, service.ErrNameRequired
	}
	var cat *entities.Category
	if categoryID != nil {
		c, err := s.r.CategoryByID(*categoryID)
		if err != nil {
			return nil, fmt.Errorf("category %d: %w", *categoryID, err)
		}
		cat = c
	}
	slug := Slug(name)
	if _, err := s.r.FindTagBySlug(categoryID, slug); err == nil {
		return nil, fmt.Errorf("tag %q: %w", name, service.ErrDuplicate)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	t := &entities.Tag{Name: name, Slug: slug, CategoryID: categoryID}
	if err := s.r.CreateTag(t); err != nil {
		return nil, err
	}
	t.Category = cat
	return t, nil
}

func (s *tagSvc) DeleteTag(id uint) error {
	t, err := s.r.FindTag(id)
	if err != nil {
		return err
	}
	if display.IsAutomatic(*t) {
		return service.ErrAutomaticCategory
	}
	return s.r.DeleteTag(id)
}

func (s *tagSvc) PlantTags(plantID uint) (display.TagGroups, error) {
	tags, err := s.r.PlantTags(plantID)
	if err != nil {
		return display.TagGroups{}, err
	}
	return display.CategorizeTags(tags), nil
}

func (s *tagSvc) Attach(plantID, tagID uint) (*entities.Tag, error) {
	t, err := s.r.FindTag(tagID)
	if err != nil {
		return nil, err
	}
	if display.IsAutomatic(*t) {
		return nil, service.ErrAutomaticCategory
	}
	if err := s.r.Attach(plantID, tagID); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *tagSvc) Detach(plantID, tagID uint) error {
	t, err := s.r.FindTag(tagID)
	if err != nil {
		return err
	}
	if display.IsAutomatic(*t) {
		return service.ErrAutomaticCategory
	}
	return s.r.Detach(plantID, tagID)
}

func (s *tagSvc) SyncAutomatic(p *entities.Plant) error {
	values := map[string]string{
		display.CategoryLocation: p.Location,
		display.CategoryHealth:   p.HealthState,
		display.CategoryLight:    p.Light,
	}
	for _, name := range display.AutomaticCategoryNames() {
		if err := s.syncCategory(p.PlantID, name, strings.TrimSpace(values[name])); err != nil {
			return fmt.Errorf("sync %s: %w", name, err)
		}
	}
	return nil
}

func (s *tagSvc) syncCategory(plantID uint, category, value string) error {
	cat, err := s.r.CategoryByName(category)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		cat = &entities.Category{Name: category}
		err = s.r.CreateCategory(cat)
	}
	if err != nil {
		return err
	}

	var keep uint
	if value != "" {
		t, err := s.findOrCreate(cat.CategoryID, value)
		if err != nil {
			return err
		}
		keep = t.TagID
		if err := s.r.Attach(plantID, keep); err != nil {
			return err
		}
	}

	current, err := s.r.PlantTagsInCategory(plantID, cat.CategoryID)
	if err != nil {
		return err
	}
	for _, t := range current {
		if t.TagID == keep {
			continue
		}
		if err := s.r.Detach(plantID, t.TagID); err != nil {
			return err
		}
	}
	return nil
}

func (s *tagSvc) findOrCreate(categoryID uint, name string) (*entities.Tag, error) {
	slug := Slug(name)
	t, err := s.r.FindTagBySlug(&categoryID, slug)
	if err == nil {
		return t, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	t = &entities.Tag{Name: name, Slug: slug, CategoryID: &categoryID}
	return t, s.r.CreateTag(t)
}
