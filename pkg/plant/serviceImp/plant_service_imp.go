package serviceImp

import (
	"fmt"
	"strings"
	"time"

	"github.com/Willysmile/Gestion-des-plantes-sub001/entities"
	"github.com/Willysmile/Gestion-des-plantes-sub001/pkg/plant/repository"
	"github.com/Willysmile/Gestion-des-plantes-sub001/pkg/plant/service"
	"github.com/Willysmile/Gestion-des-plantes-sub001/pkg/season"
)

type plantSvc struct {
	r     repository.PlantRepository
	rules season.Rules
	tags  service.TagSyncer
}

// NewPlantService wires the plant store with the season rules. tags may be
// nil, in which case automatic tags are left alone.
func NewPlantService(r repository.PlantRepository, rules season.Rules, tags service.TagSyncer) service.PlantService {
	return &plantSvc{r: r, rules: rules, tags: tags}
}

func (s *plantSvc) Create(p *entities.Plant) (*entities.Plant, error) {
	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" {
		return nil, service.ErrNameRequired
	}
	if err := s.r.Create(p); err != nil {
		return nil, err
	}
	if err := s.sync(p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *plantSvc) Get(id uint, uid string) (*entities.Plant, error) { return s.r.FindByID(id, uid) }

func (s *plantSvc) List(uid string, f repository.ListFilter) ([]entities.Plant, error) {
	out, err := s.r.List(uid, f)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []entities.Plant{}
	}
	return out, nil
}

func (s *plantSvc) UpdatePartial(id uint, uid string, patch service.PlantPatch) (*entities.Plant, error) {
	p, err := s.r.FindByID(id, uid)
	if err != nil {
		return nil, err
	}
	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" {
			return nil, service.ErrNameRequired
		}
		p.Name = name
	}
	if patch.Species != nil {
		p.Species = *patch.Species
	}
	if patch.Family != nil {
		p.Family = *patch.Family
	}
	if patch.Location != nil {
		p.Location = strings.TrimSpace(*patch.Location)
	}
	if patch.Light != nil {
		p.Light = strings.TrimSpace(*patch.Light)
	}
	if patch.HealthState != nil {
		p.HealthState = strings.TrimSpace(*patch.HealthState)
	}
	if patch.AcquiredAt != nil {
		if patch.AcquiredAt.IsZero() {
			p.AcquiredAt = nil
		} else {
			t := *patch.AcquiredAt
			p.AcquiredAt = &t
		}
	}
	if patch.Notes != nil {
		p.Notes = *patch.Notes
	}
	if patch.Archived != nil {
		p.Archived = *patch.Archived
	}
	if err := s.r.Update(p); err != nil {
		return nil, err
	}
	if err := s.sync(p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *plantSvc) Delete(id uint, uid string) error { return s.r.Delete(id, uid) }

func (s *plantSvc) sync(p *entities.Plant) error {
	if s.tags == nil {
		return nil
	}
	if err := s.tags.SyncAutomatic(p); err != nil {
		return fmt.Errorf("plant %d: %w", p.PlantID, err)
	}
	return nil
}

func (s *plantSvc) Frequencies(id uint, uid string) ([]entities.SeasonalFrequency, error) {
	if _, err := s.r.FindByID(id, uid); err != nil {
		return nil, err
	}
	stored, err := s.r.Frequencies(id)
	if err != nil {
		return nil, err
	}
	return s.rules.Frequencies(id, stored), nil
}

func (s *plantSvc) SetFrequency(id uint, uid, seasonName string, wateringDays, fertilizingDays *int) (*entities.SeasonalFrequency, error) {
	name, ok := season.ParseSeason(seasonName)
	if !ok {
		return nil, fmt.Errorf("%q: %w", seasonName, service.ErrInvalidSeason)
	}
	for _, d := range []*int{wateringDays, fertilizingDays} {
		if d != nil && *d <= 0 {
			return nil, service.ErrInvalidInterval
		}
	}
	if _, err := s.r.FindByID(id, uid); err != nil {
		return nil, err
	}
	f := &entities.SeasonalFrequency{PlantID: id, Season: name, WateringDays: wateringDays, FertilizingDays: fertilizingDays}
	if err := s.r.UpsertFrequency(f); err != nil {
		return nil, err
	}
	return f, nil
}

func (s *plantSvc) CurrentFrequency(plantID uint, now time.Time) (entities.SeasonalFrequency, error) {
	stored, err := s.r.Frequencies(plantID)
	if err != nil {
		return entities.SeasonalFrequency{}, err
	}
	current := s.rules.SeasonOf(now)
	for _, f := range s.rules.Frequencies(plantID, stored) {
		if f.Season == current {
			return f, nil
		}
	}
	d := s.rules.Defaults(current)
	return entities.SeasonalFrequency{PlantID: plantID, Season: current, WateringDays: d.WateringDays, FertilizingDays: d.FertilizingDays, Default: true}, nil
}
