package serviceImp

import (
	"errors"
	"fmt"
	"slices"
	"sort"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/Willysmile/Gestion-des-plantes-sub001/entities"
	"github.com/Willysmile/Gestion-des-plantes-sub001/pkg/care/repository"
	"github.com/Willysmile/Gestion-des-plantes-sub001/pkg/care/service"
	"github.com/Willysmile/Gestion-des-plantes-sub001/pkg/display"
	"github.com/Willysmile/Gestion-des-plantes-sub001/pkg/metrics"
	plantrepo "github.com/Willysmile/Gestion-des-plantes-sub001/pkg/plant/repository"
	"github.com/Willysmile/Gestion-des-plantes-sub001/pkg/season"
)

type careSvc struct {
	r      repository.CareRepository
	plants service.Plants
	now    func() time.Time
}

func NewCareService(r repository.CareRepository, plants service.Plants) service.CareService {
	return &careSvc{r: r, plants: plants, now: time.Now}
}

func validate(e *entities.CareEvent) error {
	if !slices.Contains(entities.CareKinds, e.Kind) {
		return fmt.Errorf("%q: %w", e.Kind, service.ErrInvalidKind)
	}
	if e.Kind == entities.CareDisease && strings.TrimSpace(e.Disease) == "" {
		return service.ErrDiseaseRequired
	}
	if e.Amount != nil && *e.Amount < 0 {
		return service.ErrNegativeAmount
	}
	return nil
}

func withLabel(e *entities.CareEvent) {
	e.DoseLabel = display.DoseLabel(e.Amount, e.Unit)
}

func (s *careSvc) Record(plantID uint, e *entities.CareEvent) (*entities.CareEvent, error) {
	e.PlantID = plantID
	e.Kind = strings.ToLower(strings.TrimSpace(e.Kind))
	e.Unit = strings.TrimSpace(e.Unit)
	if err := validate(e); err != nil {
		return nil, err
	}
	if e.Date.IsZero() {
		e.Date = s.now()
	}
	if err := s.r.Create(e); err != nil {
		return nil, err
	}
	metrics.IncCareEvent(e.Kind)
	withLabel(e)
	return e, nil
}

func (s *careSvc) Get(id uint) (*entities.CareEvent, error) {
	e, err := s.r.FindByID(id)
	if err != nil {
		return nil, err
	}
	withLabel(e)
	return e, nil
}

func (s *careSvc) History(plantID uint, f repository.Filter) ([]entities.CareEvent, error) {
	if f.Kind != "" && !slices.Contains(entities.CareKinds, f.Kind) {
		return nil, fmt.Errorf("%q: %w", f.Kind, service.ErrInvalidKind)
	}
	out, err := s.r.List(plantID, f)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []entities.CareEvent{}
	}
	for i := range out {
		withLabel(&out[i])
	}
	return out, nil
}

func (s *careSvc) UpdatePartial(id uint, patch service.CarePatch) (*entities.CareEvent, error) {
	e, err := s.r.FindByID(id)
	if err != nil {
		return nil, err
	}
	if patch.Date != nil {
		if patch.Date.IsZero() {
			return nil, fmt.Errorf("date: %w", service.ErrInvalidDate)
		}
		e.Date = *patch.Date
	}
	if patch.Amount != nil {
		e.Amount = patch.Amount
	}
	if patch.Unit != nil {
		e.Unit = strings.TrimSpace(*patch.Unit)
	}
	if patch.Product != nil {
		e.Product = *patch.Product
	}
	if patch.PotSize != nil {
		e.PotSize = *patch.PotSize
	}
	if patch.Substrate != nil {
		e.Substrate = *patch.Substrate
	}
	if patch.Disease != nil {
		e.Disease = *patch.Disease
	}
	if patch.Treatment != nil {
		e.Treatment = *patch.Treatment
	}
	if patch.Resolved != nil {
		e.Resolved = *patch.Resolved
	}
	if patch.Notes != nil {
		e.Notes = *patch.Notes
	}
	if err := validate(e); err != nil {
		return nil, err
	}
	if err := s.r.Update(e); err != nil {
		return nil, err
	}
	withLabel(e)
	return e, nil
}

func (s *careSvc) Delete(id uint) error { return s.r.Delete(id) }

func (s *careSvc) Latest(plantID uint) (map[string]entities.CareEvent, error) {
	out := make(map[string]entities.CareEvent, len(entities.CareKinds))
	for _, k := range entities.CareKinds {
		e, err := s.r.Latest(plantID, k)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		withLabel(e)
		out[k] = *e
	}
	return out, nil
}

func (s *careSvc) lastDone(plantID uint, kind string) (*time.Time, error) {
	e, err := s.r.Latest(plantID, kind)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &e.Date, nil
}

func (s *careSvc) Status(plantID uint, now time.Time) ([]season.Status, error) {
	freq, err := s.plants.CurrentFrequency(plantID, now)
	if err != nil {
		return nil, err
	}
	intervals := []struct {
		kind string
		days *int
	}{
		{entities.CareWatering, freq.WateringDays},
		{entities.CareFertilizing, freq.FertilizingDays},
	}
	out := make([]season.Status, 0, len(intervals))
	for _, iv := range intervals {
		last, err := s.lastDone(plantID, iv.kind)
		if err != nil {
			return nil, err
		}
		out = append(out, season.Due(iv.kind, freq.Season, iv.days, last, now))
	}
	return out, nil
}

func (s *careSvc) Reminders(uid string, now time.Time) ([]service.Reminder, error) {
	active := false
	plants, err := s.plants.List(uid, plantrepo.ListFilter{Archived: &active})
	if err != nil {
		return nil, err
	}
	out := []service.Reminder{}
	for _, p := range plants {
		sts, err := s.Status(p.PlantID, now)
		if err != nil {
			return nil, fmt.Errorf("plant %d: %w", p.PlantID, err)
		}
		for _, st := range sts {
			if st.Due {
				out = append(out, service.Reminder{PlantID: p.PlantID, PlantName: p.Name, Status: st})
			}
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].DaysOverdue > out[j].DaysOverdue })
	return out, nil
}
