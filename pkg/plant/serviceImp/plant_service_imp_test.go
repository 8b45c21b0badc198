package serviceImp

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Willysmile/Gestion-des-plantes-sub001/database"
	"github.com/Willysmile/Gestion-des-plantes-sub001/entities"
	"github.com/Willysmile/Gestion-des-plantes-sub001/pkg/plant/repository"
	"github.com/Willysmile/Gestion-des-plantes-sub001/pkg/plant/repositoryImp"
	"github.com/Willysmile/Gestion-des-plantes-sub001/pkg/plant/service"
	"github.com/Willysmile/Gestion-des-plantes-sub001/pkg/season"
)

func ptr[T any](v T) *T { return &v }

type syncSpy struct {
	calls []string
	err   error
}

func (s *syncSpy) SyncAutomatic(p *entities.Plant) error {
	s.calls = append(s.calls, p.Location)
	return s.err
}

func newSvc(t *testing.T) (service.PlantService, *syncSpy) {
	t.Helper()
	db, err := database.Open(":memory:")
	require.NoError(t, err)
	spy := &syncSpy{}
	return NewPlantService(repositoryImp.New(db), season.New("north"), spy), spy
}

func TestCreate(t *testing.T) {
	s, spy := newSvc(t)
	_, err := s.Create(&entities.Plant{UserID: "u1", Name: "   "})
	assert.ErrorIs(t, err, service.ErrNameRequired)
	assert.Empty(t, spy.calls)

	p, err := s.Create(&entities.Plant{UserID: "u1", Name: "  Calathea ", Location: "Salon"})
	require.NoError(t, err)
	assert.Equal(t, "Calathea", p.Name)
	assert.NotZero(t, p.PlantID)
	assert.Equal(t, []string{"Salon"}, spy.calls)

	spy.err = errors.New("boom")
	_, err = s.Create(&entities.Plant{UserID: "u1", Name: "Pilea"})
	assert.ErrorContains(t, err, "boom")
}

func TestGetIsOwnerScoped(t *testing.T) {
	s, _ := newSvc(t)
	p, err := s.Create(&entities.Plant{UserID: "u1", Name: "Ficus"})
	require.NoError(t, err)

	_, err = s.Get(p.PlantID, "u2")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	got, err := s.Get(p.PlantID, "u1")
	require.NoError(t, err)
	assert.Equal(t, "Ficus", got.Name)
}

func TestListFilters(t *testing.T) {
	s, _ := newSvc(t)
	for _, p := range []entities.Plant{
		{UserID: "u1", Name: "Monstera", Species: "Monstera deliciosa"},
		{UserID: "u1", Name: "Aloe", Species: "Aloe vera", Archived: true},
		{UserID: "u1", Name: "Caoutchouc", Species: "Ficus elastica"},
		{UserID: "u2", Name: "Ficus", Species: "Ficus benjamina"},
	} {
		p := p
		_, err := s.Create(&p)
		require.NoError(t, err)
	}

	all, err := s.List("u1", repository.ListFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "Aloe", all[0].Name)

	ficus, err := s.List("u1", repository.ListFilter{Query: "FICUS"})
	require.NoError(t, err)
	require.Len(t, ficus, 1)
	assert.Equal(t, "Caoutchouc", ficus[0].Name)

	active, err := s.List("u1", repository.ListFilter{Archived: ptr(false)})
	require.NoError(t, err)
	assert.Len(t, active, 2)

	none, err := s.List("nobody", repository.ListFilter{})
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestListQueryFoldsAccents(t *testing.T) {
	s, _ := newSvc(t)
	erable, err := s.Create(&entities.Plant{UserID: "u1", Name: "Érable du Japon", Species: "Acer palmatum"})
	require.NoError(t, err)
	_, err = s.Create(&entities.Plant{UserID: "u1", Name: "Orchidée", Species: "Phalaenopsis"})
	require.NoError(t, err)

	for _, q := range []string{"Érable", "érable", "ÉRABLE", "japon", "ACER"} {
		got, err := s.List("u1", repository.ListFilter{Query: q})
		require.NoError(t, err)
		require.Len(t, got, 1, q)
		assert.Equal(t, erable.PlantID, got[0].PlantID, q)
	}

	_, err = s.UpdatePartial(erable.PlantID, "u1", service.PlantPatch{Name: ptr("Érable pourpre")})
	require.NoError(t, err)
	got, err := s.List("u1", repository.ListFilter{Query: "POURPRE"})
	require.NoError(t, err)
	assert.Len(t, got, 1)
	got, err = s.List("u1", repository.ListFilter{Query: "ORCHIDÉE"})
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestUpdatePartial(t *testing.T) {
	s, spy := newSvc(t)
	p, err := s.Create(&entities.Plant{UserID: "u1", Name: "Pothos", Location: "Salon", Notes: "keep"})
	require.NoError(t, err)

	out, err := s.UpdatePartial(p.PlantID, "u1", service.PlantPatch{Location: ptr(" Cuisine "), AcquiredAt: ptr(time.Date(2023, 4, 1, 0, 0, 0, 0, time.UTC))})
	require.NoError(t, err)
	assert.Equal(t, "Cuisine", out.Location)
	assert.Equal(t, "keep", out.Notes)
	require.NotNil(t, out.AcquiredAt)
	assert.Equal(t, time.April, out.AcquiredAt.Month())
	assert.Equal(t, []string{"Salon", "Cuisine"}, spy.calls)

	out, err = s.UpdatePartial(p.PlantID, "u1", service.PlantPatch{AcquiredAt: &time.Time{}})
	require.NoError(t, err)
	assert.Nil(t, out.AcquiredAt)

	_, err = s.UpdatePartial(p.PlantID, "u1", service.PlantPatch{Name: ptr("")})
	assert.ErrorIs(t, err, service.ErrNameRequired)
	_, err = s.UpdatePartial(p.PlantID, "u2", service.PlantPatch{Notes: ptr("x")})
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestDeleteIsSoft(t *testing.T) {
	s, _ := newSvc(t)
	p, err := s.Create(&entities.Plant{UserID: "u1", Name: "Cactus"})
	require.NoError(t, err)
	assert.ErrorIs(t, s.Delete(p.PlantID, "u2"), gorm.ErrRecordNotFound)
	require.NoError(t, s.Delete(p.PlantID, "u1"))
	_, err = s.Get(p.PlantID, "u1")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	assert.ErrorIs(t, s.Delete(p.PlantID, "u1"), gorm.ErrRecordNotFound)
}

func TestFrequencies(t *testing.T) {
	s, _ := newSvc(t)
	p, err := s.Create(&entities.Plant{UserID: "u1", Name: "Fougère"})
	require.NoError(t, err)

	_, err = s.SetFrequency(p.PlantID, "u1", "mousson", ptr(3), nil)
	assert.ErrorIs(t, err, service.ErrInvalidSeason)
	_, err = s.SetFrequency(p.PlantID, "u1", "summer", ptr(0), nil)
	assert.ErrorIs(t, err, service.ErrInvalidInterval)

	_, err = s.SetFrequency(p.PlantID, "u1", "summer", ptr(3), ptr(10))
	require.NoError(t, err)
	f, err := s.SetFrequency(p.PlantID, "u1", "été", ptr(2), nil) // upsert
	require.NoError(t, err)
	assert.Equal(t, season.Summer, f.Season)

	all, err := s.Frequencies(p.PlantID, "u1")
	require.NoError(t, err)
	require.Len(t, all, 4)
	for _, row := range all {
		if row.Season == season.Summer {
			assert.False(t, row.Default)
			assert.Equal(t, 2, *row.WateringDays)
			assert.Nil(t, row.FertilizingDays)
		} else {
			assert.True(t, row.Default, row.Season)
		}
	}

	cur, err := s.CurrentFrequency(p.PlantID, time.Date(2024, time.July, 1, 12, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, 2, *cur.WateringDays)
	cur, err = s.CurrentFrequency(p.PlantID, time.Date(2024, time.January, 1, 12, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, season.Winter, cur.Season)
	assert.True(t, cur.Default)

	_, err = s.Frequencies(p.PlantID, "u2")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
