package display

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Willysmile/Gestion-des-plantes-sub001/entities"
)

func tag(id uint, name string, category string) entities.Tag {
	t := entities.Tag{TagID: id, Name: name}
	if category != "" {
		t.Category = &entities.Category{Name: category}
	}
	return t
}

func ids(tags []entities.Tag) []uint {
	out := make([]uint, 0, len(tags))
	for _, t := range tags {
		out = append(out, t.TagID)
	}
	return out
}

func TestCategorizeTags_Empty(t *testing.T) {
	for _, in := range [][]entities.Tag{nil, {}} {
		g := CategorizeTags(in)
		require.NotNil(t, g.Automatic)
		require.NotNil(t, g.Manual)
		assert.Empty(t, g.Automatic)
		assert.Empty(t, g.Manual)
		assert.True(t, g.Empty())
	}

	b, err := json.Marshal(CategorizeTags(nil))
	require.NoError(t, err)
	assert.JSONEq(t, `{"automatic":[],"manual":[]}`, string(b))
}

func TestCategorizeTags_Partition(t *testing.T) {
	in := []entities.Tag{
		tag(1, "Salon", "Emplacement"),
		tag(2, "Verte", "Couleur"),
		tag(3, "Mi-ombre", "Luminosité"),
		tag(4, "Sans catégorie", ""),
		tag(5, "Malade", "État de la plante"),
		tag(6, "Cadeau", "Origine"),
	}
	g := CategorizeTags(in)
	assert.Equal(t, []uint{1, 3, 5}, ids(g.Automatic))
	assert.Equal(t, []uint{2, 4, 6}, ids(g.Manual))
	assert.False(t, g.Empty())
}

func TestCategorizeTags_MissingCategoryIsManual(t *testing.T) {
	g := CategorizeTags([]entities.Tag{{TagID: 9, Name: "orphan"}})
	assert.Empty(t, g.Automatic)
	assert.Equal(t, []uint{9}, ids(g.Manual))
}

func TestCategorizeTags_NamesAreExact(t *testing.T) {
	g := CategorizeTags([]entities.Tag{
		tag(1, "a", "emplacement"),
		tag(2, "b", "Etat de la plante"),
		tag(3, "c", " Luminosité"),
	})
	assert.Empty(t, g.Automatic)
	assert.Len(t, g.Manual, 3)
}

func TestIsAutomaticCategory(t *testing.T) {
	for _, n := range AutomaticCategoryNames() {
		assert.True(t, IsAutomaticCategory(n), n)
	}
	assert.False(t, IsAutomaticCategory("Couleur"))
	assert.False(t, IsAutomaticCategory(""))
}
