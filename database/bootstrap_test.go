package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Willysmile/Gestion-des-plantes-sub001/entities"
)

func TestOpen_SeedsAutomaticCategories(t *testing.T) {
	db, err := Open(":memory:")
	require.NoError(t, err)

	var names []string
	require.NoError(t, db.Model(&entities.Category{}).Order("name").Pluck("name", &names).Error)
	assert.Equal(t, []string{"Emplacement", "Luminosité", "État de la plante"}, names)

	// seeding twice keeps one row per category
	require.NoError(t, seedCategories(db))
	var n int64
	require.NoError(t, db.Model(&entities.Category{}).Count(&n).Error)
	assert.EqualValues(t, 3, n)
}

func TestOpen_PlantTagsJoinTable(t *testing.T) {
	db, err := Open(":memory:")
	require.NoError(t, err)

	cat := entities.Category{Name: "Couleur"}
	require.NoError(t, db.Create(&cat).Error)
	tag := entities.Tag{Name: "Panachée", Slug: "panachée", CategoryID: &cat.CategoryID}
	require.NoError(t, db.Create(&tag).Error)
	p := entities.Plant{UserID: "u1", Name: "Monstera"}
	require.NoError(t, db.Create(&p).Error)
	require.NoError(t, db.Model(&p).Association("Tags").Append(&tag))

	var got entities.Plant
	require.NoError(t, db.Preload("Tags.Category").First(&got, p.PlantID).Error)
	require.Len(t, got.Tags, 1)
	assert.Equal(t, "Couleur", got.Tags[0].Category.Name)
}

func TestBackfillSearchKeys(t *testing.T) {
	db, err := Open(":memory:")
	require.NoError(t, err)
	p := entities.Plant{UserID: "u1", Name: "Érable", Species: "Acer"}
	require.NoError(t, db.Create(&p).Error)
	require.NoError(t, db.Model(&p).UpdateColumn("search_key", "").Error)

	require.NoError(t, backfillSearchKeys(db))
	var key string
	require.NoError(t, db.Model(&entities.Plant{}).Where("plant_id = ?", p.PlantID).Pluck("search_key", &key).Error)
	assert.Equal(t, "érable\nacer", key)
}
