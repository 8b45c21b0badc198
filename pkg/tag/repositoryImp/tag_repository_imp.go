package repositoryImp

import (
	"gorm.io/gorm"

	"github.com/Willysmile/Gestion-des-plantes-sub001/entities"
	"github.com/Willysmile/Gestion-des-plantes-sub001/pkg/tag/repository"
)

type tagRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.TagRepository { return &tagRepo{db} }

func (r *tagRepo) ListCategories() ([]entities.Category, error) {
	var out []entities.Category
	return out, r.db.Order("name ASC").Find(&out).Error
}

func (r *tagRepo) CreateCategory(c *entities.Category) error { return r.db.Create(c).Error }

func (r *tagRepo) CategoryByName(name string) (*entities.Category, error) {
	var c entities.Category
	if err := r.db.Where("name = ?", name).First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *tagRepo) CategoryByID(id uint) (*entities.Category, error) {
	var c entities.Category
	if err := r.db.First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *tagRepo) ListTags(categoryID *uint) ([]entities.Tag, error) {
	q := r.db.Preload("Category")
	if categoryID != nil {
		q = q.Where("category_id = ?", *categoryID)
	}
	var out []entities.Tag
	return out, q.Order("name ASC, tag_id ASC").Find(&out).Error
}

func (r *tagRepo) CreateTag(t *entities.Tag) error { return r.db.Omit("Category").Create(t).Error }

func (r *tagRepo) FindTag(id uint) (*entities.Tag, error) {
	var t entities.Tag
	if err := r.db.Preload("Category").First(&t, id).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *tagRepo) FindTagBySlug(categoryID *uint, slug string) (*entities.Tag, error) {
	q := r.db.Preload("Category").Where("slug = ?", slug)
	if categoryID != nil {
		q = q.Where("category_id = ?", *categoryID)
	} else {
		q = q.Where("category_id IS NULL")
	}
	var t entities.Tag
	if err := q.First(&t).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *tagRepo) DeleteTag(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(`DELETE FROM plant_tags WHERE tag_id = ?`, id).Error; err != nil {
			return err
		}
		res := tx.Delete(&entities.Tag{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func (r *tagRepo) PlantTags(plantID uint) ([]entities.Tag, error) {
	var out []entities.Tag
	err := r.db.Preload("Category").
		Joins("JOIN plant_tags ON plant_tags.tag_id = tags.tag_id").
		Where("plant_tags.plant_id = ?", plantID).
		Order("tags.name ASC, tags.tag_id ASC").
		Find(&out).Error
	return out, err
}

func (r *tagRepo) PlantTagsInCategory(plantID, categoryID uint) ([]entities.Tag, error) {
	var out []entities.Tag
	err := r.db.
		Joins("JOIN plant_tags ON plant_tags.tag_id = tags.tag_id").
		Where("plant_tags.plant_id = ? AND tags.category_id = ?", plantID, categoryID).
		Find(&out).Error
	return out, err
}

func (r *tagRepo) Attach(plantID, tagID uint) error {
	return r.db.Exec(`INSERT OR IGNORE INTO plant_tags (plant_id, tag_id) VALUES (?, ?)`, plantID, tagID).Error
}

func (r *tagRepo) Detach(plantID, tagID uint) error {
	return r.db.Exec(`DELETE FROM plant_tags WHERE plant_id = ? AND tag_id = ?`, plantID, tagID).Error
}
