package display

import "github.com/Willysmile/Gestion-des-plantes-sub001/entities"

// Names of the categories whose tags are derived from plant fields rather
// than entered by hand.
const (
	CategoryLocation = "Emplacement"
	CategoryHealth   = "État de la plante"
	CategoryLight    = "Luminosité"
)

var automaticCategories = map[string]struct{}{
	CategoryLocation: {},
	CategoryHealth:   {},
	CategoryLight:    {},
}

// AutomaticCategoryNames returns the automatic category names in display order.
func AutomaticCategoryNames() []string {
	return []string{CategoryLocation, CategoryHealth, CategoryLight}
}

// IsAutomaticCategory reports whether name is one of the automatic categories.
func IsAutomaticCategory(name string) bool {
	_, ok := automaticCategories[name]
	return ok
}

// TagGroups splits a plant's tags into the two groups shown by the UI.
type TagGroups struct {
	Automatic []entities.Tag `json:"automatic"`
	Manual    []entities.Tag `json:"manual"`
}

// Empty reports whether there is nothing to render.
func (g TagGroups) Empty() bool { return len(g.Automatic) == 0 && len(g.Manual) == 0 }

// IsAutomatic reports whether t belongs to an automatic category. Tags
// without a loaded category are manual.
func IsAutomatic(t entities.Tag) bool {
	return t.Category != nil && IsAutomaticCategory(t.Category.Name)
}

// CategorizeTags partitions tags, keeping input order inside each group. The
// groups are never nil so they encode as [] rather than null.
func CategorizeTags(tags []entities.Tag) TagGroups {
	g := TagGroups{Automatic: []entities.Tag{}, Manual: []entities.Tag{}}
	for _, t := range tags {
		if IsAutomatic(t) {
			g.Automatic = append(g.Automatic, t)
		} else {
			g.Manual = append(g.Manual, t)
		}
	}
	return g
}
