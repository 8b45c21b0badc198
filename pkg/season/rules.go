package season

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/Willysmile/Gestion-des-plantes-sub001/entities"
)

const (
	Spring = "printemps"
	Summer = "été"
	Autumn = "automne"
	Winter = "hiver"
)

// All lists the seasons in calendar order starting with spring.
var All = []string{Spring, Summer, Autumn, Winter}

// Rules resolves the current season and the default care intervals.
type Rules interface {
	SeasonOf(t time.Time) string
	Defaults(season string) Frequency
	Frequencies(plantID uint, stored []entities.SeasonalFrequency) []entities.SeasonalFrequency
}

// Frequency is a pair of care intervals in days; nil means not tracked.
type Frequency struct {
	WateringDays    *int `json:"watering_days"`
	FertilizingDays *int `json:"fertilizing_days"`
}

type rules struct {
	south    bool
	defaults map[string]Frequency
}

func days(n int) *int { return &n }

func builtinDefaults() map[string]Frequency {
	return map[string]Frequency{
		Spring: {WateringDays: days(7), FertilizingDays: days(14)},
		Summer: {WateringDays: days(4), FertilizingDays: days(14)},
		Autumn: {WateringDays: days(10), FertilizingDays: days(30)},
		Winter: {WateringDays: days(14), FertilizingDays: nil},
	}
}

// New returns rules with the built-in defaults.
func New(hemisphere string) Rules {
	return &rules{south: strings.EqualFold(hemisphere, "south"), defaults: builtinDefaults()}
}

// LoadFromFiles starts from the built-in defaults and applies the optional CSV
// and XLSX overrides, in that order. Empty paths are skipped.
func LoadFromFiles(hemisphere, seasonCSV, seasonXLSX string) (Rules, error) {
	r := &rules{south: strings.EqualFold(hemisphere, "south"), defaults: builtinDefaults()}
	if seasonCSV != "" {
		f, err := os.Open(seasonCSV)
		if err != nil {
			return r, err
		}
		defer f.Close()
		if err := r.loadCSV(f); err != nil {
			return r, fmt.Errorf("%s: %w", seasonCSV, err)
		}
	}
	if seasonXLSX != "" {
		if err := r.loadXLSX(seasonXLSX); err != nil {
			return r, fmt.Errorf("%s: %w", seasonXLSX, err)
		}
	}
	return r, nil
}

func norm(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "\uFEFF") // BOM
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, "-", "")
	s = strings.ReplaceAll(s, "_", "")
	return s
}

var seasonAliases = map[string]string{
	"printemps": Spring, "spring": Spring,
	"été": Summer, "ete": Summer, "summer": Summer,
	"automne": Autumn, "autumn": Autumn, "fall": Autumn,
	"hiver": Winter, "winter": Winter,
}

// ParseSeason maps French or English season names to the canonical name.
func ParseSeason(s string) (string, bool) {
	v, ok := seasonAliases[norm(s)]
	return v, ok
}

func (r *rules) loadCSV(in io.Reader) error {
	cr := csv.NewReader(in)
	cr.FieldsPerRecord = -1
	head, err := cr.Read()
	if err != nil {
		return err
	}
	var rows [][]string
	for {
		rec, err := cr.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return err
		}
		rows = append(rows, rec)
	}
	return r.applyRows(head, rows)
}

func (r *rules) loadXLSX(path string) error {
	x, err := excelize.OpenFile(path)
	if err != nil {
		return err
	}
	defer x.Close()
	sheets := x.GetSheetList()
	if len(sheets) == 0 {
		return errors.New("no sheet")
	}
	rows, err := x.GetRows(sheets[0])
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return errors.New("empty sheet")
	}
	return r.applyRows(rows[0], rows[1:])
}

// applyRows reads Season, WateringDays and FertilizingDays columns, accepting
// a few header aliases. Blank cells keep the current value, "-" or "0"
// disables tracking.
func (r *rules) applyRows(head []string, rows [][]string) error {
	hmap := map[string]int{}
	for i, h := range head {
		hmap[norm(h)] = i
	}
	findAny := func(keys ...string) int {
		for _, k := range keys {
			if idx, ok := hmap[norm(k)]; ok {
				return idx
			}
		}
		return -1
	}
	cSeason := findAny("Season", "saison")
	cWater := findAny("WateringDays", "watering", "arrosage", "arrosagejours")
	cFert := findAny("FertilizingDays", "fertilizing", "engrais", "engraisjours")
	if cSeason == -1 || (cWater == -1 && cFert == -1) {
		return fmt.Errorf("missing required columns, found headers: %v", head)
	}

	for _, rec := range rows {
		get := func(idx int) string {
			if idx < 0 || idx >= len(rec) {
				return ""
			}
			return strings.TrimSpace(rec[idx])
		}
		s, ok := ParseSeason(get(cSeason))
		if !ok {
			continue
		}
		cur := r.defaults[s]
		if v, set := parseInterval(get(cWater)); set {
			cur.WateringDays = v
		}
		if v, set := parseInterval(get(cFert)); set {
			cur.FertilizingDays = v
		}
		r.defaults[s] = cur
	}
	return nil
}

func parseInterval(s string) (*int, bool) {
	switch s {
	case "":
		return nil, false
	case "-", "0":
		return nil, true
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return nil, false
	}
	return &n, true
}

// SeasonOf uses meteorological seasons: spring is March to May in the
// northern hemisphere and September to November in the southern one.
func (r *rules) SeasonOf(t time.Time) string {
	m := int(t.Month())
	if r.south {
		m = (m+5)%12 + 1
	}
	switch m {
	case 3, 4, 5:
		return Spring
	case 6, 7, 8:
		return Summer
	case 9, 10, 11:
		return Autumn
	default:
		return Winter
	}
}

func (r *rules) Defaults(season string) Frequency {
	f := r.defaults[season]
	return Frequency{WateringDays: copyInt(f.WateringDays), FertilizingDays: copyInt(f.FertilizingDays)}
}

func copyInt(p *int) *int {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// Frequencies returns one row per season: stored rows as they are, missing
// seasons filled from the defaults and flagged Default.
func (r *rules) Frequencies(plantID uint, stored []entities.SeasonalFrequency) []entities.SeasonalFrequency {
	bySeason := make(map[string]entities.SeasonalFrequency, len(stored))
	for _, f := range stored {
		bySeason[f.Season] = f
	}
	out := make([]entities.SeasonalFrequency, 0, len(All))
	for _, s := range All {
		if f, ok := bySeason[s]; ok {
			out = append(out, f)
			continue
		}
		d := r.Defaults(s)
		out = append(out, entities.SeasonalFrequency{
			PlantID: plantID, Season: s, WateringDays: d.WateringDays, FertilizingDays: d.FertilizingDays, Default: true,
		})
	}
	return out
}
