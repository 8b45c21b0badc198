package serviceImp

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"
	"golang.org/x/text/cases"

	"github.com/Willysmile/Gestion-des-plantes-sub001/entities"
	"github.com/Willysmile/Gestion-des-plantes-sub001/pkg/guide"
	"github.com/Willysmile/Gestion-des-plantes-sub001/pkg/guide/embedder"
	"github.com/Willysmile/Gestion-des-plantes-sub001/pkg/guide/repository"
	"github.com/Willysmile/Gestion-des-plantes-sub001/pkg/guide/service"
	"github.com/Willysmile/Gestion-des-plantes-sub001/pkg/metrics"
)

const (
	chunkRunes = 1000

	// semantic similarity below minSimilarity is ignored; above it the
	// cosine is weighted into the keyword score.
	minSimilarity  = 0.35
	semanticWeight = 2.0
)

// Embedder turns texts into vectors for semantic ranking.
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
}

type Svc struct {
	r        repository.GuideRepository
	allow    map[string]bool
	maxBytes int
	client   *http.Client
	emb      Embedder
}

const maxRedirects = 10

// New builds the guide service. Only hosts in allowed may be fetched by
// IngestURL, redirects included; client may be nil.
func New(r repository.GuideRepository, allowed []string, maxBytes int, client *http.Client) *Svc {
	allow := map[string]bool{}
	for _, h := range allowed {
		if h = strings.ToLower(strings.TrimSpace(h)); h != "" {
			allow[h] = true
		}
	}
	s := &Svc{r: r, allow: allow, maxBytes: maxBytes}
	if client == nil {
		client = guide.DefaultClient
	}
	c := *client
	c.CheckRedirect = s.checkRedirect
	s.client = &c
	return s
}

// WithEmbedder enables semantic ranking. Keyword scoring still applies and is
// all that is left when the embedder fails.
func (s *Svc) WithEmbedder(e Embedder) *Svc {
	s.emb = e
	return s
}

func (s *Svc) checkRedirect(req *http.Request, via []*http.Request) error {
	if len(via) >= maxRedirects {
		return fmt.Errorf("stopped after %d redirects", maxRedirects)
	}
	if !s.allowed(req.URL) {
		return fmt.Errorf("redirect to %s: %w", req.URL.Host, service.ErrDomainNotAllowed)
	}
	return nil
}

var _ service.GuideService = (*Svc)(nil)

func (s *Svc) Ingest(title, species, text, sourceURL string) (*entities.CareGuide, int, error) {
	g, n, err := s.ingest(title, species, text, sourceURL)
	if err == nil {
		metrics.IncGuideIngested("text")
	}
	return g, n, err
}

func (s *Svc) ingest(title, species, text, sourceURL string) (*entities.CareGuide, int, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, 0, service.ErrTitleRequired
	}
	if strings.TrimSpace(text) == "" {
		return nil, 0, service.ErrTextRequired
	}
	g := &entities.CareGuide{Title: title, Species: strings.TrimSpace(species), SourceURL: sourceURL}
	parts := guide.Chunk(text, chunkRunes)
	vecs := s.embed(parts)
	rows := make([]entities.GuideChunk, len(parts))
	for i, p := range parts {
		rows[i] = entities.GuideChunk{Ord: i, Text: p}
		if vecs != nil {
			rows[i].Embedding = embedder.FloatsToBytes(vecs[i])
		}
	}
	if err := s.r.Create(g, rows); err != nil {
		return nil, 0, err
	}
	return g, len(rows), nil
}

// embed returns nil when no embedder is set or the call fails; chunks are
// then stored without vectors.
func (s *Svc) embed(texts []string) [][]float32 {
	if s.emb == nil || len(texts) == 0 {
		return nil
	}
	vecs, err := s.emb.Embed(context.Background(), texts)
	if err != nil || len(vecs) != len(texts) {
		log.Warn().Err(err).Int("texts", len(texts)).Msg("guide: embedding skipped")
		return nil
	}
	return vecs
}

func (s *Svc) allowed(u *url.URL) bool {
	return s.allow[strings.ToLower(u.Host)] || s.allow[strings.ToLower(u.Hostname())]
}

func (s *Svc) IngestURL(ctx context.Context, rawURL, title, species string) (*entities.CareGuide, int, error) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, 0, service.ErrBadURL
	}
	if !s.allowed(u) {
		return nil, 0, fmt.Errorf("%s: %w", u.Host, service.ErrDomainNotAllowed)
	}
	text, pageTitle, err := guide.FetchMainText(ctx, s.client, u.String(), s.maxBytes)
	if err != nil {
		return nil, 0, err
	}
	if strings.TrimSpace(title) == "" {
		title = pageTitle
	}
	if strings.TrimSpace(title) == "" {
		title = u.Host
	}
	g, n, err := s.ingest(title, species, text, u.String())
	if err == nil {
		metrics.IncGuideIngested("url")
	}
	return g, n, err
}

func (s *Svc) List() ([]entities.CareGuide, error) {
	out, err := s.r.List()
	if out == nil && err == nil {
		out = []entities.CareGuide{}
	}
	return out, err
}

func (s *Svc) Delete(id uint) error { return s.r.Delete(id) }

func terms(q string) []string {
	seen := map[string]bool{}
	var out []string
	for _, f := range strings.FieldsFunc(cases.Fold().String(q), func(r rune) bool {
		return !(r == '-' || r == '\'' || isWordRune(r))
	}) {
		if len([]rune(f)) < 2 || seen[f] {
			continue
		}
		seen[f] = true
		out = append(out, f)
	}
	return out
}

func isWordRune(r rune) bool {
	return r >= '0' && r <= '9' || r >= 'a' && r <= 'z' || r > 0x7f
}

// score counts term occurrences in the folded text; the full phrase earns a
// bonus so exact species names rank first.
func score(text, phrase string, ts []string) float64 {
	folded := cases.Fold().String(text)
	var sc float64
	for _, t := range ts {
		sc += float64(strings.Count(folded, t))
	}
	if sc > 0 && len(ts) > 1 && strings.Contains(folded, phrase) {
		sc += float64(len(ts))
	}
	return sc
}

func (s *Svc) Search(q string, k int) ([]service.Hit, error) {
	q = strings.TrimSpace(q)
	ts := terms(q)
	if len(ts) == 0 || k <= 0 {
		return []service.Hit{}, nil
	}
	chunks, err := s.r.AllChunks()
	if err != nil {
		return nil, err
	}
	var qvec []float32
	if vecs := s.embed([]string{q}); vecs != nil {
		qvec = vecs[0]
	}
	phrase := cases.Fold().String(q)
	hits := []service.Hit{}
	for _, ch := range chunks {
		sc := score(ch.Text, phrase, ts)
		if qvec != nil && len(ch.Embedding) > 0 {
			if sim := embedder.Cosine(qvec, embedder.BytesToFloats(ch.Embedding)); sim >= minSimilarity {
				sc += semanticWeight * sim
			}
		}
		if sc > 0 {
			hits = append(hits, service.Hit{ChunkID: ch.ChunkID, GuideID: ch.GuideID, Ord: ch.Ord, Text: ch.Text, Score: sc})
		}
	}
	sort.SliceStable(hits, func(i, j int) bool {
		if hits[i].Score != hits[j].Score {
			return hits[i].Score > hits[j].Score
		}
		if hits[i].GuideID != hits[j].GuideID {
			return hits[i].GuideID < hits[j].GuideID
		}
		return hits[i].Ord < hits[j].Ord
	})
	if len(hits) > k {
		hits = hits[:k]
	}

	ids := make([]uint, 0, len(hits))
	seen := map[uint]bool{}
	for _, h := range hits {
		if !seen[h.GuideID] {
			seen[h.GuideID] = true
			ids = append(ids, h.GuideID)
		}
	}
	meta, err := s.r.ByIDs(ids)
	if err != nil {
		return nil, err
	}
	for i := range hits {
		if g, ok := meta[hits[i].GuideID]; ok {
			hits[i].GuideTitle = g.Title
			hits[i].SourceURL = g.SourceURL
		}
	}
	return hits, nil
}
