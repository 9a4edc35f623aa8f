// Package fuzzy implements an in-memory weighted fuzzy search index.
// An index is built once per corpus snapshot and is safe for concurrent use.
package fuzzy

import (
	"context"
	"sort"
	"strings"

	"github.com/custodia-labs/docnav/internal/core/domain"
	"github.com/custodia-labs/docnav/internal/core/ports/driven"
)

// Ensure interfaces are implemented.
var (
	_ driven.SearchIndex        = (*Index)(nil)
	_ driven.SearchIndexBuilder = (*Builder)(nil)
)

// Field weights. A query token's contribution is its best weighted match
// across all fields.
const (
	WeightTitle       = 4.0
	WeightTags        = 3.0
	WeightCategory    = 2.0
	WeightDescription = 1.0

	// PhraseBonus is added when the whole query appears in the title.
	PhraseBonus = 2.0
)

// cancelCheckInterval is how many entries are scored between context checks.
const cancelCheckInterval = 256

type field struct {
	weight float64
	tokens []string
}

type entry struct {
	id     string
	title  string
	fields []field
}

// Builder creates indexes that share one Scorer.
type Builder struct {
	scorer driven.Scorer
}

// NewBuilder creates a builder. A nil scorer selects EditDistanceScorer.
func NewBuilder(scorer driven.Scorer) *Builder {
	if scorer == nil {
		scorer = EditDistanceScorer{}
	}
	return &Builder{scorer: scorer}
}

// Build indexes the full entry set.
func (b *Builder) Build(entries []domain.SearchEntry) (driven.SearchIndex, error) {
	return b.build(entries), nil
}

func (b *Builder) build(entries []domain.SearchEntry) *Index {
	idx := &Index{
		scorer:  b.scorer,
		entries: make([]entry, 0, len(entries)),
	}

	for _, e := range entries {
		var tagTokens []string
		for _, tag := range e.Tags {
			tagTokens = append(tagTokens, Tokenize(tag)...)
		}
		titleTokens := Tokenize(e.Title)
		idx.entries = append(idx.entries, entry{
			id:    e.ID,
			title: strings.Join(titleTokens, " "),
			fields: []field{
				{weight: WeightTitle, tokens: titleTokens},
				{weight: WeightTags, tokens: tagTokens},
				{weight: WeightCategory, tokens: Tokenize(e.Category)},
				{weight: WeightDescription, tokens: Tokenize(e.Description)},
			},
		})
	}

	sort.Slice(idx.entries, func(i, j int) bool {
		return idx.entries[i].id < idx.entries[j].id
	})
	return idx
}

// Index is an immutable fuzzy index over search entries.
type Index struct {
	scorer  driven.Scorer
	entries []entry
}

// Len returns the number of indexed entries.
func (idx *Index) Len() int {
	return len(idx.entries)
}

// Search ranks entries against query. Every query token must match at
// least one field. A non-positive limit returns every match.
func (idx *Index) Search(ctx context.Context, query string, limit int) ([]driven.SearchHit, error) {
	tokens := Tokenize(query)
	hits := make([]driven.SearchHit, 0)
	if len(tokens) == 0 {
		return hits, nil
	}
	phrase := strings.Join(tokens, " ")

	for i := range idx.entries {
		if i%cancelCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		e := &idx.entries[i]
		score, ok := idx.score(e, tokens)
		if !ok {
			continue
		}
		if containsPhrase(e.title, phrase) {
			score += PhraseBonus
		}
		hits = append(hits, driven.SearchHit{ID: e.id, Score: score})
	}

	sort.SliceStable(hits, func(i, j int) bool {
		if hits[i].Score != hits[j].Score {
			return hits[i].Score > hits[j].Score
		}
		return hits[i].ID < hits[j].ID
	})

	if limit > 0 && len(hits) > limit {
		hits = hits[:limit]
	}
	return hits, nil
}

// score sums the best weighted match of each query token.
// It reports false when any token matches nothing.
func (idx *Index) score(e *entry, tokens []string) (float64, bool) {
	total := 0.0
	for _, qt := range tokens {
		best := 0.0
		for _, f := range e.fields {
			for _, ft := range f.tokens {
				if s := idx.scorer.Score(qt, ft) * f.weight; s > best {
					best = s
				}
			}
		}
		if best == 0 {
			return 0, false
		}
		total += best
	}
	return total, true
}

// containsPhrase matches phrase against whole tokens of title.
func containsPhrase(title, phrase string) bool {
	return title != "" && strings.Contains(" "+title+" ", " "+phrase+" ")
}
