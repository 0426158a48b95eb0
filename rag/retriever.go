// Package rag retrieves knowledge-base context for user inquiries.
package rag

import (
	"context"
	"sort"
	"strings"

	"github.com/tmc/langchaingo/tools"
	"github.com/tmc/langchaingo/vectorstores/chroma"

	"github.com/Aksharma127/social-to-lead-agent/utils"
)

// DefaultTopK is the number of passages joined into the context string.
const DefaultTopK = 3

// Retriever returns a newline-joined context string for a query. An empty
// string means the store had nothing to offer.
type Retriever interface {
	Retrieve(ctx context.Context, query string, k int) (string, error)
}

// KeywordRetriever scores passages by token overlap between the query and
// the passage text or id. It is the in-memory fallback when no vector store
// is configured.
type KeywordRetriever struct {
	passages []utils.Passage
}

func NewKeywordRetriever(passages []utils.Passage) *KeywordRetriever {
	return &KeywordRetriever{passages: passages}
}

func (r *KeywordRetriever) Retrieve(_ context.Context, query string, k int) (string, error) {
	if k <= 0 {
		k = DefaultTopK
	}
	if len(r.passages) == 0 {
		return "", nil
	}

	tokens := strings.Fields(strings.ToLower(query))

	type scored struct {
		passage utils.Passage
		score   int
	}
	ranked := make([]scored, 0, len(r.passages))
	anyMatch := false
	for _, p := range r.passages {
		text := strings.ToLower(p.Text)
		id := strings.ToLower(p.ID)
		s := 0
		for _, tok := range tokens {
			if strings.Contains(text, tok) || strings.Contains(id, tok) {
				s++
			}
		}
		if s > 0 {
			anyMatch = true
		}
		ranked = append(ranked, scored{passage: p, score: s})
	}

	// Stable sort keeps original order between equally scored passages.
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].score > ranked[j].score })

	picked := make([]string, 0, k)
	for _, sc := range ranked {
		if len(picked) == k {
			break
		}
		// When nothing matched at all, still return the first k passages so
		// a non-empty store never yields an empty context.
		if anyMatch && sc.score == 0 {
			break
		}
		picked = append(picked, sc.passage.Text)
	}
	return strings.Join(picked, "\n"), nil
}

func (r *KeywordRetriever) Name() string {
	return "keyword_search"
}

func (r *KeywordRetriever) Description() string {
	return "Search the knowledge base by keyword overlap. Returns newline-joined passages."
}

func (r *KeywordRetriever) Call(ctx context.Context, input string) (string, error) {
	return r.Retrieve(ctx, input, DefaultTopK)
}

// VectorRetriever searches the Chroma collection by embedding similarity.
// It doubles as an agent tool.
type VectorRetriever struct {
	Store *chroma.Store
}

func (r *VectorRetriever) Retrieve(ctx context.Context, query string, k int) (string, error) {
	if k <= 0 {
		k = DefaultTopK
	}
	results, err := r.Store.SimilaritySearch(ctx, query, k)
	if err != nil {
		return "", err
	}
	parts := make([]string, 0, len(results))
	for _, res := range results {
		parts = append(parts, res.PageContent)
	}
	return strings.Join(parts, "\n"), nil
}

func (r *VectorRetriever) Name() string {
	return "vector_search"
}

func (r *VectorRetriever) Description() string {
	return "Search the knowledge base for passages matching a query. Returns newline-joined passages."
}

func (r *VectorRetriever) Call(ctx context.Context, input string) (string, error) {
	return r.Retrieve(ctx, input, DefaultTopK)
}

var (
	_ Retriever  = (*KeywordRetriever)(nil)
	_ Retriever  = (*VectorRetriever)(nil)
	_ tools.Tool = (*KeywordRetriever)(nil)
	_ tools.Tool = (*VectorRetriever)(nil)
)
