package utils

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/tmc/langchaingo/embeddings"
	"github.com/tmc/langchaingo/llms/ollama"
	"github.com/tmc/langchaingo/schema"
	"github.com/tmc/langchaingo/textsplitter"
	"github.com/tmc/langchaingo/vectorstores/chroma"
)

// NewVectorStore opens the Chroma collection used for knowledge-base
// retrieval, embedding with a local Ollama model.
func NewVectorStore(chromaURL, embedModel, namespace string) (*chroma.Store, error) {
	llmEmbed, err := ollama.New(ollama.WithModel(embedModel))
	if err != nil {
		return nil, fmt.Errorf("failed to create ollama embed model: %w", err)
	}

	embedder, err := embeddings.NewEmbedder(llmEmbed)
	if err != nil {
		return nil, fmt.Errorf("failed to create embedder: %w", err)
	}

	store, err := chroma.New(
		chroma.WithChromaURL(chromaURL),
		chroma.WithEmbedder(embedder),
		chroma.WithDistanceFunction("cosine"),
		chroma.WithNameSpace(namespace),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to open vector store: %w", err)
	}
	return &store, nil
}

// SeedKnowledgeBase indexes the knowledge-base passages into the vector
// store. Oversized passages are chunked so a single record cannot blow the
// embedding context; each chunk keeps its source passage id in metadata.
func SeedKnowledgeBase(ctx context.Context, store *chroma.Store, passages []Passage) error {
	splitter := textsplitter.NewRecursiveCharacter(
		textsplitter.WithChunkSize(1000),
		textsplitter.WithChunkOverlap(0),
	)

	docs := make([]schema.Document, 0, len(passages))
	for _, p := range passages {
		if p.Text == "" {
			continue
		}
		chunks, err := splitter.SplitText(p.Text)
		if err != nil {
			return fmt.Errorf("failed to split passage %s: %w", p.ID, err)
		}
		for _, chunk := range chunks {
			docs = append(docs, schema.Document{
				PageContent: chunk,
				Metadata:    map[string]any{"id": p.ID},
			})
		}
	}

	if _, err := store.AddDocuments(ctx, docs); err != nil {
		slog.Warn("Error adding documents", "error", err)
		return fmt.Errorf("error adding documents: %w", err)
	}
	return nil
}
