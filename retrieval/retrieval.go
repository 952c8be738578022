// Copyright (c) 2026 grocermind
// Licensed under the MIT License.

// Package retrieval provides the document context used to ground FAQ and
// action responses.
package retrieval

import (
	"context"
	"encoding/json"
	"math"
	"os"
	"sort"
	"strings"

	pkgerrors "github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/grocermind/grocermind/model"
)

// ContextProvider returns formatted retrieval context for a query.
// docType optionally restricts results to one document type.
type ContextProvider interface {
	Context(ctx context.Context, query string, docType string) (string, error)
}

// Document is one retrievable text chunk
type Document struct {
	ID   string `json:"id"`
	Text string `json:"text"`
	Type string `json:"type"`

	embedding []float32
}

// LoadDocuments reads documents from a JSON file containing a list
func LoadDocuments(path string) ([]Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "reading documents %s", path)
	}
	var docs []Document
	if err := json.Unmarshal(data, &docs); err != nil {
		return nil, pkgerrors.Wrapf(err, "parsing documents %s", path)
	}
	return docs, nil
}

// EmbeddingStore ranks documents against a query by embedding cosine
// similarity. Documents are embedded once at construction time.
type EmbeddingStore struct {
	embedder model.Embedder
	docs     []Document
	topK     int
}

func NewEmbeddingStore(ctx context.Context, embedder model.Embedder, docs []Document, topK int) (*EmbeddingStore, error) {
	if topK <= 0 {
		topK = 5
	}

	if len(docs) > 0 {
		texts := make([]string, len(docs))
		for i, doc := range docs {
			texts[i] = doc.Text
		}
		embeddings, err := embedder.CreateEmbeddings(ctx, texts)
		if err != nil {
			return nil, pkgerrors.Wrap(err, "embedding documents")
		}
		for i := range docs {
			docs[i].embedding = embeddings[i]
		}
	}

	log.Info().Int("documents", len(docs)).Msg("retrieval store ready")
	return &EmbeddingStore{
		embedder: embedder,
		docs:     docs,
		topK:     topK,
	}, nil
}

// Context embeds the query and joins the top-ranked document texts
func (s *EmbeddingStore) Context(ctx context.Context, query string, docType string) (string, error) {
	if len(s.docs) == 0 {
		return "", nil
	}

	embeddings, err := s.embedder.CreateEmbeddings(ctx, []string{query})
	if err != nil {
		return "", pkgerrors.Wrap(err, "embedding query")
	}
	queryEmbedding := embeddings[0]

	type scored struct {
		doc   Document
		score float64
	}
	var candidates []scored
	for _, doc := range s.docs {
		if docType != "" && doc.Type != docType {
			continue
		}
		candidates = append(candidates, scored{doc: doc, score: cosineSimilarity(queryEmbedding, doc.embedding)})
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})

	if len(candidates) > s.topK {
		candidates = candidates[:s.topK]
	}
	texts := make([]string, len(candidates))
	for i, c := range candidates {
		texts[i] = c.doc.Text
	}
	return strings.Join(texts, "\n\n"), nil
}

func cosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// Static is a fixed-context provider for tests and for running without a
// document store.
type Static string

func (s Static) Context(ctx context.Context, query string, docType string) (string, error) {
	return string(s), nil
}
