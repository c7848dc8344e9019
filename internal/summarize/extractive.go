package summarize

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/lawbrief/lawbrief/internal/util"
)

const (
	// minSentenceChars filters fragments out of sentence ranking.
	minSentenceChars = 10

	// PageRank parameters for sentence centrality.
	dampingFactor  = 0.85
	rankIterations = 50
	rankTolerance  = 1e-6
)

var sentenceSplitRe = regexp.MustCompile(`[.!?]+`)

// keySentences returns the k most central sentences of text, in their
// original document order. Centrality comes from PageRank over the pairwise
// embedding-similarity graph (self-loops removed). On embedding failure the
// first k sentences are returned along with the error so the caller can
// degrade instead of failing.
func (s *Summarizer) keySentences(ctx context.Context, text string, k int) ([]string, error) {
	var sentences []string
	for _, part := range sentenceSplitRe.Split(text, -1) {
		if trimmed := strings.TrimSpace(part); len(trimmed) > minSentenceChars {
			sentences = append(sentences, trimmed)
		}
	}
	if len(sentences) <= k {
		return sentences, nil
	}

	vectors, err := s.embedder.Embed(ctx, sentences)
	if err != nil {
		return sentences[:k], fmt.Errorf("embed sentences: %w", err)
	}
	if len(vectors) != len(sentences) {
		return sentences[:k], fmt.Errorf("expected %d sentence embeddings, got %d", len(sentences), len(vectors))
	}

	n := len(sentences)
	sim := make([][]float64, n)
	for i := range sim {
		sim[i] = make([]float64, n)
		for j := range sim[i] {
			if i == j {
				continue // no self-loops
			}
			sim[i][j] = util.Cosine(vectors[i], vectors[j])
		}
	}

	scores := pagerank(sim)

	// Rank by centrality, then restore original order among the selected
	// sentences: summaries read by document position, not by score.
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return scores[idx[a]] > scores[idx[b]]
	})

	selected := append([]int(nil), idx[:k]...)
	sort.Ints(selected)

	picked := make([]string, len(selected))
	for i, s := range selected {
		picked[i] = sentences[s]
	}
	return picked, nil
}

// pagerank runs power iteration over a weighted adjacency matrix and returns
// the stationary score per node.
func pagerank(adj [][]float64) []float64 {
	n := len(adj)
	if n == 0 {
		return nil
	}

	outWeight := make([]float64, n)
	for i := range adj {
		for _, w := range adj[i] {
			if w > 0 {
				outWeight[i] += w
			}
		}
	}

	scores := make([]float64, n)
	for i := range scores {
		scores[i] = 1.0 / float64(n)
	}

	next := make([]float64, n)
	for iter := 0; iter < rankIterations; iter++ {
		base := (1.0 - dampingFactor) / float64(n)

		// Dangling nodes redistribute their mass uniformly.
		dangling := 0.0
		for i := range scores {
			if outWeight[i] == 0 {
				dangling += scores[i]
			}
		}
		base += dampingFactor * dangling / float64(n)

		for j := 0; j < n; j++ {
			sum := 0.0
			for i := 0; i < n; i++ {
				if outWeight[i] > 0 && adj[i][j] > 0 {
					sum += scores[i] * adj[i][j] / outWeight[i]
				}
			}
			next[j] = base + dampingFactor*sum
		}

		delta := 0.0
		for i := range scores {
			if d := next[i] - scores[i]; d >= 0 {
				delta += d
			} else {
				delta -= d
			}
		}
		copy(scores, next)
		if delta < rankTolerance {
			break
		}
	}

	return scores
}
