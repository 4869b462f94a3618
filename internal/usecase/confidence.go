package usecase

import (
	"seal-qa/internal/domain"
)

// Per-corpus normalizers for the distance and variance terms. Facts sections
// are short and uniform, so they tolerate larger raw distances than the noisy
// review transcripts do.
const (
	factsDistanceNorm    = 1.5
	factsVarianceMult    = 1.5
	externalDistanceNorm = 2.0
	externalVarianceMult = 2.0
	distanceWeight       = 0.7
	consistencyWeight    = 0.3
)

// ConfidenceScore computes a retrieval confidence in [0,1] from the cosine
// distances of the retrieved chunks. It is a pure function: same chunks and
// corpus, same score. An empty retrieval scores 0.
func ConfidenceScore(chunks []domain.DocumentChunk, corpus domain.Corpus) float64 {
	if len(chunks) == 0 {
		return 0
	}

	var sum float64
	for _, c := range chunks {
		sum += c.Distance
	}
	avg := sum / float64(len(chunks))

	var variance float64
	for _, c := range chunks {
		d := c.Distance - avg
		variance += d * d
	}
	variance /= float64(len(chunks))

	distanceNorm, varianceMult := externalDistanceNorm, externalVarianceMult
	if corpus == domain.CorpusFacts {
		distanceNorm, varianceMult = factsDistanceNorm, factsVarianceMult
	}

	distanceConfidence := max(0, 1-avg/distanceNorm)
	consistencyConfidence := max(0, 1-variance*varianceMult)

	score := distanceWeight*distanceConfidence + consistencyWeight*consistencyConfidence
	return min(score, 1.0)
}

// AdequacyJudge decides whether a tier's retrieval is good enough to answer
// from. Thresholds and the opinion-intent lexicon come from config.
type AdequacyJudge struct {
	FactsThreshold    float64
	ExternalThreshold float64
	OpinionMarkers    domain.Lexicon
}

// Adequate applies the lexical opinion-intent override first: a question that
// asks for opinions can never be adequately answered from the facts corpus,
// regardless of how close the matches are. Otherwise the confidence score is
// compared against the corpus threshold.
func (j AdequacyJudge) Adequate(question string, chunks []domain.DocumentChunk, corpus domain.Corpus) bool {
	if len(chunks) == 0 {
		return false
	}

	if corpus == domain.CorpusFacts && j.OpinionMarkers.Matches(question) {
		return false
	}

	threshold := j.ExternalThreshold
	if corpus == domain.CorpusFacts {
		threshold = j.FactsThreshold
	}

	return ConfidenceScore(chunks, corpus) >= threshold
}
