package domain

// Corpus identifies one of the two document collections the system retrieves from.
type Corpus string

const (
	// CorpusFacts is the authoritative specification corpus.
	CorpusFacts Corpus = "facts"
	// CorpusExternal is the opinion/review corpus.
	CorpusExternal Corpus = "external"
)
