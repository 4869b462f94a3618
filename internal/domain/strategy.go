package domain

// SearchStrategy is the classifier's decision for a question. It is produced
// exactly once per request and drives which corpora may be consulted.
type SearchStrategy string

const (
	// StrategyRefuse means the question touches a sensitive topic and must not
	// be answered from any corpus.
	StrategyRefuse SearchStrategy = "refuse"
	// StrategyFactsOnly means only the facts corpus may serve the answer.
	StrategyFactsOnly SearchStrategy = "facts_only"
	// StrategyExternalSafe means the external corpus may be consulted when the
	// facts corpus is inadequate.
	StrategyExternalSafe SearchStrategy = "external_safe"
)
