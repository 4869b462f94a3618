package domain

// AnswerStatus is the terminal outcome of a question. Refused and
// NoInformationFound are successful outcomes, not errors.
type AnswerStatus string

const (
	StatusAnswered           AnswerStatus = "answered"
	StatusRefused            AnswerStatus = "refused"
	StatusNoInformationFound AnswerStatus = "no_information_found"
)

// Citation is a disclosed source reference attached to an answer. Exactly two
// variants exist, shaped per corpus: FactsCitation and ExternalCitation.
type Citation interface {
	Source() Corpus
}

// FactsCitation points at a facts-corpus chunk by its identifiers.
type FactsCitation struct {
	DocID   string
	ChunkID string
}

func (c FactsCitation) Source() Corpus { return CorpusFacts }

// ExternalCitation discloses a review source with the metadata parsed from the
// cited chunk. Metadata fields may be empty when the chunk content omits them.
type ExternalCitation struct {
	DocID       string
	ChunkID     string
	Title       string
	Channel     string
	Views       string
	Subscribers string
}

func (c ExternalCitation) Source() Corpus { return CorpusExternal }

// Answer is the terminal result of one question. Citations is non-empty if and
// only if Status is StatusAnswered.
type Answer struct {
	Text      string
	Status    AnswerStatus
	Citations []Citation
}
