package qa_http

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"seal-qa/internal/domain"
	"seal-qa/internal/usecase"
)

// DBPinger is the readiness view of the database pool.
type DBPinger interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	askUsecase usecase.AskQuestionUsecase
	llmClient  domain.LLMClient
	db         DBPinger
}

func NewHandler(askUsecase usecase.AskQuestionUsecase, llmClient domain.LLMClient, db DBPinger) *Handler {
	return &Handler{
		askUsecase: askUsecase,
		llmClient:  llmClient,
		db:         db,
	}
}

// Register mounts the handler's routes on the echo instance.
func (h *Handler) Register(e *echo.Echo) {
	e.POST("/ask", h.Ask)
	e.GET("/healthz", h.Healthz)
	e.GET("/readyz", h.Readyz)
}

type askRequest struct {
	Question string `json:"question"`
}

type citationJSON struct {
	Source      string `json:"source"`
	Type        string `json:"type"`
	DocID       string `json:"doc_id"`
	ChunkID     string `json:"chunk_id"`
	Title       string `json:"title,omitempty"`
	Channel     string `json:"channel,omitempty"`
	Views       string `json:"views,omitempty"`
	Subscribers string `json:"subscribers,omitempty"`
}

type askResponse struct {
	Answer    string         `json:"answer"`
	Status    string         `json:"status"`
	Citations []citationJSON `json:"citations"`
}

// Answer a question about the product
// (POST /ask)
func (h *Handler) Ask(ctx echo.Context) error {
	var req askRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
	}

	answer, err := h.askUsecase.Execute(ctx.Request().Context(), usecase.AskQuestionInput{
		Question: req.Question,
	})
	if err != nil {
		return h.mapError(ctx, err)
	}

	citations := make([]citationJSON, 0, len(answer.Citations))
	for _, c := range answer.Citations {
		citations = append(citations, toCitationJSON(c))
	}

	return ctx.JSON(http.StatusOK, askResponse{
		Answer:    answer.Text,
		Status:    string(answer.Status),
		Citations: citations,
	})
}

func (h *Handler) mapError(ctx echo.Context, err error) error {
	var valErr *domain.ValidationError
	if errors.As(err, &valErr) {
		return ctx.JSON(http.StatusBadRequest, map[string]string{"error": valErr.Error()})
	}

	var classErr *domain.ClassificationError
	var genErr *domain.GenerationError
	if errors.As(err, &classErr) || errors.As(err, &genErr) {
		return ctx.JSON(http.StatusBadGateway, map[string]string{"error": err.Error()})
	}

	return ctx.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
}

func toCitationJSON(c domain.Citation) citationJSON {
	switch cite := c.(type) {
	case domain.FactsCitation:
		return citationJSON{
			Source:  string(domain.CorpusFacts),
			Type:    "facts",
			DocID:   cite.DocID,
			ChunkID: cite.ChunkID,
		}
	case domain.ExternalCitation:
		return citationJSON{
			Source:      string(domain.CorpusExternal),
			Type:        "external_review",
			DocID:       cite.DocID,
			ChunkID:     cite.ChunkID,
			Title:       cite.Title,
			Channel:     cite.Channel,
			Views:       cite.Views,
			Subscribers: cite.Subscribers,
		}
	default:
		return citationJSON{Source: string(c.Source())}
	}
}

// Liveness probe
// (GET /healthz)
func (h *Handler) Healthz(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// Readiness probe: the database and the completion provider must both answer
// (GET /readyz)
func (h *Handler) Readyz(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	if err := h.db.Ping(reqCtx); err != nil {
		return ctx.JSON(http.StatusServiceUnavailable, map[string]string{"status": "db down", "error": err.Error()})
	}

	if _, err := h.llmClient.Complete(reqCtx, "ping", 5, 0); err != nil {
		return ctx.JSON(http.StatusServiceUnavailable, map[string]string{"status": "llm down", "error": err.Error()})
	}

	return ctx.JSON(http.StatusOK, map[string]string{"status": "ready"})
}
