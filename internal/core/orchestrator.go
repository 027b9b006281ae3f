// ABOUTME: Orchestrator routes user actions to pipeline stages via a pure routing table
// ABOUTME: Guarantees failed requests leave no partial writes behind
package core

import (
	"context"
	"errors"
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"time"

	"medassist/internal/extract"
	"medassist/internal/index"
	"medassist/internal/llm"
	"medassist/internal/models"
)

// Action identifies a user-requested operation.
type Action string

const (
	ActionIngest    Action = "ingest"
	ActionAsk       Action = "ask"
	ActionExtract   Action = "extract"
	ActionSummarize Action = "summarize"
	ActionReport    Action = "report"
)

// RequestState tracks a request through the pipeline.
type RequestState string

const (
	StateReceived    RequestState = "RECEIVED"
	StateRouted      RequestState = "ROUTED"
	StateIngesting   RequestState = "INGESTING"
	StateRetrieving  RequestState = "RETRIEVING"
	StateExtracting  RequestState = "EXTRACTING"
	StateSummarizing RequestState = "SUMMARIZING"
	StateReporting   RequestState = "REPORTING"
	StateCompleted   RequestState = "COMPLETED"
	StateFailed      RequestState = "FAILED"
)

// stageFor is the routing table: action type to pipeline stage. Routing is
// a pure function of the action; there is no dynamic dispatch between stages.
var stageFor = map[Action]RequestState{
	ActionIngest:    StateIngesting,
	ActionAsk:       StateRetrieving,
	ActionExtract:   StateExtracting,
	ActionSummarize: StateSummarizing,
	ActionReport:    StateReporting,
}

// Route resolves an action to its pipeline stage
func Route(action Action) (RequestState, error) {
	stage, ok := stageFor[action]
	if !ok {
		return StateFailed, fmt.Errorf("unknown action: %q", action)
	}
	return stage, nil
}

// Orchestrator sequences the pipeline components for each action. Writes
// go through the vector index's atomic insert/delete, so a FAILED request
// leaves persisted state exactly as it was.
type Orchestrator struct {
	registry   *extract.Registry
	chunker    *Chunker
	embedder   llm.Embedder
	idx        *index.VectorIndex
	retriever  *Retriever
	answerer   *AnswerGenerator
	summarizer *Summarizer
	extractor  *SectionExtractor
	reporter   *ReportBuilder
	sessions   *SessionStore
}

// NewOrchestrator wires the pipeline components together
func NewOrchestrator(registry *extract.Registry, chunker *Chunker, embedder llm.Embedder,
	idx *index.VectorIndex, retriever *Retriever, answerer *AnswerGenerator,
	summarizer *Summarizer, extractor *SectionExtractor, reporter *ReportBuilder,
	sessions *SessionStore) *Orchestrator {
	return &Orchestrator{
		registry:   registry,
		chunker:    chunker,
		embedder:   embedder,
		idx:        idx,
		retriever:  retriever,
		answerer:   answerer,
		summarizer: summarizer,
		extractor:  extractor,
		reporter:   reporter,
		sessions:   sessions,
	}
}

// IngestResult reports one successfully ingested document.
type IngestResult struct {
	DocumentID   string       `json:"document_id"`
	Filename     string       `json:"filename"`
	SegmentCount int          `json:"segment_count"`
	Warning      string       `json:"warning,omitempty"`
	State        RequestState `json:"state"`
}

// Ingest processes one file: extract, chunk, embed, and atomically insert.
// A failure at any step leaves no trace of the document in the index.
func (o *Orchestrator) Ingest(ctx context.Context, path string) (*IngestResult, error) {
	stage, err := Route(ActionIngest)
	if err != nil {
		return nil, err
	}
	log.Printf("ingest %s: %s", path, stage)

	extraction, err := o.registry.Extract(path)
	if err != nil {
		return nil, err
	}

	doc := &models.SourceDocument{
		DocumentID: models.NewDocumentID(),
		Filename:   filepath.Base(path),
		Format:     extraction.Format,
		IngestedAt: time.Now().UTC(),
	}

	// Empty extraction with a warning (e.g. unreadable scan) still records
	// the document so the user sees it listed, just without segments.
	if strings.TrimSpace(extraction.Text) == "" {
		if extraction.Warning == "" {
			return nil, &extract.ExtractionError{Path: path, Reason: "no text content"}
		}
		if err := o.idx.Insert(doc, nil, nil); err != nil {
			return nil, fmt.Errorf("recording empty document: %w", err)
		}
		return &IngestResult{
			DocumentID: doc.DocumentID,
			Filename:   doc.Filename,
			Warning:    extraction.Warning,
			State:      StateCompleted,
		}, nil
	}

	segments := o.chunker.Chunk(doc.DocumentID, extraction.Text)

	// Reject individually bad segments, keep the rest of the document
	var kept []models.Segment
	var skipped int
	for _, seg := range segments {
		if strings.TrimSpace(seg.Text) == "" || len(seg.Text) > llm.MaxEmbedInputChars {
			skipped++
			continue
		}
		kept = append(kept, seg)
	}
	if len(kept) == 0 {
		return nil, &llm.EmbeddingError{Reason: "no embeddable segments in document"}
	}

	texts := make([]string, len(kept))
	for i, seg := range kept {
		texts[i] = seg.Text
	}
	vectors, err := o.embedder.EmbedBatch(texts)
	if err != nil {
		return nil, fmt.Errorf("embedding %s: %w", doc.Filename, err)
	}

	embeddings := make([]models.Embedding, len(kept))
	for i, seg := range kept {
		doc.SegmentIDs = append(doc.SegmentIDs, seg.SegmentID)
		embeddings[i] = models.Embedding{
			SegmentID:  seg.SegmentID,
			DocumentID: doc.DocumentID,
			Vector:     vectors[i],
		}
	}

	if err := o.idx.Insert(doc, kept, embeddings); err != nil {
		return nil, fmt.Errorf("indexing %s: %w", doc.Filename, err)
	}

	result := &IngestResult{
		DocumentID:   doc.DocumentID,
		Filename:     doc.Filename,
		SegmentCount: len(kept),
		State:        StateCompleted,
	}
	if skipped > 0 {
		result.Warning = fmt.Sprintf("%d segments rejected during embedding", skipped)
	}
	if extraction.Warning != "" {
		result.Warning = extraction.Warning
	}
	return result, nil
}

// BatchResult aggregates per-file outcomes of a batch ingestion.
type BatchResult struct {
	Succeeded     []IngestResult `json:"succeeded"`
	Failed        []FileFailure  `json:"failed"`
	TotalSegments int            `json:"total_segments"`
}

// FileFailure records one file that could not be ingested.
type FileFailure struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

// IngestBatch processes files independently: one corrupt file never aborts
// the batch, and each failure is reported per-file.
func (o *Orchestrator) IngestBatch(ctx context.Context, paths []string) *BatchResult {
	batch := &BatchResult{}
	for _, path := range paths {
		result, err := o.Ingest(ctx, path)
		if err != nil {
			log.Printf("ingest failed for %s: %v", path, err)
			batch.Failed = append(batch.Failed, FileFailure{Path: path, Message: err.Error()})
			continue
		}
		batch.Succeeded = append(batch.Succeeded, *result)
		batch.TotalSegments += result.SegmentCount
	}
	return batch
}

// AskResult is the answer to one question within a session.
type AskResult struct {
	Answer          string       `json:"answer"`
	CitedSegmentIDs []string     `json:"cited_segment_ids,omitempty"`
	Sources         []SourceRef  `json:"sources,omitempty"`
	Grounded        bool         `json:"grounded"`
	NoDocuments     bool         `json:"no_documents,omitempty"`
	State           RequestState `json:"state"`
}

// Ask answers a question grounded in the index, updating the session's
// history. Questions within one session are serialized; a second question
// arriving mid-answer queues behind the first.
func (o *Orchestrator) Ask(ctx context.Context, sessionID, question string) (*AskResult, error) {
	if strings.TrimSpace(question) == "" {
		return nil, fmt.Errorf("question cannot be empty")
	}

	var result *AskResult
	err := o.sessions.WithSession(sessionID, func(session *models.Session) error {
		docs, _, err := o.idx.Stats()
		if err != nil {
			return fmt.Errorf("checking index state: %w", err)
		}
		if docs == 0 {
			result = &AskResult{
				Answer:      "No documents have been uploaded yet. Please ingest documents before asking questions.",
				NoDocuments: true,
				State:       StateCompleted,
			}
			return nil
		}

		retrieved, err := o.retriever.Retrieve(question, 0, session)
		if err != nil {
			return err
		}

		answer, err := o.answerer.Answer(ctx, question, retrieved, session.Turns)
		if err != nil {
			return err
		}

		turn, err := models.NewConversationTurn(question, answer.Text, answer.CitedSegmentIDs)
		if err != nil {
			return err
		}
		session.AppendTurn(*turn)

		result = &AskResult{
			Answer:          answer.Text,
			CitedSegmentIDs: answer.CitedSegmentIDs,
			Sources:         answer.Sources,
			Grounded:        answer.Grounded,
			State:           StateCompleted,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// statsKeywords trigger the stats intent in free-form chat input.
var statsKeywords = []string{"how many", "stats", "statistics", "count", "loaded"}

// DetermineIntent classifies free-form chat input with a pure keyword
// check; no model call is spent on routing.
func DetermineIntent(input string) Action {
	lower := strings.ToLower(input)
	for _, kw := range statsKeywords {
		if strings.Contains(lower, kw) {
			return ActionSummarize // stats handled locally, reuse summarize route
		}
	}
	return ActionAsk
}

// StatsResult reports the size of the knowledge base.
type StatsResult struct {
	DocumentCount int `json:"document_count"`
	SegmentCount  int `json:"segment_count"`
}

// Stats returns document and segment counts
func (o *Orchestrator) Stats() (*StatsResult, error) {
	docs, segs, err := o.idx.Stats()
	if err != nil {
		return nil, err
	}
	return &StatsResult{DocumentCount: docs, SegmentCount: segs}, nil
}

// ExtractSection extracts a named section across all documents
func (o *Orchestrator) ExtractSection(section string) (*SectionResult, error) {
	return o.extractor.ExtractSection(section)
}

// ExtractStructured extracts schema fields from one document
func (o *Orchestrator) ExtractStructured(documentID string, schema []string) (*StructuredResult, error) {
	return o.extractor.ExtractStructured(documentID, schema)
}

// Summarize generates a collection-wide summary
func (o *Orchestrator) Summarize(ctx context.Context, maxWords int) (*SummaryResult, error) {
	return o.summarizer.Summarize(ctx, maxWords)
}

// Report assembles a multi-section report
func (o *Orchestrator) Report(ctx context.Context, title string, sections []string) (*Report, error) {
	return o.reporter.Build(ctx, title, sections)
}

// Documents lists ingested documents
func (o *Orchestrator) Documents() ([]models.SourceDocument, error) {
	return o.idx.Documents()
}

// DeleteDocument removes one document from the index; unknown IDs are a no-op
func (o *Orchestrator) DeleteDocument(documentID string) error {
	return o.idx.Delete(documentID)
}

// ResetSession clears one session's conversation history
func (o *Orchestrator) ResetSession(sessionID string) {
	o.sessions.Reset(sessionID)
}

// ResetIndex clears the entire knowledge base and all sessions
func (o *Orchestrator) ResetIndex() error {
	if err := o.idx.Reset(); err != nil {
		return err
	}
	o.sessions.ResetAll()
	return nil
}

// ErrorKind maps an error to the machine-readable kind exposed at the API
// boundary. Unknown errors report as "internal".
func ErrorKind(err error) string {
	var (
		extractionErr *extract.ExtractionError
		embeddingErr  *llm.EmbeddingError
		rateLimitErr  *llm.RateLimitError
		generationErr *llm.GenerationError
		dimensionErr  *index.DimensionMismatchError
	)
	switch {
	case errors.As(err, &extractionErr):
		return "extraction_error"
	case errors.As(err, &embeddingErr):
		return "embedding_error"
	case errors.As(err, &rateLimitErr):
		return "rate_limit_error"
	case errors.As(err, &generationErr):
		return "generation_error"
	case errors.As(err, &dimensionErr):
		return "dimension_mismatch"
	default:
		return "internal"
	}
}
