package assistant

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/khalidmnor/legal-ai-assistant/internal/completion"
)

// Completer performs one chat completion round trip. Satisfied by
// *completion.Client.
type Completer interface {
	Complete(ctx context.Context, systemPrompt, userPrompt, credential string) (string, error)
}

// Recorder receives usage metadata for completed runs. Implementations
// never see prompt text, completion text, credentials, or field values.
type Recorder interface {
	Record(functionID, status, errorKind string, duration time.Duration, promptChars, completionChars int)
}

// Result is the outcome of a successful run.
type Result struct {
	FunctionID   string `json:"function"`
	Text         string `json:"result"`
	DownloadName string `json:"download_name,omitempty"`
}

// Service drives a function run end to end: resolve, validate, compose,
// complete. It is the single submit path shared by the HTTP API, the
// MCP adapter, and the CLI.
type Service struct {
	registry  *Registry
	completer Completer
	recorder  Recorder
	log       *slog.Logger
}

func NewService(registry *Registry, completer Completer, recorder Recorder, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{
		registry:  registry,
		completer: completer,
		recorder:  recorder,
		log:       log,
	}
}

// Registry exposes the function catalogue behind the service.
func (s *Service) Registry() *Registry {
	return s.registry
}

// Run executes one assistant function. Validation failures surface as
// *ValidationError before any network I/O; nothing is sent upstream
// until the required fields are present.
func (s *Service) Run(ctx context.Context, functionID string, raw map[string]any, credential string) (*Result, error) {
	spec, err := s.registry.Get(functionID)
	if err != nil {
		return nil, err
	}

	fields, err := spec.Prepare(raw)
	if err != nil {
		s.record(spec.ID, err, 0, 0, 0)
		return nil, err
	}

	prompt := spec.Compose(fields)

	start := time.Now()
	text, err := s.completer.Complete(ctx, prompt.System, prompt.User, credential)
	elapsed := time.Since(start)
	promptChars := len(prompt.System) + len(prompt.User)
	if err != nil {
		s.record(spec.ID, err, elapsed, promptChars, 0)
		return nil, err
	}

	result := &Result{FunctionID: spec.ID, Text: text}
	if spec.Download != nil {
		result.DownloadName = spec.Download(fields, time.Now())
	}

	s.record(spec.ID, nil, elapsed, promptChars, len(text))
	s.log.Info("assistant.run",
		"function", spec.ID,
		"duration_ms", elapsed.Milliseconds(),
		"prompt_chars", promptChars,
		"completion_chars", len(text))
	return result, nil
}

func (s *Service) record(functionID string, err error, elapsed time.Duration, promptChars, completionChars int) {
	if s.recorder == nil {
		return
	}
	status := "ok"
	kind := ""
	if err != nil {
		status = "error"
		kind = errorKind(err)
	}
	s.recorder.Record(functionID, status, kind, elapsed, promptChars, completionChars)
}

// errorKind maps run errors onto stable names for the usage log.
func errorKind(err error) string {
	var ve *ValidationError
	var pe *completion.ProtocolError
	var te *completion.TransportError
	switch {
	case errors.As(err, &ve):
		return "validation"
	case errors.Is(err, completion.ErrMissingCredential):
		return "missing_credential"
	case errors.Is(err, completion.ErrMalformedResponse):
		return "malformed_response"
	case errors.As(err, &pe):
		return "protocol"
	case errors.As(err, &te):
		return "transport"
	default:
		return "internal"
	}
}
