package services

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"sync"
	"testing"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"resumelens/resume-extractor/internal/models"
)

type fakeResult struct {
	resp *genai.GenerateContentResponse
	err  error
}

type fakeCaller struct {
	mu      sync.Mutex
	calls   []string
	prompts []string
	configs []*genai.GenerateContentConfig
	results map[string]fakeResult
}

func newFakeCaller() *fakeCaller {
	return &fakeCaller{results: make(map[string]fakeResult)}
}

func (f *fakeCaller) set(model string, resp *genai.GenerateContentResponse, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.results[model] = fakeResult{resp: resp, err: err}
}

func (f *fakeCaller) GenerateContent(ctx context.Context, model, prompt string, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, model)
	f.prompts = append(f.prompts, prompt)
	f.configs = append(f.configs, config)

	result, ok := f.results[model]
	if !ok {
		return nil, errors.New("unexpected model call: " + model)
	}
	return result.resp, result.err
}

func textResponse(text string) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []*genai.Part{{Text: text}}},
		}},
	}
}

func notFoundError(model string) genai.APIError {
	return genai.APIError{
		Code:    http.StatusNotFound,
		Status:  "NOT_FOUND",
		Message: "models/" + model + " is not found for API version v1beta, or is not supported for generateContent",
	}
}

func newTestGeminiService(caller contentCaller, candidates ...string) *geminiService {
	return &geminiService{
		caller:        caller,
		candidates:    candidates,
		promptBuilder: NewPromptBuilder(models.SkillsFlat),
		logger:        zap.NewNop(),
	}
}

func TestExtractStructuredFirstModelSucceeds(t *testing.T) {
	caller := newFakeCaller()
	caller.set("model-a", textResponse(`{"firstname":"John"}`), nil)

	g := newTestGeminiService(caller, "model-a", "model-b")

	raw, err := g.ExtractStructured(context.Background(), "resume text")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if raw != `{"firstname":"John"}` {
		t.Fatalf("unexpected output: %q", raw)
	}
	if len(caller.calls) != 1 || caller.calls[0] != "model-a" {
		t.Fatalf("unexpected calls: %v", caller.calls)
	}
}

func TestExtractStructuredFallsBackOnUnavailableModel(t *testing.T) {
	caller := newFakeCaller()
	caller.set("model-a", nil, notFoundError("model-a"))
	caller.set("model-b", textResponse(`{"email":"john@x.com"}`), nil)
	caller.set("model-c", textResponse(`{"email":"never@called"}`), nil)

	g := newTestGeminiService(caller, "model-a", "model-b", "model-c")

	raw, err := g.ExtractStructured(context.Background(), "resume text")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if raw != `{"email":"john@x.com"}` {
		t.Fatalf("unexpected output: %q", raw)
	}
	if len(caller.calls) != 2 {
		t.Fatalf("expected model-c never called, calls: %v", caller.calls)
	}
}

func TestExtractStructuredStopsOnFatalError(t *testing.T) {
	caller := newFakeCaller()
	caller.set("model-a", nil, genai.APIError{
		Code:    http.StatusUnauthorized,
		Status:  "UNAUTHENTICATED",
		Message: "API key not valid",
	})
	caller.set("model-b", textResponse(`{}`), nil)

	g := newTestGeminiService(caller, "model-a", "model-b")

	_, err := g.ExtractStructured(context.Background(), "resume text")
	if err == nil {
		t.Fatal("expected error for auth failure")
	}
	if len(caller.calls) != 1 {
		t.Fatalf("expected no fallback after fatal error, calls: %v", caller.calls)
	}
}

func TestExtractStructuredAllModelsExhausted(t *testing.T) {
	caller := newFakeCaller()
	caller.set("model-a", nil, notFoundError("model-a"))
	caller.set("model-b", nil, notFoundError("model-b"))

	g := newTestGeminiService(caller, "model-a", "model-b")

	_, err := g.ExtractStructured(context.Background(), "resume text")

	var exhausted *models.ModelsExhaustedError
	if !errors.As(err, &exhausted) {
		t.Fatalf("expected ModelsExhaustedError, got %v", err)
	}
	if exhausted.Last == nil {
		t.Fatal("expected last underlying error to be attached")
	}
	if !strings.Contains(exhausted.Last.Error(), "model-b") {
		t.Fatalf("expected last error from final candidate, got %v", exhausted.Last)
	}
}

func TestExtractStructuredContentBlocked(t *testing.T) {
	caller := newFakeCaller()
	caller.set("model-a", &genai.GenerateContentResponse{}, nil)

	g := newTestGeminiService(caller, "model-a")

	_, err := g.ExtractStructured(context.Background(), "resume text")
	if !errors.Is(err, models.ErrContentBlocked) {
		t.Fatalf("expected ErrContentBlocked, got %v", err)
	}
}

func TestExtractStructuredCancelledContext(t *testing.T) {
	caller := newFakeCaller()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	g := newTestGeminiService(caller, "model-a")

	_, err := g.ExtractStructured(ctx, "resume text")
	if err == nil {
		t.Fatal("expected error for cancelled context")
	}
	if len(caller.calls) != 0 {
		t.Fatalf("expected no model calls after cancellation, calls: %v", caller.calls)
	}
}

func TestExtractStructuredRequestShape(t *testing.T) {
	caller := newFakeCaller()
	caller.set("model-a", textResponse(`{}`), nil)

	g := newTestGeminiService(caller, "model-a")

	if _, err := g.ExtractStructured(context.Background(), "John Smith, engineer"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	prompt := caller.prompts[0]
	if !strings.Contains(prompt, "---BEGIN RESUME---") || !strings.Contains(prompt, "---END RESUME---") {
		t.Fatalf("expected sentinel markers in prompt: %q", prompt)
	}
	if !strings.Contains(prompt, "John Smith, engineer") {
		t.Fatal("expected resume text embedded in prompt")
	}

	config := caller.configs[0]
	if config == nil || config.Temperature == nil || *config.Temperature != 0 {
		t.Fatalf("expected temperature pinned to 0, got %+v", config)
	}
	if config.ResponseMIMEType != "application/json" {
		t.Fatalf("expected JSON response MIME type, got %q", config.ResponseMIMEType)
	}
	if config.ResponseSchema == nil {
		t.Fatal("expected response schema to be set")
	}
}

func TestIsModelUnavailableByMessage(t *testing.T) {
	err := errors.New("models/gemini-x is not found for API version v1beta")
	if !isModelUnavailable(err) {
		t.Fatal("expected message-based classification")
	}

	if isModelUnavailable(errors.New("quota exceeded")) {
		t.Fatal("quota errors are not availability errors")
	}
}
