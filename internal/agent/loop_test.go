package agent

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/availops/availagent/internal/llm"
	"github.com/availops/availagent/internal/tools"
)

// scriptedProvider returns canned responses in order, recording every
// request it sees.
type scriptedProvider struct {
	responses []*llm.CompletionResponse
	requests  []llm.CompletionRequest
	calls     int
}

func (p *scriptedProvider) Name() string { return "scripted" }

func (p *scriptedProvider) Complete(_ context.Context, req llm.CompletionRequest) (*llm.CompletionResponse, error) {
	p.requests = append(p.requests, req)
	if p.calls >= len(p.responses) {
		// Keep requesting tools forever; used by the loop-limit test.
		p.calls++
		return &llm.CompletionResponse{
			ToolCalls: []llm.ToolCall{{ID: fmt.Sprintf("call_%d", p.calls), Name: "list_services", Arguments: "{}"}},
		}, nil
	}
	resp := p.responses[p.calls]
	p.calls++
	return resp, nil
}

// fakeExecutor records executed calls and returns canned results.
type fakeExecutor struct {
	executed []string
	results  map[string]string
}

func (e *fakeExecutor) Definitions() []llm.ToolDefinition {
	return []llm.ToolDefinition{{Name: "list_services", Description: "list", Parameters: []byte(`{}`)}}
}

func (e *fakeExecutor) Execute(_ context.Context, name string, _ string) (string, error) {
	e.executed = append(e.executed, name)
	if result, ok := e.results[name]; ok {
		return result, nil
	}
	return "", fmt.Errorf("%w: %q", tools.ErrUnknownTool, name)
}

func TestLoopDirectAnswer(t *testing.T) {
	provider := &scriptedProvider{responses: []*llm.CompletionResponse{
		{Content: "We monitor three services."},
	}}
	exec := &fakeExecutor{}

	loop := New(provider, exec, Options{MaxIterations: 5})
	answer, err := loop.Ask(context.Background(), "what services are there?")
	if err != nil {
		t.Fatalf("Ask() error: %v", err)
	}
	if answer != "We monitor three services." {
		t.Errorf("answer = %q", answer)
	}
	if len(exec.executed) != 0 {
		t.Errorf("tools executed = %v, want none", exec.executed)
	}
}

func TestLoopSingleToolRound(t *testing.T) {
	provider := &scriptedProvider{responses: []*llm.CompletionResponse{
		{ToolCalls: []llm.ToolCall{{ID: "call_1", Name: "list_services", Arguments: "{}"}}},
		{Content: "Three services are monitored."},
	}}
	exec := &fakeExecutor{results: map[string]string{
		"list_services": `{"count":3}`,
	}}

	loop := New(provider, exec, Options{MaxIterations: 5})
	answer, err := loop.Ask(context.Background(), "what services are there?")
	if err != nil {
		t.Fatalf("Ask() error: %v", err)
	}
	if answer != "Three services are monitored." {
		t.Errorf("answer = %q", answer)
	}
	if len(exec.executed) != 1 || exec.executed[0] != "list_services" {
		t.Errorf("executed = %v, want one list_services call", exec.executed)
	}

	// The second reasoning request must carry the tool result, attributed to
	// the originating call.
	second := provider.requests[1]
	last := second.Messages[len(second.Messages)-1]
	if last.Role != llm.RoleTool || last.ToolCallID != "call_1" {
		t.Errorf("tool result message = %+v, want role tool with call_1 attribution", last)
	}
	if last.Content != `{"count":3}` {
		t.Errorf("tool result content = %q", last.Content)
	}
}

func TestLoopMultipleSiblingCalls(t *testing.T) {
	provider := &scriptedProvider{responses: []*llm.CompletionResponse{
		{ToolCalls: []llm.ToolCall{
			{ID: "call_a", Name: "list_services", Arguments: "{}"},
			{ID: "call_b", Name: "list_services", Arguments: `{"filter":"api"}`},
		}},
		{Content: "done"},
	}}
	exec := &fakeExecutor{results: map[string]string{"list_services": `{}`}}

	loop := New(provider, exec, Options{MaxIterations: 5})
	if _, err := loop.Ask(context.Background(), "q"); err != nil {
		t.Fatalf("Ask() error: %v", err)
	}

	if len(exec.executed) != 2 {
		t.Fatalf("executed = %d calls, want 2", len(exec.executed))
	}

	// Both results must be present and attributed before reasoning resumes.
	second := provider.requests[1]
	var ids []string
	for _, msg := range second.Messages {
		if msg.Role == llm.RoleTool {
			ids = append(ids, msg.ToolCallID)
		}
	}
	if len(ids) != 2 || ids[0] != "call_a" || ids[1] != "call_b" {
		t.Errorf("tool result attribution = %v, want [call_a call_b]", ids)
	}
}

func TestLoopUnknownToolContinues(t *testing.T) {
	// Scenario: the model asks for an undeclared tool, gets an error result
	// in the conversation, then recovers with a final answer.
	provider := &scriptedProvider{responses: []*llm.CompletionResponse{
		{ToolCalls: []llm.ToolCall{{ID: "call_1", Name: "delete_everything", Arguments: "{}"}}},
		{Content: "I cannot do that, but here is what I found."},
	}}
	exec := &fakeExecutor{results: map[string]string{}}

	loop := New(provider, exec, Options{MaxIterations: 5})
	answer, err := loop.Ask(context.Background(), "q")
	if err != nil {
		t.Fatalf("Ask() error: %v, unknown tools must not crash the loop", err)
	}
	if answer == "" {
		t.Error("expected a final answer after the unknown-tool round")
	}

	second := provider.requests[1]
	last := second.Messages[len(second.Messages)-1]
	if last.Role != llm.RoleTool || !strings.Contains(last.Content, "unknown_tool") {
		t.Errorf("unknown-tool result = %+v, want an unknown_tool error payload", last)
	}
}

func TestLoopIterationLimit(t *testing.T) {
	// A provider that never stops requesting tools must trip the cap, not
	// hang forever.
	provider := &scriptedProvider{}
	exec := &fakeExecutor{results: map[string]string{"list_services": `{}`}}

	loop := New(provider, exec, Options{MaxIterations: 3})
	_, transcript, err := loop.Run(context.Background(), SeedConversation())
	if !errors.Is(err, ErrLoopLimit) {
		t.Fatalf("error = %v, want ErrLoopLimit", err)
	}
	if provider.calls != 3 {
		t.Errorf("reasoning calls = %d, want exactly 3", provider.calls)
	}
	if len(transcript) == 0 {
		t.Error("partial transcript missing on loop-limit failure")
	}
}

func TestLoopProviderErrorPropagates(t *testing.T) {
	provider := &failingProvider{}
	loop := New(provider, &fakeExecutor{}, Options{MaxIterations: 3})

	if _, err := loop.Ask(context.Background(), "q"); err == nil {
		t.Error("expected provider failure to propagate")
	}
}

type failingProvider struct{}

func (f *failingProvider) Name() string { return "failing" }
func (f *failingProvider) Complete(context.Context, llm.CompletionRequest) (*llm.CompletionResponse, error) {
	return nil, errors.New("connection refused")
}
