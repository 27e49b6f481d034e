// Package agent drives the bounded reasoning/tool-execution cycle that turns
// a natural-language question into an answer. The reasoning model is an
// opaque collaborator behind llm.Provider; the loop only routes its tool
// requests and feeds results back until it produces a final message or the
// iteration cap trips.
package agent

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/availops/availagent/internal/llm"
	"github.com/availops/availagent/internal/tools"
)

// ErrLoopLimit is returned when the reasoning model keeps requesting tools
// past the configured iteration cap.
var ErrLoopLimit = errors.New("tool loop exceeded iteration limit")

// ToolExecutor is the catalog contract the loop dispatches against.
type ToolExecutor interface {
	Definitions() []llm.ToolDefinition
	Execute(ctx context.Context, name string, arguments string) (string, error)
}

// Options configures a Loop.
type Options struct {
	Model         string
	MaxIterations int           // bounded re-entries into reasoning; default 8
	Timeout       time.Duration // wall-clock cap for one question; 0 = none
	Verbose       bool
}

// Loop is the tool-orchestration loop. One Loop may serve many questions;
// each Ask call owns its conversation, so concurrent questions never share
// mutable state.
type Loop struct {
	provider llm.Provider
	exec     ToolExecutor
	opts     Options
}

// New creates a Loop over the given provider and tool executor.
func New(provider llm.Provider, exec ToolExecutor, opts Options) *Loop {
	if opts.MaxIterations <= 0 {
		opts.MaxIterations = 8
	}
	return &Loop{provider: provider, exec: exec, opts: opts}
}

const systemPrompt = `You are an assistant that answers questions about service uptime.

You have tools to look up monitored services, their per-day promised
(committed) available minutes, their recorded downtime events, and to compute
realized availability over a date range. Always call compute_availability for
availability percentages instead of doing the arithmetic yourself: it merges
overlapping downtime intervals and handles days without a promise correctly.

Service ids look like SRV-001; when the user gives a service by name, find
its id with list_services first. Dates are YYYY-MM-DD. If a result reports
"no promise defined for range", say that availability is undefined for the
period rather than guessing a percentage. Mention data-quality warnings when
a result carries them. Answer concisely in the user's language.`

// Ask answers a single question, driving the loop to completion. It seeds a
// fresh conversation and discards it afterwards.
func (l *Loop) Ask(ctx context.Context, question string) (string, error) {
	seed := []llm.Message{
		{Role: llm.RoleSystem, Content: systemPrompt},
		{Role: llm.RoleUser, Content: question},
	}
	answer, _, err := l.Run(ctx, seed)
	return answer, err
}

// Run drives the reasoning/tool cycle over an existing conversation until
// the model produces a final answer. It returns the answer and the full
// transcript including tool traffic; on ErrLoopLimit the partial transcript
// is still returned so callers can explain what happened.
func (l *Loop) Run(ctx context.Context, conversation []llm.Message) (string, []llm.Message, error) {
	if l.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.opts.Timeout)
		defer cancel()
	}

	messages := make([]llm.Message, len(conversation))
	copy(messages, conversation)

	for iteration := 1; iteration <= l.opts.MaxIterations; iteration++ {
		resp, err := l.provider.Complete(ctx, llm.CompletionRequest{
			Model:    l.opts.Model,
			Messages: messages,
			Tools:    l.exec.Definitions(),
		})
		if err != nil {
			return "", messages, fmt.Errorf("reasoning step %d: %w", iteration, err)
		}

		// No tool requests means the model is done.
		if len(resp.ToolCalls) == 0 {
			messages = append(messages, llm.Message{
				Role:    llm.RoleAssistant,
				Content: resp.Content,
			})
			return resp.Content, messages, nil
		}

		messages = append(messages, llm.Message{
			Role:      llm.RoleAssistant,
			Content:   resp.Content,
			ToolCalls: resp.ToolCalls,
		})

		// Execute every requested call; results are attributed back to their
		// request by call id before re-entering reasoning.
		for _, call := range resp.ToolCalls {
			if l.opts.Verbose {
				log.Printf("tool call %s(%s)", call.Name, call.Arguments)
			}

			result, err := l.exec.Execute(ctx, call.Name, call.Arguments)
			if err != nil {
				if !errors.Is(err, tools.ErrUnknownTool) {
					// Repository or transport failure: terminal for the whole
					// question, not something the model can recover from.
					return "", messages, fmt.Errorf("executing %s: %w", call.Name, err)
				}
				// Report the bad tool name into the conversation and keep
				// going; the model can correct itself next iteration.
				result = fmt.Sprintf(`{"error":"unknown_tool","message":%q}`, err.Error())
			}

			messages = append(messages, llm.Message{
				Role:       llm.RoleTool,
				Content:    result,
				ToolCallID: call.ID,
				Name:       call.Name,
			})
		}
	}

	return "", messages, fmt.Errorf("%w (%d iterations)", ErrLoopLimit, l.opts.MaxIterations)
}

// SeedConversation returns the initial transcript for an interactive session.
func SeedConversation() []llm.Message {
	return []llm.Message{{Role: llm.RoleSystem, Content: systemPrompt}}
}
