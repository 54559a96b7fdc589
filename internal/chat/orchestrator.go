package chat

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/brewkit/brewkit/internal/ollama"
	"github.com/brewkit/brewkit/internal/retrieval"
	"github.com/brewkit/brewkit/internal/tool"
)

// ErrToolDepthExceeded is returned when a single turn exceeds the configured
// tool-call depth. It aborts the turn instead of looping forever.
var ErrToolDepthExceeded = errors.New("tool call depth exceeded")

// ChatModel is the engine-side contract for tool-capable chat completion,
// satisfied by the Ollama client.
type ChatModel interface {
	Chat(ctx context.Context, model string, messages []ollama.Message, tools []ollama.Tool) (ollama.Message, error)
}

// ContextRetriever finds menu context relevant to a user message.
type ContextRetriever interface {
	Retrieve(ctx context.Context, query string, topK int) ([]retrieval.ScoredMatch, error)
}

// Options tune the orchestration loop. Zero values take defaults.
type Options struct {
	// TopK is the number of grounding documents injected per turn (default 4).
	TopK int
	// MaxToolDepth bounds model re-invocations within one turn (default 5).
	MaxToolDepth int
}

// Orchestrator runs the multi-turn conversation loop: it grounds each user
// message with retrieved menu context, invokes the chat model with the tool
// catalog, executes requested tool calls, and keeps per-session conversation
// state. Sessions process turns sequentially; concurrent Sends on the same
// session serialize.
type Orchestrator struct {
	model     ChatModel
	modelName string
	retriever ContextRetriever
	registry  *tool.Registry
	topK      int
	maxDepth  int
	logger    *slog.Logger

	mu       sync.Mutex
	sessions map[string]*session
}

// session holds one conversation's ordered message history. The mutex
// serializes turns; history grows monotonically for the session's lifetime.
type session struct {
	mu       sync.Mutex
	messages []ollama.Message
}

// New creates an Orchestrator. The registry may be empty but not nil.
func New(model ChatModel, modelName string, retriever ContextRetriever, registry *tool.Registry, opts Options) *Orchestrator {
	if opts.TopK <= 0 {
		opts.TopK = 4
	}
	if opts.MaxToolDepth <= 0 {
		opts.MaxToolDepth = 5
	}
	return &Orchestrator{
		model:     model,
		modelName: modelName,
		retriever: retriever,
		registry:  registry,
		topK:      opts.TopK,
		maxDepth:  opts.MaxToolDepth,
		logger:    slog.Default(),
		sessions:  make(map[string]*session),
	}
}

func (o *Orchestrator) session(id string) *session {
	o.mu.Lock()
	defer o.mu.Unlock()

	s, ok := o.sessions[id]
	if !ok {
		s = &session{}
		o.sessions[id] = s
	}
	return s
}

// History returns a copy of the session's conversation so far.
func (o *Orchestrator) History(sessionID string) []ollama.Message {
	s := o.session(sessionID)
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]ollama.Message, len(s.messages))
	copy(out, s.messages)
	return out
}

// Send processes one user turn and returns the assistant's final answer.
// Model requests for tool calls are validated, executed, and fed back until
// the model produces a final answer or MaxToolDepth is exceeded.
func (o *Orchestrator) Send(ctx context.Context, sessionID, userText string) (string, error) {
	s := o.session(sessionID)
	s.mu.Lock()
	defer s.mu.Unlock()

	s.messages = append(s.messages, ollama.Message{Role: "user", Content: userText})

	// Ground the turn once, on the user's message; tool iterations within
	// the turn reuse the same context.
	var grounding string
	if o.retriever != nil {
		matches, err := o.retriever.Retrieve(ctx, userText, o.topK)
		if err != nil {
			o.logger.Warn("context retrieval failed, continuing without grounding",
				"session", sessionID, "error", err)
		} else {
			grounding = groundingBlock(matches)
		}
	}

	tools := toolCatalog(o.registry)

	for depth := 0; ; depth++ {
		if depth > o.maxDepth {
			return "", fmt.Errorf("turn aborted after %d tool rounds: %w", o.maxDepth, ErrToolDepthExceeded)
		}

		reply, err := o.model.Chat(ctx, o.modelName, o.withSystemPrompt(grounding, s.messages), tools)
		if err != nil {
			return "", fmt.Errorf("chat completion: %w", err)
		}

		if len(reply.ToolCalls) == 0 {
			// Final answer: record it and close the turn.
			s.messages = append(s.messages, ollama.Message{Role: "assistant", Content: reply.Content})
			return reply.Content, nil
		}

		s.messages = append(s.messages, reply)
		for _, call := range reply.ToolCalls {
			result := o.executeToolCall(ctx, sessionID, call)
			s.messages = append(s.messages, ollama.Message{Role: "tool", Content: result})
		}
	}
}

// executeToolCall runs one model-requested tool call and renders the result
// as a tool message. Failures are surfaced into the conversation so the model
// can correct itself or apologize; the wording distinguishes a malformed call
// from a failed operation.
func (o *Orchestrator) executeToolCall(ctx context.Context, sessionID string, call ollama.ToolCall) string {
	name := call.Function.Name
	args := call.Function.Arguments
	if args == nil {
		args = map[string]any{}
	}

	out, err := o.registry.Invoke(ctx, name, args)
	if err == nil {
		o.logger.Debug("tool call succeeded", "session", sessionID, "tool", name)
		return out
	}

	o.logger.Warn("tool call failed", "session", sessionID, "tool", name, "error", err)

	var invalid *tool.InvalidArgumentsError
	var execErr *tool.ExecutionError
	switch {
	case errors.Is(err, tool.ErrUnknownTool):
		return fmt.Sprintf("error: no tool named %q is available", name)
	case errors.As(err, &invalid):
		return fmt.Sprintf("error: the call to %s was malformed: %s", name, invalid.Reason)
	case errors.As(err, &execErr):
		return fmt.Sprintf("error: the %s operation failed: %v", name, execErr.Err)
	default:
		return fmt.Sprintf("error: %v", err)
	}
}
