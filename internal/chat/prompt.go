package chat

import (
	"fmt"
	"strings"

	"github.com/brewkit/brewkit/internal/ollama"
	"github.com/brewkit/brewkit/internal/retrieval"
	"github.com/brewkit/brewkit/internal/tool"
)

const systemPrompt = `You are the ordering assistant for a coffee shop.
Answer questions about the menu using the menu context below. Use the
available tools to place or look up orders; report order confirmations from
the tool results, never invent them. If the menu context does not cover a
question, say so instead of guessing.`

// groundingBlock renders retrieved menu documents as the context section of
// the system prompt. The documents are visible to the model only, never
// echoed to the user verbatim.
func groundingBlock(matches []retrieval.ScoredMatch) string {
	if len(matches) == 0 {
		return ""
	}
	var sb strings.Builder
	sb.WriteString("[Menu Context]\n")
	for _, m := range matches {
		fmt.Fprintf(&sb, "- %s\n", m.Text)
	}
	return sb.String()
}

// withSystemPrompt prepends the system instructions (plus grounding, when
// present) to the session history without mutating it.
func (o *Orchestrator) withSystemPrompt(grounding string, history []ollama.Message) []ollama.Message {
	sys := systemPrompt
	if grounding != "" {
		sys += "\n\n" + grounding
	}

	out := make([]ollama.Message, 0, len(history)+1)
	out = append(out, ollama.Message{Role: "system", Content: sys})
	return append(out, history...)
}

// toolCatalog converts the registry's specs into the wire-format tool
// definitions sent with every model invocation.
func toolCatalog(reg *tool.Registry) []ollama.Tool {
	specs := reg.List()
	if len(specs) == 0 {
		return nil
	}
	tools := make([]ollama.Tool, len(specs))
	for i, spec := range specs {
		tools[i] = ollama.Tool{
			Type: "function",
			Function: ollama.ToolFunction{
				Name:        spec.Name,
				Description: spec.Description,
				Parameters:  spec.Parameters,
			},
		}
	}
	return tools
}
