// ABOUTME: TextGenerator collaborator interface
// ABOUTME: The pipeline owns the prompt and schema contract, not the model choice
package intel

import "context"

// ResponseHint tells the generator what output format the prompt expects.
type ResponseHint string

const (
	// HintJSON asks the backend to emit a single JSON object with no prose.
	HintJSON ResponseHint = "json_object"
	// HintText asks for plain prose.
	HintText ResponseHint = "text"
)

// TextGenerator produces raw text for a prompt. Implementations must not
// retry internally: generative backends are not guaranteed idempotent, so
// retry policy belongs to the caller.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string, hint ResponseHint) (string, error)
}
