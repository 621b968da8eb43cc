// ABOUTME: Synthesis output contract: prompt construction, parsing, repair, validation
// ABOUTME: Strict parse, one structural repair attempt, then SynthesisFormatError
package intel

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/jaynip-cloud/personapro/models"
)

// Tone constants.
const (
	ToneFormal = "formal"
	ToneCasual = "casual"
)

// Length constants. Length is a contract parameter: short pitches carry
// exactly 3 value outcomes, long pitches exactly 5.
const (
	LengthShort = "short"
	LengthLong  = "long"
)

// Options are the synthesis request parameters.
type Options struct {
	Tone          string
	Length        string
	SchemaVersion string
}

func (o *Options) normalize() error {
	if o.Tone == "" {
		o.Tone = ToneFormal
	}
	if o.Length == "" {
		o.Length = LengthShort
	}
	if o.SchemaVersion == "" {
		o.SchemaVersion = models.ShapeCurrent
	}
	if o.Tone != ToneFormal && o.Tone != ToneCasual {
		return fmt.Errorf("invalid tone: %s (valid: formal, casual)", o.Tone)
	}
	if o.Length != LengthShort && o.Length != LengthLong {
		return fmt.Errorf("invalid length: %s (valid: short, long)", o.Length)
	}
	if o.SchemaVersion != models.ShapeLegacy && o.SchemaVersion != models.ShapeCurrent {
		return fmt.Errorf("invalid schema version: %s (valid: legacy, current)", o.SchemaVersion)
	}
	return nil
}

// outcomeCount returns the exact number of value outcomes the length demands.
func (o Options) outcomeCount() int {
	if o.Length == LengthLong {
		return 5
	}
	return 3
}

// Contract issues generation requests and validates responses against the
// required output schema. A single generation call per request, never retried
// here: generative backends are not idempotent for side-effecting prompts.
type Contract struct {
	gen TextGenerator
}

func NewContract(gen TextGenerator) *Contract {
	return &Contract{gen: gen}
}

// SynthesizeInsight generates an insight document for the assembled layers.
func (c *Contract) SynthesizeInsight(ctx context.Context, layers Layers, opts Options) (*models.InsightDocument, error) {
	if err := opts.normalize(); err != nil {
		return nil, err
	}

	prompt := buildInsightPrompt(layers, opts)
	raw, err := c.gen.Generate(ctx, prompt, HintJSON)
	if err != nil {
		return nil, fmt.Errorf("generation failed: %w", err)
	}

	doc, err := ParseInsight(raw)
	if err != nil {
		return nil, err
	}
	doc.GeneratedAt = time.Now()
	return doc, nil
}

// SynthesizePitch generates a pitch document. All seven fields are required
// and the value-outcome count must match the requested length exactly.
func (c *Contract) SynthesizePitch(ctx context.Context, layers Layers, opts Options) (*models.PitchDocument, error) {
	if err := opts.normalize(); err != nil {
		return nil, err
	}

	prompt := buildPitchPrompt(layers, opts)
	raw, err := c.gen.Generate(ctx, prompt, HintJSON)
	if err != nil {
		return nil, fmt.Errorf("generation failed: %w", err)
	}

	doc, err := ParsePitch(raw, opts.outcomeCount())
	if err != nil {
		return nil, err
	}
	doc.GeneratedAt = time.Now()
	return doc, nil
}

func buildInsightPrompt(layers Layers, opts Options) string {
	var b strings.Builder
	b.WriteString("You are a client-relationship analyst. Using the context below, produce a structured analysis.\n\n")
	b.WriteString(layers.Client)
	b.WriteString("\n")
	b.WriteString(layers.Opportunity)
	b.WriteString("\n")
	b.WriteString(layers.Capability)
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("Write in a %s tone.\n\n", opts.Tone))

	if opts.SchemaVersion == models.ShapeLegacy {
		b.WriteString(`Respond with a single JSON object with these string keys:
{"behavioralAnalysis": "...", "sentimentAnalysis": "...", "relationshipHealth": "...", "communicationStyle": "...", "opportunities": "...", "risks": "...", "recommendations": "..."}
Omit a key only if the context gives no evidence for it.`)
	} else {
		b.WriteString(`Respond with a single JSON object of this shape:
{"executiveSummary": {"headline": "...", "sections": {"companyProfile": "...", "marketIntelligence": "...", "relationshipHealth": "...", "behavioralInsights": "...", "opportunities": "...", "actionPlan": "...", "keyMetrics": "...", "signals": "...", "dataAnalysis": "..."}}}
The "sections" object is required. Omit an individual section only if the context gives no evidence for it.`)
	}

	b.WriteString("\n\nReturn only the JSON object. No markdown, no commentary before or after.")
	return b.String()
}

func buildPitchPrompt(layers Layers, opts Options) string {
	var b strings.Builder
	b.WriteString("You are writing a sales pitch for the client described below.\n\n")
	b.WriteString(layers.Client)
	b.WriteString("\n")
	b.WriteString(layers.Opportunity)
	b.WriteString("\n")
	b.WriteString(layers.Capability)
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("Write in a %s tone.\n\n", opts.Tone))
	b.WriteString(fmt.Sprintf(`Respond with a single JSON object with exactly these keys, all required:
{"title": "...", "openingHook": "...", "problemFraming": "...", "proposedSolution": "...", "valueOutcomes": ["..."], "credibility": "...", "callToAction": "..."}
"valueOutcomes" must contain exactly %d entries.`, opts.outcomeCount()))
	b.WriteString("\n\nReturn only the JSON object. No markdown, no commentary before or after.")
	return b.String()
}

// ParseInsight validates raw generator output against the insight contract.
// Shape is detected by the presence of an executiveSummary.sections object;
// this probe is a permanent compatibility rule, and documents are never
// up-converted between shapes.
func ParseInsight(raw string) (*models.InsightDocument, error) {
	body, err := structuredBlock(raw)
	if err != nil {
		return nil, err
	}

	var probe map[string]json.RawMessage
	if err := json.Unmarshal(body, &probe); err != nil {
		return nil, formatErr("not a JSON object: %v", err)
	}

	if summaryRaw, ok := probe["executiveSummary"]; ok {
		var summary map[string]json.RawMessage
		if err := json.Unmarshal(summaryRaw, &summary); err != nil {
			return nil, formatErr("executiveSummary is not an object: %v", err)
		}
		sectionsRaw, ok := summary["sections"]
		if !ok {
			return nil, formatErr("executiveSummary.sections is missing")
		}
		var sectionsProbe map[string]json.RawMessage
		if err := json.Unmarshal(sectionsRaw, &sectionsProbe); err != nil {
			return nil, formatErr("executiveSummary.sections is not an object: %v", err)
		}

		current := &models.CurrentInsight{}
		if err := json.Unmarshal(body, current); err != nil {
			return nil, formatErr("malformed current-shape document: %v", err)
		}
		return &models.InsightDocument{Current: current}, nil
	}

	legacy := &models.LegacyInsight{}
	if err := json.Unmarshal(body, legacy); err != nil {
		return nil, formatErr("malformed legacy-shape document: %v", err)
	}
	if *legacy == (models.LegacyInsight{}) {
		return nil, formatErr("document matches neither legacy nor current shape")
	}
	return &models.InsightDocument{Legacy: legacy}, nil
}

// ParsePitch validates raw generator output against the pitch contract.
func ParsePitch(raw string, outcomes int) (*models.PitchDocument, error) {
	body, err := structuredBlock(raw)
	if err != nil {
		return nil, err
	}

	doc := &models.PitchDocument{}
	if err := json.Unmarshal(body, doc); err != nil {
		return nil, formatErr("malformed pitch document: %v", err)
	}

	for _, field := range []struct {
		name  string
		value string
	}{
		{"title", doc.Title},
		{"openingHook", doc.OpeningHook},
		{"problemFraming", doc.ProblemFraming},
		{"proposedSolution", doc.ProposedSolution},
		{"credibility", doc.Credibility},
		{"callToAction", doc.CallToAction},
	} {
		if strings.TrimSpace(field.value) == "" {
			return nil, formatErr("missing required pitch field: %s", field.name)
		}
	}
	if len(doc.ValueOutcomes) != outcomes {
		return nil, formatErr("expected exactly %d value outcomes, got %d", outcomes, len(doc.ValueOutcomes))
	}
	for i, outcome := range doc.ValueOutcomes {
		if strings.TrimSpace(outcome) == "" {
			return nil, formatErr("value outcome %d is empty", i+1)
		}
	}

	return doc, nil
}

// structuredBlock returns the response body to decode: the raw text when it
// is already a JSON object, otherwise the first balanced top-level JSON block
// found in it (the single repair attempt permitted by the contract).
func structuredBlock(raw string) ([]byte, error) {
	trimmed := strings.TrimSpace(raw)
	if json.Valid([]byte(trimmed)) && strings.HasPrefix(trimmed, "{") {
		return []byte(trimmed), nil
	}

	block, ok := firstJSONObject(trimmed)
	if !ok {
		return nil, formatErr("no structured block found in response")
	}
	return []byte(block), nil
}

// firstJSONObject scans for the first balanced top-level {...} block,
// honoring string literals and escapes.
func firstJSONObject(s string) (string, bool) {
	start := strings.IndexByte(s, '{')
	if start < 0 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		ch := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == '"':
				inString = false
			}
			continue
		}
		switch ch {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				candidate := s[start : i+1]
				if json.Valid([]byte(candidate)) {
					return candidate, true
				}
				return "", false
			}
		}
	}
	return "", false
}
