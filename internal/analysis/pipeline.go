package analysis

import (
	"context"
	"encoding/json"
	"fmt"
)

const (
	defaultTemperature float32 = 0.3
	auditTemperature   float32 = 0.4
)

// Completer is the completion gateway the pipelines run against.
type Completer interface {
	CompleteText(ctx context.Context, prompt string, temperature float32) (string, error)
	CompleteJSON(ctx context.Context, prompt string, temperature float32) (any, error)
}

// Result is the common outcome of a pipeline run. Details holds the
// category-specific fields under their stored names.
type Result struct {
	Summary        string
	Recommendation string
	Thought        string
	Details        map[string]any
}

// run carries state between steps. vars holds intermediate parsed output
// that later prompts embed.
type run struct {
	topic    string
	opinions []string
	vars     map[string]any
	result   Result
}

// step is one prompt round trip. Structured steps decode JSON output; text
// steps capture the trimmed reply. A zero temperature means the default.
type step struct {
	name        string
	structured  bool
	temperature float32
	prompt      func(r *run) string
	capture     func(r *run, out any)
}

// execute runs the steps strictly in order; each prompt may embed output
// parsed by an earlier step, so there is no parallelism.
func execute(ctx context.Context, llm Completer, topic string, opinions []string, steps []step) (Result, error) {
	r := &run{
		topic:    topic,
		opinions: opinions,
		vars:     map[string]any{},
		result:   Result{Details: map[string]any{}},
	}
	for _, st := range steps {
		temperature := st.temperature
		if temperature == 0 {
			temperature = defaultTemperature
		}
		var out any
		var err error
		if st.structured {
			out, err = llm.CompleteJSON(ctx, st.prompt(r), temperature)
		} else {
			out, err = llm.CompleteText(ctx, st.prompt(r), temperature)
		}
		if err != nil {
			return Result{}, fmt.Errorf("step %s: %w", st.name, err)
		}
		st.capture(r, out)
	}
	return r.result, nil
}

// jsonBlock renders a value as indented JSON for embedding in a prompt.
func jsonBlock(v any) string {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(data)
}

func jsonInline(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(data)
}

func asText(out any) string {
	text, _ := out.(string)
	return text
}

// objectField returns a named field of a structured step's output, or the
// fallback when the output is not an object or lacks the field.
func objectField(out any, key string, fallback any) any {
	if obj, ok := out.(map[string]any); ok {
		if value, present := obj[key]; present && value != nil {
			return value
		}
	}
	return fallback
}
