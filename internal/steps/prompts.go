package steps

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/AJaySi/AI-Writer-sub015/internal/calendar"
)

// buildPrompt assembles a step prompt from its instruction, the adapter
// inputs, and the outputs of its completed dependencies. Sections are
// emitted in sorted key order so prompts are deterministic.
func buildPrompt(instruction string, requiredKeys []string, inputs map[string]any, prior map[calendar.StepID]map[string]any) string {
	var b strings.Builder

	b.WriteString(instruction)
	b.WriteString("\n")

	if len(inputs) > 0 {
		b.WriteString("\n## Inputs\n")
		writeSortedFields(&b, inputs)
	}

	if len(prior) > 0 {
		ids := make([]string, 0, len(prior))
		for id := range prior {
			ids = append(ids, string(id))
		}
		sort.Strings(ids)
		for _, id := range ids {
			fmt.Fprintf(&b, "\n## Output of %s\n", id)
			writeSortedFields(&b, prior[calendar.StepID(id)])
		}
	}

	b.WriteString("\nRespond with a single JSON object containing exactly these keys: ")
	b.WriteString(strings.Join(requiredKeys, ", "))
	b.WriteString(".\n")
	return b.String()
}

func writeSortedFields(b *strings.Builder, fields map[string]any) {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(b, "- %s: %s\n", k, compactValue(fields[k]))
	}
}

// compactValue renders a field value on one line. Non-trivial values are
// JSON-encoded so nested structures survive the round trip into the prompt.
func compactValue(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case []string:
		return strings.Join(val, ", ")
	default:
		encoded, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", val)
		}
		return string(encoded)
	}
}
