// Package utils holds small shared helpers: defensive JSON parsing for LLM
// output and markdown cleanup.
package utils

import (
	"encoding/json"
	"regexp"
	"strings"

	jsonrepair "github.com/RealAlexandreAI/json-repair"
	hjson "github.com/hjson/hjson-go/v4"
)

// jsonBlockRe greedily grabs the first brace- or bracket-delimited block, so
// prose before and after an embedded object is ignored.
var jsonBlockRe = regexp.MustCompile(`(?s)\{.*\}|\[.*\]`)

// SafeJSONLoads extracts a JSON object from a string that may contain stray
// text around it, the dominant failure mode of free-text model responses.
// Strategies, in order:
//  1. parse the whole string as JSON
//  2. pull out the first {...} or [...] block and parse that
//  3. repair the string (github.com/RealAlexandreAI/json-repair) and parse again
//  4. parse the block as Hjson (most lenient)
//
// The strict parses run before the repair tier on purpose: repair round-trips
// numbers lossily, so well-formed JSON wrapped in prose must never go through
// it. On total failure it returns an empty map. It never returns an error.
func SafeJSONLoads(s string) map[string]any {
	s = CleanMarkdown(s)

	if m, ok := tryUnmarshalMap(s); ok {
		return m
	}

	block := jsonBlockRe.FindString(s)
	if block != "" {
		if m, ok := tryUnmarshalMap(block); ok {
			return m
		}
	}

	if repaired, err := jsonrepair.RepairJSON(s); err == nil {
		if m, ok := tryUnmarshalMap(repaired); ok {
			return m
		}
	}

	if block != "" {
		var h map[string]any
		if err := hjson.Unmarshal([]byte(block), &h); err == nil && h != nil {
			return h
		}
	}

	return map[string]any{}
}

func tryUnmarshalMap(s string) (map[string]any, bool) {
	var m map[string]any
	if err := json.Unmarshal([]byte(s), &m); err != nil || m == nil {
		return nil, false
	}
	return m, true
}

// CleanMarkdown strips outer markdown code fences (```json ... ```) that
// models wrap their output in, and trims whitespace.
func CleanMarkdown(input string) string {
	cleaned := strings.TrimSpace(input)

	for _, prefix := range []string{"```json", "```markdown", "```"} {
		if strings.HasPrefix(cleaned, prefix) && strings.HasSuffix(cleaned, "```") {
			cleaned = strings.TrimPrefix(cleaned, prefix)
			cleaned = strings.TrimSuffix(cleaned, "```")
			cleaned = strings.TrimSpace(cleaned)
			break
		}
	}

	return cleaned
}
