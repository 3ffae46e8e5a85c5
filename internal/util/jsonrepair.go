package util

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// Models asked to "return only JSON" routinely wrap it in prose or code
// fences, or emit near-valid JSON (bare newlines inside strings, trailing
// commas, stray \_ escapes). RepairJSON turns best-effort text into a valid
// JSON document or fails with MalformedOutputError carrying the raw text.

// MalformedOutputError is returned when the model output could not be
// recovered into valid JSON after the single repair pass. Raw is kept for
// server-side logging only and must never be echoed to clients.
type MalformedOutputError struct {
	Raw string
	Err error
}

func (e *MalformedOutputError) Error() string {
	return fmt.Sprintf("malformed model output: %v", e.Err)
}

func (e *MalformedOutputError) Unwrap() error {
	return e.Err
}

var fenceRe = regexp.MustCompile("```[a-zA-Z]*")

// StripFences removes markdown code-fence markers (with optional language
// tag) anywhere in the text and trims surrounding whitespace.
func StripFences(s string) string {
	return strings.TrimSpace(fenceRe.ReplaceAllString(s, ""))
}

// RepairJSON extracts and parses the JSON object embedded in raw. It tries a
// strict parse after fence stripping, then applies one round of textual
// repairs and retries exactly once.
func RepairJSON(raw string) (string, error) {
	text := StripFences(raw)

	// The model sometimes prepends prose before the object.
	if start := strings.Index(text, "{"); start >= 0 {
		if end := strings.LastIndex(text, "}"); end > start {
			text = text[start : end+1]
		}
	}

	if json.Valid([]byte(text)) {
		return text, nil
	}

	repaired := applyRepairs(text)
	var probe any
	if err := json.Unmarshal([]byte(repaired), &probe); err != nil {
		return "", &MalformedOutputError{Raw: raw, Err: err}
	}
	return repaired, nil
}

var trailingCommaRe = regexp.MustCompile(`,\s*([}\]])`)

func applyRepairs(text string) string {
	text = trailingCommaRe.ReplaceAllString(text, "$1")
	text = strings.ReplaceAll(text, `\_`, "_")
	return escapeBareNewlines(text)
}

// escapeBareNewlines replaces literal newlines occurring inside string
// literals with their escaped form. Newlines between tokens are left alone.
func escapeBareNewlines(text string) string {
	var sb strings.Builder
	sb.Grow(len(text))

	inString := false
	escaped := false
	for _, r := range text {
		switch {
		case escaped:
			escaped = false
			sb.WriteRune(r)
		case r == '\\' && inString:
			escaped = true
			sb.WriteRune(r)
		case r == '"':
			inString = !inString
			sb.WriteRune(r)
		case r == '\n' && inString:
			sb.WriteString(`\n`)
		case r == '\r' && inString:
			sb.WriteString(`\r`)
		case r == '\t' && inString:
			sb.WriteString(`\t`)
		default:
			sb.WriteRune(r)
		}
	}
	return sb.String()
}
