package extract

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/happy6team/ooh-marketing-sales/core"
)

// ParseResult is the outcome of reading model output: either records, or
// a failure carrying the raw text and the cause.
type ParseResult struct {
	Records []core.BrandIssueRecord
	Raw     string
	Err     error
}

// OK reports whether parsing succeeded.
func (r ParseResult) OK() bool {
	return r.Err == nil
}

func parsed(records []core.BrandIssueRecord) ParseResult {
	return ParseResult{Records: records}
}

func parseFailed(raw string, cause error) ParseResult {
	return ParseResult{Raw: raw, Err: cause}
}

var (
	thinkTagPattern  = regexp.MustCompile(`(?s)<think>.*?</think>`)
	codeFencePattern = regexp.MustCompile("(?s)```[a-zA-Z]*\\s*(.*?)```")
)

// Parse reads a list of {name, issue, description} objects from model
// output. It tolerates reasoning tags, code fences, surrounding prose,
// Python literal syntax and unquoted keys. It never returns an error;
// failures are reported through the result.
func Parse(raw string) ParseResult {
	cleaned := thinkTagPattern.ReplaceAllString(raw, "")
	if m := codeFencePattern.FindStringSubmatch(cleaned); m != nil {
		cleaned = m[1]
	}
	cleaned = strings.TrimSpace(cleaned)

	arrStart := strings.IndexByte(cleaned, '[')
	objStart := strings.IndexByte(cleaned, '{')
	if arrStart < 0 || (objStart >= 0 && objStart < arrStart) {
		if objStart >= 0 {
			return parseFailed(raw, ErrNotAList)
		}
		return parseFailed(raw, ErrNoJSON)
	}

	items, err := decodeFirstArray(cleaned[arrStart:])
	if err != nil {
		return parseFailed(raw, err)
	}

	records := make([]core.BrandIssueRecord, 0, len(items))
	for _, item := range items {
		var fields map[string]any
		if err := json.Unmarshal(item, &fields); err != nil {
			continue
		}
		records = append(records, core.BrandIssueRecord{
			Name:        stringField(fields, "name"),
			Issue:       stringField(fields, "issue"),
			Description: stringField(fields, "description"),
		})
	}
	return parsed(records)
}

// decodeFirstArray tries each '[' in turn and decodes the first balanced
// array that is, or can be repaired into, valid JSON.
func decodeFirstArray(s string) ([]json.RawMessage, error) {
	lastErr := ErrNoJSON
	for offset := 0; offset < len(s); {
		i := strings.IndexByte(s[offset:], '[')
		if i < 0 {
			break
		}
		start := offset + i
		offset = start + 1

		candidate, ok := extractBalanced(s[start:], '[', ']')
		if !ok {
			continue
		}
		if !json.Valid([]byte(candidate)) {
			candidate = repairJSON(normalizePythonLiterals(candidate))
		}

		var items []json.RawMessage
		if err := json.Unmarshal([]byte(candidate), &items); err != nil {
			lastErr = fmt.Errorf("invalid JSON array: %w", err)
			continue
		}
		return items, nil
	}
	return nil, lastErr
}

func stringField(fields map[string]any, key string) string {
	switch v := fields[key].(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(v)
	default:
		return strings.TrimSpace(fmt.Sprint(v))
	}
}

// extractBalanced returns the prefix of s that closes the bracket s starts
// with. Both quote styles are treated as strings so brackets inside text
// are ignored.
func extractBalanced(s string, openCh, closeCh byte) (string, bool) {
	depth := 0
	var quote byte
	escaped := false

	for i := 0; i < len(s); i++ {
		c := s[i]

		if quote != 0 {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == quote:
				quote = 0
			}
			continue
		}

		switch c {
		case '"', '\'':
			quote = c
		case openCh:
			depth++
		case closeCh:
			depth--
			if depth == 0 {
				return s[:i+1], true
			}
		}
	}
	return "", false
}
