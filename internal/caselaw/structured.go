package caselaw

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"

	"github.com/kaptinlin/jsonrepair"
)

var errNotObject = errors.New("array element is not an object")

// parseStructured decodes the first JSON array of objects in raw. The decoder
// stops at the bracket that closes the array, so trailing prose and fences are
// ignored. When the first bracket does not decode, the first-to-last bracket
// span gets one pass through jsonrepair; after that, later brackets are tried
// so a citation like "[1]" in leading prose does not hide the array.
func parseStructured(raw string) ([]CaseResult, bool) {
	start := strings.Index(raw, "[")
	if start == -1 {
		return nil, false
	}

	if cases, err := decodeCases(raw[start:]); err == nil {
		return cases, true
	}

	end := strings.LastIndex(raw, "]")
	if end > start {
		if repaired, err := jsonrepair.JSONRepair(raw[start : end+1]); err == nil {
			if cases, err := decodeCases(repaired); err == nil {
				return cases, true
			}
		}
	}

	for i := start + 1; i < len(raw); i++ {
		next := strings.IndexByte(raw[i:], '[')
		if next == -1 {
			break
		}
		i += next
		if cases, err := decodeCases(raw[i:]); err == nil {
			return cases, true
		}
	}
	return nil, false
}

func decodeCases(s string) ([]CaseResult, error) {
	var items []json.RawMessage
	if err := json.NewDecoder(strings.NewReader(s)).Decode(&items); err != nil {
		return nil, err
	}

	cases := make([]CaseResult, 0, len(items))
	for _, item := range items {
		item = bytes.TrimSpace(item)
		if len(item) == 0 || item[0] != '{' {
			return nil, errNotObject
		}
		var raw map[string]json.RawMessage
		if err := json.Unmarshal(item, &raw); err != nil {
			return nil, err
		}
		fields := make(map[string]json.RawMessage, len(raw))
		for k, v := range raw {
			if _, exact := raw[strings.ToLower(k)]; exact && k != strings.ToLower(k) {
				continue
			}
			fields[strings.ToLower(k)] = v
		}
		cases = append(cases, CaseResult{
			Title:     fieldText(fields["title"]),
			Citation:  fieldText(fields["citation"]),
			Summary:   fieldText(fields["summary"]),
			Relevance: fieldText(fields["relevance"]),
		})
	}
	return cases, nil
}

// fieldText renders a JSON value as a string field. Strings are unquoted, null
// and absent values are empty, and anything else (numbers, booleans, nested
// values) keeps its compact JSON text.
func fieldText(v json.RawMessage) string {
	v = bytes.TrimSpace(v)
	if len(v) == 0 || bytes.Equal(v, []byte("null")) {
		return ""
	}
	if v[0] == '"' {
		var s string
		if err := json.Unmarshal(v, &s); err == nil {
			return s
		}
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, v); err != nil {
		return string(v)
	}
	return buf.String()
}
