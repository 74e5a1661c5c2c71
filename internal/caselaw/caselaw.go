// Package caselaw recovers case-law records from free-form language model output.
//
// Models are asked to answer with a JSON array of case objects but frequently
// wrap the array in prose or code fences, or ignore the format entirely. Parse
// first tries to decode the array and, when that fails, segments the text and
// pulls each field out with label heuristics. It never returns an error.
package caselaw

// Field defaults used when a heuristic segment lacks a value.
const (
	DefaultTitle     = "Unknown Case"
	DefaultCitation  = "No citation available"
	DefaultRelevance = "Relevant to the query"
)

// CaseResult describes one case-law citation.
type CaseResult struct {
	Title     string `json:"title"`
	Citation  string `json:"citation"`
	Summary   string `json:"summary"`
	Relevance string `json:"relevance"`
}

// Method records which path produced an Extraction.
type Method int

const (
	// MethodStructured means the output contained a decodable JSON array.
	MethodStructured Method = iota + 1
	// MethodHeuristic means the cases were segmented out of plain text.
	MethodHeuristic
)

func (m Method) String() string {
	switch m {
	case MethodStructured:
		return "structured"
	case MethodHeuristic:
		return "heuristic"
	default:
		return "unknown"
	}
}

// Extraction is the result of Parse, tagged with the path that fired.
type Extraction struct {
	Method Method
	Cases  []CaseResult
}

// Parse extracts case records from raw model output. Cases is never nil.
func Parse(raw string) Extraction {
	if cases, ok := parseStructured(raw); ok {
		return Extraction{Method: MethodStructured, Cases: cases}
	}
	return Extraction{Method: MethodHeuristic, Cases: parseHeuristic(raw)}
}

// Extract is Parse without the method tag, for callers that only need the cases.
func Extract(raw string) []CaseResult {
	return Parse(raw).Cases
}
