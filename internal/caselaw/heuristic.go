package caselaw

import (
	"regexp"
	"strings"
)

var (
	// A new case starts at "Case 3:" anywhere or at a line opening with "3.".
	segmentBoundary = regexp.MustCompile(`(?m)Case \d+:|^\d+\.`)

	titleLabel     = regexp.MustCompile(`(?i)Title:\s*([^\n]+)`)
	titleComma     = regexp.MustCompile(`([^,]+),`)
	citationLabel  = regexp.MustCompile(`(?i)Citation:\s*\(?([^\n]+)`)
	citationParen  = regexp.MustCompile(`\(([^)]+)\)`)
	summaryLabel   = regexp.MustCompile(`(?i)Summary:\s*`)
	relevanceLabel = regexp.MustCompile(`(?i)Relevance:\s*`)

	// Ends a multi-line summary or relevance block.
	fieldLabel = regexp.MustCompile(`^[A-Z]\w*:`)
)

func parseHeuristic(raw string) []CaseResult {
	cases := []CaseResult{}
	for _, segment := range segmentBoundary.Split(raw, -1) {
		if strings.TrimSpace(segment) == "" {
			continue
		}
		cases = append(cases, parseSegment(segment))
	}
	return cases
}

func parseSegment(segment string) CaseResult {
	c := CaseResult{
		Title:     DefaultTitle,
		Citation:  DefaultCitation,
		Summary:   segment,
		Relevance: DefaultRelevance,
	}

	if v, ok := firstGroup(segment, titleLabel, titleComma); ok {
		c.Title = v
	}
	if v, ok := firstGroup(segment, citationLabel, citationParen); ok {
		c.Citation = v
	}
	if v, ok := labelledBlock(segment, summaryLabel); ok {
		c.Summary = v
	}
	if v, ok := labelledBlock(segment, relevanceLabel); ok {
		c.Relevance = v
	}

	c.Title = strings.TrimSpace(c.Title)
	c.Citation = strings.TrimSpace(c.Citation)
	c.Summary = strings.TrimSpace(c.Summary)
	c.Relevance = strings.TrimSpace(c.Relevance)
	return c
}

// firstGroup returns the first capture group of the first pattern that matches.
func firstGroup(s string, patterns ...*regexp.Regexp) (string, bool) {
	for _, re := range patterns {
		if m := re.FindStringSubmatch(s); m != nil {
			return m[1], true
		}
	}
	return "", false
}

// labelledBlock returns the text after label: the rest of its line plus every
// following non-empty line up to the next "Label:" line.
func labelledBlock(s string, label *regexp.Regexp) (string, bool) {
	loc := label.FindStringIndex(s)
	if loc == nil {
		return "", false
	}
	lines := strings.Split(s[loc[1]:], "\n")
	if lines[0] == "" {
		return "", false
	}

	n := 1
	for n < len(lines) && lines[n] != "" && !fieldLabel.MatchString(lines[n]) {
		n++
	}
	return strings.Join(lines[:n], "\n"), true
}
