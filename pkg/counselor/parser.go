package counselor

import (
	"encoding/json"
	"log"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Tag patterns the model embeds in its free-text reply:
//
//	<NOTE category="..." title="...">...</NOTE>  - all occurrences extracted
//	<PHASE>...</PHASE>                           - first occurrence wins
//	<REPORT>{json}</REPORT>                      - first occurrence wins
var (
	notePattern   = regexp.MustCompile(`<NOTE category="([^"]+)" title="([^"]+)">([^<]+)</NOTE>`)
	phasePattern  = regexp.MustCompile(`<PHASE>([^<]+)</PHASE>`)
	reportPattern = regexp.MustCompile(`(?s)<REPORT>(.*?)</REPORT>`)
)

// ParsedReply is the result of extracting embedded directives from one
// assistant reply.
type ParsedReply struct {
	// Text is the reply with all tag spans stripped and whitespace trimmed.
	// This is what gets displayed and spoken.
	Text   string
	Notes  []Note
	Phase  Phase
	Report *CareerReport
}

// Parse extracts NOTE, PHASE and REPORT directives from a raw assistant reply.
// It is pure and deterministic apart from note ids and timestamps.
//
// current is the phase carried over when the reply holds no phase tag, or
// when the embedded value is not a known phase. A REPORT body that fails JSON
// decoding is dropped (logged, never surfaced), but the span is still removed
// from the visible text.
func Parse(raw string, current Phase) *ParsedReply {
	parsed := &ParsedReply{Phase: current}
	now := time.Now()

	for _, m := range notePattern.FindAllStringSubmatch(raw, -1) {
		parsed.Notes = append(parsed.Notes, Note{
			ID:        uuid.NewString(),
			Category:  m[1],
			Title:     m[2],
			Content:   strings.TrimSpace(m[3]),
			Timestamp: now,
		})
	}

	if m := phasePattern.FindStringSubmatch(raw); m != nil {
		phase := Phase(strings.TrimSpace(m[1]))
		if phase.IsValid() {
			parsed.Phase = phase
		} else {
			log.Printf("[COUNSELOR] Ignoring unknown phase %q, keeping %q", phase, current)
		}
	}

	if m := reportPattern.FindStringSubmatch(raw); m != nil {
		var report CareerReport
		if err := json.Unmarshal([]byte(m[1]), &report); err != nil {
			log.Printf("[COUNSELOR] Failed to decode report payload: %v", err)
		} else {
			report.GeneratedAt = now
			EnrichPaths(report.RecommendedPaths)
			parsed.Report = &report
		}
	}

	// NOTE spans are all stripped; PHASE and REPORT only strip their first
	// occurrence, mirroring first-match-wins extraction. A duplicate tag the
	// model was never instructed to emit stays visible rather than being
	// silently swallowed.
	text := notePattern.ReplaceAllString(raw, "")
	text = stripFirst(phasePattern, text)
	text = stripFirst(reportPattern, text)
	parsed.Text = strings.TrimSpace(text)

	return parsed
}

func stripFirst(re *regexp.Regexp, s string) string {
	loc := re.FindStringIndex(s)
	if loc == nil {
		return s
	}
	return s[:loc[0]] + s[loc[1]:]
}
