// Package scoring holds the deterministic heuristics: brief analysis,
// per-territory confidence and performance prediction. Everything here is a
// pure function over in-memory structures, safe to call concurrently.
package scoring

import (
	"regexp"
	"strings"
)

// Signal detectors are shared across the analyzer, the confidence scorer and
// the performance predictor so the same language reads the same everywhere.
var (
	reAudience = regexp.MustCompile(`(?i)\b(millennials|gen ?z|gen ?x|boomers|families|parents|students|professionals|shoppers|customers|singles|seniors|tradies|commuters|audience|targeting|aged \d+)\b`)

	reObjective = regexp.MustCompile(`(?i)\b(increase|drive|boost|grow|build|improve|lift|convert|acquire|retain|maximi[sz]e|raise awareness)\b`)

	reCompetitive = regexp.MustCompile(`(?i)\b(against|competitor|competitors|versus|vs\.?|rival|rivals|chain|market leader|compared to|compete)\b`)

	reBrandName = regexp.MustCompile(`(?i)\b(woolworths|woolies|coles|aldi|iga|kmart|big w|bunnings|myer|david jones|rebel|jb hi-?fi|officeworks|dan murphy'?s|chemist warehouse)\b`)

	reMoment = regexp.MustCompile(`(?i)\b(christmas|black friday|cyber monday|boxing day|eofy|end of financial year|mother'?s day|father'?s day|valentine'?s|easter|back to school|click frenzy|australia day)\b`)

	reUrgency = regexp.MustCompile(`(?i)\b(urgent|urgently|asap|immediately|right away|rush|last minute|tight deadline)\b`)

	reSuperlative = regexp.MustCompile(`(?i)\b(best|greatest|ultimate|perfect|unbeatable|world[- ]class|number one|finest|ever)\b|#1`)

	reClaims = regexp.MustCompile(`(?i)\b(guaranteed?|proven|clinically|scientifically|100%|risk[- ]free|never fails?|always works)\b`)

	reDisclaimer = regexp.MustCompile(`(?i)(terms (and|&) conditions|t&cs?|conditions apply|see website|while stocks last|\*)`)

	reIntelligence = regexp.MustCompile(`(?i)\b(smart|smarter|clever|savvy|intelligent|genius|wise)\b`)

	reCommunity = regexp.MustCompile(`(?i)\b(community|together|belong|belonging|join|mates|neighbourhood|neighborhood|everyone)\b`)

	reConsistency = regexp.MustCompile(`(?i)\b(always|consistent|consistently|every ?day|reliable|reliably|week in,? week out|all year)\b`)

	reVernacular = regexp.MustCompile(`(?i)\b(arvo|servo|brekkie|barbie|fair dinkum|mate|mates|aussie|bonza|ripper|heaps|no worries|too easy|chuck|snag)\b`)

	reLocalCue = regexp.MustCompile(`(?i)\b(australia|australian|aussie|local|locally|sydney|melbourne|brisbane|perth|adelaide|suburb|suburbs)\b`)

	reFormalTone = regexp.MustCompile(`(?i)\b(professional|formal|corporate|sophisticated|premium|refined)\b`)

	reToneMarker = regexp.MustCompile(`(?i)\b(fun|playful|bold|energetic|fresh|witty|cheeky|vibrant|warm)\b`)

	reValue = regexp.MustCompile(`(?i)\b(value|savings?|price|prices|affordable|deal|deals|rewards?)\b`)
)

// Exported signal checks for callers outside the scorers (the evolution
// engine keys its gap rules off the same detectors).

func HasFormalTone(s string) bool      { return reFormalTone.MatchString(s) }
func HasLocalCues(s string) bool      { return reLocalCue.MatchString(s) || reVernacular.MatchString(s) }
func MentionsCompetitor(s string) bool { return reCompetitive.MatchString(s) }
func MentionsMoment(s string) bool     { return reMoment.MatchString(s) }
func HasToneMarkers(s string) bool     { return reToneMarker.MatchString(s) }

// territoryText concatenates every textual field of a territory, lowercased.
func territoryText(title, positioning, tone string, headlines []string) string {
	var b strings.Builder
	b.WriteString(title)
	b.WriteByte(' ')
	b.WriteString(positioning)
	b.WriteByte(' ')
	b.WriteString(tone)
	for _, h := range headlines {
		b.WriteByte(' ')
		b.WriteString(h)
	}
	return strings.ToLower(b.String())
}

// briefTokenOverlap counts brief tokens that appear as literal case-insensitive
// substrings of text. Exact substring match, not stemmed; short stopword-ish
// tokens are skipped so "a"/"in" don't count as hits.
func briefTokenOverlap(brief, text string) int {
	text = strings.ToLower(text)
	seen := map[string]bool{}
	overlap := 0
	for _, tok := range strings.Fields(strings.ToLower(brief)) {
		tok = strings.Trim(tok, ".,;:!?\"'()")
		if len(tok) < 4 || seen[tok] {
			continue
		}
		seen[tok] = true
		if strings.Contains(text, tok) {
			overlap++
		}
	}
	return overlap
}

func wordCount(s string) int { return len(strings.Fields(s)) }

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
