package triage

import (
	"regexp"
	"strings"
)

// redFlagPatterns are evaluated in order against lower-cased symptom text.
// The set is deliberately conservative: it only covers the listed
// emergency presentations and makes no attempt at broader recall. Order
// only short-circuits evaluation; it does not change the outcome.
var redFlagPatterns = []*regexp.Regexp{
	regexp.MustCompile(`chest\s*pain`),
	regexp.MustCompile(`(shortness\s*of\s*breath).*cyanosis|blue\s*lips|turning\s*blue`),
	regexp.MustCompile(`(one[-\s]*sided\s*weakness|slurred\s*speech|face\s*droop)`),
	regexp.MustCompile(`(severe|uncontrolled)\s*bleeding`),
	regexp.MustCompile(`anaphylaxis|throat\s*closing|can'?t\s*breathe`),
	regexp.MustCompile(`(high[-\s]*energy|major)\s*trauma|hit\s*by\s*car|fall\s*from`),
	regexp.MustCompile(`severe\s*burns?`),
	regexp.MustCompile(`(pregnan(t|cy)).*(heavy\s*bleeding)`),
	regexp.MustCompile(`suicidal|suicide|harm\s*myself`),
}

// DetectRedFlags reports whether the symptom text matches any emergency
// pattern. The context is accepted but not consulted; age, pregnancy
// status and duration do not currently influence the decision.
func DetectRedFlags(symptoms string, _ Context) bool {
	text := strings.ToLower(symptoms)
	for _, re := range redFlagPatterns {
		if re.MatchString(text) {
			return true
		}
	}
	return false
}
