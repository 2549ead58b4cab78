// Package insurance normalizes caller-supplied insurance plan
// identifiers and carrier names to the closed set of plan ids the
// facility directory understands.
package insurance

import (
	_ "embed"
	"encoding/json"
	"sort"
	"strings"
)

//go:embed data/plans.json
var plansJSON []byte

// NormalizerConfig holds configuration for the plan normalizer.
type NormalizerConfig struct {
	// Plans maps each known plan id to the carrier product names that
	// resolve to it. Defaults to the embedded plan set.
	Plans map[string][]string
}

// Normalizer resolves plan ids and carrier names against a fixed plan
// set supplied at construction.
type Normalizer struct {
	known    map[string]bool
	planIDs  []string
	keywords map[string][]string
}

// DefaultPlans returns the embedded plan set.
func DefaultPlans() map[string][]string {
	var plans map[string][]string
	if err := json.Unmarshal(plansJSON, &plans); err != nil {
		return map[string][]string{}
	}
	return plans
}

// NewNormalizer creates a normalizer over the given plan set.
func NewNormalizer(cfg NormalizerConfig) *Normalizer {
	plans := cfg.Plans
	if plans == nil {
		plans = DefaultPlans()
	}

	n := &Normalizer{
		known:    make(map[string]bool, len(plans)),
		planIDs:  make([]string, 0, len(plans)),
		keywords: make(map[string][]string, len(plans)),
	}
	for id, names := range plans {
		n.known[id] = true
		n.planIDs = append(n.planIDs, id)
		for _, name := range names {
			if kw := carrierKeyword(name); kw != "" {
				n.keywords[id] = append(n.keywords[id], kw)
			}
		}
	}
	// Stable matching order regardless of map iteration.
	sort.Strings(n.planIDs)
	return n
}

// carrierKeyword reduces a carrier product name to its leading brand
// token, so "Aetna Open Access" and "Aetna HMO" both match on "aetna".
func carrierKeyword(name string) string {
	fields := strings.Fields(strings.ToLower(name))
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// Normalize resolves a plan id or carrier name to a known plan id.
// A known id passes through unchanged. Otherwise the carrier name is
// matched by brand keyword. Unknown input yields the empty string,
// which callers treat as "no insurance filter".
func (n *Normalizer) Normalize(id, name string) string {
	if id != "" && n.known[id] {
		return id
	}
	if name == "" {
		return ""
	}
	t := strings.ToLower(name)
	for _, planID := range n.planIDs {
		for _, kw := range n.keywords[planID] {
			if strings.Contains(t, kw) {
				return planID
			}
		}
	}
	return ""
}
