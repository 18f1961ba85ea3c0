// Package rules evaluates the ordered allow/disallow rule lists Mojang
// manifests attach to libraries and argument entries, generalizing the
// teacher's rules.ShouldInclude/ShouldIncludeFeatures into a single
// evaluator.
package rules

import (
	"log/slog"
	"regexp"

	"github.com/launchkit/mccore/pkg/platform"
)

// Action is the verdict a single rule contributes when it applies.
type Action string

const (
	Allow    Action = "allow"
	Disallow Action = "disallow"
)

// OSConstraint restricts a rule to a platform name/version/arch.
type OSConstraint struct {
	Name    string `json:"name,omitempty"`
	Version string `json:"version,omitempty"` // regex, unanchored
	Arch    string `json:"arch,omitempty"`
}

// Rule is one entry of an ordered allow/disallow rule list.
type Rule struct {
	Action   Action          `json:"action"`
	OS       *OSConstraint   `json:"os,omitempty"`
	Features map[string]bool `json:"features,omitempty"`
}

// Features is the set of active feature names for a launch/resolution.
type Features map[string]bool

func (f Features) has(name string) bool {
	if f == nil {
		return false
	}
	return f[name]
}

// Evaluate reports whether rs admits p/features: an empty rule list
// allows; otherwise each rule is checked left to right, and the last
// applicable rule's action wins. A rule is applicable when its os
// constraint (if any) matches the platform and its features constraint
// (if any) matches the active feature set; a rule with no constraints at
// all is always applicable.
func Evaluate(rs []Rule, p platform.Platform, features Features) bool {
	if len(rs) == 0 {
		return true
	}

	allow := false
	for _, r := range rs {
		if !applies(r, p, features) {
			continue
		}
		allow = r.Action == Allow
	}
	slog.Debug("evaluated rule list", "platform", p.Name, "arch", p.Arch, "rules", len(rs), "allow", allow)
	return allow
}

func applies(r Rule, p platform.Platform, features Features) bool {
	osApplies := true
	if r.OS != nil {
		osApplies = matchOS(*r.OS, p)
	}
	if !osApplies {
		return false
	}

	for name, required := range r.Features {
		if features.has(name) != required {
			return false
		}
	}
	return true
}

func matchOS(c OSConstraint, p platform.Platform) bool {
	if c.Name != "" && c.Name != string(p.Name) {
		return false
	}
	if c.Arch != "" && c.Arch != p.Arch {
		return false
	}
	if c.Version != "" {
		re, err := regexp.Compile(c.Version)
		if err != nil || !re.MatchString(p.Version) {
			return false
		}
	}
	return true
}

// FeatureGated reports whether rs contains at least one rule whose
// Features clause is satisfied by active. Rules without a Features clause
// are ignored, and OS constraints are not checked. Nothing else in this
// module calls it; the launch synthesizer gates arguments with Evaluate.
func FeatureGated(rs []Rule, active Features) bool {
	for _, r := range rs {
		if len(r.Features) == 0 {
			continue
		}
		ok := true
		for name, required := range r.Features {
			if active.has(name) != required {
				ok = false
				break
			}
		}
		if ok {
			return true
		}
	}
	return false
}

// OSOnly reports whether rs contains only OS constraints (no feature
// predicates) — used by the resolver to decide whether a conditional jvm
// argument can be resolved at merge time or must be kept conditional until
// launch.
func OSOnly(rs []Rule) bool {
	for _, r := range rs {
		if len(r.Features) > 0 {
			return false
		}
	}
	return true
}
