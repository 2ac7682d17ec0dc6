// SPDX-License-Identifier: MIT
// Copyright (c) 2026 ExToozy
// Source: github.com/ExToozy/Archiver

package archiver

import (
	"fmt"
	"strings"

	"github.com/woozymasta/pathrules"
)

// excludeMatcher holds compiled collector exclude rules.
type excludeMatcher struct {
	matcher *pathrules.Matcher
}

// newExcludeMatcher compiles collector exclude rules. It returns nil when no rule is set.
func newExcludeMatcher(rules []pathrules.Rule, opts pathrules.MatcherOptions) (*excludeMatcher, error) {
	rules = normalizeExcludeRules(rules)
	if len(rules) == 0 {
		return nil, nil
	}

	matcher, err := pathrules.NewMatcher(rules, opts)
	if err != nil {
		return nil, fmt.Errorf("%w: compile rules: %w", ErrInvalidExcludePattern, err)
	}

	return &excludeMatcher{matcher: matcher}, nil
}

// normalizeExcludeRules normalizes rule patterns and drops empty patterns.
// Rules without an explicit action are treated as excludes.
func normalizeExcludeRules(rules []pathrules.Rule) []pathrules.Rule {
	normalized := make([]pathrules.Rule, 0, len(rules))
	for _, rule := range rules {
		pattern := normalizePattern(rule.Pattern)
		if pattern == "" {
			continue
		}

		action := rule.Action
		if action == pathrules.ActionUnknown {
			action = pathrules.ActionExclude
		}

		normalized = append(normalized, pathrules.Rule{
			Action:  action,
			Pattern: pattern,
		})
	}

	return normalized
}

// ExcludeRules builds exclude rules from plain patterns.
func ExcludeRules(patterns ...string) []pathrules.Rule {
	rules := make([]pathrules.Rule, 0, len(patterns))
	for _, pattern := range patterns {
		rules = append(rules, pathrules.Rule{Action: pathrules.ActionExclude, Pattern: pattern})
	}

	return rules
}

// Skip reports whether the slash-separated relative path is excluded.
func (m *excludeMatcher) Skip(rel string, isDir bool) bool {
	if m == nil || m.matcher == nil || rel == "" {
		return false
	}

	return !m.matcher.Included(rel, isDir)
}

// normalizePattern trims spaces, converts "\" separators and drops a leading "./".
func normalizePattern(pattern string) string {
	pattern = strings.TrimSpace(pattern)
	pattern = strings.ReplaceAll(pattern, `\`, `/`)
	return strings.TrimPrefix(pattern, "./")
}
