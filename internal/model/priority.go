package model

import (
	"fmt"
	"strings"
)

// Priority is the closed set of urgency levels a todo can carry.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// DefaultPriority is used when no priority is given.
const DefaultPriority = PriorityMedium

// Priorities returns every valid priority, lowest first.
func Priorities() []Priority {
	return []Priority{PriorityLow, PriorityMedium, PriorityHigh}
}

func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Rank orders priorities for display, high first.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityMedium:
		return 1
	case PriorityLow:
		return 2
	default:
		return 3
	}
}

func (p Priority) String() string { return string(p) }

// ParsePriority accepts user input case-insensitively. Empty input yields
// DefaultPriority; anything outside the enum is an error.
func ParsePriority(s string) (Priority, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return DefaultPriority, nil
	}
	// single-letter shorthands for the CLI and TUI form
	switch s {
	case "l":
		return PriorityLow, nil
	case "m":
		return PriorityMedium, nil
	case "h":
		return PriorityHigh, nil
	}
	p := Priority(s)
	if !p.IsValid() {
		return "", fmt.Errorf("unknown priority %q: must be one of low, medium, high", s)
	}
	return p, nil
}

// NormalizePriority maps any stored value onto the enum, falling back to
// DefaultPriority. Used when reviving persisted data.
func NormalizePriority(s string) Priority {
	p, err := ParsePriority(s)
	if err != nil {
		return DefaultPriority
	}
	return p
}
