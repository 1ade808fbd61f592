// Package outline recovers heading structure that HWP and HWPX documents do
// not mark explicitly: style names mapped to heading levels, and section
// headers drawn as small tables.
package outline

import "strings"

type headingPattern struct {
	pattern string
	level   int
}

// Patterns are lowercase and matched by substring. "subtitle" and "부제목"
// contain "title" and "제목", so they must be checked first.
var headingPatterns = []headingPattern{
	{"outline1", 1},
	{"outline2", 2},
	{"outline3", 3},
	{"outline4", 4},
	{"outline5", 5},
	{"outline6", 6},
	{"outline 1", 1},
	{"outline 2", 2},
	{"outline 3", 3},
	{"outline 4", 4},
	{"outline 5", 5},
	{"outline 6", 6},
	{"개요 1", 1},
	{"개요 2", 2},
	{"개요 3", 3},
	{"개요 4", 4},
	{"개요 5", 5},
	{"개요 6", 6},
	{"부제목", 2},
	{"subtitle", 2},
	{"제목", 1},
	{"title", 1},
}

// HeadingLevel returns the heading level (1-6) implied by a style name or
// style identifier, or 0 for body text.
func HeadingLevel(name string) int {
	if name == "" {
		return 0
	}
	lower := strings.ToLower(name)
	for _, p := range headingPatterns {
		if strings.Contains(lower, p.pattern) {
			return p.level
		}
	}
	return 0
}

// HeadingLevelOf returns the level of the first name that matches a heading
// pattern.
func HeadingLevelOf(names ...string) int {
	for _, n := range names {
		if level := HeadingLevel(n); level > 0 {
			return level
		}
	}
	return 0
}

// StyleLevels maps a style identifier (its index in the style table) to a
// heading level.
type StyleLevels []int

// Level resolves a style identifier. Identifiers outside the table are
// body text.
func (s StyleLevels) Level(id int) int {
	if id < 0 || id >= len(s) {
		return 0
	}
	return s[id]
}
