package contact

import (
	"regexp"
	"strings"
)

// spamKeywords is the fixed denylist scored against the message body.
// Matching is case-insensitive substring; three or more distinct hits flag
// the submission.
var spamKeywords = []string{
	"seo",
	"ranking",
	"guaranteed",
	"cheapest",
	"bitcoin",
	"crypto",
	"loan",
	"mortgage",
}

const (
	spamKeywordThreshold = 3
	spamLinkThreshold    = 2
	spamRepeatRunLength  = 11
)

var linkPattern = regexp.MustCompile(`https?://\S+`)

// Flag messages for the three heuristics, logged for manual review.
const (
	FlagKeywords = "High spam keyword count"
	FlagLinks    = "Excessive links detected"
	FlagRepeats  = "Repeated characters detected"
)

// SpamFlags scores a message against the spam heuristics and returns the
// triggered flags. Flags are advisory: the caller logs them and processes
// the submission anyway.
func SpamFlags(message string) []string {
	var flags []string

	lower := strings.ToLower(message)

	distinct := 0
	for _, keyword := range spamKeywords {
		if strings.Contains(lower, keyword) {
			distinct++
		}
	}
	if distinct >= spamKeywordThreshold {
		flags = append(flags, FlagKeywords)
	}

	if len(linkPattern.FindAllStringIndex(message, -1)) > spamLinkThreshold {
		flags = append(flags, FlagLinks)
	}

	if hasRepeatedRun(message, spamRepeatRunLength) {
		flags = append(flags, FlagRepeats)
	}

	return flags
}

// hasRepeatedRun reports whether any single rune repeats at least n times
// consecutively. Regexp backreferences are unavailable in RE2, so this is a
// linear scan.
func hasRepeatedRun(s string, n int) bool {
	var prev rune
	run := 0
	for _, r := range s {
		if r == prev {
			run++
			if run >= n {
				return true
			}
		} else {
			prev = r
			run = 1
		}
	}
	return false
}
