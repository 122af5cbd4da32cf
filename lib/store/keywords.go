package store

import "strings"

// SplitKeywords splits a keyword field into its tags. An empty field has no tags.
func SplitKeywords(keyword string) []string {
	if keyword == "" {
		return nil
	}
	return strings.Split(keyword, KeywordSeparator)
}

// ValidKeywords reports whether keyword is a non-empty tag set without empty or duplicate tags.
func ValidKeywords(keyword string) bool {
	if keyword == "" {
		return false
	}
	seen := make(map[string]struct{})
	for _, tag := range SplitKeywords(keyword) {
		if tag == "" {
			return false
		}
		if _, dup := seen[tag]; dup {
			return false
		}
		seen[tag] = struct{}{}
	}
	return true
}

// HasKeyword reports whether tag equals one of the tags of keyword.
func HasKeyword(keyword, tag string) bool {
	for _, k := range SplitKeywords(keyword) {
		if k == tag {
			return true
		}
	}
	return false
}
