package instagram

import "regexp"

// mentionPattern matches an @-handle: letters, digits, periods, underscores.
var mentionPattern = regexp.MustCompile(`@([A-Za-z0-9_.]+)`)

// ExtractMentions returns all handles mentioned in a comment, in order of
// appearance. Duplicates are retained: a commenter who mentions the same
// account twice counts it twice toward the eligibility threshold. Empty text
// yields an empty slice.
func ExtractMentions(text string) []string {
	mentions := []string{}
	for _, match := range mentionPattern.FindAllStringSubmatch(text, -1) {
		mentions = append(mentions, match[1])
	}
	return mentions
}
