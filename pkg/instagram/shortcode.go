package instagram

import (
	"regexp"

	"igdraw/pkg/errors"
)

// shortcodePatterns match the two post URL shapes. The reel pattern must be
// tried first: a reel URL carries an extra path segment that the plain post
// pattern would otherwise mis-consume.
var shortcodePatterns = []*regexp.Regexp{
	regexp.MustCompile(`instagram\.com/(?:[^/]+/)?reel/([A-Za-z0-9_-]+)`),
	regexp.MustCompile(`instagram\.com/p/([A-Za-z0-9_-]+)`),
}

// ExtractShortcode parses an Instagram post or reel URL and returns its
// shortcode. Returns an invalid_url error if neither URL shape matches.
func ExtractShortcode(postURL string) (string, error) {
	for _, pattern := range shortcodePatterns {
		if match := pattern.FindStringSubmatch(postURL); match != nil {
			return match[1], nil
		}
	}
	return "", errors.Newf(errors.ErrorTypeInvalidURL, "not a recognized Instagram post URL: %s", postURL)
}
