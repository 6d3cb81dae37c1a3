package instagram

import (
	"fmt"
	"net/url"
)

const (
	// BaseURL is the base URL for the private Instagram API
	BaseURL = "https://i.instagram.com"

	// WebBaseURL is the base URL for canonical post links
	WebBaseURL = "https://www.instagram.com"

	// LoginEndpoint performs username/password login
	LoginEndpoint = "/api/v1/accounts/login/"

	// TwoFactorLoginEndpoint completes a login held behind a two-factor challenge
	TwoFactorLoginEndpoint = "/api/v1/accounts/two_factor_login/"

	// MediaInfoEndpoint resolves a post URL to its internal media ID
	MediaInfoEndpoint = "/api/v1/oembed/"

	// CommentsEndpointFmt is the paged comments feed for a media ID
	CommentsEndpointFmt = "/api/v1/media/%s/comments/"

	// AppID is the Instagram web application ID header value
	AppID = "936619743392459"
)

// GetLoginURL returns the login endpoint URL
func GetLoginURL() string {
	return BaseURL + LoginEndpoint
}

// GetTwoFactorLoginURL returns the two-factor login endpoint URL
func GetTwoFactorLoginURL() string {
	return BaseURL + TwoFactorLoginEndpoint
}

// GetMediaInfoURL constructs the URL resolving a post URL to a media ID
func GetMediaInfoURL(postURL string) string {
	params := url.Values{}
	params.Set("url", postURL)

	return fmt.Sprintf("%s%s?%s", BaseURL, MediaInfoEndpoint, params.Encode())
}

// GetCommentsURL constructs the URL for one page of a media's comments feed.
// An empty cursor requests the first page.
func GetCommentsURL(mediaID, cursor string) string {
	endpoint := fmt.Sprintf(CommentsEndpointFmt, mediaID)
	if cursor == "" {
		return BaseURL + endpoint
	}

	params := url.Values{}
	params.Set("min_id", cursor)

	return fmt.Sprintf("%s%s?%s", BaseURL, endpoint, params.Encode())
}

// GetPostURL constructs the canonical URL for a post shortcode
func GetPostURL(shortcode string) string {
	if shortcode == "" {
		return ""
	}
	return fmt.Sprintf("%s/p/%s/", WebBaseURL, shortcode)
}
