package instagram

import (
	"fmt"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetLoginURLs(t *testing.T) {
	assert.Equal(t, BaseURL+LoginEndpoint, GetLoginURL())
	assert.Equal(t, BaseURL+TwoFactorLoginEndpoint, GetTwoFactorLoginURL())
}

func TestGetMediaInfoURL(t *testing.T) {
	tests := []struct {
		name    string
		postURL string
	}{
		{
			name:    "plain post URL",
			postURL: "https://www.instagram.com/p/ABC123/",
		},
		{
			name:    "reel URL",
			postURL: "https://www.instagram.com/reel/XYZ789/",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := GetMediaInfoURL(tt.postURL)

			parsed, err := url.Parse(result)
			assert.NoError(t, err)
			assert.Equal(t, MediaInfoEndpoint, parsed.Path)
			assert.Equal(t, tt.postURL, parsed.Query().Get("url"))
		})
	}
}

func TestGetCommentsURL(t *testing.T) {
	tests := []struct {
		name    string
		mediaID string
		cursor  string
	}{
		{
			name:    "first page",
			mediaID: "1234_5678",
			cursor:  "",
		},
		{
			name:    "with cursor",
			mediaID: "1234_5678",
			cursor:  "QVFCdGVzdGN1cnNvcg==",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := GetCommentsURL(tt.mediaID, tt.cursor)

			parsed, err := url.Parse(result)
			assert.NoError(t, err)
			assert.Equal(t, fmt.Sprintf(CommentsEndpointFmt, tt.mediaID), parsed.Path)
			assert.Equal(t, tt.cursor, parsed.Query().Get("min_id"))
		})
	}
}

func TestGetPostURL(t *testing.T) {
	tests := []struct {
		name      string
		shortcode string
		expected  string
	}{
		{
			name:      "valid shortcode",
			shortcode: "ABC123xyz",
			expected:  fmt.Sprintf("%s/p/ABC123xyz/", WebBaseURL),
		},
		{
			name:      "empty shortcode",
			shortcode: "",
			expected:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := GetPostURL(tt.shortcode)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestURLConstruction(t *testing.T) {
	t.Run("base URLs are HTTPS", func(t *testing.T) {
		assert.Contains(t, BaseURL, "https://")
		assert.Contains(t, BaseURL, "instagram.com")
		assert.Contains(t, WebBaseURL, "https://")
	})

	t.Run("endpoints start with slash", func(t *testing.T) {
		for _, endpoint := range []string{LoginEndpoint, TwoFactorLoginEndpoint, MediaInfoEndpoint, CommentsEndpointFmt} {
			assert.Equal(t, "/", string(endpoint[0]))
		}
	})

	t.Run("app ID is numeric", func(t *testing.T) {
		assert.NotEmpty(t, AppID)
		for _, char := range AppID {
			assert.True(t, char >= '0' && char <= '9',
				"App ID contains invalid character: %c", char)
		}
	})
}
