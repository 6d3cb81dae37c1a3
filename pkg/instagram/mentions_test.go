package instagram

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractMentions(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected []string
	}{
		{
			name:     "single mention",
			text:     "good luck @friend",
			expected: []string{"friend"},
		},
		{
			name:     "duplicates retained in order",
			text:     "hi @a.b @a.b @c",
			expected: []string{"a.b", "a.b", "c"},
		},
		{
			name:     "handles with dots and underscores",
			text:     "@some.user_1 and @an_other",
			expected: []string{"some.user_1", "an_other"},
		},
		{
			name:     "no mentions",
			text:     "great giveaway, count me in",
			expected: []string{},
		},
		{
			name:     "empty text",
			text:     "",
			expected: []string{},
		},
		{
			name:     "mention terminated by punctuation",
			text:     "thanks @winner! see you",
			expected: []string{"winner"},
		},
		{
			name:     "bare at sign",
			text:     "meet @ noon",
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ExtractMentions(tt.text))
		})
	}
}

func TestCommentMentionCount(t *testing.T) {
	comment := Comment{
		Username: "someone",
		Text:     "@a @a @b",
		Mentions: ExtractMentions("@a @a @b"),
	}
	assert.Equal(t, 3, comment.MentionCount())
}
