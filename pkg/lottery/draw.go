package lottery

import (
	"math/rand"
	"strings"

	"igdraw/pkg/errors"
	"igdraw/pkg/instagram"
)

// Winner is one drawn participant
type Winner struct {
	Username     string `json:"username"`
	Comment      string `json:"comment"`
	MentionCount int    `json:"mentionCount"`
	Position     int    `json:"position"`
}

// DrawResult holds the winners and substitute winners of one draw
type DrawResult struct {
	Winners     []Winner `json:"winners"`
	Substitutes []Winner `json:"substitutes"`
}

// Draw uniformly shuffles the eligible comments and slices the first
// winnerCount as winners and the next substituteCount as substitutes. Fails
// with insufficient_participants when the pool is too small.
func Draw(eligible []instagram.Comment, winnerCount, substituteCount int) (*DrawResult, error) {
	if winnerCount < 1 {
		return nil, errors.New(errors.ErrorTypeUnknown, "winner count must be at least 1")
	}
	if substituteCount < 0 {
		return nil, errors.New(errors.ErrorTypeUnknown, "substitute count cannot be negative")
	}

	needed := winnerCount + substituteCount
	if len(eligible) < needed {
		return nil, errors.Newf(errors.ErrorTypeInsufficientParticipants,
			"%d eligible participants, %d needed (winners + substitutes)", len(eligible), needed)
	}

	shuffled := make([]instagram.Comment, len(eligible))
	copy(shuffled, eligible)
	rand.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	result := &DrawResult{
		Winners:     make([]Winner, 0, winnerCount),
		Substitutes: make([]Winner, 0, substituteCount),
	}
	for i, comment := range shuffled[:winnerCount] {
		result.Winners = append(result.Winners, Winner{
			Username:     comment.Username,
			Comment:      comment.Text,
			MentionCount: comment.MentionCount(),
			Position:     i + 1,
		})
	}
	for i, comment := range shuffled[winnerCount : winnerCount+substituteCount] {
		result.Substitutes = append(result.Substitutes, Winner{
			Username:     comment.Username,
			Comment:      comment.Text,
			MentionCount: comment.MentionCount(),
			Position:     i + 1,
		})
	}

	return result, nil
}

// NormalizeUsernames cleans a manually supplied participant list: trims
// whitespace, strips a leading @, and drops empty entries
func NormalizeUsernames(usernames []string) []string {
	normalized := []string{}
	for _, username := range usernames {
		username = strings.TrimSpace(username)
		username = strings.TrimPrefix(username, "@")
		if username != "" {
			normalized = append(normalized, username)
		}
	}
	return normalized
}

// DrawUsernames runs a draw over a manually supplied username list instead of
// post comments
func DrawUsernames(usernames []string, winnerCount, substituteCount int) (*DrawResult, error) {
	participants := NormalizeUsernames(usernames)

	comments := make([]instagram.Comment, 0, len(participants))
	for _, username := range participants {
		comments = append(comments, instagram.Comment{Username: username, Mentions: []string{}})
	}

	return Draw(comments, winnerCount, substituteCount)
}
