package lottery

import (
	"igdraw/pkg/errors"
	"igdraw/pkg/instagram"
	"igdraw/pkg/logger"
	"igdraw/pkg/ratelimit"
)

// DefaultMaxCommentPages bounds the pagination loop regardless of what the
// feed's has-more flag claims
const DefaultMaxCommentPages = 20

// CommentSet is the result of comment retrieval: every comment fetched, and
// the subsequence meeting the mention threshold in original order
type CommentSet struct {
	All      []instagram.Comment
	Eligible []instagram.Comment
}

// CommentPager drives paginated comment retrieval through an authenticated
// session handle. It never owns the handle; it borrows it for one fetch.
type CommentPager struct {
	svc      InstagramService
	limiter  ratelimit.Limiter
	maxPages int
	logger   logger.Logger
}

// NewCommentPager creates a pager over the given session handle
func NewCommentPager(svc InstagramService, limiter ratelimit.Limiter, maxPages int, log logger.Logger) *CommentPager {
	if limiter == nil {
		limiter = ratelimit.NewUnlimited()
	}
	if maxPages <= 0 {
		maxPages = DefaultMaxCommentPages
	}
	if log == nil {
		log = logger.GetLogger()
	}
	return &CommentPager{
		svc:      svc,
		limiter:  limiter,
		maxPages: maxPages,
		logger:   log,
	}
}

// FetchEligible retrieves the comments of a post and filters them by mention
// threshold. Resolution failure is a post_not_found error. Page fetches are
// strictly sequential: comment order must match the feed's native order, and
// the has-more flag is only valid immediately after the preceding fetch.
//
// A mid-loop page error ends pagination but keeps everything already fetched:
// transient feed errors degrade to a partial result instead of discarding
// retrieved data.
func (p *CommentPager) FetchEligible(shortcode string, mentionThreshold int) (*CommentSet, error) {
	mediaID, err := p.svc.ResolveMediaID(shortcode)
	if err != nil {
		if errors.IsType(err, errors.ErrorTypePostNotFound) {
			return nil, err
		}
		return nil, errors.Newf(errors.ErrorTypePostNotFound,
			"could not resolve post %s: %v", shortcode, err)
	}

	all := []instagram.Comment{}
	cursor := ""
	hasMore := true

	for iterations := 0; hasMore && iterations < p.maxPages; iterations++ {
		p.limiter.Wait()

		page, err := p.svc.FetchCommentsPage(mediaID, cursor)
		if err != nil {
			p.logger.WarnWithFields("comment page fetch failed, keeping partial result", map[string]interface{}{
				"media_id":  mediaID,
				"iteration": iterations,
				"fetched":   len(all),
				"error":     err.Error(),
			})
			break
		}

		for _, comment := range page.Comments {
			comment.Mentions = instagram.ExtractMentions(comment.Text)
			all = append(all, comment)
		}

		hasMore = page.HasMore
		cursor = page.NextCursor
	}

	eligible := []instagram.Comment{}
	for _, comment := range all {
		if comment.MentionCount() >= mentionThreshold {
			eligible = append(eligible, comment)
		}
	}

	p.logger.InfoWithFields("comments fetched", map[string]interface{}{
		"media_id":       mediaID,
		"total_comments": len(all),
		"eligible_count": len(eligible),
		"threshold":      mentionThreshold,
	})

	return &CommentSet{All: all, Eligible: eligible}, nil
}
