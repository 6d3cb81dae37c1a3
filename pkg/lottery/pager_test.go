package lottery

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"igdraw/pkg/errors"
	"igdraw/pkg/instagram"
	"igdraw/pkg/logger"
)

func TestPagerFetchEligibleFiltersByThreshold(t *testing.T) {
	svc := pagedService(map[string]*instagram.CommentPage{
		"": {
			Comments: []instagram.Comment{
				{Username: "a", Text: "love it"},
				{Username: "b", Text: "@x @y count me in"},
				{Username: "c", Text: "@x"},
			},
			HasMore: false,
		},
	})

	pager := NewCommentPager(svc, nil, 0, logger.NewTestLogger())
	set, err := pager.FetchEligible("ABC", 2)

	require.NoError(t, err)
	assert.Len(t, set.All, 3)
	require.Len(t, set.Eligible, 1)
	assert.Equal(t, "b", set.Eligible[0].Username)
	assert.Equal(t, []string{"x", "y"}, set.Eligible[0].Mentions)
}

func TestPagerZeroThresholdKeepsEveryone(t *testing.T) {
	svc := pagedService(map[string]*instagram.CommentPage{
		"": {
			Comments: []instagram.Comment{
				{Username: "a", Text: "no mentions here"},
				{Username: "b", Text: "@x"},
			},
			HasMore: false,
		},
	})

	pager := NewCommentPager(svc, nil, 0, logger.NewTestLogger())
	set, err := pager.FetchEligible("ABC", 0)

	require.NoError(t, err)
	assert.Equal(t, set.All, set.Eligible)
}

func TestPagerFollowsCursorsInOrder(t *testing.T) {
	svc := pagedService(map[string]*instagram.CommentPage{
		"": {
			Comments:   []instagram.Comment{{Username: "a", Text: "first"}},
			HasMore:    true,
			NextCursor: "c1",
		},
		"c1": {
			Comments:   []instagram.Comment{{Username: "b", Text: "second"}},
			HasMore:    true,
			NextCursor: "c2",
		},
		"c2": {
			Comments: []instagram.Comment{{Username: "c", Text: "third"}},
			HasMore:  false,
		},
	})

	pager := NewCommentPager(svc, nil, 0, logger.NewTestLogger())
	set, err := pager.FetchEligible("ABC", 0)

	require.NoError(t, err)
	require.Len(t, set.All, 3)
	assert.Equal(t, "a", set.All[0].Username)
	assert.Equal(t, "b", set.All[1].Username)
	assert.Equal(t, "c", set.All[2].Username)
	assert.Equal(t, 3, svc.fetchCalls)
}

func TestPagerStopsAtPageCeiling(t *testing.T) {
	// every page claims more data; the ceiling must end the loop anyway
	svc := &fakeService{}
	page := 0
	svc.fetchPageFunc = func(mediaID, cursor string) (*instagram.CommentPage, error) {
		page++
		return &instagram.CommentPage{
			Comments:   []instagram.Comment{{Username: fmt.Sprintf("user%d", page), Text: "hi"}},
			HasMore:    true,
			NextCursor: fmt.Sprintf("c%d", page),
		}, nil
	}

	pager := NewCommentPager(svc, nil, 0, logger.NewTestLogger())
	set, err := pager.FetchEligible("ABC", 0)

	require.NoError(t, err)
	assert.Equal(t, DefaultMaxCommentPages, svc.fetchCalls)
	assert.Len(t, set.All, DefaultMaxCommentPages)
}

func TestPagerKeepsPartialResultOnPageError(t *testing.T) {
	svc := &fakeService{}
	svc.fetchPageFunc = func(mediaID, cursor string) (*instagram.CommentPage, error) {
		if cursor == "" {
			return &instagram.CommentPage{
				Comments:   []instagram.Comment{{Username: "a", Text: "@x @y"}},
				HasMore:    true,
				NextCursor: "c1",
			}, nil
		}
		return nil, errors.New(errors.ErrorTypeServerError, "feed hiccup")
	}

	log := logger.NewTestLogger()
	pager := NewCommentPager(svc, nil, 0, log)
	set, err := pager.FetchEligible("ABC", 1)

	require.NoError(t, err)
	assert.Len(t, set.All, 1)
	assert.Len(t, set.Eligible, 1)
	assert.True(t, log.HasMessage("comment page fetch failed, keeping partial result"))
}

func TestPagerResolutionFailure(t *testing.T) {
	svc := &fakeService{
		resolveMediaIDFunc: func(shortcode string) (string, error) {
			return "", errors.New(errors.ErrorTypePostNotFound, "no media")
		},
	}

	pager := NewCommentPager(svc, nil, 0, logger.NewTestLogger())
	_, err := pager.FetchEligible("MISSING", 0)

	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypePostNotFound))
	assert.Equal(t, 0, svc.fetchCalls)
}

func TestPagerEmptyPost(t *testing.T) {
	svc := pagedService(map[string]*instagram.CommentPage{
		"": {Comments: []instagram.Comment{}, HasMore: false},
	})

	pager := NewCommentPager(svc, nil, 0, logger.NewTestLogger())
	set, err := pager.FetchEligible("ABC", 3)

	require.NoError(t, err)
	assert.Empty(t, set.All)
	assert.Empty(t, set.Eligible)
	assert.NotNil(t, set.Eligible)
}
