package lottery

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"igdraw/pkg/errors"
	"igdraw/pkg/instagram"
	"igdraw/pkg/logger"
)

func TestAuthSessionLoginAuthenticated(t *testing.T) {
	svc := &fakeService{}
	session := NewAuthSession(svc, NewChallengeStore(), logger.NewTestLogger())

	outcome, err := session.Login("giveaway_host", "secret", "https://instagram.com/p/ABC/", 2)

	require.NoError(t, err)
	assert.Equal(t, LoginOK, outcome.Status)
	assert.Nil(t, outcome.Challenge)
	assert.Equal(t, StateAuthenticated, session.State())
}

func TestAuthSessionLoginStoresChallenge(t *testing.T) {
	svc := &fakeService{
		loginFunc: func(username, password string) (*instagram.LoginResult, error) {
			return twoFactorLoginResult("tf-1", "+90 *** 42"), nil
		},
	}
	store := NewChallengeStore()
	session := NewAuthSession(svc, store, logger.NewTestLogger())

	outcome, err := session.Login("giveaway_host", "secret", "https://instagram.com/p/ABC/", 2)

	require.NoError(t, err)
	assert.Equal(t, LoginPending, outcome.Status)
	require.NotNil(t, outcome.Challenge)
	assert.NotEmpty(t, outcome.Challenge.Token)
	assert.Equal(t, "+90 *** 42", outcome.Challenge.ObfuscatedPhone)
	assert.Equal(t, "https://instagram.com/p/ABC/", outcome.Challenge.PostURL)
	assert.Equal(t, 2, outcome.Challenge.MentionThreshold)
	assert.Equal(t, StateChallengePending, session.State())
	assert.Equal(t, 1, store.Len())
}

func TestAuthSessionLoginCheckpoint(t *testing.T) {
	svc := &fakeService{
		loginFunc: func(username, password string) (*instagram.LoginResult, error) {
			return &instagram.LoginResult{Outcome: instagram.LoginCheckpointRequired}, nil
		},
	}
	session := NewAuthSession(svc, NewChallengeStore(), logger.NewTestLogger())

	_, err := session.Login("giveaway_host", "secret", "https://instagram.com/p/ABC/", 0)

	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeCheckpointRequired))
	assert.Equal(t, StateFailed, session.State())
}

func TestAuthSessionLoginRejected(t *testing.T) {
	svc := &fakeService{
		loginFunc: func(username, password string) (*instagram.LoginResult, error) {
			return nil, errors.New(errors.ErrorTypeInvalidCredentials, "rejected")
		},
	}
	session := NewAuthSession(svc, NewChallengeStore(), logger.NewTestLogger())

	_, err := session.Login("giveaway_host", "wrong", "https://instagram.com/p/ABC/", 0)

	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeInvalidCredentials))
	assert.Equal(t, StateFailed, session.State())
}

func TestAuthSessionVerifySuccess(t *testing.T) {
	svc := &fakeService{}
	store := NewChallengeStore()
	token := store.Put(&PendingChallenge{
		Username:   "giveaway_host",
		Identifier: "tf-1",
		Session:    svc,
	})

	session := NewAuthSession(nil, store, logger.NewTestLogger())
	challenge, err := session.Verify(token, "123456")

	require.NoError(t, err)
	assert.Same(t, svc, challenge.Session.(*fakeService))
	assert.Equal(t, 1, svc.twoFactorCalls)
	assert.Equal(t, StateAuthenticated, session.State())
	assert.Equal(t, 0, store.Len())
}

func TestAuthSessionVerifyWithoutChallenge(t *testing.T) {
	session := NewAuthSession(nil, NewChallengeStore(), logger.NewTestLogger())

	_, err := session.Verify("no-such-token", "123456")

	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeNoPendingChallenge))
}

func TestAuthSessionVerifyConsumesOnFailure(t *testing.T) {
	svc := &fakeService{
		twoFactorLoginFunc: func(username, identifier, code string) error {
			return errors.New(errors.ErrorTypeVerificationFailed, "code rejected")
		},
	}
	store := NewChallengeStore()
	token := store.Put(&PendingChallenge{Username: "giveaway_host", Session: svc})

	session := NewAuthSession(nil, store, logger.NewTestLogger())

	_, err := session.Verify(token, "000000")
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeVerificationFailed))
	assert.Equal(t, StateFailed, session.State())

	// the failed challenge is gone; a second attempt needs a fresh login
	_, err = session.Verify(token, "000000")
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeNoPendingChallenge))
}
