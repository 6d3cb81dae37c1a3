package lottery

import (
	"igdraw/pkg/errors"
	"igdraw/pkg/instagram"
	"igdraw/pkg/logger"
)

// AuthState is the authentication state of a session
type AuthState string

const (
	StateUnauthenticated  AuthState = "unauthenticated"
	StateAuthenticating   AuthState = "authenticating"
	StateAuthenticated    AuthState = "authenticated"
	StateChallengePending AuthState = "challenge_pending"
	StateFailed           AuthState = "failed"
)

// LoginStatus is the non-error outcome of AuthSession.Login
type LoginStatus string

const (
	// LoginOK means the session is authenticated and usable
	LoginOK LoginStatus = "ok"

	// LoginPending means a two-factor challenge was raised and stored; the
	// caller must come back with the code and the challenge token
	LoginPending LoginStatus = "pending"
)

// LoginOutcome is the result of a login attempt that did not fail outright
type LoginOutcome struct {
	Status    LoginStatus
	Challenge *PendingChallenge // set when Status == LoginPending, Token populated
}

// AuthSession drives the login/verify state machine against the external
// service. Transitions: Unauthenticated -> Authenticating -> one of
// {Authenticated, ChallengePending, Failed}; from ChallengePending a
// verification moves to {Authenticated, Failed}.
type AuthSession struct {
	svc        InstagramService
	challenges *ChallengeStore
	state      AuthState
	logger     logger.Logger
}

// NewAuthSession creates a session over the given service handle
func NewAuthSession(svc InstagramService, challenges *ChallengeStore, log logger.Logger) *AuthSession {
	if log == nil {
		log = logger.GetLogger()
	}
	return &AuthSession{
		svc:        svc,
		challenges: challenges,
		state:      StateUnauthenticated,
		logger:     log,
	}
}

// State returns the current authentication state
func (s *AuthSession) State() AuthState {
	return s.state
}

// Login attempts a primary login. When the service raises a two-factor
// challenge the in-flight session handle and the original draw parameters are
// captured in a PendingChallenge, stored, and returned as a non-fatal
// action-required outcome. A security checkpoint is a terminal failure.
func (s *AuthSession) Login(username, password, postURL string, mentionThreshold int) (*LoginOutcome, error) {
	s.state = StateAuthenticating

	result, err := s.svc.Login(username, password)
	if err != nil {
		s.state = StateFailed
		return nil, err
	}

	switch result.Outcome {
	case instagram.LoginAuthenticated:
		s.state = StateAuthenticated
		return &LoginOutcome{Status: LoginOK}, nil

	case instagram.LoginTwoFactorRequired:
		challenge := &PendingChallenge{
			Username:         username,
			Identifier:       result.TwoFactor.Identifier,
			ObfuscatedPhone:  result.TwoFactor.ObfuscatedPhone,
			PostURL:          postURL,
			MentionThreshold: mentionThreshold,
			Session:          s.svc,
		}
		token := s.challenges.Put(challenge)

		s.state = StateChallengePending
		s.logger.InfoWithFields("two-factor challenge stored", map[string]interface{}{
			"username":         username,
			"challenge_token":  token,
			"obfuscated_phone": challenge.ObfuscatedPhone,
		})
		return &LoginOutcome{Status: LoginPending, Challenge: challenge}, nil

	case instagram.LoginCheckpointRequired:
		s.state = StateFailed
		return nil, errors.Newf(errors.ErrorTypeCheckpointRequired,
			"account is blocked by a security checkpoint; verify it in the Instagram app and retry")

	default:
		s.state = StateFailed
		return nil, errors.Newf(errors.ErrorTypeUnknown, "unexpected login outcome: %s", result.Outcome)
	}
}

// Verify completes a stored two-factor challenge with a one-time code. The
// challenge is consumed whether verification succeeds or fails: a rejected
// code requires a fresh Login, never a second Verify against the same
// challenge. On success the consumed challenge is returned with its session
// handle, now authenticated.
func (s *AuthSession) Verify(token, code string) (*PendingChallenge, error) {
	challenge, ok := s.challenges.TakeAndClear(token)
	if !ok {
		return nil, errors.New(errors.ErrorTypeNoPendingChallenge,
			"no pending two-factor challenge; start the draw first")
	}

	if err := challenge.Session.TwoFactorLogin(challenge.Username, challenge.Identifier, code); err != nil {
		s.state = StateFailed
		s.logger.WarnWithFields("two-factor verification failed", map[string]interface{}{
			"username": challenge.Username,
			"error":    err.Error(),
		})
		if errors.IsType(err, errors.ErrorTypeVerificationFailed) {
			return nil, err
		}
		return nil, errors.Newf(errors.ErrorTypeVerificationFailed,
			"could not verify the code: %v", err)
	}

	s.state = StateAuthenticated
	return challenge, nil
}
