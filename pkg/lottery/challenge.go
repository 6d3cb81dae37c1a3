package lottery

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// PendingChallenge holds everything needed to finish a login interrupted by a
// two-factor requirement: the session whose login is in flight, the challenge
// identifier the service handed back, and the draw parameters of the original
// request. The session handle is owned by the challenge until it is consumed.
type PendingChallenge struct {
	Token            string
	Username         string
	Identifier       string
	ObfuscatedPhone  string
	PostURL          string
	MentionThreshold int
	Session          InstagramService
	CreatedAt        time.Time
}

// ChallengeStore holds in-flight two-factor challenges keyed by an opaque
// token. The token travels to the caller in the action-required response and
// must come back on the completion call, which correlates the two round-trips
// of one login attempt without shared ambient state.
//
// A challenge is consumed on the first take regardless of the verification
// outcome; a failed code means restarting the login, not retrying the take.
// Challenges have no expiry: an abandoned one stays until a new login for the
// same account replaces it.
type ChallengeStore struct {
	mu      sync.Mutex
	byToken map[string]*PendingChallenge
	byUser  map[string]string
}

// NewChallengeStore creates an empty challenge store
func NewChallengeStore() *ChallengeStore {
	return &ChallengeStore{
		byToken: make(map[string]*PendingChallenge),
		byUser:  make(map[string]string),
	}
}

// Put stores a challenge and returns its token. Any outstanding challenge for
// the same account is replaced; its token becomes invalid.
func (s *ChallengeStore) Put(challenge *PendingChallenge) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if prior, ok := s.byUser[challenge.Username]; ok {
		delete(s.byToken, prior)
	}

	challenge.Token = uuid.NewString()
	challenge.CreatedAt = time.Now()
	s.byToken[challenge.Token] = challenge
	s.byUser[challenge.Username] = challenge.Token

	return challenge.Token
}

// TakeAndClear atomically removes and returns the challenge for a token.
// Returns false for unknown tokens, including tokens already consumed.
func (s *ChallengeStore) TakeAndClear(token string) (*PendingChallenge, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	challenge, ok := s.byToken[token]
	if !ok {
		return nil, false
	}

	delete(s.byToken, token)
	if s.byUser[challenge.Username] == token {
		delete(s.byUser, challenge.Username)
	}

	return challenge, true
}

// Len returns the number of outstanding challenges
func (s *ChallengeStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.byToken)
}
