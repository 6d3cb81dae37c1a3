package lottery

import (
	"igdraw/pkg/config"
	"igdraw/pkg/errors"
	"igdraw/pkg/instagram"
	"igdraw/pkg/logger"
	"igdraw/pkg/ratelimit"
	"time"
)

// DrawOutcome is the result of StartDraw or CompleteChallenge. Exactly one of
// three shapes is populated: a two-factor action-required response, a
// checkpoint-required response, or a successful comment set.
type DrawOutcome struct {
	// Action required: two-factor
	TwoFactorRequired bool
	ChallengeToken    string
	ObfuscatedPhone   string

	// Action required: security checkpoint (terminal, out-of-band)
	CheckpointRequired bool
	CheckpointURL      string

	// Success
	Success       bool
	TotalComments int
	EligibleCount int
	Eligible      []instagram.Comment
}

// ClientFactory builds a fresh service handle for one login attempt
type ClientFactory func() InstagramService

// Service orchestrates one draw request: URL validation, authentication with
// the optional two-factor round-trip, and comment retrieval
type Service struct {
	cfg        *config.Config
	newClient  ClientFactory
	challenges *ChallengeStore
	limiter    ratelimit.Limiter
	logger     logger.Logger
}

// New creates a Service using the real Instagram client
func New(cfg *config.Config, log logger.Logger) *Service {
	if log == nil {
		log = logger.GetLogger()
	}

	factory := func() InstagramService {
		client := instagram.NewClient(cfg.HTTP.Timeout, cfg.HTTP.MaxRetries, cfg.HTTP.RetryDelay, log)
		client.SetDevice(instagram.GenerateDevice(cfg.Instagram.Username, cfg.Instagram.UserAgent))
		return client
	}

	return NewWithFactory(cfg, log, factory)
}

// NewWithFactory creates a Service with a custom client factory. Tests use
// this to substitute a fixture service.
func NewWithFactory(cfg *config.Config, log logger.Logger, factory ClientFactory) *Service {
	if log == nil {
		log = logger.GetLogger()
	}

	return &Service{
		cfg:        cfg,
		newClient:  factory,
		challenges: NewChallengeStore(),
		limiter:    ratelimit.NewTokenBucket(cfg.RateLimit.RequestsPerMinute, time.Minute),
		logger:     log,
	}
}

// StartDraw validates the post URL, logs in with the configured account, and
// on immediate success retrieves and filters the post's comments. A two-factor
// requirement surfaces as an action-required outcome carrying the challenge
// token; a checkpoint surfaces as a terminal action-required outcome.
func (s *Service) StartDraw(postURL string, mentionThreshold int) (*DrawOutcome, error) {
	shortcode, err := instagram.ExtractShortcode(postURL)
	if err != nil {
		return nil, err
	}

	if !s.cfg.HasCredentials() {
		return nil, errors.New(errors.ErrorTypeCredentialsNotConfigured,
			"no Instagram account configured; set INSTAGRAM_USERNAME and INSTAGRAM_PASSWORD")
	}

	svc := s.newClient()
	session := NewAuthSession(svc, s.challenges, s.logger)

	outcome, err := session.Login(s.cfg.Instagram.Username, s.cfg.Instagram.Password, postURL, mentionThreshold)
	if err != nil {
		if errors.IsType(err, errors.ErrorTypeCheckpointRequired) {
			return &DrawOutcome{CheckpointRequired: true}, nil
		}
		return nil, err
	}

	if outcome.Status == LoginPending {
		return &DrawOutcome{
			TwoFactorRequired: true,
			ChallengeToken:    outcome.Challenge.Token,
			ObfuscatedPhone:   outcome.Challenge.ObfuscatedPhone,
		}, nil
	}

	return s.fetchOutcome(svc, shortcode, mentionThreshold)
}

// CompleteChallenge finishes a two-factor login and runs the draw retrieval.
// The post target is re-derived from the caller-supplied URL and threshold,
// not from the stored challenge, so the caller can retarget the completed
// session.
func (s *Service) CompleteChallenge(token, code, postURL string, mentionThreshold int) (*DrawOutcome, error) {
	shortcode, err := instagram.ExtractShortcode(postURL)
	if err != nil {
		return nil, err
	}

	session := NewAuthSession(nil, s.challenges, s.logger)
	challenge, err := session.Verify(token, code)
	if err != nil {
		return nil, err
	}

	return s.fetchOutcome(challenge.Session, shortcode, mentionThreshold)
}

func (s *Service) fetchOutcome(svc InstagramService, shortcode string, mentionThreshold int) (*DrawOutcome, error) {
	pager := NewCommentPager(svc, s.limiter, s.cfg.Draw.MaxCommentPages, s.logger)

	comments, err := pager.FetchEligible(shortcode, mentionThreshold)
	if err != nil {
		return nil, err
	}

	return &DrawOutcome{
		Success:       true,
		TotalComments: len(comments.All),
		EligibleCount: len(comments.Eligible),
		Eligible:      comments.Eligible,
	}, nil
}
