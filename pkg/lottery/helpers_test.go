package lottery

import (
	"igdraw/pkg/config"
	"igdraw/pkg/errors"
	"igdraw/pkg/instagram"
)

// fakeService is a scriptable InstagramService for tests. Unset funcs fall
// back to a benign default.
type fakeService struct {
	loginFunc          func(username, password string) (*instagram.LoginResult, error)
	twoFactorLoginFunc func(username, identifier, code string) error
	resolveMediaIDFunc func(shortcode string) (string, error)
	fetchPageFunc      func(mediaID, cursor string) (*instagram.CommentPage, error)

	loginCalls     int
	twoFactorCalls int
	fetchCalls     int
}

func (f *fakeService) Login(username, password string) (*instagram.LoginResult, error) {
	f.loginCalls++
	if f.loginFunc != nil {
		return f.loginFunc(username, password)
	}
	return &instagram.LoginResult{Outcome: instagram.LoginAuthenticated}, nil
}

func (f *fakeService) TwoFactorLogin(username, identifier, code string) error {
	f.twoFactorCalls++
	if f.twoFactorLoginFunc != nil {
		return f.twoFactorLoginFunc(username, identifier, code)
	}
	return nil
}

func (f *fakeService) ResolveMediaID(shortcode string) (string, error) {
	if f.resolveMediaIDFunc != nil {
		return f.resolveMediaIDFunc(shortcode)
	}
	return "1234_5678", nil
}

func (f *fakeService) FetchCommentsPage(mediaID, cursor string) (*instagram.CommentPage, error) {
	f.fetchCalls++
	if f.fetchPageFunc != nil {
		return f.fetchPageFunc(mediaID, cursor)
	}
	return &instagram.CommentPage{Comments: []instagram.Comment{}, HasMore: false}, nil
}

// twoFactorLoginResult builds the action-required login variant
func twoFactorLoginResult(identifier, phone string) *instagram.LoginResult {
	return &instagram.LoginResult{
		Outcome: instagram.LoginTwoFactorRequired,
		TwoFactor: &instagram.TwoFactorInfo{
			Identifier:      identifier,
			ObfuscatedPhone: phone,
		},
	}
}

// pagedService scripts a fixed sequence of comment pages keyed by cursor
func pagedService(pages map[string]*instagram.CommentPage) *fakeService {
	return &fakeService{
		fetchPageFunc: func(mediaID, cursor string) (*instagram.CommentPage, error) {
			page, ok := pages[cursor]
			if !ok {
				return nil, errors.New(errors.ErrorTypeServerError, "unexpected cursor")
			}
			return page, nil
		},
	}
}

func testConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.Instagram.Username = "giveaway_host"
	cfg.Instagram.Password = "secret"
	return cfg
}
