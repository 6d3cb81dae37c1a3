package lottery

import "igdraw/pkg/instagram"

// InstagramService is the capability surface the lottery needs from the
// external service. One value represents one logical session: Login
// establishes its authority, and the comment operations borrow it.
type InstagramService interface {
	Login(username, password string) (*instagram.LoginResult, error)
	TwoFactorLogin(username, identifier, code string) error
	ResolveMediaID(shortcode string) (string, error)
	FetchCommentsPage(mediaID, cursor string) (*instagram.CommentPage, error)
}
