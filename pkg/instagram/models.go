package instagram

// Comment is a single comment on a post. Mentions are derived from Text once
// at ingestion time. Comments are never deduplicated: an author who commented
// more than once appears more than once.
type Comment struct {
	Username string   `json:"username"`
	Text     string   `json:"text"`
	Mentions []string `json:"mentions"`
}

// MentionCount returns the number of mentions in the comment, counting
// repeated handles every time they appear
func (c Comment) MentionCount() int {
	return len(c.Mentions)
}

// CommentPage is one batch of comments yielded by the comments feed
type CommentPage struct {
	Comments   []Comment
	HasMore    bool
	NextCursor string
}

// LoginOutcome distinguishes the possible results of a login attempt that the
// service reports in-band rather than as a transport failure
type LoginOutcome string

const (
	// LoginAuthenticated means the session is ready for authenticated calls
	LoginAuthenticated LoginOutcome = "authenticated"

	// LoginTwoFactorRequired means the service wants a one-time code before
	// completing this login
	LoginTwoFactorRequired LoginOutcome = "two_factor_required"

	// LoginCheckpointRequired means the account is blocked behind a security
	// checkpoint that must be resolved out-of-band; terminal for this system
	LoginCheckpointRequired LoginOutcome = "checkpoint_required"
)

// TwoFactorInfo identifies an in-flight two-factor challenge
type TwoFactorInfo struct {
	Identifier      string
	ObfuscatedPhone string
}

// LoginResult is the tagged outcome of a login attempt. Exactly one of the
// optional fields is populated, matching Outcome.
type LoginResult struct {
	Outcome       LoginOutcome
	TwoFactor     *TwoFactorInfo // set when Outcome == LoginTwoFactorRequired
	CheckpointURL string         // set when Outcome == LoginCheckpointRequired
}

// loginResponse is the wire payload of the login endpoint
type loginResponse struct {
	Status            string         `json:"status"`
	Message           string         `json:"message"`
	ErrorType         string         `json:"error_type"`
	TwoFactorRequired bool           `json:"two_factor_required"`
	TwoFactorInfo     *twoFactorInfo `json:"two_factor_info"`
	Challenge         *challengeInfo `json:"challenge"`
	LoggedInUser      *loggedInUser  `json:"logged_in_user"`
}

type twoFactorInfo struct {
	TwoFactorIdentifier   string `json:"two_factor_identifier"`
	ObfuscatedPhoneNumber string `json:"obfuscated_phone_number"`
}

type challengeInfo struct {
	URL    string `json:"url"`
	APIURL string `json:"api_path"`
}

type loggedInUser struct {
	PK       int64  `json:"pk"`
	Username string `json:"username"`
}

// twoFactorLoginResponse is the wire payload of the two-factor login endpoint
type twoFactorLoginResponse struct {
	Status       string        `json:"status"`
	Message      string        `json:"message"`
	LoggedInUser *loggedInUser `json:"logged_in_user"`
}

// mediaInfoResponse is the wire payload of the oembed media resolution endpoint
type mediaInfoResponse struct {
	MediaID    string `json:"media_id"`
	AuthorName string `json:"author_name"`
	Title      string `json:"title"`
}

// commentsResponse is the wire payload of one page of the media comments feed
type commentsResponse struct {
	Status          string        `json:"status"`
	Comments        []commentItem `json:"comments"`
	HasMoreComments bool          `json:"has_more_comments"`
	NextMinID       string        `json:"next_min_id"`
	CommentCount    int           `json:"comment_count"`
}

type commentItem struct {
	PK   int64       `json:"pk"`
	Text string      `json:"text"`
	User commentUser `json:"user"`
}

type commentUser struct {
	Username string `json:"username"`
}
