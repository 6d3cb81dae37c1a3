package instagram

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"igdraw/pkg/errors"
	"igdraw/pkg/logger"
)

// Client talks to the Instagram private API. It carries the session state
// (cookies) established by Login, so one Client instance is one logical
// authenticated session.
type Client struct {
	httpClient *http.Client
	headers    map[string]string
	baseURL    string
	device     *Device
	maxRetries int
	retryDelay time.Duration
	logger     logger.Logger
}

// NewClient creates a new Instagram API client
func NewClient(timeout time.Duration, maxRetries int, retryDelay time.Duration, log logger.Logger) *Client {
	if log == nil {
		log = logger.GetLogger()
	}

	// Cookie jar carries the session between the login round-trip and the
	// comment fetches, and between primary login and two-factor completion.
	jar, _ := cookiejar.New(nil)

	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
			Jar:     jar,
		},
		headers: map[string]string{
			"Accept":           "*/*",
			"Accept-Language":  "en-US,en;q=0.9",
			"X-IG-App-ID":      AppID,
			"X-Requested-With": "XMLHttpRequest",
		},
		baseURL:    BaseURL,
		maxRetries: maxRetries,
		retryDelay: retryDelay,
		logger:     log,
	}
}

// SetBaseURL overrides the API base URL. Used by tests to point the client at
// a fixture server.
func (c *Client) SetBaseURL(baseURL string) {
	c.baseURL = baseURL
}

// SetHeader sets a custom header for the client
func (c *Client) SetHeader(key, value string) {
	c.headers[key] = value
}

// SetDevice pins the device identity the client presents on login
func (c *Client) SetDevice(device *Device) {
	c.device = device
	if device.UserAgent != "" {
		c.headers["User-Agent"] = device.UserAgent
	}
}

// doRequest performs an HTTP request with the configured headers
func (c *Client) doRequest(req *http.Request) (*http.Response, error) {
	for key, value := range c.headers {
		req.Header.Set(key, value)
	}

	start := time.Now()
	c.logger.DebugWithFields("sending HTTP request", map[string]interface{}{
		"method": req.Method,
		"url":    req.URL.String(),
	})

	resp, err := c.httpClient.Do(req)
	duration := time.Since(start)

	if err != nil {
		c.logger.ErrorWithFields("HTTP request failed", map[string]interface{}{
			"method":   req.Method,
			"url":      req.URL.String(),
			"error":    err.Error(),
			"duration": duration,
		})
		return nil, errors.Newf(errors.ErrorTypeNetwork, "network error: %v", err)
	}

	c.logger.DebugWithFields("HTTP request completed", map[string]interface{}{
		"method":   req.Method,
		"url":      req.URL.String(),
		"status":   resp.StatusCode,
		"duration": duration,
	})

	return resp, nil
}

// doRequestWithRetry performs an HTTP request with bounded retry on transient
// failures. Requests with a body are rebuilt per attempt by the caller-supplied
// factory.
func (c *Client) doRequestWithRetry(newRequest func() (*http.Request, error)) (*http.Response, error) {
	var lastErr error

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			c.logger.WarnWithFields("retrying HTTP request", map[string]interface{}{
				"attempt": attempt,
				"error":   lastErr.Error(),
			})
			time.Sleep(c.retryDelay * time.Duration(attempt))
		}

		req, err := newRequest()
		if err != nil {
			return nil, errors.Newf(errors.ErrorTypeUnknown, "failed to create request: %v", err)
		}

		resp, err := c.doRequest(req)
		if err != nil {
			lastErr = err
			if errors.IsType(err, errors.ErrorTypeNetwork) {
				continue
			}
			return nil, err
		}

		if resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests {
			lastErr = errors.NewWithCode(errors.ErrorTypeServerError,
				fmt.Sprintf("server returned status %d", resp.StatusCode), resp.StatusCode)
			resp.Body.Close()
			continue
		}

		return resp, nil
	}

	c.logger.ErrorWithFields("max retries exceeded", map[string]interface{}{
		"max_retries": c.maxRetries,
		"last_error":  lastErr.Error(),
	})

	return nil, lastErr
}

// getJSON performs a GET request and decodes the JSON response
func (c *Client) getJSON(requestURL string, target interface{}) (int, error) {
	resp, err := c.doRequestWithRetry(func() (*http.Request, error) {
		return http.NewRequest(http.MethodGet, requestURL, nil)
	})
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	return resp.StatusCode, c.decodeJSON(resp, requestURL, target)
}

// postForm performs a form-encoded POST and decodes the JSON response. The
// status code is returned alongside: the login endpoints report in-band
// outcomes (two-factor, checkpoint) with non-200 statuses and a JSON body.
func (c *Client) postForm(requestURL string, form url.Values, target interface{}) (int, error) {
	encoded := form.Encode()
	resp, err := c.doRequestWithRetry(func() (*http.Request, error) {
		req, err := http.NewRequest(http.MethodPost, requestURL, strings.NewReader(encoded))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		return req, nil
	})
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	return resp.StatusCode, c.decodeJSON(resp, requestURL, target)
}

func (c *Client) decodeJSON(resp *http.Response, requestURL string, target interface{}) error {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.NewWithCode(errors.ErrorTypeNetwork,
			fmt.Sprintf("failed to read response body: %v", err), resp.StatusCode)
	}

	if err := json.Unmarshal(body, target); err != nil {
		bodyPreview := string(body)
		if len(bodyPreview) > 200 {
			bodyPreview = bodyPreview[:200] + "..."
		}

		c.logger.ErrorWithFields("failed to parse JSON response", map[string]interface{}{
			"url":          requestURL,
			"status":       resp.StatusCode,
			"error":        err.Error(),
			"body_preview": bodyPreview,
		})
		return errors.NewWithCode(errors.ErrorTypeParsing,
			fmt.Sprintf("failed to parse JSON: %v", err), resp.StatusCode)
	}

	return nil
}

// Login performs a username/password login and returns a tagged result. A
// two-factor or checkpoint requirement is a result variant, not an error;
// rejected credentials and anything else the endpoint refuses is an
// invalid_credentials error.
func (c *Client) Login(username, password string) (*LoginResult, error) {
	if c.device == nil {
		c.SetDevice(GenerateDevice(username, ""))
	}

	form := url.Values{}
	form.Set("username", username)
	form.Set("password", password)
	form.Set("device_id", c.device.ID)
	form.Set("guid", c.device.GUID)
	form.Set("phone_id", c.device.PhoneID)
	form.Set("adid", c.device.AdID)
	form.Set("login_attempt_count", "0")

	c.logger.DebugWithFields("attempting login", map[string]interface{}{
		"username":  username,
		"device_id": c.device.ID,
	})

	var response loginResponse
	status, err := c.postForm(c.baseURL+LoginEndpoint, form, &response)
	if err != nil {
		return nil, err
	}

	if status == http.StatusOK && response.Status == "ok" {
		c.logger.InfoWithFields("login succeeded", map[string]interface{}{
			"username": username,
		})
		return &LoginResult{Outcome: LoginAuthenticated}, nil
	}

	if response.TwoFactorRequired && response.TwoFactorInfo != nil {
		c.logger.InfoWithFields("login requires two-factor verification", map[string]interface{}{
			"username":         username,
			"obfuscated_phone": response.TwoFactorInfo.ObfuscatedPhoneNumber,
		})
		return &LoginResult{
			Outcome: LoginTwoFactorRequired,
			TwoFactor: &TwoFactorInfo{
				Identifier:      response.TwoFactorInfo.TwoFactorIdentifier,
				ObfuscatedPhone: response.TwoFactorInfo.ObfuscatedPhoneNumber,
			},
		}, nil
	}

	if response.ErrorType == "checkpoint_challenge_required" || response.Message == "challenge_required" {
		checkpointURL := ""
		if response.Challenge != nil {
			checkpointURL = response.Challenge.URL
		}
		c.logger.WarnWithFields("login blocked by security checkpoint", map[string]interface{}{
			"username":       username,
			"checkpoint_url": checkpointURL,
		})
		return &LoginResult{
			Outcome:       LoginCheckpointRequired,
			CheckpointURL: checkpointURL,
		}, nil
	}

	c.logger.WarnWithFields("login rejected", map[string]interface{}{
		"username":   username,
		"status":     status,
		"error_type": response.ErrorType,
	})
	return nil, errors.NewWithCode(errors.ErrorTypeInvalidCredentials,
		"Instagram rejected the username or password", status)
}

// TwoFactorLogin completes a pending two-factor login with a one-time code.
// The verification method is fixed to SMS and the device is marked trusted so
// subsequent logins from the same derived device skip the challenge.
func (c *Client) TwoFactorLogin(username, identifier, code string) error {
	if c.device == nil {
		c.SetDevice(GenerateDevice(username, ""))
	}

	form := url.Values{}
	form.Set("username", username)
	form.Set("verification_code", code)
	form.Set("two_factor_identifier", identifier)
	form.Set("verification_method", "1") // SMS
	form.Set("trust_this_device", "1")
	form.Set("device_id", c.device.ID)
	form.Set("guid", c.device.GUID)

	var response twoFactorLoginResponse
	status, err := c.postForm(c.baseURL+TwoFactorLoginEndpoint, form, &response)
	if err != nil {
		return err
	}

	if status == http.StatusOK && response.Status == "ok" {
		c.logger.InfoWithFields("two-factor verification succeeded", map[string]interface{}{
			"username": username,
		})
		return nil
	}

	c.logger.WarnWithFields("two-factor verification rejected", map[string]interface{}{
		"username": username,
		"status":   status,
		"message":  response.Message,
	})
	return errors.NewWithCode(errors.ErrorTypeVerificationFailed,
		"the verification code was not accepted", status)
}

// ResolveMediaID resolves a post shortcode to the service's internal media ID
func (c *Client) ResolveMediaID(shortcode string) (string, error) {
	params := url.Values{}
	params.Set("url", GetPostURL(shortcode))
	requestURL := fmt.Sprintf("%s%s?%s", c.baseURL, MediaInfoEndpoint, params.Encode())

	var response mediaInfoResponse
	status, err := c.getJSON(requestURL, &response)
	if err != nil {
		return "", err
	}

	if status != http.StatusOK || response.MediaID == "" {
		c.logger.WarnWithFields("media resolution failed", map[string]interface{}{
			"shortcode": shortcode,
			"status":    status,
		})
		return "", errors.NewWithCode(errors.ErrorTypePostNotFound,
			fmt.Sprintf("no media found for shortcode %s", shortcode), status)
	}

	return response.MediaID, nil
}

// FetchCommentsPage fetches one page of the comments feed for a media ID.
// An empty cursor requests the first page. Mentions are not populated here;
// comment ingestion derives them.
func (c *Client) FetchCommentsPage(mediaID, cursor string) (*CommentPage, error) {
	endpoint := fmt.Sprintf(CommentsEndpointFmt, mediaID)
	requestURL := c.baseURL + endpoint
	if cursor != "" {
		params := url.Values{}
		params.Set("min_id", cursor)
		requestURL += "?" + params.Encode()
	}

	var response commentsResponse
	status, err := c.getJSON(requestURL, &response)
	if err != nil {
		return nil, err
	}

	if status != http.StatusOK || response.Status != "ok" {
		return nil, errors.NewWithCode(errors.ErrorTypeServerError,
			"comments feed returned an error", status)
	}

	page := &CommentPage{
		Comments:   make([]Comment, 0, len(response.Comments)),
		HasMore:    response.HasMoreComments,
		NextCursor: response.NextMinID,
	}
	for _, item := range response.Comments {
		page.Comments = append(page.Comments, Comment{
			Username: item.User.Username,
			Text:     item.Text,
		})
	}

	return page, nil
}
