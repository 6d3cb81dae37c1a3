package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"igdraw/pkg/errors"
	"igdraw/pkg/lottery"
)

// DrawHandler handles the draw endpoints
type DrawHandler struct {
	service DrawService
	log     zerolog.Logger
}

// NewDrawHandler creates a new DrawHandler
func NewDrawHandler(service DrawService, log zerolog.Logger) *DrawHandler {
	return &DrawHandler{
		service: service,
		log:     log.With().Str("handler", "draw").Logger(),
	}
}

type startDrawRequest struct {
	PostURL          string `json:"postUrl" binding:"required"`
	MentionThreshold int    `json:"mentionThreshold"`
	WinnerCount      int    `json:"winnerCount"`
	SubstituteCount  int    `json:"substituteCount"`
}

type completeChallengeRequest struct {
	ChallengeToken   string `json:"challengeToken" binding:"required"`
	Code             string `json:"code" binding:"required"`
	PostURL          string `json:"postUrl" binding:"required"`
	MentionThreshold int    `json:"mentionThreshold"`
	WinnerCount      int    `json:"winnerCount"`
	SubstituteCount  int    `json:"substituteCount"`
}

type manualDrawRequest struct {
	Usernames       []string `json:"usernames" binding:"required"`
	WinnerCount     int      `json:"winnerCount" binding:"required,min=1"`
	SubstituteCount int      `json:"substituteCount"`
}

// StartDraw handles POST /api/v1/draws
func (h *DrawHandler) StartDraw(c *gin.Context) {
	var req startDrawRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "postUrl is required"})
		return
	}

	outcome, err := h.service.StartDraw(req.PostURL, req.MentionThreshold)
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.respondOutcome(c, outcome, req.WinnerCount, req.SubstituteCount)
}

// CompleteChallenge handles PUT /api/v1/draws
func (h *DrawHandler) CompleteChallenge(c *gin.Context) {
	var req completeChallengeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "challengeToken, code, and postUrl are required"})
		return
	}

	outcome, err := h.service.CompleteChallenge(req.ChallengeToken, req.Code, req.PostURL, req.MentionThreshold)
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.respondOutcome(c, outcome, req.WinnerCount, req.SubstituteCount)
}

// ManualDraw handles POST /api/v1/draws/manual: a draw over a pasted username
// list, no Instagram round-trip involved
func (h *DrawHandler) ManualDraw(c *gin.Context) {
	var req manualDrawRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "usernames and winnerCount are required"})
		return
	}

	result, err := lottery.DrawUsernames(req.Usernames, req.WinnerCount, req.SubstituteCount)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"winners":     result.Winners,
		"substitutes": result.Substitutes,
	})
}

// respondOutcome shapes a DrawOutcome into the response body, running the
// winner draw when the caller asked for one
func (h *DrawHandler) respondOutcome(c *gin.Context, outcome *lottery.DrawOutcome, winnerCount, substituteCount int) {
	if outcome.TwoFactorRequired {
		c.JSON(http.StatusUnauthorized, gin.H{
			"twoFactorRequired": true,
			"challengeToken":    outcome.ChallengeToken,
			"phoneNumber":       outcome.ObfuscatedPhone,
			"message":           "An SMS verification code is required to continue.",
		})
		return
	}

	if outcome.CheckpointRequired {
		c.JSON(http.StatusUnauthorized, gin.H{
			"challengeRequired": true,
			"message":           "Instagram requires a security verification. Confirm your account in the Instagram app and try again.",
		})
		return
	}

	body := gin.H{
		"success":       true,
		"totalComments": outcome.TotalComments,
		"eligibleCount": outcome.EligibleCount,
		"comments":      outcome.Eligible,
	}

	if winnerCount > 0 {
		result, err := lottery.Draw(outcome.Eligible, winnerCount, substituteCount)
		if err != nil {
			h.respondError(c, err)
			return
		}
		body["winners"] = result.Winners
		body["substitutes"] = result.Substitutes
	}

	c.JSON(http.StatusOK, body)
}

// respondError maps a typed error onto a status code and a structured body.
// Request failures never take the process down; every error is reported and
// the server stays available.
func (h *DrawHandler) respondError(c *gin.Context, err error) {
	errorType := errors.TypeOf(err)

	status := http.StatusInternalServerError
	switch errorType {
	case errors.ErrorTypeInvalidURL,
		errors.ErrorTypeNoPendingChallenge,
		errors.ErrorTypeVerificationFailed,
		errors.ErrorTypeInsufficientParticipants:
		status = http.StatusBadRequest
	case errors.ErrorTypeInvalidCredentials:
		status = http.StatusUnauthorized
	case errors.ErrorTypePostNotFound:
		status = http.StatusNotFound
	case errors.ErrorTypeCredentialsNotConfigured:
		status = http.StatusInternalServerError
	}

	h.log.Warn().
		Str("error_type", string(errorType)).
		Err(err).
		Msg("draw request failed")

	c.JSON(status, gin.H{
		"error": err.Error(),
		"code":  string(errorType),
	})
}
