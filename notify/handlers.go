package notify

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler serves the auth-hook email webhooks. Policy: these endpoints are
// fail-open. Whatever goes wrong — missing secret, bad signature, bad
// payload, send failure — the response is 200 success, because a broken email
// path must never block signup or password reset. Failures are logged with
// the skip reason instead.
type Handler struct {
	Sender EmailSender
	Secret func() string
	From   string
	Log    *zap.Logger
}

func NewHandler(sender EmailSender, secret func() string, from string, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{Sender: sender, Secret: secret, From: from, Log: log}
}

// hookPayload is the auth-hook body shape for email events.
type hookPayload struct {
	User struct {
		Email string `json:"email"`
	} `json:"user"`
	EmailData struct {
		Token      string `json:"token"`
		TokenHash  string `json:"token_hash"`
		RedirectTo string `json:"redirect_to"`
		ActionType string `json:"email_action_type"`
	} `json:"email_data"`
}

// VerificationEmail handles the signup-confirmation hook.
func (h *Handler) VerificationEmail(c *gin.Context) {
	h.handle(c, "verification", func(p hookPayload) Email {
		return Email{
			From:    h.From,
			To:      p.User.Email,
			Subject: "Confirm your email",
			HTML: fmt.Sprintf(
				"<h2>Welcome!</h2><p>Your confirmation code is <strong>%s</strong>.</p>"+
					"<p><a href=%q>Confirm your email</a></p>",
				p.EmailData.Token, p.EmailData.RedirectTo),
		}
	})
}

// ResetEmail handles the password-reset hook.
func (h *Handler) ResetEmail(c *gin.Context) {
	h.handle(c, "password_reset", func(p hookPayload) Email {
		return Email{
			From:    h.From,
			To:      p.User.Email,
			Subject: "Reset your password",
			HTML: fmt.Sprintf(
				"<h2>Password reset</h2><p>Your reset code is <strong>%s</strong>.</p>"+
					"<p><a href=%q>Choose a new password</a></p>",
				p.EmailData.Token, p.EmailData.RedirectTo),
		}
	})
}

func (h *Handler) handle(c *gin.Context, kind string, render func(hookPayload) Email) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		h.respond(c, kind, skipped("unreadable request body: "+err.Error()))
		return
	}

	if err := VerifySignature(
		h.Secret(),
		c.GetHeader("webhook-id"),
		c.GetHeader("webhook-timestamp"),
		c.GetHeader("webhook-signature"),
		body,
	); err != nil {
		h.respond(c, kind, skipped("signature verification failed: "+err.Error()))
		return
	}

	var payload hookPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		h.respond(c, kind, skipped("invalid payload: "+err.Error()))
		return
	}
	if payload.User.Email == "" {
		h.respond(c, kind, skipped("payload has no recipient email"))
		return
	}

	if err := h.Sender.Send(c.Request.Context(), render(payload)); err != nil {
		h.respond(c, kind, skipped("send failed: "+err.Error()))
		return
	}
	h.respond(c, kind, delivered())
}

// respond always answers 200. The Delivery outcome is logged and echoed in
// the message so operators can see skips without the caller ever failing.
func (h *Handler) respond(c *gin.Context, kind string, d Delivery) {
	if d.Status == StatusDelivered {
		h.Log.Info("notification email delivered", zap.String("kind", kind))
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "email sent"})
		return
	}
	h.Log.Warn("notification email skipped",
		zap.String("kind", kind),
		zap.String("reason", d.Reason))
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "email skipped: " + d.Reason,
	})
}
