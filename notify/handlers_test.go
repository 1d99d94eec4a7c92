package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeSender struct {
	sent []Email
	err  error
}

func (f *fakeSender) Send(_ context.Context, email Email) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, email)
	return nil
}

func newTestRouter(sender EmailSender, secret string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHandler(sender, func() string { return secret }, "Test <test@example.com>", zap.NewNop())
	r := gin.New()
	r.POST("/webhooks/auth/verification-email", h.VerificationEmail)
	r.POST("/webhooks/auth/reset-email", h.ResetEmail)
	return r
}

func postHook(t *testing.T, r *gin.Engine, path string, body []byte, headers map[string]string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return w, resp
}

func signedHeaders(t *testing.T, body []byte) map[string]string {
	ts := strconv.FormatInt(time.Now().Unix(), 10)
	return map[string]string{
		"webhook-id":        "msg_1",
		"webhook-timestamp": ts,
		"webhook-signature": sign(t, testSecret, "msg_1", ts, body),
	}
}

func TestVerificationEmail_Delivered(t *testing.T) {
	sender := &fakeSender{}
	r := newTestRouter(sender, testSecret)

	body := []byte(`{"user":{"email":"new@example.com"},"email_data":{"token":"123456","redirect_to":"https://app.example.com/confirm"}}`)
	w, resp := postHook(t, r, "/webhooks/auth/verification-email", body, signedHeaders(t, body))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, resp["success"])
	require.Len(t, sender.sent, 1)
	assert.Equal(t, "new@example.com", sender.sent[0].To)
	assert.Contains(t, sender.sent[0].HTML, "123456")
}

func TestVerificationEmail_MalformedSignatureStillSucceeds(t *testing.T) {
	sender := &fakeSender{}
	r := newTestRouter(sender, testSecret)

	body := []byte(`{"user":{"email":"new@example.com"}}`)
	headers := signedHeaders(t, body)
	headers["webhook-signature"] = "v1,bm90LWEtcmVhbC1zaWduYXR1cmU="

	w, resp := postHook(t, r, "/webhooks/auth/verification-email", body, headers)

	// Fail-open: the caller must never see an error
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, resp["success"])
	assert.Contains(t, resp["message"], "skipped")
	assert.Empty(t, sender.sent)
}

func TestVerificationEmail_MissingSecretStillSucceeds(t *testing.T) {
	sender := &fakeSender{}
	r := newTestRouter(sender, "")

	body := []byte(`{"user":{"email":"new@example.com"}}`)
	w, resp := postHook(t, r, "/webhooks/auth/verification-email", body, signedHeaders(t, body))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, resp["success"])
	assert.Empty(t, sender.sent)
}

func TestResetEmail_SendFailureStillSucceeds(t *testing.T) {
	sender := &fakeSender{err: errors.New("smtp is down")}
	r := newTestRouter(sender, testSecret)

	body := []byte(`{"user":{"email":"back@example.com"},"email_data":{"token":"654321"}}`)
	w, resp := postHook(t, r, "/webhooks/auth/reset-email", body, signedHeaders(t, body))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, resp["success"])
	assert.Contains(t, resp["message"], "send failed")
}

func TestResetEmail_BadPayloadStillSucceeds(t *testing.T) {
	sender := &fakeSender{}
	r := newTestRouter(sender, testSecret)

	body := []byte(`not json at all`)
	w, resp := postHook(t, r, "/webhooks/auth/reset-email", body, signedHeaders(t, body))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, resp["success"])
	assert.Empty(t, sender.sent)
}

func TestResetEmail_NoRecipientStillSucceeds(t *testing.T) {
	sender := &fakeSender{}
	r := newTestRouter(sender, testSecret)

	body := []byte(`{"user":{},"email_data":{"token":"654321"}}`)
	w, resp := postHook(t, r, "/webhooks/auth/reset-email", body, signedHeaders(t, body))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, resp["success"])
	assert.Empty(t, sender.sent)
}
