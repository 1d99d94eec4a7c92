package notify

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const testSecret = "whsec_dGVzdC1zaWduaW5nLWtleS0xMjM0NTY="

func sign(t *testing.T, secret, msgID, timestamp string, body []byte) string {
	t.Helper()
	key, err := base64.StdEncoding.DecodeString(secret[len("whsec_"):])
	require.NoError(t, err)
	mac := hmac.New(sha256.New, key)
	mac.Write([]byte(msgID + "." + timestamp + "."))
	mac.Write(body)
	return "v1," + base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

func TestVerifySignature_Valid(t *testing.T) {
	body := []byte(`{"user":{"email":"a@b.c"}}`)
	ts := strconv.FormatInt(time.Now().Unix(), 10)
	sig := sign(t, testSecret, "msg_1", ts, body)

	require.NoError(t, VerifySignature(testSecret, "msg_1", ts, sig, body))
}

func TestVerifySignature_MultipleSignatures(t *testing.T) {
	body := []byte(`{}`)
	ts := strconv.FormatInt(time.Now().Unix(), 10)
	sig := sign(t, testSecret, "msg_1", ts, body)

	// Old-key signature alongside the valid one still verifies
	header := "v1,Zm9vYmFyYmF6 " + sig
	require.NoError(t, VerifySignature(testSecret, "msg_1", ts, header, body))
}

func TestVerifySignature_Tampered(t *testing.T) {
	ts := strconv.FormatInt(time.Now().Unix(), 10)
	sig := sign(t, testSecret, "msg_1", ts, []byte(`{"a":1}`))

	require.Error(t, VerifySignature(testSecret, "msg_1", ts, sig, []byte(`{"a":2}`)))
}

func TestVerifySignature_WrongMessageID(t *testing.T) {
	body := []byte(`{}`)
	ts := strconv.FormatInt(time.Now().Unix(), 10)
	sig := sign(t, testSecret, "msg_1", ts, body)

	require.Error(t, VerifySignature(testSecret, "msg_other", ts, sig, body))
}

func TestVerifySignature_StaleTimestamp(t *testing.T) {
	body := []byte(`{}`)
	ts := strconv.FormatInt(time.Now().Add(-time.Hour).Unix(), 10)
	sig := sign(t, testSecret, "msg_1", ts, body)

	require.Error(t, VerifySignature(testSecret, "msg_1", ts, sig, body))
}

func TestVerifySignature_MissingPieces(t *testing.T) {
	body := []byte(`{}`)
	ts := strconv.FormatInt(time.Now().Unix(), 10)
	sig := sign(t, testSecret, "msg_1", ts, body)

	require.Error(t, VerifySignature("", "msg_1", ts, sig, body))
	require.Error(t, VerifySignature(testSecret, "", ts, sig, body))
	require.Error(t, VerifySignature(testSecret, "msg_1", "", sig, body))
	require.Error(t, VerifySignature(testSecret, "msg_1", ts, "", body))
	require.Error(t, VerifySignature(testSecret, "msg_1", "not-a-number", sig, body))
}
