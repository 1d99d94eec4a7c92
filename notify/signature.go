package notify

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"strconv"
	"strings"
	"time"
)

// Signature scheme used by the hosted-auth webhook: the secret is
// "whsec_" + base64 key, the signed content is "{msg-id}.{timestamp}.{body}",
// and the signature header carries space-separated "v1,<base64 mac>" entries.

const signatureTolerance = 5 * time.Minute

var (
	errMissingSecret  = errors.New("webhook secret is not configured")
	errMissingHeaders = errors.New("missing webhook signature headers")
	errBadTimestamp   = errors.New("invalid webhook timestamp")
	errStaleTimestamp = errors.New("webhook timestamp outside tolerance")
	errBadSignature   = errors.New("webhook signature mismatch")
)

// VerifySignature checks the webhook MAC against the shared secret.
func VerifySignature(secret, msgID, timestamp, sigHeader string, body []byte) error {
	if secret == "" {
		return errMissingSecret
	}
	if msgID == "" || timestamp == "" || sigHeader == "" {
		return errMissingHeaders
	}

	ts, err := strconv.ParseInt(timestamp, 10, 64)
	if err != nil {
		return errBadTimestamp
	}
	if d := time.Since(time.Unix(ts, 0)); d > signatureTolerance || d < -signatureTolerance {
		return errStaleTimestamp
	}

	key, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(secret, "whsec_"))
	if err != nil {
		return errMissingSecret
	}

	mac := hmac.New(sha256.New, key)
	mac.Write([]byte(msgID + "." + timestamp + "."))
	mac.Write(body)
	expected := base64.StdEncoding.EncodeToString(mac.Sum(nil))

	for _, part := range strings.Fields(sigHeader) {
		version, sig, ok := strings.Cut(part, ",")
		if !ok || version != "v1" {
			continue
		}
		if hmac.Equal([]byte(sig), []byte(expected)) {
			return nil
		}
	}
	return errBadSignature
}
