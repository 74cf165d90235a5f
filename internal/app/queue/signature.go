package queue

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
)

// SignatureHeader carries the callback body signature.
const SignatureHeader = "X-Queue-Signature"

// ErrInvalidSignature is returned when a callback signature matches
// neither the current nor the next signing key.
var ErrInvalidSignature = errors.New("invalid callback signature")

// Sign computes the hex HMAC-SHA256 of body under key.
func Sign(key string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(key))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

// Receiver verifies signed callback bodies. Two keys are accepted — the
// current one and its scheduled successor — so keys rotate without a
// window of rejected callbacks.
type Receiver struct {
	currentKey string
	nextKey    string
}

// NewReceiver creates a callback receiver. nextKey may be empty when no
// rotation is in progress.
func NewReceiver(currentKey, nextKey string) *Receiver {
	return &Receiver{currentKey: currentKey, nextKey: nextKey}
}

// Verify checks signature against the verbatim body bytes. The body must
// be the raw request payload; re-serializing before verification would
// break signatures over semantically equal but byte-different JSON.
func (r *Receiver) Verify(body []byte, signature string) error {
	if r.matches(r.currentKey, body, signature) {
		return nil
	}
	if r.nextKey != "" && r.matches(r.nextKey, body, signature) {
		return nil
	}
	return ErrInvalidSignature
}

func (r *Receiver) matches(key string, body []byte, signature string) bool {
	if key == "" {
		return false
	}
	expected := Sign(key, body)
	return hmac.Equal([]byte(expected), []byte(signature))
}
