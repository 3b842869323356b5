// Package upload implements the HMAC-signed HSI snapshot upload
// client: canonical serialization, request signing, typed response
// decoding, bounded retries, and a bounded drop-oldest backlog queue.
package upload

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// Signer computes the request signature over nonce||timestamp||body.
type Signer struct {
	secret []byte
}

// NewSigner constructs a Signer from the tenant's shared HMAC secret.
func NewSigner(secret string) *Signer {
	return &Signer{secret: []byte(secret)}
}

// Sign returns the lowercase-hex HMAC-SHA256 signature of
// nonce||timestamp||body, per §4.8.
func (s *Signer) Sign(nonce, timestamp string, body []byte) string {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(nonce))
	mac.Write([]byte(timestamp))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}
