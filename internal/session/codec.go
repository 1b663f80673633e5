package session

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"strings"
)

// Codec signs and verifies session payloads.
// Wire format: base64url(json) + "." + base64url(hmac-sha256(json)).
type Codec struct {
	secret []byte
}

// Codec errors.
var (
	// ErrInvalidFormat indicates the cookie value is not payload.signature.
	ErrInvalidFormat = errors.New("invalid session format")

	// ErrBadSignature indicates the signature does not match the payload.
	ErrBadSignature = errors.New("session signature mismatch")
)

// NewCodec creates a codec with the given HMAC key.
func NewCodec(secret []byte) *Codec {
	return &Codec{secret: secret}
}

// Encode serializes and signs a session.
func (c *Codec) Encode(sess *Session) (string, error) {
	payload, err := json.Marshal(sess)
	if err != nil {
		return "", err
	}
	encoded := base64.RawURLEncoding.EncodeToString(payload)
	return encoded + "." + c.sign(payload), nil
}

// Decode verifies the signature and deserializes a session.
func (c *Codec) Decode(value string) (*Session, error) {
	encoded, sig, ok := strings.Cut(value, ".")
	if !ok {
		return nil, ErrInvalidFormat
	}

	payload, err := base64.RawURLEncoding.DecodeString(encoded)
	if err != nil {
		return nil, ErrInvalidFormat
	}

	expected := c.sign(payload)
	if !hmac.Equal([]byte(sig), []byte(expected)) {
		return nil, ErrBadSignature
	}

	var sess Session
	if err := json.Unmarshal(payload, &sess); err != nil {
		return nil, ErrInvalidFormat
	}
	return &sess, nil
}

func (c *Codec) sign(payload []byte) string {
	mac := hmac.New(sha256.New, c.secret)
	mac.Write(payload)
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}
