package webhook

import (
	"crypto/ed25519"
	"encoding/hex"
	"fmt"
	"strings"

	"farecast-service/internal/domain/entity"
)

// Verifier checks Ed25519 request signatures made over timestamp || body
type Verifier struct {
	key ed25519.PublicKey
}

// NewVerifier parses a hex encoded public key. An empty key yields a
// verifier that rejects everything with ErrMissingPublicKey.
func NewVerifier(hexKey string) (*Verifier, error) {
	hexKey = strings.TrimSpace(hexKey)
	if hexKey == "" {
		return &Verifier{}, nil
	}

	raw, err := hex.DecodeString(hexKey)
	if err != nil {
		return nil, fmt.Errorf("decode public key: %w", err)
	}
	if len(raw) != ed25519.PublicKeySize {
		return nil, fmt.Errorf("public key is %d bytes, want %d", len(raw), ed25519.PublicKeySize)
	}
	return &Verifier{key: ed25519.PublicKey(raw)}, nil
}

// Configured reports whether a public key is present
func (v *Verifier) Configured() bool {
	return len(v.key) == ed25519.PublicKeySize
}

// Verify returns nil when signatureHex is a valid signature of timestamp
// followed by body.
func (v *Verifier) Verify(signatureHex, timestamp string, body []byte) error {
	if !v.Configured() {
		return entity.ErrMissingPublicKey
	}
	if signatureHex == "" || timestamp == "" {
		return entity.ErrBadSignature
	}

	sig, err := hex.DecodeString(signatureHex)
	if err != nil || len(sig) != ed25519.SignatureSize {
		return entity.ErrBadSignature
	}

	msg := make([]byte, 0, len(timestamp)+len(body))
	msg = append(msg, timestamp...)
	msg = append(msg, body...)
	if !ed25519.Verify(v.key, msg, sig) {
		return entity.ErrBadSignature
	}
	return nil
}
