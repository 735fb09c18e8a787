package crypto

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"

	"snakeServer/canonical"
)

// GenerateSecret returns a fresh 256-bit session secret as hex. The secret
// is the keying material for both protocol signatures; it is handed to the
// client exactly once at session creation and must never be logged.
func GenerateSecret() (string, error) {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}

// GenerateSeed returns a random 32-bit seed for client-side deterministic
// generation (food placement). The server issues it but does not verify
// seed-derived gameplay.
func GenerateSeed() (uint32, error) {
	var bytes [4]byte
	if _, err := rand.Read(bytes[:]); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(bytes[:]), nil
}

// SignPayload computes sha256(secret + "." + canonical(payload)) as hex.
// Kept as plain concatenation rather than HMAC for wire compatibility with
// existing clients.
func SignPayload(secret string, payload any) (string, error) {
	body, err := canonical.Serialize(payload)
	if err != nil {
		return "", err
	}
	h := sha256.Sum256([]byte(secret + "." + body))
	return hex.EncodeToString(h[:]), nil
}

// VerifyPayload recomputes the payload signature and compares it against
// the supplied one, byte for byte.
func VerifyPayload(secret string, payload any, signature string) (bool, error) {
	expected, err := SignPayload(secret, payload)
	if err != nil {
		return false, err
	}
	return expected == signature, nil
}
