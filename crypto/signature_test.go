package crypto

import (
	"regexp"
	"testing"
)

var hexRe = regexp.MustCompile(`^[0-9a-f]+$`)

func TestGenerateSecret(t *testing.T) {
	a, err := GenerateSecret()
	if err != nil {
		t.Fatalf("GenerateSecret failed: %v", err)
	}
	b, err := GenerateSecret()
	if err != nil {
		t.Fatalf("GenerateSecret failed: %v", err)
	}

	// 32 bytes hex-encoded = 64 chars = 256 bits of entropy
	if len(a) != 64 {
		t.Errorf("expected 64 hex chars, got %d", len(a))
	}
	if !hexRe.MatchString(a) {
		t.Errorf("secret is not lowercase hex: %q", a)
	}
	if a == b {
		t.Error("two generated secrets are identical")
	}
}

func TestGenerateSeed(t *testing.T) {
	seen := make(map[uint32]bool)
	for i := 0; i < 10; i++ {
		seed, err := GenerateSeed()
		if err != nil {
			t.Fatalf("GenerateSeed failed: %v", err)
		}
		seen[seed] = true
	}
	if len(seen) < 2 {
		t.Error("seed generation produced no variation across 10 draws")
	}
}

func TestSignPayload(t *testing.T) {
	secret := "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"
	payload := map[string]any{
		"sessionId":  "s-1",
		"finalScore": 60,
		"durationMs": 3000,
	}

	t.Run("deterministic", func(t *testing.T) {
		sig1, err := SignPayload(secret, payload)
		if err != nil {
			t.Fatalf("SignPayload failed: %v", err)
		}
		sig2, err := SignPayload(secret, payload)
		if err != nil {
			t.Fatalf("SignPayload failed: %v", err)
		}
		if sig1 != sig2 {
			t.Errorf("same payload signed twice differs: %s vs %s", sig1, sig2)
		}
		if len(sig1) != 64 || !hexRe.MatchString(sig1) {
			t.Errorf("signature is not a sha256 hex digest: %q", sig1)
		}
	})

	t.Run("changing one field changes the signature", func(t *testing.T) {
		sig1, _ := SignPayload(secret, payload)
		tampered := map[string]any{
			"sessionId":  "s-1",
			"finalScore": 61,
			"durationMs": 3000,
		}
		sig2, _ := SignPayload(secret, tampered)
		if sig1 == sig2 {
			t.Error("signature did not change with the payload")
		}
	})

	t.Run("secret binds the signature", func(t *testing.T) {
		sig1, _ := SignPayload(secret, payload)
		otherSecret := "bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb"
		sig2, _ := SignPayload(otherSecret, payload)
		if sig1 == sig2 {
			t.Error("different secrets produced the same signature")
		}
	})

	t.Run("circular payload refuses to sign", func(t *testing.T) {
		m := map[string]any{}
		m["self"] = m
		if _, err := SignPayload(secret, m); err == nil {
			t.Error("expected error signing circular payload")
		}
	})
}

func TestVerifyPayload(t *testing.T) {
	secret := "cccccccccccccccccccccccccccccccccccccccccccccccccccccccccccccccc"
	payload := map[string]any{"sessionId": "s-2", "score": 120}

	sig, err := SignPayload(secret, payload)
	if err != nil {
		t.Fatalf("SignPayload failed: %v", err)
	}

	ok, err := VerifyPayload(secret, payload, sig)
	if err != nil {
		t.Fatalf("VerifyPayload failed: %v", err)
	}
	if !ok {
		t.Error("valid signature rejected")
	}

	flipped := "0"
	if sig[63] == '0' {
		flipped = "1"
	}
	ok, err = VerifyPayload(secret, payload, sig[:63]+flipped)
	if err != nil {
		t.Fatalf("VerifyPayload failed: %v", err)
	}
	if ok {
		t.Error("corrupted signature accepted")
	}
}
