package auth

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"testing"

	"golang.org/x/crypto/pbkdf2"
)

// testHash builds an encoded hash with few iterations to keep tests fast.
// VerifyPassword reads the iteration count from the encoded form.
func testHash(t *testing.T, plaintext string, iterations int) string {
	t.Helper()
	salt := []byte("0123456789abcdef")
	key := pbkdf2.Key([]byte(plaintext), salt, iterations, 32, sha256.New)
	return fmt.Sprintf("pbkdf2:sha256:%d$%s$%s", iterations,
		hex.EncodeToString(salt), hex.EncodeToString(key))
}

func TestHashThenVerify(t *testing.T) {
	encoded, err := HashPassword("pw1")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if !strings.HasPrefix(encoded, "pbkdf2:sha256:") {
		t.Errorf("unexpected encoding: %q", encoded)
	}
	if strings.Contains(encoded, "pw1") {
		t.Error("plaintext leaked into encoded hash")
	}
	if err := VerifyPassword(encoded, "pw1"); err != nil {
		t.Errorf("VerifyPassword with correct password: %v", err)
	}
	if err := VerifyPassword(encoded, "pw2"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("VerifyPassword with wrong password: got %v, want ErrInvalidCredentials", err)
	}
}

func TestHashPassword_SaltIsPerUser(t *testing.T) {
	a, err := HashPassword("same")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	b, err := HashPassword("same")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if a == b {
		t.Error("two hashes of the same password are identical; salt is not random")
	}
}

func TestVerifyPassword_IterationsFromHash(t *testing.T) {
	encoded := testHash(t, "secret", 1000)
	if err := VerifyPassword(encoded, "secret"); err != nil {
		t.Errorf("VerifyPassword: %v", err)
	}
}

func TestVerifyPassword_Malformed(t *testing.T) {
	cases := []string{
		"",
		"plaintext",
		"pbkdf2:sha256:600000$salt",           // missing hash part
		"bcrypt$aa$bb",                        // wrong method
		"pbkdf2:sha256:zero$aa$bb",            // non-numeric iterations
		"pbkdf2:sha256:1000$nothex$deadbeef",  // bad salt
		"pbkdf2:sha256:1000$deadbeef$nothex",  // bad digest
		"pbkdf2:sha256:-5$deadbeef$deadbeef",  // negative iterations
	}
	for _, c := range cases {
		if err := VerifyPassword(c, "whatever"); !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("VerifyPassword(%q): got %v, want ErrInvalidCredentials", c, err)
		}
	}
}

func TestVerifyPassword_TamperedDigest(t *testing.T) {
	encoded := testHash(t, "secret", 1000)
	last := encoded[len(encoded)-1]
	flip := "0"
	if last == '0' {
		flip = "1"
	}
	tampered := encoded[:len(encoded)-1] + flip
	if err := VerifyPassword(tampered, "secret"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("tampered hash verified: %v", err)
	}
}
