package auth

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const testSessionID = "3f1c1a4e-6e0b-4b8e-9a55-4a3f0e6d8c21"

func TestOpaqueStrategy_IssueAndParse(t *testing.T) {
	strategy := NewOpaqueStrategy()
	token, err := strategy.IssueToken(testSessionID, 42, time.Now().Add(time.Hour))
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	if token != testSessionID {
		t.Fatalf("expected token to be the session id, got %q", token)
	}
	id, err := strategy.ParseToken(strings.ToUpper(token))
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if id != testSessionID {
		t.Fatalf("expected canonical id, got %q", id)
	}
}

func TestOpaqueStrategy_RejectsMalformed(t *testing.T) {
	strategy := NewOpaqueStrategy()
	for _, token := range []string{"", "not-a-uuid", "Bearer " + testSessionID} {
		if _, err := strategy.ParseToken(token); !errors.Is(err, ErrInvalidToken) {
			t.Fatalf("token %q: expected ErrInvalidToken, got %v", token, err)
		}
	}
	if _, err := strategy.IssueToken("bogus", 1, time.Now()); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for bogus id, got %v", err)
	}
}

func TestJWTStrategy_IssueAndParse(t *testing.T) {
	strategy := NewJWTStrategy("secret-secret-secret")
	token, err := strategy.IssueToken(testSessionID, 7, time.Now().Add(time.Minute))
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	if strings.Count(token, ".") != 2 {
		t.Fatalf("expected compact JWT, got %q", token)
	}

	id, err := strategy.ParseToken(token)
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if id != testSessionID {
		t.Fatalf("unexpected session id: %q", id)
	}
}

func TestJWTStrategy_Expired(t *testing.T) {
	strategy := NewJWTStrategy("secret-secret-secret")
	token, err := strategy.IssueToken(testSessionID, 7, time.Now().Add(-time.Minute))
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	if _, err := strategy.ParseToken(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestJWTStrategy_WrongSecret(t *testing.T) {
	issuer := NewJWTStrategy("secret-one-secret-one")
	verifier := NewJWTStrategy("secret-two-secret-two")
	token, err := issuer.IssueToken(testSessionID, 7, time.Now().Add(time.Minute))
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	if _, err := verifier.ParseToken(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestJWTStrategy_RejectsOtherAlgorithms(t *testing.T) {
	claims := jwt.RegisteredClaims{
		ID:        testSessionID,
		Issuer:    tokenIssuer,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := NewJWTStrategy("secret").ParseToken(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestJWTStrategy_MissingSessionID(t *testing.T) {
	strategy := NewJWTStrategy("secret")
	if _, err := strategy.IssueToken("", 1, time.Now().Add(time.Minute)); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
	if _, err := strategy.ParseToken("garbage"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}
