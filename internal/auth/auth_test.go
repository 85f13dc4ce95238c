package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/it-inventory/backend/internal/models"
)

const testSecret = "test-secret-do-not-use-in-production"

func testUser() *models.User {
	return &models.User{
		ID:       uuid.New(),
		Username: "jdoe",
		Email:    "jdoe@co.com",
		FullName: "Jane Doe",
		Role:     models.RoleITAdmin,
	}
}

func TestJWTRoundTrip(t *testing.T) {
	user := testUser()

	token, err := GenerateJWT(testSecret, user, time.Hour)
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}

	claims, err := ParseJWT(testSecret, token)
	if err != nil {
		t.Fatalf("ParseJWT: %v", err)
	}

	if claims.UserID != user.ID {
		t.Errorf("UserID = %v, want %v", claims.UserID, user.ID)
	}
	if claims.Email != user.Email {
		t.Errorf("Email = %q, want %q", claims.Email, user.Email)
	}
	if claims.Role != models.RoleITAdmin {
		t.Errorf("Role = %q, want %q", claims.Role, models.RoleITAdmin)
	}
}

func TestParseJWTWrongSecret(t *testing.T) {
	token, err := GenerateJWT(testSecret, testUser(), time.Hour)
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}

	if _, err := ParseJWT("another-secret", token); err == nil {
		t.Error("ParseJWT accepted a token signed with a different secret")
	}
}

func TestParseJWTExpired(t *testing.T) {
	// GenerateJWT treats non-positive lifetimes as "use the default", so an
	// expired token has to be signed by hand.
	user := testUser()
	claims := Claims{
		UserID:   user.ID,
		Username: user.Username,
		FullName: user.FullName,
		Email:    user.Email,
		Role:     user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-time.Hour)),
			Issuer:    "it-inventory",
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("signing expired token: %v", err)
	}

	if _, err := ParseJWT(testSecret, token); err == nil {
		t.Error("ParseJWT accepted an expired token")
	}
}

func TestGenerateJWTDefaultsLifetime(t *testing.T) {
	token, err := GenerateJWT(testSecret, testUser(), -time.Minute)
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}

	claims, err := ParseJWT(testSecret, token)
	if err != nil {
		t.Fatalf("ParseJWT: %v", err)
	}
	remaining := time.Until(claims.ExpiresAt.Time)
	if remaining < 23*time.Hour || remaining > 25*time.Hour {
		t.Errorf("non-positive lifetime should fall back to 24h, got %v remaining", remaining)
	}
}

func TestParseJWTGarbage(t *testing.T) {
	if _, err := ParseJWT(testSecret, "not.a.token"); err == nil {
		t.Error("ParseJWT accepted garbage input")
	}
}

func TestPasswordHashAndCheck(t *testing.T) {
	hash, err := HashPassword("hunter22")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if hash == "hunter22" {
		t.Fatal("hash equals the plaintext password")
	}
	if !CheckPassword(hash, "hunter22") {
		t.Error("CheckPassword rejected the correct password")
	}
	if CheckPassword(hash, "hunter23") {
		t.Error("CheckPassword accepted a wrong password")
	}
}
