package middleware

import (
	"testing"

	"spendwise/internal/models"
)

func TestGenerateRefreshToken(t *testing.T) {
	user := &models.User{Email: "tokens@test.com"}
	user.ID = "0190f7a2-0000-7000-8000-000000000001"

	t.Run("tokens_issued_together_are_distinct", func(t *testing.T) {
		first, err := GenerateRefreshToken(user)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		second, err := GenerateRefreshToken(user)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if first == second {
			t.Error("expected consecutive refresh tokens to differ")
		}
		if HashToken(first) == HashToken(second) {
			t.Error("expected consecutive refresh token hashes to differ")
		}
	})

	t.Run("valid_token_round_trips", func(t *testing.T) {
		token, err := GenerateRefreshToken(user)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		claims, err := ValidateRefreshToken(token)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if claims.UserID != user.ID {
			t.Errorf("expected user ID %s, got %s", user.ID, claims.UserID)
		}
		if claims.ID == "" {
			t.Error("expected a token ID")
		}
	})

	t.Run("access_token_is_not_a_refresh_token", func(t *testing.T) {
		token, err := GenerateAccessToken(user)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, err := ValidateRefreshToken(token); err == nil {
			t.Error("expected access token to be rejected")
		}
	})
}
