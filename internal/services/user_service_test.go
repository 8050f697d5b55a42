package services

import (
	"testing"
	"time"

	"spendwise/internal/config"
	"spendwise/internal/testutil"

	"golang.org/x/crypto/bcrypt"
)

func TestCreateUser(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)

		user, err := svc.CreateUser("alice@example.com", "password123", "Alice")
		testutil.AssertNoError(t, err)

		if user.ID == "" {
			t.Fatal("expected non-empty user ID")
		}
		if user.Email != "alice@example.com" {
			t.Errorf("expected email alice@example.com, got %s", user.Email)
		}
		if user.DisplayName != "Alice" {
			t.Errorf("expected display name Alice, got %s", user.DisplayName)
		}
		if !user.IsActive {
			t.Error("expected user to be active")
		}
	})

	t.Run("duplicate_email", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)

		_, err := svc.CreateUser("dup@example.com", "password123", "")
		testutil.AssertNoError(t, err)

		_, err = svc.CreateUser("dup@example.com", "password456", "")
		testutil.AssertAppError(t, err, "DUPLICATE_EMAIL")
	})

	t.Run("empty_email", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)

		_, err := svc.CreateUser("", "password123", "")
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("email_normalized_to_lowercase", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)

		user, err := svc.CreateUser("Alice@EXAMPLE.COM", "password123", "")
		testutil.AssertNoError(t, err)

		if user.Email != "alice@example.com" {
			t.Errorf("expected lowercased email, got %s", user.Email)
		}
	})

	t.Run("password_is_hashed", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)

		user, err := svc.CreateUser("hash@example.com", "password123", "")
		testutil.AssertNoError(t, err)

		if user.Password == "password123" {
			t.Fatal("password stored in plaintext")
		}
		if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("password123")); err != nil {
			t.Errorf("stored hash does not match password: %v", err)
		}
	})
}

func TestAttemptLogin(t *testing.T) {
	t.Run("valid_credentials", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)

		created, err := svc.CreateUser("login@example.com", "password123", "")
		testutil.AssertNoError(t, err)

		user, err := svc.AttemptLogin("login@example.com", "password123")
		testutil.AssertNoError(t, err)
		if user.ID != created.ID {
			t.Errorf("expected user %s, got %s", created.ID, user.ID)
		}
		if user.LastLoginAt == nil {
			t.Error("expected last login timestamp to be set")
		}
	})

	t.Run("wrong_password", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)

		_, err := svc.CreateUser("wrong@example.com", "password123", "")
		testutil.AssertNoError(t, err)

		_, err = svc.AttemptLogin("wrong@example.com", "nope")
		testutil.AssertAppError(t, err, "INVALID_CREDENTIALS")
	})

	t.Run("unknown_email_not_revealed", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)

		_, err := svc.AttemptLogin("nobody@example.com", "password123")
		testutil.AssertAppError(t, err, "INVALID_CREDENTIALS")
	})

	t.Run("locks_after_max_attempts", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)

		_, err := svc.CreateUser("lock@example.com", "password123", "")
		testutil.AssertNoError(t, err)

		max := config.Get().MaxLoginAttempts
		for i := 0; i < max-1; i++ {
			_, err := svc.AttemptLogin("lock@example.com", "nope")
			testutil.AssertAppError(t, err, "INVALID_CREDENTIALS")
		}

		_, err = svc.AttemptLogin("lock@example.com", "nope")
		testutil.AssertAppError(t, err, "ACCOUNT_LOCKED")

		// Even the right password is rejected while locked.
		_, err = svc.AttemptLogin("lock@example.com", "password123")
		testutil.AssertAppError(t, err, "ACCOUNT_LOCKED")
	})

	t.Run("expired_lockout_resets_counter", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)

		user, err := svc.CreateUser("expired@example.com", "password123", "")
		testutil.AssertNoError(t, err)

		past := time.Now().Add(-time.Minute)
		err = db.Model(user).Updates(map[string]interface{}{
			"failed_login_attempts": config.Get().MaxLoginAttempts,
			"locked_until":          past,
		}).Error
		testutil.AssertNoError(t, err)

		got, err := svc.AttemptLogin("expired@example.com", "password123")
		testutil.AssertNoError(t, err)
		if got.FailedLoginAttempts != 0 {
			t.Errorf("expected counter reset, got %d", got.FailedLoginAttempts)
		}
	})

	t.Run("success_resets_counter", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)

		_, err := svc.CreateUser("reset@example.com", "password123", "")
		testutil.AssertNoError(t, err)

		_, err = svc.AttemptLogin("reset@example.com", "nope")
		testutil.AssertAppError(t, err, "INVALID_CREDENTIALS")

		user, err := svc.AttemptLogin("reset@example.com", "password123")
		testutil.AssertNoError(t, err)
		if user.FailedLoginAttempts != 0 {
			t.Errorf("expected counter reset, got %d", user.FailedLoginAttempts)
		}
	})
}

func TestRefreshTokenHash(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewUserService(db)
	user := testutil.CreateTestUser(t, db)

	testutil.AssertNoError(t, svc.StoreRefreshTokenHash(user.ID, "abc123"))

	hash, err := svc.GetRefreshTokenHash(user.ID)
	testutil.AssertNoError(t, err)
	if hash != "abc123" {
		t.Errorf("expected stored hash abc123, got %s", hash)
	}
}

func TestChangePassword(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)

		user, err := svc.CreateUser("change@example.com", "oldpass123", "")
		testutil.AssertNoError(t, err)
		testutil.AssertNoError(t, svc.StoreRefreshTokenHash(user.ID, "stale"))

		testutil.AssertNoError(t, svc.ChangePassword(user.ID, "oldpass123", "newpass456"))

		_, err = svc.AttemptLogin("change@example.com", "newpass456")
		testutil.AssertNoError(t, err)

		// The refresh token is invalidated with the old password.
		hash, err := svc.GetRefreshTokenHash(user.ID)
		testutil.AssertNoError(t, err)
		if hash != "" {
			t.Errorf("expected cleared refresh token hash, got %s", hash)
		}
	})

	t.Run("wrong_current_password", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)

		user, err := svc.CreateUser("change2@example.com", "oldpass123", "")
		testutil.AssertNoError(t, err)

		err = svc.ChangePassword(user.ID, "nope", "newpass456")
		testutil.AssertAppError(t, err, "INVALID_CREDENTIALS")
	})
}

func TestDeleteAccount(t *testing.T) {
	t.Run("removes_user_and_data", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)

		user, err := svc.CreateUser("gone@example.com", "password123", "")
		testutil.AssertNoError(t, err)
		testutil.CreateTestExpense(t, db, user.ID)
		group := testutil.CreateTestGroup(t, db, user.ID)
		testutil.CreateTestGroupExpense(t, db, group.ID, "Alice", 10)

		testutil.AssertNoError(t, svc.DeleteAccount(user.ID, "password123"))

		_, err = svc.GetUserByID(user.ID)
		testutil.AssertAppError(t, err, "USER_NOT_FOUND")
	})

	t.Run("requires_password", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)

		user, err := svc.CreateUser("stays@example.com", "password123", "")
		testutil.AssertNoError(t, err)

		err = svc.DeleteAccount(user.ID, "nope")
		testutil.AssertAppError(t, err, "INVALID_CREDENTIALS")
	})
}

func TestEmailVerification(t *testing.T) {
	t.Run("issue_and_confirm", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)

		user, err := svc.CreateUser("verify@example.com", "password123", "")
		testutil.AssertNoError(t, err)

		token, err := svc.IssueVerificationToken(user.ID)
		testutil.AssertNoError(t, err)
		if token == "" {
			t.Fatal("expected non-empty token")
		}

		testutil.AssertNoError(t, svc.ConfirmEmail(token))

		got, err := svc.GetUserByID(user.ID)
		testutil.AssertNoError(t, err)
		if !got.EmailVerified {
			t.Error("expected email to be verified")
		}
	})

	t.Run("unknown_token", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)

		testutil.AssertAppError(t, svc.ConfirmEmail("bogus"), "INVALID_TOKEN")
	})

	t.Run("already_verified", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)

		user, err := svc.CreateUser("again@example.com", "password123", "")
		testutil.AssertNoError(t, err)

		token, err := svc.IssueVerificationToken(user.ID)
		testutil.AssertNoError(t, err)
		testutil.AssertNoError(t, svc.ConfirmEmail(token))

		_, err = svc.IssueVerificationToken(user.ID)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestPasswordReset(t *testing.T) {
	t.Run("issue_and_redeem", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)

		_, err := svc.CreateUser("forgot@example.com", "password123", "")
		testutil.AssertNoError(t, err)

		token, err := svc.IssuePasswordResetToken("forgot@example.com")
		testutil.AssertNoError(t, err)

		testutil.AssertNoError(t, svc.ResetPassword(token, "newpass456"))

		_, err = svc.AttemptLogin("forgot@example.com", "newpass456")
		testutil.AssertNoError(t, err)
	})

	t.Run("reset_clears_lockout", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)

		user, err := svc.CreateUser("locked@example.com", "password123", "")
		testutil.AssertNoError(t, err)

		future := time.Now().Add(10 * time.Minute)
		err = db.Model(user).Updates(map[string]interface{}{
			"failed_login_attempts": config.Get().MaxLoginAttempts,
			"locked_until":          future,
		}).Error
		testutil.AssertNoError(t, err)

		token, err := svc.IssuePasswordResetToken("locked@example.com")
		testutil.AssertNoError(t, err)
		testutil.AssertNoError(t, svc.ResetPassword(token, "newpass456"))

		_, err = svc.AttemptLogin("locked@example.com", "newpass456")
		testutil.AssertNoError(t, err)
	})

	t.Run("expired_token", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)

		user, err := svc.CreateUser("late@example.com", "password123", "")
		testutil.AssertNoError(t, err)

		token, err := svc.IssuePasswordResetToken("late@example.com")
		testutil.AssertNoError(t, err)

		past := time.Now().Add(-time.Minute)
		err = db.Model(user).Update("password_reset_expiry", past).Error
		testutil.AssertNoError(t, err)

		testutil.AssertAppError(t, svc.ResetPassword(token, "newpass456"), "INVALID_TOKEN")
	})

	t.Run("unknown_token", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)

		testutil.AssertAppError(t, svc.ResetPassword("bogus", "newpass456"), "INVALID_TOKEN")
	})
}
