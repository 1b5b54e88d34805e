package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"memories-server/dto"
	"memories-server/internal/repository/repotest"
	"memories-server/internal/services"
	"memories-server/internal/utils"

	"golang.org/x/crypto/bcrypt"
)

const testSecret = "test-secret"

func newAuth() *services.AuthService {
	s := services.NewAuthService(repotest.NewFakeUserStore(), testSecret, time.Hour)
	s.Cost = bcrypt.MinCost
	return s
}

func signUpInput() dto.SignUpInput {
	return dto.SignUpInput{
		FirstName:       "Ada",
		LastName:        "Lovelace",
		Email:           "Ada@Example.com",
		Password:        "secret",
		ConfirmPassword: "secret",
	}
}

func TestSignUpAndSignIn(t *testing.T) {
	auth := newAuth()
	ctx := context.Background()

	res, err := auth.SignUp(ctx, signUpInput())
	if err != nil {
		t.Fatalf("SignUp: %v", err)
	}
	if res.Result.Name != "Ada Lovelace" || res.Result.Email != "ada@example.com" {
		t.Errorf("unexpected user: %+v", res.Result)
	}
	if res.Token == "" {
		t.Fatal("expected a token")
	}

	claims, err := utils.ParseToken([]byte(testSecret), res.Token)
	if err != nil {
		t.Fatalf("token does not verify: %v", err)
	}
	if claims.UID != res.Result.ID.Hex() || claims.Subject != res.Result.ID.Hex() {
		t.Errorf("claims uid/sub = %q/%q, want %q", claims.UID, claims.Subject, res.Result.ID.Hex())
	}

	in, err := auth.SignIn(ctx, dto.SignInInput{Email: "ADA@example.com", Password: "secret"})
	if err != nil {
		t.Fatalf("SignIn: %v", err)
	}
	if in.Result.ID != res.Result.ID {
		t.Errorf("signed in as a different user")
	}
}

func TestSignUpValidation(t *testing.T) {
	auth := newAuth()
	ctx := context.Background()

	missing := signUpInput()
	missing.Email = ""
	if _, err := auth.SignUp(ctx, missing); !errors.Is(err, services.ErrInvalidInput) {
		t.Errorf("missing email: %v", err)
	}

	mismatch := signUpInput()
	mismatch.ConfirmPassword = "other"
	if _, err := auth.SignUp(ctx, mismatch); !errors.Is(err, services.ErrPasswordMismatch) {
		t.Errorf("mismatch: %v", err)
	}

	if _, err := auth.SignUp(ctx, signUpInput()); err != nil {
		t.Fatal(err)
	}
	if _, err := auth.SignUp(ctx, signUpInput()); !errors.Is(err, services.ErrEmailTaken) {
		t.Errorf("duplicate: %v", err)
	}
}

func TestSignInRejectsBadCredentials(t *testing.T) {
	auth := newAuth()
	ctx := context.Background()
	if _, err := auth.SignUp(ctx, signUpInput()); err != nil {
		t.Fatal(err)
	}

	if _, err := auth.SignIn(ctx, dto.SignInInput{Email: "ada@example.com", Password: "wrong"}); !errors.Is(err, services.ErrInvalidCredentials) {
		t.Errorf("wrong password: %v", err)
	}
	if _, err := auth.SignIn(ctx, dto.SignInInput{Email: "nobody@example.com", Password: "secret"}); !errors.Is(err, services.ErrInvalidCredentials) {
		t.Errorf("unknown email: %v", err)
	}
}
