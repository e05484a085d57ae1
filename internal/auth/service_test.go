package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nmoussa/shopzone-backend/internal/users"
	pkgauth "github.com/nmoussa/shopzone-backend/pkg/auth"
	"github.com/nmoussa/shopzone-backend/pkg/auth/session"
	"github.com/nmoussa/shopzone-backend/pkg/config"
	"github.com/nmoussa/shopzone-backend/pkg/db/models"
	pkgerrors "github.com/nmoussa/shopzone-backend/pkg/errors"
	"github.com/nmoussa/shopzone-backend/pkg/security"
)

var testJWTCfg = config.JWTConfig{
	Secret:            "test-secret",
	Issuer:            "shopzone-test",
	ExpirationMinutes: 15,
}

var testPasswordCfg = config.PasswordConfig{
	ArgonMemoryKB:    8192,
	ArgonTime:        1,
	ArgonParallelism: 1,
	ArgonSaltLen:     16,
	ArgonKeyLen:      32,
}

type stubUserRepo struct {
	user      *models.User
	createErr error
	findErr   error

	created   *users.CreateUserDTO
	lastLogin *time.Time
}

func (s *stubUserRepo) Create(ctx context.Context, dto users.CreateUserDTO) (*models.User, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	s.created = &dto
	user := dto.ToModel()
	user.ID = uuid.New()
	return user, nil
}

func (s *stubUserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	if s.findErr != nil {
		return nil, s.findErr
	}
	if s.user == nil || s.user.Email != email {
		return nil, gorm.ErrRecordNotFound
	}
	return s.user, nil
}

func (s *stubUserRepo) UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	s.lastLogin = &at
	return nil
}

type stubSessions struct {
	refreshToken string
	rotateErr    error
	generateErr  error

	generatedFor string
	revoked      string
	rotatedFrom  string
}

func (s *stubSessions) Generate(ctx context.Context, accessID string) (string, error) {
	if s.generateErr != nil {
		return "", s.generateErr
	}
	s.generatedFor = accessID
	if s.refreshToken == "" {
		return "refresh-token", nil
	}
	return s.refreshToken, nil
}

func (s *stubSessions) Rotate(ctx context.Context, oldAccessID, provided string) (string, string, error) {
	if s.rotateErr != nil {
		return "", "", s.rotateErr
	}
	s.rotatedFrom = oldAccessID
	return session.NewAccessID(), "rotated-refresh", nil
}

func (s *stubSessions) Revoke(ctx context.Context, accessID string) error {
	s.revoked = accessID
	return nil
}

func newTestService(t *testing.T, repo *stubUserRepo, sessions *stubSessions) Service {
	t.Helper()
	svc, err := NewService(ServiceParams{
		UserRepo:    repo,
		Sessions:    sessions,
		JWT:         testJWTCfg,
		PasswordCfg: testPasswordCfg,
	})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func activeUser(t *testing.T, email, password string) *models.User {
	t.Helper()
	hash, err := security.HashPassword(password, testPasswordCfg)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	return &models.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: hash,
		IsActive:     true,
	}
}

func TestRegisterIssuesTokenPair(t *testing.T) {
	repo := &stubUserRepo{}
	sessions := &stubSessions{}
	svc := newTestService(t, repo, sessions)

	result, err := svc.Register(context.Background(), RegisterInput{
		Email:     " Jane@Example.com ",
		Password:  "hunter2hunter2",
		FirstName: "Jane",
		LastName:  "Doe",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if repo.created == nil || repo.created.Email != "jane@example.com" {
		t.Fatalf("expected normalized email, got %+v", repo.created)
	}
	if result.AccessToken == "" || result.RefreshToken == "" {
		t.Fatal("expected token pair")
	}

	claims, err := pkgauth.ParseAccessToken(testJWTCfg, result.AccessToken)
	if err != nil {
		t.Fatalf("parse access token: %v", err)
	}
	if claims.ID != sessions.generatedFor {
		t.Fatal("jti must match the session key")
	}
}

func TestRegisterShortPassword(t *testing.T) {
	svc := newTestService(t, &stubUserRepo{}, &stubSessions{})

	_, err := svc.Register(context.Background(), RegisterInput{Email: "a@b.c", Password: "short"})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestLoginSuccessRecordsLastLogin(t *testing.T) {
	user := activeUser(t, "jane@example.com", "hunter2hunter2")
	repo := &stubUserRepo{user: user}
	svc := newTestService(t, repo, &stubSessions{})

	result, err := svc.Login(context.Background(), LoginInput{Email: user.Email, Password: "hunter2hunter2"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if result.User.ID != user.ID {
		t.Fatal("expected user in result")
	}
	if repo.lastLogin == nil {
		t.Fatal("expected last login write")
	}
}

func TestLoginWrongPassword(t *testing.T) {
	user := activeUser(t, "jane@example.com", "hunter2hunter2")
	svc := newTestService(t, &stubUserRepo{user: user}, &stubSessions{})

	_, err := svc.Login(context.Background(), LoginInput{Email: user.Email, Password: "wrong-password"})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestLoginUnknownEmail(t *testing.T) {
	svc := newTestService(t, &stubUserRepo{}, &stubSessions{})

	_, err := svc.Login(context.Background(), LoginInput{Email: "nobody@example.com", Password: "whatever123"})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestLoginDisabledAccount(t *testing.T) {
	user := activeUser(t, "jane@example.com", "hunter2hunter2")
	user.IsActive = false
	svc := newTestService(t, &stubUserRepo{user: user}, &stubSessions{})

	_, err := svc.Login(context.Background(), LoginInput{Email: user.Email, Password: "hunter2hunter2"})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeForbidden {
		t.Fatalf("expected forbidden, got %v", err)
	}
}

func TestRefreshRotatesSession(t *testing.T) {
	userID := uuid.New()
	accessID := session.NewAccessID()
	accessToken, err := pkgauth.MintAccessToken(testJWTCfg, time.Now(), pkgauth.AccessTokenPayload{
		UserID: userID,
		Email:  "jane@example.com",
		JTI:    accessID,
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}

	sessions := &stubSessions{}
	svc := newTestService(t, &stubUserRepo{}, sessions)

	pair, err := svc.Refresh(context.Background(), RefreshInput{AccessToken: accessToken, RefreshToken: "refresh"})
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if sessions.rotatedFrom != accessID {
		t.Fatalf("expected rotation from %s, got %s", accessID, sessions.rotatedFrom)
	}
	claims, err := pkgauth.ParseAccessToken(testJWTCfg, pair.AccessToken)
	if err != nil {
		t.Fatalf("parse new access token: %v", err)
	}
	if claims.UserID != userID {
		t.Fatal("new token must keep the user id")
	}
}

func TestRefreshInvalidRefreshToken(t *testing.T) {
	accessToken, err := pkgauth.MintAccessToken(testJWTCfg, time.Now(), pkgauth.AccessTokenPayload{
		UserID: uuid.New(),
		JTI:    session.NewAccessID(),
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}

	sessions := &stubSessions{rotateErr: session.ErrInvalidRefreshToken}
	svc := newTestService(t, &stubUserRepo{}, sessions)

	_, gotErr := svc.Refresh(context.Background(), RefreshInput{AccessToken: accessToken, RefreshToken: "stale"})
	if typed := pkgerrors.As(gotErr); typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized, got %v", gotErr)
	}
}

func TestRefreshGarbageAccessToken(t *testing.T) {
	svc := newTestService(t, &stubUserRepo{}, &stubSessions{})

	_, err := svc.Refresh(context.Background(), RefreshInput{AccessToken: "not-a-jwt", RefreshToken: "x"})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestLogoutRevokesSession(t *testing.T) {
	sessions := &stubSessions{}
	svc := newTestService(t, &stubUserRepo{}, sessions)

	if err := svc.Logout(context.Background(), "access-id"); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if sessions.revoked != "access-id" {
		t.Fatalf("expected revoke of access-id, got %q", sessions.revoked)
	}
}
