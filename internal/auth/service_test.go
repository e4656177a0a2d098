package auth

import (
	"context"
	"strings"
	"testing"
	"time"

	pkgAuth "github.com/buyfrescapp/frescapp-backend/pkg/auth"
	"github.com/buyfrescapp/frescapp-backend/pkg/config"
	"github.com/buyfrescapp/frescapp-backend/pkg/db/models"
	"github.com/buyfrescapp/frescapp-backend/pkg/security"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type stubUserRepo struct {
	byEmail    map[string]*models.User
	lastLogins map[uuid.UUID]time.Time
}

func newStubUserRepo(users ...*models.User) *stubUserRepo {
	repo := &stubUserRepo{
		byEmail:    make(map[string]*models.User),
		lastLogins: make(map[uuid.UUID]time.Time),
	}
	for _, user := range users {
		repo.byEmail[user.Email] = user
	}
	return repo
}

func (r *stubUserRepo) Create(_ context.Context, user *models.User) error {
	r.byEmail[user.Email] = user
	return nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*models.User, error) {
	user, ok := r.byEmail[email]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return user, nil
}

func (r *stubUserRepo) UpdateLastLogin(_ context.Context, id uuid.UUID, at time.Time) error {
	r.lastLogins[id] = at
	return nil
}

type stubSessions struct {
	generated []string
}

func (s *stubSessions) Generate(_ context.Context, accessID string) (string, error) {
	s.generated = append(s.generated, accessID)
	return "refresh-" + accessID, nil
}

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:            "secret",
		Issuer:            "frescapp",
		ExpirationMinutes: 30,
	}
}

func mustHashPassword(t *testing.T, password string) string {
	t.Helper()
	hashed, err := security.HashPassword(password, config.PasswordConfig{})
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	return hashed
}

func buildTestService(t *testing.T, repo *stubUserRepo, hydrate func(context.Context, string)) Service {
	t.Helper()
	svc, err := NewService(ServiceParams{
		UserRepo:       repo,
		SessionManager: &stubSessions{},
		JWTConfig:      testJWTConfig(),
		HydrateCart:    hydrate,
	})
	if err != nil {
		t.Fatalf("build service: %v", err)
	}
	return svc
}

func TestRegisterCreatesUserAndSignsIn(t *testing.T) {
	repo := newStubUserRepo()
	svc := buildTestService(t, repo, nil)

	resp, err := svc.Register(context.Background(), RegisterRequest{
		Email:    "  Ana@Example.COM ",
		Password: "super-secret",
		Nickname: "Ana",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if resp.User.Email != "ana@example.com" {
		t.Fatalf("email not normalized: %q", resp.User.Email)
	}
	if resp.AccessToken == "" || resp.RefreshToken == "" {
		t.Fatal("expected token pair")
	}

	claims, err := pkgAuth.ParseAccessToken(testJWTConfig(), resp.AccessToken)
	if err != nil {
		t.Fatalf("parse access token: %v", err)
	}
	if claims.UserID != resp.User.ID {
		t.Fatalf("claims user %s, want %s", claims.UserID, resp.User.ID)
	}

	stored := repo.byEmail["ana@example.com"]
	if stored == nil {
		t.Fatal("user not stored")
	}
	if stored.PasswordHash == "super-secret" || !strings.HasPrefix(stored.PasswordHash, "$argon2id$") {
		t.Fatal("password not hashed")
	}
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	existing := &models.User{ID: uuid.New(), Email: "ana@example.com", IsActive: true}
	svc := buildTestService(t, newStubUserRepo(existing), nil)

	_, err := svc.Register(context.Background(), RegisterRequest{
		Email:    "ana@example.com",
		Password: "super-secret",
		Nickname: "Ana",
	})
	if err == nil {
		t.Fatal("expected conflict")
	}
}

func TestLoginSuccessRecordsLoginAndHydratesCart(t *testing.T) {
	password := "shopper-pass"
	user := &models.User{
		ID:           uuid.New(),
		Email:        "ana@example.com",
		PasswordHash: mustHashPassword(t, password),
		Nickname:     "Ana",
		IsActive:     true,
	}
	repo := newStubUserRepo(user)

	hydrated := ""
	svc := buildTestService(t, repo, func(_ context.Context, userID string) {
		hydrated = userID
	})

	resp, err := svc.Login(context.Background(), LoginRequest{Email: user.Email, Password: password})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if resp.RefreshToken == "" {
		t.Fatal("expected refresh token")
	}
	if _, ok := repo.lastLogins[user.ID]; !ok {
		t.Fatal("last login not recorded")
	}
	if hydrated != user.ID.String() {
		t.Fatalf("cart hydrated for %q, want %q", hydrated, user.ID)
	}
}

func TestLoginRejectsBadPassword(t *testing.T) {
	user := &models.User{
		ID:           uuid.New(),
		Email:        "ana@example.com",
		PasswordHash: mustHashPassword(t, "right-pass"),
		IsActive:     true,
	}
	svc := buildTestService(t, newStubUserRepo(user), nil)

	if _, err := svc.Login(context.Background(), LoginRequest{Email: user.Email, Password: "wrong"}); err == nil {
		t.Fatal("expected error for wrong password")
	}
}

func TestLoginRejectsInactiveUser(t *testing.T) {
	password := "shopper-pass"
	user := &models.User{
		ID:           uuid.New(),
		Email:        "ana@example.com",
		PasswordHash: mustHashPassword(t, password),
		IsActive:     false,
	}
	svc := buildTestService(t, newStubUserRepo(user), nil)

	if _, err := svc.Login(context.Background(), LoginRequest{Email: user.Email, Password: password}); err == nil {
		t.Fatal("expected error for inactive user")
	}
}

func TestLoginUnknownEmail(t *testing.T) {
	svc := buildTestService(t, newStubUserRepo(), nil)

	if _, err := svc.Login(context.Background(), LoginRequest{Email: "ghost@example.com", Password: "x"}); err == nil {
		t.Fatal("expected error for unknown email")
	}
}
