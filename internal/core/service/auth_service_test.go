package service

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/demanddesk/api/internal/core/domain"
	"github.com/demanddesk/api/internal/core/ports"
)

type stubUserRepo struct {
	byEmail map[string]*domain.User
	nextID  int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{byEmail: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if _, exists := r.byEmail[user.Email]; exists {
		return nil, domain.ErrUserExists
	}
	copy := cloneUser(user)
	r.nextID++
	copy.ID = "user_" + strconv.Itoa(r.nextID)
	r.byEmail[copy.Email] = cloneUser(copy)
	return cloneUser(copy), nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	u, ok := r.byEmail[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	for _, u := range r.byEmail {
		if u.ID == id {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) ListByRole(_ context.Context, role string) ([]*domain.User, error) {
	var users []*domain.User
	for _, u := range r.byEmail {
		if u.Role == role {
			users = append(users, cloneUser(u))
		}
	}
	return users, nil
}

func (r *stubUserRepo) CountByRole(_ context.Context, role string) (int64, error) {
	users, _ := r.ListByRole(context.Background(), role)
	return int64(len(users)), nil
}

func TestAuthService_Register_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, "secret", time.Hour, nil)

	user, err := svc.Register(context.Background(), ports.RegisterInput{
		Name: "Alice", Email: "alice@example.com", Password: "pass123", Phone: "0601020304",
	})
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if user.PasswordHash == "pass123" {
		t.Fatalf("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("pass123")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
	if user.Role != domain.RoleUser {
		t.Fatalf("expected role user, got %s", user.Role)
	}
}

func TestAuthService_Register_MissingFields(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, "secret", time.Hour, nil)

	for _, input := range []ports.RegisterInput{
		{Email: "a@example.com", Password: "pass"},
		{Name: "A", Password: "pass"},
		{Name: "A", Email: "a@example.com"},
	} {
		if _, err := svc.Register(context.Background(), input); err != domain.ErrMissingFields {
			t.Fatalf("expected ErrMissingFields, got %v", err)
		}
	}
}

func TestAuthService_Register_InvalidatesStats(t *testing.T) {
	repo := newStubUserRepo()
	cache := &stubStatsCache{}
	svc := NewAuthService(repo, "secret", time.Hour, cache)

	if _, err := svc.Register(context.Background(), ports.RegisterInput{
		Name: "Alice", Email: "alice@example.com", Password: "pass123",
	}); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if cache.invalidated != 1 {
		t.Fatalf("expected registration to invalidate the admin aggregate, got %d calls", cache.invalidated)
	}

	// A rejected duplicate writes nothing and must not invalidate.
	if _, err := svc.Register(context.Background(), ports.RegisterInput{
		Name: "Alice2", Email: "alice@example.com", Password: "pass456",
	}); err != domain.ErrUserExists {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
	if cache.invalidated != 1 {
		t.Fatalf("rejected registration must not invalidate, got %d calls", cache.invalidated)
	}
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, "secret", time.Hour, nil)

	first := ports.RegisterInput{Name: "Bob", Email: "bob@example.com", Password: "pass1"}
	if _, err := svc.Register(context.Background(), first); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	hashBefore := repo.byEmail["bob@example.com"].PasswordHash

	second := ports.RegisterInput{Name: "Bobby", Email: "bob@example.com", Password: "pass2"}
	if _, err := svc.Register(context.Background(), second); err != domain.ErrUserExists {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
	if repo.byEmail["bob@example.com"].PasswordHash != hashBefore {
		t.Fatalf("duplicate registration must not change the original password")
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, "secret", time.Hour, nil)

	if _, err := svc.Register(context.Background(), ports.RegisterInput{
		Name: "Carol", Email: "carol@example.com", Password: "s3cret",
	}); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	token, user, err := svc.Login(context.Background(), "carol@example.com", "s3cret")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if token == "" {
		t.Fatalf("expected token, got empty")
	}
	if user.Name != "Carol" || user.Role != domain.RoleUser {
		t.Fatalf("unexpected user snapshot: %+v", user)
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token invalid: %v", err)
	}
	if claims["id"] != user.ID || claims["email"] != "carol@example.com" ||
		claims["role"] != domain.RoleUser || claims["name"] != "Carol" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
	if _, ok := claims["exp"]; !ok {
		t.Fatalf("expected exp claim")
	}
}

func TestAuthService_Login_RoleNormalization(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, "secret", time.Hour, nil)

	// A record written before roles existed.
	hash, _ := bcrypt.GenerateFromPassword([]byte("pass"), bcrypt.MinCost)
	repo.byEmail["old@example.com"] = &domain.User{
		ID: "user_legacy", Name: "Old", Email: "old@example.com", PasswordHash: string(hash),
	}

	_, user, err := svc.Login(context.Background(), "old@example.com", "pass")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if user.Role != domain.RoleUser {
		t.Fatalf("expected normalized role user, got %q", user.Role)
	}
}

func TestAuthService_Login_InvalidPassword(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, "secret", time.Hour, nil)

	_, _ = svc.Register(context.Background(), ports.RegisterInput{Name: "Dave", Email: "dave@example.com", Password: "goodpass"})
	if _, _, err := svc.Login(context.Background(), "dave@example.com", "badpass"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_UserNotFound(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, "secret", time.Hour, nil)

	if _, _, err := svc.Login(context.Background(), "ghost@example.com", "pass"); err != domain.ErrUserNotFound {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestAuthService_Profile(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, "secret", time.Hour, nil)

	created, err := svc.Register(context.Background(), ports.RegisterInput{Name: "Eve", Email: "eve@example.com", Password: "pass"})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	user, err := svc.Profile(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("profile failed: %v", err)
	}
	if user.Email != "eve@example.com" {
		t.Fatalf("unexpected profile: %+v", user)
	}

	if _, err := svc.Profile(context.Background(), "user_missing"); err != domain.ErrUserNotFound {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
