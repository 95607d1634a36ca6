package user

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carparkly/carparkly-backend-api-final/internal/auth"
)

type memoryRepo struct {
	seq   int
	users map[string]*User
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{users: map[string]*User{}}
}

func (r *memoryRepo) GetByEmail(_ context.Context, email string) (*User, error) {
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (r *memoryRepo) GetByID(_ context.Context, id string) (*User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *memoryRepo) Create(_ context.Context, u *User) error {
	for _, existing := range r.users {
		if existing.Email == u.Email {
			return ErrEmailAlreadyUsed
		}
	}
	r.seq++
	u.ID = fmt.Sprintf("user-%d", r.seq)
	u.CreatedAt = time.Now().UTC()
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *memoryRepo) UpdateLastLogin(_ context.Context, id string, t time.Time) error {
	u, ok := r.users[id]
	if !ok {
		return ErrNotFound
	}
	u.LastLoginAt = &t
	return nil
}

func (r *memoryRepo) List(_ context.Context, _ Filter) ([]*User, int, error) {
	out := make([]*User, 0, len(r.users))
	for _, u := range r.users {
		cp := *u
		out = append(out, &cp)
	}
	return out, len(out), nil
}

func (r *memoryRepo) Update(_ context.Context, u *User) error {
	if _, ok := r.users[u.ID]; !ok {
		return ErrNotFound
	}
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *memoryRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.users[id]; !ok {
		return ErrNotFound
	}
	delete(r.users, id)
	return nil
}

// Low bcrypt cost keeps the hashing fast in tests.
func newTestService() (Service, *memoryRepo) {
	repo := newMemoryRepo()
	return NewService(repo, auth.NewBcryptPasswordHasherWithCost(4)), repo
}

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a client with hashed password", func(t *testing.T) {
		svc, _ := newTestService()

		u, err := svc.Register(ctx, "Alice@Example.com ", "secret-password", " Alice ", RoleClient)
		require.NoError(t, err)

		assert.NotEmpty(t, u.ID)
		assert.Equal(t, "alice@example.com", u.Email)
		assert.Equal(t, RoleClient, u.Role)
		assert.True(t, u.IsActive)
		require.NotNil(t, u.DisplayName)
		assert.Equal(t, "Alice", *u.DisplayName)
		assert.NotEqual(t, "secret-password", u.PasswordHash)
	})

	t.Run("blank display name stays unset", func(t *testing.T) {
		svc, _ := newTestService()

		u, err := svc.Register(ctx, "bob@example.com", "secret-password", "   ", RoleClient)
		require.NoError(t, err)
		assert.Nil(t, u.DisplayName)
	})

	t.Run("rejects duplicate email", func(t *testing.T) {
		svc, _ := newTestService()

		_, err := svc.Register(ctx, "alice@example.com", "secret-password", "", RoleClient)
		require.NoError(t, err)

		_, err = svc.Register(ctx, "ALICE@example.com", "other-password", "", RoleClient)
		assert.ErrorIs(t, err, ErrEmailAlreadyUsed)
	})

	t.Run("rejects short password", func(t *testing.T) {
		svc, _ := newTestService()

		_, err := svc.Register(ctx, "alice@example.com", "short", "", RoleClient)
		assert.ErrorIs(t, err, ErrPasswordTooShort)
	})

	t.Run("rejects empty email", func(t *testing.T) {
		svc, _ := newTestService()

		_, err := svc.Register(ctx, "   ", "secret-password", "", RoleClient)
		assert.ErrorIs(t, err, ErrEmailRequired)
	})

	t.Run("self-registration cannot create admins", func(t *testing.T) {
		svc, _ := newTestService()

		_, err := svc.Register(ctx, "admin@example.com", "secret-password", "", RoleAdmin)
		assert.ErrorIs(t, err, ErrInvalidRole)
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()

	register := func(t *testing.T, svc Service) *User {
		t.Helper()
		u, err := svc.Register(ctx, "alice@example.com", "secret-password", "Alice", RoleClient)
		require.NoError(t, err)
		return u
	}

	t.Run("valid credentials", func(t *testing.T) {
		svc, repo := newTestService()
		u := register(t, svc)

		got, err := svc.Login(ctx, "ALICE@example.com", "secret-password")
		require.NoError(t, err)
		assert.Equal(t, u.ID, got.ID)

		// Login stamps last_login_at.
		stored, err := repo.GetByID(ctx, u.ID)
		require.NoError(t, err)
		assert.NotNil(t, stored.LastLoginAt)
	})

	t.Run("wrong password", func(t *testing.T) {
		svc, _ := newTestService()
		register(t, svc)

		_, err := svc.Login(ctx, "alice@example.com", "wrong-password")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		svc, _ := newTestService()

		_, err := svc.Login(ctx, "nobody@example.com", "secret-password")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("deactivated account", func(t *testing.T) {
		svc, _ := newTestService()
		u := register(t, svc)

		inactive := false
		_, err := svc.Update(ctx, u.ID, UpdateRequest{IsActive: &inactive})
		require.NoError(t, err)

		_, err = svc.Login(ctx, "alice@example.com", "secret-password")
		assert.ErrorIs(t, err, ErrInactiveUser)
	})
}

func TestUpdate(t *testing.T) {
	ctx := context.Background()

	t.Run("promotes role and clears display name", func(t *testing.T) {
		svc, _ := newTestService()
		u, err := svc.Register(ctx, "alice@example.com", "secret-password", "Alice", RoleClient)
		require.NoError(t, err)

		role := RoleAdmin
		blank := "  "
		got, err := svc.Update(ctx, u.ID, UpdateRequest{Role: &role, DisplayName: &blank})
		require.NoError(t, err)
		assert.Equal(t, RoleAdmin, got.Role)
		assert.Nil(t, got.DisplayName)
	})

	t.Run("rejects unknown role", func(t *testing.T) {
		svc, _ := newTestService()
		u, err := svc.Register(ctx, "alice@example.com", "secret-password", "", RoleClient)
		require.NoError(t, err)

		role := Role("superuser")
		_, err = svc.Update(ctx, u.ID, UpdateRequest{Role: &role})
		assert.ErrorIs(t, err, ErrInvalidRole)
	})

	t.Run("unknown user", func(t *testing.T) {
		svc, _ := newTestService()

		_, err := svc.Update(ctx, "missing", UpdateRequest{})
		assert.ErrorIs(t, err, ErrNotFound)
	})
}
