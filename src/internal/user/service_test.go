package user

import (
	"context"
	"testing"

	"mindnest-svc/src/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

// --- fakes ---

type fakeUserRepo struct {
	byEmail map[string]*User
	byID    map[string]*User

	createErr error
	created   []*User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		byEmail: make(map[string]*User),
		byID:    make(map[string]*User),
	}
}

func (f *fakeUserRepo) add(u *User) {
	f.byEmail[u.Email] = u
	f.byID[u.ID.Hex()] = u
}

func (f *fakeUserRepo) Create(ctx context.Context, user *User) (*User, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	user.ID = primitive.NewObjectID()
	f.add(user)
	f.created = append(f.created, user)
	return user, nil
}

func (f *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*User, error) {
	u, ok := f.byEmail[email]
	if !ok {
		return nil, models.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) FindByID(ctx context.Context, id string) (*User, error) {
	u, ok := f.byID[id]
	if !ok {
		return nil, models.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) IncrementTotalMinutes(ctx context.Context, userID string, minutes int64) error {
	u, ok := f.byID[userID]
	if !ok {
		return models.ErrUserNotFound
	}
	u.TotalMinutes += minutes
	return nil
}

func (f *fakeUserRepo) GetAllUsers(ctx context.Context) ([]*User, error) {
	var users []*User
	for _, u := range f.byID {
		users = append(users, u)
	}
	return users, nil
}

// --- tests ---

func TestRegister_Success(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewUserService(repo)

	created, err := svc.Register(context.Background(), &RegisterRequest{
		Name:     "  Maya  ",
		Email:    " Maya@Example.COM ",
		Password: "secret123",
		Confirm:  "secret123",
	})
	require.NoError(t, err)

	assert.Equal(t, "Maya", created.Name)
	assert.Equal(t, "maya@example.com", created.Email, "email must be lower-cased and trimmed")
	assert.Equal(t, int64(0), created.TotalMinutes, "new accounts start with zero tracked minutes")
	assert.NotEqual(t, "secret123", created.PasswordHash)

	err = bcrypt.CompareHashAndPassword([]byte(created.PasswordHash), []byte("secret123"))
	assert.NoError(t, err, "stored hash must verify the original password")
}

func TestRegister_Validation(t *testing.T) {
	tests := []struct {
		name    string
		req     *RegisterRequest
		wantErr error
	}{
		{
			name:    "missing name",
			req:     &RegisterRequest{Email: "a@b.c", Password: "x", Confirm: "x"},
			wantErr: models.ErrMissingFields,
		},
		{
			name:    "missing email",
			req:     &RegisterRequest{Name: "A", Password: "x", Confirm: "x"},
			wantErr: models.ErrMissingFields,
		},
		{
			name:    "missing password",
			req:     &RegisterRequest{Name: "A", Email: "a@b.c"},
			wantErr: models.ErrMissingFields,
		},
		{
			name:    "password mismatch",
			req:     &RegisterRequest{Name: "A", Email: "a@b.c", Password: "x", Confirm: "y"},
			wantErr: models.ErrPasswordMismatch,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeUserRepo()
			svc := NewUserService(repo)

			_, err := svc.Register(context.Background(), tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, repo.created)
		})
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	repo := newFakeUserRepo()
	repo.add(&User{ID: primitive.NewObjectID(), Email: "maya@example.com"})
	svc := NewUserService(repo)

	_, err := svc.Register(context.Background(), &RegisterRequest{
		Name:     "Maya",
		Email:    "MAYA@example.com",
		Password: "secret123",
		Confirm:  "secret123",
	})
	assert.ErrorIs(t, err, models.ErrEmailTaken, "duplicate detection must be case-insensitive")
}

func TestAuthenticate(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	require.NoError(t, err)

	repo := newFakeUserRepo()
	repo.add(&User{
		ID:           primitive.NewObjectID(),
		Email:        "maya@example.com",
		PasswordHash: string(hash),
	})
	svc := NewUserService(repo)

	t.Run("success with mixed case email", func(t *testing.T) {
		u, err := svc.Authenticate(context.Background(), "Maya@Example.com", "secret123")
		require.NoError(t, err)
		assert.Equal(t, "maya@example.com", u.Email)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Authenticate(context.Background(), "maya@example.com", "wrong")
		assert.ErrorIs(t, err, models.ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := svc.Authenticate(context.Background(), "nobody@example.com", "secret123")
		assert.ErrorIs(t, err, models.ErrInvalidCredentials)
	})
}

func TestProfile_HidesPasswordHash(t *testing.T) {
	repo := newFakeUserRepo()
	u := &User{ID: primitive.NewObjectID(), Name: "Maya", Email: "maya@example.com", PasswordHash: "h", TotalMinutes: 42}
	repo.add(u)
	svc := NewUserService(repo)

	profile, err := svc.Profile(context.Background(), u.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, int64(42), profile.TotalMinutes)
	assert.Equal(t, "Maya", profile.Name)
}
