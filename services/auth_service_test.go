package services

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/Surabhi11/fantasy-cricket/models"
	"github.com/Surabhi11/fantasy-cricket/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fakeUserRepo struct {
	users      map[int]models.User
	nextID     int
	lastLogins map[int]bool
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		users:      make(map[int]models.User),
		nextID:     1,
		lastLogins: make(map[int]bool),
	}
}

func (r *fakeUserRepo) Create(ctx context.Context, user *models.User) error {
	for _, u := range r.users {
		if u.Email == user.Email {
			return repositories.ErrUserEmailConflict
		}
		if u.Username == user.Username {
			return repositories.ErrUserUsernameConflict
		}
	}
	user.ID = r.nextID
	r.nextID++
	user.CreatedAt = time.Now()
	r.users[user.ID] = *user
	return nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id int) (*models.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, repositories.ErrUserNotFound
	}
	copied := u
	return &copied, nil
}

func (r *fakeUserRepo) GetActiveByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, u := range r.users {
		if u.Email == email && u.IsActive {
			copied := u
			return &copied, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (r *fakeUserRepo) ExistsByEmailOrUsername(ctx context.Context, email, username string) (bool, error) {
	for _, u := range r.users {
		if u.Email == email || u.Username == username {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeUserRepo) UpdateLastLogin(ctx context.Context, id int) error {
	r.lastLogins[id] = true
	return nil
}

func (r *fakeUserRepo) UpdateProfileImage(ctx context.Context, id int, imageURL string) error {
	u, ok := r.users[id]
	if !ok {
		return repositories.ErrUserNotFound
	}
	u.ProfileImage = &imageURL
	r.users[id] = u
	return nil
}

type fakeSessionRepo struct {
	sessions map[string]models.Session
	nextID   int
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: make(map[string]models.Session), nextID: 1}
}

func (r *fakeSessionRepo) Create(ctx context.Context, session *models.Session) error {
	session.ID = r.nextID
	r.nextID++
	session.CreatedAt = time.Now()
	r.sessions[session.Token] = *session
	return nil
}

func (r *fakeSessionRepo) GetByToken(ctx context.Context, token string) (*models.Session, error) {
	s, ok := r.sessions[token]
	if !ok {
		return nil, repositories.ErrSessionNotFound
	}
	copied := s
	return &copied, nil
}

func (r *fakeSessionRepo) DeleteByToken(ctx context.Context, token string) error {
	if _, ok := r.sessions[token]; !ok {
		return repositories.ErrSessionNotFound
	}
	delete(r.sessions, token)
	return nil
}

func (r *fakeSessionRepo) DeleteExpired(ctx context.Context) (int64, error) {
	var removed int64
	now := time.Now()
	for token, s := range r.sessions {
		if s.Expired(now) {
			delete(r.sessions, token)
			removed++
		}
	}
	return removed, nil
}

func validRegisterInput() RegisterInput {
	return RegisterInput{
		Username:    "player1",
		Email:       "player1@example.com",
		Password:    "supersecret",
		FullName:    "Test Player",
		DateOfBirth: "1995-06-15",
		State:       "Maharashtra",
	}
}

func newTestAuthService() (AuthService, *fakeUserRepo, *fakeSessionRepo) {
	users := newFakeUserRepo()
	sessions := newFakeSessionRepo()
	return NewAuthService(users, sessions, testLogger()), users, sessions
}

func TestRegisterSuccess(t *testing.T) {
	svc, users, _ := newTestAuthService()

	user, err := svc.Register(context.Background(), validRegisterInput())
	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.Empty(t, user.PasswordHash, "hash must not leak out of the service")
	assert.True(t, user.IsActive)

	stored := users.users[user.ID]
	cost, err := bcrypt.Cost([]byte(stored.PasswordHash))
	require.NoError(t, err)
	assert.Equal(t, 12, cost)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("supersecret")))
}

func TestRegisterMissingFields(t *testing.T) {
	svc, _, _ := newTestAuthService()

	input := validRegisterInput()
	input.FullName = ""
	_, err := svc.Register(context.Background(), input)
	assert.ErrorIs(t, err, ErrMissingFields)
}

func TestRegisterRejectsUnderage(t *testing.T) {
	svc, _, _ := newTestAuthService()

	input := validRegisterInput()
	input.DateOfBirth = time.Now().AddDate(-17, 0, 0).Format("2006-01-02")
	_, err := svc.Register(context.Background(), input)
	assert.ErrorIs(t, err, ErrUnderage)
}

func TestRegisterAcceptsExactlyEighteen(t *testing.T) {
	svc, _, _ := newTestAuthService()

	input := validRegisterInput()
	input.DateOfBirth = time.Now().AddDate(-18, 0, 0).Format("2006-01-02")
	_, err := svc.Register(context.Background(), input)
	assert.NoError(t, err)
}

func TestRegisterRejectsRestrictedStates(t *testing.T) {
	svc, _, _ := newTestAuthService()

	for _, state := range []string{"Andhra Pradesh", "Assam", "Nagaland", "Odisha", "Sikkim", "Telangana"} {
		input := validRegisterInput()
		input.State = state
		_, err := svc.Register(context.Background(), input)
		assert.ErrorIs(t, err, ErrRestrictedState, "state %s", state)
	}
}

func TestRegisterDuplicate(t *testing.T) {
	svc, _, _ := newTestAuthService()

	_, err := svc.Register(context.Background(), validRegisterInput())
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), validRegisterInput())
	assert.ErrorIs(t, err, ErrUserExists)
}

func TestLoginDoesNotRevealAccountExistence(t *testing.T) {
	svc, _, _ := newTestAuthService()

	_, err := svc.Register(context.Background(), validRegisterInput())
	require.NoError(t, err)

	_, _, errUnknown := svc.Login(context.Background(), LoginInput{Email: "nobody@example.com", Password: "whatever"})
	_, _, errWrongPass := svc.Login(context.Background(), LoginInput{Email: "player1@example.com", Password: "wrong"})

	assert.ErrorIs(t, errUnknown, ErrInvalidCredentials)
	assert.ErrorIs(t, errWrongPass, ErrInvalidCredentials)
	assert.Equal(t, errUnknown.Error(), errWrongPass.Error())
}

func TestLoginCreatesSession(t *testing.T) {
	svc, users, sessions := newTestAuthService()

	registered, err := svc.Register(context.Background(), validRegisterInput())
	require.NoError(t, err)

	user, session, err := svc.Login(context.Background(), LoginInput{
		Email:    "player1@example.com",
		Password: "supersecret",
	})
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)
	assert.Empty(t, user.PasswordHash)
	assert.NotEmpty(t, session.Token)
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), session.ExpiresAt, time.Minute)
	assert.True(t, users.lastLogins[user.ID])
	assert.Len(t, sessions.sessions, 1)
}

func TestLogoutDestroysSessionAndIsIdempotent(t *testing.T) {
	svc, _, sessions := newTestAuthService()

	_, err := svc.Register(context.Background(), validRegisterInput())
	require.NoError(t, err)
	_, session, err := svc.Login(context.Background(), LoginInput{Email: "player1@example.com", Password: "supersecret"})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background(), session.Token))
	assert.Empty(t, sessions.sessions)

	// Second logout with the same token must not error.
	assert.NoError(t, svc.Logout(context.Background(), session.Token))
}

func TestUserBySession(t *testing.T) {
	svc, _, sessions := newTestAuthService()

	registered, err := svc.Register(context.Background(), validRegisterInput())
	require.NoError(t, err)
	_, session, err := svc.Login(context.Background(), LoginInput{Email: "player1@example.com", Password: "supersecret"})
	require.NoError(t, err)

	user, err := svc.UserBySession(context.Background(), session.Token)
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)

	_, err = svc.UserBySession(context.Background(), "no-such-token")
	assert.ErrorIs(t, err, ErrNotAuthenticated)

	_, err = svc.UserBySession(context.Background(), "")
	assert.ErrorIs(t, err, ErrNotAuthenticated)

	// Expired sessions authenticate nobody and are removed on sight.
	expired := sessions.sessions[session.Token]
	expired.ExpiresAt = time.Now().Add(-time.Minute)
	sessions.sessions[session.Token] = expired

	_, err = svc.UserBySession(context.Background(), session.Token)
	assert.ErrorIs(t, err, ErrNotAuthenticated)
	assert.Empty(t, sessions.sessions)
}

func TestCleanupExpiredSessions(t *testing.T) {
	svc, _, sessions := newTestAuthService()

	sessions.sessions["live"] = models.Session{Token: "live", ExpiresAt: time.Now().Add(time.Hour)}
	sessions.sessions["dead"] = models.Session{Token: "dead", ExpiresAt: time.Now().Add(-time.Hour)}

	removed, err := svc.CleanupExpiredSessions(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 1, removed)
	assert.Contains(t, sessions.sessions, "live")
}
