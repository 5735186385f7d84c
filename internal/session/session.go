// Package session holds the current user identity and bearer token. It is the
// only owner of the User record: login/register create it, logout destroys it
// together with every dependent collection.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/loczu/storefront/internal/authclient"
	"github.com/loczu/storefront/internal/events"
	"github.com/loczu/storefront/internal/logging"
	"github.com/loczu/storefront/internal/models"
	"github.com/loczu/storefront/internal/store"
)

var (
	ErrValidation      = errors.New("validation")
	ErrRejected        = errors.New("rejected")
	ErrRequestInFlight = errors.New("request already in flight")
)

// AccountAPI is the remote collaborator surface the session depends on.
type AccountAPI interface {
	Login(ctx context.Context, input authclient.LoginInput) (*authclient.AuthPayload, error)
	Register(ctx context.Context, input authclient.RegisterInput) (*authclient.AuthPayload, error)
	Logout(ctx context.Context, token string) (*authclient.LogoutPayload, error)
}

// Clearer is a dependent collection invalidated on logout.
type Clearer interface {
	Clear(ctx context.Context) error
}

// RegisterProfile is the registration form. Validation happens before any
// network call.
type RegisterProfile struct {
	Email            string `json:"email"`
	Password         string `json:"password"`
	ConfirmPassword  string `json:"confirmPassword"`
	FullName         string `json:"fullName"`
	Phone            string `json:"phone"`
	UserType         string `json:"userType"`
	CustomerCategory string `json:"customerCategory"`
}

type snapshot struct {
	User  *models.User `json:"user"`
	Token string       `json:"token"`
}

type Manager struct {
	mu         sync.Mutex
	api        AccountAPI
	kv         store.KV
	producer   events.Publisher
	dependents []Clearer

	user     *models.User
	token    string
	inFlight bool
}

func NewManager(api AccountAPI, kv store.KV, producer events.Publisher) *Manager {
	return &Manager{api: api, kv: kv, producer: producer}
}

// DependOn registers collections to be cleared when the session ends.
func (m *Manager) DependOn(deps ...Clearer) {
	m.dependents = append(m.dependents, deps...)
}

// Restore loads a previously persisted session. A missing or malformed value
// means no session; a restored token that is a JWT past its expiry is
// discarded. Opaque tokens are kept as-is.
func (m *Manager) Restore(ctx context.Context) {
	raw, err := m.kv.Get(ctx, store.KeySession)
	if err != nil {
		return
	}

	var snap snapshot
	if err := json.Unmarshal([]byte(raw), &snap); err != nil || snap.Token == "" {
		_ = m.kv.Delete(ctx, store.KeySession)
		return
	}

	if tokenExpired(snap.Token) {
		_ = m.kv.Delete(ctx, store.KeySession)
		return
	}

	m.mu.Lock()
	m.user = snap.User
	m.token = snap.Token
	m.mu.Unlock()
}

func tokenExpired(token string) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		// not a JWT, treat as opaque
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(time.Now())
}

func (m *Manager) beginRequest() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.inFlight {
		return ErrRequestInFlight
	}
	m.inFlight = true
	return nil
}

func (m *Manager) endRequest() {
	m.mu.Lock()
	m.inFlight = false
	m.mu.Unlock()
}

// Login exchanges credentials for a user record and token. On any failure the
// session is left untouched.
func (m *Manager) Login(ctx context.Context, email, password string) (*models.User, error) {
	if email == "" || password == "" {
		return nil, fmt.Errorf("email and password are required: %w", ErrValidation)
	}

	if err := m.beginRequest(); err != nil {
		return nil, err
	}
	defer m.endRequest()

	payload, err := m.api.Login(ctx, authclient.LoginInput{Email: email, Password: password})
	if err != nil {
		return nil, err
	}
	if payload.Token == "" || payload.User == nil {
		return nil, fmt.Errorf("%s: %w", payload.Message, ErrRejected)
	}

	m.commit(ctx, payload.User, payload.Token)
	m.publish(ctx, "user_logged_in", payload.User)
	return payload.User, nil
}

// Register creates an account and opens a session with the returned token.
// Client-side invariants are checked before any network call.
func (m *Manager) Register(ctx context.Context, profile RegisterProfile) (*models.User, error) {
	if len(profile.Password) < 8 {
		return nil, fmt.Errorf("password must be at least 8 characters long: %w", ErrValidation)
	}
	if profile.Password != profile.ConfirmPassword {
		return nil, fmt.Errorf("passwords do not match: %w", ErrValidation)
	}

	if profile.UserType == "" {
		profile.UserType = "CUSTOMER"
	}
	if profile.CustomerCategory == "" {
		profile.CustomerCategory = "GENERAL"
	}

	if err := m.beginRequest(); err != nil {
		return nil, err
	}
	defer m.endRequest()

	payload, err := m.api.Register(ctx, authclient.RegisterInput{
		Email:            profile.Email,
		Password:         profile.Password,
		FullName:         profile.FullName,
		Phone:            profile.Phone,
		UserType:         profile.UserType,
		CustomerCategory: profile.CustomerCategory,
	})
	if err != nil {
		return nil, err
	}
	if payload.Token == "" || payload.User == nil {
		return nil, fmt.Errorf("%s: %w", payload.Message, ErrRejected)
	}

	m.commit(ctx, payload.User, payload.Token)
	m.publish(ctx, "user_registered", payload.User)
	return payload.User, nil
}

// Logout notifies the remote API on a best-effort basis and always clears
// local state: user, token and every dependent collection.
func (m *Manager) Logout(ctx context.Context) {
	l := logging.FromContext(ctx).With("svc", "session.logout")

	m.mu.Lock()
	user := m.user
	token := m.token
	m.user = nil
	m.token = ""
	m.mu.Unlock()

	if token != "" {
		if _, err := m.api.Logout(ctx, token); err != nil {
			l.Warn("remote logout failed", "error", err)
		}
	}

	if err := m.kv.Delete(ctx, store.KeySession); err != nil {
		l.Warn("session delete failed", "error", err)
	}
	for _, dep := range m.dependents {
		if err := dep.Clear(ctx); err != nil {
			l.Warn("dependent clear failed", "error", err)
		}
	}

	if user != nil {
		m.publish(ctx, "user_logged_out", user)
	}
}

func (m *Manager) commit(ctx context.Context, user *models.User, token string) {
	m.mu.Lock()
	m.user = user
	m.token = token
	m.mu.Unlock()

	data, err := json.Marshal(snapshot{User: user, Token: token})
	if err != nil {
		return
	}
	if err := m.kv.Set(ctx, store.KeySession, string(data)); err != nil {
		logging.FromContext(ctx).Warn("session persist failed", "error", err)
	}
}

func (m *Manager) publish(ctx context.Context, eventType string, user *models.User) {
	if m.producer == nil {
		return
	}
	event := map[string]any{
		"type":    eventType,
		"user_id": user.ID,
		"email":   user.Email,
	}
	if err := m.producer.PublishEvent(ctx, events.UserEventsTopic, user.ID, event); err != nil {
		logging.FromContext(ctx).Warn("event publish failed", "type", eventType, "error", err)
	}
}

func (m *Manager) Authenticated() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token != "" && m.user != nil
}

func (m *Manager) CurrentUser() *models.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.user == nil {
		return nil
	}
	u := *m.user
	return &u
}

func (m *Manager) Token() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token
}
