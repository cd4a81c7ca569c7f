// Package session owns the authenticated credential for the lifetime of the process
package session

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/nkiryanov/eventdesk/internal/logger"
	"github.com/nkiryanov/eventdesk/internal/models"
	"github.com/nkiryanov/eventdesk/internal/service/validate"
	"github.com/nkiryanov/eventdesk/internal/storage"
)

// Durable storage keys
const (
	TokenKey           = "token"
	TokenExpirationKey = "tokenExpiration"
	UserKey            = "user"
)

var sessionKeys = []string{TokenKey, TokenExpirationKey, UserKey}

type AuthAPI interface {
	Authenticate(ctx context.Context, in models.LoginInput) (models.AuthResponse, error)
	Refresh(ctx context.Context) (models.AuthResponse, error)
	Logout(ctx context.Context) error
}

type Option func(*Store)

func WithLogger(l logger.Logger) Option {
	return func(s *Store) { s.logger = logger.OrNoOp(l) }
}

func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// Store keeps token, expiry and user together in memory and in durable storage
type Store struct {
	storage storage.Storage
	auth    AuthAPI
	logger  logger.Logger
	now     func() time.Time

	// serializes writes so storage and memory never disagree
	writeMu sync.Mutex

	mu    sync.RWMutex
	cred  models.Credential
	epoch uint64

	// deliveries run one at a time, each with the credential current at delivery
	notifyMu sync.Mutex
	subMu    sync.Mutex
	subs     map[int]func(models.Credential)
	nextSub  int
}

func NewStore(st storage.Storage, auth AuthAPI, opts ...Option) *Store {
	s := &Store{
		storage: st,
		auth:    auth,
		logger:  logger.NewNoOpLogger(),
		now:     time.Now,
		subs:    make(map[int]func(models.Credential)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) Credential() models.Credential {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cred
}

func (s *Store) Token() string {
	return s.Credential().Token
}

func (s *Store) User() models.User {
	return s.Credential().User
}

// Authenticated reports whether there is a credential that has not expired yet
func (s *Store) Authenticated() bool {
	return !s.Credential().Expired(s.now())
}

// Subscribe calls fn after every credential change with the latest credential.
// fn runs outside store locks but must not change the store itself
func (s *Store) Subscribe(fn func(models.Credential)) (unsubscribe func()) {
	s.subMu.Lock()
	defer s.subMu.Unlock()

	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn

	return func() {
		s.subMu.Lock()
		defer s.subMu.Unlock()
		delete(s.subs, id)
	}
}

func (s *Store) notify() {
	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()

	cred := s.Credential()

	s.subMu.Lock()
	fns := make([]func(models.Credential), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.subMu.Unlock()

	for _, fn := range fns {
		fn(cred)
	}
}

// SetCredential stores the result of authenticate or refresh
func (s *Store) SetCredential(ctx context.Context, resp models.AuthResponse) error {
	return s.setCredential(ctx, resp, nil)
}

// setCredential with non-nil epoch is discarded if a logout happened since the epoch was read
func (s *Store) setCredential(ctx context.Context, resp models.AuthResponse, epoch *uint64) error {
	if resp.Token == "" {
		return errors.New("auth response has no token")
	}

	cred := models.Credential{
		Token:     resp.Token,
		ExpiresAt: s.now().Add(time.Duration(resp.ExpirationMinutes) * time.Minute),
		User:      resp.User,
	}

	s.writeMu.Lock()

	if epoch != nil && *epoch != s.currentEpoch() {
		s.writeMu.Unlock()
		return errLoggedOutMeanwhile
	}

	prev := s.Credential()
	if err := s.persist(ctx, cred); err != nil {
		s.rollback(ctx, prev)
		s.writeMu.Unlock()
		return err
	}

	s.mu.Lock()
	s.cred = cred
	s.mu.Unlock()
	s.writeMu.Unlock()

	s.logger.Debug("Credential set", "user_id", cred.User.ID, "expires_at", cred.ExpiresAt)
	s.notify()
	return nil
}

var errLoggedOutMeanwhile = errors.New("logged out while refresh was in flight")

func (s *Store) currentEpoch() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.epoch
}

func (s *Store) persist(ctx context.Context, cred models.Credential) error {
	user, err := json.Marshal(cred.User)
	if err != nil {
		return fmt.Errorf("encode user: %w", err)
	}

	opts := storage.Options{
		Expires:  cred.ExpiresAt,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	}
	values := map[string]string{
		TokenKey:           cred.Token,
		TokenExpirationKey: cred.ExpiresAt.UTC().Format(time.RFC3339Nano),
		UserKey:            string(user),
	}

	for _, key := range sessionKeys {
		if err := s.storage.Set(ctx, key, values[key], opts); err != nil {
			return fmt.Errorf("persist %s: %w", key, err)
		}
	}
	return nil
}

// rollback puts storage back to the credential that is still in memory
func (s *Store) rollback(ctx context.Context, prev models.Credential) {
	if !prev.IsZero() {
		if err := s.persist(ctx, prev); err == nil {
			return
		}
	}
	s.clearStorage(ctx)
}

func (s *Store) clearStorage(ctx context.Context) {
	for _, key := range sessionKeys {
		if err := s.storage.Delete(ctx, key); err != nil {
			s.logger.Warn("Failed to delete session entry", "key", key, "error", err)
		}
	}
}

// Logout forgets the credential everywhere. It never fails and may be called any number of times
func (s *Store) Logout(ctx context.Context) {
	s.writeMu.Lock()
	had := s.forgetLocked(ctx)
	s.writeMu.Unlock()

	s.loggedOut(had)
}

// forgetLocked must be called with writeMu held
func (s *Store) forgetLocked(ctx context.Context) (had bool) {
	s.clearStorage(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	had = !s.cred.IsZero()
	s.cred = models.Credential{}
	s.epoch++
	return had
}

func (s *Store) loggedOut(had bool) {
	if had {
		s.logger.Info("Logged out")
		s.notify()
	}
}

// LogoutAsync tells the backend first, its failure does not keep the user logged in
func (s *Store) LogoutAsync(ctx context.Context) {
	if err := s.auth.Logout(ctx); err != nil {
		s.logger.Debug("Backend logout failed", "error", err)
	}
	s.Logout(ctx)
}

// TryRefresh exchanges the refresh cookie for a new credential.
// Failure logs out. A result that arrives after a logout is dropped
func (s *Store) TryRefresh(ctx context.Context) bool {
	epoch := s.currentEpoch()

	resp, err := s.auth.Refresh(ctx)
	if err != nil {
		s.logger.Info("Token refresh failed", "error", err)
		s.Logout(ctx)
		return false
	}

	err = s.setCredential(ctx, resp, &epoch)
	switch {
	case errors.Is(err, errLoggedOutMeanwhile):
		s.logger.Info("Dropping refreshed credential", "reason", err)
		return false
	case err != nil:
		s.logger.Warn("Failed to store refreshed credential", "error", err)
		s.Logout(ctx)
		return false
	}

	s.logger.Debug("Token refreshed")
	return true
}

// CheckAuth restores the credential from storage. Anything incomplete, unreadable or expired logs out.
// Reads hold writeMu so a logout or refresh never interleaves with them
func (s *Store) CheckAuth(ctx context.Context) bool {
	s.writeMu.Lock()

	cred, err := s.load(ctx)
	if errors.Is(err, errNoCredential) {
		had := s.forgetLocked(ctx)
		s.writeMu.Unlock()

		s.logger.Debug("No valid stored credential", "error", err)
		s.loggedOut(had)
		return false
	}
	if err != nil {
		s.writeMu.Unlock()
		s.logger.Warn("Failed to read stored credential", "error", err)
		return false
	}

	s.mu.Lock()
	same := sameCredential(s.cred, cred)
	s.cred = cred
	s.mu.Unlock()
	s.writeMu.Unlock()

	if !same {
		s.notify()
	}
	return true
}

var errNoCredential = errors.New("no valid credential")

func sameCredential(a, b models.Credential) bool {
	if a.Token != b.Token || !a.ExpiresAt.Equal(b.ExpiresAt) {
		return false
	}
	ua, errA := json.Marshal(a.User)
	ub, errB := json.Marshal(b.User)
	return errA == nil && errB == nil && bytes.Equal(ua, ub)
}

func (s *Store) load(ctx context.Context) (models.Credential, error) {
	values := make(map[string]string, len(sessionKeys))
	for _, key := range sessionKeys {
		v, ok, err := s.storage.Get(ctx, key)
		if err != nil {
			return models.Credential{}, fmt.Errorf("read %s: %w", key, err)
		}
		if !ok || v == "" {
			return models.Credential{}, fmt.Errorf("%w: %s missing", errNoCredential, key)
		}
		values[key] = v
	}

	expiresAt, err := time.Parse(time.RFC3339Nano, values[TokenExpirationKey])
	if err != nil {
		return models.Credential{}, fmt.Errorf("%w: bad expiration: %v", errNoCredential, err)
	}

	var user models.User
	if err := json.Unmarshal([]byte(values[UserKey]), &user); err != nil {
		return models.Credential{}, fmt.Errorf("%w: bad user: %v", errNoCredential, err)
	}

	cred := models.Credential{Token: values[TokenKey], ExpiresAt: expiresAt, User: user}
	if cred.Expired(s.now()) {
		return models.Credential{}, fmt.Errorf("%w: expired at %s", errNoCredential, expiresAt)
	}
	return cred, nil
}

// Login validates the input, authenticates and stores the credential
func (s *Store) Login(ctx context.Context, in models.LoginInput) (models.User, error) {
	if err := validate.Struct(in); err != nil {
		return models.User{}, err
	}

	resp, err := s.auth.Authenticate(ctx, in)
	if err != nil {
		return models.User{}, fmt.Errorf("authenticate: %w", err)
	}

	if err := s.SetCredential(ctx, resp); err != nil {
		return models.User{}, err
	}

	s.logger.Info("Logged in", "user_id", resp.User.ID, "role", resp.User.RoleName)
	return resp.User, nil
}
