package session

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/nkiryanov/eventdesk/internal/models"
	"github.com/nkiryanov/eventdesk/internal/storage"
)

type fakeAuth struct {
	mu sync.Mutex

	authResp  models.AuthResponse
	authErr   error
	authCalls int

	refreshResp  models.AuthResponse
	refreshErr   error
	refreshGate  chan struct{}
	refreshCalls atomic.Int32

	logoutErr   error
	logoutCalls atomic.Int32
}

func (f *fakeAuth) Authenticate(_ context.Context, _ models.LoginInput) (models.AuthResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.authCalls++
	return f.authResp, f.authErr
}

func (f *fakeAuth) Refresh(_ context.Context) (models.AuthResponse, error) {
	f.refreshCalls.Add(1)
	if f.refreshGate != nil {
		<-f.refreshGate
	}
	return f.refreshResp, f.refreshErr
}

func (f *fakeAuth) Logout(_ context.Context) error {
	f.logoutCalls.Add(1)
	return f.logoutErr
}

type clock struct {
	mu  sync.Mutex
	now time.Time
}

func newClock() *clock {
	// storage adapters expire entries by wall clock, stay close to it
	return &clock{now: time.Now().UTC()}
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// Fails writes of one key or one value, everything else goes to memory
type failingStorage struct {
	*storage.Memory
	failKey   string
	failValue string
}

func (f *failingStorage) Set(ctx context.Context, key string, value string, opts storage.Options) error {
	if key == f.failKey || (f.failValue != "" && value == f.failValue) {
		return errors.New("disk full")
	}
	return f.Memory.Set(ctx, key, value, opts)
}

func authResponse(token string, minutes int, role string) models.AuthResponse {
	partner := int64(3)
	return models.AuthResponse{
		Token:             token,
		ExpirationMinutes: minutes,
		User: models.User{
			ID:        42,
			Name:      "Ana",
			Email:     "ana@example.com",
			RoleID:    1,
			RoleName:  role,
			PartnerID: &partner,
		},
	}
}

// Holds the first read of one key until release is closed
type blockingStorage struct {
	*storage.Memory
	key     string
	reached chan struct{}
	release chan struct{}
	once    sync.Once
}

func newBlockingStorage(key string) *blockingStorage {
	return &blockingStorage{
		Memory:  storage.NewMemory(),
		key:     key,
		reached: make(chan struct{}),
		release: make(chan struct{}),
	}
}

func (b *blockingStorage) Get(ctx context.Context, key string) (string, bool, error) {
	if key == b.key {
		b.once.Do(func() {
			close(b.reached)
			<-b.release
		})
	}
	return b.Memory.Get(ctx, key)
}
