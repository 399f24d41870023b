// services/service_test.go - Shared fixtures for the service tests
package services

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"findteam/config"
	"findteam/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err, "open db")

	err = db.AutoMigrate(
		&models.User{},
		&models.Team{},
		&models.TeamTags{},
		&models.Membership{},
		&models.Application{},
		&models.Profile{},
	)
	require.NoError(t, err, "migrate")
	return db
}

// memStore is an in-process TokenStore with GetDel semantics.
type memStore struct {
	mu      sync.Mutex
	entries map[string]memEntry
}

type memEntry struct {
	value   string
	expires time.Time
}

func newMemStore() *memStore {
	return &memStore{entries: make(map[string]memEntry)}
}

func (m *memStore) Put(_ context.Context, key, value string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = memEntry{value: value, expires: time.Now().Add(ttl)}
	return nil
}

func (m *memStore) Take(_ context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	entry, found := m.entries[key]
	if !found {
		return "", nil
	}
	delete(m.entries, key)
	if time.Now().After(entry.expires) {
		return "", nil
	}
	return entry.value, nil
}

func (m *memStore) Close() error { return nil }

// lastKey returns the stored key for a purpose, mimicking a user
// reading the link out of their inbox.
func (m *memStore) lastKey(purpose string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	for key := range m.entries {
		if strings.HasPrefix(key, purpose+":") {
			return strings.TrimPrefix(key, purpose+":")
		}
	}
	return ""
}

func testConfig() *config.Config {
	return &config.Config{
		BaseURL:           "http://127.0.0.1:8000",
		JWTSecret:         "0123456789abcdef0123456789abcdef",
		AccessTokenTTL:    30 * time.Minute,
		RefreshTokenTTL:   7 * 24 * time.Hour,
		EphemeralTokenTTL: 15 * time.Minute,
		AccessCookieName:  "find-team",
		RefreshCookieName: "rstoken",
	}
}

func seedUser(t *testing.T, db *gorm.DB, username, email string, verified bool) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("secret1"), bcrypt.MinCost)
	require.NoError(t, err)

	user := &models.User{
		Username: username,
		Email:    email,
		Password: string(hash),
		Verified: verified,
	}
	require.NoError(t, db.Create(user).Error, "seed user")
	return user
}
