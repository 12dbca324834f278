package storefront

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"shagun/internal/domain"
)

// SessionKey ключ, под которым хранится удостоверение
const SessionKey = "userInfo"

// Storage key-value хранилище в духе localStorage браузера
type Storage interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Remove(key string) error
}

type MemoryStorage struct {
	mu   sync.RWMutex
	data map[string]string
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{data: make(map[string]string)}
}

func (m *MemoryStorage) Get(key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *MemoryStorage) Set(key, value string) error {
	m.mu.Lock()
	m.data[key] = value
	m.mu.Unlock()
	return nil
}

func (m *MemoryStorage) Remove(key string) error {
	m.mu.Lock()
	delete(m.data, key)
	m.mu.Unlock()
	return nil
}

// FileStorage хранит каждый ключ в отдельном файле каталога
type FileStorage struct {
	dir string
}

func NewFileStorage(dir string) (*FileStorage, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}
	return &FileStorage{dir: dir}, nil
}

func (f *FileStorage) path(key string) string {
	return filepath.Join(f.dir, filepath.Base(key)+".json")
}

func (f *FileStorage) Get(key string) (string, bool, error) {
	b, err := os.ReadFile(f.path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return string(b), true, nil
}

func (f *FileStorage) Set(key, value string) error {
	return os.WriteFile(f.path(key), []byte(value), 0o600)
}

func (f *FileStorage) Remove(key string) error {
	if err := os.Remove(f.path(key)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

// Session текущее удостоверение пользователя. Срока жизни нет.
type Session struct {
	client  *Client
	storage Storage

	mu   sync.RWMutex
	user *domain.Identity
}

func NewSession(client *Client, storage Storage) *Session {
	return &Session{client: client, storage: storage}
}

// Restore loads a persisted identity. A blob that does not parse is removed.
func (s *Session) Restore() (*domain.Identity, error) {
	raw, ok, err := s.storage.Get(SessionKey)
	if err != nil || !ok {
		return nil, err
	}
	var id domain.Identity
	if err := json.Unmarshal([]byte(raw), &id); err != nil {
		slog.Warn("discarding stored session", "error", err)
		return nil, s.storage.Remove(SessionKey)
	}
	s.set(&id)
	return &id, nil
}

func (s *Session) Login(ctx context.Context, email, password string) (*domain.Identity, error) {
	id, err := s.client.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}
	raw, err := json.Marshal(id)
	if err != nil {
		return nil, err
	}
	if err := s.storage.Set(SessionKey, string(raw)); err != nil {
		return nil, fmt.Errorf("persist session: %w", err)
	}
	s.set(id)
	return id, nil
}

func (s *Session) Logout() error {
	s.set(nil)
	return s.storage.Remove(SessionKey)
}

func (s *Session) User() *domain.Identity {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

func (s *Session) set(id *domain.Identity) {
	s.mu.Lock()
	s.user = id
	s.mu.Unlock()
	token := ""
	if id != nil {
		token = id.Token
	}
	if s.client != nil {
		s.client.SetToken(token)
	}
}
