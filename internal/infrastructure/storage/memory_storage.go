package storage

import (
	"context"
	"net/url"
	"strings"
	"sync"
	"time"

	partnerapp "github.com/shopdash/backend/internal/application/partner"
)

// MemoryObject is an object held by MemoryObjectStorage
type MemoryObject struct {
	Body        []byte
	ContentType string
	ExpiresAt   time.Time
}

// MemoryObjectStorage keeps exports in process memory. It backs local runs
// without an S3 endpoint; links point at BaseURL, which the server serves
// from Object until the object expires.
type MemoryObjectStorage struct {
	BaseURL    string
	Expiration time.Duration

	mu      sync.Mutex
	objects map[string]MemoryObject
	now     func() time.Time
}

// NewMemoryObjectStorage creates an empty in-memory storage
func NewMemoryObjectStorage(baseURL string) *MemoryObjectStorage {
	if baseURL == "" {
		baseURL = "http://localhost:9000/exports"
	}
	return &MemoryObjectStorage{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		Expiration: DefaultPresignExpiration,
		objects:    make(map[string]MemoryObject),
		now:        time.Now,
	}
}

// PutObject stores a copy of body under key. It expires after Expiration;
// expired objects are dropped on every write.
func (s *MemoryObjectStorage) PutObject(_ context.Context, key string, body []byte, contentType string) error {
	if key == "" {
		return errEmptyKey
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	s.pruneLocked(now)
	s.objects[key] = MemoryObject{
		Body:        append([]byte(nil), body...),
		ContentType: contentType,
		ExpiresAt:   now.Add(s.Expiration),
	}
	return nil
}

// PresignGetObject returns BaseURL/key valid until the object expires
func (s *MemoryObjectStorage) PresignGetObject(_ context.Context, key string) (string, time.Time, error) {
	if key == "" {
		return "", time.Time{}, errEmptyKey
	}
	s.mu.Lock()
	obj, ok := s.objects[key]
	now := s.now()
	s.mu.Unlock()

	expiresAt := now.Add(s.Expiration)
	if ok && obj.ExpiresAt.Before(expiresAt) {
		expiresAt = obj.ExpiresAt
	}
	q := url.Values{"expires": {expiresAt.UTC().Format(time.RFC3339)}}
	return s.BaseURL + "/" + key + "?" + q.Encode(), expiresAt, nil
}

// Object returns the object stored under key. Expired objects are removed
// and reported missing.
func (s *MemoryObjectStorage) Object(key string) (MemoryObject, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	obj, ok := s.objects[key]
	if !ok {
		return MemoryObject{}, false
	}
	if !s.now().Before(obj.ExpiresAt) {
		delete(s.objects, key)
		return MemoryObject{}, false
	}
	return obj, true
}

// Len returns the number of objects held, expired ones included
func (s *MemoryObjectStorage) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.objects)
}

func (s *MemoryObjectStorage) pruneLocked(now time.Time) {
	for key, obj := range s.objects {
		if !now.Before(obj.ExpiresAt) {
			delete(s.objects, key)
		}
	}
}

var _ partnerapp.ExportStorage = (*MemoryObjectStorage)(nil)
