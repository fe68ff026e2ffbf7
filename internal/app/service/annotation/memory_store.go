package annotation

import (
	"bytes"
	"context"
	"sync"
	"time"

	"gorm.io/datatypes"

	"github.com/fatflowers/mollie-ideal/internal/models"
	"github.com/fatflowers/mollie-ideal/pkg/tool"
)

// MemoryStore keeps annotations in process memory. Callers always get copies,
// so a mapping only changes through Update.
type MemoryStore struct {
	mu    sync.Mutex
	items map[string]*models.Annotation
	now   func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{items: make(map[string]*models.Annotation), now: time.Now}
}

func memoryKey(objectID, namespace string) string {
	return namespace + "\x00" + objectID
}

func (s *MemoryStore) Get(_ context.Context, objectID, namespace string) (*models.Annotation, error) {
	if objectID == "" {
		return nil, ErrEmptyObjectID
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.items[memoryKey(objectID, namespace)]
	if !ok {
		return emptyAnnotation(objectID, namespace), nil
	}
	return cloneAnnotation(a), nil
}

// Update holds the store lock while fn runs.
func (s *MemoryStore) Update(_ context.Context, objectID, namespace string, fn func(a *models.Annotation) error) error {
	if objectID == "" {
		return ErrEmptyObjectID
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	key := memoryKey(objectID, namespace)
	var a *models.Annotation
	if cur, ok := s.items[key]; ok {
		a = cloneAnnotation(cur)
	} else {
		a = emptyAnnotation(objectID, namespace)
		a.ID = tool.GenerateUUIDV7()
		a.CreatedAt = s.now()
	}
	if err := fn(a); err != nil {
		return err
	}
	a.ObjectID, a.Namespace = objectID, namespace
	a.UpdatedAt = s.now()
	s.items[key] = a
	return nil
}

func (s *MemoryStore) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

func cloneAnnotation(a *models.Annotation) *models.Annotation {
	c := *a
	c.Data = datatypes.JSON(bytes.Clone(a.Data))
	return &c
}
