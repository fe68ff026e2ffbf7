package annotation

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/fatflowers/mollie-ideal/internal/models"
	"github.com/fatflowers/mollie-ideal/pkg/logctx"
	"github.com/fatflowers/mollie-ideal/pkg/tool"
)

// GormStore keeps annotations in the object_annotation table.
type GormStore struct {
	db  *gorm.DB
	log *zap.SugaredLogger
}

func NewGormStore(db *gorm.DB, log *zap.SugaredLogger) *GormStore {
	return &GormStore{db: db, log: log}
}

func (s *GormStore) Get(ctx context.Context, objectID, namespace string) (*models.Annotation, error) {
	if objectID == "" {
		return nil, ErrEmptyObjectID
	}
	var a models.Annotation
	err := s.db.WithContext(ctx).
		Where(&models.Annotation{ObjectID: objectID, Namespace: namespace}).
		First(&a).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return emptyAnnotation(objectID, namespace), nil
	}
	if err != nil {
		logctx.FromCtx(ctx, s.log).Errorw("annotation_get_failed", "object_id", objectID, "namespace", namespace, "error", err.Error())
		return nil, fmt.Errorf("failed to get annotation: %w", err)
	}
	return &a, nil
}

// Update locks the row with SELECT ... FOR UPDATE for the duration of fn. A
// missing row is inserted first (ON CONFLICT DO NOTHING) so that concurrent
// first writers also end up on the same lock.
func (s *GormStore) Update(ctx context.Context, objectID, namespace string, fn func(a *models.Annotation) error) error {
	if objectID == "" {
		return ErrEmptyObjectID
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		seed := &models.Annotation{
			ID:        tool.GenerateUUIDV7(),
			ObjectID:  objectID,
			Namespace: namespace,
			Data:      datatypes.JSON("{}"),
		}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(seed).Error; err != nil {
			return err
		}

		var a models.Annotation
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where(&models.Annotation{ObjectID: objectID, Namespace: namespace}).
			First(&a).Error; err != nil {
			return err
		}
		if err := fn(&a); err != nil {
			return err
		}
		return tx.Save(&a).Error
	})
	if err != nil {
		logctx.FromCtx(ctx, s.log).Errorw("annotation_update_failed", "object_id", objectID, "namespace", namespace, "error", err.Error())
		return fmt.Errorf("failed to update annotation: %w", err)
	}
	return nil
}
