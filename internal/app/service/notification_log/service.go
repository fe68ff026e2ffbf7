package notification_log

import (
	"context"

	"github.com/fatflowers/mollie-ideal/internal/models"
	"github.com/fatflowers/mollie-ideal/pkg/logctx"
	"github.com/fatflowers/mollie-ideal/pkg/tool"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Recorder persists payment notification logs.
type Recorder interface {
	Save(ctx context.Context, log *models.PaymentNotificationLog)
}

type Service struct {
	db  *gorm.DB
	log *zap.SugaredLogger
}

func New(db *gorm.DB, log *zap.SugaredLogger) *Service { return &Service{db: db, log: log} }

// Save asynchronously persists a payment notification log. Nil input is ignored.
func (s *Service) Save(ctx context.Context, log *models.PaymentNotificationLog) {
	if log == nil {
		return
	}
	if log.ID == "" {
		log.ID = tool.GenerateUUIDV7()
	}
	go func() {
		if err := s.db.Save(log).Error; err != nil {
			logctx.FromCtx(ctx, s.log).Errorf("failed to save notification log: %v", err)
		}
	}()
}

// LogRecorder writes notification logs to the application log only. Used when
// there is no database.
type LogRecorder struct {
	log *zap.SugaredLogger
}

func NewLogRecorder(log *zap.SugaredLogger) *LogRecorder { return &LogRecorder{log: log} }

func (r *LogRecorder) Save(ctx context.Context, log *models.PaymentNotificationLog) {
	if log == nil {
		return
	}
	logctx.FromCtx(ctx, r.log).Infow("payment_notification",
		"provider_id", log.ProviderID,
		"object_id", log.ObjectID,
		"mode", log.Mode,
		"transaction_id", log.TransactionID,
		"status", log.Status,
	)
}
