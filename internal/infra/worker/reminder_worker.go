package worker

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/cgsoftworks/leadbook/internal/entity"
	"github.com/cgsoftworks/leadbook/internal/infra/http/middleware"
)

type reminderLeadSource interface {
	FindDueReminders(ctx context.Context, due time.Time) ([]entity.Lead, error)
	MarkReminderSent(ctx context.Context, id string) (bool, error)
}

type reminderOwnerSource interface {
	FindByID(ctx context.Context, id string) (*entity.Account, error)
}

type reminderMailer interface {
	SendFollowUpReminder(to string, lead *entity.Lead) error
}

// FollowUpReminderWorker sweeps for callback leads whose follow-up time is
// close and emails the owner once per lead. The sent flag is only set after
// the email goes out, so a failed send is retried on the next tick.
type FollowUpReminderWorker struct {
	leads     reminderLeadSource
	accounts  reminderOwnerSource
	mailer    reminderMailer
	logger    *zap.Logger
	lookahead time.Duration
	tick      time.Duration
}

func NewFollowUpReminderWorker(leads reminderLeadSource, accounts reminderOwnerSource, mailer reminderMailer, logger *zap.Logger) *FollowUpReminderWorker {
	return &FollowUpReminderWorker{
		leads:     leads,
		accounts:  accounts,
		mailer:    mailer,
		logger:    logger,
		lookahead: 5 * time.Minute,
		tick:      1 * time.Minute,
	}
}

func (w *FollowUpReminderWorker) Start(ctx context.Context) {
	w.logger.Info("follow-up reminder worker started",
		zap.Duration("tick", w.tick), zap.Duration("lookahead", w.lookahead))

	ticker := time.NewTicker(w.tick)
	defer ticker.Stop()

	w.sweep(ctx)

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("follow-up reminder worker stopped")
			return
		case <-ticker.C:
			w.sweep(ctx)
		}
	}
}

func (w *FollowUpReminderWorker) sweep(ctx context.Context) {
	due, err := w.leads.FindDueReminders(ctx, time.Now().Add(w.lookahead))
	if err != nil {
		w.logger.Error("failed to query due reminders", zap.Error(err))
		return
	}

	for i := range due {
		lead := &due[i]

		owner, err := w.accounts.FindByID(ctx, lead.AccountID)
		if err != nil || owner == nil {
			w.logger.Warn("reminder skipped: owner lookup failed",
				zap.String("lead_id", lead.ID), zap.String("account_id", lead.AccountID), zap.Error(err))
			continue
		}

		if err := w.mailer.SendFollowUpReminder(owner.Email, lead); err != nil {
			w.logger.Error("failed to send follow-up reminder",
				zap.String("lead_id", lead.ID), zap.Error(err))
			middleware.RecordIntegrationError("smtp")
			continue
		}

		won, err := w.leads.MarkReminderSent(ctx, lead.ID)
		if err != nil {
			w.logger.Error("failed to mark reminder sent", zap.String("lead_id", lead.ID), zap.Error(err))
			continue
		}
		if won {
			middleware.RecordReminderSent()
			w.logger.Info("follow-up reminder sent",
				zap.String("lead_id", lead.ID), zap.String("owner", owner.Email))
		}
	}
}
