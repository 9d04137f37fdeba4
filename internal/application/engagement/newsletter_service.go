package engagement

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/renztrending/backend/internal/application/notification"
	"github.com/renztrending/backend/internal/domain/engagement"
	"github.com/renztrending/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// NewsletterService manages newsletter subscriptions
type NewsletterService struct {
	subRepo engagement.SubscriptionRepository
	queue   notification.Queue
	siteURL string
	logger  *zap.Logger
}

// NewNewsletterService creates a new NewsletterService
func NewNewsletterService(subRepo engagement.SubscriptionRepository, queue notification.Queue, siteURL string, logger *zap.Logger) *NewsletterService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NewsletterService{subRepo: subRepo, queue: queue, siteURL: siteURL, logger: logger}
}

// Subscribe adds the address, or reactivates it, and sends the confirmation
// mail in the background
func (s *NewsletterService) Subscribe(ctx context.Context, email string) (*SubscriptionResponse, error) {
	email, err := engagement.NormalizeEmail(email)
	if err != nil {
		return nil, err
	}

	sub, err := s.subRepo.FindByEmail(ctx, email)
	switch {
	case err == nil:
		if err := sub.Reactivate(); err != nil {
			return nil, err
		}
		sub.MarkConfirmed(time.Now())
		if err := s.subRepo.Save(ctx, sub); err != nil {
			return nil, err
		}
	case errors.Is(err, shared.ErrNotFound):
		sub, err = engagement.NewSubscription(email)
		if err != nil {
			return nil, err
		}
		sub.MarkConfirmed(time.Now())
		if err := s.subRepo.Create(ctx, sub); err != nil {
			if errors.Is(err, shared.ErrAlreadyExists) {
				return nil, engagement.ErrAlreadySubscribed
			}
			return nil, err
		}
	default:
		return nil, err
	}

	s.queue.Enqueue(notification.SubscriptionConfirmation(sub.Email, s.siteURL))
	s.logger.Info("Newsletter subscription", zap.String("subscription_id", sub.ID.String()))

	resp := ToSubscriptionResponse(sub)
	return &resp, nil
}

// Unsubscribe stops mail to the address
func (s *NewsletterService) Unsubscribe(ctx context.Context, email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	sub, err := s.subRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return engagement.ErrEmailNotFound
		}
		return err
	}
	if !sub.IsActive {
		return nil
	}
	sub.Deactivate()
	return s.subRepo.Save(ctx, sub)
}

// SendBulkConfirmation mails every active subscriber in ids and returns how
// many mails were queued
func (s *NewsletterService) SendBulkConfirmation(ctx context.Context, ids []uuid.UUID) (*BulkConfirmationResponse, error) {
	if len(ids) == 0 {
		return nil, shared.NewValidationError("At least one subscription is required")
	}
	subs, err := s.subRepo.FindActiveByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	queued := 0
	for i := range subs {
		sub := &subs[i]
		s.queue.Enqueue(notification.SubscriptionConfirmation(sub.Email, s.siteURL))
		queued++
		sub.MarkConfirmed(now)
		if err := s.subRepo.Save(ctx, sub); err != nil {
			s.logger.Warn("Failed to stamp confirmation",
				zap.String("subscription_id", sub.ID.String()),
				zap.Error(err))
		}
	}

	s.logger.Info("Bulk newsletter confirmation queued",
		zap.Int("requested", len(ids)),
		zap.Int("queued", queued))

	return &BulkConfirmationResponse{Queued: queued}, nil
}

// List returns subscribers for the admin
func (s *NewsletterService) List(ctx context.Context, f SubscriptionListFilter) ([]SubscriptionResponse, int64, error) {
	filter := shared.DefaultFilter().Paged(f.Page, f.PageSize, f.Search)
	if f.Active != nil {
		filter.Filters["is_active"] = *f.Active
	}

	subs, err := s.subRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.subRepo.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	out := make([]SubscriptionResponse, len(subs))
	for i := range subs {
		out[i] = ToSubscriptionResponse(&subs[i])
	}
	return out, total, nil
}
