package engagement

import (
	"regexp"
	"strings"
	"time"

	"github.com/renztrending/backend/internal/domain/shared"
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// Newsletter errors
var (
	ErrAlreadySubscribed = shared.NewValidationError("Email already subscribed")
	ErrEmailNotFound     = shared.NewNotFoundError("Email not found in subscription list")
)

// Subscription is a newsletter signup
type Subscription struct {
	shared.BaseEntity
	Email       string
	IsActive    bool
	ConfirmedAt *time.Time
}

// NewSubscription creates an active subscription
func NewSubscription(email string) (*Subscription, error) {
	email, err := NormalizeEmail(email)
	if err != nil {
		return nil, err
	}
	return &Subscription{BaseEntity: shared.NewBaseEntity(), Email: email, IsActive: true}, nil
}

// NormalizeEmail lowercases and validates an address
func NormalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if !emailPattern.MatchString(email) {
		return "", shared.NewValidationError("Enter a valid email address")
	}
	return email, nil
}

// Reactivate resumes a previously cancelled subscription
func (s *Subscription) Reactivate() error {
	if s.IsActive {
		return ErrAlreadySubscribed
	}
	s.IsActive = true
	s.Touch()
	return nil
}

// Deactivate stops mail to the address
func (s *Subscription) Deactivate() {
	s.IsActive = false
	s.Touch()
}

// MarkConfirmed stamps when the confirmation mail went out
func (s *Subscription) MarkConfirmed(at time.Time) {
	s.ConfirmedAt = &at
	s.Touch()
}
