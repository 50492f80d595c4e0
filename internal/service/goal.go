package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/bookspace/bookspace-server/internal/domain"
	domainerrors "github.com/bookspace/bookspace-server/internal/errors"
	"github.com/bookspace/bookspace-server/internal/store"
)

// GoalService manages a user's single reading goal.
type GoalService struct {
	store  *store.Store
	logger *slog.Logger
}

// NewGoalService creates a new goal service.
func NewGoalService(store *store.Store, logger *slog.Logger) *GoalService {
	return &GoalService{
		store:  store,
		logger: logger,
	}
}

// SetGoalRequest contains a reading goal. Setting a goal replaces any
// existing one wholesale.
type SetGoalRequest struct {
	Type      string `json:"type" validate:"required,oneof=minutes hours pages books"`
	Frequency string `json:"frequency" validate:"required,oneof=daily weekly monthly"`
	Target    int    `json:"target" validate:"required,gt=0"`
}

// SetGoal creates or replaces the user's reading goal.
func (s *GoalService) SetGoal(ctx context.Context, userID string, req SetGoalRequest) (*domain.ReadingGoal, error) {
	if err := validate.Struct(req); err != nil {
		return nil, formatValidationError(err)
	}

	user, err := s.getUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	goal := &domain.ReadingGoal{
		CreatedAt: time.Now(),
		Type:      domain.GoalType(req.Type),
		Frequency: domain.GoalFrequency(req.Frequency),
		Target:    req.Target,
		IsActive:  true,
	}
	user.ReadingGoal = goal

	if err := s.store.UpdateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}

	if s.logger != nil {
		s.logger.Info("Reading goal set",
			"user_id", userID,
			"type", goal.Type,
			"frequency", goal.Frequency,
			"target", goal.Target,
		)
	}

	return goal, nil
}

// GetGoal returns the user's active reading goal.
func (s *GoalService) GetGoal(ctx context.Context, userID string) (*domain.ReadingGoal, error) {
	user, err := s.getUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if user.ReadingGoal == nil || !user.ReadingGoal.IsActive {
		return nil, domainerrors.NotFound("no active reading goal")
	}

	return user.ReadingGoal, nil
}

// DeleteGoal deactivates the user's reading goal. The goal record is kept
// with a zeroed target rather than removed, matching how clients detect
// "goal was deleted" versus "never set one".
func (s *GoalService) DeleteGoal(ctx context.Context, userID string) error {
	user, err := s.getUser(ctx, userID)
	if err != nil {
		return err
	}

	if user.ReadingGoal == nil || !user.ReadingGoal.IsActive {
		return domainerrors.NotFound("no active reading goal")
	}

	user.ReadingGoal.IsActive = false
	user.ReadingGoal.Target = 0

	if err := s.store.UpdateUser(ctx, user); err != nil {
		return fmt.Errorf("update user: %w", err)
	}

	if s.logger != nil {
		s.logger.Info("Reading goal deactivated", "user_id", userID)
	}

	return nil
}

// getUser fetches a user, translating not-found into a domain error.
func (s *GoalService) getUser(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		if store.IsNotFound(err) {
			return nil, domainerrors.NotFound("user not found")
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return user, nil
}
