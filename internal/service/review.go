package service

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"github.com/bookspace/bookspace-server/internal/domain"
	domainerrors "github.com/bookspace/bookspace-server/internal/errors"
	"github.com/bookspace/bookspace-server/internal/id"
	"github.com/bookspace/bookspace-server/internal/store"
)

// ReviewService manages book reviews and keeps book ratings in sync.
type ReviewService struct {
	store  *store.Store
	logger *slog.Logger
}

// NewReviewService creates a new review service.
func NewReviewService(store *store.Store, logger *slog.Logger) *ReviewService {
	return &ReviewService{
		store:  store,
		logger: logger,
	}
}

// CreateReviewRequest contains a new review.
type CreateReviewRequest struct {
	BookID  string `json:"book_id" validate:"required"`
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment,omitempty" validate:"max=5000"`
}

// UpdateReviewRequest contains review edits. Zero rating leaves it unchanged.
type UpdateReviewRequest struct {
	Rating  *int    `json:"rating,omitempty" validate:"omitempty,min=1,max=5"`
	Comment *string `json:"comment,omitempty" validate:"omitempty,max=5000"`
}

// CreateReview adds a review and recomputes the book's rating.
// A user gets one review per book.
func (s *ReviewService) CreateReview(ctx context.Context, userID string, req CreateReviewRequest) (*domain.Review, error) {
	if err := validate.Struct(req); err != nil {
		return nil, formatValidationError(err)
	}

	// Verify the book exists before accepting a review for it.
	if _, err := s.store.GetBook(ctx, req.BookID); err != nil {
		if store.IsNotFound(err) {
			return nil, domainerrors.NotFound("book not found")
		}
		return nil, fmt.Errorf("get book: %w", err)
	}

	// One review per user per book; the book_user index backstops this check.
	if _, err := s.store.GetReviewByBookAndUser(ctx, req.BookID, userID); err == nil {
		return nil, domainerrors.AlreadyExists("you have already reviewed this book")
	} else if !store.IsNotFound(err) {
		return nil, fmt.Errorf("check existing review: %w", err)
	}

	reviewID, err := id.Generate("rev")
	if err != nil {
		return nil, fmt.Errorf("generate review ID: %w", err)
	}

	review := &domain.Review{
		Record: domain.Record{
			ID: reviewID,
		},
		BookID:  req.BookID,
		UserID:  userID,
		Rating:  req.Rating,
		Comment: req.Comment,
	}
	review.InitTimestamps()

	if err := s.store.CreateReview(ctx, review); err != nil {
		if domainerrors.Is(err, store.ErrAlreadyExists) {
			return nil, domainerrors.AlreadyExists("you have already reviewed this book")
		}
		return nil, fmt.Errorf("create review: %w", err)
	}

	if err := s.recomputeBookRating(ctx, req.BookID); err != nil {
		return nil, err
	}

	if s.logger != nil {
		s.logger.Info("Review created",
			"review_id", reviewID,
			"book_id", req.BookID,
			"user_id", userID,
			"rating", req.Rating,
		)
	}

	return review, nil
}

// UpdateReview edits a review owned by the user and recomputes the book's rating.
func (s *ReviewService) UpdateReview(ctx context.Context, userID, reviewID string, req UpdateReviewRequest) (*domain.Review, error) {
	if err := validate.Struct(req); err != nil {
		return nil, formatValidationError(err)
	}

	review, err := s.getOwnedReview(ctx, userID, reviewID)
	if err != nil {
		return nil, err
	}

	if req.Rating != nil {
		review.Rating = *req.Rating
	}
	if req.Comment != nil {
		review.Comment = *req.Comment
	}

	if err := s.store.UpdateReview(ctx, review); err != nil {
		return nil, fmt.Errorf("update review: %w", err)
	}

	if err := s.recomputeBookRating(ctx, review.BookID); err != nil {
		return nil, err
	}

	return review, nil
}

// DeleteReview removes a review owned by the user and recomputes the book's rating.
func (s *ReviewService) DeleteReview(ctx context.Context, userID, reviewID string) error {
	review, err := s.getOwnedReview(ctx, userID, reviewID)
	if err != nil {
		return err
	}

	if err := s.store.DeleteReview(ctx, reviewID); err != nil {
		return fmt.Errorf("delete review: %w", err)
	}

	return s.recomputeBookRating(ctx, review.BookID)
}

// GetReviewsForBook returns all reviews of a book.
func (s *ReviewService) GetReviewsForBook(ctx context.Context, bookID string) ([]*domain.Review, error) {
	if _, err := s.store.GetBook(ctx, bookID); err != nil {
		if store.IsNotFound(err) {
			return nil, domainerrors.NotFound("book not found")
		}
		return nil, fmt.Errorf("get book: %w", err)
	}
	return s.store.GetReviewsForBook(ctx, bookID)
}

// GetReviewsForUser returns all reviews written by a user.
func (s *ReviewService) GetReviewsForUser(ctx context.Context, userID string) ([]*domain.Review, error) {
	return s.store.GetReviewsForUser(ctx, userID)
}

// getOwnedReview fetches a review and enforces ownership.
func (s *ReviewService) getOwnedReview(ctx context.Context, userID, reviewID string) (*domain.Review, error) {
	review, err := s.store.GetReview(ctx, reviewID)
	if err != nil {
		if store.IsNotFound(err) {
			return nil, domainerrors.NotFound("review not found")
		}
		return nil, fmt.Errorf("get review: %w", err)
	}

	if review.UserID != userID {
		return nil, domainerrors.Forbidden("you can only modify your own reviews")
	}

	return review, nil
}

// recomputeBookRating refreshes a book's aggregate rating from all its reviews.
// Always a full recompute; review volume per book is small.
func (s *ReviewService) recomputeBookRating(ctx context.Context, bookID string) error {
	reviews, err := s.store.GetReviewsForBook(ctx, bookID)
	if err != nil {
		return fmt.Errorf("list reviews for rating: %w", err)
	}

	book, err := s.store.GetBook(ctx, bookID)
	if err != nil {
		return fmt.Errorf("get book for rating: %w", err)
	}

	book.RatingsCount = len(reviews)
	book.Rating = meanRating(reviews)

	if err := s.store.UpdateBook(ctx, book); err != nil {
		return fmt.Errorf("update book rating: %w", err)
	}

	return nil
}

// meanRating returns the average review rating rounded to one decimal,
// or 0 when there are no reviews.
func meanRating(reviews []*domain.Review) float64 {
	if len(reviews) == 0 {
		return 0
	}
	sum := 0
	for _, review := range reviews {
		sum += review.Rating
	}
	mean := float64(sum) / float64(len(reviews))
	return math.Round(mean*10) / 10
}
