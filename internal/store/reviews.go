package store

import (
	"context"
	"fmt"

	"github.com/bookspace/bookspace-server/internal/domain"
)

// CreateReview persists a new review.
// The book_user index rejects a second review from the same user on the same book.
func (s *Store) CreateReview(ctx context.Context, review *domain.Review) error {
	return s.Reviews.Create(ctx, review.ID, review)
}

// GetReview retrieves a review by ID.
func (s *Store) GetReview(ctx context.Context, id string) (*domain.Review, error) {
	return s.Reviews.Get(ctx, id)
}

// GetReviewByBookAndUser retrieves a user's review of a book, if any.
func (s *Store) GetReviewByBookAndUser(ctx context.Context, bookID, userID string) (*domain.Review, error) {
	return s.Reviews.GetByIndex(ctx, "book_user", bookID+":"+userID)
}

// UpdateReview persists changes to an existing review.
func (s *Store) UpdateReview(ctx context.Context, review *domain.Review) error {
	review.Touch()
	return s.Reviews.Update(ctx, review.ID, review)
}

// DeleteReview removes a review. Idempotent.
func (s *Store) DeleteReview(ctx context.Context, id string) error {
	return s.Reviews.Delete(ctx, id)
}

// GetReviewsForBook returns all reviews of a book.
// Full scan over the review prefix; review volume is small enough that a
// dedicated multi-value index isn't worth the write amplification.
func (s *Store) GetReviewsForBook(ctx context.Context, bookID string) ([]*domain.Review, error) {
	var reviews []*domain.Review
	for review, err := range s.Reviews.List(ctx) {
		if err != nil {
			return nil, fmt.Errorf("list reviews: %w", err)
		}
		if review.BookID == bookID {
			reviews = append(reviews, review)
		}
	}
	return reviews, nil
}

// GetReviewsForUser returns all reviews written by a user.
func (s *Store) GetReviewsForUser(ctx context.Context, userID string) ([]*domain.Review, error) {
	var reviews []*domain.Review
	for review, err := range s.Reviews.List(ctx) {
		if err != nil {
			return nil, fmt.Errorf("list reviews: %w", err)
		}
		if review.UserID == userID {
			reviews = append(reviews, review)
		}
	}
	return reviews, nil
}
