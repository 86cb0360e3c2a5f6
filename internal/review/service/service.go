package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mirellenails/salon-backend/internal/apperror"
	"github.com/mirellenails/salon-backend/internal/review"
	"go.uber.org/zap"
)

//go:generate mockgen -source=service.go -destination=mocks/mock.go -package=mockreviewrepo
type Repository interface {
	Create(ctx context.Context, data review.Review) (int, error)
	Delete(ctx context.Context, id int) (bool, error)
	GetAll(ctx context.Context) ([]review.Review, error)
}

type service struct {
	repository Repository
	logger     *zap.Logger
}

func NewService(repository Repository, logger *zap.Logger) *service {
	return &service{
		repository: repository,
		logger:     logger,
	}
}

// Submit validates the submission and persists it. Validation failures come
// back as an unsuccessful SubmitResult; the error return is for storage
// failures only.
func (s *service) Submit(ctx context.Context, input review.SubmitInput) (*review.SubmitResult, error) {
	if result := validate(input); result != nil {
		return result, nil
	}

	data := review.Review{
		Name:    strings.TrimSpace(input.Name),
		Service: input.Service,
		Rating:  input.Rating,
		Text:    strings.TrimSpace(input.Text),
		Date:    time.Now().UTC(),
	}

	id, err := s.repository.Create(ctx, data)
	if err != nil {
		s.logger.Error("unexpected error when creating review", zap.Error(err))
		return nil, err
	}

	data.ID = id

	return &review.SubmitResult{Success: true, Review: &data}, nil
}

func (s *service) GetAll(ctx context.Context) ([]review.Review, error) {
	reviews, err := s.repository.GetAll(ctx)
	if err != nil {
		s.logger.Error("unexpected error when fetching reviews", zap.Error(err))
		return nil, err
	}

	return reviews, nil
}

func (s *service) Delete(ctx context.Context, id int) error {
	deleted, err := s.repository.Delete(ctx, id)
	if err != nil {
		s.logger.Error("unexpected error when deleting review", zap.Error(err))
		return err
	}

	if !deleted {
		return apperror.ErrNotFound
	}

	return nil
}

func validate(input review.SubmitInput) *review.SubmitResult {
	fail := func(field, message string) *review.SubmitResult {
		return &review.SubmitResult{Field: field, Message: message}
	}

	if strings.TrimSpace(input.Name) == "" {
		return fail("name", "name is required")
	}

	if !review.IsKnownService(input.Service) {
		return fail("service", "unknown service")
	}

	if input.Rating < 1 || input.Rating > 5 {
		return fail("rating", "rating must be between 1 and 5")
	}

	text := strings.TrimSpace(input.Text)
	if text == "" {
		return fail("text", "review text is required")
	}

	if len([]rune(text)) > review.MaxTextLength {
		return fail("text", fmt.Sprintf("review text must be at most %d characters", review.MaxTextLength))
	}

	return nil
}
