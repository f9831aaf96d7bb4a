package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/utafrali/storefront/internal/domain"
	apperrors "github.com/utafrali/storefront/pkg/errors"
	"github.com/utafrali/storefront/pkg/validator"
)

// FeedbackWriter creates the two halves of a feedback submission.
// ReviewService satisfies this.
type FeedbackWriter interface {
	CreateRating(ctx context.Context, input domain.CreateRatingInput) (*domain.Rating, error)
	CreateReview(ctx context.Context, input domain.CreateReviewInput) (*domain.Review, error)
}

// FeedbackPublisher announces finished submissions. A nil publisher disables
// events.
type FeedbackPublisher interface {
	PublishFeedbackSubmitted(ctx context.Context, submission *domain.FeedbackSubmission) error
	PublishFeedbackPartiallyFailed(ctx context.Context, submission *domain.FeedbackSubmission) error
}

// FeedbackService runs the rating+review submission as a two-step saga:
// create_rating, then create_review. The steps are not atomic and there is
// no compensation. If the review fails after the rating was stored, the
// submission ends partially_applied and a PARTIAL_SUBMISSION error is
// returned.
type FeedbackService struct {
	writer    FeedbackWriter
	publisher FeedbackPublisher
	logger    *slog.Logger
}

// NewFeedbackService creates a new feedback service. publisher may be nil.
func NewFeedbackService(writer FeedbackWriter, publisher FeedbackPublisher, logger *slog.Logger) *FeedbackService {
	return &FeedbackService{
		writer:    writer,
		publisher: publisher,
		logger:    logger,
	}
}

// Submit validates input and runs both steps in order. Invalid input returns
// a nil submission and makes no request. Otherwise the submission is always
// returned, with its step statuses, next to any error.
func (s *FeedbackService) Submit(ctx context.Context, input domain.SubmitFeedbackInput) (*domain.FeedbackSubmission, error) {
	// Trim before validating so both steps judge the same content.
	input.Content = strings.TrimSpace(input.Content)
	if err := validator.Validate(input); err != nil {
		return nil, validationError(err)
	}

	submission := domain.NewFeedbackSubmission(input.ProductID, input.UserID, input.Score)

	// Step 1: Create rating.
	rating, err := s.writer.CreateRating(ctx, input.RatingInput())
	if err != nil {
		submission.RatingStep().Fail(apperrors.UserMessage(err))
		submission.ReviewStep().Skip()
		submission.Outcome = domain.FeedbackFailed

		s.logger.WarnContext(ctx, "feedback rejected at rating step",
			slog.Int64("product_id", input.ProductID),
			slog.Int64("user_id", input.UserID),
			slog.String("error", err.Error()),
		)
		return submission, apperrors.Wrap(err, "create rating")
	}
	submission.Rating = rating
	submission.RatingStep().Complete()

	// Step 2: Create review. The rating stays in place if this fails.
	review, err := s.writer.CreateReview(ctx, input.ReviewInput())
	if err != nil {
		submission.ReviewStep().Fail(apperrors.UserMessage(err))
		submission.Outcome = domain.FeedbackPartiallyApplied

		s.logger.ErrorContext(ctx, "feedback partially applied: rating stored, review failed",
			slog.Int64("product_id", input.ProductID),
			slog.Int64("user_id", input.UserID),
			slog.Int("score", input.Score),
			slog.String("error", err.Error()),
		)
		s.publish(ctx, submission)
		return submission, apperrors.PartialSubmission(err)
	}
	submission.Review = review
	submission.ReviewStep().Complete()
	submission.Outcome = domain.FeedbackCompleted

	s.logger.InfoContext(ctx, "feedback submitted",
		slog.Int64("product_id", input.ProductID),
		slog.Int64("user_id", input.UserID),
		slog.Int("score", input.Score),
	)
	s.publish(ctx, submission)

	return submission, nil
}

// publish emits the event matching the submission outcome; log but do not
// fail on error.
func (s *FeedbackService) publish(ctx context.Context, submission *domain.FeedbackSubmission) {
	if s.publisher == nil {
		return
	}

	var err error
	switch submission.Outcome {
	case domain.FeedbackCompleted:
		err = s.publisher.PublishFeedbackSubmitted(ctx, submission)
	case domain.FeedbackPartiallyApplied:
		err = s.publisher.PublishFeedbackPartiallyFailed(ctx, submission)
	default:
		return
	}
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to publish feedback event",
			slog.Int64("product_id", submission.ProductID),
			slog.String("outcome", submission.Outcome),
			slog.String("error", err.Error()),
		)
	}
}
