package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/utafrali/storefront/internal/domain"
	"github.com/utafrali/storefront/internal/transport"
	apperrors "github.com/utafrali/storefront/pkg/errors"
	"github.com/utafrali/storefront/pkg/validator"
)

// ReviewService implements the review and rating operations.
type ReviewService struct {
	client Transport
	logger *slog.Logger
}

// NewReviewService creates a new review service.
func NewReviewService(client Transport, logger *slog.Logger) *ReviewService {
	return &ReviewService{
		client: client,
		logger: logger,
	}
}

// ListReviews fetches every review of a product. Sentiments is nil when the
// catalog API sent no summary.
func (s *ReviewService) ListReviews(ctx context.Context, productID int64) (*domain.ReviewList, error) {
	if productID <= 0 {
		return nil, apperrors.Validation("product id must be a positive number")
	}

	raw, err := s.client.Do(ctx, transport.Request{
		Operation:      "list_reviews",
		Method:         http.MethodGet,
		Path:           "/reviews/" + strconv.FormatInt(productID, 10),
		FailureMessage: MsgLoadReviewsFailed,
	})
	if err != nil {
		return nil, err
	}

	reviews, err := transport.Unwrap[[]domain.Review](raw, "reviews")
	if err != nil {
		return nil, apperrors.Internal(fmt.Errorf("list reviews for product %d: %w", productID, err))
	}
	if reviews == nil {
		reviews = []domain.Review{}
	}

	list := &domain.ReviewList{Reviews: reviews}
	if rawSummary, ok := transport.Field(raw, "sentiments"); ok {
		var summary domain.SentimentSummary
		switch err := json.Unmarshal(rawSummary, &summary); {
		case err != nil:
			s.logger.WarnContext(ctx, "ignoring malformed sentiment summary",
				slog.Int64("product_id", productID),
				slog.String("error", err.Error()),
			)
		case !summary.Valid():
			s.logger.WarnContext(ctx, "ignoring sentiment summary with negative counts",
				slog.Int64("product_id", productID),
				slog.Int("positive", summary.Positive),
				slog.Int("neutral", summary.Neutral),
				slog.Int("negative", summary.Negative),
			)
		default:
			list.Sentiments = &summary
		}
	}
	return list, nil
}

// CreateRating submits a 1..5 score. Out-of-range input is rejected before
// any request is made.
func (s *ReviewService) CreateRating(ctx context.Context, input domain.CreateRatingInput) (*domain.Rating, error) {
	if err := validator.Validate(input); err != nil {
		return nil, validationError(err)
	}

	raw, err := s.client.Do(ctx, transport.Request{
		Operation:      "create_rating",
		Method:         http.MethodPost,
		Path:           "/ratings",
		Body:           input,
		FailureMessage: MsgAddRatingFailed,
	})
	if err != nil {
		return nil, err
	}

	rating, err := transport.Unwrap[domain.Rating](raw, "rating")
	if err != nil {
		return nil, apperrors.Internal(fmt.Errorf("create rating: %w", err))
	}
	if rating.ProductID == 0 {
		rating.ProductID = input.ProductID
		rating.UserID = input.UserID
		rating.Score = input.Score
	}

	s.logger.InfoContext(ctx, "rating created",
		slog.Int64("product_id", input.ProductID),
		slog.Int64("user_id", input.UserID),
		slog.Int("score", input.Score),
	)

	return &rating, nil
}

// CreateReview submits review text. Content is trimmed first and must then be
// 1..2000 characters long.
func (s *ReviewService) CreateReview(ctx context.Context, input domain.CreateReviewInput) (*domain.Review, error) {
	input.Content = strings.TrimSpace(input.Content)
	if err := validator.Validate(input); err != nil {
		return nil, validationError(err)
	}

	raw, err := s.client.Do(ctx, transport.Request{
		Operation:      "create_review",
		Method:         http.MethodPost,
		Path:           "/reviews",
		Body:           input,
		FailureMessage: MsgAddReviewFailed,
	})
	if err != nil {
		return nil, err
	}

	review, err := transport.Unwrap[domain.Review](raw, "review")
	if err != nil {
		return nil, apperrors.Internal(fmt.Errorf("create review: %w", err))
	}
	if review.ProductID == 0 {
		review.ProductID = input.ProductID
		review.UserID = input.UserID
		review.Content = input.Content
	}

	s.logger.InfoContext(ctx, "review created",
		slog.Int64("review_id", review.ID),
		slog.Int64("product_id", input.ProductID),
		slog.Int64("user_id", input.UserID),
	)

	return &review, nil
}
