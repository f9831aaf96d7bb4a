package service

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"

	"github.com/stretchr/testify/mock"

	"github.com/utafrali/storefront/internal/domain"
	"github.com/utafrali/storefront/internal/transport"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// --- Mock Transport ---

type mockTransport struct {
	mock.Mock
}

func (m *mockTransport) Do(ctx context.Context, r transport.Request) (json.RawMessage, error) {
	args := m.Called(ctx, r)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return json.RawMessage(args.String(0)), args.Error(1)
}

// requestFor matches a transport request by method and path.
func requestFor(method, path string) any {
	return mock.MatchedBy(func(r transport.Request) bool {
		return r.Method == method && r.Path == path
	})
}

// --- Mock Feedback Writer ---

type mockFeedbackWriter struct {
	mock.Mock
}

func (m *mockFeedbackWriter) CreateRating(ctx context.Context, input domain.CreateRatingInput) (*domain.Rating, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rating), args.Error(1)
}

func (m *mockFeedbackWriter) CreateReview(ctx context.Context, input domain.CreateReviewInput) (*domain.Review, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Review), args.Error(1)
}

// --- Mock Publisher ---

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) PublishFeedbackSubmitted(ctx context.Context, submission *domain.FeedbackSubmission) error {
	return m.Called(ctx, submission).Error(0)
}

func (m *mockPublisher) PublishFeedbackPartiallyFailed(ctx context.Context, submission *domain.FeedbackSubmission) error {
	return m.Called(ctx, submission).Error(0)
}

// --- Mock Readers ---

type mockProductReader struct {
	mock.Mock
}

func (m *mockProductReader) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

type mockReviewReader struct {
	mock.Mock
}

func (m *mockReviewReader) ListReviews(ctx context.Context, productID int64) (*domain.ReviewList, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ReviewList), args.Error(1)
}
