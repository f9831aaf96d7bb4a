package event

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/utafrali/storefront/internal/domain"
	pkgkafka "github.com/utafrali/storefront/pkg/kafka"
	"github.com/utafrali/storefront/pkg/logger"
)

// Kafka topic constants for feedback events.
var (
	TopicFeedbackSubmitted       = pkgkafka.Topic("feedback", "submitted")
	TopicFeedbackPartiallyFailed = pkgkafka.Topic("feedback", "partially_failed")
)

// Aggregate type constant.
const AggregateTypeProduct = "product"

// SourceStorefront identifies events emitted by this service.
const SourceStorefront = "storefront"

// FeedbackData is the payload of both feedback events.
type FeedbackData struct {
	ProductID int64             `json:"product_id"`
	UserID    int64             `json:"user_id"`
	Score     int               `json:"score"`
	Outcome   string            `json:"outcome"`
	Steps     []domain.SagaStep `json:"steps"`
	RatingID  int64             `json:"rating_id,omitempty"`
	ReviewID  int64             `json:"review_id,omitempty"`
}

// Publisher writes an event to a topic. *pkgkafka.Producer satisfies this.
type Publisher interface {
	Publish(ctx context.Context, topic string, event *pkgkafka.Event) error
}

// Producer publishes feedback events to Kafka.
type Producer struct {
	kafka  Publisher
	logger *slog.Logger
}

// NewProducer creates a new feedback event producer.
func NewProducer(kafka Publisher, logger *slog.Logger) *Producer {
	return &Producer{
		kafka:  kafka,
		logger: logger,
	}
}

// PublishFeedbackSubmitted publishes a feedback.submitted event.
func (p *Producer) PublishFeedbackSubmitted(ctx context.Context, submission *domain.FeedbackSubmission) error {
	return p.publish(ctx, TopicFeedbackSubmitted, submission)
}

// PublishFeedbackPartiallyFailed publishes a feedback.partially_failed event:
// the rating was stored, the review was not.
func (p *Producer) PublishFeedbackPartiallyFailed(ctx context.Context, submission *domain.FeedbackSubmission) error {
	return p.publish(ctx, TopicFeedbackPartiallyFailed, submission)
}

func (p *Producer) publish(ctx context.Context, topic string, submission *domain.FeedbackSubmission) error {
	data := FeedbackData{
		ProductID: submission.ProductID,
		UserID:    submission.UserID,
		Score:     submission.Score,
		Outcome:   submission.Outcome,
		Steps:     submission.Steps,
	}
	if submission.Rating != nil {
		data.RatingID = submission.Rating.ID
	}
	if submission.Review != nil {
		data.ReviewID = submission.Review.ID
	}

	productID := strconv.FormatInt(submission.ProductID, 10)
	event, err := pkgkafka.NewEvent(topic, productID, AggregateTypeProduct, SourceStorefront, data)
	if err != nil {
		return fmt.Errorf("create %s event: %w", topic, err)
	}
	event.WithCorrelationID(logger.CorrelationIDFromContext(ctx))

	if err := p.kafka.Publish(ctx, topic, event); err != nil {
		return fmt.Errorf("publish %s event: %w", topic, err)
	}

	p.logger.DebugContext(ctx, "published feedback event",
		slog.String("topic", topic),
		slog.Int64("product_id", submission.ProductID),
		slog.String("outcome", submission.Outcome),
	)

	return nil
}
