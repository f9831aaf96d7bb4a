package domain

import (
	"time"
)

// MaxReviewLength is the longest review content accepted, in characters.
const MaxReviewLength = 2000

// Sentiment is the label an external classifier attaches to a review. The
// empty value means the review has not been classified.
type Sentiment string

// Sentiment labels, in display order.
const (
	SentimentPositive Sentiment = "positive"
	SentimentNeutral  Sentiment = "neutral"
	SentimentNegative Sentiment = "negative"
)

// Review is a customer review. Reviews are append-only from the client side.
type Review struct {
	ID        int64     `json:"id"`
	ProductID int64     `json:"product_id"`
	UserID    int64     `json:"user_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	Sentiment Sentiment `json:"sentiment,omitempty"`
}

// ReviewList is the normalized result of a reviews fetch. Sentiments is nil
// when the catalog API did not supply a summary.
type ReviewList struct {
	Reviews    []Review          `json:"reviews"`
	Sentiments *SentimentSummary `json:"sentiments,omitempty"`
}

// CreateReviewInput is the payload of POST /reviews.
type CreateReviewInput struct {
	UserID    int64  `json:"user_id" validate:"required,gt=0"`
	ProductID int64  `json:"product_id" validate:"required,gt=0"`
	Content   string `json:"content" validate:"required,min=1,max=2000"`
}
