package domain

import (
	"time"
)

// Saga step status constants.
const (
	SagaStepPending   = "pending"
	SagaStepCompleted = "completed"
	SagaStepFailed    = "failed"
	SagaStepSkipped   = "skipped"
)

// SagaStep tracks the execution status of a single step of a feedback
// submission.
type SagaStep struct {
	Name       string    `json:"name"`
	Status     string    `json:"status"`
	Error      string    `json:"error,omitempty"`
	ExecutedAt time.Time `json:"executed_at,omitzero"`
}

// NewSagaStep creates a new saga step in the pending state.
func NewSagaStep(name string) SagaStep {
	return SagaStep{
		Name:   name,
		Status: SagaStepPending,
	}
}

// Complete marks the saga step as successfully completed.
func (s *SagaStep) Complete() {
	s.Status = SagaStepCompleted
	s.ExecutedAt = time.Now().UTC()
}

// Fail marks the saga step as failed with the given error message.
func (s *SagaStep) Fail(err string) {
	s.Status = SagaStepFailed
	s.Error = err
	s.ExecutedAt = time.Now().UTC()
}

// Skip marks a step that was never attempted because an earlier one failed.
func (s *SagaStep) Skip() {
	s.Status = SagaStepSkipped
}

// Saga step names for a feedback submission. The rating is always created
// first.
const (
	SagaStepCreateRating = "create_rating"
	SagaStepCreateReview = "create_review"
)

// Feedback submission outcomes.
const (
	FeedbackPending          = "pending"
	FeedbackCompleted        = "completed"
	FeedbackFailed           = "failed"
	FeedbackPartiallyApplied = "partially_applied"
)

// FeedbackSubmission records a rating+review submission. The two creations
// are not atomic: PartiallyApplied means the rating was stored server-side
// and the review was not. Nothing is rolled back.
type FeedbackSubmission struct {
	ProductID int64      `json:"product_id"`
	UserID    int64      `json:"user_id"`
	Score     int        `json:"score"`
	Outcome   string     `json:"outcome"`
	Steps     []SagaStep `json:"steps"`
	Rating    *Rating    `json:"rating,omitempty"`
	Review    *Review    `json:"review,omitempty"`
}

// NewFeedbackSubmission creates a submission with both steps pending.
func NewFeedbackSubmission(productID, userID int64, score int) *FeedbackSubmission {
	return &FeedbackSubmission{
		ProductID: productID,
		UserID:    userID,
		Score:     score,
		Outcome:   FeedbackPending,
		Steps: []SagaStep{
			NewSagaStep(SagaStepCreateRating),
			NewSagaStep(SagaStepCreateReview),
		},
	}
}

// RatingStep returns the create_rating step.
func (f *FeedbackSubmission) RatingStep() *SagaStep { return &f.Steps[0] }

// ReviewStep returns the create_review step.
func (f *FeedbackSubmission) ReviewStep() *SagaStep { return &f.Steps[1] }

// Succeeded reports whether both steps completed.
func (f *FeedbackSubmission) Succeeded() bool {
	return f.Outcome == FeedbackCompleted
}

// SubmitFeedbackInput is one rating+review submission that already passed the
// form rules.
type SubmitFeedbackInput struct {
	UserID    int64  `json:"user_id" validate:"required,gt=0"`
	ProductID int64  `json:"product_id" validate:"required,gt=0"`
	Score     int    `json:"score" validate:"min=1,max=5"`
	Content   string `json:"content" validate:"required,max=2000"`
}

// RatingInput returns the payload of the first step.
func (in SubmitFeedbackInput) RatingInput() CreateRatingInput {
	return CreateRatingInput{UserID: in.UserID, ProductID: in.ProductID, Score: in.Score}
}

// ReviewInput returns the payload of the second step.
func (in SubmitFeedbackInput) ReviewInput() CreateReviewInput {
	return CreateReviewInput{UserID: in.UserID, ProductID: in.ProductID, Content: in.Content}
}
