package form

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/utafrali/storefront/internal/domain"
	apperrors "github.com/utafrali/storefront/pkg/errors"
)

// Feedback form messages.
const (
	MsgFeedbackRequired = "User ID and review are required."
	MsgUserIDNumeric    = "User ID must be a positive number."
)

// FeedbackForm holds the raw review form fields. Score comes from a 1..5
// selector; anything outside that range is clamped.
type FeedbackForm struct {
	UserID  string `json:"user_id"`
	Score   int    `json:"score"`
	Content string `json:"content"`
}

// NewFeedbackForm returns an empty form with the default score selected.
func NewFeedbackForm() FeedbackForm {
	return FeedbackForm{Score: domain.DefaultScore}
}

// SetContent stores review text, cutting it at the maximum length.
func (f *FeedbackForm) SetContent(content string) {
	f.Content = TruncateContent(content)
}

// Reset clears the text and restores the default score. The user id is kept.
func (f *FeedbackForm) Reset() {
	f.Content = ""
	f.Score = domain.DefaultScore
}

// Validate checks the form for productID and builds the submission. Content
// longer than the maximum is truncated, never rejected.
func (f FeedbackForm) Validate(productID int64) (domain.SubmitFeedbackInput, error) {
	rawUser := strings.TrimSpace(f.UserID)
	content := strings.TrimSpace(TruncateContent(f.Content))

	if rawUser == "" || content == "" {
		return domain.SubmitFeedbackInput{}, apperrors.Validation(MsgFeedbackRequired)
	}

	userID, err := strconv.ParseInt(rawUser, 10, 64)
	if err != nil || userID <= 0 {
		return domain.SubmitFeedbackInput{}, apperrors.Validation(MsgUserIDNumeric)
	}

	return domain.SubmitFeedbackInput{
		UserID:    userID,
		ProductID: productID,
		Score:     domain.ClampScore(f.Score),
		Content:   content,
	}, nil
}

// TruncateContent cuts s to domain.MaxReviewLength characters.
func TruncateContent(s string) string {
	if utf8.RuneCountInString(s) <= domain.MaxReviewLength {
		return s
	}
	return string([]rune(s)[:domain.MaxReviewLength])
}
