package view

import (
	"context"

	"github.com/utafrali/storefront/internal/domain"
	"github.com/utafrali/storefront/internal/form"
	apperrors "github.com/utafrali/storefront/pkg/errors"
)

// Detail page messages.
const (
	MsgFeedbackAdded = "Review added successfully!"
	MsgReloadFailed  = "Your review was saved, but the page could not be refreshed."
)

// DetailLoader loads the combined product page data.
// service.DetailService satisfies this.
type DetailLoader interface {
	LoadDetail(ctx context.Context, productID int64) (*domain.ProductDetail, error)
}

// FeedbackSubmitter runs a rating+review submission.
// service.FeedbackService satisfies this.
type FeedbackSubmitter interface {
	Submit(ctx context.Context, input domain.SubmitFeedbackInput) (*domain.FeedbackSubmission, error)
}

// DetailView is the rendered product page.
type DetailView struct {
	ID          int64                     `json:"id"`
	Name        string                    `json:"name"`
	Category    string                    `json:"category"`
	Price       string                    `json:"price"`
	Description string                    `json:"description,omitempty"`
	Stock       string                    `json:"stock,omitempty"`
	Rating      *RatingView               `json:"rating,omitempty"`
	ReviewCount int                       `json:"review_count"`
	Reviews     []ReviewView              `json:"reviews"`
	Sentiments  domain.SentimentBreakdown `json:"sentiments"`
}

// NewDetailView renders d.
func NewDetailView(d *domain.ProductDetail) *DetailView {
	v := &DetailView{
		ID:          d.Product.ID,
		Name:        d.Product.Name,
		Category:    string(d.Product.Category),
		Price:       d.Product.Price.StringFixed(2),
		Description: d.Product.Description,
		Stock:       StockText(d.Product),
		ReviewCount: d.ReviewCount(),
		Reviews:     make([]ReviewView, 0, len(d.Reviews)),
		Sentiments:  d.Breakdown,
	}
	if d.Product.HasRating() {
		v.Rating = NewRatingView(*d.Product.AverageRating)
	}
	for _, r := range d.Reviews {
		v.Reviews = append(v.Reviews, NewReviewView(r))
	}
	return v
}

// DetailPage is the state of one product page visit: the loaded detail, the
// review form and its messages.
type DetailPage struct {
	loader    DetailLoader
	submitter FeedbackSubmitter
	err       error

	ProductID  int64                      `json:"product_id"`
	State      State                      `json:"state"`
	Detail     *DetailView                `json:"detail,omitempty"`
	Form       form.FeedbackForm          `json:"form"`
	Alert      string                     `json:"alert,omitempty"`
	Notice     string                     `json:"notice,omitempty"`
	Submission *domain.FeedbackSubmission `json:"submission,omitempty"`
}

// NewDetailPage creates a page for productID in the loading state.
func NewDetailPage(loader DetailLoader, submitter FeedbackSubmitter, productID int64) *DetailPage {
	return &DetailPage{
		loader:    loader,
		submitter: submitter,
		ProductID: productID,
		State:     StateLoading,
		Form:      form.NewFeedbackForm(),
	}
}

// Load fetches the product and its reviews. On failure the error replaces
// the page content.
func (p *DetailPage) Load(ctx context.Context) error {
	p.State = StateLoading
	p.err = nil

	detail, err := p.loader.LoadDetail(ctx, p.ProductID)
	if err != nil {
		p.State = StateFailed
		p.Detail = nil
		p.Alert = apperrors.UserMessage(err)
		p.err = err
		return err
	}

	p.Detail = NewDetailView(detail)
	p.State = StateReady
	return nil
}

// Submit validates the form, runs the submission and reloads the whole page
// so the average rating and sentiment counts come from the server.
//
// A failed submission keeps the form filled in and shows an inline alert; the
// loaded detail stays on screen. After a successful submission the form is
// reset and a notice shown even if the reload fails: the previous detail is
// kept and the alert says it could not be refreshed.
func (p *DetailPage) Submit(ctx context.Context) error {
	p.Alert = ""
	p.Notice = ""
	p.Submission = nil

	input, err := p.Form.Validate(p.ProductID)
	if err != nil {
		p.Alert = apperrors.UserMessage(err)
		return err
	}

	submission, err := p.submitter.Submit(ctx, input)
	p.Submission = submission
	if err != nil {
		p.Alert = apperrors.UserMessage(err)
		return err
	}

	p.Notice = MsgFeedbackAdded
	p.Form.Reset()

	previous := p.Detail
	if err := p.Load(ctx); err != nil {
		if previous != nil {
			p.Detail = previous
			p.State = StateReady
			p.err = nil
		}
		p.Alert = MsgReloadFailed
	}
	return nil
}

// Err returns the error of the last failed load, or nil.
func (p *DetailPage) Err() error {
	return p.err
}
