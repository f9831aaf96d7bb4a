package view

import (
	"strconv"
	"time"
	"unicode/utf8"

	"github.com/utafrali/storefront/internal/domain"
)

// Presentation constants.
const (
	DescriptionPreviewLength = 100
	NoDescription            = "No description available."
	OutOfStock               = "Out of stock"
)

// State is the lifecycle state of a page's data.
type State string

// Page states. Empty is only used by list pages: the load succeeded and
// matched nothing.
const (
	StateLoading State = "loading"
	StateReady   State = "ready"
	StateEmpty   State = "empty"
	StateFailed  State = "failed"
)

// RatingView is the rendered form of an average rating.
type RatingView struct {
	Stars  domain.Stars `json:"stars"`
	Symbol string       `json:"symbol"`
	Text   string       `json:"text"`
}

// NewRatingView renders r, e.g. "★★★★☆" and "4.3 / 5". r itself is never
// rounded before this point.
func NewRatingView(r float64) *RatingView {
	stars := domain.StarsFor(r)
	return &RatingView{
		Stars:  stars,
		Symbol: stars.String(),
		Text:   domain.FormatRating(r) + " / " + strconv.Itoa(domain.StarCount),
	}
}

// ProductCard is one entry of the catalog grid.
type ProductCard struct {
	ID          int64       `json:"id"`
	Name        string      `json:"name"`
	Category    string      `json:"category"`
	Price       string      `json:"price"`
	Description string      `json:"description"`
	Rating      *RatingView `json:"rating,omitempty"`
	Link        string      `json:"link"`
}

// NewProductCard builds the card for p.
func NewProductCard(p domain.Product) ProductCard {
	card := ProductCard{
		ID:          p.ID,
		Name:        p.Name,
		Category:    string(p.Category),
		Price:       p.Price.StringFixed(2),
		Description: PreviewDescription(p.Description),
		Link:        ProductPath(p.ID),
	}
	if p.HasRating() {
		card.Rating = NewRatingView(*p.AverageRating)
	}
	return card
}

// PreviewDescription cuts long descriptions to DescriptionPreviewLength
// characters followed by "...".
func PreviewDescription(s string) string {
	if s == "" {
		return NoDescription
	}
	if utf8.RuneCountInString(s) <= DescriptionPreviewLength {
		return s
	}
	return string([]rune(s)[:DescriptionPreviewLength]) + "..."
}

// StockText renders the stock level of p. It returns "" when stock is unknown.
func StockText(p domain.Product) string {
	switch {
	case p.Stock == nil:
		return ""
	case p.InStock():
		return strconv.Itoa(*p.Stock) + " available"
	default:
		return OutOfStock
	}
}

// ProductPath is the page path of product id.
func ProductPath(id int64) string {
	return "/products/" + strconv.FormatInt(id, 10)
}

// ReviewView is one rendered review.
type ReviewView struct {
	ID        int64  `json:"id"`
	Author    string `json:"author"`
	Date      string `json:"date"`
	Sentiment string `json:"sentiment,omitempty"`
	Content   string `json:"content"`
}

// NewReviewView renders r.
func NewReviewView(r domain.Review) ReviewView {
	v := ReviewView{
		ID:        r.ID,
		Author:    "User #" + strconv.FormatInt(r.UserID, 10),
		Sentiment: string(r.Sentiment),
		Content:   r.Content,
	}
	if !r.CreatedAt.IsZero() {
		v.Date = r.CreatedAt.Format(time.DateOnly)
	}
	return v
}
