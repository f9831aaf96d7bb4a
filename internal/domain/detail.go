package domain

// ProductDetail is the combined product + reviews + sentiment state of one
// product page. It is always built from one pair of successful fetches.
type ProductDetail struct {
	Product    Product            `json:"product"`
	Reviews    []Review           `json:"reviews"`
	Sentiments SentimentSummary   `json:"sentiments"`
	Breakdown  SentimentBreakdown `json:"breakdown"`
}

// NewProductDetail joins a product and its reviews. A server-supplied summary
// is authoritative; without one the summary is counted from review labels.
func NewProductDetail(product Product, reviews ReviewList) *ProductDetail {
	summary := SummarizeSentiments(reviews.Reviews)
	if reviews.Sentiments != nil {
		summary = *reviews.Sentiments
	}
	list := reviews.Reviews
	if list == nil {
		list = []Review{}
	}
	return &ProductDetail{
		Product:    product,
		Reviews:    list,
		Sentiments: summary,
		Breakdown:  Aggregate(summary),
	}
}

// ReviewCount returns the number of reviews shown on the page.
func (d *ProductDetail) ReviewCount() int {
	return len(d.Reviews)
}
