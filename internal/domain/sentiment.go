package domain

// SentimentSummary counts classified reviews per label. Unclassified reviews
// are not counted, so the sum equals the number of labelled reviews.
type SentimentSummary struct {
	Positive int `json:"positive"`
	Neutral  int `json:"neutral"`
	Negative int `json:"negative"`
}

// Total returns positive + neutral + negative.
func (s SentimentSummary) Total() int {
	return s.Positive + s.Neutral + s.Negative
}

// Valid reports whether no count is negative.
func (s SentimentSummary) Valid() bool {
	return s.Positive >= 0 && s.Neutral >= 0 && s.Negative >= 0
}

// SummarizeSentiments counts the labels carried by reviews. Reviews without a
// label, or with a label outside the known set, are skipped.
func SummarizeSentiments(reviews []Review) SentimentSummary {
	var s SentimentSummary
	for _, r := range reviews {
		switch r.Sentiment {
		case SentimentPositive:
			s.Positive++
		case SentimentNeutral:
			s.Neutral++
		case SentimentNegative:
			s.Negative++
		}
	}
	return s
}

// SentimentShare is one bar of the sentiment breakdown.
type SentimentShare struct {
	Label      Sentiment `json:"label"`
	Count      int       `json:"count"`
	Percentage int       `json:"percentage"`
}

// SentimentBreakdown is the display form of a SentimentSummary. When Total is
// zero there is no data: Shares is empty and NoData is true.
type SentimentBreakdown struct {
	Total  int              `json:"total"`
	NoData bool             `json:"no_data"`
	Shares []SentimentShare `json:"shares,omitempty"`
}

// Aggregate turns raw counts into per-label percentages, always in the order
// positive, neutral, negative. A summary with a negative count has no data.
// Each percentage is rounded on its own (half
// up), so the sum may differ from 100 by a point or two.
func Aggregate(s SentimentSummary) SentimentBreakdown {
	total := s.Total()
	if total <= 0 || !s.Valid() {
		return SentimentBreakdown{NoData: true}
	}

	counts := []struct {
		label Sentiment
		count int
	}{
		{SentimentPositive, s.Positive},
		{SentimentNeutral, s.Neutral},
		{SentimentNegative, s.Negative},
	}

	shares := make([]SentimentShare, 0, len(counts))
	for _, c := range counts {
		shares = append(shares, SentimentShare{
			Label:      c.label,
			Count:      c.count,
			Percentage: roundPercent(c.count, total),
		})
	}
	return SentimentBreakdown{Total: total, Shares: shares}
}

// roundPercent computes round(count/total*100) with ties rounded up, in
// integer arithmetic.
func roundPercent(count, total int) int {
	return (200*count + total) / (2 * total)
}
