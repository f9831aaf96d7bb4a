package domain

// Score bounds for a rating.
const (
	MinScore     = 1
	MaxScore     = 5
	DefaultScore = 3
)

// Rating is a star score given by a user to a product. It is created next to
// a Review but through its own endpoint.
type Rating struct {
	ID        int64 `json:"id"`
	ProductID int64 `json:"product_id"`
	UserID    int64 `json:"user_id"`
	Score     int   `json:"score"`
}

// CreateRatingInput is the payload of POST /ratings.
type CreateRatingInput struct {
	UserID    int64 `json:"user_id" validate:"required,gt=0"`
	ProductID int64 `json:"product_id" validate:"required,gt=0"`
	Score     int   `json:"score" validate:"min=1,max=5"`
}

// ClampScore forces s into [MinScore, MaxScore].
func ClampScore(s int) int {
	switch {
	case s < MinScore:
		return MinScore
	case s > MaxScore:
		return MaxScore
	default:
		return s
	}
}
