package domain

import (
	"fmt"
	"math"
	"strings"
)

// StarCount is the number of stars every rating display shows.
const StarCount = 5

// Stars is the filled/empty split used to draw a rating.
type Stars struct {
	Filled int `json:"filled"`
	Empty  int `json:"empty"`
}

// StarsFor returns round(r) filled stars (ties at .5 round up) and the rest
// empty. r is clamped to [0, 5] so Filled+Empty is always StarCount.
func StarsFor(r float64) Stars {
	if math.IsNaN(r) {
		r = 0
	}
	filled := int(math.Floor(r + 0.5))
	filled = max(0, min(StarCount, filled))
	return Stars{Filled: filled, Empty: StarCount - filled}
}

// String draws the stars as "★★★☆☆".
func (s Stars) String() string {
	return strings.Repeat("★", s.Filled) + strings.Repeat("☆", s.Empty)
}

// FormatRating renders an average rating with one decimal, e.g. "4.5".
func FormatRating(r float64) string {
	return fmt.Sprintf("%.1f", r)
}
