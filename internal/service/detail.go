package service

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/utafrali/storefront/internal/domain"
	apperrors "github.com/utafrali/storefront/pkg/errors"
)

// ProductReader fetches a single product. CatalogService satisfies this.
type ProductReader interface {
	GetProduct(ctx context.Context, id int64) (*domain.Product, error)
}

// ReviewReader fetches a product's reviews. ReviewService satisfies this.
type ReviewReader interface {
	ListReviews(ctx context.Context, productID int64) (*domain.ReviewList, error)
}

// DetailService joins the product and review fetches of a product page.
type DetailService struct {
	products ProductReader
	reviews  ReviewReader
	timeout  time.Duration
	logger   *slog.Logger
}

// NewDetailService creates a new detail service. A zero timeout means the
// caller's context alone bounds a load.
func NewDetailService(products ProductReader, reviews ReviewReader, timeout time.Duration, logger *slog.Logger) *DetailService {
	return &DetailService{
		products: products,
		reviews:  reviews,
		timeout:  timeout,
		logger:   logger,
	}
}

// LoadDetail fetches the product and its reviews concurrently. The first
// failure cancels the other fetch and is returned; there is no partial detail.
func (s *DetailService) LoadDetail(ctx context.Context, productID int64) (*domain.ProductDetail, error) {
	if productID <= 0 {
		return nil, apperrors.Validation("product id must be a positive number")
	}
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	var (
		product *domain.Product
		reviews *domain.ReviewList
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		p, err := s.products.GetProduct(gctx, productID)
		if err != nil {
			return err
		}
		product = p
		return nil
	})
	g.Go(func() error {
		r, err := s.reviews.ListReviews(gctx, productID)
		if err != nil {
			return err
		}
		reviews = r
		return nil
	})

	if err := g.Wait(); err != nil {
		s.logger.WarnContext(ctx, "product detail load failed",
			slog.Int64("product_id", productID),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	return domain.NewProductDetail(*product, *reviews), nil
}
