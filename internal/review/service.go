package review

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/hossamfarag/boutique-backend/internal/mongodb"
	"github.com/hossamfarag/boutique-backend/internal/product"
)

var ErrValidation = errors.New("invalid review")

const defaultLimit = 50

// ProductFinder checks that the reviewed product exists.
type ProductFinder interface {
	Get(ctx context.Context, id string) (*product.Response, error)
}

type Service struct {
	repo     Repository
	products ProductFinder
}

func NewService(repo Repository, products ProductFinder) *Service {
	return &Service{repo: repo, products: products}
}

func (s *Service) ready() error {
	if s == nil || s.repo == nil {
		return mongodb.ErrUnavailable
	}
	return nil
}

func (s *Service) Create(ctx context.Context, in CreateRequest) (*Response, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.Name) == "" || len(in.Name) > 100 {
		return nil, fmt.Errorf("%w: reviewer name is required (max 100 characters)", ErrValidation)
	}
	if in.Rating < 1 || in.Rating > 5 {
		return nil, fmt.Errorf("%w: rating must be between 1 and 5", ErrValidation)
	}
	if len(in.Comment) > 1000 {
		return nil, fmt.Errorf("%w: comment exceeds 1000 characters", ErrValidation)
	}
	// product must exist; ErrInvalidID / ErrNotFound pass through
	if _, err := s.products.Get(ctx, in.ProductID); err != nil {
		return nil, err
	}

	rv := &Review{
		ProductID: in.ProductID,
		Name:      strings.TrimSpace(in.Name),
		Rating:    in.Rating,
		Comment:   in.Comment,
	}
	if err := s.repo.Insert(ctx, rv); err != nil {
		return nil, err
	}
	resp := rv.Response()
	return &resp, nil
}

// ListAll returns the most recent reviews across all products, newest first.
func (s *Service) ListAll(ctx context.Context, limit int) ([]Response, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	if limit < 1 || limit > 100 {
		limit = defaultLimit
	}
	items, err := s.repo.FindAll(ctx, limit)
	if err != nil {
		return nil, err
	}
	return responses(items), nil
}

// ListByProduct returns a product's reviews, newest first.
func (s *Service) ListByProduct(ctx context.Context, productID string) ([]Response, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	if !mongodb.ValidID(productID) {
		return nil, product.ErrInvalidID
	}
	items, err := s.repo.FindByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	return responses(items), nil
}

func responses(items []Review) []Response {
	out := make([]Response, 0, len(items))
	for i := range items {
		out = append(out, items[i].Response())
	}
	return out
}
