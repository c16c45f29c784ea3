package product

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/hossamfarag/boutique-backend/internal/mongodb"
)

var (
	ErrValidation = errors.New("invalid product")
	ErrInvalidID  = errors.New("invalid product ID")
)

const (
	maxNameLen        = 200
	maxDescriptionLen = 1000
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service { return &Service{repo: repo} }

func (s *Service) ready() error {
	if s == nil || s.repo == nil {
		return mongodb.ErrUnavailable
	}
	return nil
}

func validatePrice(raw string) (string, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return "", fmt.Errorf("%w: price %q is not a number", ErrValidation, raw)
	}
	if d.IsNegative() {
		return "", fmt.Errorf("%w: price must not be negative", ErrValidation)
	}
	return d.String(), nil
}

func (s *Service) Create(ctx context.Context, in CreateRequest) (*Response, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}
	if len(name) > maxNameLen {
		return nil, fmt.Errorf("%w: name exceeds %d characters", ErrValidation, maxNameLen)
	}
	if len(in.Description) > maxDescriptionLen {
		return nil, fmt.Errorf("%w: description exceeds %d characters", ErrValidation, maxDescriptionLen)
	}
	price, err := validatePrice(in.Price)
	if err != nil {
		return nil, err
	}
	if in.Stock < 0 {
		return nil, fmt.Errorf("%w: stock must not be negative", ErrValidation)
	}

	available := true
	if in.Available != nil {
		available = *in.Available
	}

	p := &Product{
		Name:        name,
		Description: in.Description,
		Price:       price,
		Stock:       in.Stock,
		Available:   available,
	}
	if err := s.repo.Insert(ctx, p); err != nil {
		return nil, err
	}
	resp := p.Response()
	return &resp, nil
}

func (s *Service) Get(ctx context.Context, id string) (*Response, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	if !mongodb.ValidID(id) {
		return nil, ErrInvalidID
	}
	p, err := s.repo.FindByID(ctx, mongodb.MustID(id))
	if err != nil {
		return nil, err
	}
	resp := p.Response()
	return &resp, nil
}

func (s *Service) List(ctx context.Context) ([]Response, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	items, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]Response, 0, len(items))
	for i := range items {
		out = append(out, items[i].Response())
	}
	return out, nil
}

func (s *Service) Update(ctx context.Context, id string, in UpdateRequest) (*Response, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	if !mongodb.ValidID(id) {
		return nil, ErrInvalidID
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: name must not be empty", ErrValidation)
		}
		if len(name) > maxNameLen {
			return nil, fmt.Errorf("%w: name exceeds %d characters", ErrValidation, maxNameLen)
		}
		in.Name = &name
	}
	if in.Description != nil && len(*in.Description) > maxDescriptionLen {
		return nil, fmt.Errorf("%w: description exceeds %d characters", ErrValidation, maxDescriptionLen)
	}
	if in.Price != nil {
		price, err := validatePrice(*in.Price)
		if err != nil {
			return nil, err
		}
		in.Price = &price
	}
	if in.Stock != nil && *in.Stock < 0 {
		return nil, fmt.Errorf("%w: stock must not be negative", ErrValidation)
	}

	oid := mongodb.MustID(id)
	if err := s.repo.Update(ctx, oid, in); err != nil {
		return nil, err
	}
	p, err := s.repo.FindByID(ctx, oid)
	if err != nil {
		return nil, err
	}
	resp := p.Response()
	return &resp, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.ready(); err != nil {
		return err
	}
	if !mongodb.ValidID(id) {
		return ErrInvalidID
	}
	return s.repo.Delete(ctx, mongodb.MustID(id))
}

// Thin helpers used by the bot's inline actions.

func (s *Service) SetAvailability(ctx context.Context, id string, available bool) error {
	_, err := s.Update(ctx, id, UpdateRequest{Available: &available})
	return err
}

func (s *Service) SetPrice(ctx context.Context, id, price string) error {
	_, err := s.Update(ctx, id, UpdateRequest{Price: &price})
	return err
}

func (s *Service) SetDescription(ctx context.Context, id, description string) error {
	_, err := s.Update(ctx, id, UpdateRequest{Description: &description})
	return err
}
