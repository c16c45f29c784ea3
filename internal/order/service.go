// Package order provides the repository and service for placing orders and
// moving them through their status lifecycle.
package order

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/hossamfarag/boutique-backend/internal/mongodb"
	"github.com/hossamfarag/boutique-backend/internal/product"
)

var (
	ErrValidation = errors.New("invalid order")
	ErrInvalidID  = errors.New("invalid order ID")
)

// ProductFinder resolves referenced products at creation time.
// *product.Service satisfies it.
type ProductFinder interface {
	Get(ctx context.Context, id string) (*product.Response, error)
}

// Notifier receives completed operations as fire-and-forget side effects.
// Implementations must absorb their own failures; the service only spawns
// them and never waits.
type Notifier interface {
	OrderCreated(o *Response)
	OrderStatusChanged(o *Response)
}

type Service struct {
	repo     Repository
	products ProductFinder
	notifier Notifier
}

func NewService(repo Repository, products ProductFinder, notifier Notifier) *Service {
	return &Service{repo: repo, products: products, notifier: notifier}
}

func (s *Service) ready() error {
	if s == nil || s.repo == nil {
		return mongodb.ErrUnavailable
	}
	return nil
}

func validateCustomer(c Customer) error {
	if strings.TrimSpace(c.Name) == "" || len(c.Name) > 100 {
		return fmt.Errorf("%w: customer name is required (max 100 characters)", ErrValidation)
	}
	if _, err := mail.ParseAddress(c.Email); err != nil {
		return fmt.Errorf("%w: customer email %q is not valid", ErrValidation, c.Email)
	}
	if len(c.Phone) < 10 || len(c.Phone) > 20 {
		return fmt.Errorf("%w: customer phone must be 10-20 characters", ErrValidation)
	}
	if strings.TrimSpace(c.Address) == "" || len(c.Address) > 500 {
		return fmt.Errorf("%w: customer address is required (max 500 characters)", ErrValidation)
	}
	return nil
}

// Create places a new order. Unit prices always come from the catalog, never
// from the client; the total is computed here and the status forced to
// pending. The notification fan-out runs detached from the request.
func (s *Service) Create(ctx context.Context, in CreateRequest) (*Response, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	if err := validateCustomer(in.Customer); err != nil {
		return nil, err
	}
	if len(in.Items) == 0 {
		return nil, fmt.Errorf("%w: at least one item is required", ErrValidation)
	}

	items := make([]Item, 0, len(in.Items))
	total := decimal.Zero
	for _, it := range in.Items {
		if it.Quantity <= 0 {
			return nil, fmt.Errorf("%w: quantity must be positive for product %s", ErrValidation, it.ProductID)
		}
		p, err := s.products.Get(ctx, it.ProductID)
		if err != nil {
			// product.ErrInvalidID / product.ErrNotFound pass through
			return nil, err
		}
		if !p.Available {
			return nil, fmt.Errorf("%w: product not available: %s", ErrValidation, p.Name)
		}
		price, err := decimal.NewFromString(p.Price)
		if err != nil || !price.IsPositive() {
			return nil, fmt.Errorf("%w: product has invalid price: %s", ErrValidation, it.ProductID)
		}
		items = append(items, Item{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			Price:     price.String(),
		})
		total = total.Add(price.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}

	o := &Order{
		Customer: in.Customer,
		Items:    items,
		Total:    total.String(),
		Status:   StatusPending,
	}
	if err := s.repo.Insert(ctx, o); err != nil {
		return nil, err
	}

	resp := o.Response()
	if s.notifier != nil {
		go s.notifier.OrderCreated(&resp)
	}
	return &resp, nil
}

func (s *Service) Get(ctx context.Context, id string) (*Response, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	if !mongodb.ValidID(id) {
		return nil, ErrInvalidID
	}
	o, err := s.repo.FindByID(ctx, mongodb.MustID(id))
	if err != nil {
		return nil, err
	}
	resp := o.Response()
	return &resp, nil
}

// UpdateStatus sets a new status on an existing order and notifies the
// configured admin chats. Membership in the status enum is validated; any
// enum value can follow any other.
func (s *Service) UpdateStatus(ctx context.Context, id, status string) (*Response, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	if !mongodb.ValidID(id) {
		return nil, ErrInvalidID
	}
	if !ValidStatus(status) {
		return nil, fmt.Errorf("%w: status must be one of: %s", ErrValidation, strings.Join(Statuses, ", "))
	}

	oid := mongodb.MustID(id)
	if err := s.repo.UpdateStatus(ctx, oid, status); err != nil {
		return nil, err
	}
	o, err := s.repo.FindByID(ctx, oid)
	if err != nil {
		return nil, err
	}

	resp := o.Response()
	if s.notifier != nil {
		go s.notifier.OrderStatusChanged(&resp)
	}
	return &resp, nil
}
