package review

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/hossamfarag/boutique-backend/internal/mongodb"
	"github.com/hossamfarag/boutique-backend/internal/product"
)

type stubRepo struct {
	items []*Review
}

func (s *stubRepo) Insert(ctx context.Context, rv *Review) error {
	rv.ID = primitive.NewObjectID()
	rv.CreatedAt = time.Now().UTC().Add(time.Duration(len(s.items)) * time.Millisecond)
	cp := *rv
	s.items = append(s.items, &cp)
	return nil
}

func (s *stubRepo) FindAll(ctx context.Context, limit int) ([]Review, error) {
	out := []Review{}
	// newest first
	for i := len(s.items) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, *s.items[i])
	}
	return out, nil
}

func (s *stubRepo) FindByProduct(ctx context.Context, productID string) ([]Review, error) {
	out := []Review{}
	for i := len(s.items) - 1; i >= 0; i-- {
		if s.items[i].ProductID == productID {
			out = append(out, *s.items[i])
		}
	}
	return out, nil
}

type stubFinder struct{ known map[string]bool }

func (s *stubFinder) Get(ctx context.Context, id string) (*product.Response, error) {
	if !mongodb.ValidID(id) {
		return nil, product.ErrInvalidID
	}
	if !s.known[id] {
		return nil, product.ErrNotFound
	}
	return &product.Response{ID: id, Name: "Amber Oud", Price: "349.9", Available: true}, nil
}

const productID = "507f1f77bcf86cd799439011"

func fixture() (*Service, *stubRepo) {
	repo := &stubRepo{}
	return NewService(repo, &stubFinder{known: map[string]bool{productID: true}}), repo
}

func TestCreate(t *testing.T) {
	svc, _ := fixture()

	got, err := svc.Create(context.Background(), CreateRequest{
		ProductID: productID, Name: " John ", Rating: 5, Comment: "great scent",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if got.ID == "" || got.CreatedAt.IsZero() {
		t.Fatalf("missing generated fields: %+v", got)
	}
	if got.Name != "John" {
		t.Fatalf("name not trimmed: %q", got.Name)
	}
}

func TestCreate_Validation(t *testing.T) {
	svc, repo := fixture()
	cases := []CreateRequest{
		{ProductID: productID, Name: "", Rating: 3},
		{ProductID: productID, Name: "A", Rating: 0},
		{ProductID: productID, Name: "A", Rating: 6},
	}
	for i, in := range cases {
		if _, err := svc.Create(context.Background(), in); !errors.Is(err, ErrValidation) {
			t.Errorf("case %d: want ErrValidation, got %v", i, err)
		}
	}
	if len(repo.items) != 0 {
		t.Fatalf("invalid creates must not persist, found %d", len(repo.items))
	}
}

func TestCreate_ProductChecks(t *testing.T) {
	svc, _ := fixture()

	if _, err := svc.Create(context.Background(), CreateRequest{ProductID: "bad", Name: "A", Rating: 3}); !errors.Is(err, product.ErrInvalidID) {
		t.Fatalf("want product.ErrInvalidID, got %v", err)
	}
	if _, err := svc.Create(context.Background(), CreateRequest{ProductID: "507f1f77bcf86cd799439099", Name: "A", Rating: 3}); !errors.Is(err, product.ErrNotFound) {
		t.Fatalf("want product.ErrNotFound, got %v", err)
	}
}

func TestList(t *testing.T) {
	svc, _ := fixture()
	for i := 0; i < 3; i++ {
		if _, err := svc.Create(context.Background(), CreateRequest{ProductID: productID, Name: "A", Rating: 4}); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	all, err := svc.ListAll(context.Background(), 2)
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("limit ignored: got %d", len(all))
	}

	byProduct, err := svc.ListByProduct(context.Background(), productID)
	if err != nil {
		t.Fatalf("ListByProduct: %v", err)
	}
	if len(byProduct) != 3 {
		t.Fatalf("got %d reviews", len(byProduct))
	}
	for i := 1; i < len(byProduct); i++ {
		if byProduct[i].CreatedAt.After(byProduct[i-1].CreatedAt) {
			t.Fatal("reviews must be newest first")
		}
	}

	if _, err := svc.ListByProduct(context.Background(), "oops"); !errors.Is(err, product.ErrInvalidID) {
		t.Fatalf("want product.ErrInvalidID, got %v", err)
	}
}

func TestService_Unavailable(t *testing.T) {
	svc := NewService(nil, nil)
	if _, err := svc.ListAll(context.Background(), 10); !errors.Is(err, mongodb.ErrUnavailable) {
		t.Fatalf("want ErrUnavailable, got %v", err)
	}
}
