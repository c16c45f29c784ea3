package order

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/hossamfarag/boutique-backend/internal/mongodb"
	"github.com/hossamfarag/boutique-backend/internal/product"
)

// ===== stubs =====

type stubRepo struct {
	orders map[primitive.ObjectID]*Order
}

func newStubRepo() *stubRepo {
	return &stubRepo{orders: make(map[primitive.ObjectID]*Order)}
}

func (s *stubRepo) Insert(ctx context.Context, o *Order) error {
	now := time.Now().UTC()
	o.ID = primitive.NewObjectID()
	o.CreatedAt = now
	o.UpdatedAt = now
	cp := *o
	s.orders[o.ID] = &cp
	return nil
}

func (s *stubRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*Order, error) {
	o, ok := s.orders[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *o
	return &cp, nil
}

func (s *stubRepo) UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) error {
	o, ok := s.orders[id]
	if !ok {
		return ErrNotFound
	}
	o.Status = status
	o.UpdatedAt = o.UpdatedAt.Add(time.Millisecond)
	return nil
}

type stubFinder struct {
	products map[string]*product.Response
}

func (s *stubFinder) Get(ctx context.Context, id string) (*product.Response, error) {
	if !mongodb.ValidID(id) {
		return nil, product.ErrInvalidID
	}
	p, ok := s.products[id]
	if !ok {
		return nil, product.ErrNotFound
	}
	return p, nil
}

type stubNotifier struct {
	created chan *Response
	changed chan *Response
}

func newStubNotifier() *stubNotifier {
	return &stubNotifier{
		created: make(chan *Response, 1),
		changed: make(chan *Response, 1),
	}
}

func (s *stubNotifier) OrderCreated(o *Response)       { s.created <- o }
func (s *stubNotifier) OrderStatusChanged(o *Response) { s.changed <- o }

const (
	existingID = "507f1f77bcf86cd799439011"
	absentID   = "507f1f77bcf86cd799439099"
)

func fixture() (*Service, *stubRepo, *stubNotifier) {
	repo := newStubRepo()
	finder := &stubFinder{products: map[string]*product.Response{
		existingID: {ID: existingID, Name: "Amber Oud", Price: "349.9", Stock: 5, Available: true},
	}}
	n := newStubNotifier()
	return NewService(repo, finder, n), repo, n
}

func validCustomer() Customer {
	return Customer{Name: "Alice", Email: "alice@example.com", Phone: "+201234567890", Address: "12 Nile St, Cairo"}
}

func waitNotify(t *testing.T, ch chan *Response) *Response {
	t.Helper()
	select {
	case o := <-ch:
		return o
	case <-time.After(time.Second):
		t.Fatal("notification was not dispatched")
		return nil
	}
}

// ===== tests =====

func TestCreate_ServerSidePricing(t *testing.T) {
	svc, _, n := fixture()

	got, err := svc.Create(context.Background(), CreateRequest{
		Customer: validCustomer(),
		Items:    []CreateItem{{ProductID: existingID, Quantity: 2}},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if got.Status != StatusPending {
		t.Fatalf("status must be forced to pending, got %q", got.Status)
	}
	if got.Items[0].Price != "349.9" {
		t.Fatalf("price must come from the catalog, got %q", got.Items[0].Price)
	}
	if got.Total != "699.8" {
		t.Fatalf("total: got %q, want 699.8", got.Total)
	}
	if !got.CreatedAt.Equal(got.UpdatedAt) {
		t.Fatal("created_at != updated_at on create")
	}

	sent := waitNotify(t, n.created)
	if sent.ID != got.ID {
		t.Fatalf("notifier got order %s, want %s", sent.ID, got.ID)
	}
}

func TestCreate_UnknownOrMalformedProduct(t *testing.T) {
	svc, repo, _ := fixture()

	_, err := svc.Create(context.Background(), CreateRequest{
		Customer: validCustomer(),
		Items:    []CreateItem{{ProductID: absentID, Quantity: 1}},
	})
	if !errors.Is(err, product.ErrNotFound) {
		t.Fatalf("absent product: want product.ErrNotFound, got %v", err)
	}

	_, err = svc.Create(context.Background(), CreateRequest{
		Customer: validCustomer(),
		Items:    []CreateItem{{ProductID: "bogus", Quantity: 1}},
	})
	if !errors.Is(err, product.ErrInvalidID) {
		t.Fatalf("malformed product id: want product.ErrInvalidID, got %v", err)
	}

	if len(repo.orders) != 0 {
		t.Fatalf("failed creates must not persist, found %d", len(repo.orders))
	}
}

func TestCreate_UnavailableProduct(t *testing.T) {
	repo := newStubRepo()
	finder := &stubFinder{products: map[string]*product.Response{
		existingID: {ID: existingID, Name: "Sold Out Musk", Price: "100", Available: false},
	}}
	svc := NewService(repo, finder, nil)

	_, err := svc.Create(context.Background(), CreateRequest{
		Customer: validCustomer(),
		Items:    []CreateItem{{ProductID: existingID, Quantity: 1}},
	})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("want ErrValidation for unavailable product, got %v", err)
	}
}

func TestCreate_Validation(t *testing.T) {
	svc, _, _ := fixture()

	// no items
	if _, err := svc.Create(context.Background(), CreateRequest{Customer: validCustomer()}); !errors.Is(err, ErrValidation) {
		t.Fatalf("no items: want ErrValidation, got %v", err)
	}
	// zero quantity
	if _, err := svc.Create(context.Background(), CreateRequest{
		Customer: validCustomer(),
		Items:    []CreateItem{{ProductID: existingID, Quantity: 0}},
	}); !errors.Is(err, ErrValidation) {
		t.Fatalf("zero quantity: want ErrValidation, got %v", err)
	}
	// broken customer
	bad := validCustomer()
	bad.Email = "not-an-email"
	if _, err := svc.Create(context.Background(), CreateRequest{
		Customer: bad,
		Items:    []CreateItem{{ProductID: existingID, Quantity: 1}},
	}); !errors.Is(err, ErrValidation) {
		t.Fatalf("bad email: want ErrValidation, got %v", err)
	}
}

func TestUpdateStatus(t *testing.T) {
	svc, _, n := fixture()
	created, err := svc.Create(context.Background(), CreateRequest{
		Customer: validCustomer(),
		Items:    []CreateItem{{ProductID: existingID, Quantity: 1}},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	<-n.created

	got, err := svc.UpdateStatus(context.Background(), created.ID, StatusShipped)
	if err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if got.Status != StatusShipped {
		t.Fatalf("status: got %q", got.Status)
	}
	if !got.UpdatedAt.After(got.CreatedAt) {
		t.Fatal("updated_at must advance on status change")
	}
	sent := waitNotify(t, n.changed)
	if sent.Status != StatusShipped {
		t.Fatalf("notifier saw status %q", sent.Status)
	}
}

func TestUpdateStatus_Errors(t *testing.T) {
	svc, _, _ := fixture()

	if _, err := svc.UpdateStatus(context.Background(), "zzz", StatusShipped); !errors.Is(err, ErrInvalidID) {
		t.Fatalf("malformed id: want ErrInvalidID, got %v", err)
	}
	if _, err := svc.UpdateStatus(context.Background(), absentID, StatusShipped); !errors.Is(err, ErrNotFound) {
		t.Fatalf("absent id: want ErrNotFound, got %v", err)
	}
	if _, err := svc.UpdateStatus(context.Background(), absentID, "teleported"); !errors.Is(err, ErrValidation) {
		t.Fatalf("bad status: want ErrValidation, got %v", err)
	}
}

func TestService_Unavailable(t *testing.T) {
	svc := NewService(nil, nil, nil)
	if _, err := svc.Get(context.Background(), existingID); !errors.Is(err, mongodb.ErrUnavailable) {
		t.Fatalf("want ErrUnavailable, got %v", err)
	}
}

func TestValidStatus(t *testing.T) {
	for _, s := range Statuses {
		if !ValidStatus(s) {
			t.Errorf("ValidStatus(%q) = false", s)
		}
	}
	if ValidStatus("Pending") || ValidStatus("") || ValidStatus("lost") {
		t.Error("unexpected statuses accepted")
	}
}
