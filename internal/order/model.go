package order

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Order statuses. Any of these can be set from any current status; the
// enum membership is enforced, a transition graph is not.
const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusShipped   = "shipped"
	StatusDelivered = "delivered"
	StatusCancelled = "cancelled"
)

var Statuses = []string{StatusPending, StatusConfirmed, StatusShipped, StatusDelivered, StatusCancelled}

func ValidStatus(s string) bool {
	for _, v := range Statuses {
		if s == v {
			return true
		}
	}
	return false
}

type Customer struct {
	Name    string `bson:"name" json:"name"`
	Email   string `bson:"email" json:"email"`
	Phone   string `bson:"phone" json:"phone"`
	Address string `bson:"address" json:"address"`
}

// Item is a stored order line; price is fetched server-side at creation time.
type Item struct {
	ProductID string `bson:"product_id" json:"product_id"`
	Quantity  int    `bson:"quantity" json:"quantity"`
	Price     string `bson:"price" json:"price"`
}

// Order is the stored shape.
type Order struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Customer  Customer           `bson:"customer"`
	Items     []Item             `bson:"items"`
	Total     string             `bson:"total"`
	Status    string             `bson:"status"`
	CreatedAt time.Time          `bson:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at"`
}

// Response is the API-facing shape.
// swagger:model OrderResponse
type Response struct {
	ID        string    `json:"id"`
	Customer  Customer  `json:"customer"`
	Items     []Item    `json:"items"`
	Total     string    `json:"total"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (o *Order) Response() Response {
	return Response{
		ID:        o.ID.Hex(),
		Customer:  o.Customer,
		Items:     o.Items,
		Total:     o.Total,
		Status:    o.Status,
		CreatedAt: o.CreatedAt,
		UpdatedAt: o.UpdatedAt,
	}
}
