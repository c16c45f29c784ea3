package review

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Review is the stored shape. Reviews are immutable after creation.
type Review struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	ProductID string             `bson:"product_id"`
	Name      string             `bson:"name"`
	Rating    int                `bson:"rating"`
	Comment   string             `bson:"comment,omitempty"`
	CreatedAt time.Time          `bson:"created_at"`
}

// CreateRequest payload of creation.
// swagger:model CreateReviewRequest
type CreateRequest struct {
	ProductID string `json:"product_id" example:"507f1f77bcf86cd799439011"`
	Name      string `json:"name"       example:"John Doe"`
	Rating    int    `json:"rating"     example:"5"`
	Comment   string `json:"comment"    example:"Excellent product!"`
}

// Response is the API-facing shape.
// swagger:model ReviewResponse
type Response struct {
	ID        string    `json:"id"`
	ProductID string    `json:"product_id"`
	Name      string    `json:"name"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func (r *Review) Response() Response {
	return Response{
		ID:        r.ID.Hex(),
		ProductID: r.ProductID,
		Name:      r.Name,
		Rating:    r.Rating,
		Comment:   r.Comment,
		CreatedAt: r.CreatedAt,
	}
}
