package product

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Product is the stored shape of a catalog entry.
type Product struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Name        string             `bson:"name"`
	Description string             `bson:"description,omitempty"`
	// We store price as a string to avoid rounding errors (decimal on the wire)
	Price     string    `bson:"price"`
	Stock     int       `bson:"stock"`
	Available bool      `bson:"available"`
	CreatedAt time.Time `bson:"created_at"`
	UpdatedAt time.Time `bson:"updated_at"`
}

// CreateRequest payload of creation.
// swagger:model CreateProductRequest
type CreateRequest struct {
	Name        string `json:"name"        example:"Amber Oud"`
	Description string `json:"description" example:"Warm amber, 50ml"`
	Price       string `json:"price"       example:"349.90"`
	Stock       int    `json:"stock"       example:"10"`
	// nil means "use the default" (true)
	Available *bool `json:"available,omitempty" example:"true"`
}

// UpdateRequest payload of partial update. Nil fields are left unchanged.
// swagger:model UpdateProductRequest
type UpdateRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Price       *string `json:"price,omitempty"`
	Stock       *int    `json:"stock,omitempty"`
	Available   *bool   `json:"available,omitempty"`
}

// Response is the API-facing shape.
// swagger:model ProductResponse
type Response struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Price       string    `json:"price"`
	Stock       int       `json:"stock"`
	Available   bool      `json:"available"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (p *Product) Response() Response {
	return Response{
		ID:          p.ID.Hex(),
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Stock:       p.Stock,
		Available:   p.Available,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
