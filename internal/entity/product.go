package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Product references Category and Brand by id; both references are
// resolved against the live collections before a write commits.
type Product struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name        string             `bson:"name" json:"name"`
	CategoryID  primitive.ObjectID `bson:"category" json:"-"`
	BrandID     primitive.ObjectID `bson:"brand" json:"-"`
	Price       float64            `bson:"price" json:"price"`
	Quantity    int                `bson:"quantity" json:"quantity"`
	Images      []string           `bson:"images" json:"images"`
	Description string             `bson:"description" json:"description"`
	CreatedAt   time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updatedAt"`
}
