package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Category gender values shown in the storefront navigation.
const (
	CategoryGenderMen   = "Men"
	CategoryGenderWomen = "Women"
	CategoryGenderKids  = "Kids"
)

// Category uniqueness is (name, gender): "Shoes" can exist once per
// gender section.
type Category struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description" json:"description"`
	Gender      string             `bson:"gender" json:"gender"`
	CreatedAt   time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updatedAt"`
}
