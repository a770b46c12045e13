package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Product is referenced from scan events but owned by the products
// collection, which is maintained outside this service.
type Product struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Barcode     string             `bson:"barcode" json:"barcode"`
	Name        string             `bson:"name" json:"name"`
	Brand       string             `bson:"brand" json:"brand"`
	Categories  []string           `bson:"categories" json:"categories"`
	Packaging   string             `bson:"packaging" json:"packaging"`
	Bin         string             `bson:"bin" json:"bin"`
	Description string             `bson:"description" json:"description"`
	Image       string             `bson:"image" json:"image"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
}
