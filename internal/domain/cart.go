package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Cart is the single per-user cart document. Version backs the
// conditional item-list replacement in the repository; it never
// leaves the process.
type Cart struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitzero"`
	UserID    primitive.ObjectID `bson:"userId" json:"userId"`
	Items     []CartItem         `bson:"items" json:"items"`
	Version   int64              `bson:"version" json:"-"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// CartItem holds one product line. A cart never carries two items
// for the same product; adds for an existing product merge into the
// item's quantity.
type CartItem struct {
	ProductID primitive.ObjectID `bson:"productId" json:"productId"`
	Quantity  int                `bson:"quantity" json:"quantity"`
}

// Item returns the index of the line for productID, or -1.
func (c *Cart) Item(productID primitive.ObjectID) int {
	for i, item := range c.Items {
		if item.ProductID == productID {
			return i
		}
	}
	return -1
}
