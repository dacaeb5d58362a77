package model

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
	"time"
)

// LowStockThreshold is the quantity below which an Item is flagged as low in
// stock. The flag is derived at response time and never stored.
const LowStockThreshold = 20

type Item struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	Model     string             `bson:"model" json:"model"`
	Year      int                `bson:"year" json:"year"`
	Quantity  int                `bson:"quantity" json:"quantity"`
	Price     float64            `bson:"price" json:"price"`
	CreatedAt primitive.DateTime `bson:"created_at" json:"-"`
	UpdatedAt primitive.DateTime `bson:"updated_at" json:"-"`
}

func (i Item) LowStock() bool {
	return i.Quantity < LowStockThreshold
}

// UpdateWith replaces every editable attribute with the ones from new, keeping
// identity and creation time.
func (i *Item) UpdateWith(new Item) {
	i.Model = new.Model
	i.Year = new.Year
	i.Quantity = new.Quantity
	i.Price = new.Price
	i.UpdatedAt = primitive.NewDateTimeFromTime(time.Now())
}
