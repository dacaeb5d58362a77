package database

import (
	"context"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"inventoryone/internal/model"
	"time"
)

// modelPrefixUpperBound closes the prefix range at the highest code point the
// store will sort after any name starting with the prefix.
const modelPrefixUpperBound = "\uf8ff"

func (db Database) ItemInsert(ctx context.Context, i model.Item) (id string, err error) {
	i.CreatedAt = primitive.NewDateTimeFromTime(time.Now())
	i.UpdatedAt = primitive.NewDateTimeFromTime(time.Now())
	r, err := db.Collection(CollectionItems).InsertOne(ctx, i)
	if err != nil {
		return "", errors.Wrapf(err, "error inserting Item: %+v", i)
	}
	return r.InsertedID.(primitive.ObjectID).Hex(), nil
}

func (db Database) ItemUpdate(ctx context.Context, i model.Item) error {
	res, err := db.Collection(CollectionItems).UpdateOne(
		ctx,
		bson.M{"_id": i.ID},
		bson.M{"$set": bson.M{
			"model":      i.Model,
			"year":       i.Year,
			"quantity":   i.Quantity,
			"price":      i.Price,
			"updated_at": primitive.NewDateTimeFromTime(time.Now()),
		}},
	)
	if err != nil {
		return errors.Wrapf(err, "error updating Item with ID: %s", i.ID.Hex())
	}
	if res.MatchedCount == 0 {
		return errors.Wrapf(ErrNoDocumentsModified, "no Item matched when updating Item with ID: %s", i.ID.Hex())
	}
	return nil
}

func (db Database) ItemDelete(ctx context.Context, itemID string) error {
	objID, err := primitive.ObjectIDFromHex(itemID)
	if err != nil {
		return errors.Wrapf(err, "error creating ObjectID from hex: %s", itemID)
	}
	res, err := db.Collection(CollectionItems).DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		return errors.Wrapf(err, "error deleting Item with ID: %s", itemID)
	}
	if res.DeletedCount == 0 {
		return errors.Wrapf(ErrNoDocumentsModified, "no Item deleted for ID: %s", itemID)
	}
	return nil
}

func (db Database) ItemFindOne(ctx context.Context, itemID string) (model.Item, error) {
	var i model.Item
	objID, err := primitive.ObjectIDFromHex(itemID)
	if err != nil {
		return i, errors.Wrapf(err, "error creating ObjectID from hex: %s", itemID)
	}
	err = db.Collection(CollectionItems).FindOne(ctx, bson.M{"_id": objID}).Decode(&i)
	return i, errors.Wrapf(err, "error finding Item with ID: %s", itemID)
}

func (db Database) ItemsFindAll(ctx context.Context) ([]model.Item, error) {
	var is []model.Item
	cur, err := db.Collection(CollectionItems).Find(ctx, bson.M{})
	if err != nil {
		return nil, errors.Wrap(err, "error getting cursor to find all Items")
	}
	if err = cur.All(ctx, &is); err != nil {
		return nil, errors.Wrap(err, "error getting all Items from cursor")
	}
	return is, nil
}

// ItemsFindByModelPrefix returns Items whose model name sorts inside
// [prefix, prefix+max-codepoint]. The range match is necessary but not
// sufficient, callers apply the final term filter themselves.
func (db Database) ItemsFindByModelPrefix(ctx context.Context, prefix string) ([]model.Item, error) {
	var is []model.Item
	cur, err := db.Collection(CollectionItems).Find(ctx, bson.M{
		"model": bson.M{
			"$gte": prefix,
			"$lte": prefix + modelPrefixUpperBound,
		},
	})
	if err != nil {
		return nil, errors.Wrapf(err, "error getting cursor to find Items with model prefix: %s", prefix)
	}
	if err = cur.All(ctx, &is); err != nil {
		return nil, errors.Wrapf(err, "error getting Items from cursor with model prefix: %s", prefix)
	}
	return is, nil
}
