package database

import (
	"context"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
	"inventoryone/internal/model"
	"time"
)

func (db Database) HistoryInsert(ctx context.Context, h model.HistoryRecord) (err error) {
	_, err = db.Collection(CollectionHistory).InsertOne(ctx, h)
	return errors.Wrapf(err, "error inserting HistoryRecord: %+v", h)
}

// historyDoc decodes the timestamp loosely. Documents written by this
// application carry a BSON datetime, but the collection tolerates raw string
// or numeric values written by other clients.
type historyDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Action    string             `bson:"action"`
	Model     string             `bson:"model"`
	Timestamp interface{}        `bson:"timestamp"`
}

// HistoryFindAll returns every HistoryRecord ordered by timestamp descending,
// with _id descending breaking ties in store-assigned order.
func (db Database) HistoryFindAll(ctx context.Context) ([]model.HistoryRecord, error) {
	var docs []historyDoc
	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}, {Key: "_id", Value: -1}})
	cur, err := db.Collection(CollectionHistory).Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, errors.Wrap(err, "error getting cursor to find all HistoryRecords")
	}
	if err = cur.All(ctx, &docs); err != nil {
		return nil, errors.Wrap(err, "error getting all HistoryRecords from cursor")
	}

	hs := make([]model.HistoryRecord, 0, len(docs))
	for _, d := range docs {
		hs = append(hs, model.HistoryRecord{
			ID:        d.ID,
			Action:    d.Action,
			Model:     d.Model,
			Timestamp: primitive.NewDateTimeFromTime(normalizeTimestamp(d.Timestamp)),
		})
	}
	return hs, nil
}

// normalizeTimestamp converts whatever the store returned into a time.Time.
// BSON datetimes convert directly, raw values are interpreted as RFC 3339
// text or Unix milliseconds.
func normalizeTimestamp(v interface{}) time.Time {
	switch t := v.(type) {
	case primitive.DateTime:
		return t.Time()
	case time.Time:
		return t
	case string:
		parsed, err := time.Parse(time.RFC3339Nano, t)
		if err != nil {
			return time.Time{}
		}
		return parsed
	case int64:
		return time.UnixMilli(t)
	case int32:
		return time.UnixMilli(int64(t))
	case float64:
		return time.UnixMilli(int64(t))
	default:
		return time.Time{}
	}
}
