package model

import "go.mongodb.org/mongo-driver/bson/primitive"

// Actions recorded in the history collection. The set is closed, nothing else
// ever produces a HistoryRecord.
const (
	ActionAdded   = "Added"
	ActionEdited  = "Edited"
	ActionDeleted = "Deleted"
)

// HistoryRecord is an append-only audit entry for one Item mutation. Model is
// a denormalized copy so the entry stays meaningful after the Item is deleted.
// Records are never updated or removed by this application.
type HistoryRecord struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Action    string             `bson:"action"`
	Model     string             `bson:"model"`
	Timestamp primitive.DateTime `bson:"timestamp"`
}
