package server

import (
	"context"
	"github.com/lestrrat-go/jwx/v2/jwk"
	"inventoryone/internal/model"
)

type Server struct {
	DB            store
	Logger        logger
	AuthSecretKey jwk.Key
}

type logger interface {
	Debug(v ...any)
	Info(v ...any)
	Error(v ...any)
	Tracef(format string, v ...any)
	Debugf(format string, v ...any)
	Infof(format string, v ...any)
	Errorf(format string, v ...any)
}

// store is the slice of the database layer the handlers consume. Handler tests
// substitute an in-memory implementation.
type store interface {
	ItemInsert(ctx context.Context, i model.Item) (string, error)
	ItemUpdate(ctx context.Context, i model.Item) error
	ItemDelete(ctx context.Context, itemID string) error
	ItemFindOne(ctx context.Context, itemID string) (model.Item, error)
	ItemsFindAll(ctx context.Context) ([]model.Item, error)
	ItemsFindByModelPrefix(ctx context.Context, prefix string) ([]model.Item, error)
	HistoryInsert(ctx context.Context, h model.HistoryRecord) error
	HistoryFindAll(ctx context.Context) ([]model.HistoryRecord, error)
	UserInsert(ctx context.Context, u model.User) (string, error)
	UserFindByEmail(ctx context.Context, email string) (model.User, error)
	UserFindByID(ctx context.Context, id string) (model.User, error)
	UserDeviceAdd(ctx context.Context, userID string, d model.Device) error
	UserDeviceUpdate(ctx context.Context, userID string, d model.Device) error
	UserDeviceLastSeenUpdate(ctx context.Context, userID string, deviceID string) error
	UserDeviceTokenRemove(ctx context.Context, userID string, deviceID string) error
}
