package server

import (
	"context"
	"io"
	"sort"
	"sync"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"inventoryone/internal/database"
	ilogger "inventoryone/internal/logger"
	"inventoryone/internal/model"
)

var errMockRead = errors.New("mock store read failure")

// mockStore is an in-memory store implementation for handler tests.
type mockStore struct {
	mu          sync.Mutex
	items       []model.Item
	history     []model.HistoryRecord
	users       []model.User
	failReads   bool
	failHistory bool
}

func newTestServer(ms *mockStore) Server {
	return Server{
		DB:     ms,
		Logger: ilogger.NewLogger(ilogger.LevelOff, io.Discard),
	}
}

func (m *mockStore) ItemInsert(ctx context.Context, i model.Item) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	i.ID = primitive.NewObjectID()
	i.CreatedAt = primitive.NewDateTimeFromTime(time.Now())
	i.UpdatedAt = i.CreatedAt
	m.items = append(m.items, i)
	return i.ID.Hex(), nil
}

func (m *mockStore) ItemUpdate(ctx context.Context, i model.Item) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for n := range m.items {
		if m.items[n].ID == i.ID {
			m.items[n] = i
			return nil
		}
	}
	return errors.Wrapf(database.ErrNoDocumentsModified, "no Item matched with ID: %s", i.ID.Hex())
}

func (m *mockStore) ItemDelete(ctx context.Context, itemID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	objID, err := primitive.ObjectIDFromHex(itemID)
	if err != nil {
		return errors.Wrapf(err, "bad hex: %s", itemID)
	}
	for n := range m.items {
		if m.items[n].ID == objID {
			m.items = append(m.items[:n], m.items[n+1:]...)
			return nil
		}
	}
	return errors.Wrapf(database.ErrNoDocumentsModified, "no Item deleted for ID: %s", itemID)
}

func (m *mockStore) ItemFindOne(ctx context.Context, itemID string) (model.Item, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var i model.Item
	objID, err := primitive.ObjectIDFromHex(itemID)
	if err != nil {
		return i, errors.Wrapf(err, "bad hex: %s", itemID)
	}
	for _, it := range m.items {
		if it.ID == objID {
			return it, nil
		}
	}
	return i, errors.Wrapf(mongo.ErrNoDocuments, "no Item with ID: %s", itemID)
}

func (m *mockStore) ItemsFindAll(ctx context.Context) ([]model.Item, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failReads {
		return nil, errMockRead
	}
	return append([]model.Item{}, m.items...), nil
}

func (m *mockStore) ItemsFindByModelPrefix(ctx context.Context, prefix string) ([]model.Item, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failReads {
		return nil, errMockRead
	}
	var is []model.Item
	for _, i := range m.items {
		if i.Model >= prefix && i.Model <= prefix+"\uf8ff" {
			is = append(is, i)
		}
	}
	return is, nil
}

func (m *mockStore) HistoryInsert(ctx context.Context, h model.HistoryRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failHistory {
		return errors.New("mock store history write failure")
	}
	h.ID = primitive.NewObjectID()
	m.history = append(m.history, h)
	return nil
}

func (m *mockStore) HistoryFindAll(ctx context.Context) ([]model.HistoryRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failReads {
		return nil, errMockRead
	}
	hs := append([]model.HistoryRecord{}, m.history...)
	sort.SliceStable(hs, func(a, b int) bool {
		if hs[a].Timestamp != hs[b].Timestamp {
			return hs[a].Timestamp > hs[b].Timestamp
		}
		return hs[a].ID.Hex() > hs[b].ID.Hex()
	})
	return hs, nil
}

func (m *mockStore) UserInsert(ctx context.Context, u model.User) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u.ID = primitive.NewObjectID()
	m.users = append(m.users, u)
	return u.ID.Hex(), nil
}

func (m *mockStore) UserFindByEmail(ctx context.Context, email string) (model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return model.User{}, errors.Wrapf(mongo.ErrNoDocuments, "no User with email: %s", email)
}

func (m *mockStore) UserFindByID(ctx context.Context, id string) (model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return model.User{}, errors.Wrapf(err, "bad hex: %s", id)
	}
	for _, u := range m.users {
		if u.ID == objID {
			return u, nil
		}
	}
	return model.User{}, errors.Wrapf(mongo.ErrNoDocuments, "no User with ID: %s", id)
}

func (m *mockStore) UserDeviceAdd(ctx context.Context, userID string, d model.Device) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	objID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return errors.Wrapf(err, "bad hex: %s", userID)
	}
	for n := range m.users {
		if m.users[n].ID == objID {
			m.users[n].Devices = append(m.users[n].Devices, d)
			return nil
		}
	}
	return errors.Wrapf(database.ErrNoDocumentsModified, "no User with ID: %s", userID)
}

func (m *mockStore) UserDeviceUpdate(ctx context.Context, userID string, d model.Device) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	objID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return errors.Wrapf(err, "bad hex: %s", userID)
	}
	for n := range m.users {
		if m.users[n].ID != objID {
			continue
		}
		for dn := range m.users[n].Devices {
			if m.users[n].Devices[dn].DeviceID == d.DeviceID {
				m.users[n].Devices[dn] = d
				return nil
			}
		}
	}
	return errors.Wrapf(database.ErrNoDocumentsModified, "no Device %s on User with ID: %s", d.DeviceID, userID)
}

func (m *mockStore) UserDeviceLastSeenUpdate(ctx context.Context, userID string, deviceID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	objID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return errors.Wrapf(err, "bad hex: %s", userID)
	}
	for n := range m.users {
		if m.users[n].ID != objID {
			continue
		}
		for dn := range m.users[n].Devices {
			if m.users[n].Devices[dn].DeviceID == deviceID {
				m.users[n].Devices[dn].LastSeen = primitive.NewDateTimeFromTime(time.Now())
				return nil
			}
		}
	}
	return errors.Wrapf(database.ErrNoDocumentsModified, "no Device %s on User with ID: %s", deviceID, userID)
}

func (m *mockStore) UserDeviceTokenRemove(ctx context.Context, userID string, deviceID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	objID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return errors.Wrapf(err, "bad hex: %s", userID)
	}
	for n := range m.users {
		if m.users[n].ID != objID {
			continue
		}
		for dn := range m.users[n].Devices {
			if m.users[n].Devices[dn].DeviceID == deviceID {
				m.users[n].Devices[dn].LoginToken = model.LoginToken{}
				return nil
			}
		}
	}
	return errors.Wrapf(database.ErrNoDocumentsModified, "no Device %s on User with ID: %s", deviceID, userID)
}
