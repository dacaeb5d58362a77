package server

import (
	"context"
	"encoding/json"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"inventoryone/internal/database"
	"inventoryone/internal/misc"
	"inventoryone/internal/model"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// numeric accepts both JSON numbers and numeric strings, the mobile client's
// form inputs submit numbers as text.
type numeric float64

func (n *numeric) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "null" {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return errors.Wrapf(err, "invalid numeric value: %s", s)
	}
	*n = numeric(f)
	return nil
}

func (n numeric) wholeNumber() (int, bool) {
	f := float64(n)
	if f != math.Trunc(f) {
		return 0, false
	}
	return int(f), true
}

// itemPayload is the request shape shared by add and update. Pointer fields
// distinguish an absent field from a legitimate zero, so a zero quantity or
// price passes validation while a missing field does not.
type itemPayload struct {
	Model    *string  `json:"model"`
	Year     *numeric `json:"year"`
	Quantity *numeric `json:"quantity"`
	Price    *numeric `json:"price"`
}

func (p itemPayload) toItem() (model.Item, error) {
	var i model.Item
	if p.Model == nil || p.Year == nil || p.Quantity == nil || p.Price == nil {
		return i, errors.New("model, year, quantity and price are all required")
	}
	modelName := strings.TrimSpace(*p.Model)
	if modelName == "" {
		return i, errors.New("model must not be empty")
	}
	year, ok := p.Year.wholeNumber()
	if !ok || year <= 0 {
		return i, errors.New("year must be a positive whole number")
	}
	quantity, ok := p.Quantity.wholeNumber()
	if !ok || quantity < 0 {
		return i, errors.New("quantity must be a non-negative whole number")
	}
	if *p.Price < 0 {
		return i, errors.New("price must not be negative")
	}
	i.Model = modelName
	i.Year = year
	i.Quantity = quantity
	i.Price = float64(*p.Price)
	return i, nil
}

type itemJSON struct {
	ItemID   string  `json:"item_id"`
	Model    string  `json:"model"`
	Year     int     `json:"year"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
	LowStock bool    `json:"low_stock"`
}

func toItemJSON(i model.Item) itemJSON {
	return itemJSON{
		ItemID:   i.ID.Hex(),
		Model:    i.Model,
		Year:     i.Year,
		Quantity: i.Quantity,
		Price:    i.Price,
		LowStock: i.LowStock(),
	}
}

// logHistory appends the audit record for a completed mutation. A failure here
// is logged and never surfaced, the primary write is not rolled back.
func (s Server) logHistory(ctx context.Context, action string, modelName string) {
	h := model.HistoryRecord{
		Action:    action,
		Model:     modelName,
		Timestamp: primitive.NewDateTimeFromTime(time.Now()),
	}
	if err := s.DB.HistoryInsert(ctx, h); err != nil {
		s.Logger.Errorf("logHistory: Error inserting HistoryRecord with action: %s, model: %s, err: %v",
			action, misc.StringLimit(modelName, 45), err)
	}
}

func (s Server) itemAdd() http.HandlerFunc {
	type response struct {
		ItemID string   `json:"item_id"`
		Item   itemJSON `json:"item"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		req := itemPayload{}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			s.Logger.Debugf("itemAdd: Error decoding JSON, err: %v", err)
			http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
			return
		}

		i, err := req.toItem()
		if err != nil {
			s.Logger.Debugf("itemAdd: Invalid item payload, err: %v", err)
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		itemID, err := s.DB.ItemInsert(r.Context(), i)
		if err != nil {
			s.Logger.Errorf("itemAdd: Error inserting Item, err: %v", err)
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
		i.ID, err = primitive.ObjectIDFromHex(itemID)
		if err != nil {
			s.Logger.Errorf("itemAdd: Error creating ObjectID from hex: %s, err: %v", itemID, err)
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}

		s.logHistory(r.Context(), model.ActionAdded, i.Model)

		s.writeJsonResponse(w, response{
			ItemID: itemID,
			Item:   toItemJSON(i),
		}, http.StatusCreated)
	}
}

func (s Server) itemUpdate() http.HandlerFunc {
	type request struct {
		ItemID string `json:"item_id"`
		itemPayload
	}
	type response struct {
		ItemID string   `json:"item_id"`
		Item   itemJSON `json:"item"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		req := request{}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			s.Logger.Debugf("itemUpdate: Error decoding JSON, err: %v", err)
			http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
			return
		}

		newItem, err := req.toItem()
		if err != nil {
			s.Logger.Debugf("itemUpdate: Invalid item payload, err: %v", err)
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		i, err := s.DB.ItemFindOne(r.Context(), req.ItemID)
		if err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) || errors.Is(err, primitive.ErrInvalidHex) {
				s.Logger.Debugf("itemUpdate: No Item found with ID: %s, err: %v", req.ItemID, err)
				http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
				return
			}
			s.Logger.Errorf("itemUpdate: Error finding Item with ID: %s, err: %v", req.ItemID, err)
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}

		i.UpdateWith(newItem)
		if err = s.DB.ItemUpdate(r.Context(), i); err != nil {
			if errors.Is(err, database.ErrNoDocumentsModified) {
				s.Logger.Debugf("itemUpdate: No Item matched with ID: %s, err: %v", req.ItemID, err)
				http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
				return
			}
			s.Logger.Errorf("itemUpdate: Error updating Item with ID: %s, err: %v", req.ItemID, err)
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}

		s.logHistory(r.Context(), model.ActionEdited, i.Model)

		s.writeJsonResponse(w, response{
			ItemID: req.ItemID,
			Item:   toItemJSON(i),
		}, http.StatusOK)
	}
}

func (s Server) itemRemove() http.HandlerFunc {
	type request struct {
		ItemID       string `json:"item_id"`
		ConfirmModel string `json:"confirm_model"`
	}
	type response struct {
		Success bool `json:"success"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		req := request{}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			s.Logger.Debugf("itemRemove: Error decoding JSON, err: %v", err)
			http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
			return
		}

		i, err := s.DB.ItemFindOne(r.Context(), req.ItemID)
		if err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) || errors.Is(err, primitive.ErrInvalidHex) {
				s.Logger.Debugf("itemRemove: No Item found with ID: %s, err: %v", req.ItemID, err)
				http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
				return
			}
			s.Logger.Errorf("itemRemove: Error finding Item with ID: %s, err: %v", req.ItemID, err)
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}

		// The destructive step requires the caller to name the target item,
		// the API equivalent of the confirmation prompt on the client.
		if req.ConfirmModel != i.Model {
			s.Logger.Debugf("itemRemove: Confirmation mismatch for ItemID: %s, got: %s",
				req.ItemID, misc.StringLimit(req.ConfirmModel, 45))
			http.Error(w, "confirmation does not match the item model name", http.StatusBadRequest)
			return
		}

		if err = s.DB.ItemDelete(r.Context(), req.ItemID); err != nil {
			if errors.Is(err, database.ErrNoDocumentsModified) {
				s.Logger.Debugf("itemRemove: No Item deleted with ID: %s, err: %v", req.ItemID, err)
				http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
				return
			}
			s.Logger.Errorf("itemRemove: Error deleting Item with ID: %s, err: %v", req.ItemID, err)
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}

		s.logHistory(r.Context(), model.ActionDeleted, i.Model)

		s.writeJsonResponse(w, response{Success: true}, http.StatusOK)
	}
}

func (s Server) itemGetOne() http.HandlerFunc {
	type response itemJSON
	return func(w http.ResponseWriter, r *http.Request) {
		itemID := mux.Vars(r)["itemID"]
		i, err := s.DB.ItemFindOne(r.Context(), itemID)
		if err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) || errors.Is(err, primitive.ErrInvalidHex) {
				s.Logger.Debugf("itemGetOne: No Item found with ID: %s, err: %v", itemID, err)
				http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
				return
			}
			s.Logger.Errorf("itemGetOne: Error finding Item with ID: %s, err: %v", itemID, err)
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
		s.writeJsonResponse(w, response(toItemJSON(i)), http.StatusOK)
	}
}

// itemGetAll serves both the plain inventory load and the search. An empty
// query returns everything; otherwise the store answers a prefix-range query
// on the model name and the term filter below is the final arbiter. A read
// failure degrades to an empty list instead of an error.
func (s Server) itemGetAll() http.HandlerFunc {
	type response []itemJSON
	return func(w http.ResponseWriter, r *http.Request) {
		query := strings.TrimSpace(r.URL.Query().Get("query"))

		var is []model.Item
		var err error
		if query == "" {
			is, err = s.DB.ItemsFindAll(r.Context())
		} else {
			is, err = s.DB.ItemsFindByModelPrefix(r.Context(), query)
		}
		if err != nil {
			s.Logger.Errorf("itemGetAll: Error getting Items, serving empty list, query: %s, err: %v",
				misc.StringLimit(query, 45), err)
			s.writeJsonResponse(w, response{}, http.StatusOK)
			return
		}

		term := strings.ToLower(query)
		resp := response{}
		for _, i := range is {
			if term != "" && !matchesTerm(i, term) {
				continue
			}
			resp = append(resp, toItemJSON(i))
		}
		s.writeJsonResponse(w, resp, http.StatusOK)
	}
}

// matchesTerm applies the second search stage: the lowercased term must appear
// in the model name, or in the decimal form of year, quantity or price. The
// prefix-range query alone is necessary but not sufficient.
func matchesTerm(i model.Item, term string) bool {
	if strings.Contains(strings.ToLower(i.Model), term) {
		return true
	}
	return strings.Contains(strconv.Itoa(i.Year), term) ||
		strings.Contains(strconv.Itoa(i.Quantity), term) ||
		strings.Contains(strconv.FormatFloat(i.Price, 'f', -1, 64), term)
}
