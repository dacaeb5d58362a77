package server

import (
	"net/http"
	"time"
)

// historyGetAll serves the audit trail, newest first. An empty trail is a
// first-class empty list, and so is a store read failure.
func (s Server) historyGetAll() http.HandlerFunc {
	type historyEntry struct {
		HistoryID string    `json:"history_id"`
		Action    string    `json:"action"`
		Model     string    `json:"model"`
		Timestamp time.Time `json:"timestamp"`
	}
	type response []historyEntry
	return func(w http.ResponseWriter, r *http.Request) {
		hs, err := s.DB.HistoryFindAll(r.Context())
		if err != nil {
			s.Logger.Errorf("historyGetAll: Error getting HistoryRecords, serving empty history, err: %v", err)
			s.writeJsonResponse(w, response{}, http.StatusOK)
			return
		}

		resp := response{}
		for _, h := range hs {
			resp = append(resp, historyEntry{
				HistoryID: h.ID.Hex(),
				Action:    h.Action,
				Model:     h.Model,
				Timestamp: h.Timestamp.Time().UTC(),
			})
		}
		s.writeJsonResponse(w, resp, http.StatusOK)
	}
}
