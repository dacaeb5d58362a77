package server

import (
	"inventoryone/internal/report"
	"net/http"
)

// dashboardSummary derives the chart series from the current item list on
// every request. A read failure degrades to empty series.
func (s Server) dashboardSummary() http.HandlerFunc {
	type response report.Summary
	return func(w http.ResponseWriter, r *http.Request) {
		is, err := s.DB.ItemsFindAll(r.Context())
		if err != nil {
			s.Logger.Errorf("dashboardSummary: Error getting Items, serving empty summary, err: %v", err)
			is = nil
		}
		s.writeJsonResponse(w, response(report.Summarize(is)), http.StatusOK)
	}
}
