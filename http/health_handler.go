package http

import (
	"net/http"

	"loan-amortizer/domain"
	"loan-amortizer/service"
)

type healthResponse struct {
	Status string             `json:"status"`
	Curves []domain.CurveTerm `json:"curves"`
}

// Health reports liveness and which curve tables are loaded.
func Health(curves *service.CurveService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Curves: curves.Terms()})
	}
}
