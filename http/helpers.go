package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"loan-amortizer/domain"
	"loan-amortizer/repository"
)

// maxBodyBytes caps request bodies; a 50 year monthly curve is well below it.
const maxBodyBytes = 1 << 20

func writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		http.Error(w, `{"error":"internal server error"}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	w.Write(data)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeServiceError maps engine and repository errors to a status code.
func writeServiceError(w http.ResponseWriter, err error) {
	var (
		invalid    *domain.InvalidTermsError
		degenerate *domain.DegenerateRateError
		curveErr   *domain.CurveDataError
	)
	switch {
	case errors.As(err, &invalid), errors.As(err, &degenerate):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.As(err, &curveErr):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, repository.ErrCurveNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}
