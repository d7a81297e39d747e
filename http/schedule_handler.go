package http

import (
	"encoding/json"
	"net/http"

	"loan-amortizer/domain"
	"loan-amortizer/service"
)

type ScheduleHandler struct {
	service *service.ScheduleService
}

func NewScheduleHandler(service *service.ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{service: service}
}

// scheduleView is the response when a column view is requested with
// ?format=simple or ?format=full.
type scheduleView struct {
	ID       string                      `json:"id"`
	Strategy domain.AmortizationStrategy `json:"strategy"`
	Format   domain.OutputFormat         `json:"format"`
	Table    service.Table               `json:"table"`
	Totals   domain.ScheduleTotals       `json:"totals"`
}

func (h *ScheduleHandler) Generate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var format domain.OutputFormat
	if v := r.URL.Query().Get("format"); v != "" {
		f, err := domain.ParseOutputFormat(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		format = f
	}

	var req domain.ScheduleRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	sched, err := h.service.Generate(r.Context(), req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	if format == "" {
		writeJSON(w, http.StatusOK, sched)
		return
	}
	writeJSON(w, http.StatusOK, scheduleView{
		ID:       sched.ID,
		Strategy: sched.Strategy,
		Format:   format,
		Table:    service.Tabulate(sched, format),
		Totals:   sched.Totals,
	})
}
