package http

import (
	"encoding/json"
	"io"
	"mime"
	"net/http"
	"strconv"

	"loan-amortizer/curve"
	"loan-amortizer/domain"
	"loan-amortizer/service"
)

type CurveHandler struct {
	curves *service.CurveService
}

func NewCurveHandler(curves *service.CurveService) *CurveHandler {
	return &CurveHandler{curves: curves}
}

type rateResponse struct {
	Term   domain.CurveTerm `json:"term"`
	Months float64          `json:"months"`
	Rate   float64          `json:"rate"`
}

// Put replaces the curve table for {term}. The body is a JSON array of
// {"date","rate"} objects, or a CSV or YAML table when sent as text/csv or
// application/yaml.
func (h *CurveHandler) Put(w http.ResponseWriter, r *http.Request) {
	term, ok := curveTerm(w, r)
	if !ok {
		return
	}

	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	points, err := parseCurveBody(r.Header.Get("Content-Type"), body)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	source := r.URL.Query().Get("source")
	if source == "" {
		source = "api"
	}
	snap, err := h.curves.Store(term, points, source)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

// Get returns the snapshot for {term}, or the rate at ?months= when given.
func (h *CurveHandler) Get(w http.ResponseWriter, r *http.Request) {
	term, ok := curveTerm(w, r)
	if !ok {
		return
	}

	v := r.URL.Query().Get("months")
	if v == "" {
		snap, err := h.curves.Load(term)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, snap)
		return
	}

	months, err := strconv.ParseFloat(v, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "months must be a number")
		return
	}
	rate, err := h.curves.RateAt(term, months)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rateResponse{Term: term, Months: months, Rate: rate})
}

// Samples evaluates the curve at ?n= evenly spaced points from month 0 to
// ?to=.
func (h *CurveHandler) Samples(w http.ResponseWriter, r *http.Request) {
	term, ok := curveTerm(w, r)
	if !ok {
		return
	}

	q := r.URL.Query()
	to := float64(service.DefaultSampleMonths)
	if v := q.Get("to"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || f < 0 {
			writeError(w, http.StatusBadRequest, "to must be a non-negative number")
			return
		}
		to = f
	}
	n := min(int(to)+1, service.MaxCurveSamples)
	if v := q.Get("n"); v != "" {
		i, err := strconv.Atoi(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "n must be an integer")
			return
		}
		n = i
	}
	if n < 1 || n > service.MaxCurveSamples {
		writeError(w, http.StatusBadRequest, "n must be between 1 and "+strconv.Itoa(service.MaxCurveSamples))
		return
	}

	samples, err := h.curves.Samples(term, to, n)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, samples)
}

func curveTerm(w http.ResponseWriter, r *http.Request) (domain.CurveTerm, bool) {
	term, err := domain.ParseCurveTerm(r.PathValue("term"))
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return "", false
	}
	return term, true
}

func parseCurveBody(contentType string, body io.Reader) ([]domain.CurvePoint, error) {
	mediaType, _, _ := mime.ParseMediaType(contentType)
	switch mediaType {
	case "text/csv":
		return curve.ParseCSV(body)
	case "application/yaml", "application/x-yaml", "text/yaml":
		return curve.ParseYAML(body)
	}

	var raw []curve.RawPoint
	if err := json.NewDecoder(body).Decode(&raw); err != nil {
		return nil, &domain.CurveDataError{Reason: "invalid request body"}
	}
	return curve.Normalize(raw)
}
