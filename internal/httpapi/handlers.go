package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/aristath/universe-backtest/internal/backtest"
)

type backtestRequest struct {
	Start string `json:"start"` // RFC3339 or 2006-01-02
	End   string `json:"end"`
}

type backtestResponse struct {
	RebalanceDate string                 `json:"rebalance_date"`
	Symbols       []string               `json:"symbols"`
	Weights       backtest.Weights       `json:"weights"`
	DailyReturns  []backtest.DailyReturn `json:"daily_returns"`
}

func (s *Server) handleBacktest(w http.ResponseWriter, r *http.Request) {
	var req backtestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	start, err := parseDate(req.Start)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid start date")
		return
	}
	end, err := parseDate(req.End)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid end date")
		return
	}

	log := s.log.With().Str("request_id", requestIDFrom(r.Context())).Logger()

	result, err := backtest.Run(r.Context(), s.ds, s.cfg, start, end, log)
	switch {
	case errors.Is(err, backtest.ErrNoResult):
		writeError(w, http.StatusUnprocessableEntity, "no result for the given window")
		return
	case err != nil:
		var numErr *backtest.NumericalError
		var cfgErr *backtest.ConfigError
		if errors.As(err, &numErr) || errors.As(err, &cfgErr) {
			log.Error().Err(err).Msg("backtest failed")
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		log.Error().Err(err).Msg("backtest data source error")
		writeError(w, http.StatusBadGateway, "data source error")
		return
	}

	resp := backtestResponse{
		RebalanceDate: result.RebalanceDate.Format("2006-01-02"),
		Symbols:       result.Symbols,
		Weights:       result.Weights,
		DailyReturns:  result.DailyReturns,
	}
	writeJSON(w, http.StatusOK, resp)
}

func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
