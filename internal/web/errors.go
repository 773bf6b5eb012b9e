package web

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/binkeeper/binkeeper/internal/core"
	"github.com/binkeeper/binkeeper/internal/inventory"
	"github.com/binkeeper/binkeeper/internal/logging"
	"github.com/binkeeper/binkeeper/internal/tabular"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeServiceError translates domain errors into HTTP responses.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var binInUse *core.BinInUseError
	var missingCols *core.MissingColumnsError

	switch {
	case errors.As(err, &binInUse):
		writeJSON(w, http.StatusConflict, map[string]any{
			"error":     binInUse.Error(),
			"itemCount": binInUse.Count,
		})
	case errors.As(err, &missingCols):
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"error":           missingCols.Error(),
			"missingColumns":  missingCols.Missing,
			"unmappedHeaders": missingCols.Unmapped,
		})
	case errors.Is(err, inventory.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, inventory.ErrDuplicateBin),
		errors.Is(err, inventory.ErrAlreadySold),
		errors.Is(err, core.ErrBinsAlreadySeeded):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, core.ErrInvalidInput),
		errors.Is(err, core.ErrEmptyFile),
		errors.Is(err, tabular.ErrUnsupportedFormat):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		logging.FromContext(r.Context()).Error("request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"error", err,
		)
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}
