package rest

import (
	"encoding/json"
	"math"
	"net/http"
	"strconv"
	"strings"
)

// WriteJSONError отправляет JSON-ответ с полем "error" и заданным статусом
func WriteJSONError(w http.ResponseWriter, statusCode int, message string) {
	RespondWithJSON(w, statusCode, ErrorResponse{Error: message})
}

func RespondWithJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(payload)
}

// formInt - целое из формы или значение по умолчанию, если поле пустое или некорректное.
func formInt(r *http.Request, key string, defaultValue int) int {
	v, err := strconv.Atoi(strings.TrimSpace(r.FormValue(key)))
	if err != nil {
		return defaultValue
	}
	return v
}

func formFloat(r *http.Request, key string, defaultValue float64) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(r.FormValue(key)), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return defaultValue
	}
	return v
}

func formString(r *http.Request, key, defaultValue string) string {
	if v := strings.TrimSpace(r.FormValue(key)); v != "" {
		return v
	}
	return defaultValue
}
