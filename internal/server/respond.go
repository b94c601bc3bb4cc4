package server

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// respondJSON は指定したステータスコードで JSON を返します。
func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("JSONレスポンスのエンコードに失敗しました", "error", err)
	}
}

type errorResponse struct {
	Status string `json:"status"`
	Error  string `json:"error"`
}

// respondError は状態とエラーメッセージを JSON で返します。
func respondError(w http.ResponseWriter, status int, state, message string) {
	respondJSON(w, status, errorResponse{Status: state, Error: message})
}
