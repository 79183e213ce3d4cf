package controllers

import (
	"net/http"

	"github.com/angelmondragon/bookhaven-backend/api/responses"
)

type pageResponse struct {
	Page    string         `json:"page"`
	Context map[string]any `json:"context"`
}

// StaticPage serves the empty render context of a content-only page.
func StaticPage(name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, pageResponse{Page: name, Context: map[string]any{}})
	}
}
