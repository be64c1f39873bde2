package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	custommiddleware "github.com/svaidyan/Investment-Return-Calculator-Backend/internal/api/middleware"
	"github.com/svaidyan/Investment-Return-Calculator-Backend/internal/testutil"
)

// TestValidateUUIDMiddleware tests UUID gating on parameterized routes.
//
// WHY: The middleware shields every handler under /{uuid} from malformed
// IDs, so handlers can assume the parameter parses.
func TestValidateUUIDMiddleware(t *testing.T) {
	newRouter := func() (http.Handler, *bool) {
		reached := false
		r := chi.NewRouter()
		r.Route("/{uuid}", func(r chi.Router) {
			r.Use(custommiddleware.ValidateUUIDMiddleware)
			r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
				reached = true
				w.WriteHeader(http.StatusOK)
			})
		})
		return r, &reached
	}

	t.Run("passes a valid UUID through", func(t *testing.T) {
		router, reached := newRouter()

		req := httptest.NewRequest(http.MethodGet, "/"+testutil.MakeID()+"/", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}
		if !*reached {
			t.Error("Expected the handler to be reached")
		}
	})

	t.Run("blocks a malformed UUID", func(t *testing.T) {
		router, reached := newRouter()

		req := httptest.NewRequest(http.MethodGet, "/not-a-uuid/", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d: %s", w.Code, w.Body.String())
		}
		if *reached {
			t.Error("Expected the handler not to be reached")
		}
	})
}
