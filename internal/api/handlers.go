// internal/api/handlers.go
//
// JSON handlers for the admin CRUD surface and the public front.
//
// Error mapping
// -------------
//   store.ValidationError → 422 with the missing field names
//   store.NotFoundError   → 404
//   store.StorageError    → 503 (transient; clients may retry)
//   site.ErrSlugTaken     → 409
//   site.ErrReservedSlug  → 422
//   tenant.ErrNotFound    → 404 on the public front
package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/yanizio/voyago/internal/form"
	"github.com/yanizio/voyago/internal/site"
	"github.com/yanizio/voyago/internal/store"
	"github.com/yanizio/voyago/internal/tenant"
)

type errorBody struct {
	Error   string   `json:"error"`
	Missing []string `json:"missing,omitempty"`
}

func respond(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

func fail(w http.ResponseWriter, code int, msg string) {
	respond(w, code, errorBody{Error: msg})
}

// failStore translates store errors to status codes; returns false when
// err was nil and nothing was written.
func failStore(w http.ResponseWriter, err error) bool {
	if err == nil {
		return false
	}
	var verr *store.ValidationError
	var nferr *store.NotFoundError
	var serr *store.StorageError
	switch {
	case errors.As(err, &verr):
		respond(w, http.StatusUnprocessableEntity, errorBody{
			Error:   "missing required fields",
			Missing: verr.Missing,
		})
	case errors.As(err, &nferr):
		fail(w, http.StatusNotFound, nferr.Error())
	case errors.As(err, &serr):
		fail(w, http.StatusServiceUnavailable, "storage unavailable")
	default:
		fail(w, http.StatusInternalServerError, "internal error")
	}
	return true
}

func decodeBody(w http.ResponseWriter, r *http.Request) (map[string]any, bool) {
	var body map[string]any
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		fail(w, http.StatusBadRequest, "malformed JSON body")
		return nil, false
	}
	return body, true
}

/*──────────────────────────── collection CRUD ─────────────────────────────*/

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	collection := chi.URLParam(r, "collection")
	rows, err := s.store.List(r.Context(), collection)
	if failStore(w, err) {
		return
	}
	respond(w, http.StatusOK, rows)
}

func (s *Server) handleInsert(w http.ResponseWriter, r *http.Request) {
	collection := chi.URLParam(r, "collection")
	body, ok := decodeBody(w, r)
	if !ok {
		return
	}
	rec, err := s.store.Insert(r.Context(), collection, body)
	if failStore(w, err) {
		return
	}
	respond(w, http.StatusCreated, rec)
}

func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request) {
	collection := chi.URLParam(r, "collection")
	id := chi.URLParam(r, "id")
	body, ok := decodeBody(w, r)
	if !ok {
		return
	}
	rec, err := s.store.Update(r.Context(), collection, id, body)
	if failStore(w, err) {
		return
	}
	respond(w, http.StatusOK, rec)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	collection := chi.URLParam(r, "collection")
	id := chi.URLParam(r, "id")
	if failStore(w, s.store.Delete(r.Context(), collection, id)) {
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSchema(w http.ResponseWriter, r *http.Request) {
	collection := chi.URLParam(r, "collection")
	sch, ok := s.store.Schema(collection)
	if !ok {
		fail(w, http.StatusNotFound, "unknown collection")
		return
	}
	respond(w, http.StatusOK, map[string]any{
		"collection": collection,
		"required":   sch.Required,
		"types":      sch.Types,
		"defaults":   sch.Defaults,
		"form":       form.FromSchema(collection, sch),
	})
}

/*──────────────────────────── site life-cycle ─────────────────────────────*/

func failSite(w http.ResponseWriter, err error) bool {
	switch {
	case err == nil:
		return false
	case errors.Is(err, site.ErrSlugTaken):
		fail(w, http.StatusConflict, err.Error())
	case errors.Is(err, site.ErrReservedSlug):
		fail(w, http.StatusUnprocessableEntity, err.Error())
	default:
		return failStore(w, err)
	}
	return true
}

func (s *Server) handleCreateSite(w http.ResponseWriter, r *http.Request) {
	body, ok := decodeBody(w, r)
	if !ok {
		return
	}
	created, err := s.resolver.CreateTenant(r.Context(), body)
	if failSite(w, err) {
		return
	}
	respond(w, http.StatusCreated, created)
}

func (s *Server) handleUpdateSite(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	body, ok := decodeBody(w, r)
	if !ok {
		return
	}
	updated, err := s.resolver.UpdateTenant(r.Context(), id, body)
	if failSite(w, err) {
		return
	}
	respond(w, http.StatusOK, updated)
}

/*──────────────────────────── public front ────────────────────────────────*/

// handleFront serves everything the API routes do not: the main platform
// payload on the root and reserved segments, a storefront payload on
// tenant slugs, and a 404 body when a slug resolves to nothing.
func (s *Server) handleFront(w http.ResponseWriter, r *http.Request) {
	res := tenant.ResolutionFrom(r.Context())

	if res.Err != nil {
		if errors.Is(res.Err, tenant.ErrNotFound) {
			fail(w, http.StatusNotFound, "tenant not found or inactive")
			return
		}
		failStore(w, res.Err)
		return
	}

	if res.Site == nil {
		sites, err := s.sites.AllActive(r.Context())
		if failStore(w, err) {
			return
		}
		respond(w, http.StatusOK, map[string]any{
			"platform": "voyago",
			"sites":    sites,
		})
		return
	}

	th, err := s.themes.ByName(r.Context(), res.Site.Theme)
	if failStore(w, err) {
		return
	}
	respond(w, http.StatusOK, map[string]any{
		"site":  res.Site,
		"theme": th,
	})
}
