// internal/api/handlers_test.go
//
// Handler tests against the full router with a memory store.
//
// Run: go test ./internal/api -v

package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/yanizio/voyago/internal/schema"
	"github.com/yanizio/voyago/internal/site"
	"github.com/yanizio/voyago/internal/store"
	"github.com/yanizio/voyago/internal/tenant"
	"github.com/yanizio/voyago/internal/theme"
)

func newTestServer(t *testing.T) (*Server, http.Handler) {
	t.Helper()
	log := zap.NewNop().Sugar()

	mem := store.NewMemory(schema.Default())
	if err := store.Seed(context.Background(), mem, log); err != nil {
		t.Fatalf("seed: %v", err)
	}

	sites := site.NewRepository(mem)
	resolver := tenant.New(sites, log)
	srv := New(mem, resolver, sites, theme.NewManager(mem), &tenant.Current{}, log)
	return srv, srv.Router()
}

func doJSON(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestInsert_ValidationReturns422WithFields(t *testing.T) {
	_, h := newTestServer(t)

	rr := doJSON(t, h, http.MethodPost, "/api/packages", `{"siteId":"x"}`)
	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rr.Code)
	}

	var body struct {
		Missing []string `json:"missing"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body.Missing) != 2 || body.Missing[0] != "title" || body.Missing[1] != "price" {
		t.Fatalf("missing = %v", body.Missing)
	}
}

func TestInsertThenListAndDelete(t *testing.T) {
	_, h := newTestServer(t)

	rr := doJSON(t, h, http.MethodPost, "/api/bookings",
		`{"customerName":"A","customerEmail":"a@b.com","siteId":"s1"}`)
	if rr.Code != http.StatusCreated {
		t.Fatalf("insert status = %d: %s", rr.Code, rr.Body.String())
	}
	var rec map[string]any
	_ = json.Unmarshal(rr.Body.Bytes(), &rec)
	if rec["status"] != "pending" {
		t.Errorf("default status = %v", rec["status"])
	}
	id, _ := rec["id"].(string)
	if id == "" {
		t.Fatal("no id in response")
	}

	if rr := doJSON(t, h, http.MethodGet, "/api/bookings", ""); rr.Code != http.StatusOK {
		t.Fatalf("list status = %d", rr.Code)
	}

	// Delete twice: both must be 204.
	for i := 0; i < 2; i++ {
		rr := doJSON(t, h, http.MethodDelete, "/api/bookings/"+id, "")
		if rr.Code != http.StatusNoContent {
			t.Fatalf("delete #%d status = %d", i+1, rr.Code)
		}
	}
}

func TestUpdate_MissingIDIs404(t *testing.T) {
	_, h := newTestServer(t)

	rr := doJSON(t, h, http.MethodPatch, "/api/packages/ghost", `{"price":1}`)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rr.Code)
	}
}

func TestSchemaEndpoint(t *testing.T) {
	_, h := newTestServer(t)

	rr := doJSON(t, h, http.MethodGet, "/api/bookings/schema", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	var body struct {
		Required []string       `json:"required"`
		Form     map[string]any `json:"form"`
	}
	_ = json.Unmarshal(rr.Body.Bytes(), &body)
	if len(body.Required) != 3 || body.Form == nil {
		t.Fatalf("schema body = %s", rr.Body.String())
	}

	if rr := doJSON(t, h, http.MethodGet, "/api/nonsense/schema", ""); rr.Code != http.StatusNotFound {
		t.Fatalf("unknown schema status = %d, want 404", rr.Code)
	}
}

func TestCreateSite_ForcedFieldsAndConflicts(t *testing.T) {
	_, h := newTestServer(t)

	rr := doJSON(t, h, http.MethodPost, "/api/sites",
		`{"name":"Foo Travel","slug":"foo","ownerEmail":"o@f.example","status":"inactive"}`)
	if rr.Code != http.StatusCreated {
		t.Fatalf("create status = %d: %s", rr.Code, rr.Body.String())
	}
	var created site.Site
	_ = json.Unmarshal(rr.Body.Bytes(), &created)
	if created.Status != site.StatusActive || created.Theme != theme.Default {
		t.Errorf("forced fields: status=%q theme=%q", created.Status, created.Theme)
	}

	rr = doJSON(t, h, http.MethodPost, "/api/sites",
		`{"name":"Other","slug":"foo","ownerEmail":"x@y.example"}`)
	if rr.Code != http.StatusConflict {
		t.Fatalf("duplicate slug status = %d, want 409", rr.Code)
	}

	rr = doJSON(t, h, http.MethodPost, "/api/sites",
		`{"name":"Sneaky","slug":"admin","ownerEmail":"x@y.example"}`)
	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("reserved slug status = %d, want 422", rr.Code)
	}
}

func TestFront_ThreeWaySplit(t *testing.T) {
	_, h := newTestServer(t)

	// Seeded sample tenant.
	rr := doJSON(t, h, http.MethodGet, "/wanderlust", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("tenant front status = %d", rr.Code)
	}
	var front struct {
		Site  *site.Site   `json:"site"`
		Theme *theme.Theme `json:"theme"`
	}
	_ = json.Unmarshal(rr.Body.Bytes(), &front)
	if front.Site == nil || front.Site.Slug != "wanderlust" || front.Theme == nil {
		t.Fatalf("front body = %s", rr.Body.String())
	}

	// Reserved segment and root: main platform payload.
	for _, path := range []string{"/", "/about", "/admin/anything"} {
		rr := doJSON(t, h, http.MethodGet, path, "")
		if rr.Code != http.StatusOK {
			t.Fatalf("%s status = %d", path, rr.Code)
		}
		if !strings.Contains(rr.Body.String(), `"platform"`) {
			t.Fatalf("%s did not render the platform payload", path)
		}
	}

	// Unknown slug: 404 body, distinct from the main platform.
	rr = doJSON(t, h, http.MethodGet, "/no-such-storefront", "")
	if rr.Code != http.StatusNotFound {
		t.Fatalf("unknown slug status = %d, want 404", rr.Code)
	}

	// Sub-path under a tenant still resolves the tenant, not the
	// reserved second segment.
	rr = doJSON(t, h, http.MethodGet, "/wanderlust/admin", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("/wanderlust/admin status = %d", rr.Code)
	}
}
