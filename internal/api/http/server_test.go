package http

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	nethttp "net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v3"

	"github.com/skmalhotra72/MediBridge24x7-DotCom-Main-App-sub001/config"
	"github.com/skmalhotra72/MediBridge24x7-DotCom-Main-App-sub001/internal/api/http/router"
	"github.com/skmalhotra72/MediBridge24x7-DotCom-Main-App-sub001/internal/tenancy"
)

type countingNotifier struct{ calls int }

func (n *countingNotifier) Name() string { return "test" }

func (n *countingNotifier) Notify(context.Context) error {
	n.calls++
	return nil
}

func newTestApp(t *testing.T, adminToken string, load bool) (*fiber.App, *countingNotifier) {
	t.Helper()

	cfg := &config.Config{}
	cfg.Server.Environment = "development"
	cfg.Server.AdminToken = adminToken

	store := tenancy.NewStore()
	src := tenancy.NewStaticSource(map[string]string{
		"cgh":         "city-general-hospital",
		"demo-clinic": "demo-clinic",
	})
	reloader := tenancy.NewReloader(store, []tenancy.Source{src}, 0, slog.New(slog.NewTextHandler(io.Discard, nil)))
	if load {
		if _, err := reloader.Reload(context.Background()); err != nil {
			t.Fatalf("Reload() error = %v", err)
		}
	}

	resolver, err := tenancy.NewResolver(tenancy.DefaultOptions(), store)
	if err != nil {
		t.Fatalf("NewResolver() error = %v", err)
	}

	notifier := &countingNotifier{}
	app := New(cfg, resolver, nil)
	router.NewRouter(router.Params{
		Cfg:       cfg,
		Store:     store,
		Resolver:  resolver,
		Reloader:  reloader,
		Notifiers: []tenancy.Notifier{notifier},
	}).Register(app)
	return app, notifier
}

func send(t *testing.T, app *fiber.App, req *nethttp.Request) (*nethttp.Response, []byte) {
	t.Helper()
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test(%s %s) error = %v", req.Method, req.URL, err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp, body
}

func TestServerRewritesClinicRoot(t *testing.T) {
	app, _ := newTestApp(t, "", true)

	req := httptest.NewRequest(nethttp.MethodGet, "http://cgh.medibridge24x7.com/", nil)
	req.Header.Set("X-Request-Id", "req-42")
	resp, body := send(t, app, req)
	if resp.StatusCode != nethttp.StatusOK {
		t.Fatalf("status = %d, body %s", resp.StatusCode, body)
	}
	if got := resp.Header.Get("X-Request-Id"); got != "req-42" {
		t.Errorf("X-Request-Id = %q, want req-42", got)
	}

	var env struct {
		Data struct {
			Clinic  tenancy.Tenant `json:"clinic"`
			Routing struct {
				Rewritten    bool   `json:"rewritten"`
				Subdomain    string `json:"subdomain"`
				OriginalPath string `json:"original_path"`
				Reason       string `json:"reason"`
				RequestID    string `json:"request_id"`
			} `json:"routing"`
		} `json:"data"`
	}
	if err := json.Unmarshal(body, &env); err != nil {
		t.Fatalf("decode %s: %v", body, err)
	}
	if env.Data.Clinic.Slug != "city-general-hospital" {
		t.Errorf("clinic slug = %q", env.Data.Clinic.Slug)
	}
	r := env.Data.Routing
	if !r.Rewritten || r.Subdomain != "cgh" || r.OriginalPath != "/" || r.Reason != "root_path" || r.RequestID != "req-42" {
		t.Errorf("routing = %+v", r)
	}
}

func TestServerPassesThroughOtherHosts(t *testing.T) {
	app, _ := newTestApp(t, "", true)

	for _, target := range []string{
		"http://medibridge24x7.com/",
		"http://www.medibridge24x7.com/",
		"http://unknownclinic.medibridge24x7.com/",
	} {
		resp, _ := send(t, app, httptest.NewRequest(nethttp.MethodGet, target, nil))
		// nothing is mounted at / in this service, so pass-through is a 404
		if resp.StatusCode != nethttp.StatusNotFound {
			t.Errorf("GET %s status = %d, want 404", target, resp.StatusCode)
		}
	}
}

func TestServerReadiness(t *testing.T) {
	cold, _ := newTestApp(t, "", false)
	resp, _ := send(t, cold, httptest.NewRequest(nethttp.MethodGet, "/readyz", nil))
	if resp.StatusCode == nethttp.StatusOK {
		t.Error("readyz reported ready before the first registry load")
	}

	warm, _ := newTestApp(t, "", true)
	resp, _ = send(t, warm, httptest.NewRequest(nethttp.MethodGet, "/readyz", nil))
	if resp.StatusCode != nethttp.StatusOK {
		t.Errorf("readyz status = %d after load, want 200", resp.StatusCode)
	}
	resp, _ = send(t, warm, httptest.NewRequest(nethttp.MethodGet, "/livez", nil))
	if resp.StatusCode != nethttp.StatusOK {
		t.Errorf("livez status = %d, want 200", resp.StatusCode)
	}
}

func TestServerAdminRoutes(t *testing.T) {
	disabled, _ := newTestApp(t, "", true)
	resp, _ := send(t, disabled, httptest.NewRequest(nethttp.MethodGet, "/api/v1/tenants", nil))
	if resp.StatusCode != nethttp.StatusNotFound {
		t.Errorf("admin routes without token configured = %d, want 404", resp.StatusCode)
	}

	app, notifier := newTestApp(t, "s3cret", true)

	resp, _ = send(t, app, httptest.NewRequest(nethttp.MethodGet, "/api/v1/tenants", nil))
	if resp.StatusCode != nethttp.StatusUnauthorized {
		t.Errorf("unauthenticated list = %d, want 401", resp.StatusCode)
	}

	req := httptest.NewRequest(nethttp.MethodGet, "/api/v1/tenants", nil)
	req.Header.Set("Authorization", "Bearer s3cret")
	resp, body := send(t, app, req)
	if resp.StatusCode != nethttp.StatusOK {
		t.Fatalf("list status = %d, body %s", resp.StatusCode, body)
	}

	// admin routes live under /api, which is excluded from rewriting even on a clinic host
	req = httptest.NewRequest(nethttp.MethodPost, "http://cgh.medibridge24x7.com/api/v1/tenants/reload", nil)
	req.Header.Set("Authorization", "Bearer s3cret")
	resp, _ = send(t, app, req)
	if resp.StatusCode != nethttp.StatusAccepted {
		t.Errorf("reload status = %d, want 202", resp.StatusCode)
	}
	if notifier.calls != 1 {
		t.Errorf("notifier called %d times, want 1", notifier.calls)
	}
}
