package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"CryptoBoard/internal/collector"
	"CryptoBoard/internal/dashboard"
	"CryptoBoard/internal/model"
)

func newTestServer(t *testing.T) (*httptest.Server, *dashboard.Controller) {
	t.Helper()
	f := &collector.MockFetcher{Assets: []model.Asset{
		{ID: "bitcoin", Symbol: "btc", Name: "Bitcoin", Price: 110, Sparkline: []float64{100, 105, 110}},
		{ID: "ethereum", Symbol: "eth", Name: "Ethereum", Price: 12, Sparkline: []float64{10, 11, 12}},
	}}
	c := dashboard.NewController(f, dashboard.Options{Location: time.UTC})
	if err := c.Refresh(context.Background()); err != nil {
		t.Fatal(err)
	}
	mux := http.NewServeMux()
	NewHandler(c).Routes(mux)
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv, c
}

func do(t *testing.T, method, url, body string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(method, url, strings.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestGetDashboard(t *testing.T) {
	srv, _ := newTestServer(t)
	resp := do(t, http.MethodGet, srv.URL+"/api/dashboard", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var v model.DashboardView
	if err := json.NewDecoder(resp.Body).Decode(&v); err != nil {
		t.Fatal(err)
	}
	if v.Loading || len(v.Assets) != 2 {
		t.Errorf("unexpected view: loading=%v assets=%d", v.Loading, len(v.Assets))
	}
}

func TestPointerFlow(t *testing.T) {
	srv, _ := newTestServer(t)
	base := srv.URL + "/api/assets/bitcoin/pointer"

	for _, body := range []string{
		`{"type":"down","value":100}`,
		`{"type":"move","value":110}`,
		`{"type":"up"}`,
	} {
		if resp := do(t, http.MethodPost, base, body); resp.StatusCode != http.StatusOK {
			t.Fatalf("%s: expected 200, got %d", body, resp.StatusCode)
		}
	}

	resp := do(t, http.MethodGet, srv.URL+"/api/assets/bitcoin", "")
	var av model.AssetView
	if err := json.NewDecoder(resp.Body).Decode(&av); err != nil {
		t.Fatal(err)
	}
	if av.Selection == nil || av.Selection.GrowthLabel != "10.00" {
		t.Errorf("expected growth 10.00, got %+v", av.Selection)
	}
}

func TestPointerErrors(t *testing.T) {
	srv, _ := newTestServer(t)
	tests := []struct {
		path, body string
		status     int
	}{
		{"/api/assets/dogecoin/pointer", `{"type":"down","value":1}`, http.StatusNotFound},
		{"/api/assets/bitcoin/pointer", `{"type":"down"}`, http.StatusBadRequest},
		{"/api/assets/bitcoin/pointer", `{"type":"wiggle","value":1}`, http.StatusBadRequest},
		{"/api/assets/bitcoin/pointer", `not json`, http.StatusBadRequest},
	}
	for _, tt := range tests {
		resp := do(t, http.MethodPost, srv.URL+tt.path, tt.body)
		if resp.StatusCode != tt.status {
			t.Errorf("%s %s: expected %d, got %d", tt.path, tt.body, tt.status, resp.StatusCode)
		}
	}
}

func TestPutSettings(t *testing.T) {
	srv, c := newTestServer(t)

	resp := do(t, http.MethodPut, srv.URL+"/api/settings", `{"show_rsi":true}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if !c.View().ShowRSI {
		t.Error("show_rsi was not applied")
	}

	resp = do(t, http.MethodPut, srv.URL+"/api/settings", `{"time_frame":"1d"}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if c.View().TimeFrame != model.TimeFrame1D {
		t.Errorf("expected 1D, got %s", c.View().TimeFrame)
	}

	resp = do(t, http.MethodPut, srv.URL+"/api/settings", `{"time_frame":"5Y"}`)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400 for unknown frame, got %d", resp.StatusCode)
	}
}

func TestPutSettings_RejectedRequestChangesNothing(t *testing.T) {
	srv, c := newTestServer(t)
	if c.View().ShowRSI {
		t.Fatal("show_rsi should start off")
	}

	resp := do(t, http.MethodPut, srv.URL+"/api/settings", `{"show_rsi":true,"time_frame":"5Y"}`)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
	v := c.View()
	if v.ShowRSI {
		t.Error("show_rsi must not change when the request is rejected")
	}
	if v.TimeFrame != model.TimeFrame7D {
		t.Errorf("time frame must not change, got %s", v.TimeFrame)
	}
}

func TestFocusAndRefresh(t *testing.T) {
	srv, c := newTestServer(t)

	if resp := do(t, http.MethodPost, srv.URL+"/api/assets/ethereum/focus", ""); resp.StatusCode != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", resp.StatusCode)
	}
	if !c.View().Assets[1].Focused {
		t.Error("ethereum should be focused")
	}

	if resp := do(t, http.MethodPost, srv.URL+"/api/refresh", ""); resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	c.Stop()
	if resp := do(t, http.MethodPost, srv.URL+"/api/refresh", ""); resp.StatusCode != http.StatusServiceUnavailable {
		t.Errorf("expected 503 after stop, got %d", resp.StatusCode)
	}
}

func TestHealth(t *testing.T) {
	srv, _ := newTestServer(t)
	if resp := do(t, http.MethodGet, srv.URL+"/healthz", ""); resp.StatusCode != http.StatusOK {
		t.Errorf("expected 200, got %d", resp.StatusCode)
	}
}
