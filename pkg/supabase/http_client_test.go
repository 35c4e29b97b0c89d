package supabase

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/goliatone/go-restaurant-admin/components/admin"
)

var _ admin.ProcedureCaller = (*HTTPClient)(nil)
var _ admin.ProcedureCaller = (*MockClient)(nil)

func TestHTTPClientCall(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Fatalf("expected POST, got %s", r.Method)
		}
		if r.URL.Path != "/rest/v1/rpc/admin_reservas_hoy" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("apikey"); got != "anon" {
			t.Fatalf("expected apikey header, got %s", got)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer anon" {
			t.Fatalf("expected auth header, got %s", got)
		}
		_, _ = w.Write([]byte(`[{"codigo":"R-1","estado":"confirmada"}]`))
	}))
	t.Cleanup(server.Close)

	client, err := NewHTTPClient(HTTPConfig{BaseURL: server.URL + "/", APIKey: "anon"})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	payload, err := client.Call(context.Background(), admin.ProcTodayReservations)
	if err != nil {
		t.Fatalf("call: %v", err)
	}
	var rows []map[string]any
	if err := json.Unmarshal(payload, &rows); err != nil || len(rows) != 1 {
		t.Fatalf("unexpected payload %s", payload)
	}
}

func TestHTTPClientRemoteErrorIsVerbatim(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"code":"42501","details":null,"hint":null,"message":"permission denied for function admin_clientes_frecuentes"}`))
	}))
	t.Cleanup(server.Close)

	client, err := NewHTTPClient(HTTPConfig{BaseURL: server.URL, APIKey: "anon"})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	_, err = client.Call(context.Background(), admin.ProcFrequentCustomers)
	var remote *RemoteError
	if !errors.As(err, &remote) {
		t.Fatalf("expected remote error, got %v", err)
	}
	if remote.Status != http.StatusForbidden || remote.Code != "42501" {
		t.Fatalf("unexpected remote error %#v", remote)
	}
	if err.Error() != "permission denied for function admin_clientes_frecuentes" {
		t.Fatalf("expected server message, got %q", err.Error())
	}
}

func TestHTTPClientRemoteErrorWithoutJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad gateway", http.StatusBadGateway)
	}))
	t.Cleanup(server.Close)

	client, _ := NewHTTPClient(HTTPConfig{BaseURL: server.URL, APIKey: "anon"})
	_, err := client.Call(context.Background(), admin.ProcFrequentCustomers)
	if err == nil || err.Error() != "supabase: remote error 502: bad gateway" {
		t.Fatalf("unexpected error %v", err)
	}
}

func TestNewHTTPClientValidation(t *testing.T) {
	if _, err := NewHTTPClient(HTTPConfig{APIKey: "x"}); err == nil {
		t.Fatalf("expected base url error")
	}
	if _, err := NewHTTPClient(HTTPConfig{BaseURL: "https://project.supabase.co"}); err == nil {
		t.Fatalf("expected api key error")
	}
}

func TestClientEndToEndThroughAdmin(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`null`))
	}))
	t.Cleanup(server.Close)

	caller, _ := NewHTTPClient(HTTPConfig{BaseURL: server.URL, APIKey: "anon"})
	rows, err := admin.NewClient(caller).PopularZones(context.Background())
	if err != nil {
		t.Fatalf("expected empty result, got %v", err)
	}
	if len(rows) != 0 {
		t.Fatalf("expected no rows, got %d", len(rows))
	}
}
