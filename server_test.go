package waymark

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func setupTestNav(t *testing.T) {
	t.Helper()

	nav, err := NewNav("testdata", testConfig(t))
	if err != nil {
		t.Fatal(err)
	}

	oldNav, oldWatcher := MainNav, MainWatcher
	MainNav, MainWatcher = nav, nil
	t.Cleanup(func() {
		MainNav, MainWatcher = oldNav, oldWatcher
	})
}

func get(t *testing.T, target string) map[string]interface{} {
	t.Helper()

	req := httptest.NewRequest("GET", target, nil)
	rec := httptest.NewRecorder()
	Handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("GET %s: status %d", target, rec.Code)
	}

	var reply map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &reply); err != nil {
		t.Fatalf("GET %s: %s", target, err)
	}
	return reply
}

func TestServeResolve(t *testing.T) {
	setupTestNav(t)

	reply := get(t, "/resolve?path=/store/items&dir=localized")
	eq(t, "result", reply["result"], "/estoque/itens")
	eq(t, "direction", reply["direction"], "localized")

	reply = get(t, "/resolve?path=/estoque/itens&dir=canonical")
	eq(t, "reverse result", reply["result"], "/store/items")

	reply = get(t, "/resolve?path=/entrar&dir=canonical&compose=1")
	eq(t, "result with compose", reply["result"], "/sign-in")
	eq(t, "composed", reply["composed"], "/auth/sign-in")
}

func TestServeCompose(t *testing.T) {
	setupTestNav(t)

	reply := get(t, "/compose?path=/store/items")
	eq(t, "result", reply["result"], "/app/store/items")
	eq(t, "group", reply["group"], "authenticated")

	reply = get(t, "/compose?path=/sign-in")
	eq(t, "guest result", reply["result"], "/auth/sign-in")
	eq(t, "guest group", reply["group"], "guest")
}

func TestServeTitle(t *testing.T) {
	setupTestNav(t)

	reply := get(t, "/title?path=/store/items")
	eq(t, "title", reply["title"], "Itens")
	eq(t, "declared", reply["declared"], true)

	reply = get(t, "/title?path=/factory/work-orders")
	eq(t, "fallback title", reply["title"], "Work Orders")
	eq(t, "fallback declared", reply["declared"], false)
}

func TestServeNotFound(t *testing.T) {
	setupTestNav(t)

	req := httptest.NewRequest("GET", "/nope", nil)
	rec := httptest.NewRecorder()
	Handler.ServeHTTP(rec, req)
	eq(t, "status", rec.Code, http.StatusNotFound)
}

func TestServeUninitialized(t *testing.T) {
	oldNav, oldWatcher := MainNav, MainWatcher
	MainNav, MainWatcher = nil, nil
	defer func() {
		MainNav, MainWatcher = oldNav, oldWatcher
	}()

	req := httptest.NewRequest("GET", "/resolve?path=/x", nil)
	rec := httptest.NewRecorder()
	Handler.ServeHTTP(rec, req)
	eq(t, "status", rec.Code, http.StatusServiceUnavailable)
}
