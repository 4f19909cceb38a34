package controllers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/Omthube23/fastapi-elk-project/models"
	"github.com/Omthube23/fastapi-elk-project/services"
	"go.uber.org/zap/zapcore"
)

func decodeItem(t *testing.T, raw []byte) models.Item {
	t.Helper()
	var item models.Item
	if err := json.Unmarshal(raw, &item); err != nil {
		t.Fatalf("not an item: %q", raw)
	}
	return item
}

func TestCreateItem(t *testing.T) {
	s := newTestServer(t, services.NewMemoryStore())

	w := s.do(t, http.MethodPost, "/items/", `{"name":"Widget","price":9.99,"quantity":5}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	body := decode(t, w)
	if v, ok := body["description"]; !ok || v != nil {
		t.Errorf("description = %v (present %v), want explicit null", v, ok)
	}
	if _, ok := body["created_at"]; !ok {
		t.Error("created_at missing")
	}

	item := decodeItem(t, w.Body.Bytes())
	if item.ID != 1 || item.Name != "Widget" || item.Price != 9.99 || item.Quantity != 5 {
		t.Errorf("item = %+v", item)
	}
}

func TestCreateItemAcceptsZeroValues(t *testing.T) {
	s := newTestServer(t, services.NewMemoryStore())

	w := s.do(t, http.MethodPost, "/items/", `{"name":"Free","description":"sample","price":0,"quantity":0}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	item := decodeItem(t, w.Body.Bytes())
	if item.Description == nil || *item.Description != "sample" {
		t.Errorf("description = %v", item.Description)
	}
}

func TestCreateItemValidation(t *testing.T) {
	s := newTestServer(t, services.NewMemoryStore())

	bodies := map[string]string{
		"missing name":     `{"price":1,"quantity":1}`,
		"empty name":       `{"name":"","price":1,"quantity":1}`,
		"missing price":    `{"name":"a","quantity":1}`,
		"missing quantity": `{"name":"a","price":1}`,
		"wrong type":       `{"name":"a","price":"cheap","quantity":1}`,
		"malformed":        `{"name":`,
	}
	for name, body := range bodies {
		t.Run(name, func(t *testing.T) {
			w := s.do(t, http.MethodPost, "/items/", body)
			if w.Code != http.StatusUnprocessableEntity {
				t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
			}
			if _, ok := decode(t, w)["detail"]; !ok {
				t.Errorf("no detail in %s", w.Body.String())
			}
		})
	}

	w := s.do(t, http.MethodGet, "/items/", "")
	if decode(t, w)["count"] != float64(0) {
		t.Errorf("rejected payloads reached the store: %s", w.Body.String())
	}
}

func TestListItems(t *testing.T) {
	s := newTestServer(t, services.NewMemoryStore())

	w := s.do(t, http.MethodGet, "/items/", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if got := w.Body.String(); got != `{"count":0,"items":[]}` {
		t.Errorf("empty list body = %s", got)
	}

	for _, name := range []string{"a", "b", "c"} {
		s.do(t, http.MethodPost, "/items/", `{"name":"`+name+`","price":1,"quantity":1}`)
	}

	var list struct {
		Items []models.Item `json:"items"`
		Count int           `json:"count"`
	}
	w = s.do(t, http.MethodGet, "/items/", "")
	if err := json.Unmarshal(w.Body.Bytes(), &list); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if list.Count != 3 || len(list.Items) != 3 {
		t.Fatalf("list = %+v", list)
	}
	for i, want := range []string{"a", "b", "c"} {
		if list.Items[i].Name != want || list.Items[i].ID != uint(i+1) {
			t.Errorf("items[%d] = %+v", i, list.Items[i])
		}
	}
}

func TestGetItem(t *testing.T) {
	for name, store := range storeBackends(t) {
		t.Run(name, func(t *testing.T) {
			s := newTestServer(t, store)

			created := decodeItem(t, s.do(t, http.MethodPost, "/items/", `{"name":"Widget","price":9.99,"quantity":5}`).Body.Bytes())
			w := s.do(t, http.MethodGet, "/items/1", "")
			if w.Code != http.StatusOK {
				t.Fatalf("status = %d", w.Code)
			}
			got := decodeItem(t, w.Body.Bytes())
			if got.ID != created.ID || got.Name != created.Name || got.Price != created.Price ||
				got.Quantity != created.Quantity || got.Description != nil || !got.CreatedAt.Equal(created.CreatedAt) {
				t.Errorf("get = %+v, create returned %+v", got, created)
			}
		})
	}
}

func TestGetItemNotFound(t *testing.T) {
	s := newTestServer(t, services.NewMemoryStore())

	w := s.do(t, http.MethodGet, "/items/999", "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d", w.Code)
	}
	if got := w.Body.String(); got != `{"detail":"Item not found"}` {
		t.Errorf("body = %s", got)
	}
	entries := s.logs.FilterMessage("Item not found").All()
	if len(entries) != 1 || entries[0].Level != zapcore.WarnLevel {
		t.Errorf("not-found entries = %v, want one warning", entries)
	}
}

func TestInvalidItemID(t *testing.T) {
	s := newTestServer(t, services.NewMemoryStore())

	for _, method := range []string{http.MethodGet, http.MethodDelete} {
		for _, path := range []string{"/items/abc", "/items/1.5", "/items/one"} {
			w := s.do(t, method, path, "")
			if w.Code != http.StatusUnprocessableEntity {
				t.Errorf("%s %s: status = %d", method, path, w.Code)
			}
		}
	}
}

func TestUnmatchedIntegerIDsAreNotFound(t *testing.T) {
	s := newTestServer(t, services.NewMemoryStore())
	s.do(t, http.MethodPost, "/items/", `{"name":"keep","price":1,"quantity":1}`)

	paths := []string{"/items/0", "/items/-1", "/items/4294967296", "/items/99999999999999999999"}
	for _, method := range []string{http.MethodGet, http.MethodDelete} {
		for _, path := range paths {
			w := s.do(t, method, path, "")
			if w.Code != http.StatusNotFound {
				t.Errorf("%s %s: status = %d", method, path, w.Code)
				continue
			}
			if got := w.Body.String(); got != `{"detail":"Item not found"}` {
				t.Errorf("%s %s: body = %s", method, path, got)
			}
		}
	}

	w := s.do(t, http.MethodGet, "/items/", "")
	if decode(t, w)["count"] != float64(1) {
		t.Errorf("store changed: %s", w.Body.String())
	}
}

func TestDeleteItem(t *testing.T) {
	for name, store := range storeBackends(t) {
		t.Run(name, func(t *testing.T) {
			s := newTestServer(t, store)
			s.do(t, http.MethodPost, "/items/", `{"name":"Widget","price":9.99,"quantity":5}`)
			// Warm the cache so the delete has something to invalidate.
			s.do(t, http.MethodGet, "/items/1", "")

			w := s.do(t, http.MethodDelete, "/items/1", "")
			if w.Code != http.StatusOK {
				t.Fatalf("status = %d", w.Code)
			}
			var resp struct {
				Message string      `json:"message"`
				Item    models.Item `json:"item"`
			}
			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if resp.Message != "Item deleted" || resp.Item.ID != 1 || resp.Item.Name != "Widget" {
				t.Errorf("resp = %+v", resp)
			}

			if w := s.do(t, http.MethodGet, "/items/1", ""); w.Code != http.StatusNotFound {
				t.Errorf("get after delete: status = %d", w.Code)
			}
			if w := s.do(t, http.MethodDelete, "/items/1", ""); w.Code != http.StatusNotFound {
				t.Errorf("second delete: status = %d", w.Code)
			}
		})
	}
}

func TestDeleteItemNotFound(t *testing.T) {
	s := newTestServer(t, services.NewMemoryStore())
	s.do(t, http.MethodPost, "/items/", `{"name":"keep","price":1,"quantity":1}`)

	w := s.do(t, http.MethodDelete, "/items/7", "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d", w.Code)
	}
	if got := w.Body.String(); got != `{"detail":"Item not found"}` {
		t.Errorf("body = %s", got)
	}
	entries := s.logs.FilterMessage("Delete failed - Item not found").All()
	if len(entries) != 1 || entries[0].Level != zapcore.ErrorLevel {
		t.Errorf("entries = %v, want one error", entries)
	}

	w = s.do(t, http.MethodGet, "/items/", "")
	if decode(t, w)["count"] != float64(1) {
		t.Errorf("failed delete changed the store: %s", w.Body.String())
	}
}

func TestNewIDAfterDelete(t *testing.T) {
	s := newTestServer(t, services.NewMemoryStore())
	for i := 0; i < 3; i++ {
		s.do(t, http.MethodPost, "/items/", `{"name":"x","price":1,"quantity":1}`)
	}
	s.do(t, http.MethodDelete, "/items/2", "")

	w := s.do(t, http.MethodPost, "/items/", `{"name":"y","price":1,"quantity":1}`)
	if item := decodeItem(t, w.Body.Bytes()); item.ID != 4 {
		t.Errorf("id = %d, want 4", item.ID)
	}
}

func TestResponsesCarryRequestID(t *testing.T) {
	s := newTestServer(t, services.NewMemoryStore())
	w := s.do(t, http.MethodGet, "/health", "")
	if w.Header().Get("X-Request-ID") == "" {
		t.Error("X-Request-ID header missing")
	}
}
