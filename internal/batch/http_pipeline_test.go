package batch

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/craftshowcase/internal/models"
)

func newFakeAdminServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/admin/login", func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{Name: "admin-auth", Value: "token", Path: "/"})
		_, _ = w.Write([]byte(`{"ok":true}`))
	})
	requireCookie := func(w http.ResponseWriter, r *http.Request) bool {
		if cookie, err := r.Cookie("admin-auth"); err != nil || cookie.Value != "token" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"status_code":401,"msg":"Unauthorized","data":null}`))
			return false
		}
		return true
	}
	mux.HandleFunc("/api/upload", func(w http.ResponseWriter, r *http.Request) {
		if !requireCookie(w, r) {
			return
		}
		_, header, err := r.FormFile("images")
		if err != nil {
			t.Errorf("upload missing images field: %v", err)
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]interface{}{"message": "ok", "files": []string{"/uploads/" + header.Filename}})
	})
	mux.HandleFunc("/api/ai-generate", func(w http.ResponseWriter, r *http.Request) {
		if !requireCookie(w, r) {
			return
		}
		if r.FormValue("autoPublish") != "false" {
			t.Errorf("batch must not auto publish server side")
		}
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"message": "ok",
			"product": models.GeneratedListing{Name: models.LocalizedText{EN: "Burner"}, Category: "incense-burner"},
		})
	})
	mux.HandleFunc("/api/products", func(w http.ResponseWriter, r *http.Request) {
		if !requireCookie(w, r) {
			return
		}
		raw, _ := io.ReadAll(r.Body)
		var body models.Listing
		if err := json.Unmarshal(raw, &body); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		body.ID = "product-1"
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(map[string]interface{}{"message": "ok", "product": body})
	})
	return httptest.NewServer(mux)
}

func TestHTTPPipelineEndToEnd(t *testing.T) {
	server := newFakeAdminServer(t)
	defer server.Close()

	pipeline, err := NewHTTPPipeline(server.URL+"/", nil)
	if err != nil {
		t.Fatalf("new pipeline failed: %v", err)
	}
	ctx := context.Background()

	if _, err := pipeline.Upload(ctx, "a.jpg", []byte("img")); err == nil || !strings.Contains(err.Error(), "Unauthorized") {
		t.Fatalf("expected unauthorized error before login, got %v", err)
	}
	if err := pipeline.Login(ctx, "admin@example.com", "secret"); err != nil {
		t.Fatalf("login failed: %v", err)
	}

	o := NewOrchestrator(pipeline, Options{AutoPublish: true})
	o.Add("a.jpg", []byte("img"))
	if _, err := o.Run(ctx); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	item := o.Items()[0]
	if item.Status != "success" || item.ImageURL != "/uploads/a.jpg" {
		t.Fatalf("unexpected item %+v", item)
	}
	if item.Listing == nil || item.Listing.ID != "product-1" || item.Listing.Images[0] != "/uploads/a.jpg" {
		t.Fatalf("listing should carry uploaded image: %+v", item.Listing)
	}
}
