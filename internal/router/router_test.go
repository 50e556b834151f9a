package router

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/craftshowcase/internal/config"
	"github.com/craftshowcase/internal/constants"
	"github.com/craftshowcase/internal/provider"
	"github.com/craftshowcase/internal/service"

	"github.com/gin-gonic/gin"
)

func newTestEngine(t *testing.T) *gin.Engine {
	t.Helper()
	r, _, _ := newTestEnv(t)
	return r
}

func newTestEnv(t *testing.T) (*gin.Engine, *provider.Container, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	dir := t.TempDir()
	cfg := &config.Config{
		Server:  config.ServerConfig{Mode: "debug"},
		Storage: config.StorageConfig{Driver: "file", DataDir: dir},
		Admin: config.AdminConfig{
			Email:         "admin@example.com",
			Password:      "secret-pass",
			SessionSecret: "test-session-secret",
			SessionHours:  6,
		},
		Upload:  config.UploadConfig{PublicDir: filepath.Join(dir, "public")},
		Site:    config.SiteConfig{BaseURL: "https://crafts.example.com"},
		Metrics: config.MetricsConfig{Enabled: true, Path: "/metrics", Prefix: "craftshowcase"},
	}
	container, err := provider.NewContainer(cfg)
	if err != nil {
		t.Fatalf("new container failed: %v", err)
	}
	t.Cleanup(func() { _ = container.Close() })
	return SetupRouter(cfg, container), container, dir
}

func perform(r http.Handler, method, path, body string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func login(t *testing.T, r http.Handler) *http.Cookie {
	t.Helper()
	w := perform(r, http.MethodPost, "/api/admin/login", `{"email":"admin@example.com","password":"secret-pass"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("login status want 200 got %d body=%s", w.Code, w.Body.String())
	}
	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == constants.AdminCookieName {
			if !cookie.HttpOnly {
				t.Fatalf("session cookie must be http-only")
			}
			if cookie.MaxAge != 6*3600 {
				t.Fatalf("session cookie max-age want 21600 got %d", cookie.MaxAge)
			}
			return cookie
		}
	}
	t.Fatalf("login did not set %s cookie", constants.AdminCookieName)
	return nil
}

func TestAdminLoginRejectsBadCredentials(t *testing.T) {
	r := newTestEngine(t)
	w := perform(r, http.MethodPost, "/api/admin/login", `{"email":"admin@example.com","password":"wrong"}`)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status want 401 got %d", w.Code)
	}
	if len(w.Result().Cookies()) != 0 {
		t.Fatalf("rejected login must not set cookies")
	}
}

func TestAdminRoutesRequireSession(t *testing.T) {
	r := newTestEngine(t)
	for _, route := range []struct{ method, path string }{
		{http.MethodPost, "/api/upload"},
		{http.MethodPost, "/api/ai-generate"},
		{http.MethodPost, "/api/products"},
		{http.MethodPut, "/api/products"},
		{http.MethodGet, "/api/admin/stats"},
	} {
		w := perform(r, route.method, route.path, "")
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("%s %s status want 401 got %d", route.method, route.path, w.Code)
		}
	}
}

func TestAdminSessionFlow(t *testing.T) {
	r := newTestEngine(t)
	cookie := login(t, r)

	w := perform(r, http.MethodGet, "/api/admin/me", "", cookie)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "admin@example.com") {
		t.Fatalf("me status=%d body=%s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), `"availableRoles":["role:admin","role:catalog_editor"]`) {
		t.Fatalf("me should list available roles, body=%s", w.Body.String())
	}

	body := `{"name":{"en":"Brass Burner","zh":"铜香炉","ar":"مبخرة"},"description":{"en":"Hand made","zh":"","ar":""},"category":"incense-burner","images":["/uploads/a.jpg"],"specifications":{"dimensions":{"en":"","zh":"","ar":""},"material":{"en":"Brass","zh":"","ar":""},"craftsmanship":{"en":"","zh":"","ar":""},"price":"25","moq":"100"},"seoKeywords":["Oud"]}`
	w = perform(r, http.MethodPost, "/api/products", body, cookie)
	if w.Code != http.StatusCreated {
		t.Fatalf("create status want 201 got %d body=%s", w.Code, w.Body.String())
	}
	var created struct {
		Product struct {
			ID        string   `json:"id"`
			Images    []string `json:"images"`
			CreatedAt string   `json:"createdAt"`
			UpdatedAt string   `json:"updatedAt"`
		} `json:"product"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode create response failed: %v", err)
	}
	if created.Product.ID == "" || created.Product.CreatedAt != created.Product.UpdatedAt {
		t.Fatalf("unexpected created product %+v", created.Product)
	}
	if len(created.Product.Images) != 1 || created.Product.Images[0] != "/uploads/a.jpg" {
		t.Fatalf("images should be kept, got %v", created.Product.Images)
	}

	w = perform(r, http.MethodGet, "/api/products/"+created.Product.ID+"?locale=zh", "")
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"displayPrice":"¥25.00"`) {
		t.Fatalf("get product status=%d body=%s", w.Code, w.Body.String())
	}
	w = perform(r, http.MethodGet, "/api/products?q=burner&locale=en", "")
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), created.Product.ID) {
		t.Fatalf("search status=%d body=%s", w.Code, w.Body.String())
	}
	w = perform(r, http.MethodGet, "/api/admin/stats", "", cookie)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"total":1`) {
		t.Fatalf("stats status=%d body=%s", w.Code, w.Body.String())
	}

	w = perform(r, http.MethodPost, "/api/admin/logout", "", cookie)
	if w.Code != http.StatusOK {
		t.Fatalf("logout status want 200 got %d", w.Code)
	}
	cleared := false
	for _, c := range w.Result().Cookies() {
		if c.Name == constants.AdminCookieName && c.MaxAge < 0 {
			cleared = true
		}
	}
	if !cleared {
		t.Fatalf("logout should expire the session cookie")
	}
}

func TestReplaceProductsRequiresArray(t *testing.T) {
	r := newTestEngine(t)
	cookie := login(t, r)

	w := perform(r, http.MethodPut, "/api/products", `{"products":"nope"}`, cookie)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status want 400 got %d", w.Code)
	}
	w = perform(r, http.MethodPut, "/api/products", `{"products":[{"id":"a","name":{"en":"A","zh":"","ar":""},"category":"incense-burner"}]}`, cookie)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "1 products imported successfully") {
		t.Fatalf("replace status=%d body=%s", w.Code, w.Body.String())
	}
	w = perform(r, http.MethodGet, "/api/products/missing", "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("missing product status want 404 got %d", w.Code)
	}
}

func TestQuoteMissingFieldsRejected(t *testing.T) {
	r := newTestEngine(t)
	w := perform(r, http.MethodPost, "/api/quote", `{"customerName":"Ali","email":"ali@example.com","products":[]}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status want 400 got %d body=%s", w.Code, w.Body.String())
	}
}

func TestAdminPageGate(t *testing.T) {
	r := newTestEngine(t)

	w := perform(r, http.MethodGet, "/zh/admin/upload", "")
	if w.Code != http.StatusFound || w.Header().Get("Location") != "/zh/admin/login" {
		t.Fatalf("gate should redirect, status=%d location=%s", w.Code, w.Header().Get("Location"))
	}

	cookie := login(t, r)
	w = perform(r, http.MethodGet, "/zh/admin/upload", "", cookie)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `data-page="admin-upload"`) {
		t.Fatalf("authenticated page status=%d", w.Code)
	}

	w = perform(r, http.MethodGet, "/", "")
	if w.Code != http.StatusFound || w.Header().Get("Location") != "/en" {
		t.Fatalf("root should redirect to /en, status=%d location=%s", w.Code, w.Header().Get("Location"))
	}
}

func TestPublicCatalogEndpoints(t *testing.T) {
	r := newTestEngine(t)

	w := perform(r, http.MethodGet, "/api/categories", "")
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "incense-burner") {
		t.Fatalf("categories status=%d body=%s", w.Code, w.Body.String())
	}
	w = perform(r, http.MethodGet, "/sitemap.xml", "")
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "https://crafts.example.com/en/products") {
		t.Fatalf("sitemap status=%d", w.Code)
	}
	w = perform(r, http.MethodGet, "/metrics", "")
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "craftshowcase_http_requests_total") {
		t.Fatalf("metrics status=%d", w.Code)
	}
}

func performMultipart(t *testing.T, r http.Handler, path, field, filename string, content []byte, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	return performMultipartFields(t, r, path, field, filename, content, nil, cookie)
}

func performMultipartFields(t *testing.T, r http.Handler, path, field, filename string, content []byte, fields map[string]string, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	for key, value := range fields {
		if err := writer.WriteField(key, value); err != nil {
			t.Fatalf("write form field failed: %v", err)
		}
	}
	if field != "" {
		part, err := writer.CreateFormFile(field, filename)
		if err != nil {
			t.Fatalf("create form file failed: %v", err)
		}
		if _, err := part.Write(content); err != nil {
			t.Fatalf("write form file failed: %v", err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close multipart writer failed: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.AddCookie(cookie)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestUploadAndServeImage(t *testing.T) {
	r := newTestEngine(t)
	cookie := login(t, r)
	png := []byte("\x89PNG\r\n\x1a\n0000000000000000")

	w := performMultipart(t, r, "/api/upload", "images", "burner.png", png, cookie)
	if w.Code != http.StatusOK {
		t.Fatalf("upload status want 200 got %d body=%s", w.Code, w.Body.String())
	}
	var resp struct {
		Files []string `json:"files"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode upload response failed: %v", err)
	}
	if len(resp.Files) != 1 || !strings.HasPrefix(resp.Files[0], "/uploads/") || !strings.HasSuffix(resp.Files[0], ".png") {
		t.Fatalf("unexpected files %v", resp.Files)
	}

	w = perform(r, http.MethodGet, resp.Files[0], "")
	if w.Code != http.StatusOK || !bytes.Equal(w.Body.Bytes(), png) {
		t.Fatalf("uploaded file should be served, status=%d", w.Code)
	}

	w = performMultipart(t, r, "/api/upload", "", "", nil, cookie)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("empty upload status want 400 got %d", w.Code)
	}
}

func TestGenerateRequiresImage(t *testing.T) {
	r := newTestEngine(t)
	cookie := login(t, r)

	w := performMultipart(t, r, "/api/ai-generate", "", "", nil, cookie)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status want 400 got %d", w.Code)
	}
	w = performMultipart(t, r, "/api/ai-generate", "image", "a.png", []byte("\x89PNG\r\n\x1a\n"), cookie)
	if w.Code != http.StatusInternalServerError || !strings.Contains(w.Body.String(), "Failed to generate product information") {
		t.Fatalf("unconfigured vision should fail with 500, status=%d body=%s", w.Code, w.Body.String())
	}
}

func TestPublicCatalogDegradesOnCorruptStore(t *testing.T) {
	r, _, dir := newTestEnv(t)
	if err := os.WriteFile(filepath.Join(dir, "products.json"), []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write corrupt products failed: %v", err)
	}

	for _, path := range []string{
		"/api/products",
		"/api/products?category=incense-burner",
		"/api/products?q=burner&locale=en",
	} {
		w := perform(r, http.MethodGet, path, "")
		if w.Code != http.StatusOK {
			t.Fatalf("%s status want 200 got %d body=%s", path, w.Code, w.Body.String())
		}
		var resp struct {
			Products []json.RawMessage `json:"products"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("%s decode failed: %v", path, err)
		}
		if resp.Products == nil || len(resp.Products) != 0 {
			t.Fatalf("%s want empty products array, body=%s", path, w.Body.String())
		}
	}

	w := perform(r, http.MethodGet, "/api/products/p-1", "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("product read failure should be 404, got %d", w.Code)
	}
}

type stubVision struct {
	content string
}

func (s *stubVision) Complete(_ context.Context, _, _ string) (string, error) {
	return s.content, nil
}

const stubGeneration = `{
  "name": {"en": "Iron Fruit Plate", "zh": "铁艺果盘", "ar": "طبق فاكهة"},
  "description": {"en": "Glass and iron plate.", "zh": "玻璃铁艺果盘。", "ar": "طبق"},
  "specifications": {"dimensions": {"en": "30cm"}, "material": {"en": "Iron"}, "craftsmanship": {"en": "Welded"}, "price": "12", "moq": "50 pieces"},
  "seoKeywords": ["fruit plate"],
  "category": "glass-iron-fruit-plate"
}`

func TestGenerateAutoPublishPersistsListing(t *testing.T) {
	r, container, _ := newTestEnv(t)
	container.GeneratorService = service.NewGeneratorService(&stubVision{content: stubGeneration}, container.TemplateRepo)
	cookie := login(t, r)
	png := []byte("\x89PNG\r\n\x1a\n0000")

	w := performMultipartFields(t, r, "/api/ai-generate", "image", "plate.png", png, map[string]string{"autoPublish": "false"}, cookie)
	if w.Code != http.StatusOK || strings.Contains(w.Body.String(), `"id"`) {
		t.Fatalf("draft generation status=%d body=%s", w.Code, w.Body.String())
	}

	w = performMultipartFields(t, r, "/api/ai-generate", "image", "plate.png", png, map[string]string{"autoPublish": "true"}, cookie)
	if w.Code != http.StatusOK {
		t.Fatalf("auto publish status want 200 got %d body=%s", w.Code, w.Body.String())
	}
	var published struct {
		Product struct {
			ID        string   `json:"id"`
			Category  string   `json:"category"`
			Images    []string `json:"images"`
			CreatedAt string   `json:"createdAt"`
			UpdatedAt string   `json:"updatedAt"`
		} `json:"product"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &published); err != nil {
		t.Fatalf("decode publish response failed: %v", err)
	}
	p := published.Product
	if p.ID == "" || p.CreatedAt == "" || p.CreatedAt != p.UpdatedAt {
		t.Fatalf("published listing needs id and equal timestamps, got %+v", p)
	}
	if p.Images == nil || len(p.Images) != 0 {
		t.Fatalf("auto published listing should have empty images, got %v", p.Images)
	}
	if !strings.Contains(w.Body.String(), `"images":[]`) {
		t.Fatalf("images should serialize as empty array, body=%s", w.Body.String())
	}

	w = perform(r, http.MethodGet, "/api/products", "")
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), p.ID) {
		t.Fatalf("published listing should be listed, status=%d body=%s", w.Code, w.Body.String())
	}
	if strings.Count(w.Body.String(), `"id":`) != 1 {
		t.Fatalf("only the auto published listing should be stored, body=%s", w.Body.String())
	}
}

func TestLearnFromEditRoute(t *testing.T) {
	r := newTestEngine(t)
	cookie := login(t, r)

	listing := `{"name":{"en":"Plate","zh":"","ar":""},"description":{"en":"","zh":"","ar":""},"category":"glass-iron-fruit-plate","specifications":{"dimensions":{"en":"","zh":"","ar":""},"material":{"en":"","zh":"","ar":""},"craftsmanship":{"en":"","zh":"","ar":""},"price":"","moq":""},"seoKeywords":[]}`
	w := perform(r, http.MethodPut, "/api/ai-generate", `{"userEdited":`+listing+`,"imageBase64":"abc"}`, cookie)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("missing originalAI status want 400 got %d body=%s", w.Code, w.Body.String())
	}

	w = perform(r, http.MethodPut, "/api/ai-generate", `{"originalAI":`+listing+`,"userEdited":`+listing+`,"imageBase64":"abc"}`, cookie)
	if w.Code != http.StatusOK {
		t.Fatalf("learn status want 200 got %d body=%s", w.Code, w.Body.String())
	}
	w = perform(r, http.MethodGet, "/api/admin/ai-template", "", cookie)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"input":"abc"`) {
		t.Fatalf("template should hold the correction, status=%d body=%s", w.Code, w.Body.String())
	}
}
