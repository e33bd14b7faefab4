package photos

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"fleet-backend/internal/shared/storage/object/local"
)

var jpegHeader = []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10, 'J', 'F', 'I', 'F', 0x00}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewHandler(NewService(local.New(t.TempDir()))).RegisterRoutes(r.Group("/api"))
	return r
}

func TestPhotoUploadAndServe(t *testing.T) {
	r := newTestRouter(t)

	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodPut, "/api/inspection-photos/rec-1", bytes.NewReader(jpegHeader)))
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", resp.Code, resp.Body.String())
	}

	resp = httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/inspection-photos/rec-1", nil))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if ct := resp.Header().Get("Content-Type"); ct != "image/jpeg" {
		t.Fatalf("expected image/jpeg, got %q", ct)
	}
	if !bytes.Equal(resp.Body.Bytes(), jpegHeader) {
		t.Fatalf("body mismatch")
	}
}

func TestPhotoMissingAndNonImage(t *testing.T) {
	r := newTestRouter(t)

	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/inspection-photos/rec-404", nil))
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}

	resp = httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodPut, "/api/inspection-photos/rec-2", bytes.NewBufferString("plain text, not a photo")))
	if resp.Code != http.StatusUnsupportedMediaType {
		t.Fatalf("expected 415, got %d", resp.Code)
	}

	resp = httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/inspection-photos/rec-2", nil))
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected rejected upload not to be stored, got %d", resp.Code)
	}
}

func TestKeyRejectsTraversal(t *testing.T) {
	if _, err := Key(".."); err == nil {
		t.Fatalf("expected traversal id to be rejected")
	}
	key, err := Key("rec-7")
	if err != nil || key != "inspection-photos/rec-7" {
		t.Fatalf("unexpected key %q %v", key, err)
	}
}
