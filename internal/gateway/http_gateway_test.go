package gateway

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/AnishMulay/scatterstore/internal/file_service"
	"github.com/AnishMulay/scatterstore/internal/log_service"
	"github.com/AnishMulay/scatterstore/internal/worker_registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogService struct{}

func (nopLogService) Debug(log_service.LogEvent) {}
func (nopLogService) Info(log_service.LogEvent)  {}
func (nopLogService) Warn(log_service.LogEvent)  {}
func (nopLogService) Error(log_service.LogEvent) {}

type fakeFileService struct {
	files map[string][]byte
	err   error
}

func newFakeFileService() *fakeFileService {
	return &fakeFileService{files: make(map[string][]byte)}
}

func (fs *fakeFileService) StoreFile(ctx context.Context, filename string, data []byte) (int, error) {
	if fs.err != nil {
		return 0, fs.err
	}
	fs.files[filename] = data
	chunks := (len(data) + 3) / 4
	return chunks, nil
}

func (fs *fakeFileService) ReadFile(ctx context.Context, filename string) ([]byte, error) {
	if fs.err != nil {
		return nil, fs.err
	}
	data, ok := fs.files[filename]
	if !ok {
		return nil, file_service.ErrFileNotFound
	}
	return data, nil
}

func newTestGateway(fs file_service.FileService) *HTTPGateway {
	registry := worker_registry.NewInMemoryWorkerRegistry(5*time.Second, nopLogService{})
	registry.Upsert("w1", "localhost:7001")
	return NewHTTPGateway(":0", fs, registry, nopLogService{}, DefaultCORSConfig())
}

func multipartUpload(t *testing.T, filename string, data []byte) *http.Request {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/files/uploadFile", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func TestHTTPGateway_UploadFile(t *testing.T) {
	fs := newFakeFileService()
	g := newTestGateway(fs)

	rec := httptest.NewRecorder()
	g.Handler().ServeHTTP(rec, multipartUpload(t, "hello.txt", []byte("hello")))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Upload successful. Total chunks sent: 2", rec.Body.String())
	assert.Equal(t, []byte("hello"), fs.files["hello.txt"])
}

func TestHTTPGateway_UploadEmptyFile(t *testing.T) {
	g := newTestGateway(newFakeFileService())

	rec := httptest.NewRecorder()
	g.Handler().ServeHTTP(rec, multipartUpload(t, "empty.txt", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Upload successful. Total chunks sent: 0", rec.Body.String())
}

func TestHTTPGateway_UploadMissingFileField(t *testing.T) {
	g := newTestGateway(newFakeFileService())

	req := httptest.NewRequest(http.MethodPost, "/files/uploadFile", bytes.NewBufferString("nope"))
	rec := httptest.NewRecorder()
	g.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHTTPGateway_GetFile(t *testing.T) {
	fs := newFakeFileService()
	fs.files["hello.txt"] = []byte("hello")
	g := newTestGateway(fs)

	req := httptest.NewRequest(http.MethodGet, "/files/getFile?name=hello.txt", nil)
	rec := httptest.NewRecorder()
	g.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "hello", rec.Body.String())
	assert.Equal(t, "application/octet-stream", rec.Header().Get("Content-Type"))
	assert.Equal(t, "attachment; filename=hello.txt", rec.Header().Get("Content-Disposition"))
}

func TestHTTPGateway_GetFileNotFound(t *testing.T) {
	g := newTestGateway(newFakeFileService())

	req := httptest.NewRequest(http.MethodGet, "/files/getFile?name=missing.txt", nil)
	rec := httptest.NewRecorder()
	g.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHTTPGateway_GetFileMissingName(t *testing.T) {
	g := newTestGateway(newFakeFileService())

	req := httptest.NewRequest(http.MethodGet, "/files/getFile", nil)
	rec := httptest.NewRecorder()
	g.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHTTPGateway_GetFileRetrievalFailure(t *testing.T) {
	fs := newFakeFileService()
	fs.files["broken.bin"] = []byte("x")
	fs.err = file_service.ErrChunkRetrieveFailed
	g := newTestGateway(fs)

	req := httptest.NewRequest(http.MethodGet, "/files/getFile?name=broken.bin", nil)
	rec := httptest.NewRecorder()
	g.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestHTTPGateway_CORSPreflight(t *testing.T) {
	g := newTestGateway(newFakeFileService())

	req := httptest.NewRequest(http.MethodOptions, "/files/uploadFile", nil)
	rec := httptest.NewRecorder()
	g.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), "POST")
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Credentials"))
}

func TestHTTPGateway_ListWorkers(t *testing.T) {
	g := newTestGateway(newFakeFileService())

	req := httptest.NewRequest(http.MethodGet, "/workers", nil)
	rec := httptest.NewRecorder()
	g.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[{"id":"w1","address":"localhost:7001"}]`, rec.Body.String())
}
