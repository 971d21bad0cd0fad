package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/AnishMulay/scatterstore/internal/file_service"
	"github.com/AnishMulay/scatterstore/internal/log_service"
	"github.com/AnishMulay/scatterstore/internal/worker_registry"
)

// CORSConfig mirrors the ingress CORS policy: wildcard origins and headers,
// credentials off unless configured otherwise.
type CORSConfig struct {
	AllowedOrigins   string
	AllowedMethods   string
	AllowedHeaders   string
	AllowCredentials bool
}

func DefaultCORSConfig() CORSConfig {
	return CORSConfig{
		AllowedOrigins: "*",
		AllowedMethods: "GET, POST, PUT, DELETE, OPTIONS",
		AllowedHeaders: "*",
	}
}

// HTTPGateway is the scheduler's client-facing HTTP surface.
type HTTPGateway struct {
	listenAddress string
	fs            file_service.FileService
	registry      worker_registry.WorkerRegistry
	ls            log_service.LogService
	cors          CORSConfig
	httpServer    *http.Server
}

func NewHTTPGateway(listenAddress string, fs file_service.FileService, registry worker_registry.WorkerRegistry, ls log_service.LogService, cors CORSConfig) *HTTPGateway {
	return &HTTPGateway{
		listenAddress: listenAddress,
		fs:            fs,
		registry:      registry,
		ls:            ls,
		cors:          cors,
	}
}

// Handler builds the route table; exposed for tests.
func (g *HTTPGateway) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/files/uploadFile", g.handleUploadFile)
	mux.HandleFunc("/files/getFile", g.handleGetFile)
	mux.HandleFunc("/workers", g.handleListWorkers)
	return g.withCORS(mux)
}

func (g *HTTPGateway) Start() error {
	g.ls.Info(log_service.LogEvent{
		Message:  "Starting HTTP gateway",
		Metadata: map[string]any{"address": g.listenAddress},
	})

	g.httpServer = &http.Server{
		Addr:    g.listenAddress,
		Handler: g.Handler(),
	}

	go func() {
		if err := g.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			g.ls.Error(log_service.LogEvent{
				Message:  "HTTP gateway error",
				Metadata: map[string]any{"address": g.listenAddress, "error": err.Error()},
			})
		}
	}()
	return nil
}

func (g *HTTPGateway) Stop() error {
	if g.httpServer == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return g.httpServer.Shutdown(ctx)
}

func (g *HTTPGateway) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", g.cors.AllowedOrigins)
		w.Header().Set("Access-Control-Allow-Methods", g.cors.AllowedMethods)
		w.Header().Set("Access-Control-Allow-Headers", g.cors.AllowedHeaders)
		if g.cors.AllowCredentials {
			w.Header().Set("Access-Control-Allow-Credentials", "true")
		}

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (g *HTTPGateway) handleUploadFile(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "missing multipart field 'file'", http.StatusBadRequest)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		http.Error(w, "failed to read upload", http.StatusInternalServerError)
		return
	}

	chunks, err := g.fs.StoreFile(r.Context(), header.Filename, data)
	if err != nil {
		g.ls.Error(log_service.LogEvent{
			Message:  "Upload failed",
			Metadata: map[string]any{"filename": header.Filename, "error": err.Error()},
		})
		http.Error(w, "upload failed", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, "Upload successful. Total chunks sent: %d", chunks)
}

func (g *HTTPGateway) handleGetFile(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	name := r.URL.Query().Get("name")
	if name == "" {
		http.Error(w, "missing query parameter 'name'", http.StatusBadRequest)
		return
	}

	data, err := g.fs.ReadFile(r.Context(), name)
	if err != nil {
		if errors.Is(err, file_service.ErrFileNotFound) {
			http.Error(w, "file not found", http.StatusNotFound)
			return
		}
		g.ls.Error(log_service.LogEvent{
			Message:  "Download failed",
			Metadata: map[string]any{"filename": name, "error": err.Error()},
		})
		http.Error(w, "download failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", name))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (g *HTTPGateway) handleListWorkers(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	type workerView struct {
		ID      string `json:"id"`
		Address string `json:"address"`
	}

	active := g.registry.Active(time.Now())
	views := make([]workerView, 0, len(active))
	for _, wk := range active {
		views = append(views, workerView{ID: wk.ID, Address: wk.Address})
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(views)
}
