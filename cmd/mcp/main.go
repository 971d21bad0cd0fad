package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"gopkg.in/yaml.v3"
)

type MCPConfig struct {
	SchedulerURL string `yaml:"scheduler_url"`
}

func LoadConfig(path string) (*MCPConfig, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		defaultConfig := &MCPConfig{SchedulerURL: "http://localhost:8080"}

		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create directory: %v", err)
		}

		data, err := yaml.Marshal(defaultConfig)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal default config: %v", err)
		}
		if err := os.WriteFile(path, data, 0644); err != nil {
			return nil, fmt.Errorf("failed to write default config: %v", err)
		}
		return defaultConfig, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %v", err)
	}

	config := &MCPConfig{}
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %v", err)
	}
	return config, nil
}

func handleUploadFile(ctx context.Context, request mcp.CallToolRequest, baseURL string) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to read %s: %v", path, err)), nil
	}

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", filepath.Base(path))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if _, err := part.Write(data); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err := writer.Close(); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, baseURL+"/files/uploadFile", &body)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("upload request failed: %v", err)), nil
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return mcp.NewToolResultError(fmt.Sprintf("upload failed (%d): %s", resp.StatusCode, respBody)), nil
	}
	return mcp.NewToolResultText(string(respBody)), nil
}

func handleDownloadFile(ctx context.Context, request mcp.CallToolRequest, baseURL string) (*mcp.CallToolResult, error) {
	name, err := request.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	outputPath, err := request.RequireString("output_path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL+"/files/getFile?name="+url.QueryEscape(name), nil)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("download request failed: %v", err)), nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return mcp.NewToolResultError(fmt.Sprintf("download failed (%d): %s", resp.StatusCode, respBody)), nil
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err := os.WriteFile(outputPath, data, 0644); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to write %s: %v", outputPath, err)), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Downloaded %s (%d bytes) to %s", name, len(data), outputPath)), nil
}

func handleListWorkers(ctx context.Context, request mcp.CallToolRequest, baseURL string) (*mcp.CallToolResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL+"/workers", nil)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("workers request failed: %v", err)), nil
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return mcp.NewToolResultError(fmt.Sprintf("workers request failed (%d): %s", resp.StatusCode, respBody)), nil
	}
	return mcp.NewToolResultText(string(respBody)), nil
}

func addTools(s *server.MCPServer, baseURL string) {
	uploadTool := mcp.NewTool("upload_file",
		mcp.WithDescription("Upload a local file into the cluster"),
		mcp.WithString("path", mcp.Required(), mcp.Description("Local path of the file to upload")),
	)
	s.AddTool(uploadTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleUploadFile(ctx, request, baseURL)
	})

	downloadTool := mcp.NewTool("download_file",
		mcp.WithDescription("Download a file from the cluster to a local path"),
		mcp.WithString("name", mcp.Required(), mcp.Description("Filename as uploaded")),
		mcp.WithString("output_path", mcp.Required(), mcp.Description("Local path to write the file to")),
	)
	s.AddTool(downloadTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleDownloadFile(ctx, request, baseURL)
	})

	listWorkersTool := mcp.NewTool("list_workers",
		mcp.WithDescription("List the workers currently active in the cluster"),
	)
	s.AddTool(listWorkersTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleListWorkers(ctx, request, baseURL)
	})
}

func main() {
	config, err := LoadConfig("config/mcp.yaml")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	s := server.NewMCPServer("scatterstore", "0.1.0")
	addTools(s, config.SchedulerURL)

	if err := server.ServeStdio(s); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}
