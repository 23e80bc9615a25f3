package storage_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"testing"

	"github.com/wardenhq/warden/pkg/storage"
)

const azuriteConnString = "DefaultEndpointsProtocol=http;AccountName=wardenstore;AccountKey=Eby8vdM02xNOcqFlqUwJPLlmEtlCDXJ1OUzFT50uSRZ6IFsuFq2UVErCz4I6tq/K1SZFPTOtr/KBHBeksoGMGw==;BlobEndpoint=http://127.0.0.1:10000/wardenstore;"

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestNewReturnsSystem(t *testing.T) {
	cfg := &storage.Config{
		ContainerName:    "audit-documents",
		ConnectionString: azuriteConnString,
	}

	sys, err := storage.New(cfg, discardLogger())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if sys == nil {
		t.Fatal("New() returned nil system")
	}
}

func TestNewInvalidConnectionString(t *testing.T) {
	cfg := &storage.Config{
		ContainerName:    "audit-documents",
		ConnectionString: "not-a-connection-string",
	}

	_, err := storage.New(cfg, discardLogger())
	if err == nil {
		t.Fatal("expected error for invalid connection string, got nil")
	}
}

func TestConfigFinalizeDefaults(t *testing.T) {
	cfg := &storage.Config{ConnectionString: azuriteConnString}
	if err := cfg.Finalize(nil); err != nil {
		t.Fatalf("finalize failed: %v", err)
	}

	if cfg.ContainerName != "audit-documents" {
		t.Errorf("ContainerName = %q, want audit-documents", cfg.ContainerName)
	}
	if cfg.MaxListSize != 50 {
		t.Errorf("MaxListSize = %d, want 50", cfg.MaxListSize)
	}
}

func TestConfigFinalizeClampsListSize(t *testing.T) {
	cfg := &storage.Config{
		ConnectionString: azuriteConnString,
		MaxListSize:      9999,
	}
	if err := cfg.Finalize(nil); err != nil {
		t.Fatalf("finalize failed: %v", err)
	}

	if cfg.MaxListSize != storage.MaxListCap {
		t.Errorf("MaxListSize = %d, want %d", cfg.MaxListSize, storage.MaxListCap)
	}
}

func TestConfigFinalizeEnvOverrides(t *testing.T) {
	t.Setenv("TEST_STORAGE_CONTAINER", "compliance-exports")
	t.Setenv("TEST_STORAGE_CONNECTION", azuriteConnString)
	t.Setenv("TEST_STORAGE_MAX_LIST", "100")

	cfg := &storage.Config{}
	env := &storage.Env{
		ContainerName:    "TEST_STORAGE_CONTAINER",
		ConnectionString: "TEST_STORAGE_CONNECTION",
		MaxListSize:      "TEST_STORAGE_MAX_LIST",
	}
	if err := cfg.Finalize(env); err != nil {
		t.Fatalf("finalize failed: %v", err)
	}

	if cfg.ContainerName != "compliance-exports" {
		t.Errorf("ContainerName = %q, want compliance-exports", cfg.ContainerName)
	}
	if cfg.ConnectionString != azuriteConnString {
		t.Errorf("ConnectionString = %q, want azurite connection string", cfg.ConnectionString)
	}
	if cfg.MaxListSize != 100 {
		t.Errorf("MaxListSize = %d, want 100", cfg.MaxListSize)
	}
}

func TestConfigFinalizeEnvClampsListSize(t *testing.T) {
	t.Setenv("TEST_STORAGE_MAX_LIST", "9999")

	cfg := &storage.Config{ConnectionString: azuriteConnString}
	env := &storage.Env{MaxListSize: "TEST_STORAGE_MAX_LIST"}
	if err := cfg.Finalize(env); err != nil {
		t.Fatalf("finalize failed: %v", err)
	}

	if cfg.MaxListSize != storage.MaxListCap {
		t.Errorf("MaxListSize = %d, want %d", cfg.MaxListSize, storage.MaxListCap)
	}
}

func TestConfigFinalizeEnvIgnoresInvalidListSize(t *testing.T) {
	tests := []struct {
		name  string
		value string
	}{
		{"zero", "0"},
		{"negative", "-1"},
		{"non-numeric", "abc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TEST_STORAGE_MAX_LIST", tt.value)

			cfg := &storage.Config{ConnectionString: azuriteConnString}
			env := &storage.Env{MaxListSize: "TEST_STORAGE_MAX_LIST"}
			if err := cfg.Finalize(env); err != nil {
				t.Fatalf("finalize failed: %v", err)
			}

			if cfg.MaxListSize != 50 {
				t.Errorf("MaxListSize = %d, want default 50", cfg.MaxListSize)
			}
		})
	}
}

func TestConfigValidation(t *testing.T) {
	cfg := &storage.Config{ContainerName: "audit-documents"}
	err := cfg.Finalize(nil)
	if err == nil {
		t.Fatal("expected error for missing connection string, got nil")
	}
}

func TestConfigMerge(t *testing.T) {
	base := &storage.Config{
		ContainerName:    "audit-documents",
		ConnectionString: azuriteConnString,
		MaxListSize:      50,
	}
	overlay := &storage.Config{
		ContainerName: "compliance-exports",
		MaxListSize:   25,
	}

	base.Merge(overlay)

	if base.ContainerName != "compliance-exports" {
		t.Errorf("ContainerName = %q, want compliance-exports", base.ContainerName)
	}
	if base.ConnectionString != azuriteConnString {
		t.Errorf("ConnectionString should not change when overlay is empty")
	}
	if base.MaxListSize != 25 {
		t.Errorf("MaxListSize = %d, want 25", base.MaxListSize)
	}
}

func TestSentinelErrors(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		wantMsg string
	}{
		{
			name:    "ErrNotFound",
			err:     storage.ErrNotFound,
			wantMsg: "blob not found",
		},
		{
			name:    "ErrEmptyKey",
			err:     storage.ErrEmptyKey,
			wantMsg: "storage key must not be empty",
		},
		{
			name:    "ErrInvalidKey",
			err:     storage.ErrInvalidKey,
			wantMsg: "storage key contains invalid path segment",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Error() != tt.wantMsg {
				t.Errorf("%s.Error() = %q, want %q", tt.name, tt.err.Error(), tt.wantMsg)
			}
		})
	}
}

func TestMapHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{
			name: "ErrNotFound maps to 404",
			err:  storage.ErrNotFound,
			want: http.StatusNotFound,
		},
		{
			name: "ErrEmptyKey maps to 400",
			err:  storage.ErrEmptyKey,
			want: http.StatusBadRequest,
		},
		{
			name: "ErrInvalidKey maps to 400",
			err:  storage.ErrInvalidKey,
			want: http.StatusBadRequest,
		},
		{
			name: "wrapped ErrNotFound maps to 404",
			err:  fmt.Errorf("operation failed: %w", storage.ErrNotFound),
			want: http.StatusNotFound,
		},
		{
			name: "unknown error maps to 500",
			err:  errors.New("unexpected failure"),
			want: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := storage.MapHTTPStatus(tt.err)
			if got != tt.want {
				t.Errorf("MapHTTPStatus() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestKeyValidation(t *testing.T) {
	cfg := &storage.Config{
		ContainerName:    "audit-documents",
		ConnectionString: azuriteConnString,
	}

	sys, err := storage.New(cfg, discardLogger())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	tests := []struct {
		name    string
		key     string
		wantErr error
	}{
		{
			name:    "empty key",
			key:     "",
			wantErr: storage.ErrEmptyKey,
		},
		{
			name:    "path traversal",
			key:     "regulations/../secrets/key",
			wantErr: storage.ErrInvalidKey,
		},
		{
			name:    "double dot in middle",
			key:     "policies/..hidden/manual.pdf",
			wantErr: storage.ErrInvalidKey,
		},
	}

	ctx := context.Background()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := sys.Upload(ctx, tt.key, bytes.NewReader(nil), "application/pdf")
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Upload() error = %v, want %v", err, tt.wantErr)
			}

			_, err = sys.Download(ctx, tt.key)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Download() error = %v, want %v", err, tt.wantErr)
			}

			err = sys.Delete(ctx, tt.key)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Delete() error = %v, want %v", err, tt.wantErr)
			}

			_, err = sys.Exists(ctx, tt.key)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Exists() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
