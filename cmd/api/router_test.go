package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"

	"github.com/photovault/service/internal/collection"
	"github.com/photovault/service/internal/config"
	"github.com/photovault/service/internal/photo"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	log := zaptest.NewLogger(t)
	store := photo.NewMemoryStore()
	svc := photo.NewService(log, store, nil)
	return newRouter(log,
		photo.NewHandler(log, svc, 1<<20),
		collection.NewHandler(log, collection.NewService(store, 0)))
}

func TestRouter_Health(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestRouter(t).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestRouter_SwaggerDoc(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestRouter(t).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/swagger/doc.json", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Photo Service API")
	assert.Contains(t, rec.Body.String(), "/collections/monthly")
}

func TestRouter_MountsAPIUnderV1(t *testing.T) {
	router := newTestRouter(t)

	for _, path := range []string{"/api/v1/photos", "/api/v1/albums", "/api/v1/collections/monthly"} {
		t.Run(path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
			require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

			var env struct {
				Success bool `json:"success"`
			}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
			assert.True(t, env.Success)
		})
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/photos", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRouter_CORSPreflight(t *testing.T) {
	req := httptest.NewRequest(http.MethodOptions, "/api/v1/photos", nil)
	req.Header.Set("Origin", "http://example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPut)
	rec := httptest.NewRecorder()
	newTestRouter(t).ServeHTTP(rec, req)

	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.True(t, strings.Contains(rec.Header().Get("Access-Control-Allow-Methods"), http.MethodPut))
}

func TestOpenStore_MemoryAndUnknownBackend(t *testing.T) {
	log := zaptest.NewLogger(t)
	ctx := context.Background()

	store, closeStore, err := openStore(ctx, log, &config.Config{MetadataBackend: config.BackendMemory})
	require.NoError(t, err)
	defer closeStore()
	assert.IsType(t, &photo.MemoryStore{}, store)

	_, _, err = openStore(ctx, log, &config.Config{MetadataBackend: "cassandra"})
	assert.Error(t, err)
}

func TestRootCmd_FlagsBindToConfig(t *testing.T) {
	t.Setenv("METADATA_BACKEND", "postgres")
	cmd := newRootCmd()
	require.NoError(t, cmd.PersistentFlags().Set("backend", "memory"))
	require.NoError(t, cmd.PersistentFlags().Set("port", "9090"))

	names := map[string]bool{}
	for _, sub := range cmd.Commands() {
		names[sub.Name()] = true
	}
	assert.True(t, names["serve"])
	assert.True(t, names["migrate"])

	v := viper.New()
	require.NoError(t, v.BindPFlag("metadata_backend", cmd.PersistentFlags().Lookup("backend")))
	require.NoError(t, v.BindPFlag("port", cmd.PersistentFlags().Lookup("port")))
	cfg, err := config.Load(v)
	require.NoError(t, err)
	assert.Equal(t, config.BackendMemory, cfg.MetadataBackend)
	assert.Equal(t, "9090", cfg.Port)
}

func TestRouter_ComponentLoggersAreNamedOnce(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	log := zap.New(core)
	store := photo.NewMemoryStore()
	svc := photo.NewService(log, store, nil)
	router := newRouter(log,
		photo.NewHandler(log, svc, 1<<20),
		collection.NewHandler(log, collection.NewService(store, 0)))

	album, err := svc.CreateAlbum(context.Background(), "Trip", nil)
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/v1/albums/"+album.ID, nil))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	names := map[string]bool{}
	for _, entry := range logs.All() {
		names[entry.LoggerName] = true
	}
	assert.True(t, names["photo"], "service logger: %v", names)
	assert.True(t, names["http"], "request logger: %v", names)
	assert.False(t, names["photo.photo"])
	assert.False(t, names["http.http"])
}
