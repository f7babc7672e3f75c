package photo_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/photovault/service/internal/photo"
	"github.com/photovault/service/internal/storage"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

type testAPI struct {
	t      *testing.T
	router http.Handler
	blobs  *fakeBlobs
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	log := zaptest.NewLogger(t)
	blobs := &fakeBlobs{}
	svc := photo.NewService(log, photo.NewMemoryStore(), blobs)

	r := chi.NewRouter()
	photo.NewHandler(log, svc, 1<<20).Register(r)
	return &testAPI{t: t, router: r, blobs: blobs}
}

func (a *testAPI) do(method, path string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	a.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(a.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	return a.serve(req)
}

func (a *testAPI) serve(req *http.Request) (*httptest.ResponseRecorder, envelope) {
	a.t.Helper()
	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)

	var env envelope
	require.NoError(a.t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return rec, env
}

func decode[T any](t *testing.T, raw json.RawMessage) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(raw, &v))
	return v
}

func multipartUpload(t *testing.T, field, filename string, data []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = fw.Write(data)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/photos/upload", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestHandler_UploadBinary(t *testing.T) {
	api := newTestAPI(t)

	rec, env := api.serve(multipartUpload(t, "file", "summer beach.png", []byte("\x89PNG\r\n\x1a\nrest")))
	require.Equal(t, http.StatusCreated, rec.Code, env.Error)

	got := decode[map[string]string](t, env.Data)
	assert.Equal(t, "http://blobs/photo-bucket/1-summer_beach.png", got["url"])
}

func TestHandler_UploadBinary_MissingFile(t *testing.T) {
	api := newTestAPI(t)

	rec, env := api.serve(multipartUpload(t, "other", "a.jpg", []byte("x")))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "file is required", env.Error)
}

func TestHandler_UploadBinary_EmptyFile(t *testing.T) {
	api := newTestAPI(t)

	rec, _ := api.serve(multipartUpload(t, "file", "a.jpg", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandler_UploadBinary_StorageErrors(t *testing.T) {
	api := newTestAPI(t)

	api.blobs.err = storage.ErrUnavailable.New("bucket probe failed")
	rec, _ := api.serve(multipartUpload(t, "file", "a.jpg", []byte("x")))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	api.blobs.err = storage.ErrWriteFailed.New("put failed")
	rec, _ = api.serve(multipartUpload(t, "file", "a.jpg", []byte("x")))
	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestHandler_PhotoLifecycle(t *testing.T) {
	api := newTestAPI(t)

	rec, env := api.do(http.MethodPost, "/albums", map[string]string{"name": "Trip"})
	require.Equal(t, http.StatusCreated, rec.Code, env.Error)
	album := decode[photo.Album](t, env.Data)

	rec, env = api.do(http.MethodPost, "/photos", map[string]interface{}{
		"url":     "http://blobs/photo-bucket/1-cat.jpg",
		"albumId": album.ID,
		"title":   "Cat",
		"tags":    "pets",
	})
	require.Equal(t, http.StatusCreated, rec.Code, env.Error)
	created := decode[photo.Photo](t, env.Data)
	require.NotNil(t, created.AlbumID)
	assert.Equal(t, album.ID, *created.AlbumID)

	rec, env = api.do(http.MethodPut, "/photos/"+created.ID+"/favorite", map[string]bool{"isFav": true})
	require.Equal(t, http.StatusOK, rec.Code, env.Error)
	assert.True(t, decode[photo.Photo](t, env.Data).IsFav)

	rec, env = api.do(http.MethodPut, "/photos/"+created.ID+"/album", map[string]string{"albumId": "other"})
	require.Equal(t, http.StatusOK, rec.Code, env.Error)
	assert.Equal(t, "other", *decode[photo.Photo](t, env.Data).AlbumID)

	rec, env = api.do(http.MethodPut, "/photos/"+created.ID, map[string]interface{}{
		"url":   "http://blobs/photo-bucket/2-cat.jpg",
		"title": "Cat, edited",
		"isFav": false,
	})
	require.Equal(t, http.StatusOK, rec.Code, env.Error)
	updated := decode[photo.Photo](t, env.Data)
	assert.Equal(t, "Cat, edited", updated.Title)
	assert.Nil(t, updated.AlbumID)
	assert.Empty(t, updated.Tags)
	assert.False(t, updated.IsFav)

	rec, env = api.do(http.MethodGet, "/photos?searchText=EDITED", nil)
	require.Equal(t, http.StatusOK, rec.Code, env.Error)
	page := decode[photo.Page](t, env.Data)
	assert.Equal(t, 1, page.PageNumber)
	assert.Equal(t, 20, page.PageSize)
	assert.EqualValues(t, 1, page.TotalItems)

	rec, env = api.do(http.MethodDelete, "/photos/"+created.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code, env.Error)
	assert.True(t, decode[photo.Photo](t, env.Data).IsDeleted)

	rec, env = api.do(http.MethodGet, "/photos", nil)
	require.Equal(t, http.StatusOK, rec.Code, env.Error)
	assert.Zero(t, decode[photo.Page](t, env.Data).TotalItems)
}

func TestHandler_SearchPhotos_HugePageParams(t *testing.T) {
	api := newTestAPI(t)
	for _, title := range []string{"a", "b", "c"} {
		rec, env := api.do(http.MethodPost, "/photos", map[string]string{"url": "http://blobs/photo-bucket/" + title, "title": title})
		require.Equal(t, http.StatusCreated, rec.Code, env.Error)
	}

	rec, env := api.do(http.MethodGet, "/photos?pageSize=9223372036854775807", nil)
	require.Equal(t, http.StatusOK, rec.Code, env.Error)
	page := decode[photo.Page](t, env.Data)
	assert.EqualValues(t, 1, page.TotalPages)
	assert.Len(t, page.Photos, 3)

	rec, env = api.do(http.MethodGet, "/photos?pageNumber=4611686018427387905&pageSize=2", nil)
	require.Equal(t, http.StatusOK, rec.Code, env.Error)
	page = decode[photo.Page](t, env.Data)
	assert.EqualValues(t, 3, page.TotalItems)
	assert.EqualValues(t, 2, page.TotalPages)
	assert.Empty(t, page.Photos)
}

func TestHandler_OwnerEmailAndPhotoAlbum(t *testing.T) {
	api := newTestAPI(t)

	_, env := api.do(http.MethodPost, "/albums", map[string]string{"name": "Trip", "ownerEmail": "ana@example.com"})
	album := decode[photo.Album](t, env.Data)

	rec, env := api.do(http.MethodPost, "/photos", map[string]string{
		"url":        "http://blobs/photo-bucket/1-cat.jpg",
		"albumId":    album.ID,
		"ownerEmail": "ana@example.com",
	})
	require.Equal(t, http.StatusCreated, rec.Code, env.Error)
	created := decode[photo.Photo](t, env.Data)
	require.NotNil(t, created.OwnerEmail)
	assert.Equal(t, "ana@example.com", *created.OwnerEmail)

	rec, env = api.do(http.MethodPut, "/photos/"+created.ID, map[string]interface{}{
		"url":        "http://blobs/photo-bucket/2-cat.jpg",
		"albumId":    album.ID,
		"ownerEmail": "someone@else.com",
	})
	require.Equal(t, http.StatusOK, rec.Code, env.Error)
	updated := decode[photo.Photo](t, env.Data)
	require.NotNil(t, updated.OwnerEmail)
	assert.Equal(t, "ana@example.com", *updated.OwnerEmail)

	rec, env = api.do(http.MethodGet, "/photos/"+created.ID+"/album", nil)
	require.Equal(t, http.StatusOK, rec.Code, env.Error)
	got := decode[*photo.Album](t, env.Data)
	require.NotNil(t, got)
	assert.Equal(t, album.ID, got.ID)

	rec, env = api.do(http.MethodPut, "/photos/"+created.ID+"/album", map[string]string{"albumId": "dangling"})
	require.Equal(t, http.StatusOK, rec.Code, env.Error)
	rec, env = api.do(http.MethodGet, "/photos/"+created.ID+"/album", nil)
	require.Equal(t, http.StatusOK, rec.Code, env.Error)
	assert.Nil(t, decode[*photo.Album](t, env.Data))

	rec, _ = api.do(http.MethodGet, "/photos/missing/album", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandler_DeleteAlbumCascades(t *testing.T) {
	api := newTestAPI(t)

	_, env := api.do(http.MethodPost, "/albums", map[string]string{"name": "Trip"})
	album := decode[photo.Album](t, env.Data)
	for i := 0; i < 2; i++ {
		rec, env := api.do(http.MethodPost, "/photos", map[string]string{"url": "http://x/y.jpg", "albumId": album.ID})
		require.Equal(t, http.StatusCreated, rec.Code, env.Error)
	}

	rec, env := api.do(http.MethodDelete, "/albums/"+album.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code, env.Error)
	assert.True(t, decode[photo.Album](t, env.Data).IsDeleted)

	_, env = api.do(http.MethodGet, "/photos?albumId="+album.ID, nil)
	assert.Zero(t, decode[photo.Page](t, env.Data).TotalItems)

	_, env = api.do(http.MethodGet, "/albums", nil)
	assert.Empty(t, decode[[]photo.Album](t, env.Data))

	rec, _ = api.do(http.MethodDelete, "/albums/missing", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandler_Errors(t *testing.T) {
	api := newTestAPI(t)

	cases := []struct {
		method, path string
		body         interface{}
		status       int
	}{
		{http.MethodPut, "/photos/missing", map[string]string{"url": "http://x"}, http.StatusNotFound},
		{http.MethodPut, "/photos/missing/favorite", map[string]bool{"isFav": true}, http.StatusNotFound},
		{http.MethodPut, "/photos/missing/favorite", map[string]string{}, http.StatusBadRequest},
		{http.MethodPut, "/photos/missing/album", map[string]string{"albumId": "a"}, http.StatusNotFound},
		{http.MethodDelete, "/photos/missing", nil, http.StatusNotFound},
		{http.MethodPost, "/photos", map[string]string{"title": "no url"}, http.StatusBadRequest},
		{http.MethodPost, "/albums", map[string]string{"name": ""}, http.StatusBadRequest},
		{http.MethodGet, "/photos?pageNumber=0", nil, http.StatusBadRequest},
		{http.MethodGet, "/photos?pageSize=abc", nil, http.StatusBadRequest},
	}
	for _, tc := range cases {
		rec, env := api.do(tc.method, tc.path, tc.body)
		assert.Equal(t, tc.status, rec.Code, "%s %s", tc.method, tc.path)
		assert.False(t, env.Success)
	}

	req := httptest.NewRequest(http.MethodPost, "/photos", strings.NewReader("{not json"))
	rec, env := api.serve(req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid request body", env.Error)
}
