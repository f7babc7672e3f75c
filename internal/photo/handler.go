package photo

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/photovault/service/internal/response"
	"github.com/photovault/service/internal/storage"
)

const (
	defaultPageNumber = 1
	defaultPageSize   = 20
)

// Handler holds HTTP handlers for photo and album endpoints.
type Handler struct {
	log       *zap.Logger
	svc       *Service
	maxUpload int64
}

// NewHandler creates a new photo Handler. maxUpload bounds multipart uploads in bytes.
func NewHandler(log *zap.Logger, svc *Service, maxUpload int64) *Handler {
	return &Handler{log: log.Named("photo.http"), svc: svc, maxUpload: maxUpload}
}

// Register mounts the photo and album routes on r.
func (h *Handler) Register(r chi.Router) {
	r.Route("/photos", func(r chi.Router) {
		r.Post("/upload", h.UploadBinary)
		r.Post("/", h.CreatePhoto)
		r.Get("/", h.SearchPhotos)
		r.Put("/{photoID}", h.UpdatePhoto)
		r.Get("/{photoID}/album", h.PhotoAlbum)
		r.Put("/{photoID}/album", h.MoveToAlbum)
		r.Put("/{photoID}/favorite", h.SetFavorite)
		r.Delete("/{photoID}", h.DeletePhoto)
	})
	r.Route("/albums", func(r chi.Router) {
		r.Post("/", h.CreateAlbum)
		r.Get("/", h.ListAlbums)
		r.Delete("/{albumID}", h.DeleteAlbum)
	})
}

type uploadData struct {
	URL string `json:"url" example:"http://localhost:9000/photo-bucket/0b6f...-beach.jpg"`
}

type savePhotoRequest struct {
	URL         string  `json:"url"         example:"http://localhost:9000/photo-bucket/0b6f...-beach.jpg"`
	AlbumID     *string `json:"albumId"     example:"5b1c7a0e-2b55-4d2b-9a3c-3f7f0f3d4c11"`
	Title       string  `json:"title"       example:"Beach"`
	Description string  `json:"description" example:"Sunset at the pier"`
	Tags        string  `json:"tags"        example:"sea, summer"`
}

type createPhotoRequest struct {
	savePhotoRequest
	OwnerEmail *string `json:"ownerEmail" example:"ana@example.com"`
}

type updatePhotoRequest struct {
	savePhotoRequest
	IsFav bool `json:"isFav" example:"false"`
}

type moveToAlbumRequest struct {
	AlbumID string `json:"albumId" example:"5b1c7a0e-2b55-4d2b-9a3c-3f7f0f3d4c11"`
}

type favoriteRequest struct {
	IsFav *bool `json:"isFav" example:"true"`
}

type createAlbumRequest struct {
	Name       string  `json:"name"       example:"Trip"`
	OwnerEmail *string `json:"ownerEmail" example:"ana@example.com"`
}

func (req savePhotoRequest) fields() Fields {
	return Fields{
		URL:         req.URL,
		AlbumID:     req.AlbumID,
		Title:       req.Title,
		Description: req.Description,
		Tags:        req.Tags,
	}
}

// UploadBinary godoc
//
//	@Summary		Upload photo binary
//	@Description	Stores the multipart field "file" in the object store and returns its public URL. No metadata record is created.
//	@Tags			photos
//	@Accept			multipart/form-data
//	@Produce		json
//	@Param			file	formData	file	true	"Image file"
//	@Success		201		{object}	response.Envelope{data=uploadData}
//	@Failure		400		{object}	response.Envelope
//	@Failure		413		{object}	response.Envelope
//	@Failure		502		{object}	response.Envelope
//	@Failure		503		{object}	response.Envelope
//	@Router			/photos/upload [post]
func (h *Handler) UploadBinary(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload)

	file, header, err := r.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge):
			response.PayloadTooLarge(w, "file exceeds upload limit")
		case errors.Is(err, http.ErrMissingFile):
			response.BadRequest(w, "file is required")
		default:
			response.BadRequest(w, "invalid multipart body")
		}
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		response.BadRequest(w, "could not read file")
		return
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = http.DetectContentType(data)
	}

	url, err := h.svc.UploadBinary(r.Context(), data, header.Filename, contentType)
	if err != nil {
		h.writeError(w, err)
		return
	}

	response.Created(w, uploadData{URL: url})
}

// CreatePhoto godoc
//
//	@Summary		Save photo metadata
//	@Description	Creates a photo record for a previously uploaded URL.
//	@Tags			photos
//	@Accept			json
//	@Produce		json
//	@Param			request	body		createPhotoRequest	true	"Photo metadata"
//	@Success		201		{object}	response.Envelope{data=Photo}
//	@Failure		400		{object}	response.Envelope
//	@Failure		500		{object}	response.Envelope
//	@Router			/photos [post]
func (h *Handler) CreatePhoto(w http.ResponseWriter, r *http.Request) {
	var req createPhotoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	p, err := h.svc.CreatePhoto(r.Context(), req.fields(), req.OwnerEmail)
	if err != nil {
		h.writeError(w, err)
		return
	}

	response.Created(w, p)
}

// SearchPhotos godoc
//
//	@Summary		List photos
//	@Description	Paginated list of non-deleted photos, newest first. searchText matches title, description or tags case-insensitively.
//	@Tags			photos
//	@Produce		json
//	@Param			pageNumber	query		int		false	"1-indexed page number"	default(1)
//	@Param			pageSize	query		int		false	"Page size"				default(20)
//	@Param			searchText	query		string	false	"Search text"
//	@Param			albumId		query		string	false	"Album id"
//	@Success		200			{object}	response.Envelope{data=Page}
//	@Failure		400			{object}	response.Envelope
//	@Failure		500			{object}	response.Envelope
//	@Router			/photos [get]
func (h *Handler) SearchPhotos(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	pageNumber, err := intParam(query.Get("pageNumber"), defaultPageNumber)
	if err != nil {
		response.BadRequest(w, "pageNumber must be an integer")
		return
	}
	pageSize, err := intParam(query.Get("pageSize"), defaultPageSize)
	if err != nil {
		response.BadRequest(w, "pageSize must be an integer")
		return
	}

	q := SearchQuery{
		PageNumber: pageNumber,
		PageSize:   pageSize,
		SearchText: query.Get("searchText"),
	}
	if albumID := query.Get("albumId"); albumID != "" {
		q.AlbumID = &albumID
	}

	page, err := h.svc.SearchPhotos(r.Context(), q)
	if err != nil {
		h.writeError(w, err)
		return
	}

	response.OK(w, page)
}

// UpdatePhoto godoc
//
//	@Summary		Update photo
//	@Description	Replaces url, albumId, title, description, tags and isFav of a photo.
//	@Tags			photos
//	@Accept			json
//	@Produce		json
//	@Param			photoID	path		string				true	"Photo id"
//	@Param			request	body		updatePhotoRequest	true	"New photo fields"
//	@Success		200		{object}	response.Envelope{data=Photo}
//	@Failure		400		{object}	response.Envelope
//	@Failure		404		{object}	response.Envelope
//	@Failure		500		{object}	response.Envelope
//	@Router			/photos/{photoID} [put]
func (h *Handler) UpdatePhoto(w http.ResponseWriter, r *http.Request) {
	var req updatePhotoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	p, err := h.svc.UpdatePhoto(r.Context(), chi.URLParam(r, "photoID"), req.fields(), req.IsFav)
	if err != nil {
		h.writeError(w, err)
		return
	}

	response.OK(w, p)
}

// MoveToAlbum godoc
//
//	@Summary		Add photo to album
//	@Tags			photos
//	@Accept			json
//	@Produce		json
//	@Param			photoID	path		string				true	"Photo id"
//	@Param			request	body		moveToAlbumRequest	true	"Target album"
//	@Success		200		{object}	response.Envelope{data=Photo}
//	@Failure		400		{object}	response.Envelope
//	@Failure		404		{object}	response.Envelope
//	@Failure		500		{object}	response.Envelope
//	@Router			/photos/{photoID}/album [put]
func (h *Handler) MoveToAlbum(w http.ResponseWriter, r *http.Request) {
	var req moveToAlbumRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	p, err := h.svc.MoveToAlbum(r.Context(), chi.URLParam(r, "photoID"), req.AlbumID)
	if err != nil {
		h.writeError(w, err)
		return
	}

	response.OK(w, p)
}

// PhotoAlbum godoc
//
//	@Summary		Get the album of a photo
//	@Description	Returns the album the photo references, or null when it has none or the reference dangles.
//	@Tags			photos
//	@Produce		json
//	@Param			photoID	path		string	true	"Photo id"
//	@Success		200		{object}	response.Envelope{data=Album}
//	@Failure		404		{object}	response.Envelope
//	@Failure		500		{object}	response.Envelope
//	@Router			/photos/{photoID}/album [get]
func (h *Handler) PhotoAlbum(w http.ResponseWriter, r *http.Request) {
	a, err := h.svc.PhotoAlbum(r.Context(), chi.URLParam(r, "photoID"))
	if err != nil {
		h.writeError(w, err)
		return
	}

	response.OK(w, a)
}

// SetFavorite godoc
//
//	@Summary		Mark or unmark favorite
//	@Tags			photos
//	@Accept			json
//	@Produce		json
//	@Param			photoID	path		string			true	"Photo id"
//	@Param			request	body		favoriteRequest	true	"Favorite flag"
//	@Success		200		{object}	response.Envelope{data=Photo}
//	@Failure		400		{object}	response.Envelope
//	@Failure		404		{object}	response.Envelope
//	@Failure		500		{object}	response.Envelope
//	@Router			/photos/{photoID}/favorite [put]
func (h *Handler) SetFavorite(w http.ResponseWriter, r *http.Request) {
	var req favoriteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}
	if req.IsFav == nil {
		response.BadRequest(w, "isFav is required")
		return
	}

	p, err := h.svc.SetFavorite(r.Context(), chi.URLParam(r, "photoID"), *req.IsFav)
	if err != nil {
		h.writeError(w, err)
		return
	}

	response.OK(w, p)
}

// DeletePhoto godoc
//
//	@Summary		Soft-delete photo
//	@Tags			photos
//	@Produce		json
//	@Param			photoID	path		string	true	"Photo id"
//	@Success		200		{object}	response.Envelope{data=Photo}
//	@Failure		404		{object}	response.Envelope
//	@Failure		500		{object}	response.Envelope
//	@Router			/photos/{photoID} [delete]
func (h *Handler) DeletePhoto(w http.ResponseWriter, r *http.Request) {
	p, err := h.svc.SoftDeletePhoto(r.Context(), chi.URLParam(r, "photoID"))
	if err != nil {
		h.writeError(w, err)
		return
	}

	response.OK(w, p)
}

// CreateAlbum godoc
//
//	@Summary		Create album
//	@Tags			albums
//	@Accept			json
//	@Produce		json
//	@Param			request	body		createAlbumRequest	true	"Album"
//	@Success		201		{object}	response.Envelope{data=Album}
//	@Failure		400		{object}	response.Envelope
//	@Failure		500		{object}	response.Envelope
//	@Router			/albums [post]
func (h *Handler) CreateAlbum(w http.ResponseWriter, r *http.Request) {
	var req createAlbumRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	a, err := h.svc.CreateAlbum(r.Context(), req.Name, req.OwnerEmail)
	if err != nil {
		h.writeError(w, err)
		return
	}

	response.Created(w, a)
}

// ListAlbums godoc
//
//	@Summary		List albums
//	@Tags			albums
//	@Produce		json
//	@Success		200	{object}	response.Envelope{data=[]Album}
//	@Failure		500	{object}	response.Envelope
//	@Router			/albums [get]
func (h *Handler) ListAlbums(w http.ResponseWriter, r *http.Request) {
	albums, err := h.svc.ListAlbums(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}

	response.OK(w, albums)
}

// DeleteAlbum godoc
//
//	@Summary		Soft-delete album
//	@Description	Marks the album deleted and cascades the flag to its photos. Safe to retry.
//	@Tags			albums
//	@Produce		json
//	@Param			albumID	path		string	true	"Album id"
//	@Success		200		{object}	response.Envelope{data=Album}
//	@Failure		404		{object}	response.Envelope
//	@Failure		500		{object}	response.Envelope
//	@Router			/albums/{albumID} [delete]
func (h *Handler) DeleteAlbum(w http.ResponseWriter, r *http.Request) {
	a, err := h.svc.SoftDeleteAlbum(r.Context(), chi.URLParam(r, "albumID"))
	if err != nil {
		h.writeError(w, err)
		return
	}

	response.OK(w, a)
}

// writeError maps service errors onto HTTP statuses.
func (h *Handler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInputRequired), errors.Is(err, ErrInvalidPage):
		response.BadRequest(w, err.Error())
	case errors.Is(err, ErrNotFound):
		response.NotFound(w, "not found")
	case storage.ErrUnavailable.Has(err):
		h.log.Warn("object store unavailable", zap.Error(err))
		response.ServiceUnavailable(w, "object storage unavailable")
	case storage.ErrWriteFailed.Has(err):
		h.log.Warn("object write failed", zap.Error(err))
		response.BadGateway(w, "object storage write failed")
	default:
		h.log.Error("request failed", zap.Error(err))
		response.InternalError(w)
	}
}

func intParam(raw string, fallback int) (int, error) {
	if raw == "" {
		return fallback, nil
	}
	return strconv.Atoi(raw)
}
