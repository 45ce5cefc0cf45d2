package api

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path"
	"strconv"
	"time"

	"github.com/dmitrijs2005/cryptopix/internal/common"
	"github.com/dmitrijs2005/cryptopix/internal/server/models"
)

// maxUploadBytes bounds the multipart form held in memory per upload.
const maxUploadBytes = 64 << 20

type credentialsRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

type loginResponse struct {
	AccessToken string `json:"access_token"`
}

// objectResponse is the metadata shape returned by the boundary. It never
// carries envelope bytes, plaintext, or the blob locator.
type objectResponse struct {
	ID          string    `json:"id"`
	DisplayName string    `json:"display_name"`
	ContentType string    `json:"content_type"`
	SizeBytes   int64     `json:"size_bytes"`
	CreatedAt   time.Time `json:"created_at"`
}

type contentResponse struct {
	Ciphertext  string `json:"ciphertext"`
	ContentType string `json:"content_type"`
}

type errorResponse struct {
	Message string `json:"message"`
}

func toObjectResponse(obj *models.EncryptedObject) objectResponse {
	return objectResponse{
		ID:          obj.ID,
		DisplayName: obj.DisplayName,
		ContentType: obj.ContentType,
		SizeBytes:   obj.SizeBytes,
		CreatedAt:   obj.CreatedAt,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Message: msg})
}

// writeServiceError maps core errors to boundary outcomes. Messages are
// fixed strings; underlying errors never reach the client.
func (s *Server) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, common.ErrEmptyPayload):
		writeError(w, http.StatusBadRequest, "empty payload")
	case errors.Is(err, common.ErrorNotFound):
		writeError(w, http.StatusNotFound, "object not found")
	case errors.Is(err, common.ErrStorageUnavailable):
		writeError(w, http.StatusServiceUnavailable, "storage unavailable")
	case errors.Is(err, common.ErrorAlreadyExists):
		writeError(w, http.StatusConflict, "login already taken")
	case errors.Is(err, common.ErrorUnauthorized):
		writeError(w, http.StatusUnauthorized, "unauthorized")
	default:
		s.logger.Error(r.Context(), "internal error", "path", r.URL.Path, "error", err.Error())
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := s.users.Register(r.Context(), req.Login, req.Password)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	s.logger.Info(r.Context(), "user registered", "login", req.Login)
	writeJSON(w, http.StatusCreated, map[string]string{"id": user.ID, "login": user.Login})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	token, err := s.users.Login(r.Context(), req.Login, req.Password)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{AccessToken: token})
}

// handleUpload accepts a multipart form with the envelope bytes in the
// "envelope" file part plus advisory "display_name" and "content_type"
// fields. The payload is stored as-is; the server never inspects it.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	ownerID := ownerIDFromContext(r.Context())

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	file, header, err := r.FormFile("envelope")
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing envelope part")
		return
	}
	defer file.Close()

	envelopeBytes, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, "unreadable envelope part")
		return
	}
	if len(envelopeBytes) == 0 {
		s.writeServiceError(w, r, common.ErrEmptyPayload)
		return
	}

	displayName := r.FormValue("display_name")
	if displayName == "" {
		displayName = header.Filename
	}
	if displayName == "" {
		displayName = "unknown"
	}
	contentType := r.FormValue("content_type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	obj, err := s.objects.Create(r.Context(), ownerID, displayName, contentType, envelopeBytes)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	s.logger.Info(r.Context(), "object uploaded", "object_id", obj.ID, "size_bytes", obj.SizeBytes)
	writeJSON(w, http.StatusCreated, toObjectResponse(obj))
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	ownerID := ownerIDFromContext(r.Context())

	list, err := s.objects.List(r.Context(), ownerID)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	result := make([]objectResponse, 0, len(list))
	for _, obj := range list {
		result = append(result, toObjectResponse(obj))
	}

	writeJSON(w, http.StatusOK, result)
}

// handleContent returns the envelope as base64 together with the declared
// content type, for client-side decryption.
func (s *Server) handleContent(w http.ResponseWriter, r *http.Request) {
	ownerID := ownerIDFromContext(r.Context())
	id := r.PathValue("id")

	data, obj, err := s.objects.ReadEnvelope(r.Context(), id, ownerID)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, contentResponse{
		Ciphertext:  base64.StdEncoding.EncodeToString(data),
		ContentType: obj.ContentType,
	})
}

// handleDownload streams the raw envelope bytes. The attachment filename
// comes from the blob locator, never from the client-controlled
// DisplayName.
func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	ownerID := ownerIDFromContext(r.Context())
	id := r.PathValue("id")

	data, obj, err := s.objects.ReadEnvelope(r.Context(), id, ownerID)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	filename := path.Base(obj.BlobLocator) + ".enc"
	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (s *Server) handleRemove(w http.ResponseWriter, r *http.Request) {
	ownerID := ownerIDFromContext(r.Context())
	id := r.PathValue("id")

	if err := s.objects.Delete(r.Context(), id, ownerID); err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	s.logger.Info(r.Context(), "object deleted", "object_id", id)
	writeJSON(w, http.StatusOK, map[string]string{"message": "object deleted"})
}
