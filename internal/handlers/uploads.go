package handlers

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// UploadRequest is a base64 photo upload, proxied to the Drive folder
// through the gateway
type UploadRequest struct {
	FileName   string `json:"fileName"`
	MimeType   string `json:"mimeType"`
	Base64Data string `json:"base64Data"`
}

// 10MB decoded; phone camera photos after client-side compression
const maxUploadBytes = 10 << 20

// uploadPhoto forwards a meter photo to Drive and returns its URL
func (r *Router) uploadPhoto(w http.ResponseWriter, req *http.Request) {
	var body UploadRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if body.Base64Data == "" {
		respondError(w, http.StatusBadRequest, "No file data")
		return
	}

	// strip a data URI prefix if the client sent one
	if idx := strings.Index(body.Base64Data, ","); idx >= 0 && strings.HasPrefix(body.Base64Data, "data:") {
		if body.MimeType == "" {
			meta := body.Base64Data[5:idx]
			body.MimeType = strings.TrimSuffix(meta, ";base64")
		}
		body.Base64Data = body.Base64Data[idx+1:]
	}

	raw, err := base64.StdEncoding.DecodeString(body.Base64Data)
	if err != nil {
		respondError(w, http.StatusBadRequest, "File data is not valid base64")
		return
	}
	if len(raw) > maxUploadBytes {
		respondError(w, http.StatusRequestEntityTooLarge, "File exceeds the 10MB limit")
		return
	}

	if body.MimeType == "" {
		body.MimeType = "image/jpeg"
	}

	ext := filepath.Ext(body.FileName)
	if ext == "" {
		ext = ".jpg"
	}
	// unique name so two crews uploading "photo.jpg" never collide
	fileName := fmt.Sprintf("%s%s", uuid.New().String(), ext)

	fileURL, err := r.sync.Client().UploadFile(req.Context(), fileName, body.MimeType, body.Base64Data)
	if err != nil {
		respondError(w, http.StatusBadGateway, "Failed to upload file")
		return
	}

	respondJSON(w, http.StatusCreated, map[string]string{
		"fileUrl":  fileURL,
		"fileName": fileName,
	})
}
