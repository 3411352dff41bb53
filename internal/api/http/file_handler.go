package http

import (
	"io"
	"mime"
	"net/http"
	"path/filepath"

	"github.com/gorilla/mux"

	"welfare-backend/internal/storage"
)

// FileHandler serves objects written by mock storage. Supabase-backed
// deployments serve files from the bucket's public URL instead.
type FileHandler struct {
	store *storage.MockStorage
}

func NewFileHandler(store *storage.MockStorage) *FileHandler {
	return &FileHandler{store: store}
}

func (h *FileHandler) Download(w http.ResponseWriter, r *http.Request) {
	key := mux.Vars(r)["key"]
	if key == "" {
		respondError(w, http.StatusBadRequest, "missing file key")
		return
	}

	file, err := h.store.Open(key)
	if err != nil {
		respondError(w, http.StatusNotFound, "file not found")
		return
	}
	defer file.Close()

	if contentType := mime.TypeByExtension(filepath.Ext(key)); contentType != "" {
		w.Header().Set("Content-Type", contentType)
	}
	io.Copy(w, file)
}
