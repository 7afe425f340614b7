package http

import (
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/mind-engage/pizzaquiz/internal/storage"
	"github.com/mind-engage/pizzaquiz/internal/trainer"
)

const maxImageBytes = 5 << 20

func imageParam(r *http.Request) string {
	name := chi.URLParam(r, "name")
	if un, err := url.PathUnescape(name); err == nil {
		name = un
	}
	return name
}

// GET /images/{name}
func ImageHandler(bs storage.BlobStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if bs == nil {
			http.NotFound(w, r)
			return
		}
		rc, err := bs.Get(imageParam(r))
		switch {
		case errors.Is(err, storage.ErrInvalidKey):
			http.Error(w, "bad image name", http.StatusBadRequest)
			return
		case err != nil:
			http.NotFound(w, r)
			return
		}
		defer rc.Close()
		w.Header().Set("Content-Type", "image/png")
		w.Header().Set("Cache-Control", "public, max-age=3600")
		_, _ = io.Copy(w, rc)
	}
}

// PUT /admin/images/{name}  body: raw PNG. {name} is "<item name>.png".
func UploadImageHandler(svc *trainer.Service, bs storage.BlobStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if bs == nil {
			http.Error(w, "image storage disabled", http.StatusNotImplemented)
			return
		}
		key := imageParam(r)
		item := strings.TrimSuffix(key, ".png")
		if item == key {
			http.Error(w, "image name must end in .png", http.StatusBadRequest)
			return
		}
		if _, ok := svc.Catalog().Lookup(item); !ok {
			http.Error(w, "unknown item", http.StatusNotFound)
			return
		}
		if _, err := bs.Put(key, http.MaxBytesReader(w, r.Body, maxImageBytes)); err != nil {
			if errors.Is(err, storage.ErrInvalidKey) {
				http.Error(w, "bad image name", http.StatusBadRequest)
				return
			}
			http.Error(w, "store error", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusCreated, map[string]string{"key": key})
	}
}
