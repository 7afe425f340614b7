package http

import (
	"encoding/json"
	"errors"
	"mime"
	"net/http"
	"net/url"

	"github.com/sirupsen/logrus"

	"github.com/mind-engage/pizzaquiz/internal/auth"
	authmw "github.com/mind-engage/pizzaquiz/internal/auth/middleware"
	"github.com/mind-engage/pizzaquiz/internal/quiz"
	"github.com/mind-engage/pizzaquiz/internal/storage"
	"github.com/mind-engage/pizzaquiz/internal/trainer"
)

type quizHandlers struct {
	svc    *trainer.Service
	ids    *authmw.IdentityService
	cookie string
	images storage.BlobStore
	log    logrus.FieldLogger
}

type reviewResponse struct {
	trainer.ReviewResult
	ImageURL string `json:"image_url,omitempty"`
}

// identify refreshes the identity cookie for userID.
func (h *quizHandlers) identify(w http.ResponseWriter, r *http.Request, userID string) {
	if userID == "" {
		return
	}
	if err := auth.SetIdentityCookie(w, r, h.ids, h.cookie, userID); err != nil {
		h.log.WithError(err).Error("issue identity cookie")
	}
}

func (h *quizHandlers) imageURL(name string) string {
	if h.images == nil {
		return ""
	}
	key := storage.ImageKey(name)
	if !h.images.Exists(key) {
		return ""
	}
	return "/images/" + url.PathEscape(key)
}

// GET /api/review
func (h *quizHandlers) review(w http.ResponseWriter, r *http.Request) {
	res, err := h.svc.Review(r.Context(), authmw.SubjectFromContext(r.Context()))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.identify(w, r, res.UserID)
	writeJSON(w, http.StatusOK, reviewResponse{ReviewResult: res, ImageURL: h.imageURL(res.Item.Name)})
}

// GET /api/quiz carries no image; the photo would give the answer away.
func (h *quizHandlers) quiz(w http.ResponseWriter, r *http.Request) {
	res, err := h.svc.Quiz(r.Context(), authmw.SubjectFromContext(r.Context()))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.identify(w, r, res.UserID)
	writeJSON(w, http.StatusOK, res)
}

// POST /api/quiz/submit  {"toppings": [...]}, or topping=... as a
// urlencoded or multipart form
func (h *quizHandlers) submit(w http.ResponseWriter, r *http.Request) {
	picked, err := readPicked(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	res, err := h.svc.Submit(r.Context(), authmw.SubjectFromContext(r.Context()), picked)
	h.identify(w, r, res.UserID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// GET /api/status
func (h *quizHandlers) status(w http.ResponseWriter, r *http.Request) {
	res, err := h.svc.Status(r.Context(), authmw.SubjectFromContext(r.Context()))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.identify(w, r, res.UserID)
	writeJSON(w, http.StatusOK, res)
}

// POST /api/reset drops the identity; the next request starts over.
func (h *quizHandlers) reset(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Reset(r.Context(), authmw.SubjectFromContext(r.Context())); err != nil {
		h.fail(w, r, err)
		return
	}
	auth.ClearIdentityCookie(w, h.cookie)
	w.WriteHeader(http.StatusNoContent)
}

func (h *quizHandlers) fail(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, quiz.ErrNoCurrentItem), errors.Is(err, quiz.ErrUnknownItem):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		h.log.WithError(err).WithField("path", r.URL.Path).Error("request failed")
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

const maxSubmitMemory = 1 << 20

var (
	errBadSubmission   = errors.New("bad submission")
	errUnsupportedType = errors.New("unsupported content type")
)

func readPicked(r *http.Request) ([]string, error) {
	ct, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch ct {
	case "application/json":
		var req struct {
			Toppings []string `json:"toppings"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return nil, errBadSubmission
		}
		return req.Toppings, nil
	case "multipart/form-data":
		if err := r.ParseMultipartForm(maxSubmitMemory); err != nil {
			return nil, errBadSubmission
		}
		return r.MultipartForm.Value["topping"], nil
	case "application/x-www-form-urlencoded", "":
		if err := r.ParseForm(); err != nil {
			return nil, errBadSubmission
		}
		return r.PostForm["topping"], nil
	default:
		return nil, errUnsupportedType
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
