package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/gemlabs/gem-platform/internal/entity"
)

// PostHandler works straight against the repository; the like/comment
// mutations are count increments with no business rules worth a use case.
type PostHandler struct {
	Repo entity.PostRepositoryInterface
}

func NewPostHandler(repo entity.PostRepositoryInterface) *PostHandler {
	return &PostHandler{Repo: repo}
}

type createPostRequest struct {
	Content string `json:"content"`
}

type createCommentRequest struct {
	Content string `json:"content"`
}

func (h *PostHandler) CreatePost(w http.ResponseWriter, r *http.Request) {
	userID := r.Header.Get("X-User-ID")
	if userID == "" {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "missing user id"})
		return
	}

	var req createPostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid JSON"})
		return
	}
	if strings.TrimSpace(req.Content) == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "content is required"})
		return
	}

	post := entity.NewPost(userID, req.Content)
	if err := h.Repo.Create(r.Context(), post); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to create post"})
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{"success": true, "post": post})
}

func (h *PostHandler) GetPost(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	post, err := h.Repo.FindByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, entity.ErrPostNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "post not found"})
			return
		}
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to load post"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "post": post})
}

func (h *PostHandler) ListPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := h.Repo.List(r.Context(), 50)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to list posts"})
		return
	}
	if posts == nil {
		posts = []entity.Post{}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "posts": posts})
}

func (h *PostHandler) LikePost(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.Repo.IncrementLikes(r.Context(), id); err != nil {
		if errors.Is(err, entity.ErrPostNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "post not found"})
			return
		}
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to like post"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true})
}

func (h *PostHandler) CreateComment(w http.ResponseWriter, r *http.Request) {
	userID := r.Header.Get("X-User-ID")
	if userID == "" {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "missing user id"})
		return
	}

	postID := chi.URLParam(r, "id")

	var req createCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid JSON"})
		return
	}
	if strings.TrimSpace(req.Content) == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "content is required"})
		return
	}

	comment := entity.NewComment(postID, userID, req.Content)
	if err := h.Repo.AddComment(r.Context(), comment); err != nil {
		if errors.Is(err, entity.ErrPostNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "post not found"})
			return
		}
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to add comment"})
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{"success": true, "comment": comment})
}

func (h *PostHandler) ListComments(w http.ResponseWriter, r *http.Request) {
	postID := chi.URLParam(r, "id")

	comments, err := h.Repo.ListComments(r.Context(), postID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to list comments"})
		return
	}
	if comments == nil {
		comments = []entity.Comment{}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "comments": comments})
}
