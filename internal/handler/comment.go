package handler

import (
	"net/http"

	"github.com/galaxyhq/galaxy/internal/ctxkeys"
	"github.com/galaxyhq/galaxy/internal/service"
)

type commentHandler struct {
	commentService *service.CommentService
}

func NewCommentHandler(commentService *service.CommentService) *commentHandler {
	return &commentHandler{commentService: commentService}
}

func (h *commentHandler) List(w http.ResponseWriter, r *http.Request) {
	comments, err := h.commentService.ListByPhoto(r.PathValue("id"), viewerID(r))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string][]commentResponse{"comments": commentResponsesFrom(comments)})
}

type addCommentRequest struct {
	Body string `json:"body"`
}

func (h *commentHandler) Add(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	var req addCommentRequest
	err := decodeJSON(w, r, &req)
	if err != nil {
		writeErrorCode(w, http.StatusBadRequest, "invalid_json", "invalid request body")
		return
	}

	comment, err := h.commentService.Add(user, r.PathValue("id"), req.Body)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, commentResponseFrom(comment))
}
