package handler

import (
	"net/http"

	"github.com/galaxyhq/galaxy/internal/ctxkeys"
	"github.com/galaxyhq/galaxy/internal/service"
)

const maxAvatarUploadBytes = 6 << 20 // multipart overhead on top of the 5MB file cap

type accountHandler struct {
	userService *service.UserService
}

func NewAccountHandler(userService *service.UserService) *accountHandler {
	return &accountHandler{userService: userService}
}

// UploadAvatar accepts a multipart form with an "avatar" file field
func (h *accountHandler) UploadAvatar(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, maxAvatarUploadBytes)
	err := r.ParseMultipartForm(maxAvatarUploadBytes)
	if err != nil {
		writeErrorCode(w, http.StatusBadRequest, "validation_failed", "invalid multipart form")
		return
	}

	_, header, err := r.FormFile("avatar")
	if err != nil {
		writeErrorCode(w, http.StatusBadRequest, "validation_failed", "avatar file is required")
		return
	}

	avatarURL, err := h.userService.UploadAvatar(user.ID, header)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"avatarUrl": avatarURL})
}

// Profile returns a user's public profile by username
func (h *accountHandler) Profile(w http.ResponseWriter, r *http.Request) {
	user, err := h.userService.ByUsername(r.PathValue("username"))
	if err != nil {
		writeError(w, err)
		return
	}

	// Public view: no email
	resp := userResponseFrom(user)
	resp.Email = ""

	writeJSON(w, http.StatusOK, resp)
}
