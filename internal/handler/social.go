package handler

import (
	"net/http"

	"github.com/galaxyhq/galaxy/internal/ctxkeys"
	"github.com/galaxyhq/galaxy/internal/service"
)

type socialHandler struct {
	socialService *service.SocialService
}

func NewSocialHandler(socialService *service.SocialService) *socialHandler {
	return &socialHandler{socialService: socialService}
}

func (h *socialHandler) ToggleLike(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	liked, likeCount, err := h.socialService.ToggleLike(user.ID, r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"liked":     liked,
		"likeCount": likeCount,
	})
}

func (h *socialHandler) ToggleBookmark(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	bookmarked, err := h.socialService.ToggleBookmark(user.ID, r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"bookmarked": bookmarked})
}

func (h *socialHandler) ToggleFollow(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	following, err := h.socialService.ToggleFollow(user.ID, r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"following": following})
}
