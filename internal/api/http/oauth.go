package http

import (
	"net/http"
	"time"

	"github.com/breathehq/breathe/internal/api/service"
	"github.com/breathehq/breathe/pkg/jwtx"
	"github.com/breathehq/breathe/pkg/slogx"
)

type OAuthHandler struct {
	OAuthService *service.OAuthService

	// FrontendURL is where the callback redirects after a successful login.
	FrontendURL string
}

type redirectResponse struct {
	RedirectURL string `json:"redirectUrl"`
}

// HandleProvider returns the consent page URL for a provider.
//
//	@Summary	Third-party login redirect
//	@Tags		OAuth
//	@Produce	json
//	@Param		provider	path		string	true	"Provider name (google)"
//	@Success	200			{object}	Envelope{data=redirectResponse}
//	@Failure	400			{object}	Envelope	"Unknown provider"
//	@Router		/thirdparty/{provider} [get].
func (h *OAuthHandler) HandleProvider(w http.ResponseWriter, r *http.Request) {
	url, err := h.OAuthService.RedirectURLFor(r.PathValue("provider"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeData(w, http.StatusOK, redirectResponse{RedirectURL: url})
}

// HandleGoogleCallback finishes the Google login.
//
//	@Summary	Google OAuth callback
//	@Tags		OAuth
//	@Param		code	query	string	true	"Authorization code"
//	@Success	302		"Redirects to the frontend with a session cookie"
//	@Failure	400		{object}	Envelope	"Missing code"
//	@Router		/thirdparty/google/callback [get].
func (h *OAuthHandler) HandleGoogleCallback(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	code := r.URL.Query().Get("code")
	if code == "" {
		writeMessage(w, http.StatusBadRequest, "Missing code")
		return
	}

	token, err := h.OAuthService.HandleGoogleCallback(ctx, code)
	if err != nil {
		log.Warn("google callback failed", "err", err)
		writeServiceError(w, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     "session",
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(jwtx.DefaultTokenTTL),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, h.FrontendURL+"/success", http.StatusFound)
}
