package http

import (
	"encoding/json"
	"net/http"

	"github.com/breathehq/breathe/internal/api/domain"
	"github.com/breathehq/breathe/internal/api/service"
	"github.com/breathehq/breathe/pkg/httpx"
)

// SettingsHandler serves the four extension settings partitions. Every GET
// bootstraps missing settings from defaults; every PUT without a "setting"
// body degrades to a read.
type SettingsHandler struct {
	SettingsService *service.SettingsService
}

type appSettingPayload struct {
	Setting *domain.AppSettings `json:"setting"`
}

// HandleGetApp returns the app settings partition.
//
//	@Summary	Get app settings
//	@Tags		Settings
//	@Security	BearerAuth
//	@Produce	json
//	@Success	200	{object}	Envelope{data=domain.AppSettings}
//	@Router		/app-settings [get].
func (h *SettingsHandler) HandleGetApp(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	s, err := h.SettingsService.GetApp(ctx, httpx.UserIDFromCtx(ctx))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeData(w, http.StatusOK, s)
}

// HandlePutApp updates the app settings partition.
//
//	@Summary	Update app settings
//	@Tags		Settings
//	@Security	BearerAuth
//	@Accept		json
//	@Produce	json
//	@Param		body	body		appSettingPayload	true	"New settings"
//	@Success	200		{object}	Envelope{data=domain.AppSettings}
//	@Router		/app-settings [put].
func (h *SettingsHandler) HandlePutApp(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := httpx.UserIDFromCtx(ctx)

	var req appSettingPayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Setting == nil {
		h.HandleGetApp(w, r)
		return
	}

	req.Setting.UserID = userID
	s, err := h.SettingsService.UpdateApp(ctx, *req.Setting)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeData(w, http.StatusOK, s)
}

type breakSettingPayload struct {
	Setting *domain.BreakSettings `json:"setting"`
}

// HandleGetBreaks returns the break settings partition.
//
//	@Summary	Get break settings
//	@Tags		Settings
//	@Security	BearerAuth
//	@Produce	json
//	@Success	200	{object}	Envelope{data=domain.BreakSettings}
//	@Router		/breaks-settings [get].
func (h *SettingsHandler) HandleGetBreaks(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	s, err := h.SettingsService.GetBreaks(ctx, httpx.UserIDFromCtx(ctx))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeData(w, http.StatusOK, s)
}

// HandlePutBreaks updates the break settings partition.
//
//	@Summary	Update break settings
//	@Tags		Settings
//	@Security	BearerAuth
//	@Accept		json
//	@Produce	json
//	@Param		body	body		breakSettingPayload	true	"New settings"
//	@Success	200		{object}	Envelope{data=domain.BreakSettings}
//	@Router		/breaks-settings [put].
func (h *SettingsHandler) HandlePutBreaks(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := httpx.UserIDFromCtx(ctx)

	var req breakSettingPayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Setting == nil {
		h.HandleGetBreaks(w, r)
		return
	}

	req.Setting.UserID = userID
	s, err := h.SettingsService.UpdateBreaks(ctx, *req.Setting)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeData(w, http.StatusOK, s)
}

type colorsSettingPayload struct {
	Setting *domain.ColorsSettings `json:"setting"`
}

// HandleGetColors returns the colors settings partition.
//
//	@Summary	Get colors settings
//	@Tags		Settings
//	@Security	BearerAuth
//	@Produce	json
//	@Success	200	{object}	Envelope{data=domain.ColorsSettings}
//	@Router		/colors-settings [get].
func (h *SettingsHandler) HandleGetColors(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	s, err := h.SettingsService.GetColors(ctx, httpx.UserIDFromCtx(ctx))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeData(w, http.StatusOK, s)
}

// HandlePutColors updates the colors settings partition.
//
//	@Summary	Update colors settings
//	@Tags		Settings
//	@Security	BearerAuth
//	@Accept		json
//	@Produce	json
//	@Param		body	body		colorsSettingPayload	true	"New settings"
//	@Success	200		{object}	Envelope{data=domain.ColorsSettings}
//	@Router		/colors-settings [put].
func (h *SettingsHandler) HandlePutColors(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := httpx.UserIDFromCtx(ctx)

	var req colorsSettingPayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Setting == nil {
		h.HandleGetColors(w, r)
		return
	}

	req.Setting.UserID = userID
	s, err := h.SettingsService.UpdateColors(ctx, *req.Setting)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeData(w, http.StatusOK, s)
}

type soundSettingPayload struct {
	Setting *domain.SoundSettings `json:"setting"`
}

// HandleGetSounds returns the sound settings partition.
//
//	@Summary	Get sound settings
//	@Tags		Settings
//	@Security	BearerAuth
//	@Produce	json
//	@Success	200	{object}	Envelope{data=domain.SoundSettings}
//	@Router		/sounds-settings [get].
func (h *SettingsHandler) HandleGetSounds(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	s, err := h.SettingsService.GetSounds(ctx, httpx.UserIDFromCtx(ctx))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeData(w, http.StatusOK, s)
}

// HandlePutSounds updates the sound settings partition.
//
//	@Summary	Update sound settings
//	@Tags		Settings
//	@Security	BearerAuth
//	@Accept		json
//	@Produce	json
//	@Param		body	body		soundSettingPayload	true	"New settings"
//	@Success	200		{object}	Envelope{data=domain.SoundSettings}
//	@Router		/sounds-settings [put].
func (h *SettingsHandler) HandlePutSounds(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := httpx.UserIDFromCtx(ctx)

	var req soundSettingPayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Setting == nil {
		h.HandleGetSounds(w, r)
		return
	}

	req.Setting.UserID = userID
	s, err := h.SettingsService.UpdateSounds(ctx, *req.Setting)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeData(w, http.StatusOK, s)
}

type colorListResponse struct {
	Colors []string `json:"colors"`
}

// HandleGetColorList returns the user's color rotation.
//
//	@Summary	Get user colors
//	@Tags		Settings
//	@Security	BearerAuth
//	@Produce	json
//	@Success	200	{object}	Envelope{data=colorListResponse}
//	@Router		/colors [get].
func (h *SettingsHandler) HandleGetColorList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	colors, err := h.SettingsService.UserColorList(ctx, httpx.UserIDFromCtx(ctx))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeData(w, http.StatusOK, colorListResponse{Colors: colors})
}
