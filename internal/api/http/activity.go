package http

import (
	"encoding/json"
	"net/http"

	"github.com/breathehq/breathe/internal/api/service"
	"github.com/breathehq/breathe/pkg/httpx"
)

type BookmarksHandler struct {
	BookmarkService *service.BookmarkService
}

type bookmarksResponse struct {
	Bookmarks []string `json:"bookmarks"`
}

// HandleGet returns the caller's bookmarked content ids.
//
//	@Summary	List bookmarks
//	@Tags		Activity
//	@Security	BearerAuth
//	@Produce	json
//	@Success	200	{object}	Envelope{data=bookmarksResponse}
//	@Router		/user/bookmarks [get].
func (h *BookmarksHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	ids, err := h.BookmarkService.List(ctx, httpx.UserIDFromCtx(ctx))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeData(w, http.StatusOK, bookmarksResponse{Bookmarks: ids})
}

type saveBookmarksRequest struct {
	Bookmarks []string `json:"bookmarks"`
}

// HandlePut appends content ids to the caller's bookmark list.
//
//	@Summary	Save bookmarks
//	@Tags		Activity
//	@Security	BearerAuth
//	@Accept		json
//	@Produce	json
//	@Param		body	body		saveBookmarksRequest	true	"Content ids to append"
//	@Success	200		{object}	Envelope{data=bookmarksResponse}
//	@Router		/user/bookmarks [put].
func (h *BookmarksHandler) HandlePut(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req saveBookmarksRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	stored, err := h.BookmarkService.Add(ctx, httpx.UserIDFromCtx(ctx), req.Bookmarks)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeData(w, http.StatusOK, bookmarksResponse{Bookmarks: stored})
}

type ScreenTimeHandler struct {
	ScreenTimeService *service.ScreenTimeService
}

// HandleToday returns today's screen time row, creating it on first access.
//
//	@Summary	Get today's screen time
//	@Tags		Activity
//	@Security	BearerAuth
//	@Produce	json
//	@Success	200	{object}	Envelope{data=map[string]map[string]int}	"keyed by date"
//	@Router		/screentime/today [get].
func (h *ScreenTimeHandler) HandleToday(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	st, err := h.ScreenTimeService.Today(ctx, httpx.UserIDFromCtx(ctx))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeData(w, http.StatusOK, map[string]map[string]int{st.Date: st.Buckets})
}

type recordScreenTimeRequest struct {
	Date       string         `json:"date"`
	ScreenTime map[string]int `json:"screenTime"`
}

// HandlePut upserts the bucket map for one date.
//
//	@Summary	Record screen time
//	@Tags		Activity
//	@Security	BearerAuth
//	@Accept		json
//	@Produce	json
//	@Param		body	body		recordScreenTimeRequest	true	"Date and bucket map"
//	@Success	200		{object}	Envelope{data=map[string]map[string]int}	"keyed by date"
//	@Failure	400		{object}	Envelope
//	@Router		/screentime [put].
func (h *ScreenTimeHandler) HandlePut(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req recordScreenTimeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Date == "" {
		writeMessage(w, http.StatusBadRequest, "Missing date")
		return
	}

	st, err := h.ScreenTimeService.Record(ctx, httpx.UserIDFromCtx(ctx), req.Date, req.ScreenTime)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeData(w, http.StatusOK, map[string]map[string]int{st.Date: st.Buckets})
}

type BreakEventHandler struct {
	ImprovementService *service.ImprovementService
}

type breakEventRequest struct {
	Completed bool `json:"completed"`
	Rating    int  `json:"rating"`
}

type breakEventResponse struct {
	ContentID string `json:"contentId"`
}

// HandleEvent records one break event from the extension.
//
//	@Summary	Record a break event
//	@Tags		Activity
//	@Security	BearerAuth
//	@Accept		json
//	@Produce	json
//	@Param		body	body		breakEventRequest	true	"Break outcome"
//	@Success	200		{object}	Envelope{data=breakEventResponse}
//	@Router		/browser-extension/event/break [post].
func (h *BreakEventHandler) HandleEvent(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req breakEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	contentID, err := h.ImprovementService.RecordBreak(ctx, httpx.UserIDFromCtx(ctx), req.Completed, req.Rating)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeData(w, http.StatusOK, breakEventResponse{ContentID: contentID})
}

type analyticsResponse struct {
	TotalBreaks int `json:"totalBreaks"`
}

// HandleAnalytics reports the caller's total break count.
//
//	@Summary	Break analytics
//	@Tags		Activity
//	@Security	BearerAuth
//	@Produce	json
//	@Success	200	{object}	Envelope{data=analyticsResponse}
//	@Router		/browser-extension/analytics [get].
func (h *BreakEventHandler) HandleAnalytics(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	n, err := h.ImprovementService.TotalBreaks(ctx, httpx.UserIDFromCtx(ctx))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeData(w, http.StatusOK, analyticsResponse{TotalBreaks: n})
}

type DevicesHandler struct {
	DeviceService *service.DeviceService
}

type recordDeviceRequest struct {
	DeviceType string `json:"deviceType"`
	Browser    string `json:"browser"`
	OS         string `json:"os"`
}

type deviceResponse struct {
	ID         string `json:"id"`
	DeviceType string `json:"deviceType"`
	Browser    string `json:"browser"`
	OS         string `json:"os"`
}

// HandlePost records a device report for the caller.
//
//	@Summary	Record a device
//	@Tags		Activity
//	@Security	BearerAuth
//	@Accept		json
//	@Produce	json
//	@Param		body	body		recordDeviceRequest	true	"Device info"
//	@Success	200		{object}	Envelope{data=deviceResponse}
//	@Router		/user-devices [post].
func (h *DevicesHandler) HandlePost(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req recordDeviceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	d, err := h.DeviceService.RecordDevice(ctx, httpx.UserIDFromCtx(ctx), req.DeviceType, req.Browser, req.OS)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeData(w, http.StatusOK, deviceResponse{
		ID:         d.ID,
		DeviceType: d.DeviceType,
		Browser:    d.Browser,
		OS:         d.OS,
	})
}
