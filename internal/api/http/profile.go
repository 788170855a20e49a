package http

import (
	"encoding/json"
	"net/http"

	"github.com/breathehq/breathe/internal/api/service"
	"github.com/breathehq/breathe/pkg/httpx"
)

type MeHandler struct {
	ProfileService *service.ProfileService
}

// ServeHTTP returns the authenticated user's record.
//
//	@Summary	Get own profile
//	@Tags		Profile
//	@Security	BearerAuth
//	@Produce	json
//	@Success	200	{object}	Envelope{data=UserResponse}
//	@Failure	404	{object}	Envelope	"User not found"
//	@Router		/me [get].
func (h *MeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	u, err := h.ProfileService.GetMe(ctx, httpx.UserIDFromCtx(ctx))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	httpx.NoCache(w)
	writeData(w, http.StatusOK, toUserResponse(u))
}

type AccountDetailsHandler struct {
	ProfileService *service.ProfileService
}

type accountDetailsRequest struct {
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	CompanyName string `json:"companyName"`
	Language    string `json:"language"`
	Phone       string `json:"phone"`
}

type accountDetailsResponse struct {
	User     UserResponse     `json:"user"`
	Customer CustomerResponse `json:"customer"`
}

// ServeHTTP edits the caller's name and their tenant's company profile.
//
//	@Summary	Update account details
//	@Tags		Profile
//	@Security	BearerAuth
//	@Accept		json
//	@Produce	json
//	@Param		body	body		accountDetailsRequest	true	"Profile fields"
//	@Success	200		{object}	Envelope{data=accountDetailsResponse}
//	@Failure	404		{object}	Envelope
//	@Router		/account-details [put].
func (h *AccountDetailsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req accountDetailsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	res, err := h.ProfileService.UpdateAccountDetails(ctx,
		httpx.UserIDFromCtx(ctx), httpx.CustomerIDFromCtx(ctx),
		service.AccountDetailsInput{
			FirstName:   req.FirstName,
			LastName:    req.LastName,
			CompanyName: req.CompanyName,
			Language:    req.Language,
			Phone:       req.Phone,
		})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeData(w, http.StatusOK, accountDetailsResponse{
		User:     toUserResponse(res.User),
		Customer: toCustomerResponse(res.Customer),
	})
}
