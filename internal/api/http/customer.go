package http

import (
	"encoding/json"
	"net/http"

	"github.com/breathehq/breathe/internal/api/service"
	"github.com/breathehq/breathe/pkg/httpx"
)

type CustomerUsersHandler struct {
	CustomerService *service.CustomerService
}

// HandleList returns every user of the caller's tenant.
//
//	@Summary	List tenant users
//	@Tags		Customer
//	@Security	BearerAuth
//	@Produce	json
//	@Success	200	{object}	Envelope{data=[]UserResponse}
//	@Router		/customer/users [get].
func (h *CustomerUsersHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	users, err := h.CustomerService.ListUsers(ctx, httpx.CustomerIDFromCtx(ctx))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeData(w, http.StatusOK, toUserResponses(users))
}

type addUsersRequest struct {
	Users []struct {
		FirstName  string `json:"firstName"`
		LastName   string `json:"lastName"`
		Email      string `json:"email"`
		Department string `json:"department"`
	} `json:"users"`
}

type addUsersResponse struct {
	Created          []UserResponse `json:"data"`
	ExistingAccounts []string       `json:"existingAccounts"`
	Failed           []string       `json:"failed"`
}

// HandleAdd invites a batch of users into the caller's tenant.
//
//	@Summary	Add tenant users
//	@Tags		Customer
//	@Security	BearerAuth
//	@Accept		json
//	@Produce	json
//	@Param		body	body		addUsersRequest	true	"Users to add"
//	@Success	200		{object}	Envelope{data=addUsersResponse}
//	@Failure	400		{object}	Envelope	"Empty batch"
//	@Router		/customer/add-user [post].
func (h *CustomerUsersHandler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req addUsersRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	users := make([]service.NewTenantUser, 0, len(req.Users))
	for _, u := range req.Users {
		users = append(users, service.NewTenantUser{
			FirstName:  u.FirstName,
			LastName:   u.LastName,
			Email:      u.Email,
			Department: u.Department,
		})
	}

	res, err := h.CustomerService.AddUsers(ctx, httpx.CustomerIDFromCtx(ctx), users)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeData(w, http.StatusOK, addUsersResponse{
		Created:          toUserResponses(res.Created),
		ExistingAccounts: emptyIfNil(res.Existing),
		Failed:           emptyIfNil(res.Failed),
	})
}

type updateUsersRequest struct {
	Users []struct {
		ID         string `json:"id"`
		FirstName  string `json:"firstName"`
		LastName   string `json:"lastName"`
		JobTitle   string `json:"jobTitle"`
		Department string `json:"department"`
	} `json:"users"`
}

type batchFailures struct {
	Failed []string `json:"failed"`
}

// HandleUpdate edits a batch of tenant users best-effort.
//
//	@Summary	Update tenant users
//	@Tags		Customer
//	@Security	BearerAuth
//	@Accept		json
//	@Produce	json
//	@Param		body	body		updateUsersRequest	true	"Edits"
//	@Success	200		{object}	Envelope{data=batchFailures}
//	@Router		/customer/update-user [put].
func (h *CustomerUsersHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req updateUsersRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	users := make([]service.UpdateTenantUser, 0, len(req.Users))
	for _, u := range req.Users {
		users = append(users, service.UpdateTenantUser{
			UserID:     u.ID,
			FirstName:  u.FirstName,
			LastName:   u.LastName,
			JobTitle:   u.JobTitle,
			Department: u.Department,
		})
	}

	failed := h.CustomerService.UpdateUsers(ctx, users)
	writeData(w, http.StatusOK, batchFailures{Failed: emptyIfNil(failed)})
}

type deleteUsersRequest struct {
	UserIDs []string `json:"userIds"`
}

// HandleDelete removes a batch of tenant users best-effort.
//
//	@Summary	Delete tenant users
//	@Tags		Customer
//	@Security	BearerAuth
//	@Accept		json
//	@Produce	json
//	@Param		body	body		deleteUsersRequest	true	"Ids to remove"
//	@Success	200		{object}	Envelope{data=batchFailures}
//	@Router		/customer/delete [post].
func (h *CustomerUsersHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req deleteUsersRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	failed := h.CustomerService.DeleteUsers(ctx, req.UserIDs)
	writeData(w, http.StatusOK, batchFailures{Failed: emptyIfNil(failed)})
}

func emptyIfNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
