package http

import (
	"encoding/json"
	"net/http"

	"github.com/breathehq/breathe/internal/api/service"
	"github.com/breathehq/breathe/pkg/httpx"
	"github.com/breathehq/breathe/pkg/slogx"
)

type SignupHandler struct {
	AccountService *service.AccountService
}

type signupRequest struct {
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	CompanyName string `json:"companyName"`
	Language    string `json:"language"`
}

type signupResponse struct {
	User     UserResponse     `json:"user"`
	Customer CustomerResponse `json:"customer"`
}

// ServeHTTP creates a new tenant account.
//
//	@Summary		Sign up
//	@Description	Creates the tenant, its first user, and the login credentials in one step.
//	@Tags			Accounts
//	@Accept			json
//	@Produce		json
//	@Param			body	body		signupRequest	true	"Account details"
//	@Success		201		{object}	Envelope{data=signupResponse}
//	@Failure		400		{object}	Envelope	"Missing fields or duplicate email"
//	@Failure		500		{object}	Envelope
//	@Router			/signup [post].
func (h *SignupHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req signupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Email == "" || req.Password == "" || req.FirstName == "" || req.LastName == "" {
		writeMessage(w, http.StatusBadRequest, "Missing required fields")
		return
	}

	res, err := h.AccountService.Signup(ctx, service.SignupInput{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Email:       req.Email,
		Password:    req.Password,
		CompanyName: req.CompanyName,
		Language:    req.Language,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeData(w, http.StatusCreated, signupResponse{
		User:     toUserResponse(res.User),
		Customer: toCustomerResponse(res.Customer),
	})
}

type LoginHandler struct {
	AccountService *service.AccountService
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Email  string `json:"email"`
	UserID string `json:"userId"`
}

// ServeHTTP authenticates an account and issues a session token.
//
//	@Summary		Log in
//	@Tags			Accounts
//	@Accept			json
//	@Produce		json
//	@Param			body	body		loginRequest	true	"Credentials"
//	@Success		200		{object}	Envelope{data=loginResponse}	"token carries the session JWT"
//	@Failure		400		{object}	Envelope						"Unknown email"
//	@Failure		401		{object}	Envelope						"Wrong password"
//	@Router			/login [post].
func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Email == "" || req.Password == "" {
		writeMessage(w, http.StatusBadRequest, "Missing required fields")
		return
	}

	res, err := h.AccountService.Login(ctx, req.Email, req.Password)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	log.Info("login", "user_id", res.UserID)
	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, Envelope{
		Success: true,
		Data:    loginResponse{Email: res.Email, UserID: res.UserID},
		Token:   res.Token,
	})
}

type CompanyDetailsHandler struct {
	AccountService *service.AccountService
}

type companyDetailsRequest struct {
	Seats    int    `json:"seats"`
	Website  string `json:"website"`
	Industry string `json:"industry"`
	Country  string `json:"country"`
}

// ServeHTTP fills in the onboarding company profile.
//
//	@Summary		Set company details
//	@Tags			Accounts
//	@Accept			json
//	@Produce		json
//	@Param			customerId	path		string					true	"Customer id"
//	@Param			body		body		companyDetailsRequest	true	"Company profile"
//	@Success		201			{object}	Envelope{data=CustomerResponse}
//	@Failure		400			{object}	Envelope	"Company does not exist"
//	@Router			/company-details/{customerId} [post].
func (h *CompanyDetailsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	customerID := r.PathValue("customerId")
	if customerID == "" {
		writeMessage(w, http.StatusBadRequest, "Missing customer id")
		return
	}

	var req companyDetailsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	c, err := h.AccountService.SetCompanyDetails(ctx, customerID, service.CompanyDetailsInput{
		Seats:    req.Seats,
		Website:  req.Website,
		Industry: req.Industry,
		Country:  req.Country,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeData(w, http.StatusCreated, toCustomerResponse(c))
}

type PasswordHandler struct {
	AccountService *service.AccountService
}

type passwordRequest struct {
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}

// ServeHTTP rotates the caller's password.
//
//	@Summary		Change password
//	@Tags			Accounts
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			body	body		passwordRequest	true	"Old and new password"
//	@Success		200		{object}	Envelope
//	@Failure		401		{object}	Envelope	"Wrong old password"
//	@Router			/password [put].
func (h *PasswordHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID := httpx.UserIDFromCtx(ctx)
	email := httpx.EmailFromCtx(ctx)

	var req passwordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.OldPassword == "" || req.NewPassword == "" {
		writeMessage(w, http.StatusBadRequest, "Missing required fields")
		return
	}

	if err := h.AccountService.ChangePassword(ctx, userID, email, req.OldPassword, req.NewPassword); err != nil {
		writeServiceError(w, err)
		return
	}
	writeMessage(w, http.StatusOK, "Password updated")
}
