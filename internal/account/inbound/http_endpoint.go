package inbound

import (
	"strconv"

	"github.com/shandysiswandi/otpauth/internal/account/usecase"
	"github.com/shandysiswandi/otpauth/internal/pkg/config"
	"github.com/shandysiswandi/otpauth/internal/pkg/router"
)

// HTTPEndpoint exposes the account registration and OTP workflow.
type HTTPEndpoint struct {
	uc  uc
	cfg config.Config
}

// exposeOTP reports whether issued codes are echoed back in responses.
// Meant for local runs without a mail server.
func (h *HTTPEndpoint) exposeOTP() bool {
	return h.cfg.GetBool("modules.account.expose_otp")
}

// Register creates an account and sends its first verification code.
// @Summary Create account
// @Description Registers the email and sends a 6 digit code. Supports the Idempotency-Key header.
// @Tags Account
// @Accept json
// @Produce json
// @Param Idempotency-Key header string false "Client generated request key"
// @Param request body RegisterRequest true "Register payload"
// @Success 200 {object} router.successResponse{data=RegisterResponse} "Created account"
// @Failure 400 {object} router.errorResponse "Invalid request body"
// @Failure 409 {object} router.errorResponse "Email already registered"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Failure 500 {object} router.errorResponse "Failed to create user"
// @Router /api/v1/account/register [post]
func (h *HTTPEndpoint) Register(r *router.Request) (any, error) {
	var req RegisterRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	acc, err := h.uc.CreateAccount(r.Context(), usecase.CreateAccountInput{
		FullName:       req.FullName,
		Email:          req.Email,
		IdempotencyKey: r.GetHeader(headerIdempotencyKey),
	})
	if err != nil {
		return nil, err
	}

	return RegisterResponse{AccountResponse: toAccountResponse(acc, h.exposeOTP())}, nil
}

// SignIn issues a new verification code for an existing account.
// @Summary Sign in
// @Tags Account
// @Accept json
// @Produce json
// @Param request body SignInRequest true "Sign in payload"
// @Success 200 {object} router.successResponse{data=SignInResponse} "Account"
// @Failure 400 {object} router.errorResponse "Invalid request body"
// @Failure 404 {object} router.errorResponse "Account not found"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Failure 500 {object} router.errorResponse "Failed to sign in"
// @Router /api/v1/account/sign-in [post]
func (h *HTTPEndpoint) SignIn(r *router.Request) (any, error) {
	var req SignInRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	acc, err := h.uc.SignIn(r.Context(), usecase.SignInInput{Email: req.Email})
	if err != nil {
		return nil, err
	}

	return SignInResponse{AccountResponse: toAccountResponse(acc, h.exposeOTP())}, nil
}

// SendOTP rotates and resends the verification code.
// @Summary Send verification code
// @Tags Account
// @Accept json
// @Produce json
// @Param Idempotency-Key header string false "Client generated request key"
// @Param request body SendOTPRequest true "Send OTP payload"
// @Success 200 {object} router.successResponse{data=SendOTPResponse} "Code sent"
// @Failure 400 {object} router.errorResponse "Invalid request body"
// @Failure 404 {object} router.errorResponse "Account not found"
// @Failure 409 {object} router.errorResponse "Duplicate request"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Failure 500 {object} router.errorResponse "Failed to send OTP"
// @Router /api/v1/account/otp/send [post]
func (h *HTTPEndpoint) SendOTP(r *router.Request) (any, error) {
	var req SendOTPRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	out, err := h.uc.SendEmailOTP(r.Context(), usecase.SendOTPInput{
		Email:          req.Email,
		IdempotencyKey: r.GetHeader(headerIdempotencyKey),
	})
	if err != nil {
		return nil, err
	}

	resp := SendOTPResponse{AccountID: strconv.FormatInt(out.AccountID, 10)}
	if h.exposeOTP() {
		resp.OTP = &out.Code
	}

	return resp, nil
}

// VerifyOTP checks the code and returns a session.
// @Summary Verify code
// @Tags Account
// @Accept json
// @Produce json
// @Param request body VerifyOTPRequest true "Verify payload"
// @Success 200 {object} router.successResponse{data=VerifyOTPResponse} "Session"
// @Failure 400 {object} router.errorResponse "Invalid request body"
// @Failure 401 {object} router.errorResponse "Invalid OTP code"
// @Failure 404 {object} router.errorResponse "Account not found"
// @Failure 500 {object} router.errorResponse "Failed to verify OTP"
// @Router /api/v1/account/otp/verify [post]
func (h *HTTPEndpoint) VerifyOTP(r *router.Request) (any, error) {
	var req VerifyOTPRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	out, err := h.uc.VerifySecret(r.Context(), usecase.VerifySecretInput{
		AccountID: req.AccountID,
		Code:      req.Code,
	})
	if err != nil {
		return nil, err
	}

	return VerifyOTPResponse{SessionID: out.SessionID, ExpiresAt: out.ExpiresAt}, nil
}
