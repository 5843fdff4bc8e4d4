package v1

import (
	"errors"
	"net/http"

	"github.com/venturenest/backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func (h *Handler) initAuthRoutes(api *gin.RouterGroup) {
	auth := api.Group("/auth")

	auth.POST("/sign-up", h.signUp)
	auth.POST("/sign-in", h.signIn)

	auth.POST("/verify-email/request", h.userIdentityMiddleware, h.requestEmailVerification)
	auth.POST("/verify-email/confirm", h.confirmEmailVerification)
	// Landing route for the emailed verification link.
	auth.GET("/verify-email", h.verifyEmailLink)

	auth.POST("/password-reset/request", h.requestPasswordReset)
	auth.POST("/password-reset/confirm", h.confirmPasswordReset)
	// Landing route for the emailed reset link.
	auth.GET("/password-reset/:token", h.checkPasswordResetToken)
}

type signUpRequest struct {
	Email     string `json:"email" binding:"required,email"`
	Username  string `json:"username" binding:"required,min=3,max=32"`
	FirstName string `json:"first_name" binding:"max=64"`
	LastName  string `json:"last_name" binding:"max=64"`
	Role      string `json:"role" binding:"required,role"`
	Password  string `json:"password" binding:"required,min=8,max=64"`
	Phone     string `json:"phone" binding:"max=20"`
}

type signUpResponse struct {
	ID            uuid.UUID `json:"id"`
	Email         string    `json:"email"`
	Role          string    `json:"role"`
	EmailVerified bool      `json:"email_verified"`
}

// @Summary Sign up
// @Tags Auth
// @Description Register a new account
// @ModuleID signUp
// @Accept  json
// @Produce  json
// @Param input body signUpRequest true "account info"
// @Success 201 {object} signUpResponse
// @Failure 400 {object} ErrorStruct
// @Router /auth/sign-up [post]
func (h *Handler) signUp(c *gin.Context) {
	var req signUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationErrorResponse(c, err)
		return
	}

	user, err := h.services.Users.SignUp(c.Request.Context(), service.SignUpInput{
		Email:     req.Email,
		Username:  req.Username,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Role:      req.Role,
		Password:  req.Password,
		Phone:     req.Phone,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserAlreadyExist):
			errorResponse(c, UserAlreadyExistsCode)
		case errors.Is(err, service.ErrInvalidRole):
			errorResponse(c, InvalidRoleCode)
		default:
			c.AbortWithStatus(http.StatusInternalServerError)
		}
		return
	}

	c.JSON(http.StatusCreated, signUpResponse{
		ID:            user.ID,
		Email:         user.Email,
		Role:          user.Role.String(),
		EmailVerified: user.EmailVerified,
	})
}

type signInRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type userAuthResponse struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken uuid.UUID `json:"refresh_token"`
}

// @Summary Sign in
// @Tags Auth
// @Description Authenticate with email and password
// @ModuleID signIn
// @Accept  json
// @Produce  json
// @Param input body signInRequest true "credentials"
// @Success 200 {object} userAuthResponse
// @Failure 400 {object} ErrorStruct
// @Failure 429 {object} ErrorStruct
// @Router /auth/sign-in [post]
func (h *Handler) signIn(c *gin.Context) {
	var req signInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationErrorResponse(c, err)
		return
	}

	tokens, err := h.services.Users.SignIn(c.Request.Context(), req.Email, req.Password, c.Request.UserAgent(), c.ClientIP())
	if err != nil {
		switch {
		case errors.Is(err, service.ErrLoginLocked):
			errorResponseWithStatus(c, http.StatusTooManyRequests, LoginLockedCode)
		case errors.Is(err, service.ErrInvalidCredentials):
			errorResponse(c, InvalidCredentialsCode)
		default:
			c.AbortWithStatus(http.StatusInternalServerError)
		}
		return
	}

	c.JSON(http.StatusOK, userAuthResponse{
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
	})
}

type requestVerificationRequest struct {
	Method string `json:"method" binding:"omitempty,oneof=link token"`
}

type requestVerificationResponse struct {
	Method string `json:"method"`
}

// @Summary Request email verification
// @Tags Auth
// @Description Send a verification email, subject to the resend policy
// @ModuleID requestEmailVerification
// @Accept  json
// @Produce  json
// @Param input body requestVerificationRequest false "preferred delivery method"
// @Success 200 {object} requestVerificationResponse
// @Failure 400 {object} ErrorStruct
// @Failure 429 {object} ErrorStruct
// @Security UserAuth
// @Router /auth/verify-email/request [post]
func (h *Handler) requestEmailVerification(c *gin.Context) {
	userID, err := h.getUserUUID(c)
	if err != nil {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	var req requestVerificationRequest
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		validationErrorResponse(c, err)
		return
	}

	method, err := h.services.Verification.RequestEmailVerification(c.Request.Context(), userID, req.Method)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAlreadyVerified):
			errorResponse(c, AlreadyVerifiedCode)
		case errors.Is(err, service.ErrVerificationRateLimited):
			errorResponseWithStatus(c, http.StatusTooManyRequests, VerificationLimitedCode)
		case errors.Is(err, service.ErrUserNotFound):
			errorResponse(c, UserNotFoundCode)
		default:
			c.AbortWithStatus(http.StatusInternalServerError)
		}
		return
	}

	c.JSON(http.StatusOK, requestVerificationResponse{Method: method})
}

type confirmVerificationRequest struct {
	Email string `json:"email" binding:"required,email"`
	Token string `json:"token" binding:"required"`
}

// @Summary Confirm email verification
// @Tags Auth
// @Description Verify the emailed token and mark the address verified
// @ModuleID confirmEmailVerification
// @Accept  json
// @Produce  json
// @Param input body confirmVerificationRequest true "email and token"
// @Success 200
// @Failure 400 {object} ErrorStruct
// @Router /auth/verify-email/confirm [post]
func (h *Handler) confirmEmailVerification(c *gin.Context) {
	var req confirmVerificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationErrorResponse(c, err)
		return
	}

	if !h.services.Verification.VerifyEmailToken(c.Request.Context(), req.Token, req.Email) {
		errorResponse(c, InvalidVerificationCode)
		return
	}

	c.Status(http.StatusOK)
}

// @Summary Verify email via link
// @Tags Auth
// @Description Target of the emailed verification link
// @ModuleID verifyEmailLink
// @Accept  json
// @Produce  json
// @Param token query string true "verification token"
// @Param email query string true "account email"
// @Success 200
// @Failure 400 {object} ErrorStruct
// @Router /auth/verify-email [get]
func (h *Handler) verifyEmailLink(c *gin.Context) {
	token := c.Query("token")
	emailAddr := c.Query("email")
	if token == "" || emailAddr == "" {
		c.AbortWithStatus(http.StatusBadRequest)
		return
	}

	if !h.services.Verification.VerifyEmailToken(c.Request.Context(), token, emailAddr) {
		errorResponse(c, InvalidVerificationCode)
		return
	}

	c.Status(http.StatusOK)
}

type resetRequestRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// @Summary Request password reset
// @Tags Auth
// @Description Send a reset link; the response never discloses whether the email is registered
// @ModuleID requestPasswordReset
// @Accept  json
// @Produce  json
// @Param input body resetRequestRequest true "account email"
// @Success 200
// @Failure 400 {object} ErrorStruct
// @Router /auth/password-reset/request [post]
func (h *Handler) requestPasswordReset(c *gin.Context) {
	var req resetRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationErrorResponse(c, err)
		return
	}

	if err := h.services.Verification.RequestPasswordReset(c.Request.Context(), req.Email, c.ClientIP()); err != nil {
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	c.Status(http.StatusOK)
}

// @Summary Check password reset token
// @Tags Auth
// @Description Target of the emailed reset link; reports whether the token can still be redeemed
// @ModuleID checkPasswordResetToken
// @Accept  json
// @Produce  json
// @Param token path string true "reset token"
// @Success 200
// @Failure 400 {object} ErrorStruct
// @Router /auth/password-reset/{token} [get]
func (h *Handler) checkPasswordResetToken(c *gin.Context) {
	if err := h.services.Verification.ValidateResetToken(c.Request.Context(), c.Param("token")); err != nil {
		switch {
		case errors.Is(err, service.ErrResetTokenInvalid):
			errorResponse(c, ResetTokenInvalidCode)
		case errors.Is(err, service.ErrResetTokenExpired):
			errorResponse(c, ResetTokenExpiredCode)
		default:
			c.AbortWithStatus(http.StatusInternalServerError)
		}
		return
	}

	c.Status(http.StatusOK)
}

type resetConfirmRequest struct {
	Token    string `json:"token" binding:"required"`
	Password string `json:"password" binding:"required,min=8,max=64"`
}

// @Summary Confirm password reset
// @Tags Auth
// @Description Consume the reset token and set a new password
// @ModuleID confirmPasswordReset
// @Accept  json
// @Produce  json
// @Param input body resetConfirmRequest true "token and new password"
// @Success 200
// @Failure 400 {object} ErrorStruct
// @Router /auth/password-reset/confirm [post]
func (h *Handler) confirmPasswordReset(c *gin.Context) {
	var req resetConfirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationErrorResponse(c, err)
		return
	}

	if err := h.services.Verification.ConfirmPasswordReset(c.Request.Context(), req.Token, req.Password); err != nil {
		switch {
		case errors.Is(err, service.ErrResetTokenInvalid):
			errorResponse(c, ResetTokenInvalidCode)
		case errors.Is(err, service.ErrResetTokenExpired):
			errorResponse(c, ResetTokenExpiredCode)
		default:
			c.AbortWithStatus(http.StatusInternalServerError)
		}
		return
	}

	c.Status(http.StatusOK)
}
