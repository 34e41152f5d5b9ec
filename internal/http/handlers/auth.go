package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/globescholar/scholarhub/internal/config"
	"github.com/globescholar/scholarhub/internal/domain/user"
	"github.com/globescholar/scholarhub/internal/http/middlewares"
	"github.com/globescholar/scholarhub/internal/repo/postgres"
	"github.com/globescholar/scholarhub/internal/security"
)

type UserReader interface {
	GetByEmail(ctx context.Context, email string) (user.User, error)
}

type UserWriter interface {
	Create(ctx context.Context, firstName, lastName, email, passwordHash string) (user.User, error)
}

type TokenIssuer interface {
	GenerateAccessToken(userID, firstName string) (string, error)
}

type AuthHandler struct {
	users      UserReader
	userWriter UserWriter
	jwt        TokenIssuer
}

func NewAuthHandler(users UserReader, userWriter UserWriter, jwt TokenIssuer) *AuthHandler {
	return &AuthHandler{
		users:      users,
		userWriter: userWriter,
		jwt:        jwt,
	}
}

type SignupRequest struct {
	FirstName       string `json:"first_name" binding:"required,min=1,max=100"`
	LastName        string `json:"last_name" binding:"required,min=1,max=100"`
	Email           string `json:"email" binding:"required,email"`
	Password        string `json:"password" binding:"required,min=6"`
	ConfirmPassword string `json:"confirm_password" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) Signup(ctx *gin.Context) {
	var req SignupRequest

	if !BindJSON(ctx, &req) {
		return
	}

	if req.Password != req.ConfirmPassword {
		RespondBadRequest(ctx, "password_mismatch", "Passwords do not match")
		return
	}

	hash, err := security.HashPassword(req.Password)

	if err != nil {
		RespondInternal(ctx, "Could not create user")
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)

	defer cancel()

	_, err = h.userWriter.Create(cctx, strings.TrimSpace(req.FirstName), strings.TrimSpace(req.LastName), req.Email, hash)

	if err != nil {
		if errors.Is(err, postgres.ErrEmailAlreadyUsed) {
			RespondBadRequest(ctx, "email_taken", "Email already registered")
			return
		}

		RespondInternal(ctx, "Could not create user")
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"message": "Signup successful",
	})
}

func (h *AuthHandler) Login(ctx *gin.Context) {
	var req LoginRequest

	if !BindJSON(ctx, &req) {
		return
	}

	// short timeout for the DB lookup
	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	foundUser, err := h.users.GetByEmail(cctx, req.Email)

	// a wrong password and an unknown email must be indistinguishable
	if err != nil {
		RespondUnAuthorized(ctx, "invalid_credentials", "Invalid email or password")
		return
	}

	err = security.CheckPassword(foundUser.PasswordHash, req.Password)

	if err != nil {
		RespondUnAuthorized(ctx, "invalid_credentials", "Invalid email or password")
		return
	}

	accessToken, err := h.jwt.GenerateAccessToken(foundUser.ID, foundUser.FirstName)

	if err != nil {
		RespondInternal(ctx, "Could not generate access token")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"access_token": accessToken,
		"token_type":   "bearer",
		"first_name":   foundUser.FirstName,
		"user_id":      foundUser.ID,
	})
}

func (h *AuthHandler) Me(ctx *gin.Context) {
	u, ok := middlewares.UserFromContext(ctx)

	if !ok {
		RespondUnAuthorized(ctx, "unauthorized", "Missing identity")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"id":         u.ID,
		"first_name": u.FirstName,
		"last_name":  u.LastName,
		"email":      u.Email,
	})
}
