package handler

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"net/mail"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/ayoubre/employee-manager/internal/config"
	"github.com/ayoubre/employee-manager/internal/middleware"
	"github.com/ayoubre/employee-manager/internal/model"
	"github.com/ayoubre/employee-manager/internal/repository"
	"github.com/ayoubre/employee-manager/internal/utils"
)

// AuthHandler bundles dependencies for auth endpoints.
type AuthHandler struct {
	Cfg    config.Config
	Users  *repository.UserRepo
	Tokens *repository.TokenRepo
}

func NewAuthHandler(cfg config.Config, u *repository.UserRepo, t *repository.TokenRepo) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Users: u, Tokens: t}
}

// ----- DTOs -----

type registerReq struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"` // admin | staff, defaults to staff
}
type loginReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type userPart struct {
	ID       uint64 `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}
type authResp struct {
	Message   string    `json:"message"`
	User      userPart  `json:"user"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

func toUserPart(u model.User) userPart {
	return userPart{ID: u.ID, Username: u.Username, Email: u.Email, Role: u.Role}
}

// issue signs a token for the user and records it in the tokens table.
// The stored expires_at is the same instant as the signed exp claim.
func (h *AuthHandler) issue(ctx context.Context, u model.User) (utils.IssuedToken, error) {
	tok, err := utils.IssueToken(h.Cfg.JWTSecret, u, h.Cfg.TokenTTL)
	if err != nil {
		return utils.IssuedToken{}, err
	}
	if err := h.Tokens.Store(ctx, tok.Token, u.ID, tok.ExpiresAt); err != nil {
		return utils.IssuedToken{}, err
	}
	return tok, nil
}

// Register: create user and return a token immediately.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid request body"})
	}
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Username == "" || req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Username, email and password are required"})
	}
	if _, err := mail.ParseAddress(req.Email); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid email address"})
	}
	role := strings.ToLower(strings.TrimSpace(req.Role))
	if role != model.RoleAdmin && role != model.RoleStaff {
		role = model.RoleStaff
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	// Single existence check across both unique fields.
	exists, err := h.Users.ExistsByUsernameOrEmail(ctx, req.Username, req.Email)
	if err != nil {
		c.Logger().Errorf("register: existence check failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Registration failed"})
	}
	if exists {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "User already exists"})
	}

	hash, err := utils.HashPassword(req.Password, h.Cfg.BcryptCost)
	if err != nil {
		c.Logger().Errorf("register: hash failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Registration failed"})
	}
	uid, err := h.Users.Create(ctx, req.Username, req.Email, hash, role)
	if err != nil {
		// A concurrent registration may still trip the unique constraint.
		if errors.Is(err, repository.ErrUserExists) {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "User already exists"})
		}
		c.Logger().Errorf("register: create failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Registration failed"})
	}

	u := model.User{ID: uid, Username: req.Username, Email: req.Email, Role: role, Active: true}
	tok, err := h.issue(ctx, u)
	if err != nil {
		c.Logger().Errorf("register: issue token failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Registration failed"})
	}

	return c.JSON(http.StatusCreated, authResp{
		Message:   "User created successfully",
		User:      toUserPart(u),
		Token:     tok.Token,
		ExpiresAt: tok.ExpiresAt,
	})
}

// Login: verify credentials by username and return a fresh token.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid request body"})
	}
	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Username and password are required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Invalid credentials"})
		}
		c.Logger().Errorf("login: query failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Login failed"})
	}
	if !u.Active {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Account disabled"})
	}
	if !utils.VerifyPassword(u.Password, req.Password) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Invalid credentials"})
	}

	tok, err := h.issue(ctx, u)
	if err != nil {
		c.Logger().Errorf("login: issue token failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Login failed"})
	}

	return c.JSON(http.StatusOK, authResp{
		Message:   "Login successful",
		User:      toUserPart(u),
		Token:     tok.Token,
		ExpiresAt: tok.ExpiresAt,
	})
}

// Logout: blacklist the token that authenticated this request.  The token
// stays blacklisted past its natural expiry; there is no way back.
func (h *AuthHandler) Logout(c echo.Context) error {
	raw := middleware.TokenFromContext(c)

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	ok, err := h.Tokens.Blacklist(ctx, raw)
	if err != nil {
		c.Logger().Errorf("logout: blacklist failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Logout failed"})
	}
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Logout failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Logout successful"})
}

// Profile returns the authenticated user's public fields.
func (h *AuthHandler) Profile(c echo.Context) error {
	u, ok := middleware.UserFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Unauthorized"})
	}
	return c.JSON(http.StatusOK, echo.Map{"user": toUserPart(u)})
}
