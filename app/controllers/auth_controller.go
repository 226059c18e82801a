package controllers

import (
	"errors"
	"net/http"

	"github.com/souqdz/souq/app/services"
	"github.com/souqdz/souq/pkg/ctx"
	"github.com/souqdz/souq/pkg/logger"
	"github.com/souqdz/souq/pkg/middleware"
	"github.com/souqdz/souq/pkg/session"
)

// AuthController gates the admin panel.
type AuthController struct {
	auth *services.AuthService
}

func NewAuthController(auth *services.AuthService) *AuthController {
	return &AuthController{auth: auth}
}

// Login verifies credentials, opens a session and also returns a bearer
// token for non-browser clients.
func (a *AuthController) Login(c *ctx.Context) {
	var in struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}
	if !c.BindJSON(&in) {
		return
	}

	user, token, err := a.auth.Login(in.Email, in.Password)
	if errors.Is(err, services.ErrBadCredentials) {
		c.Unauthorized("invalid credentials")
		return
	}
	if err != nil {
		c.Error(http.StatusInternalServerError, "login failed")
		return
	}

	sess := session.FromCtx(c.R)
	sess.Set("user_id", int(user.ID))
	sess.Set("role", user.Role)
	if err := sess.Save(c.W); err != nil {
		logger.Error("session save failed", "user_id", user.ID, "error", err)
		c.Error(http.StatusInternalServerError, "login failed")
		return
	}

	c.Success(map[string]interface{}{
		"token": token,
		"user": map[string]interface{}{
			"id":    user.ID,
			"email": user.Email,
			"name":  user.Name,
			"role":  user.Role,
		},
	})
}

// Logout invalidates the session.
func (a *AuthController) Logout(c *ctx.Context) {
	sess := session.FromCtx(c.R)
	sess.Invalidate()
	if err := sess.Save(c.W); err != nil {
		logger.Error("session invalidate failed", "error", err)
	}
	c.Success(map[string]string{"message": "logged out"})
}

// Session reports who is logged in. The admin shell calls this on load to
// decide between the dashboard and the login form.
func (a *AuthController) Session(c *ctx.Context) {
	id, ok := middleware.UserIDFromCtx(c.R)
	if !ok {
		c.Unauthorized()
		return
	}
	role, _ := middleware.RoleFromCtx(c.R)
	c.Success(map[string]interface{}{"user_id": id, "role": role})
}
