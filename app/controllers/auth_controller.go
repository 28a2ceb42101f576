package controllers

import (
	"github.com/shashiranjanraj/washly/app/services"
	"github.com/shashiranjanraj/washly/pkg/ctx"
)

// AuthController handles signup, login and the current-user endpoint.
type AuthController struct {
	service *services.AuthService
}

func NewAuthController() *AuthController {
	return &AuthController{service: services.NewAuthService()}
}

// Register creates a customer account. POST /api/auth/register
func (a *AuthController) Register(c *ctx.Context) {
	var in services.RegisterInput
	if !c.BindJSON(&in) {
		return
	}

	user, token, err := a.service.Register(in)
	if err != nil {
		c.GuardError(err)
		return
	}
	c.Created(map[string]any{"user": user, "token": token})
}

// Login exchanges credentials for a token. POST /api/auth/login
func (a *AuthController) Login(c *ctx.Context) {
	var in services.LoginInput
	if !c.BindJSON(&in) {
		return
	}

	user, token, err := a.service.Login(in)
	if err != nil {
		c.GuardError(err)
		return
	}
	c.Success(map[string]any{"user": user, "token": token})
}

// Me returns the authenticated user. GET /api/auth/me
func (a *AuthController) Me(c *ctx.Context) {
	user, err := a.service.Me(c.Principal().ID)
	if err != nil {
		c.GuardError(err)
		return
	}
	c.Success(user)
}
