package handlers

import (
	"net/http"

	"ticketzone/internal/http/middleware"
	"ticketzone/internal/services"

	"github.com/gin-gonic/gin"
)

func (h Handler) ListUsers(c *gin.Context) {
	users, err := h.Users.List(c.Request.Context())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

func (h Handler) GetUser(c *gin.Context) {
	u, err := h.Users.GetByEmail(c.Request.Context(), c.Param("email"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

type userRoleBody struct {
	Role string `json:"role"`
}

func (h Handler) UpdateUserRole(c *gin.Context) {
	var body userRoleBody
	if !BindJSONOrError(c, &body) {
		return
	}
	svc := h.Users
	svc.RequestID = middleware.GetRequestID(c)

	res, err := svc.UpdateRole(c.Request.Context(), c.Param("id"), body.Role)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// CreateUser registers the email on first sign-in; repeats are a no-op.
func (h Handler) CreateUser(c *gin.Context) {
	var in services.CreateUserInput
	if !BindJSONOrError(c, &in) {
		return
	}
	svc := h.Users
	svc.RequestID = middleware.GetRequestID(c)

	res, err := svc.Create(c.Request.Context(), in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}
