package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"bugsight/internal/auth"
	"bugsight/internal/domain"
	"bugsight/internal/service"
)

// Handler wires HTTP routes to domain services.
type Handler struct {
	users     service.UserService
	bugs      service.BugService
	sightings service.SightingService
	tokens    *auth.TokenIssuer
}

func NewHandler(users service.UserService, bugs service.BugService, sightings service.SightingService, tokens *auth.TokenIssuer) *Handler {
	return &Handler{
		users:     users,
		bugs:      bugs,
		sightings: sightings,
		tokens:    tokens,
	}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.Use(corsMiddleware())

	api := router.Group("/api")
	{
		api.GET("/health", func(ctx *gin.Context) {
			ctx.JSON(http.StatusOK, gin.H{"ok": "ok"})
		})

		user := api.Group("/user")
		{
			user.POST("/register", h.register)
			user.POST("/login", h.login)
			user.GET("/all", auth.RequireAuth(h.tokens), h.listUsers)
		}

		bug := api.Group("/bug")
		{
			bug.GET("", h.listBugs)
			bug.GET("/:id", h.getBug)
			bug.POST("", auth.RequireAuth(h.tokens), h.createBug)
			bug.PUT("/:id", auth.RequireAuth(h.tokens), h.updateBug)
			bug.DELETE("/:id", auth.RequireAuth(h.tokens), h.deleteBug)
		}

		sighting := api.Group("/sighting")
		{
			sighting.GET("", h.listSightings)
			sighting.GET("/:id", h.getSighting)
			sighting.POST("", auth.RequireAuth(h.tokens), h.createSighting)
			sighting.PUT("/:id", auth.RequireAuth(h.tokens), h.updateSighting)
			sighting.DELETE("/:id", auth.RequireAuth(h.tokens), h.deleteSighting)
		}
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

type registerRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type loginRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password" binding:"required"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

func (h *Handler) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	token, err := h.users.Register(c.Request.Context(), service.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		if errors.Is(err, service.ErrUserAlreadyExists) {
			c.JSON(http.StatusConflict, gin.H{"error": "user already exists"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, tokenResponse{Token: token})
}

func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	token, err := h.users.Login(c.Request.Context(), service.LoginInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "email or password is incorrect"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, tokenResponse{Token: token})
}

type UserResponse struct {
	ID       string   `json:"id"`
	Username string   `json:"username"`
	Email    string   `json:"email"`
	Roles    []string `json:"roles"`
}

func (h *Handler) listUsers(c *gin.Context) {
	users, err := h.users.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	resp := make([]UserResponse, len(users))
	for i := range users {
		resp[i] = userToResponse(users[i])
	}
	c.JSON(http.StatusOK, resp)
}

func userToResponse(user domain.User) UserResponse {
	roles := user.Roles
	if roles == nil {
		roles = []string{}
	}
	return UserResponse{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
		Roles:    roles,
	}
}

type bugCreateRequest struct {
	Species     string `json:"species" binding:"required"`
	DangerLevel int    `json:"danger_level"`
	Description string `json:"description"`
}

type bugUpdateRequest struct {
	Species     string `json:"species" binding:"required"`
	DangerLevel int    `json:"danger_level"`
	Description string `json:"description"`
}

type BugResponse struct {
	ID          string `json:"id"`
	Species     string `json:"species"`
	DangerLevel int    `json:"danger_level"`
	Description string `json:"description"`
}

func bugToResponse(bug domain.Bug) BugResponse {
	return BugResponse{
		ID:          bug.ID,
		Species:     bug.Species,
		DangerLevel: bug.DangerLevel,
		Description: bug.Description,
	}
}

func (h *Handler) createBug(c *gin.Context) {
	var req bugCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	bug, err := h.bugs.Create(c.Request.Context(), req.Species, req.DangerLevel, req.Description)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, bugToResponse(*bug))
}

func (h *Handler) listBugs(c *gin.Context) {
	bugs, err := h.bugs.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	resp := make([]BugResponse, len(bugs))
	for i := range bugs {
		resp[i] = bugToResponse(bugs[i])
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) getBug(c *gin.Context) {
	bug, err := h.bugs.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, bugToResponse(*bug))
}

func (h *Handler) updateBug(c *gin.Context) {
	var req bugUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	bug := &domain.Bug{
		ID:          c.Param("id"),
		Species:     req.Species,
		DangerLevel: req.DangerLevel,
		Description: req.Description,
	}

	if err := h.bugs.Update(c.Request.Context(), bug); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"updated": bug.ID})
}

func (h *Handler) deleteBug(c *gin.Context) {
	id := c.Param("id")
	if err := h.bugs.Delete(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": id})
}

type sightingCreateRequest struct {
	BugID     string    `json:"bug_id" binding:"required"`
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	SeenAt    time.Time `json:"seen_at"`
	Notes     string    `json:"notes"`
}

type sightingUpdateRequest struct {
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	SeenAt    time.Time `json:"seen_at"`
	Notes     string    `json:"notes"`
}

type SightingResponse struct {
	ID        string  `json:"id"`
	BugID     string  `json:"bug_id"`
	UserID    string  `json:"user_id"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	SeenAt    string  `json:"seen_at"`
	Notes     string  `json:"notes"`
	CreatedAt string  `json:"created_at"`
}

func sightingToResponse(sighting domain.Sighting) SightingResponse {
	return SightingResponse{
		ID:        sighting.ID,
		BugID:     sighting.BugID,
		UserID:    sighting.UserID,
		Latitude:  sighting.Latitude,
		Longitude: sighting.Longitude,
		SeenAt:    sighting.SeenAt.Format(time.RFC3339),
		Notes:     sighting.Notes,
		CreatedAt: sighting.CreatedAt.Format(time.RFC3339),
	}
}

func (h *Handler) createSighting(c *gin.Context) {
	var req sightingCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// reporter identity comes from the verified token, never from the body
	claims := auth.ClaimsFromContext(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	sighting, err := h.sightings.Create(c.Request.Context(), &domain.Sighting{
		BugID:     req.BugID,
		UserID:    claims.Subject,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
		SeenAt:    req.SeenAt,
		Notes:     req.Notes,
	})
	if err != nil {
		if errors.Is(err, service.ErrBugNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "no such bug, create the bug first"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, sightingToResponse(*sighting))
}

func (h *Handler) listSightings(c *gin.Context) {
	sightings, err := h.sightings.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	resp := make([]SightingResponse, len(sightings))
	for i := range sightings {
		resp[i] = sightingToResponse(sightings[i])
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) getSighting(c *gin.Context) {
	sighting, err := h.sightings.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrSightingNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, sightingToResponse(*sighting))
}

func (h *Handler) updateSighting(c *gin.Context) {
	var req sightingUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := h.sightings.Update(c.Request.Context(), c.Param("id"), service.SightingUpdate{
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
		SeenAt:    req.SeenAt,
		Notes:     req.Notes,
	})
	if err != nil {
		if errors.Is(err, service.ErrSightingNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"updated": c.Param("id")})
}

func (h *Handler) deleteSighting(c *gin.Context) {
	id := c.Param("id")
	if err := h.sightings.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrSightingNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": id})
}
