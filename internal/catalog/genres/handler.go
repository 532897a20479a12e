package genres

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

type Handler struct{ svc *Service }

func RegisterRoutes(r gin.IRoutes, svc *Service) {
	h := &Handler{svc: svc}
	r.GET("/genres", h.ListGenres)
	r.GET("/genres/:id", h.GetGenre)
}

// ListGenres godoc
// @Summary  List genres ordered by name
// @Tags     genres
// @Produce  json
// @Success  200 {array} Genre
// @Router   /genres [get]
func (h *Handler) ListGenres(c *gin.Context) {
	resp, err := h.svc.ListGenres(c.Request.Context())
	if err != nil {
		log.Printf("[ERROR] list genres: %v", err)
		c.JSON(toHTTPStatus(err), gin.H{"error": ErrInternal("failed to list genres")})
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetGenre godoc
// @Summary  Get one genre
// @Tags     genres
// @Produce  json
// @Param    id path int true "genre id"
// @Success  200 {object} Genre
// @Failure  400 {object} map[string]any
// @Failure  404 {object} map[string]any
// @Router   /genres/{id} [get]
func (h *Handler) GetGenre(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 8)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": ErrInvalid("invalid id")})
		return
	}
	resp, err := h.svc.GetGenre(c.Request.Context(), uint8(id))
	if err != nil {
		c.JSON(toHTTPStatus(err), gin.H{"error": err})
		return
	}
	c.JSON(http.StatusOK, resp)
}
