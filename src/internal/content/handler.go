package content

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type Handler interface {
	GetResources(c *gin.Context)
	GetSounds(c *gin.Context)
}

type handler struct{}

func NewHandler() Handler {
	return &handler{}
}

func (h *handler) GetResources(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    Resources(),
		"message": "Resources retrieved successfully",
	})
}

func (h *handler) GetSounds(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    Sounds(),
		"message": "Sounds retrieved successfully",
	})
}
