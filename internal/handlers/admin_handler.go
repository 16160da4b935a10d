package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/watchparty/internal/middleware"
	"github.com/joshua-takyi/watchparty/internal/models"
	"github.com/joshua-takyi/watchparty/internal/services"
)

// AdminPanel returns everything the admin page needs in one payload.
func AdminPanel(a *services.AdminService, p *services.PartyService) gin.HandlerFunc {
	return func(c *gin.Context) {
		parties, err := a.ListAll(c.Request.Context(), c.Query(middleware.AdminKeyParam))
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(gin.H{
			"genres":  p.Genres(),
			"parties": p.Views(parties),
			"total":   len(parties),
		}, ""))
	}
}

func AdminListParties(a *services.AdminService) gin.HandlerFunc {
	return func(c *gin.Context) {
		parties, err := a.ListAll(c.Request.Context(), c.Query(middleware.AdminKeyParam))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, parties)
	}
}

func AdminUpdateParty(a *services.AdminService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var patch models.PartyPatch
		if err := c.ShouldBindJSON(&patch); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid request payload"))
			return
		}

		party, err := a.UpdateParty(c.Request.Context(), c.Query(middleware.AdminKeyParam), c.Param("id"), patch)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, party)
	}
}

func AdminDeleteParty(a *services.AdminService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := a.DeleteParty(c.Request.Context(), c.Query(middleware.AdminKeyParam), c.Param("id")); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}
