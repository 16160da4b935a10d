package handlers

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/watchparty/internal/models"
	"github.com/joshua-takyi/watchparty/internal/services"
)

// Home lists the genres and the soonest upcoming parties.
func Home(p *services.PartyService) gin.HandlerFunc {
	return func(c *gin.Context) {
		upcoming, err := p.ListSoonest(c.Request.Context(), services.HomepageLimit)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(gin.H{
			"genres":   p.Genres(),
			"upcoming": p.Views(upcoming),
		}, ""))
	}
}

func ListGenre(p *services.PartyService) gin.HandlerFunc {
	return func(c *gin.Context) {
		genre := c.Param("name")

		parties, err := p.ListUpcoming(c.Request.Context(), genre)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(gin.H{
			"genre":   genre,
			"genres":  p.Genres(),
			"parties": p.Views(parties),
		}, ""))
	}
}

// HostParty creates a party from a JSON body or an HTML form post. Form posts
// are redirected to the genre page like the browser flow expects.
func HostParty(p *services.PartyService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input models.CreatePartyInput
		if err := c.ShouldBind(&input); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid request payload"))
			return
		}

		party, err := p.CreateParty(c.Request.Context(), input)
		if err != nil {
			respondError(c, err)
			return
		}

		location := "/genre/" + url.PathEscape(party.Genre)
		if isFormPost(c) {
			c.Redirect(http.StatusSeeOther, location)
			return
		}

		c.Header("Location", location)
		c.JSON(http.StatusCreated, models.SuccessResponse(party, "Party created successfully"))
	}
}

// ListUpcoming is the JSON feed of every upcoming party, optionally ?genre= filtered.
func ListUpcoming(p *services.PartyService) gin.HandlerFunc {
	return func(c *gin.Context) {
		parties, err := p.ListUpcoming(c.Request.Context(), c.Query("genre"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, parties)
	}
}

func isFormPost(c *gin.Context) bool {
	switch c.ContentType() {
	case gin.MIMEPOSTForm, gin.MIMEMultipartPOSTForm:
		return true
	}
	return false
}
