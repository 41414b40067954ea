package render

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/saadkhan011/calcrew-frontend/internal/http/flash"
	"github.com/saadkhan011/calcrew-frontend/internal/http/middleware"
	"github.com/saadkhan011/calcrew-frontend/pkg/view"
)

func RedirectWithFlash(c *gin.Context, codec *flash.Codec, location string, kind view.FlashKind, msg string) {
	middleware.SetFlashCookie(c, codec, view.Flash{Kind: kind, Message: msg})
	c.Redirect(http.StatusFound, location)
}
