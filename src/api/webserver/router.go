// Package webserver serves the read-only status endpoints.
package webserver

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/stake-plus/stackbuddy/src/actions/commands"
)

// ModuleName is reported by /healthz.
const ModuleName = "stackbuddy"

type commandView struct {
	Token    string `json:"token"`
	Animated bool   `json:"animated"`
}

// NewRouter builds the gin engine. An empty allowOrigins disables CORS.
func NewRouter(allowOrigins []string) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	attachRoutes(r, allowOrigins)
	return r
}

func attachRoutes(r *gin.Engine, allowOrigins []string) {
	if len(allowOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:  allowOrigins,
			AllowMethods:  []string{"GET", "OPTIONS"},
			AllowHeaders:  []string{"Origin", "Content-Type"},
			ExposeHeaders: []string{"Content-Length"},
		}))
	}

	r.GET("/healthz", health)

	v1 := r.Group("/v1")
	{
		v1.GET("/commands", listCommands)
	}
}

func health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "module": ModuleName})
}

func listCommands(c *gin.Context) {
	all := commands.All()
	out := make([]commandView, 0, len(all))
	for _, cmd := range all {
		out = append(out, commandView{Token: cmd.Token, Animated: cmd.Animate})
	}
	c.JSON(http.StatusOK, gin.H{"commands": out})
}
