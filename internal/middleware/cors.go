package middleware

import (
	"net/http" // HTTP methods and status codes
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
)

// AllowedHeaders are the request headers browser clients of the admin API send
var AllowedHeaders = []string{"authorization", "x-client-info", "apikey", "content-type"}

var allowedMethods = []string{http.MethodGet, http.MethodPost, http.MethodOptions}

// CORS answers every OPTIONS request with 200. Requests carrying an Origin
// header are negotiated by rs/cors alone; requests without one (curl, server
// to server) get static wildcard headers so every response still allows any origin.
func CORS() gin.HandlerFunc {
	c := cors.New(cors.Options{
		AllowedOrigins:       []string{"*"},
		AllowedMethods:       allowedMethods,
		AllowedHeaders:       AllowedHeaders,
		MaxAge:               86400,
		OptionsSuccessStatus: http.StatusOK,
	})
	return func(ctx *gin.Context) {
		if ctx.GetHeader("Origin") != "" {
			c.HandlerFunc(ctx.Writer, ctx.Request) // rs/cors skips requests without an Origin
		} else {
			ctx.Header("Access-Control-Allow-Origin", "*")
			if ctx.Request.Method == http.MethodOptions {
				ctx.Header("Access-Control-Allow-Headers", strings.Join(AllowedHeaders, ", "))
				ctx.Header("Access-Control-Allow-Methods", strings.Join(allowedMethods, ", "))
			}
		}
		if ctx.Request.Method == http.MethodOptions {
			ctx.AbortWithStatus(http.StatusOK)
			return
		}
		ctx.Next()
	}
}
