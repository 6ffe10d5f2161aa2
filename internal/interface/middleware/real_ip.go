package middleware

import (
	"net"
	"strings"

	"github.com/gin-gonic/gin"
)

const CtxRealIPKey = "real_ip"

// RealIP resolves the originating client address for the access log.
// CF-Connecting-IP wins, then the left-most X-Forwarded-For hop, then
// whatever gin derives from the socket.
func RealIP() gin.HandlerFunc {
	return func(c *gin.Context) {
		if cf := strings.TrimSpace(c.GetHeader("CF-Connecting-IP")); cf != "" {
			if ip := net.ParseIP(cf); ip != nil {
				c.Set(CtxRealIPKey, ip.String())
				c.Next()
				return
			}
		}
		if xff := c.GetHeader("X-Forwarded-For"); xff != "" {
			first := strings.TrimSpace(strings.Split(xff, ",")[0])
			if ip := net.ParseIP(first); ip != nil {
				c.Set(CtxRealIPKey, ip.String())
				c.Next()
				return
			}
		}
		c.Set(CtxRealIPKey, c.ClientIP())
		c.Next()
	}
}
