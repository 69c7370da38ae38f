package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/matchdaylabs/tribuna/internal/gateway"
)

// GatewayMiddleware injects the payment-gateway client into the request
// context. The client may be nil when the gateway is not configured.
func GatewayMiddleware(client gateway.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("gateway_client", client)
		c.Next()
	}
}

func GetGatewayClient(c *gin.Context) gateway.Client {
	v, exists := c.Get("gateway_client")
	if !exists {
		return nil
	}
	client, ok := v.(gateway.Client)
	if !ok {
		return nil
	}
	return client
}
