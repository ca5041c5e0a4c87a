package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestIDHeader names the header the request id travels in, both inbound
// and on the response
const RequestIDHeader = "X-Request-ID"

// requestIDKey is the gin context key the id is stored under
const requestIDKey = "request_id"

// RequestID tags every request with an id for log correlation. A caller-sent
// id is passed through unchanged so load drivers can trace their own
// requests; otherwise a fresh uuid is minted. The id is echoed on the
// response and stored in the gin context for downstream handlers.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

// GetRequestID returns the request id tagged by RequestID, or an empty
// string outside of it
func GetRequestID(c *gin.Context) string {
	id, _ := c.Value(requestIDKey).(string)
	return id
}
