package response

import (
	"github.com/gin-gonic/gin"
)

// JSON writes a success payload as-is. The portal wire format has no
// envelope: list returns a bare array, create/update return the record.
func JSON(c *gin.Context, status int, payload any) {
	c.JSON(status, payload)
}

// Message writes a `{"message": ...}` confirmation body.
func Message(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"message": message})
}

// Error writes a failure as a JSON message plus a machine-readable code.
func Error(c *gin.Context, status int, code, message string) {
	c.JSON(status, gin.H{
		"message": message,
		"code":    code,
	})
}
