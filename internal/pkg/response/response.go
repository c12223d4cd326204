package response

import "github.com/gin-gonic/gin"

// Envelope: {success, message?, data|errors}. Every error carries a
// human-readable message suitable for direct display in the admin UI.

func Success(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, gin.H{
		"success": true,
		"data":    data,
	})
}

func SuccessMessage(c *gin.Context, statusCode int, message string, data interface{}) {
	body := gin.H{
		"success": true,
		"message": message,
	}
	if data != nil {
		body["data"] = data
	}
	c.JSON(statusCode, body)
}

func Error(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, gin.H{
		"success": false,
		"message": message,
	})
}

// ValidationError returns 422 with per-field messages.
func ValidationError(c *gin.Context, errs map[string]string) {
	c.JSON(422, gin.H{
		"success": false,
		"message": "The given data was invalid.",
		"errors":  errs,
	})
}
