// Package flash stores transient one-shot messages in the session,
// surfaced on the next page load after a redirect.
package flash

import (
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const (
	successKey = "flash_success"
	errorKey   = "flash_error"
)

// Success queues a success message for the next request.
func Success(c *gin.Context, message string) {
	add(c, successKey, message)
}

// Error queues an error message for the next request.
func Error(c *gin.Context, message string) {
	add(c, errorKey, message)
}

func add(c *gin.Context, key, message string) {
	session := sessions.Default(c)
	session.AddFlash(message, key)
	_ = session.Save()
}

// Take pops all queued messages, clearing them from the session.
func Take(c *gin.Context) (successes, errs []string) {
	session := sessions.Default(c)
	for _, f := range session.Flashes(successKey) {
		if s, ok := f.(string); ok {
			successes = append(successes, s)
		}
	}
	for _, f := range session.Flashes(errorKey) {
		if s, ok := f.(string); ok {
			errs = append(errs, s)
		}
	}
	_ = session.Save()
	return successes, errs
}
