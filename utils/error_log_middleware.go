package utils

import (
	"log"

	"github.com/gin-gonic/gin"
)

type errorLogWriter struct {
	gin.ResponseWriter
	gc *gin.Context
}

func (w errorLogWriter) logBody(body string) {
	status := w.gc.Writer.Status()
	if status >= 400 {
		log.Printf("[DEBUG ERROR]: %s %s, status %d, body: %s", w.gc.Request.Method, w.gc.Request.URL.Path, status, body)
	}
}

func (w errorLogWriter) Write(b []byte) (int, error) {
	w.logBody(string(b))
	return w.ResponseWriter.Write(b)
}

func (w errorLogWriter) WriteString(s string) (int, error) {
	w.logBody(s)
	return w.ResponseWriter.WriteString(s)
}

// ErrorLogMiddleware logs bodies of failed responses. It must come before gzip
func ErrorLogMiddleware(c *gin.Context) {
	blw := &errorLogWriter{gc: c, ResponseWriter: c.Writer}
	c.Writer = blw
	c.Next()
}
