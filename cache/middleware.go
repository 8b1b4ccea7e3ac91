package cache

import (
	"bytes"
	"net/http"

	"github.com/gin-gonic/gin"
)

const headerName = "X-Cache"

type recordingWriter struct {
	gin.ResponseWriter
	body bytes.Buffer
}

func (w *recordingWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *recordingWriter) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}

// Handler serves GET requests from the cache, storing successful responses under keyFunc(c)
func (pc *PageCache) Handler(keyFunc func(c *gin.Context) string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet {
			c.Next()
			return
		}
		key := keyFunc(c)
		if e, ok := pc.Get(key); ok {
			c.Header(headerName, "HIT")
			c.Data(http.StatusOK, e.ContentType, e.Body)
			c.Abort()
			return
		}
		c.Header(headerName, "MISS")
		w := &recordingWriter{ResponseWriter: c.Writer}
		c.Writer = w
		c.Next()
		if w.Status() == http.StatusOK {
			pc.Set(key, w.Header().Get("Content-Type"), w.body.Bytes())
		}
	}
}
