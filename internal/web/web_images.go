package web

import (
	"errors"
	"io/fs"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-while/go-mortgagesim/internal/assets"
)

// imageTypes overrides extension based detection for the formats the
// simulator ships; anything else falls back to http.ServeContent sniffing.
var imageTypes = map[string]string{
	".ico":  "image/x-icon",
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".gif":  "image/gif",
	".svg":  "image/svg+xml",
	".webp": "image/webp",
	".avif": "image/avif",
}

// openImage opens a resolved image; tests swap it to simulate I/O failures.
var openImage = os.Open

// imagePage streams a file from the image root.
// Missing files and paths outside the root get the same 404 as unknown routes.
func (s *WebServer) imagePage(c *gin.Context) {
	name := c.Param("filepath")

	fullPath, err := assets.Resolve(s.Config.ImageDir, name)
	if err != nil {
		if assets.IsNotFound(err) {
			if s.Config.Debug {
				log.Printf("[WEB]: Image %q not served: %v", name, err)
			}
			s.notFound(c)
			return
		}
		log.Printf("[WEB]: Error resolving image %q: %v", name, err)
		s.renderError(c, http.StatusInternalServerError)
		return
	}

	f, err := openImage(fullPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			s.notFound(c)
			return
		}
		log.Printf("[WEB]: Error opening image %s: %v", fullPath, err)
		s.renderError(c, http.StatusInternalServerError)
		return
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		log.Printf("[WEB]: Error reading image %s: %v", fullPath, err)
		s.renderError(c, http.StatusInternalServerError)
		return
	}

	if ct, ok := imageTypes[strings.ToLower(filepath.Ext(fullPath))]; ok {
		c.Header("Content-Type", ct)
	}
	c.Header("Cache-Control", "public, max-age=3600") // browser caches an hour
	http.ServeContent(c.Writer, c.Request, info.Name(), info.ModTime(), f)
}
