// Package assets provides the static files of the site and resolves asset
// paths to the URLs they are served from.
// Files under static/ are embedded and laid out the way they appear below the
// site root, so static/assets/images/resources/logo-1.png is served at
// /assets/images/resources/logo-1.png.
package assets

import (
	"crypto/sha256"
	"embed"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"zgo.at/zcache/v2"
)

// Favicon is the embedded favicon.png file served at /favicon.ico
//
//go:embed favicon.png
var Favicon []byte

//go:embed static
var static embed.FS

// ErrAssetNotFound is returned by a strict Resolver for paths missing from
// its filesystem.
var ErrAssetNotFound = errors.New("asset not found")

// Embedded returns the embedded static files rooted at the site root.
func Embedded() fs.FS {
	sub, err := fs.Sub(static, "static")
	if err != nil {
		// static is a compile-time constant directory.
		panic(err)
	}

	return sub
}

// FS returns the directory at root when set, the embedded files otherwise.
func FS(root string) fs.FS {
	if root == "" {
		return Embedded()
	}

	return os.DirFS(root)
}

// Resolver turns a logical asset path into the URL it is served from.
type Resolver struct {
	baseURL string
	files   fs.FS
	strict  bool
}

// NewResolver returns a Resolver that prefixes paths with baseURL. When
// strict is set, paths are checked against files.
func NewResolver(baseURL string, files fs.FS, strict bool) *Resolver {
	return &Resolver{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		files:   files,
		strict:  strict,
	}
}

// Asset returns the URL of the asset at path.
func (r *Resolver) Asset(path string) (string, error) {
	clean := strings.TrimLeft(path, "/")
	if clean == "" {
		return "", fmt.Errorf("%w: empty path", ErrAssetNotFound)
	}

	if r.strict {
		if _, err := fs.Stat(r.files, clean); err != nil {
			return "", fmt.Errorf("%w: %s", ErrAssetNotFound, clean)
		}
	}

	return r.baseURL + "/" + clean, nil
}

// etagTTL bounds how long a computed ETag is trusted, so edits to files
// under a disk root show up without a restart.
const etagTTL = time.Minute

// Handler serves files with Cache-Control, Vary and ETag handling. Request
// paths map directly onto files, so mount it on the prefix the files live
// under (e.g. /assets/).
func Handler(files fs.FS, maxAge time.Duration) http.Handler {
	etags := zcache.New[string, string](etagTTL, 2*etagTTL)

	cacheControl := "public, max-age=" + strconv.Itoa(int(maxAge.Seconds()))
	fileServer := http.FileServer(http.FS(files))

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Vary", "Accept-Encoding")
		w.Header().Set("Cache-Control", cacheControl)

		if et := etagFor(etags, files, r.URL.Path); et != "" {
			w.Header().Set("ETag", et)
			if inm := r.Header.Get("If-None-Match"); inm != "" && inm == et {
				w.WriteHeader(http.StatusNotModified)

				return
			}
		}
		fileServer.ServeHTTP(w, r)
	})
}

// etagFor returns the ETag of the file served at urlPath, or "" when there
// is no such file.
func etagFor(etags *zcache.Cache[string, string], files fs.FS, urlPath string) string {
	if et, ok := etags.Get(urlPath); ok {
		return et
	}

	name := strings.TrimPrefix(urlPath, "/")
	if !fs.ValidPath(name) {
		return ""
	}

	et, err := fileETag(files, name)
	if err != nil {
		return ""
	}
	etags.Set(urlPath, et)

	return et
}

// FaviconHandler serves the embedded favicon.
func FaviconHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "public, max-age=86400")
	_, _ = w.Write(Favicon)
}

func fileETag(files fs.FS, path string) (string, error) {
	f, err := files.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}

	return `W/"` + hex.EncodeToString(h.Sum(nil)) + `"`, nil
}
