// Package swagger serves the OpenAPI description of the read API.
package swagger

import (
	"context"
	"net/http"
	"strconv"
)

// Doc routes.
const (
	DocsPath     = "/api-docs"
	DocumentPath = "/openapi.yaml"
)

type asset struct {
	contentType string
	body        []byte
}

// Register attaches the ReDoc page and the embedded OpenAPI document to mux.
// Both routes answer GET and HEAD only.
func Register(_ context.Context, mux *http.ServeMux) {
	if mux == nil {
		panic("mux is nil")
	}
	mux.Handle(DocsPath, serveAsset(asset{contentType: "text/html; charset=utf-8", body: []byte(docsPage)}))
	mux.Handle(DocumentPath, serveAsset(asset{contentType: "application/yaml; charset=utf-8", body: OpenAPI}))
}

func serveAsset(a asset) http.HandlerFunc {
	length := strconv.Itoa(len(a.body))
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			w.Header().Set("Allow", "GET, HEAD")
			http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
			return
		}
		w.Header().Set("Content-Type", a.contentType)
		w.Header().Set("Content-Length", length)
		if r.Method == http.MethodHead {
			return
		}
		_, _ = w.Write(a.body)
	}
}

const docsPage = `<!doctype html>
<html>
  <head>
    <meta charset="utf-8">
    <title>NBABrain API Docs</title>
    <style>body{margin:0;padding:0}</style>
  </head>
  <body>
    <redoc id="redoc-container"></redoc>
    <script src="https://cdn.redoc.ly/redoc/latest/bundles/redoc.standalone.js"></script>
    <script>Redoc.init('` + DocumentPath + `', { suppressWarnings: true }, document.getElementById('redoc-container'));</script>
  </body>
</html>`
