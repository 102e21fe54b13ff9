// Package docs serves the embedded OpenAPI document and a Swagger UI page.
package docs

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed openapi.yaml
var specYAML []byte

var (
	specOnce sync.Once
	specJSON []byte
	specErr  error
)

// SpecJSON converts the embedded YAML document once and caches the result.
func SpecJSON() ([]byte, error) {
	specOnce.Do(func() {
		var doc map[string]any
		if err := yaml.Unmarshal(specYAML, &doc); err != nil {
			specErr = fmt.Errorf("parse openapi yaml: %w", err)
			return
		}
		specJSON, specErr = json.Marshal(doc)
	})
	return specJSON, specErr
}

// OpenAPI serves the document as JSON.
func OpenAPI() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := SpecJSON()
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write(body)
	}
}

const swaggerPage = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8" />
  <title>Fleet API docs</title>
  <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css" />
</head>
<body>
  <div id="swagger-ui"></div>
  <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js" crossorigin></script>
  <script>
    window.onload = () => {
      window.ui = SwaggerUIBundle({ url: "%s", dom_id: "#swagger-ui" });
    };
  </script>
</body>
</html>
`

// UI serves the Swagger UI page pointing at specPath.
func UI(specPath string) http.HandlerFunc {
	page := []byte(fmt.Sprintf(swaggerPage, specPath))
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write(page)
	}
}
