package doc

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/swaggo/swag"
)

// readDoc returns the document registered by the generated docs package
var readDoc = func() (string, error) { return swag.ReadDoc() }

// fallbackDoc is served until `swag init -g cmd/api/main.go` has been run
const fallbackDoc = `{
  "swagger": "2.0",
  "info": {
    "title": "Arena API",
    "description": "Two-outcome prediction markets: escrowed pools, oracle settlement and pro-rata claims.",
    "version": "1.0"
  },
  "basePath": "/",
  "paths": {}
}`

type handler struct {
	environment string
}

func (h *handler) serveSwaggerJSON(c *gin.Context) {
	raw, err := readDoc()
	if err != nil {
		raw = fallbackDoc
	}

	var swaggerData map[string]interface{}
	if err := json.Unmarshal([]byte(raw), &swaggerData); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to parse Swagger doc"})
		return
	}

	swaggerData["servers"] = serversFor(h.environment)

	components, _ := swaggerData["components"].(map[string]interface{})
	if components == nil {
		components = make(map[string]interface{})
		swaggerData["components"] = components
	}
	schemes, _ := components["securitySchemes"].(map[string]interface{})
	if schemes == nil {
		schemes = make(map[string]interface{})
		components["securitySchemes"] = schemes
	}
	schemes["BearerAuth"] = map[string]interface{}{
		"type":         "http",
		"scheme":       "bearer",
		"bearerFormat": "PASETO",
		"description":  "Access token returned by /api/v1/users/login",
	}

	c.JSON(http.StatusOK, swaggerData)
}

func serversFor(environment string) []map[string]interface{} {
	servers := []map[string]interface{}{
		{"url": "http://localhost:8080/api/v1", "description": "Local Development Server"},
	}
	if environment == "staging" || environment == "production" {
		servers = append(servers, map[string]interface{}{
			"url":         "https://" + environment + ".arena.local/api/v1",
			"description": environment,
		})
	}
	return servers
}

const elementsHTML = `<!DOCTYPE html>
<html>
<head>
    <title>Arena API Documentation</title>
    <meta charset="utf-8"/>
    <meta name="viewport" content="width=device-width, initial-scale=1">
    <script src="https://unpkg.com/@stoplight/elements/web-components.min.js"></script>
    <link rel="stylesheet" href="https://unpkg.com/@stoplight/elements/styles.min.css">
    <style>
        body { margin: 0; padding: 0; height: 100vh; }
        elements-api { height: 100%; }
    </style>
</head>
<body>
    <elements-api apiDescriptionUrl="/swagger/doc.json" router="hash" layout="sidebar"></elements-api>
</body>
</html>`

func serveElements(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(elementsHTML))
}

// Init mounts the swagger document and its viewer
func Init(r *gin.Engine, environment string) {
	h := &handler{environment: environment}
	r.GET("/swagger/doc.json", h.serveSwaggerJSON)
	r.GET("/docs/*any", serveElements)
}
