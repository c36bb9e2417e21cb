//go:build swagger

package httpapi

import (
	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger"
	"github.com/swaggo/swag"
)

// openAPIDoc describes the routes of NewMux. Keep it in step with the godoc
// annotations in server.go.
const openAPIDoc = `{
  "swagger": "2.0",
  "info": {"title": "{{.Title}}", "description": "{{.Description}}", "version": "{{.Version}}"},
  "basePath": "{{.BasePath}}",
  "paths": {
    "/healthz": {"get": {"summary": "Liveness probe", "produces": ["text/plain"], "responses": {"200": {"description": "ok"}}}},
    "/readyz": {"get": {"summary": "Readiness probe", "produces": ["text/plain"], "responses": {"200": {"description": "ready"}, "503": {"description": "loading"}}}},
    "/models": {"get": {"summary": "List registry models", "produces": ["application/json"], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/types.ModelsResponse"}}}}},
    "/status": {"get": {"summary": "Resident models and counters", "produces": ["application/json"], "responses": {"200": {"description": "OK"}}}},
    "/embed": {"post": {
      "summary": "Sentence vector for one line of text",
      "consumes": ["application/json"], "produces": ["application/json"],
      "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/types.EmbedRequest"}}],
      "responses": {
        "200": {"description": "OK", "schema": {"$ref": "#/definitions/types.EmbedResponse"}},
        "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/types.ErrorResponse"}},
        "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/types.ErrorResponse"}},
        "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/types.ErrorResponse"}}
      }}},
    "/models/{id}/snapshot": {
      "get": {"summary": "Capture a model into its native serialized form", "produces": ["application/octet-stream"],
        "parameters": [{"in": "path", "name": "id", "type": "string", "required": true}],
        "responses": {"200": {"description": "serialized model", "schema": {"type": "file"}}, "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/types.ErrorResponse"}}}},
      "put": {"summary": "Restore a model from its serialized form", "consumes": ["application/octet-stream"], "produces": ["application/json"],
        "parameters": [{"in": "path", "name": "id", "type": "string", "required": true}, {"in": "query", "name": "format", "type": "string"}],
        "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/types.ErrorResponse"}}}}
    }
  },
  "definitions": {
    "types.EmbedRequest": {"type": "object", "required": ["text"], "properties": {"model": {"type": "string"}, "text": {"type": "string"}}},
    "types.EmbedResponse": {"type": "object", "properties": {"model": {"type": "string"}, "dim": {"type": "integer"}, "vector": {"type": "array", "items": {"type": "number"}}}},
    "types.Model": {"type": "object", "properties": {"id": {"type": "string"}, "name": {"type": "string"}, "path": {"type": "string"}, "format": {"type": "string"}}},
    "types.ModelsResponse": {"type": "object", "properties": {"models": {"type": "array", "items": {"$ref": "#/definitions/types.Model"}}}},
    "types.ErrorResponse": {"type": "object", "properties": {"error": {"type": "string"}, "code": {"type": "integer"}}}
  }
}`

// SwaggerInfo is the registered document; main may override Host.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	BasePath:         "/",
	Title:            "modelpack API",
	Description:      "Serve, capture and restore native embedding models.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  openAPIDoc,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}

// MountSwagger serves the Swagger UI under /swagger/.
func MountSwagger(r chi.Router) {
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))
}
