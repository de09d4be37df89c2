// Package docs registra la especificación OpenAPI de la API con swag.
// Se mantiene a mano siguiendo el formato que genera `swag init`.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/api/animes": {
            "get": {
                "produces": ["application/json"],
                "tags": ["animes"],
                "summary": "Listar animes",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/Envelope"}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["animes"],
                "summary": "Crear anime",
                "parameters": [
                    {"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/AnimeRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/Envelope"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/Envelope"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/Envelope"}}
                }
            }
        },
        "/api/animes/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["animes"],
                "summary": "Obtener un anime",
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/Envelope"}}
                }
            },
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["animes"],
                "summary": "Actualizar anime (parcial)",
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true},
                    {"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/AnimeRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/Envelope"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/Envelope"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/Envelope"}}
                }
            },
            "delete": {
                "produces": ["application/json"],
                "tags": ["animes"],
                "summary": "Borrar anime",
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/Envelope"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/Envelope"}}
                }
            }
        }
    },
    "definitions": {
        "AnimeRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string", "example": "Naruto"},
                "imageUrl": {"type": "string", "example": "https://example.com/naruto.png"},
                "status": {"type": "string", "enum": ["Assistindo", "Completo", "Dropado", "Planejo Assistir"]},
                "totalEpisodes": {"type": "integer", "example": 220},
                "watchedEpisodes": {"type": "integer", "example": 50},
                "score": {"type": "integer", "example": 8}
            }
        },
        "AnimeResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "name": {"type": "string"},
                "imageUrl": {"type": "string"},
                "status": {"type": "string", "enum": ["Assistindo", "Completo", "Dropado", "Planejo Assistir"]},
                "totalEpisodes": {"type": "integer"},
                "watchedEpisodes": {"type": "integer"},
                "score": {"type": "integer"},
                "createdAt": {"type": "string", "format": "date-time"},
                "updatedAt": {"type": "string", "format": "date-time"}
            }
        },
        "Violation": {
            "type": "object",
            "properties": {
                "field": {"type": "string"},
                "message": {"type": "string"}
            }
        },
        "Envelope": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "data": {},
                "message": {"type": "string"},
                "error": {"type": "string"},
                "details": {"type": "array", "items": {"$ref": "#/definitions/Violation"}}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Anime Tracker API",
	Description:      "Lista personal de animes: status, episodios y nota.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
