// Package docs registra la especificación OpenAPI servida en /api-docs.
// Se regenera con: swag init -g cmd/api/main.go -o internal/docs
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/auth/register": {
            "post": {
                "description": "Crea un usuario y devuelve un session token. Email y username deben ser únicos.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Registrar usuario",
                "parameters": [
                    {"description": "Datos del usuario", "name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/users.registerRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/users.sessionResponse"}},
                    "400": {"description": "Validation failed", "schema": {"$ref": "#/definitions/users.errorResponse"}},
                    "409": {"description": "Email or username already exists", "schema": {"$ref": "#/definitions/users.errorResponse"}},
                    "429": {"description": "Too Many Requests", "schema": {"$ref": "#/definitions/users.errorResponse"}}
                }
            }
        },
        "/auth/login": {
            "post": {
                "description": "Devuelve el usuario y un session token. Email desconocido y password incorrecto responden igual.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Iniciar sesión",
                "parameters": [
                    {"description": "Credenciales", "name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/users.loginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/users.sessionResponse"}},
                    "400": {"description": "Validation failed", "schema": {"$ref": "#/definitions/users.errorResponse"}},
                    "401": {"description": "Invalid email or password", "schema": {"$ref": "#/definitions/users.errorResponse"}},
                    "429": {"description": "Too Many Requests", "schema": {"$ref": "#/definitions/users.errorResponse"}}
                }
            }
        },
        "/auth/me": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Usuario actual",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/users.meResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/users.errorResponse"}}
                }
            }
        },
        "/auth/logout": {
            "post": {
                "security": [{"BearerAuth": []}],
                "description": "Revoca el token actual hasta su expiración. Solo disponible con TOKEN_REVOCATION=true.",
                "tags": ["auth"],
                "summary": "Cerrar sesión",
                "responses": {
                    "204": {"description": "No Content"},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/users.errorResponse"}}
                }
            }
        },
        "/pets": {
            "get": {
                "description": "Devuelve todas las mascotas, más nuevas primero. El token es opcional.",
                "produces": ["application/json"],
                "tags": ["pets"],
                "summary": "Listar mascotas",
                "parameters": [
                    {"type": "string", "description": "Bearer token (opcional)", "name": "Authorization", "in": "header"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/pets.petListResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/pets.errorResponse"}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "description": "El id lo asigna el store; un id enviado por el cliente se ignora.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["pets"],
                "summary": "Crear mascota",
                "parameters": [
                    {"description": "Datos de la mascota", "name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/pets.createPetRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/pets.petDataResponse"}},
                    "400": {"description": "Validation failed", "schema": {"$ref": "#/definitions/pets.errorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/pets.errorResponse"}}
                }
            }
        },
        "/pets/{petID}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["pets"],
                "summary": "Obtener mascota",
                "parameters": [
                    {"type": "string", "description": "ID de la mascota", "name": "petID", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/pets.petDataResponse"}},
                    "404": {"description": "Pet with ID <id> not found", "schema": {"$ref": "#/definitions/pets.errorResponse"}}
                }
            },
            "put": {
                "security": [{"BearerAuth": []}],
                "description": "Actualización parcial: solo se modifican los campos enviados.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["pets"],
                "summary": "Actualizar mascota",
                "parameters": [
                    {"type": "string", "description": "ID de la mascota", "name": "petID", "in": "path", "required": true},
                    {"description": "Campos a modificar (al menos uno)", "name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/pets.updatePetRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/pets.petDataResponse"}},
                    "400": {"description": "Validation failed", "schema": {"$ref": "#/definitions/pets.errorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/pets.errorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/pets.errorResponse"}}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["pets"],
                "summary": "Eliminar mascota",
                "parameters": [
                    {"type": "string", "description": "ID de la mascota", "name": "petID", "in": "path", "required": true}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/pets.errorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/pets.errorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "apperr.FieldError": {
            "type": "object",
            "properties": {
                "field": {"type": "string"},
                "message": {"type": "string"}
            }
        },
        "auth.Identity": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "username": {"type": "string"},
                "email": {"type": "string"},
                "created_at": {"type": "string"}
            }
        },
        "users.registerRequest": {
            "type": "object",
            "properties": {
                "username": {"type": "string", "example": "alice123"},
                "email": {"type": "string", "example": "alice@example.com"},
                "password": {"type": "string", "example": "s3cretpass"}
            }
        },
        "users.loginRequest": {
            "type": "object",
            "properties": {
                "email": {"type": "string", "example": "alice@example.com"},
                "password": {"type": "string", "example": "s3cretpass"}
            }
        },
        "users.Session": {
            "type": "object",
            "properties": {
                "user": {"$ref": "#/definitions/auth.Identity"},
                "token": {"type": "string"}
            }
        },
        "users.sessionResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "string", "example": "success"},
                "data": {"$ref": "#/definitions/users.Session"}
            }
        },
        "users.meResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "string", "example": "success"},
                "data": {
                    "type": "object",
                    "properties": {
                        "user": {"$ref": "#/definitions/auth.Identity"}
                    }
                }
            }
        },
        "users.errorResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "string", "example": "fail"},
                "message": {"type": "string"},
                "errors": {"type": "array", "items": {"$ref": "#/definitions/apperr.FieldError"}}
            }
        },
        "pets.petResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "integer", "example": 1},
                "name": {"type": "string", "example": "Rex"},
                "species": {"type": "string", "example": "Dog"},
                "age": {"type": "integer", "example": 3},
                "breed": {"type": "string", "example": "Beagle"},
                "description": {"type": "string"},
                "created_at": {"type": "string"},
                "updated_at": {"type": "string"}
            }
        },
        "pets.createPetRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string", "example": "Rex"},
                "species": {"type": "string", "example": "Dog"},
                "age": {"type": "integer", "example": 3},
                "breed": {"type": "string", "example": "Beagle"},
                "description": {"type": "string"}
            }
        },
        "pets.updatePetRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "species": {"type": "string"},
                "age": {"type": "integer", "example": 4},
                "breed": {"type": "string"},
                "description": {"type": "string"}
            }
        },
        "pets.petDataResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "string", "example": "success"},
                "data": {
                    "type": "object",
                    "properties": {
                        "pet": {"$ref": "#/definitions/pets.petResponse"}
                    }
                }
            }
        },
        "pets.petListResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "string", "example": "success"},
                "results": {"type": "integer", "example": 1},
                "data": {
                    "type": "object",
                    "properties": {
                        "pets": {"type": "array", "items": {"$ref": "#/definitions/pets.petResponse"}}
                    }
                }
            }
        },
        "pets.errorResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "string", "example": "fail"},
                "message": {"type": "string"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "Bearer <token>",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "SecurePetStore API",
	Description:      "API REST de mascotas con autenticación JWT, validación y rate limiting.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
