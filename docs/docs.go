// Package docs registers the OpenAPI document served at /swagger/*.
// Regenerate with: swag init -g cmd/maturity/main.go -o docs
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
        "/api/auth/login": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Login",
                "parameters": [
                    {"description": "Login credentials", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.loginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.loginResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "429": {"description": "Too Many Requests", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/api/domains": {
            "get": {
                "produces": ["application/json"],
                "tags": ["domains"],
                "summary": "List domains with subdomains",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.domainsResponse"}}
                }
            }
        },
        "/api/assessment/validate-code": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["assessment"],
                "summary": "Validate assessment code",
                "parameters": [
                    {"description": "Code", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.validateCodeRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.validCodeResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/api/organization-requests": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["organization-requests"],
                "summary": "Submit organization request",
                "parameters": [
                    {"description": "Request", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.organizationRequestRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created"},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/api/hours/entries": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["hours"],
                "summary": "Log hours",
                "parameters": [
                    {"description": "Entry; date parts default to today", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.hoursEntryRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created"},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "handler.errorResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean", "example": false},
                "error": {"type": "string"},
                "details": {"type": "string"}
            }
        },
        "handler.loginRequest": {
            "type": "object",
            "required": ["username", "password"],
            "properties": {
                "username": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "handler.loginResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean", "example": true},
                "token": {"type": "string"},
                "user": {"type": "object"}
            }
        },
        "handler.domainsResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean", "example": true},
                "domains": {"type": "array", "items": {"type": "object"}}
            }
        },
        "handler.validateCodeRequest": {
            "type": "object",
            "properties": {
                "code": {"type": "string"}
            }
        },
        "handler.validCodeResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean", "example": true},
                "valid": {"type": "boolean"},
                "code": {"type": "string"},
                "organization": {"type": "string"},
                "questions": {"type": "array", "items": {"type": "string"}}
            }
        },
        "handler.organizationRequestRequest": {
            "type": "object",
            "required": ["organization_name", "contact_name", "email", "request_type"],
            "properties": {
                "organization_name": {"type": "string"},
                "contact_name": {"type": "string"},
                "email": {"type": "string"},
                "phone": {"type": "string"},
                "request_type": {"type": "string", "enum": ["demo", "assessment", "consultation", "other"]},
                "message": {"type": "string"}
            }
        },
        "handler.hoursEntryRequest": {
            "type": "object",
            "required": ["client", "hours"],
            "properties": {
                "client": {"type": "string"},
                "domain": {"type": "string"},
                "subdomain": {"type": "string"},
                "hours": {"type": "number"},
                "notes": {"type": "string"},
                "day": {"type": "integer"},
                "month": {"type": "integer"},
                "year": {"type": "integer"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
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
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Maturity Assessment API",
	Description:      "Admin console, public assessment flow and client hours tracking.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
