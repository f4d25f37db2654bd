package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Mergington High Activities API",
        "description": "Extracurricular activity catalog with teacher-managed rosters",
        "version": "1.0.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "tags": [
        {"name": "Activities", "description": "Public catalog"},
        {"name": "Registration", "description": "Teacher-only roster changes and exports"},
        {"name": "Authentication", "description": "Teacher login"}
    ],
    "paths": {
        "/health": {
            "get": {"summary": "Liveness check", "responses": {"200": {"description": "OK"}}}
        },
        "/ready": {
            "get": {
                "summary": "Readiness check",
                "responses": {
                    "200": {"description": "Store reachable"},
                    "503": {"description": "Store unavailable", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/metrics": {
            "get": {"summary": "Prometheus metrics", "produces": ["text/plain"], "responses": {"200": {"description": "OK"}}}
        },
        "/activities": {
            "get": {
                "tags": ["Activities"],
                "summary": "List activities",
                "produces": ["application/json"],
                "parameters": [
                    {"name": "category", "in": "query", "type": "string", "enum": ["Sports", "Arts", "Academic", "Technology", "Community"]},
                    {"name": "day", "in": "query", "type": "string", "enum": ["Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"]},
                    {"name": "timeOfDay", "in": "query", "type": "string", "enum": ["any", "morning", "afternoon", "evening"]},
                    {"name": "q", "in": "query", "type": "string", "description": "Case-insensitive search over name and description"}
                ],
                "responses": {
                    "200": {"description": "Activities", "schema": {"$ref": "#/definitions/ActivityListEnvelope"}},
                    "400": {"description": "Invalid filter", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "503": {"description": "Store unavailable", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/activities/days": {
            "get": {
                "tags": ["Activities"],
                "summary": "Weekdays with at least one activity, Monday first",
                "responses": {
                    "200": {"description": "Weekdays", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/activities/{name}": {
            "get": {
                "tags": ["Activities"],
                "summary": "Get activity",
                "parameters": [{"name": "name", "in": "path", "required": true, "type": "string"}],
                "responses": {
                    "200": {"description": "Activity", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "ACTIVITY_NOT_FOUND", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/activities/{name}/signup": {
            "post": {
                "tags": ["Registration"],
                "summary": "Sign a student up",
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "parameters": [
                    {"name": "name", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "schema": {"$ref": "#/definitions/RosterChangeRequest"}},
                    {"name": "email", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "Signed up", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "ALREADY_REGISTERED, CAPACITY_EXCEEDED or INVALID_EMAIL", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Teacher login required", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "ACTIVITY_NOT_FOUND", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/activities/{name}/withdraw": {
            "post": {
                "tags": ["Registration"],
                "summary": "Withdraw a student",
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "parameters": [
                    {"name": "name", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "schema": {"$ref": "#/definitions/RosterChangeRequest"}},
                    {"name": "email", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "Withdrawn", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "NOT_REGISTERED", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Teacher login required", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "ACTIVITY_NOT_FOUND", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/activities/{name}/unregister": {
            "post": {
                "tags": ["Registration"],
                "summary": "Alias of withdraw",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "name", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "schema": {"$ref": "#/definitions/RosterChangeRequest"}},
                    {"name": "email", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "Withdrawn", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/activities/{name}/roster": {
            "get": {
                "tags": ["Registration"],
                "summary": "Export roster",
                "security": [{"BearerAuth": []}],
                "produces": ["text/csv", "application/pdf"],
                "parameters": [
                    {"name": "name", "in": "path", "required": true, "type": "string"},
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"]}
                ],
                "responses": {
                    "200": {"description": "Roster file", "schema": {"type": "file"}},
                    "404": {"description": "ACTIVITY_NOT_FOUND", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/auth/login": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Teacher login",
                "consumes": ["application/json"],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "Token issued", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Invalid credentials", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "429": {"description": "Too many attempts", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/auth/me": {
            "get": {
                "tags": ["Authentication"],
                "summary": "Current teacher",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "Principal", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Teacher login required", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "Activity": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "description": {"type": "string"},
                "schedule": {"type": "string"},
                "scheduleDetails": {
                    "type": "object",
                    "properties": {
                        "days": {"type": "array", "items": {"type": "string"}},
                        "startTime": {"type": "string", "example": "15:15"},
                        "endTime": {"type": "string", "example": "16:45"}
                    }
                },
                "category": {"type": "string"},
                "maxParticipants": {"type": "integer"},
                "participantCount": {"type": "integer"},
                "spotsLeft": {"type": "integer"},
                "participants": {"type": "array", "items": {"type": "string"}}
            }
        },
        "RosterChangeRequest": {
            "type": "object",
            "properties": {"email": {"type": "string", "example": "student@mergington.edu"}}
        },
        "LoginRequest": {
            "type": "object",
            "required": ["username", "password"],
            "properties": {"username": {"type": "string"}, "password": {"type": "string"}}
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"},
                "meta": {"type": "object"}
            }
        },
        "ActivityListEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "array", "items": {"$ref": "#/definitions/Activity"}},
                "meta": {
                    "type": "object",
                    "properties": {
                        "cacheHit": {"type": "boolean"},
                        "count": {"type": "integer"},
                        "processingTimeMs": {"type": "number"}
                    }
                }
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
