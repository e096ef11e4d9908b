// Package docs holds the Swagger 2.0 document served at /v1/swagger. It is
// maintained by hand alongside the handler annotations.
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
        "/applications/apply": {
            "post": {
                "security": [{"BearerAuth": []}],
                "description": "Submit an application for a job with one of the caller's resumes",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["applications"],
                "summary": "Apply to a job",
                "parameters": [
                    {
                        "description": "Application data",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/v1.ApplyRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/response.Response"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/response.Response"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/response.Response"}},
                    "429": {"description": "Too Many Requests", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            }
        },
        "/applications/my-applications": {
            "get": {
                "security": [{"BearerAuth": []}],
                "description": "List the caller's applications, newest first",
                "produces": ["application/json"],
                "tags": ["applications"],
                "summary": "Get my applications",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            }
        },
        "/applications/check/{job_id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "description": "Report whether the caller already applied to a job",
                "produces": ["application/json"],
                "tags": ["applications"],
                "summary": "Check application status",
                "parameters": [
                    {"type": "integer", "description": "Job ID", "name": "job_id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/response.Response"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            }
        },
        "/applications/download-resume/{resume_id}": {
            "get": {
                "description": "Stream the stored resume file as an attachment",
                "produces": ["application/octet-stream"],
                "tags": ["applications"],
                "summary": "Download a resume",
                "parameters": [
                    {"type": "integer", "description": "Resume ID", "name": "resume_id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "file"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/response.Response"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            }
        },
        "/applications/view-resume/{resume_id}": {
            "get": {
                "description": "Resume metadata, owner, extracted skills and keywords and a raw text preview",
                "produces": ["application/json"],
                "tags": ["applications"],
                "summary": "View resume details",
                "parameters": [
                    {"type": "integer", "description": "Resume ID", "name": "resume_id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/response.Response"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            }
        },
        "/auth/me": {
            "get": {
                "security": [{"BearerAuth": []}],
                "description": "Return the user the bearer token resolves to",
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Current user",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            }
        },
        "/health": {
            "get": {
                "description": "Reachability of the database and, when configured, Redis",
                "produces": ["application/json"],
                "tags": ["system"],
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            }
        }
    },
    "definitions": {
        "response.Response": {
            "type": "object",
            "properties": {
                "data": {},
                "error": {},
                "message": {"type": "string"},
                "request_id": {"type": "string"},
                "success": {"type": "boolean"}
            }
        },
        "v1.ApplyRequest": {
            "type": "object",
            "required": ["job_id", "resume_id"],
            "properties": {
                "cover_letter": {"type": "string", "maxLength": 10000},
                "job_id": {"type": "integer"},
                "resume_id": {"type": "integer"}
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
	BasePath:         "/v1",
	Schemes:          []string{},
	Title:            "Job Board Applications API",
	Description:      "Job applications, application status and resume access.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
