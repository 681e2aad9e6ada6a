// Package docs registers the OpenAPI description served at /swagger/
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
        "/cards": {
            "get": {
                "description": "List board cards, newest first unless sort=position",
                "produces": ["application/json"],
                "tags": ["cards"],
                "summary": "List cards",
                "parameters": [
                    {"type": "integer", "description": "Project scope", "name": "project_id", "in": "query"},
                    {"type": "string", "description": "created_at (default) or position", "name": "sort", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/entities.Card"}}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/ports.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/ports.ErrorResponse"}}
                }
            },
            "post": {
                "description": "Create a card; absent fields take their defaults (column todo, priority medium, position 0)",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["cards"],
                "summary": "Create a card",
                "parameters": [
                    {"type": "integer", "description": "Project the card belongs to", "name": "project_id", "in": "query"},
                    {"description": "Card data", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ports.CreateCardRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/entities.Card"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/ports.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/ports.ErrorResponse"}}
                }
            }
        },
        "/cards/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["cards"],
                "summary": "Get card by ID",
                "parameters": [
                    {"type": "integer", "description": "Card ID", "name": "id", "in": "path", "required": true},
                    {"type": "integer", "description": "Project scope", "name": "project_id", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/entities.Card"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/ports.ErrorResponse"}}
                }
            },
            "put": {
                "description": "Partially update a card. Empty strings clear label and date fields.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["cards"],
                "summary": "Update a card",
                "parameters": [
                    {"type": "integer", "description": "Card ID", "name": "id", "in": "path", "required": true},
                    {"type": "integer", "description": "Project scope", "name": "project_id", "in": "query"},
                    {"description": "Fields to change", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ports.UpdateCardRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/entities.Card"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/ports.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/ports.ErrorResponse"}}
                }
            },
            "patch": {
                "description": "Partially update a card. Empty strings clear label and date fields.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["cards"],
                "summary": "Update a card",
                "parameters": [
                    {"type": "integer", "description": "Card ID", "name": "id", "in": "path", "required": true},
                    {"type": "integer", "description": "Project scope", "name": "project_id", "in": "query"},
                    {"description": "Fields to change", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ports.UpdateCardRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/entities.Card"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/ports.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/ports.ErrorResponse"}}
                }
            },
            "delete": {
                "description": "Succeeds whether or not the card existed",
                "produces": ["application/json"],
                "tags": ["cards"],
                "summary": "Delete a card",
                "parameters": [
                    {"type": "integer", "description": "Card ID", "name": "id", "in": "path", "required": true},
                    {"type": "integer", "description": "Project scope", "name": "project_id", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ports.SuccessResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/ports.ErrorResponse"}}
                }
            }
        },
        "/cards/{id}/archive": {
            "post": {
                "produces": ["application/json"],
                "tags": ["cards"],
                "summary": "Archive a card",
                "parameters": [
                    {"type": "integer", "description": "Card ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/entities.Card"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/ports.ErrorResponse"}}
                }
            }
        },
        "/cards/{id}/restore": {
            "post": {
                "produces": ["application/json"],
                "tags": ["cards"],
                "summary": "Restore an archived card to done",
                "parameters": [
                    {"type": "integer", "description": "Card ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/entities.Card"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/ports.ErrorResponse"}}
                }
            }
        },
        "/cards/{id}/comments": {
            "get": {
                "description": "Comments are returned oldest first",
                "produces": ["application/json"],
                "tags": ["comments"],
                "summary": "List comments on a card",
                "parameters": [
                    {"type": "integer", "description": "Card ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/entities.Comment"}}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/ports.ErrorResponse"}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["comments"],
                "summary": "Comment on a card",
                "parameters": [
                    {"type": "integer", "description": "Card ID", "name": "id", "in": "path", "required": true},
                    {"description": "Comment", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ports.CreateCommentRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/entities.Comment"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/ports.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/ports.ErrorResponse"}}
                }
            }
        },
        "/projects": {
            "get": {
                "description": "Project ids and names ordered by name. PINs are never returned.",
                "produces": ["application/json"],
                "tags": ["projects"],
                "summary": "List projects",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/entities.ProjectSummary"}}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/ports.ErrorResponse"}}
                }
            }
        },
        "/projects/verify": {
            "post": {
                "description": "Compares the submitted PIN with the stored one, both trimmed",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["projects"],
                "summary": "Verify a project PIN",
                "parameters": [
                    {"description": "Project id and PIN", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ports.VerifyProjectRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/entities.ProjectSummary"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/ports.ErrorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ports.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/ports.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "entities.Card": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "title": {"type": "string"},
                "description": {"type": "string"},
                "column_name": {"type": "string"},
                "assignee": {"type": "string"},
                "issue_type": {"type": "string"},
                "git_issue": {"type": "string"},
                "priority": {"type": "string"},
                "due_date": {"type": "string"},
                "start_date": {"type": "string"},
                "end_date": {"type": "string"},
                "position": {"type": "integer"},
                "label": {"type": "string"},
                "project_id": {"type": "integer"},
                "created_at": {"type": "string"}
            }
        },
        "entities.Comment": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "card_id": {"type": "integer"},
                "author": {"type": "string"},
                "content": {"type": "string"},
                "created_at": {"type": "string"}
            }
        },
        "entities.ProjectSummary": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "name": {"type": "string"}
            }
        },
        "ports.CreateCardRequest": {
            "type": "object",
            "required": ["title"],
            "properties": {
                "title": {"type": "string", "maxLength": 500},
                "description": {"type": "string"},
                "column_name": {"type": "string"},
                "assignee": {"type": "string"},
                "issue_type": {"type": "string"},
                "git_issue": {"type": "string"},
                "priority": {"type": "string"},
                "due_date": {"type": "string"},
                "start_date": {"type": "string"},
                "end_date": {"type": "string"},
                "position": {"type": "integer"},
                "label": {"type": "string"},
                "project_id": {"type": "integer"}
            }
        },
        "ports.UpdateCardRequest": {
            "type": "object",
            "properties": {
                "title": {"type": "string"},
                "description": {"type": "string"},
                "column_name": {"type": "string"},
                "assignee": {"type": "string"},
                "issue_type": {"type": "string"},
                "git_issue": {"type": "string"},
                "priority": {"type": "string"},
                "due_date": {"type": "string"},
                "start_date": {"type": "string"},
                "end_date": {"type": "string"},
                "position": {"type": "integer"},
                "label": {"type": "string"},
                "project_id": {"type": "integer"}
            }
        },
        "ports.CreateCommentRequest": {
            "type": "object",
            "required": ["author", "content"],
            "properties": {
                "author": {"type": "string", "maxLength": 100},
                "content": {"type": "string", "maxLength": 10000}
            }
        },
        "ports.VerifyProjectRequest": {
            "type": "object",
            "properties": {
                "project_id": {"type": "integer"},
                "pin": {"type": "string"}
            }
        },
        "ports.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string"}
            }
        },
        "ports.SuccessResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:5001",
	BasePath:         "/api",
	Schemes:          []string{"http"},
	Title:            "Kanban API",
	Description:      "Kanban board and calendar backend: cards, comments and PIN-protected projects",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
