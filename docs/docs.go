package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "description": "Tasks, daily condition, mood journal and today's picks",
        "title": "StudyWell API",
        "version": "1.0"
    },
    "host": "localhost:8080",
    "basePath": "/api",
    "schemes": ["http"],
    "paths": {
        "/health": {
            "post": {
                "tags": ["wellness"],
                "summary": "Record today's condition",
                "description": "Creates or overwrites the record of a civil day. condition is 1..3 or 良い/普通/悪い/good/normal/bad.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {
                        "in": "body",
                        "name": "request",
                        "required": true,
                        "schema": {"$ref": "#/definitions/HealthRequest"}
                    }
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/HealthCreated"}},
                    "400": {"description": "Invalid condition or day", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            }
        },
        "/mood": {
            "post": {
                "tags": ["wellness"],
                "summary": "Log a mood sample",
                "description": "mood is 1..5, an emoji or very_good/good/neutral/bad/very_bad.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {
                        "in": "body",
                        "name": "request",
                        "required": true,
                        "schema": {"$ref": "#/definitions/MoodRequest"}
                    }
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/MoodCreated"}},
                    "400": {"description": "Invalid mood", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            }
        },
        "/tasks": {
            "get": {
                "tags": ["tasks"],
                "summary": "List tasks",
                "description": "Open tasks first, then by deadline with undated last, then by importance.",
                "produces": ["application/json"],
                "parameters": [
                    {"in": "query", "name": "done", "type": "boolean", "required": false}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/Task"}}}
                }
            },
            "post": {
                "tags": ["tasks"],
                "summary": "Create a task",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {
                        "in": "body",
                        "name": "request",
                        "required": true,
                        "schema": {"$ref": "#/definitions/TaskRequest"}
                    }
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/Task"}},
                    "400": {"description": "Validation failed", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            }
        },
        "/tasks/top": {
            "get": {
                "tags": ["tasks"],
                "summary": "Today's picks",
                "description": "Open tasks ranked by importance, today's condition, latest mood and deadline.",
                "produces": ["application/json"],
                "parameters": [
                    {"in": "query", "name": "limit", "type": "integer", "default": 3, "required": false}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/ScoredTask"}}}
                }
            }
        },
        "/tasks/{id}": {
            "get": {
                "tags": ["tasks"],
                "summary": "Get a task",
                "produces": ["application/json"],
                "parameters": [
                    {"in": "path", "name": "id", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Task"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            },
            "put": {
                "tags": ["tasks"],
                "summary": "Replace a task",
                "description": "Replaces every editable field. An absent dueDate clears the deadline.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"in": "path", "name": "id", "type": "string", "required": true},
                    {
                        "in": "body",
                        "name": "request",
                        "required": true,
                        "schema": {"$ref": "#/definitions/TaskRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Task"}},
                    "400": {"description": "Validation failed", "schema": {"$ref": "#/definitions/ErrorResponse"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            },
            "delete": {
                "tags": ["tasks"],
                "summary": "Delete a task",
                "parameters": [
                    {"in": "path", "name": "id", "type": "string", "required": true}
                ],
                "responses": {
                    "204": {"description": "Deleted"},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            }
        },
        "/tasks/{id}/done": {
            "post": {
                "tags": ["tasks"],
                "summary": "Complete a task",
                "parameters": [
                    {"in": "path", "name": "id", "type": "string", "required": true}
                ],
                "responses": {
                    "204": {"description": "Completed"},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            }
        },
        "/tasks/{id}/snooze": {
            "post": {
                "tags": ["tasks"],
                "summary": "Push a deadline back",
                "description": "Moves the deadline by days. A missing or non-numeric value means 1; fractions are truncated and the result clamped to 1..30.",
                "consumes": ["application/json"],
                "parameters": [
                    {"in": "path", "name": "id", "type": "string", "required": true},
                    {
                        "in": "body",
                        "name": "request",
                        "required": false,
                        "schema": {"type": "object", "properties": {"days": {"type": "integer", "example": 1}}}
                    }
                ],
                "responses": {
                    "204": {"description": "Snoozed"},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            }
        },
        "/history": {
            "get": {
                "tags": ["views"],
                "summary": "Per-day history",
                "description": "The last 30 civil days of health records and moods, newest first, with a 7 day summary.",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/dashboard": {
            "get": {
                "tags": ["views"],
                "summary": "Landing view",
                "description": "Today's condition, latest mood and the top three tasks.",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/settings": {
            "get": {
                "tags": ["settings"],
                "summary": "Default client settings",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Settings"}}
                }
            },
            "post": {
                "tags": ["settings"],
                "summary": "Apply a settings patch",
                "description": "Merges the patch over the defaults. Snooze days are clamped to 1..30.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {
                        "in": "body",
                        "name": "request",
                        "required": true,
                        "schema": {"$ref": "#/definitions/Settings"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Settings"}},
                    "400": {"description": "Invalid theme or colour", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            }
        },
        "/weather": {
            "get": {
                "tags": ["weather"],
                "summary": "Hourly forecast",
                "description": "Forecast and place name for a coordinate; missing coordinates use the configured default.",
                "produces": ["application/json"],
                "parameters": [
                    {"in": "query", "name": "lat", "type": "string", "required": false},
                    {"in": "query", "name": "lon", "type": "string", "required": false}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "Invalid coordinates", "schema": {"$ref": "#/definitions/ErrorResponse"}},
                    "502": {"description": "Upstream failure"}
                }
            }
        }
    },
    "definitions": {
        "ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string"}
            }
        },
        "HealthRequest": {
            "type": "object",
            "properties": {
                "condition": {"example": "良い"},
                "note": {"type": "string"},
                "dayJst": {"type": "string", "example": "2025-06-01"}
            }
        },
        "HealthCreated": {
            "type": "object",
            "properties": {
                "ok": {"type": "boolean"},
                "created": {
                    "type": "object",
                    "properties": {
                        "id": {"type": "string"},
                        "date": {"type": "string", "format": "date-time", "example": "2025-05-31T15:00:00Z"},
                        "condition": {"type": "integer", "example": 3}
                    }
                }
            }
        },
        "MoodRequest": {
            "type": "object",
            "properties": {
                "mood": {"example": "🙂"},
                "note": {"type": "string"}
            }
        },
        "MoodCreated": {
            "type": "object",
            "properties": {
                "ok": {"type": "boolean"},
                "created": {
                    "type": "object",
                    "properties": {
                        "id": {"type": "string"},
                        "mood": {"type": "integer", "example": 4},
                        "at": {"type": "string", "format": "date-time"}
                    }
                }
            }
        },
        "TaskRequest": {
            "type": "object",
            "required": ["title"],
            "properties": {
                "title": {"type": "string", "example": "Read chapter 3"},
                "description": {"type": "string"},
                "dueDate": {"type": "string", "example": "2025-06-03T18:00"},
                "estimateMin": {"type": "integer", "minimum": 0},
                "importance": {"type": "integer", "minimum": 1, "maximum": 5, "default": 3},
                "isDone": {"type": "boolean"}
            }
        },
        "Task": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "title": {"type": "string"},
                "description": {"type": "string"},
                "dueDate": {"type": "string", "format": "date-time"},
                "estimateMin": {"type": "integer"},
                "importance": {"type": "integer"},
                "isDone": {"type": "boolean"},
                "createdAt": {"type": "string", "format": "date-time"},
                "updatedAt": {"type": "string", "format": "date-time"},
                "dueStatus": {"type": "string", "enum": ["none", "overdue", "soon", "upcoming"]}
            }
        },
        "ScoredTask": {
            "type": "object",
            "properties": {
                "task": {"$ref": "#/definitions/Task"},
                "score": {"type": "number"},
                "dueStatus": {"type": "string", "enum": ["none", "overdue", "soon", "upcoming"]}
            }
        },
        "Settings": {
            "type": "object",
            "properties": {
                "theme": {"type": "string", "enum": ["light", "dark"]},
                "highlightColor": {"type": "string", "example": "#ef4444"},
                "snoozeDays": {"type": "integer", "minimum": 1, "maximum": 30},
                "highlightBackground": {"type": "string", "example": "rgba(239, 68, 68, 0.16)"}
            }
        }
    }
}`

var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api",
	Schemes:          []string{"http"},
	Title:            "StudyWell API",
	Description:      "Tasks, daily condition, mood journal and today's picks",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
