// Package docs holds the OpenAPI document served at /swagger. Maintained by
// hand; regenerate with `swag init -g cmd/main.go` after route changes.
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
        "/events/sync": {
            "post": {
                "tags": ["events"],
                "summary": "Bulk-sync raw calendar events",
                "parameters": [
                    {
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "type": "object",
                            "properties": {
                                "user_id": {"type": "string"},
                                "events": {"type": "array", "items": {"type": "object"}}
                            }
                        }
                    }
                ],
                "responses": {
                    "200": {"description": "bulk result with upserted/skipped counts"},
                    "400": {"description": "events missing or not an array"}
                }
            }
        },
        "/events": {
            "post": {
                "tags": ["events"],
                "summary": "Create a manual event",
                "responses": {
                    "201": {"description": "created event"},
                    "400": {"description": "missing title/startTs/endTs or end before start"}
                }
            },
            "get": {
                "tags": ["events"],
                "summary": "List events overlapping a window",
                "parameters": [
                    {"name": "user_id", "in": "query", "type": "string"},
                    {"name": "calendarId", "in": "query", "type": "string"},
                    {"name": "start", "in": "query", "type": "string"},
                    {"name": "end", "in": "query", "type": "string"},
                    {"name": "limit", "in": "query", "type": "integer"},
                    {"name": "skip", "in": "query", "type": "integer"}
                ],
                "responses": {"200": {"description": "events ordered by start time"}}
            }
        },
        "/events/{id}": {
            "patch": {
                "tags": ["events"],
                "summary": "Reschedule an event",
                "responses": {
                    "200": {"description": "updated event"},
                    "404": {"description": "unknown event"},
                    "409": {"description": "conflicting fixed events"}
                }
            },
            "delete": {
                "tags": ["events"],
                "summary": "Delete an event",
                "responses": {"200": {"description": "deleted"}}
            }
        },
        "/events/{id}/status": {
            "patch": {
                "tags": ["events"],
                "summary": "Toggle fixed/malleable",
                "responses": {"200": {"description": "updated event"}}
            }
        },
        "/events/{id}/type": {
            "patch": {
                "tags": ["events"],
                "summary": "Override the classified type",
                "responses": {"200": {"description": "updated event"}}
            }
        },
        "/events/reclassify": {
            "post": {
                "tags": ["events"],
                "summary": "Re-run the classifier over stored events",
                "responses": {"200": {"description": "total and updated counts"}}
            }
        },
        "/calendars": {
            "get": {
                "tags": ["events"],
                "summary": "Per-calendar event counts",
                "responses": {"200": {"description": "calendar list"}}
            }
        },
        "/sleep": {
            "post": {
                "tags": ["sleep"],
                "summary": "Log sleep for a day (upsert)",
                "responses": {"200": {"description": "stored log"}}
            }
        },
        "/sleep/today": {
            "get": {
                "tags": ["sleep"],
                "summary": "Today's sleep log in the configured timezone",
                "responses": {"200": {"description": "log"}, "404": {"description": "nothing logged"}}
            }
        },
        "/sleep/{date}": {
            "get": {
                "tags": ["sleep"],
                "summary": "Sleep log for a specific day",
                "responses": {"200": {"description": "log"}, "404": {"description": "nothing logged"}}
            }
        },
        "/agent/burnout": {
            "get": {
                "tags": ["agent"],
                "summary": "Burnout prediction proxied from the agent",
                "responses": {"200": {"description": "prediction"}, "502": {"description": "agent unavailable"}}
            }
        },
        "/reports/events/export": {
            "get": {
                "tags": ["reports"],
                "summary": "Export events as xlsx or csv",
                "produces": ["application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", "text/csv"],
                "responses": {"200": {"description": "workbook download"}}
            }
        },
        "/auditlogs": {
            "get": {
                "tags": ["auditlogs"],
                "summary": "Query the activity log",
                "responses": {"200": {"description": "paginated audit entries"}}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api",
	Schemes:          []string{},
	Title:            "Scheduling Dashboard API",
	Description:      "Calendar sync, event classification, conflict detection, sleep and burnout endpoints.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
