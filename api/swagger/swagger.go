package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "SSP Overtime API",
        "description": "Reconciles portal attendance anomalies with self-filed overtime submissions",
        "version": "0.1.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Overtime", "description": "Reconciled snapshot, records and statistics"},
        {"name": "Export", "description": "CSV/PDF report rendering"},
        {"name": "History", "description": "Persisted sync runs"}
    ],
    "paths": {
        "/overtime/snapshot": {
            "get": {
                "tags": ["Overtime"],
                "summary": "Reconciled attendance snapshot",
                "parameters": [
                    {"name": "refresh", "in": "query", "type": "boolean", "description": "Force a fresh portal fetch"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "503": {"description": "Sync failed and no cached data exists"}
                }
            }
        },
        "/overtime/records": {
            "get": {
                "tags": ["Overtime"],
                "summary": "Unified overtime records",
                "parameters": [
                    {"name": "filter", "in": "query", "type": "string", "enum": ["pending", "anomaly", "submitted"]},
                    {"name": "date", "in": "query", "type": "string", "description": "Exact date YYYY/MM/DD"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/overtime/records/{year}/{month}/{day}": {
            "get": {
                "tags": ["Overtime"],
                "summary": "Unified record for one date",
                "parameters": [
                    {"name": "year", "in": "path", "type": "string", "required": true},
                    {"name": "month", "in": "path", "type": "string", "required": true},
                    {"name": "day", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "No record for date"}
                }
            }
        },
        "/overtime/statistics": {
            "get": {
                "tags": ["Overtime"],
                "summary": "Aggregate overtime statistics",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/overtime/punches": {
            "get": {
                "tags": ["Overtime"],
                "summary": "Raw punch-clock records, newest first",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/overtime/status/refresh": {
            "post": {
                "tags": ["Overtime"],
                "summary": "Re-fetch submission statuses only",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/overtime/cache": {
            "delete": {
                "tags": ["Overtime"],
                "summary": "Discard the cached snapshot",
                "responses": {
                    "204": {"description": "Cleared"}
                }
            }
        },
        "/overtime/export": {
            "get": {
                "tags": ["Export"],
                "summary": "Export the unified report",
                "parameters": [
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"]},
                    {"name": "save", "in": "query", "type": "boolean", "description": "Also persist to the export directory"}
                ],
                "responses": {
                    "200": {"description": "Rendered report"}
                }
            }
        },
        "/history": {
            "get": {
                "tags": ["History"],
                "summary": "Recent sync runs",
                "parameters": [
                    {"name": "limit", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/history/latest": {
            "get": {
                "tags": ["History"],
                "summary": "Most recent sync run",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "No runs recorded"}
                }
            }
        },
        "/health": {
            "get": {
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/ready": {
            "get": {
                "summary": "Readiness check",
                "responses": {
                    "200": {"description": "Ready"}
                }
            }
        }
    },
    "definitions": {
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
