package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Horarium Timetable API",
        "description": "Personal class-schedule generator: enumerates conflict-free section combinations and ranks them by weighted preference criteria",
        "version": "0.1.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Catalogs", "description": "Section catalog ingestion and listing"},
        {"name": "Schedules", "description": "Combination enumeration, scoring and run reads"},
        {"name": "Exports", "description": "Asynchronous CSV/PDF exports"},
        {"name": "System", "description": "Observability"}
    ],
    "paths": {
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
                "summary": "Readiness check including the optional cache backend",
                "responses": {
                    "200": {"description": "Ready"},
                    "503": {"description": "Degraded"}
                }
            }
        },
        "/api/v1/catalogs": {
            "post": {
                "tags": ["Catalogs"],
                "summary": "Ingest a section catalog CSV",
                "consumes": ["multipart/form-data"],
                "parameters": [
                    {"name": "file", "in": "formData", "type": "file", "required": true},
                    {"name": "section", "in": "formData", "type": "string", "required": true},
                    {"name": "course", "in": "formData", "type": "string", "required": true},
                    {"name": "teacher", "in": "formData", "type": "string", "required": true},
                    {"name": "schedule", "in": "formData", "type": "string"},
                    {"name": "day", "in": "formData", "type": "string"},
                    {"name": "start", "in": "formData", "type": "string"},
                    {"name": "end", "in": "formData", "type": "string"}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Bad mapping or malformed CSV"}
                }
            }
        },
        "/api/v1/catalogs/{id}": {
            "get": {
                "tags": ["Catalogs"],
                "summary": "Get catalog summary",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "410": {"description": "Catalog expired"}
                }
            }
        },
        "/api/v1/catalogs/{id}/courses": {
            "get": {
                "tags": ["Catalogs"],
                "summary": "List catalog courses with section counts",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/catalogs/{id}/teachers": {
            "get": {
                "tags": ["Catalogs"],
                "summary": "List distinct teachers in a catalog",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/schedules/generate": {
            "post": {
                "tags": ["Schedules"],
                "summary": "Enumerate and rank conflict-free schedule combinations",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/GenerateScheduleRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Invalid parameters"},
                    "404": {"description": "Unknown catalog"}
                }
            }
        },
        "/api/v1/schedules/runs/{id}": {
            "get": {
                "tags": ["Schedules"],
                "summary": "Read a retained run, paginated over the ranked combinations",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true},
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "pageSize", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "410": {"description": "Run expired"}
                }
            }
        },
        "/api/v1/schedules/runs/{id}/combinations/{index}/blocks": {
            "get": {
                "tags": ["Schedules"],
                "summary": "Get the meeting blocks of one ranked combination",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true},
                    {"name": "index", "in": "path", "type": "integer", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Index out of range"}
                }
            }
        },
        "/api/v1/schedules/runs/{id}/exports": {
            "post": {
                "tags": ["Exports"],
                "summary": "Queue an export of one ranked combination",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateExportRequest"}}
                ],
                "responses": {
                    "202": {"description": "Accepted", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "503": {"description": "Exports disabled"}
                }
            }
        },
        "/api/v1/exports/jobs/{jobId}": {
            "get": {
                "tags": ["Exports"],
                "summary": "Get export job status",
                "parameters": [
                    {"name": "jobId", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/exports/download": {
            "get": {
                "tags": ["Exports"],
                "summary": "Download a completed export with a signed token",
                "parameters": [
                    {"name": "token", "in": "query", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "File stream"},
                    "400": {"description": "Invalid or expired token"}
                }
            }
        },
        "/api/v1/system/metrics": {
            "get": {
                "tags": ["System"],
                "summary": "Lightweight JSON snapshot of service counters",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "GenerateScheduleRequest": {
            "type": "object",
            "required": ["catalogId", "courses"],
            "properties": {
                "catalogId": {"type": "string"},
                "courses": {"type": "array", "items": {"type": "string"}},
                "ranking": {"type": "array", "items": {"type": "string"}},
                "banned": {"type": "array", "items": {"type": "string"}},
                "slot": {"type": "string", "enum": ["morning", "afternoon", "both"]},
                "slotMode": {"type": "string", "enum": ["soft", "hard"]},
                "vetoMode": {"type": "string", "enum": ["soft", "hard"]},
                "minFreeDays": {"type": "integer", "minimum": 0, "maximum": 5},
                "weights": {"$ref": "#/definitions/Weights"},
                "policy": {"type": "string", "enum": ["weighted_mean", "distance_to_ideal"]},
                "limit": {"type": "integer"}
            }
        },
        "Weights": {
            "type": "object",
            "properties": {
                "rank": {"type": "number"},
                "window": {"type": "number"},
                "freeDays": {"type": "number"},
                "veto": {"type": "number"},
                "slot": {"type": "number"}
            }
        },
        "CreateExportRequest": {
            "type": "object",
            "required": ["format"],
            "properties": {
                "format": {"type": "string", "enum": ["csv", "pdf"]},
                "combination": {"type": "integer", "minimum": 0}
            }
        },
        "Pagination": {
            "type": "object",
            "properties": {
                "page": {"type": "integer"},
                "page_size": {"type": "integer"},
                "total_count": {"type": "integer"}
            }
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
                "pagination": {"$ref": "#/definitions/Pagination"},
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
