package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "ExamSync API",
        "description": "Exam scheduling administration backend",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http",
        "https"
    ],
    "tags": [
        {"name": "Auth", "description": "Login and password reset"},
        {"name": "Colleges", "description": "College registry"},
        {"name": "Departments", "description": "Department registry"},
        {"name": "Programs", "description": "Academic programs"},
        {"name": "Terms", "description": "Academic terms"},
        {"name": "Courses", "description": "Courses and instructor assignments"},
        {"name": "Sections", "description": "Course sections"},
        {"name": "Facilities", "description": "Buildings and rooms"},
        {"name": "ExamPeriods", "description": "Exam periods and bulk reconciliation"},
        {"name": "ExamDetails", "description": "Scheduled exam sittings"},
        {"name": "Modalities", "description": "Exam modality declarations"},
        {"name": "Availability", "description": "Proctor availability"},
        {"name": "Roles", "description": "Roles, assignments and history"},
        {"name": "Inbox", "description": "Messages and replies"},
        {"name": "Users", "description": "User accounts"},
        {"name": "Exports", "description": "Exam schedule downloads"}
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
                "summary": "Readiness check",
                "responses": {
                    "200": {"description": "Ready"},
                    "503": {"description": "Degraded"}
                }
            }
        },
        "/auth/login": {
            "post": {
                "tags": ["Auth"],
                "summary": "Login with email and password",
                "responses": {
                    "200": {"$ref": "#/responses/Envelope"}
                }
            }
        },
        "/exam-periods/bulk": {
            "put": {
                "tags": ["ExamPeriods"],
                "summary": "Reconcile exam period assignments per college",
                "responses": {
                    "200": {"$ref": "#/responses/Envelope"}
                }
            }
        },
        "/exports/exam-schedule": {
            "get": {
                "tags": ["Exports"],
                "summary": "Download the exam schedule as CSV or PDF",
                "responses": {
                    "200": {"description": "File attachment"}
                }
            }
        }
    },
    "responses": {
        "Envelope": {
            "description": "Standard response envelope",
            "schema": {"$ref": "#/definitions/ResponseEnvelope"}
        }
    },
    "definitions": {
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
