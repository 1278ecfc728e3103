// Package docs registers the OpenAPI description served under /swagger.
// Regenerate with: swag init -g server/main.go -o docs
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
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    },
    "paths": {
        "/auth/register": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Register a staff account",
                "parameters": [
                    {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/auth.RegisterRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/response.StandardApiResponse"}},
                    "409": {"description": "email already registered", "schema": {"$ref": "#/definitions/response.StandardApiResponse"}}
                }
            }
        },
        "/cinemas": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["catalog"],
                "summary": "Create a cinema",
                "parameters": [
                    {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/catalog.CreateCinemaRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/response.StandardApiResponse"}}
                }
            }
        },
        "/films": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["catalog"],
                "summary": "Create a film",
                "parameters": [
                    {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/catalog.CreateFilmRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/response.StandardApiResponse"}}
                }
            }
        },
        "/sessions": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["sessions"],
                "summary": "Schedule a screening",
                "parameters": [
                    {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/sessions.CreateSessionRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/response.StandardApiResponse"}},
                    "400": {"description": "invalid hall, capacity, price or start time", "schema": {"$ref": "#/definitions/response.StandardApiResponse"}}
                }
            }
        },
        "/sessions/{id}/availability": {
            "get": {
                "produces": ["application/json"],
                "tags": ["sessions"],
                "summary": "Capacity, reserved and remaining seats",
                "parameters": [
                    {"type": "string", "description": "Session ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.StandardApiResponse"}},
                    "404": {"description": "session not found", "schema": {"$ref": "#/definitions/response.StandardApiResponse"}}
                }
            }
        },
        "/bookings": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["bookings"],
                "summary": "Reserve seats for a customer",
                "parameters": [
                    {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/bookings.CreateBookingRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/response.StandardApiResponse"}},
                    "409": {"description": "capacity exceeded", "schema": {"$ref": "#/definitions/response.StandardApiResponse"}}
                }
            }
        },
        "/tickets": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["tickets"],
                "summary": "Record a box-office ticket sale",
                "parameters": [
                    {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/sales.RecordSaleRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/response.StandardApiResponse"}},
                    "409": {"description": "capacity exceeded or booking not active", "schema": {"$ref": "#/definitions/response.StandardApiResponse"}}
                }
            }
        },
        "/tickets/stats": {
            "get": {
                "produces": ["application/json"],
                "tags": ["tickets"],
                "summary": "Sales totals, optionally for a date range",
                "parameters": [
                    {"type": "string", "description": "first day, YYYY-MM-DD", "name": "from", "in": "query"},
                    {"type": "string", "description": "last day, YYYY-MM-DD", "name": "to", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.StandardApiResponse"}}
                }
            }
        }
    },
    "definitions": {
        "response.StandardApiResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "string"},
                "status_code": {"type": "integer"},
                "message": {"type": "string"},
                "data": {},
                "errors": {}
            }
        },
        "auth.RegisterRequest": {
            "type": "object",
            "required": ["email", "first_name", "last_name", "password"],
            "properties": {
                "email": {"type": "string"},
                "first_name": {"type": "string"},
                "last_name": {"type": "string"},
                "password": {"type": "string", "minLength": 6},
                "role": {"type": "string", "enum": ["ADMIN", "CASHIER"]},
                "cinema_id": {"type": "string"}
            }
        },
        "catalog.CreateCinemaRequest": {
            "type": "object",
            "required": ["address", "closing_time", "hall_count", "name", "opening_time", "seats_per_hall"],
            "properties": {
                "name": {"type": "string"},
                "address": {"type": "string"},
                "employee_count": {"type": "integer"},
                "hall_count": {"type": "integer", "minimum": 1},
                "seats_per_hall": {"type": "integer", "minimum": 1},
                "opening_time": {"type": "string", "example": "09:00:00"},
                "closing_time": {"type": "string", "example": "23:30:00"}
            }
        },
        "catalog.CreateFilmRequest": {
            "type": "object",
            "required": ["end_date", "start_date", "title"],
            "properties": {
                "title": {"type": "string"},
                "age_restriction": {"type": "integer"},
                "is_booking_available": {"type": "boolean"},
                "start_date": {"type": "string", "example": "2026-06-01"},
                "end_date": {"type": "string", "example": "2026-07-01"}
            }
        },
        "sessions.CreateSessionRequest": {
            "type": "object",
            "required": ["cinema_id", "film_id", "hall_number", "start_time", "ticket_price"],
            "properties": {
                "film_id": {"type": "string"},
                "cinema_id": {"type": "string"},
                "hall_number": {"type": "integer", "minimum": 1},
                "start_time": {"type": "string", "example": "2026-06-01 19:30:00"},
                "ticket_price": {"type": "string", "example": "12.50"},
                "capacity": {"type": "integer"}
            }
        },
        "bookings.CreateBookingRequest": {
            "type": "object",
            "required": ["customer_id", "session_id", "ticket_count"],
            "properties": {
                "session_id": {"type": "string"},
                "customer_id": {"type": "string"},
                "ticket_count": {"type": "integer", "minimum": 1}
            }
        },
        "sales.RecordSaleRequest": {
            "type": "object",
            "required": ["customer_id", "session_id", "ticket_count"],
            "properties": {
                "session_id": {"type": "string"},
                "customer_id": {"type": "string"},
                "ticket_count": {"type": "integer", "minimum": 1},
                "employee_id": {"type": "string"},
                "booking_id": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "CineOps API",
	Description:      "Cinema operations backend: catalog, sessions, bookings and box-office sales.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
