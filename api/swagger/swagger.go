package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "FormaPlan API",
        "description": "Training room planning and assignment optimization",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Rooms", "description": "Room inventory management"},
        {"name": "Trainings", "description": "Training session management"},
        {"name": "Assignments", "description": "Room bookings per training and date"},
        {"name": "Optimizer", "description": "Assignment proposal engine"},
        {"name": "Planning", "description": "Calendar views and exports"}
    ],
    "paths": {
        "/salles": {
            "get": {
                "tags": ["Rooms"],
                "summary": "List rooms",
                "parameters": [
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "page_size", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Rooms"],
                "summary": "Create room",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateRoomRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/salles/{id}": {
            "get": {
                "tags": ["Rooms"],
                "summary": "Get room",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "put": {
                "tags": ["Rooms"],
                "summary": "Update room",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateRoomRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "delete": {
                "tags": ["Rooms"],
                "summary": "Delete room",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "412": {"description": "Room referenced by assignments"}
                }
            }
        },
        "/formations": {
            "get": {
                "tags": ["Trainings"],
                "summary": "List trainings",
                "parameters": [
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "page_size", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Trainings"],
                "summary": "Create training",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateTrainingRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/formations/{id}": {
            "get": {
                "tags": ["Trainings"],
                "summary": "Get training",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "put": {
                "tags": ["Trainings"],
                "summary": "Update training",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateTrainingRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "delete": {
                "tags": ["Trainings"],
                "summary": "Delete training and its assignments",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        },
        "/affectations": {
            "get": {
                "tags": ["Assignments"],
                "summary": "List assignments with training and room details",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Assignments"],
                "summary": "Book a room for a training on a date",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateAssignmentRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/optimisation": {
            "post": {
                "tags": ["Optimizer"],
                "summary": "Propose rooms for unassigned trainings",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/planning": {
            "get": {
                "tags": ["Planning"],
                "summary": "Assignments grouped by date",
                "parameters": [
                    {"name": "from", "in": "query", "type": "string"},
                    {"name": "to", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/planning/export": {
            "get": {
                "tags": ["Planning"],
                "summary": "Export planning window as CSV or PDF",
                "parameters": [
                    {"name": "from", "in": "query", "type": "string"},
                    {"name": "to", "in": "query", "type": "string"},
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"]}
                ],
                "responses": {
                    "200": {"description": "File download"}
                }
            }
        }
    },
    "definitions": {
        "Room": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "name": {"type": "string"},
                "capacity": {"type": "integer"},
                "equipments": {"type": "string"},
                "created_at": {"type": "string"},
                "updated_at": {"type": "string"}
            }
        },
        "Training": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "name": {"type": "string"},
                "headcount": {"type": "integer"},
                "start_date": {"type": "string"},
                "end_date": {"type": "string"},
                "needs": {"type": "string"},
                "created_at": {"type": "string"},
                "updated_at": {"type": "string"}
            }
        },
        "AssignmentDetail": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "training_id": {"type": "string"},
                "room_id": {"type": "string"},
                "date": {"type": "string"},
                "training_name": {"type": "string"},
                "headcount": {"type": "integer"},
                "room_name": {"type": "string"},
                "capacity": {"type": "integer"}
            }
        },
        "Proposal": {
            "type": "object",
            "properties": {
                "training_id": {"type": "string"},
                "training_name": {"type": "string"},
                "room_id": {"type": "string"},
                "room_name": {"type": "string"},
                "date": {"type": "string"},
                "headcount": {"type": "integer"},
                "capacity": {"type": "integer"},
                "fill_ratio": {"type": "integer"}
            }
        },
        "CreateRoomRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "capacity": {"type": "integer"},
                "equipments": {"type": "string"}
            },
            "required": ["name", "capacity"]
        },
        "UpdateRoomRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "capacity": {"type": "integer"},
                "equipments": {"type": "string"}
            },
            "required": ["name", "capacity"]
        },
        "CreateTrainingRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "headcount": {"type": "integer"},
                "start_date": {"type": "string"},
                "end_date": {"type": "string"},
                "needs": {"type": "string"}
            },
            "required": ["name", "headcount", "start_date", "end_date"]
        },
        "UpdateTrainingRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "headcount": {"type": "integer"},
                "start_date": {"type": "string"},
                "end_date": {"type": "string"},
                "needs": {"type": "string"}
            },
            "required": ["name", "headcount", "start_date", "end_date"]
        },
        "CreateAssignmentRequest": {
            "type": "object",
            "properties": {
                "training_id": {"type": "string"},
                "room_id": {"type": "string"},
                "date": {"type": "string"}
            },
            "required": ["training_id", "room_id", "date"]
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
