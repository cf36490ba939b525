package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Wake-up Planner API",
        "description": "Computes the next wake-up alarm from the university timetable, reminders and travel time.",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "in": "header",
            "name": "Authorization"
        }
    },
    "tags": [
        {
            "name": "Authentication",
            "description": "Passphrase login"
        },
        {
            "name": "Settings",
            "description": "Routine, addresses and transport"
        },
        {
            "name": "Schedule",
            "description": "Normalised weekly timetable"
        },
        {
            "name": "Custom Lessons",
            "description": "User-defined lessons"
        },
        {
            "name": "Reminders",
            "description": "One-off appointments"
        },
        {
            "name": "Routes",
            "description": "Travel estimates"
        },
        {
            "name": "Alarm",
            "description": "Wake-up computation"
        }
    ],
    "paths": {
        "/auth/token": {
            "post": {
                "tags": [
                    "Authentication"
                ],
                "summary": "Exchange the passphrase for a bearer token",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/TokenRequest"
                        }
                    }
                ]
            }
        },
        "/auth/session": {
            "get": {
                "tags": [
                    "Authentication"
                ],
                "summary": "Claims of the current token",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/settings": {
            "get": {
                "tags": [
                    "Settings"
                ],
                "summary": "Get settings",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            },
            "put": {
                "tags": [
                    "Settings"
                ],
                "summary": "Replace settings",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/SettingsRequest"
                        }
                    }
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/schedule": {
            "get": {
                "tags": [
                    "Schedule"
                ],
                "summary": "Weekly schedule",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "at",
                        "in": "query",
                        "type": "string",
                        "required": false,
                        "description": "Reference time (RFC 3339)"
                    }
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/schedule/refresh": {
            "post": {
                "tags": [
                    "Schedule"
                ],
                "summary": "Queue a timetable refresh",
                "responses": {
                    "202": {
                        "description": "Accepted",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "503": {
                        "description": "Service Unavailable",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/schedule/export": {
            "get": {
                "tags": [
                    "Schedule"
                ],
                "summary": "Export the weekly schedule",
                "responses": {
                    "200": {
                        "description": "File"
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "format",
                        "in": "query",
                        "type": "string",
                        "required": false,
                        "description": "csv or pdf"
                    },
                    {
                        "name": "at",
                        "in": "query",
                        "type": "string",
                        "required": false,
                        "description": "Reference time (RFC 3339)"
                    }
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "produces": [
                    "text/csv",
                    "application/pdf"
                ]
            }
        },
        "/custom-lessons": {
            "get": {
                "tags": [
                    "Custom Lessons"
                ],
                "summary": "List custom lessons",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            },
            "post": {
                "tags": [
                    "Custom Lessons"
                ],
                "summary": "Add a custom lesson",
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/CustomLessonRequest"
                        }
                    }
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/custom-lessons/{id}": {
            "delete": {
                "tags": [
                    "Custom Lessons"
                ],
                "summary": "Remove a custom lesson",
                "responses": {
                    "204": {
                        "description": "No Content"
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "type": "string",
                        "required": true,
                        "description": "Lesson ID"
                    }
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/reminders": {
            "get": {
                "tags": [
                    "Reminders"
                ],
                "summary": "List reminders",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            },
            "post": {
                "tags": [
                    "Reminders"
                ],
                "summary": "Create reminder",
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/ReminderRequest"
                        }
                    }
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/reminders/{id}": {
            "put": {
                "tags": [
                    "Reminders"
                ],
                "summary": "Replace reminder",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "type": "string",
                        "required": true,
                        "description": "Reminder ID"
                    },
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/ReminderRequest"
                        }
                    }
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            },
            "delete": {
                "tags": [
                    "Reminders"
                ],
                "summary": "Delete reminder",
                "responses": {
                    "204": {
                        "description": "No Content"
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "type": "string",
                        "required": true,
                        "description": "Reminder ID"
                    }
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/route": {
            "get": {
                "tags": [
                    "Routes"
                ],
                "summary": "Estimate a route from home",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "destination",
                        "in": "query",
                        "type": "string",
                        "required": true,
                        "description": "Address or campus code"
                    },
                    {
                        "name": "departure",
                        "in": "query",
                        "type": "string",
                        "required": false,
                        "description": "Arrival deadline (RFC 3339)"
                    }
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/alarm/next": {
            "get": {
                "tags": [
                    "Alarm"
                ],
                "summary": "Next wake-up alarm",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "at",
                        "in": "query",
                        "type": "string",
                        "required": false,
                        "description": "Reference time (RFC 3339)"
                    }
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        }
    },
    "definitions": {
        "TokenRequest": {
            "type": "object",
            "required": [
                "passphrase"
            ],
            "properties": {
                "passphrase": {
                    "type": "string"
                },
                "device": {
                    "type": "string"
                }
            }
        },
        "CampusAddressRequest": {
            "type": "object",
            "required": [
                "code"
            ],
            "properties": {
                "code": {
                    "type": "string"
                },
                "name": {
                    "type": "string"
                },
                "address": {
                    "type": "string"
                }
            }
        },
        "SettingsRequest": {
            "type": "object",
            "required": [
                "transportType"
            ],
            "properties": {
                "morningRoutine": {
                    "type": "integer"
                },
                "extraTime": {
                    "type": "integer"
                },
                "homeAddress": {
                    "type": "string"
                },
                "campusAddresses": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/CampusAddressRequest"
                    }
                },
                "transportType": {
                    "type": "string",
                    "enum": [
                        "public",
                        "car",
                        "walk"
                    ]
                },
                "groupNumber": {
                    "type": "string"
                },
                "weatherNotifications": {
                    "type": "boolean"
                },
                "trafficNotifications": {
                    "type": "boolean"
                },
                "customRouteDuration": {
                    "type": "integer"
                }
            }
        },
        "ReminderRequest": {
            "type": "object",
            "required": [
                "title",
                "datetime",
                "type"
            ],
            "properties": {
                "title": {
                    "type": "string"
                },
                "address": {
                    "type": "string"
                },
                "datetime": {
                    "type": "string",
                    "format": "date-time"
                },
                "type": {
                    "type": "string",
                    "enum": [
                        "meeting",
                        "event",
                        "appointment"
                    ]
                },
                "routeDuration": {
                    "type": "integer"
                }
            }
        },
        "CustomLessonRequest": {
            "type": "object",
            "required": [
                "dayNumber",
                "lessonNumber",
                "subject"
            ],
            "properties": {
                "dayNumber": {
                    "type": "integer"
                },
                "lessonNumber": {
                    "type": "integer"
                },
                "time": {
                    "type": "string"
                },
                "subject": {
                    "type": "string"
                },
                "type": {
                    "type": "string"
                },
                "room": {
                    "type": "string"
                },
                "professor": {
                    "type": "string"
                }
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {
                    "type": "string"
                },
                "message": {
                    "type": "string"
                },
                "status": {
                    "type": "integer"
                }
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {
                    "type": "object"
                },
                "error": {
                    "$ref": "#/definitions/APIError"
                },
                "meta": {
                    "type": "object"
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
