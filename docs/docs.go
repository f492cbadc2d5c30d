// Package docs registers the OpenAPI spec served at /swagger.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/api/auth/register": {
            "post": {
                "tags": ["Auth"],
                "summary": "Register a new user",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "responses": {
                    "201": {"description": "Account created"},
                    "400": {"description": "Validation failure"},
                    "409": {"description": "Email already registered"}
                }
            }
        },
        "/api/auth/login": {
            "post": {
                "tags": ["Auth"],
                "summary": "Log in with email and password",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "Token issued"},
                    "401": {"description": "Invalid credentials"}
                }
            }
        },
        "/api/auth/logout": {
            "post": {
                "tags": ["Auth"],
                "summary": "Log out",
                "produces": ["application/json"],
                "responses": {"200": {"description": "Cookie cleared"}}
            }
        },
        "/api/auth/me": {
            "get": {
                "tags": ["Auth"],
                "summary": "Current user profile",
                "produces": ["application/json"],
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "Profile"},
                    "401": {"description": "Not authenticated"}
                }
            }
        },
        "/api/predict_all": {
            "post": {
                "tags": ["Predictions"],
                "summary": "Run a crop prediction",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "Prediction result"},
                    "400": {"description": "Invalid input"}
                }
            }
        },
        "/api/crops": {
            "get": {
                "tags": ["Predictions"],
                "summary": "List supported crops",
                "produces": ["application/json"],
                "responses": {"200": {"description": "Crop catalog"}}
            }
        },
        "/api/predictions": {
            "get": {
                "tags": ["Predictions"],
                "summary": "List prediction history",
                "produces": ["application/json"],
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "History"},
                    "401": {"description": "Not authenticated"}
                }
            }
        },
        "/api/report": {
            "post": {
                "tags": ["Predictions"],
                "summary": "Download a prediction report as PDF",
                "consumes": ["application/json"],
                "produces": ["application/pdf"],
                "responses": {
                    "200": {"description": "PDF report"},
                    "400": {"description": "Invalid input"}
                }
            }
        },
        "/api/contact": {
            "post": {
                "tags": ["Contact"],
                "summary": "Submit a contact message",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "responses": {
                    "201": {"description": "Message stored"},
                    "400": {"description": "Validation failure"}
                }
            }
        },
        "/health": {
            "get": {
                "tags": ["Health"],
                "summary": "Health check",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "Healthy"},
                    "503": {"description": "Unhealthy"}
                }
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

var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "AgriProfit API",
	Description:      "Crop prediction and farm profitability service",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
