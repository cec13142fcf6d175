// Package docs registers the OpenAPI description of the dompet API with swag
// so gin-swagger can serve it.
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
        "/auth/register": {
            "post": {
                "tags": ["auth"],
                "summary": "Register a new user",
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/handlers.RegisterRequest"}}],
                "responses": {
                    "201": {"description": "User registered and tokens generated", "schema": {"$ref": "#/definitions/handlers.AuthResponse"}},
                    "400": {"description": "Invalid input", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "409": {"description": "Username already exists", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/auth/login": {
            "post": {
                "tags": ["auth"],
                "summary": "Login user",
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/handlers.LoginRequest"}}],
                "responses": {
                    "200": {"description": "User authenticated and tokens generated", "schema": {"$ref": "#/definitions/handlers.AuthResponse"}},
                    "401": {"description": "Invalid credentials", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/auth/refresh": {
            "post": {
                "tags": ["auth"],
                "summary": "Refresh tokens",
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/handlers.RefreshRequest"}}],
                "responses": {
                    "200": {"description": "New token pair", "schema": {"$ref": "#/definitions/handlers.AuthResponse"}},
                    "401": {"description": "Invalid or expired token", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/profile": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["user"],
                "summary": "Get user profile",
                "responses": {"200": {"description": "User profile"}}
            }
        },
        "/pockets": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["pockets"],
                "summary": "List pockets",
                "responses": {"200": {"description": "Pockets"}}
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["pockets"],
                "summary": "Create pocket",
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/handlers.CreatePocketRequest"}}],
                "responses": {"201": {"description": "Created pocket"}}
            }
        },
        "/pockets/{id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["pockets"],
                "summary": "Get pocket",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "Pocket"}}
            },
            "put": {
                "security": [{"BearerAuth": []}],
                "tags": ["pockets"],
                "summary": "Update pocket",
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true},
                    {"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/handlers.UpdatePocketRequest"}}
                ],
                "responses": {"200": {"description": "Updated pocket"}}
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["pockets"],
                "summary": "Delete pocket",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "Pocket deleted"},
                    "409": {"description": "Pocket in use", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/transactions": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["transactions"],
                "summary": "List transactions",
                "parameters": [
                    {"type": "string", "name": "type", "in": "query"},
                    {"type": "integer", "name": "limit", "in": "query"},
                    {"type": "string", "name": "pocket_id", "in": "query"},
                    {"type": "string", "name": "from_date", "in": "query"},
                    {"type": "string", "name": "to_date", "in": "query"}
                ],
                "responses": {"200": {"description": "Transactions"}}
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["transactions"],
                "summary": "Create transaction",
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/handlers.CreateTransactionRequest"}}],
                "responses": {"201": {"description": "Created transaction"}}
            }
        },
        "/transactions/{id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["transactions"],
                "summary": "Get transaction",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "Transaction"}}
            },
            "put": {
                "security": [{"BearerAuth": []}],
                "tags": ["transactions"],
                "summary": "Update transaction",
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true},
                    {"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/handlers.UpdateTransactionRequest"}}
                ],
                "responses": {"200": {"description": "Updated transaction"}}
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["transactions"],
                "summary": "Delete transaction",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "Transaction deleted"}}
            }
        },
        "/plans": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["plans"],
                "summary": "List plans",
                "parameters": [{"type": "boolean", "name": "is_paid", "in": "query"}],
                "responses": {"200": {"description": "Plans"}}
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["plans"],
                "summary": "Create plan",
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/handlers.CreatePlanRequest"}}],
                "responses": {"201": {"description": "Created plan"}}
            }
        },
        "/plans/{id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["plans"],
                "summary": "Get plan",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "Plan"}}
            },
            "put": {
                "security": [{"BearerAuth": []}],
                "tags": ["plans"],
                "summary": "Update plan",
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true},
                    {"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/handlers.UpdatePlanRequest"}}
                ],
                "responses": {"200": {"description": "Updated plan"}}
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["plans"],
                "summary": "Delete plan",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "Plan deleted"}}
            }
        },
        "/plans/{id}/pay": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["plans"],
                "summary": "Pay plan",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "Paid plan and the booked transaction, if any"},
                    "409": {"description": "No pocket available", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/summary": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["summary"],
                "summary": "Get summary",
                "parameters": [{"type": "integer", "name": "months", "in": "query"}],
                "responses": {"200": {"description": "Summary"}}
            }
        },
        "/data": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["summary"],
                "summary": "Get data snapshot",
                "responses": {"200": {"description": "Snapshot"}}
            }
        },
        "/admin/users": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["admin"],
                "summary": "List users",
                "parameters": [
                    {"type": "integer", "name": "page", "in": "query"},
                    {"type": "integer", "name": "page_size", "in": "query"}
                ],
                "responses": {"200": {"description": "Paginated users"}}
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["admin"],
                "summary": "Create user",
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/handlers.CreateUserRequest"}}],
                "responses": {"201": {"description": "Created user"}}
            }
        },
        "/admin/users/{id}": {
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["admin"],
                "summary": "Delete user",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "User deleted"},
                    "403": {"description": "Admin users cannot be deleted", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "handlers.ErrorDetail": {
            "type": "object",
            "properties": {"code": {"type": "string"}, "message": {"type": "string"}}
        },
        "handlers.ErrorResponse": {
            "type": "object",
            "properties": {"error": {"$ref": "#/definitions/handlers.ErrorDetail"}}
        },
        "handlers.RegisterRequest": {
            "type": "object",
            "required": ["username", "password"],
            "properties": {
                "username": {"type": "string"},
                "password": {"type": "string"},
                "name": {"type": "string"},
                "avatar": {"type": "string"}
            }
        },
        "handlers.LoginRequest": {
            "type": "object",
            "required": ["username", "password"],
            "properties": {"username": {"type": "string"}, "password": {"type": "string"}}
        },
        "handlers.RefreshRequest": {
            "type": "object",
            "required": ["refresh_token"],
            "properties": {"refresh_token": {"type": "string"}}
        },
        "handlers.AuthResponse": {
            "type": "object",
            "properties": {
                "access_token": {"type": "string"},
                "refresh_token": {"type": "string"},
                "user": {"type": "object"}
            }
        },
        "handlers.CreatePocketRequest": {
            "type": "object",
            "required": ["name", "type"],
            "properties": {
                "name": {"type": "string"},
                "balance": {"type": "integer", "minimum": -1000000000000000, "maximum": 1000000000000000},
                "type": {"type": "string", "enum": ["bank", "wallet", "ewallet"]},
                "color": {"type": "string"}
            }
        },
        "handlers.UpdatePocketRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "balance": {"type": "integer", "minimum": -1000000000000000, "maximum": 1000000000000000},
                "type": {"type": "string", "enum": ["bank", "wallet", "ewallet"]},
                "color": {"type": "string"}
            }
        },
        "handlers.CreateTransactionRequest": {
            "type": "object",
            "required": ["pocket_id", "type", "category", "amount"],
            "properties": {
                "pocket_id": {"type": "string"},
                "type": {"type": "string", "enum": ["income", "expense"]},
                "category": {"type": "string"},
                "amount": {"type": "integer", "minimum": 1, "maximum": 1000000000000000},
                "description": {"type": "string"},
                "date": {"type": "string"}
            }
        },
        "handlers.UpdateTransactionRequest": {
            "type": "object",
            "properties": {
                "pocket_id": {"type": "string"},
                "type": {"type": "string", "enum": ["income", "expense"]},
                "category": {"type": "string"},
                "amount": {"type": "integer", "minimum": 1, "maximum": 1000000000000000},
                "description": {"type": "string"},
                "date": {"type": "string"}
            }
        },
        "handlers.CreatePlanRequest": {
            "type": "object",
            "required": ["title", "amount", "due_date", "category"],
            "properties": {
                "title": {"type": "string"},
                "amount": {"type": "integer", "minimum": 1, "maximum": 1000000000000000},
                "due_date": {"type": "string"},
                "category": {"type": "string"},
                "type": {"type": "string", "enum": ["income", "expense"]},
                "pocket_id": {"type": "string"}
            }
        },
        "handlers.UpdatePlanRequest": {
            "type": "object",
            "properties": {
                "title": {"type": "string"},
                "amount": {"type": "integer", "minimum": 1, "maximum": 1000000000000000},
                "due_date": {"type": "string"},
                "category": {"type": "string"},
                "type": {"type": "string", "enum": ["income", "expense"]},
                "is_paid": {"type": "boolean"},
                "pocket_id": {"type": "string"}
            }
        },
        "handlers.CreateUserRequest": {
            "type": "object",
            "required": ["username", "password"],
            "properties": {
                "username": {"type": "string"},
                "password": {"type": "string"},
                "name": {"type": "string"},
                "avatar": {"type": "string"},
                "role": {"type": "string", "enum": ["admin", "user"]}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "Type \"Bearer\" followed by a space and JWT token.",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Dompet API",
	Description:      "Dompet is a personal money manager: pockets, transactions and planned payments with balances kept reconciled.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
