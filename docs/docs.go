// Package docs registers the Swagger document of the dashboard API.
// Regenerate with: swag init -g cmd/server/main.go -o docs
package docs

import "github.com/swaggo/swag/v2"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {
            "name": "API Support"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/partner/customers": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["customers"],
                "summary": "List customers",
                "parameters": [
                    {"type": "string", "name": "q", "in": "query"},
                    {"type": "string", "name": "order_status", "in": "query"},
                    {"type": "string", "name": "date_joined_gte", "in": "query"},
                    {"type": "string", "name": "date_joined_lte", "in": "query"},
                    {"type": "integer", "name": "number_of_orders", "in": "query"},
                    {"type": "string", "name": "sort", "in": "query"},
                    {"type": "string", "name": "sortDir", "in": "query"},
                    {"type": "integer", "name": "page", "in": "query"},
                    {"type": "integer", "name": "page_size", "in": "query"}
                ],
                "responses": {"200": {"description": "OK"}, "403": {"description": "Forbidden"}}
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["customers"],
                "summary": "Create a customer",
                "responses": {"201": {"description": "Created"}, "409": {"description": "Conflict"}}
            }
        },
        "/partner/customers/filters": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["customers"],
                "summary": "Customer filter panel",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/partner/customers/sort": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["customers"],
                "summary": "Sort navigation for a column",
                "parameters": [{"type": "string", "name": "field", "in": "query", "required": true}],
                "responses": {"200": {"description": "OK"}, "204": {"description": "Unknown field"}}
            }
        },
        "/partner/customers/filter-tabs": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["customers"],
                "summary": "Saved filter tabs",
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["customers"],
                "summary": "Save a filter tab",
                "responses": {"201": {"description": "Created"}}
            }
        },
        "/partner/customers/filter-tabs/{index}": {
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["customers"],
                "summary": "Delete a filter tab",
                "parameters": [{"type": "integer", "name": "index", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/partner/customers/export": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["customers"],
                "summary": "Export the filtered customers",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/partner/customers/{id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["customers"],
                "summary": "Get a customer",
                "parameters": [{"type": "string", "format": "uuid", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["customers"],
                "summary": "Delete a customer",
                "parameters": [{"type": "string", "format": "uuid", "name": "id", "in": "path", "required": true}],
                "responses": {"204": {"description": "No Content"}}
            }
        },
        "/partner/customers/{id}/details": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["customers"],
                "summary": "Customer details with last orders",
                "parameters": [{"type": "string", "format": "uuid", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/partner/customers/{id}/orders": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["customers"],
                "summary": "Recent orders card",
                "parameters": [{"type": "string", "format": "uuid", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/trade/orders": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["orders"],
                "summary": "List orders",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/trade/orders/{id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["orders"],
                "summary": "Get an order",
                "parameters": [{"type": "string", "format": "uuid", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}
            }
        },
        "/trade/orders/{id}/prep-status": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["orders"],
                "summary": "Order preparation status",
                "parameters": [{"type": "string", "format": "uuid", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/catalog/product-types": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["product-types"],
                "summary": "List product types",
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["product-types"],
                "summary": "Create a product type",
                "responses": {"201": {"description": "Created"}, "422": {"description": "Invalid weight"}}
            }
        },
        "/catalog/product-types/{id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["product-types"],
                "summary": "Get a product type",
                "parameters": [{"type": "string", "format": "uuid", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}}
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["product-types"],
                "summary": "Delete a product type",
                "parameters": [{"type": "string", "format": "uuid", "name": "id", "in": "path", "required": true}],
                "responses": {"204": {"description": "No Content"}}
            }
        },
        "/system/info": {
            "get": {"tags": ["system"], "summary": "Service information", "responses": {"200": {"description": "OK"}}}
        },
        "/system/ping": {
            "get": {"tags": ["system"], "summary": "Ping", "responses": {"200": {"description": "OK"}}}
        },
        "/system/health": {
            "get": {
                "tags": ["system"],
                "summary": "Dependency health",
                "responses": {"200": {"description": "OK"}, "503": {"description": "Unhealthy"}}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "Bearer token authentication. Format: \"Bearer {token}\"",
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
	Title:            "Shop Dashboard API",
	Description:      "Merchant dashboard backend: customers, orders and product types",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
