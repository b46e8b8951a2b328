// Package docs holds the OpenAPI description served on /api-docs.
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
        "/orders": {
            "get": {
                "produces": ["application/json"],
                "tags": ["orders"],
                "summary": "List orders",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/order.Order"}}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/response.Status"}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["orders"],
                "summary": "Place an order",
                "parameters": [
                    {"description": "Order to place", "name": "order", "in": "body", "required": true, "schema": {"$ref": "#/definitions/createorder.createOrderRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/order.Order"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/response.Status"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/response.Status"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/response.Status"}}
                }
            }
        },
        "/orders/get/count": {
            "get": {
                "produces": ["application/json"],
                "tags": ["sales"],
                "summary": "Count orders",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ordercount.orderCountResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/response.Status"}}
                }
            }
        },
        "/orders/get/totalsales": {
            "get": {
                "produces": ["application/json"],
                "tags": ["sales"],
                "summary": "Sum of all order totals",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/totalsales.totalSalesResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/response.Status"}}
                }
            }
        },
        "/orders/get/usersorders/{userID}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["orders"],
                "summary": "List the orders of a user",
                "parameters": [
                    {"type": "integer", "description": "User ID", "name": "userID", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/order.Order"}}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/response.Status"}}
                }
            }
        },
        "/orders/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["orders"],
                "summary": "Get an order with its items",
                "parameters": [
                    {"type": "integer", "description": "Order ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/order.Order"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/response.Status"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/response.Status"}}
                }
            },
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["orders"],
                "summary": "Change the status of an order",
                "parameters": [
                    {"type": "integer", "description": "Order ID", "name": "id", "in": "path", "required": true},
                    {"description": "New status", "name": "status", "in": "body", "required": true, "schema": {"$ref": "#/definitions/updateorderstatus.updateOrderStatusRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/order.Order"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/response.Status"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/response.Status"}}
                }
            },
            "delete": {
                "produces": ["application/json"],
                "tags": ["orders"],
                "summary": "Delete an order",
                "parameters": [
                    {"type": "integer", "description": "Order ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Status"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/response.Status"}}
                }
            }
        }
    },
    "definitions": {
        "createorder.createOrderRequest": {
            "type": "object",
            "required": ["city", "country", "orderItems", "phone", "shippingAddress1", "zip"],
            "properties": {
                "city": {"type": "string"},
                "country": {"type": "string"},
                "orderItems": {"type": "array", "minItems": 1, "items": {"$ref": "#/definitions/createorder.itemInCreateOrderRequest"}},
                "phone": {"type": "string"},
                "shippingAddress1": {"type": "string"},
                "shippingAddress2": {"type": "string"},
                "status": {"type": "string"},
                "user": {"type": "integer"},
                "zip": {"type": "string"}
            }
        },
        "createorder.itemInCreateOrderRequest": {
            "type": "object",
            "properties": {
                "product": {"type": "integer"},
                "quantity": {"type": "integer"}
            }
        },
        "order.Order": {
            "type": "object",
            "properties": {
                "city": {"type": "string"},
                "country": {"type": "string"},
                "createdAt": {"type": "string"},
                "id": {"type": "integer"},
                "orderItemIds": {"type": "array", "items": {"type": "integer"}},
                "orderItems": {"type": "array", "items": {"$ref": "#/definitions/orderitem.OrderItem"}},
                "phone": {"type": "string"},
                "shippingAddress1": {"type": "string"},
                "shippingAddress2": {"type": "string"},
                "status": {"type": "string", "enum": ["pending", "processing", "shipped", "delivered", "cancelled"]},
                "totalPrice": {"type": "string"},
                "updatedAt": {"type": "string"},
                "userId": {"type": "integer"},
                "zip": {"type": "string"}
            }
        },
        "orderitem.OrderItem": {
            "type": "object",
            "properties": {
                "createdAt": {"type": "string"},
                "id": {"type": "integer"},
                "productId": {"type": "integer"},
                "quantity": {"type": "integer"},
                "unitPrice": {"type": "string"}
            }
        },
        "ordercount.orderCountResponse": {
            "type": "object",
            "properties": {
                "orderCount": {"type": "integer"}
            }
        },
        "response.Status": {
            "type": "object",
            "properties": {
                "message": {"type": "string"},
                "success": {"type": "boolean"}
            }
        },
        "totalsales.totalSalesResponse": {
            "type": "object",
            "properties": {
                "totalsales": {"type": "string", "x-nullable": true}
            }
        },
        "updateorderstatus.updateOrderStatusRequest": {
            "type": "object",
            "required": ["status"],
            "properties": {
                "status": {"type": "string", "enum": ["pending", "processing", "shipped", "delivered", "cancelled"]}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Shop order service",
	Description:      "Places orders from priced line items and reports sales.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
