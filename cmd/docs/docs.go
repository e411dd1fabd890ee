// Package docs holds the OpenAPI document served under /swagger.
// Regenerate with: swag init -g cmd/branchledger_backend/main.go -o cmd/docs
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
        "/gl/mappings": {
            "get": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "mappings"
                ],
                "summary": "List GL mappings",
                "parameters": [
                    {
                        "type": "string",
                        "in": "query",
                        "name": "module",
                        "required": true
                    },
                    {
                        "type": "string",
                        "in": "query",
                        "name": "transactionType"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "400": {
                        "description": "Bad Request"
                    },
                    "401": {
                        "description": "Unauthorized"
                    }
                }
            },
            "post": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "mappings"
                ],
                "summary": "Create a GL mapping",
                "parameters": [
                    {
                        "in": "body",
                        "name": "request",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/dto.CreateMappingRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created"
                    },
                    "400": {
                        "description": "Bad Request"
                    },
                    "401": {
                        "description": "Unauthorized"
                    }
                }
            }
        },
        "/gl/mappings/resolve": {
            "post": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "mappings"
                ],
                "summary": "Resolve the GL mapping for a transaction",
                "parameters": [
                    {
                        "in": "body",
                        "name": "request",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/dto.ResolveMappingRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "400": {
                        "description": "Bad Request"
                    },
                    "401": {
                        "description": "Unauthorized"
                    },
                    "403": {
                        "description": "Forbidden"
                    },
                    "404": {
                        "description": "Not Found"
                    }
                }
            }
        },
        "/gl/entries": {
            "post": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "entries"
                ],
                "summary": "Post a business transaction",
                "parameters": [
                    {
                        "in": "body",
                        "name": "request",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/dto.PostSourceTransactionRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created"
                    },
                    "400": {
                        "description": "Bad Request"
                    },
                    "401": {
                        "description": "Unauthorized"
                    }
                }
            },
            "get": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "entries"
                ],
                "summary": "List journal entries",
                "parameters": [
                    {
                        "type": "string",
                        "in": "query",
                        "name": "source"
                    },
                    {
                        "type": "string",
                        "in": "query",
                        "name": "transactionId"
                    },
                    {
                        "type": "string",
                        "in": "query",
                        "name": "branchId"
                    },
                    {
                        "type": "string",
                        "in": "query",
                        "name": "status"
                    },
                    {
                        "type": "string",
                        "in": "query",
                        "name": "nextToken"
                    },
                    {
                        "type": "integer",
                        "in": "query",
                        "name": "limit"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "400": {
                        "description": "Bad Request"
                    },
                    "401": {
                        "description": "Unauthorized"
                    }
                }
            }
        },
        "/gl/entries/custom": {
            "post": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "entries"
                ],
                "summary": "Post a custom journal entry",
                "parameters": [
                    {
                        "in": "body",
                        "name": "request",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/dto.CreateCustomEntryRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created"
                    },
                    "400": {
                        "description": "Bad Request"
                    },
                    "401": {
                        "description": "Unauthorized"
                    }
                }
            }
        },
        "/gl/entries/purchases": {
            "post": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "entries"
                ],
                "summary": "Post a purchase",
                "parameters": [
                    {
                        "in": "body",
                        "name": "request",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/dto.CreatePurchaseEntryRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created"
                    },
                    "400": {
                        "description": "Bad Request"
                    },
                    "401": {
                        "description": "Unauthorized"
                    }
                }
            }
        },
        "/gl/entries/adjustments": {
            "post": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "entries"
                ],
                "summary": "Post an adjustment",
                "parameters": [
                    {
                        "in": "body",
                        "name": "request",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/dto.CreateAdjustmentEntryRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created"
                    },
                    "400": {
                        "description": "Bad Request"
                    },
                    "401": {
                        "description": "Unauthorized"
                    }
                }
            }
        },
        "/gl/entries/payments": {
            "post": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "entries"
                ],
                "summary": "Post a payment",
                "parameters": [
                    {
                        "in": "body",
                        "name": "request",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/dto.CreatePaymentEntryRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created"
                    },
                    "400": {
                        "description": "Bad Request"
                    },
                    "401": {
                        "description": "Unauthorized"
                    }
                }
            }
        },
        "/gl/entries/{entry_id}": {
            "get": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "entries"
                ],
                "summary": "Get a journal entry",
                "parameters": [
                    {
                        "type": "string",
                        "in": "path",
                        "name": "entry_id",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "400": {
                        "description": "Bad Request"
                    },
                    "401": {
                        "description": "Unauthorized"
                    }
                }
            }
        },
        "/gl/entries/{entry_id}/reverse": {
            "post": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "entries"
                ],
                "summary": "Reverse a journal entry",
                "parameters": [
                    {
                        "type": "string",
                        "in": "path",
                        "name": "entry_id",
                        "required": true
                    },
                    {
                        "in": "body",
                        "name": "request",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/dto.ReverseRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created"
                    },
                    "400": {
                        "description": "Bad Request"
                    },
                    "401": {
                        "description": "Unauthorized"
                    }
                }
            }
        },
        "/gl/sources/{module}/{transaction_id}/reverse": {
            "post": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "sources"
                ],
                "summary": "Reverse a business transaction's posting",
                "parameters": [
                    {
                        "type": "string",
                        "in": "path",
                        "name": "module",
                        "required": true
                    },
                    {
                        "type": "string",
                        "in": "path",
                        "name": "transaction_id",
                        "required": true
                    },
                    {
                        "in": "body",
                        "name": "request",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/dto.ReverseRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "400": {
                        "description": "Bad Request"
                    },
                    "401": {
                        "description": "Unauthorized"
                    }
                }
            }
        },
        "/gl/sources/{module}/{transaction_id}/reclassify": {
            "post": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "sources"
                ],
                "summary": "Reclassify a business transaction",
                "parameters": [
                    {
                        "type": "string",
                        "in": "path",
                        "name": "module",
                        "required": true
                    },
                    {
                        "type": "string",
                        "in": "path",
                        "name": "transaction_id",
                        "required": true
                    },
                    {
                        "in": "body",
                        "name": "request",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/dto.ReclassifyRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created"
                    },
                    "400": {
                        "description": "Bad Request"
                    },
                    "401": {
                        "description": "Unauthorized"
                    }
                }
            }
        },
        "/float-accounts/{float_account_id}/statement": {
            "get": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "statements"
                ],
                "summary": "Float account statement",
                "parameters": [
                    {
                        "type": "string",
                        "in": "path",
                        "name": "float_account_id",
                        "required": true
                    },
                    {
                        "type": "string",
                        "in": "query",
                        "name": "startDate"
                    },
                    {
                        "type": "string",
                        "in": "query",
                        "name": "endDate"
                    },
                    {
                        "type": "string",
                        "in": "query",
                        "name": "branchId"
                    },
                    {
                        "type": "string",
                        "in": "query",
                        "name": "transactionType"
                    },
                    {
                        "type": "boolean",
                        "in": "query",
                        "name": "includeGL"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "400": {
                        "description": "Bad Request"
                    },
                    "401": {
                        "description": "Unauthorized"
                    }
                }
            }
        },
        "/health": {
            "get": {
                "produces": [
                    "text/plain"
                ],
                "tags": [
                    "root"
                ],
                "summary": "Liveness check",
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        }
    },
    "definitions": {
        "dto.CreateMappingRequest": {
            "type": "object",
            "properties": {
                "serviceModule": {
                    "type": "string"
                },
                "transactionType": {
                    "type": "string"
                },
                "branchId": {
                    "type": "string"
                },
                "debitAccountId": {
                    "type": "string"
                },
                "creditAccountId": {
                    "type": "string"
                },
                "description": {
                    "type": "string"
                },
                "priority": {
                    "type": "integer"
                },
                "conditions": {
                    "type": "array",
                    "items": {
                        "type": "object",
                        "properties": {
                            "attribute": {
                                "type": "string"
                            },
                            "operator": {
                                "type": "string"
                            },
                            "value": {
                                "type": "string"
                            }
                        }
                    }
                }
            }
        },
        "dto.ResolveMappingRequest": {
            "type": "object",
            "properties": {
                "serviceModule": {
                    "type": "string"
                },
                "transactionType": {
                    "type": "string"
                },
                "branchId": {
                    "type": "string"
                },
                "attributes": {
                    "type": "object"
                }
            }
        },
        "dto.PostSourceTransactionRequest": {
            "type": "object",
            "properties": {
                "transactionId": {
                    "type": "string"
                },
                "reference": {
                    "type": "string"
                },
                "serviceModule": {
                    "type": "string"
                },
                "transactionType": {
                    "type": "string"
                },
                "amount": {
                    "type": "string"
                },
                "fee": {
                    "type": "string"
                },
                "date": {
                    "type": "string"
                },
                "branchId": {
                    "type": "string"
                },
                "description": {
                    "type": "string"
                },
                "attributes": {
                    "type": "object"
                }
            }
        },
        "dto.CreateCustomEntryRequest": {
            "type": "object",
            "properties": {
                "transactionId": {
                    "type": "string"
                },
                "transactionSource": {
                    "type": "string"
                },
                "transactionType": {
                    "type": "string"
                },
                "reference": {
                    "type": "string"
                },
                "description": {
                    "type": "string"
                },
                "date": {
                    "type": "string"
                },
                "branchId": {
                    "type": "string"
                },
                "legs": {
                    "type": "array",
                    "items": {
                        "type": "object",
                        "properties": {
                            "accountId": {
                                "type": "string"
                            },
                            "side": {
                                "type": "string"
                            },
                            "amount": {
                                "type": "string"
                            },
                            "description": {
                                "type": "string"
                            }
                        }
                    }
                }
            }
        },
        "dto.CreatePurchaseEntryRequest": {
            "type": "object",
            "properties": {
                "transactionId": {
                    "type": "string"
                },
                "transactionSource": {
                    "type": "string"
                },
                "transactionType": {
                    "type": "string"
                },
                "reference": {
                    "type": "string"
                },
                "description": {
                    "type": "string"
                },
                "date": {
                    "type": "string"
                },
                "branchId": {
                    "type": "string"
                },
                "inventoryAccountId": {
                    "type": "string"
                },
                "paymentAccountId": {
                    "type": "string"
                },
                "amount": {
                    "type": "string"
                },
                "feeAccountId": {
                    "type": "string"
                },
                "fee": {
                    "type": "string"
                }
            }
        },
        "dto.CreateAdjustmentEntryRequest": {
            "type": "object",
            "properties": {
                "transactionId": {
                    "type": "string"
                },
                "transactionSource": {
                    "type": "string"
                },
                "transactionType": {
                    "type": "string"
                },
                "reference": {
                    "type": "string"
                },
                "description": {
                    "type": "string"
                },
                "date": {
                    "type": "string"
                },
                "branchId": {
                    "type": "string"
                },
                "debitOnIncreaseAccountId": {
                    "type": "string"
                },
                "creditOnIncreaseAccountId": {
                    "type": "string"
                },
                "oldAmount": {
                    "type": "string"
                },
                "newAmount": {
                    "type": "string"
                }
            }
        },
        "dto.CreatePaymentEntryRequest": {
            "type": "object",
            "properties": {
                "transactionId": {
                    "type": "string"
                },
                "transactionSource": {
                    "type": "string"
                },
                "transactionType": {
                    "type": "string"
                },
                "reference": {
                    "type": "string"
                },
                "description": {
                    "type": "string"
                },
                "date": {
                    "type": "string"
                },
                "branchId": {
                    "type": "string"
                },
                "payableAccountId": {
                    "type": "string"
                },
                "cashAccountId": {
                    "type": "string"
                },
                "amount": {
                    "type": "string"
                }
            }
        },
        "dto.ReverseRequest": {
            "type": "object",
            "properties": {
                "reason": {
                    "type": "string"
                },
                "originalSettled": {
                    "type": "boolean"
                }
            }
        },
        "dto.ReclassifyRequest": {
            "type": "object",
            "properties": {
                "reason": {
                    "type": "string"
                },
                "originalSettled": {
                    "type": "boolean"
                },
                "transaction": {
                    "$ref": "#/definitions/dto.PostSourceTransactionRequest"
                }
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
	Title:            "Branch Ledger API",
	Description:      "GL posting and float statement reconciliation for the branch back-office.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
