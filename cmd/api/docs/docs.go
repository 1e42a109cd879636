// Package docs holds the OpenAPI document served at /swagger, kept in sync
// with the annotations on handler.QuestionHandler.
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
        "/gerar": {
            "post": {
                "security": [
                    {
                        "ApiKeyAuth": []
                    }
                ],
                "description": "Reads a JSON knowledge base ({\"topicos\": [{\"titulo\", \"conteudo\"}]}) and an instruction, and returns the questions produced by the language model.",
                "consumes": [
                    "multipart/form-data"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "questions"
                ],
                "summary": "Generate multiple-choice questions",
                "parameters": [
                    {
                        "type": "file",
                        "description": "Knowledge base (application/json)",
                        "name": "arquivo",
                        "in": "formData",
                        "required": true
                    },
                    {
                        "type": "string",
                        "description": "Instruction for the question generator",
                        "name": "prompt",
                        "in": "formData",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.GenerateQuestionsResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    },
                    "413": {
                        "description": "Request Entity Too Large",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    }
                }
            }
        }
    },
    "definitions": {
        "domain.Question": {
            "type": "object",
            "properties": {
                "alternativas": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    }
                },
                "pergunta": {
                    "type": "string"
                },
                "respostaCorreta": {
                    "type": "integer"
                }
            }
        },
        "dto.ErrorResponse": {
            "description": "Short, non-leaking error description",
            "type": "object",
            "properties": {
                "erro": {
                    "type": "string"
                }
            }
        },
        "dto.GenerateQuestionsResponse": {
            "description": "Generated multiple-choice questions",
            "type": "object",
            "properties": {
                "questoes": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/domain.Question"
                    }
                }
            }
        }
    },
    "securityDefinitions": {
        "ApiKeyAuth": {
            "description": "Type 'Bearer YOUR_JWT_TOKEN' to authorize.",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8090",
	BasePath:         "/api",
	Schemes:          []string{"http", "https"},
	Title:            "Quiz Forge API",
	Description:      "Generates multiple-choice questions from an uploaded JSON knowledge base.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
