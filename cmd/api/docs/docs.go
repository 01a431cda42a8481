// Package docs holds the swagger document served at /swagger.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "termsOfService": "http://swagger.io/terms/",
        "contact": {
            "name": "API Support",
            "email": "ank.github@gmail.com"
        },
        "license": {
            "name": "Apache 2.0",
            "url": "http://www.apache.org/licenses/LICENSE-2.0.html"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/api/v1/summaries": {
            "post": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "description": "Accepts a file or pasted text, extracts and validates it, then queues a summary job and returns its id.",
                "consumes": [
                    "multipart/form-data"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Summaries"
                ],
                "summary": "Queue a document for summarization",
                "parameters": [
                    {
                        "type": "file",
                        "description": "A .txt, .pdf or .docx document; wins over text",
                        "name": "file",
                        "in": "formData"
                    },
                    {
                        "type": "string",
                        "description": "Pasted document text",
                        "name": "text",
                        "in": "formData"
                    },
                    {
                        "type": "string",
                        "description": "short (default) or detailed",
                        "name": "summary_type",
                        "in": "formData"
                    },
                    {
                        "type": "string",
                        "description": "Language of the summary, default English",
                        "name": "language",
                        "in": "formData"
                    }
                ],
                "responses": {
                    "202": {
                        "description": "Job successfully created",
                        "schema": {
                            "$ref": "#/definitions/api.InitJobResponse"
                        }
                    },
                    "400": {
                        "description": "No content, empty text or invalid field",
                        "schema": {
                            "$ref": "#/definitions/api.JobResponse"
                        }
                    },
                    "413": {
                        "description": "Document or upload too large",
                        "schema": {
                            "$ref": "#/definitions/api.JobResponse"
                        }
                    },
                    "415": {
                        "description": "Unsupported file type",
                        "schema": {
                            "$ref": "#/definitions/api.JobResponse"
                        }
                    },
                    "422": {
                        "description": "Text could not be extracted",
                        "schema": {
                            "$ref": "#/definitions/api.JobResponse"
                        }
                    }
                }
            }
        },
        "/api/v1/summaries/{id}": {
            "get": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "description": "Returns the state of a summary job and, once complete, the summary.",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Summaries"
                ],
                "summary": "Get summary job status",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Job ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Current status of the job",
                        "schema": {
                            "$ref": "#/definitions/api.JobResponse"
                        }
                    },
                    "404": {
                        "description": "Job not found",
                        "schema": {
                            "$ref": "#/definitions/api.JobResponse"
                        }
                    }
                }
            }
        },
        "/api/v1/summaries/{id}/docx": {
            "get": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "produces": [
                    "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
                ],
                "tags": [
                    "Summaries"
                ],
                "summary": "Download a summary as a Word document",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Job ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "file"
                        }
                    },
                    "404": {
                        "description": "Job not found",
                        "schema": {
                            "$ref": "#/definitions/api.JobResponse"
                        }
                    },
                    "409": {
                        "description": "Job has no summary yet",
                        "schema": {
                            "$ref": "#/definitions/api.JobResponse"
                        }
                    }
                }
            }
        },
        "/healthz": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Operations"
                ],
                "summary": "Service health",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/api.HealthResponse"
                        }
                    },
                    "503": {
                        "description": "Service Unavailable",
                        "schema": {
                            "$ref": "#/definitions/api.HealthResponse"
                        }
                    }
                }
            }
        }
    },
    "definitions": {
        "api.HealthResponse": {
            "type": "object",
            "properties": {
                "dependencies": {
                    "type": "object",
                    "additionalProperties": {
                        "type": "string"
                    }
                },
                "status": {
                    "type": "string",
                    "example": "ok"
                }
            }
        },
        "api.InitJobResponse": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "string"
                },
                "status_url": {
                    "type": "string"
                }
            }
        },
        "api.JobOutgoingError": {
            "type": "object",
            "properties": {
                "can_retry": {
                    "type": "boolean",
                    "example": false
                },
                "code": {
                    "type": "integer",
                    "example": 400
                },
                "kind": {
                    "type": "string",
                    "example": "validation"
                },
                "message": {
                    "type": "string",
                    "example": "⚠️ Please upload a file or enter some text."
                }
            }
        },
        "api.JobResponse": {
            "type": "object",
            "properties": {
                "document": {
                    "type": "string",
                    "example": "lease.pdf"
                },
                "end_time": {
                    "type": "string"
                },
                "error": {
                    "$ref": "#/definitions/api.JobOutgoingError"
                },
                "id": {
                    "type": "string",
                    "example": "3f0c7a8e-5d1b-4c1e-9d1a-0b6c3e2f9a11"
                },
                "result": {
                    "$ref": "#/definitions/api.Result"
                },
                "start_time": {
                    "type": "string"
                }
            }
        },
        "api.Result": {
            "type": "object",
            "properties": {
                "status": {
                    "type": "string",
                    "example": "COMPLETE"
                },
                "step": {
                    "type": "string",
                    "example": "Summarize"
                },
                "summary": {
                    "$ref": "#/definitions/api.SummaryResponse"
                }
            }
        },
        "api.SummaryResponse": {
            "type": "object",
            "properties": {
                "cached": {
                    "type": "boolean",
                    "example": false
                },
                "label": {
                    "type": "string",
                    "example": "LegalDocument"
                },
                "language": {
                    "type": "string",
                    "example": "English"
                },
                "summary": {
                    "type": "string",
                    "example": "**Acme Ltd** leases the premises to **Beta LLP**..."
                },
                "summary_type": {
                    "type": "string",
                    "example": "short"
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

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:3000",
	BasePath:         "/",
	Schemes:          []string{"http", "https"},
	Title:            "Document Summary API",
	Description:      "Classifies uploaded or pasted documents as legal or general and summarizes them with an LLM.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
