package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "School Site Content API",
        "description": "Blob-backed content API for the public site and admin dashboard",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Auth", "description": "Dashboard session management"},
        {"name": "Blob", "description": "Primitive storage operations"},
        {"name": "Collections", "description": "Ordered roster collections"},
        {"name": "News", "description": "Public news surface"},
        {"name": "NavLinks", "description": "Navbar link configuration"},
        {"name": "Departments", "description": "Department photo wall"},
        {"name": "Documents", "description": "Public document listings"},
        {"name": "Archive", "description": "Archive folder moves"}
    ],
    "paths": {
        "/auth/login": {
            "post": {
                "tags": ["Auth"],
                "summary": "Dashboard sign-in",
                "responses": {
                    "200": {"description": "Session issued"},
                    "401": {"description": "Invalid password"},
                    "429": {"description": "Too many failed attempts"}
                }
            }
        },
        "/auth/logout": {
            "post": {
                "tags": ["Auth"],
                "summary": "Dashboard sign-out",
                "responses": {"200": {"description": "Session cleared"}}
            }
        },
        "/blob/list": {
            "get": {
                "tags": ["Blob"],
                "summary": "List stored objects under a folder",
                "parameters": [
                    {"name": "folder", "in": "query", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "Object listing"},
                    "400": {"description": "Missing folder"}
                }
            }
        },
        "/blob/upload": {
            "post": {
                "tags": ["Blob"],
                "summary": "Upload raw bytes to a storage path",
                "parameters": [
                    {"name": "filename", "in": "query", "type": "string", "required": true},
                    {"name": "folder", "in": "query", "type": "string"},
                    {"name": "overwrite", "in": "query", "type": "boolean"},
                    {"name": "unique", "in": "query", "type": "boolean"}
                ],
                "responses": {
                    "200": {"description": "Stored object reference"},
                    "400": {"description": "Missing filename or empty body"},
                    "409": {"description": "File already exists"},
                    "413": {"description": "Payload too large"}
                }
            }
        },
        "/blob/delete": {
            "delete": {
                "tags": ["Blob"],
                "summary": "Delete an object by path or public URL",
                "parameters": [
                    {"name": "pathname", "in": "query", "type": "string"},
                    {"name": "url", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "Deleted"},
                    "400": {"description": "Missing pathname and url"}
                }
            }
        },
        "/blob/usage": {
            "get": {
                "tags": ["Blob"],
                "summary": "Aggregate storage usage report",
                "responses": {"200": {"description": "Usage report"}}
            }
        },
        "/news": {
            "get": {
                "tags": ["News"],
                "summary": "List published news",
                "responses": {"200": {"description": "News listing"}}
            }
        },
        "/news/{id}": {
            "get": {
                "tags": ["News"],
                "summary": "Fetch one full article",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "Full article"},
                    "404": {"description": "Not found"}
                }
            }
        },
        "/navbar-links": {
            "get": {
                "tags": ["NavLinks"],
                "summary": "Current navbar link configuration",
                "responses": {"200": {"description": "Link configuration"}}
            },
            "put": {
                "tags": ["NavLinks"],
                "summary": "Replace the navbar link configuration",
                "responses": {"200": {"description": "Stored configuration"}}
            }
        },
        "/departments": {
            "get": {
                "tags": ["Departments"],
                "summary": "Department photos in display order",
                "responses": {"200": {"description": "Photo listing"}}
            }
        },
        "/documents": {
            "get": {
                "tags": ["Documents"],
                "summary": "File names under a document folder",
                "parameters": [
                    {"name": "folder", "in": "query", "type": "string", "required": true}
                ],
                "responses": {"200": {"description": "File names"}}
            }
        },
        "/archive": {
            "post": {
                "tags": ["Archive"],
                "summary": "Move an object into the archive folder",
                "responses": {
                    "200": {"description": "Archived"},
                    "404": {"description": "File not found"}
                }
            }
        }
    },
    "definitions": {
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
