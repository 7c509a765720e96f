// Package docs registra a especificação Swagger servida em /swagger/*.
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
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    },
    "paths": {
        "/movies": {
            "get": {"tags": ["movies"], "summary": "Lista todos os filmes", "produces": ["application/json"],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.MoviesResponse"}}}},
            "post": {"security": [{"BearerAuth": []}], "tags": ["movies"], "summary": "Cria um filme (admin)",
                "consumes": ["application/json"], "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "movie", "required": true, "schema": {"$ref": "#/definitions/domain.CreateMovieRequest"}}],
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/domain.MessageResponse"}},
                    "400": {"description": "Payload inválido", "schema": {"$ref": "#/definitions/domain.ErrorResponse"}},
                    "403": {"description": "Não é administrador", "schema": {"$ref": "#/definitions/domain.ErrorResponse"}}}},
            "put": {"security": [{"BearerAuth": []}], "tags": ["movies"], "summary": "Remove um filme (admin)",
                "parameters": [{"in": "body", "name": "movie", "required": true, "schema": {"$ref": "#/definitions/domain.RemoveMovieRequest"}}],
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/domain.MessageResponse"}},
                    "404": {"description": "Filme não encontrado", "schema": {"$ref": "#/definitions/domain.ErrorResponse"}}}}
        },
        "/movies/import": {
            "get": {"tags": ["movies"], "summary": "Importa o catálogo inicial",
                "responses": {"201": {"description": "Created", "schema": {"type": "array", "items": {"$ref": "#/definitions/domain.Movie"}}}}}
        },
        "/movies/reviews": {
            "post": {"security": [{"BearerAuth": []}], "tags": ["movies"], "summary": "Avalia um filme",
                "parameters": [{"in": "body", "name": "review", "required": true, "schema": {"$ref": "#/definitions/domain.ReviewRequest"}}],
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/domain.Movie"}},
                    "409": {"description": "Filme já avaliado", "schema": {"$ref": "#/definitions/domain.ErrorResponse"}}}}
        },
        "/movies/{id}": {
            "get": {"tags": ["movies"], "summary": "Busca um filme pelo ID",
                "parameters": [{"in": "path", "name": "id", "type": "string", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.Movie"}},
                    "404": {"description": "Filme não encontrado", "schema": {"$ref": "#/definitions/domain.ErrorResponse"}}}},
            "delete": {"security": [{"BearerAuth": []}], "tags": ["movies"], "summary": "Remove um filme pelo ID (admin)",
                "parameters": [{"in": "path", "name": "id", "type": "string", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.MessageResponse"}}}}
        },
        "/users": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["admin"], "summary": "Lista todos os usuários (admin)",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.UsersResponse"}}}},
            "post": {"tags": ["users"], "summary": "Registra um novo usuário",
                "parameters": [{"in": "body", "name": "registration", "required": true, "schema": {"$ref": "#/definitions/domain.RegisterRequest"}}],
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/domain.MessageResponse"}},
                    "400": {"description": "Payload inválido ou e-mail já cadastrado", "schema": {"$ref": "#/definitions/domain.ErrorResponse"}}}},
            "put": {"security": [{"BearerAuth": []}], "tags": ["users"], "summary": "Atualiza o perfil do usuário autenticado",
                "parameters": [{"in": "body", "name": "profile", "required": true, "schema": {"$ref": "#/definitions/domain.UpdateProfileRequest"}}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.AuthResponse"}}}},
            "delete": {"security": [{"BearerAuth": []}], "tags": ["users"], "summary": "Remove a conta do usuário autenticado",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.MessageResponse"}}}}
        },
        "/users/login": {
            "post": {"tags": ["users"], "summary": "Autentica um usuário e retorna um JWT",
                "parameters": [{"in": "body", "name": "login", "required": true, "schema": {"$ref": "#/definitions/domain.LoginRequest"}}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.AuthResponse"}},
                    "401": {"description": "Credenciais inválidas", "schema": {"$ref": "#/definitions/domain.ErrorResponse"}}}}
        },
        "/users/password": {
            "put": {"security": [{"BearerAuth": []}], "tags": ["users"], "summary": "Troca a senha do usuário autenticado",
                "parameters": [{"in": "body", "name": "password", "required": true, "schema": {"$ref": "#/definitions/domain.ChangePasswordRequest"}}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.MessageResponse"}}}}
        },
        "/users/favorites": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["favorites"], "summary": "Lista os filmes favoritos",
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/domain.Movie"}}}}},
            "post": {"security": [{"BearerAuth": []}], "tags": ["favorites"], "summary": "Adiciona um filme aos favoritos",
                "parameters": [{"in": "body", "name": "favorite", "required": true, "schema": {"$ref": "#/definitions/domain.FavoriteRequest"}}],
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/domain.Movie"}}}}},
            "put": {"security": [{"BearerAuth": []}], "tags": ["favorites"], "summary": "Remove um filme dos favoritos",
                "parameters": [{"in": "body", "name": "favorite", "required": true, "schema": {"$ref": "#/definitions/domain.FavoriteRequest"}}],
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/domain.Movie"}}}}},
            "delete": {"security": [{"BearerAuth": []}], "tags": ["favorites"], "summary": "Esvazia a lista de favoritos",
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/domain.Movie"}}}}}
        },
        "/users/remove": {
            "put": {"security": [{"BearerAuth": []}], "tags": ["admin"], "summary": "Remove um usuário (admin)",
                "parameters": [{"in": "body", "name": "user", "required": true, "schema": {"$ref": "#/definitions/domain.AdminDeleteUserRequest"}}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.UsersResponse"}}}}
        },
        "/users/{id}": {
            "delete": {"security": [{"BearerAuth": []}], "tags": ["admin"], "summary": "Remove um usuário pelo ID (admin)",
                "parameters": [{"in": "path", "name": "id", "type": "string", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.UsersResponse"}}}}
        }
    },
    "definitions": {
        "domain.Cast": {"type": "object", "properties": {"name": {"type": "string"}, "image": {"type": "string"}}},
        "domain.Review": {"type": "object", "properties": {
            "userId": {"type": "string"}, "userName": {"type": "string"}, "userImage": {"type": "string"},
            "rating": {"type": "integer"}, "comment": {"type": "string"}, "createdAt": {"type": "string"}}},
        "domain.Movie": {"type": "object", "properties": {
            "_id": {"type": "string"}, "userId": {"type": "string"}, "name": {"type": "string"}, "desc": {"type": "string"},
            "image": {"type": "string"}, "titleImage": {"type": "string"}, "category": {"type": "string"},
            "language": {"type": "string"}, "year": {"type": "integer"}, "time": {"type": "integer"}, "video": {"type": "string"},
            "casts": {"type": "array", "items": {"$ref": "#/definitions/domain.Cast"}},
            "reviews": {"type": "array", "items": {"$ref": "#/definitions/domain.Review"}},
            "rate": {"type": "number"}, "numberOfReviews": {"type": "integer"},
            "createdAt": {"type": "string"}, "updatedAt": {"type": "string"}}},
        "domain.MoviesResponse": {"type": "object", "properties": {"movies": {"type": "array", "items": {"$ref": "#/definitions/domain.Movie"}}}},
        "domain.CreateMovieRequest": {"type": "object", "required": ["name", "desc", "image", "titleImage", "category", "language", "year", "time"], "properties": {
            "name": {"type": "string"}, "desc": {"type": "string"}, "image": {"type": "string"}, "titleImage": {"type": "string"},
            "category": {"type": "string"}, "language": {"type": "string"}, "year": {"type": "string"}, "time": {"type": "string"},
            "video": {"type": "string"}, "casts": {"type": "array", "items": {"$ref": "#/definitions/domain.Cast"}}}},
        "domain.RemoveMovieRequest": {"type": "object", "required": ["movieId"], "properties": {"movieId": {"type": "string"}}},
        "domain.ReviewRequest": {"type": "object", "required": ["id", "rating"], "properties": {
            "id": {"type": "string"}, "rating": {"type": "string"}, "comment": {"type": "string"}}},
        "domain.User": {"type": "object", "properties": {
            "_id": {"type": "string"}, "fullName": {"type": "string"}, "email": {"type": "string"}, "image": {"type": "string"},
            "isAdmin": {"type": "boolean"}, "likedMovies": {"type": "array", "items": {"type": "string"}},
            "createdAt": {"type": "string"}, "updatedAt": {"type": "string"}}},
        "domain.UsersResponse": {"type": "object", "properties": {"users": {"type": "array", "items": {"$ref": "#/definitions/domain.User"}}}},
        "domain.RegisterRequest": {"type": "object", "required": ["fullName", "email", "password"], "properties": {
            "fullName": {"type": "string"}, "email": {"type": "string"}, "image": {"type": "string"}, "password": {"type": "string"}}},
        "domain.LoginRequest": {"type": "object", "required": ["email", "password"], "properties": {
            "email": {"type": "string"}, "password": {"type": "string"}}},
        "domain.UpdateProfileRequest": {"type": "object", "properties": {"fullName": {"type": "string"}, "image": {"type": "string"}}},
        "domain.ChangePasswordRequest": {"type": "object", "required": ["oldPassword", "newPassword"], "properties": {
            "oldPassword": {"type": "string"}, "newPassword": {"type": "string"}}},
        "domain.FavoriteRequest": {"type": "object", "required": ["movieId"], "properties": {"movieId": {"type": "string"}}},
        "domain.AdminDeleteUserRequest": {"type": "object", "required": ["id"], "properties": {"id": {"type": "string"}}},
        "domain.AuthResponse": {"type": "object", "properties": {
            "_id": {"type": "string"}, "fullName": {"type": "string"}, "email": {"type": "string"}, "image": {"type": "string"},
            "isAdmin": {"type": "boolean"}, "token": {"type": "string"}}},
        "domain.MessageResponse": {"type": "object", "properties": {"message": {"type": "string", "example": "Filme criado com sucesso."}}},
        "domain.ErrorResponse": {"type": "object", "properties": {
            "code": {"type": "integer", "example": 404}, "category": {"type": "string", "example": "NOT_FOUND"},
            "message": {"type": "string", "example": "Filme não encontrado."}}}
    }
}`

// SwaggerInfo contém os metadados exportados da especificação.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api",
	Schemes:          []string{},
	Title:            "Movie Review API",
	Description:      "API de catálogo de filmes, avaliações e favoritos.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
