package domain

// ErrorResponse é a estrutura padronizada para respostas de erro na API.
// @Description Estrutura padronizada para respostas de erro na API.
type ErrorResponse struct {
	Code     int    `json:"code" example:"404"`
	Category string `json:"category" example:"NOT_FOUND"`
	Message  string `json:"message" example:"Filme não encontrado."`
}

// MessageResponse é usada pelas operações que respondem apenas com uma confirmação.
type MessageResponse struct {
	Message string `json:"message" example:"Filme criado com sucesso."`
}
