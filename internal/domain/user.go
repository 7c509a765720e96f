package domain

import "time"

// User representa a entidade do usuário no sistema.
// Os favoritos guardam apenas os IDs dos filmes, na ordem em que foram adicionados.
type User struct {
	ID          string    `json:"_id" bson:"_id"`
	FullName    string    `json:"fullName" bson:"fullName"`
	Email       string    `json:"email" bson:"email"`
	Image       string    `json:"image" bson:"image"`
	Password    string    `json:"-" bson:"password"` // Oculta o hash da senha no JSON de resposta
	IsAdmin     bool      `json:"isAdmin" bson:"isAdmin"`
	LikedMovies []string  `json:"likedMovies" bson:"likedMovies"`
	CreatedAt   time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt" bson:"updatedAt"`
}

// HasFavorite indica se o filme já está na lista de favoritos.
func (u User) HasFavorite(movieID string) bool {
	for _, id := range u.LikedMovies {
		if id == movieID {
			return true
		}
	}
	return false
}

// RegisterRequest representa o payload de entrada para o registro.
type RegisterRequest struct {
	FullName string `json:"fullName" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Image    string `json:"image" validate:"omitempty,max=2048"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

// LoginRequest representa o payload de entrada para o login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UpdateProfileRequest é uma atualização parcial: campos vazios mantêm o valor anterior.
type UpdateProfileRequest struct {
	FullName string `json:"fullName" validate:"omitempty,max=100"`
	Image    string `json:"image" validate:"omitempty,max=2048"`
}

// ChangePasswordRequest representa o payload da troca de senha.
type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,min=6,max=72"`
}

// FavoriteRequest identifica o filme a adicionar ou remover dos favoritos.
type FavoriteRequest struct {
	MovieID string `json:"movieId" validate:"required"`
}

// AdminDeleteUserRequest identifica o usuário a ser removido por um administrador.
type AdminDeleteUserRequest struct {
	ID string `json:"id" validate:"required"`
}

// AuthResponse é o perfil público devolvido no login e na atualização de perfil.
type AuthResponse struct {
	ID       string `json:"_id"`
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Image    string `json:"image"`
	IsAdmin  bool   `json:"isAdmin"`
	Token    string `json:"token"`
}

// UsersResponse envelopa a listagem administrativa de usuários.
type UsersResponse struct {
	Users []User `json:"users"`
}
