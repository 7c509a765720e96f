package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

// Movie representa um filme do catálogo. As avaliações ficam embutidas no documento.
// Rate é sempre a média das notas em Reviews e NumberOfReviews o seu tamanho.
type Movie struct {
	ID              string    `json:"_id" bson:"_id"`
	UserID          string    `json:"userId,omitempty" bson:"userId,omitempty"` // Administrador que criou o filme
	Name            string    `json:"name" bson:"name"`
	Desc            string    `json:"desc" bson:"desc"`
	Image           string    `json:"image" bson:"image"`
	TitleImage      string    `json:"titleImage" bson:"titleImage"`
	Category        string    `json:"category" bson:"category"`
	Language        string    `json:"language" bson:"language"`
	Year            int       `json:"year" bson:"year"`
	Time            int       `json:"time" bson:"time"` // Duração em minutos
	Video           string    `json:"video,omitempty" bson:"video,omitempty"`
	Casts           []Cast    `json:"casts" bson:"casts"`
	Reviews         []Review  `json:"reviews" bson:"reviews"`
	Rate            float64   `json:"rate" bson:"rate"`
	NumberOfReviews int       `json:"numberOfReviews" bson:"numberOfReviews"`
	CreatedAt       time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt" bson:"updatedAt"`
}

// Cast descreve um integrante do elenco.
type Cast struct {
	Name  string `json:"name" bson:"name" validate:"required"`
	Image string `json:"image" bson:"image"`
}

// Review é a avaliação de um usuário. Nome e imagem são uma cópia do perfil no
// momento do envio e não acompanham edições posteriores.
type Review struct {
	UserID    string    `json:"userId" bson:"userId"`
	UserName  string    `json:"userName" bson:"userName"`
	UserImage string    `json:"userImage" bson:"userImage"`
	Rating    int       `json:"rating" bson:"rating"`
	Comment   string    `json:"comment" bson:"comment"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
}

// Limites da nota de uma avaliação.
const (
	MinRating = 1
	MaxRating = 5
)

// HasReviewFrom indica se o usuário já avaliou o filme.
func (m Movie) HasReviewFrom(userID string) bool {
	for _, r := range m.Reviews {
		if r.UserID == userID {
			return true
		}
	}
	return false
}

// AddReview anexa a avaliação e atualiza a média de forma incremental.
// Não verifica duplicidade; isso é responsabilidade do chamador.
func (m *Movie) AddReview(r Review) {
	m.Reviews = append(m.Reviews, r)
	m.Rate = IncrementalMean(m.Rate, m.NumberOfReviews, float64(r.Rating))
	m.NumberOfReviews++
}

// RecomputeRating recalcula Rate e NumberOfReviews a partir das avaliações embutidas.
func (m *Movie) RecomputeRating() {
	m.Rate = 0
	m.NumberOfReviews = 0
	for _, r := range m.Reviews {
		m.Rate = IncrementalMean(m.Rate, m.NumberOfReviews, float64(r.Rating))
		m.NumberOfReviews++
	}
}

// IncrementalMean devolve a nova média após acrescentar uma amostra,
// sem percorrer as amostras anteriores.
func IncrementalMean(mean float64, count int, sample float64) float64 {
	return (mean*float64(count) + sample) / float64(count+1)
}

// CreateMovieRequest é o payload de criação administrativa de um filme.
// Campos numéricos aceitam número JSON ou string numérica.
type CreateMovieRequest struct {
	Name       string      `json:"name" validate:"required,max=200"`
	Desc       string      `json:"desc" validate:"required"`
	Image      string      `json:"image" validate:"required"`
	TitleImage string      `json:"titleImage" validate:"required"`
	Category   string      `json:"category" validate:"required"`
	Language   string      `json:"language" validate:"required"`
	Year       json.Number `json:"year" validate:"required,numeric"`
	Time       json.Number `json:"time" validate:"required,numeric"`
	Video      string      `json:"video" validate:"omitempty,url"`
	Casts      []Cast      `json:"casts" validate:"omitempty,dive"`
}

// ToMovie converte o payload em uma entidade sem avaliações.
func (r CreateMovieRequest) ToMovie() (Movie, error) {
	year, err := coerceInt(r.Year)
	if err != nil {
		return Movie{}, fmt.Errorf("ano inválido: %w", err)
	}
	runtime, err := coerceInt(r.Time)
	if err != nil {
		return Movie{}, fmt.Errorf("duração inválida: %w", err)
	}

	casts := r.Casts
	if casts == nil {
		casts = []Cast{}
	}

	return Movie{
		Name:       r.Name,
		Desc:       r.Desc,
		Image:      r.Image,
		TitleImage: r.TitleImage,
		Category:   r.Category,
		Language:   r.Language,
		Year:       year,
		Time:       runtime,
		Video:      r.Video,
		Casts:      casts,
		Reviews:    []Review{},
	}, nil
}

// ReviewRequest é o payload de envio de uma avaliação.
type ReviewRequest struct {
	MovieID string      `json:"id" validate:"required"`
	Rating  json.Number `json:"rating" validate:"required,numeric"`
	Comment string      `json:"comment" validate:"max=2000"`
}

// RatingValue converte a nota para inteiro.
func (r ReviewRequest) RatingValue() (int, error) {
	return coerceInt(r.Rating)
}

// RemoveMovieRequest identifica o filme a ser removido.
type RemoveMovieRequest struct {
	MovieID string `json:"movieId" validate:"required"`
}

// MoviesResponse envelopa a listagem do catálogo.
type MoviesResponse struct {
	Movies []Movie `json:"movies"`
}

// coerceInt aceita inteiros e valores decimais sem parte fracionária ("2010", "2010.0").
func coerceInt(n json.Number) (int, error) {
	if i, err := n.Int64(); err == nil {
		return int(i), nil
	}
	f, err := n.Float64()
	if err != nil {
		return 0, err
	}
	if f != float64(int64(f)) {
		return 0, fmt.Errorf("%q não é um inteiro", n.String())
	}
	return int(f), nil
}
