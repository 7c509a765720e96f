// Package seed carrega o catálogo inicial usado pela importação em massa.
package seed

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"moviereview/internal/domain"
)

//go:embed movies.json
var moviesJSON []byte

// Movies devolve uma cópia nova do catálogo embutido a cada chamada.
func Movies() ([]domain.Movie, error) {
	var movies []domain.Movie
	if err := json.Unmarshal(moviesJSON, &movies); err != nil {
		return nil, fmt.Errorf("catálogo embutido inválido: %w", err)
	}
	return movies, nil
}
