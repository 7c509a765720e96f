package password

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Hasher gera e verifica hashes bcrypt (salt embutido no próprio hash).
type Hasher struct {
	cost int
}

// NewHasher cria um Hasher com o custo informado. Custos fora da faixa do bcrypt
// caem para bcrypt.DefaultCost.
func NewHasher(cost int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &Hasher{cost: cost}
}

// Hash gera um hash forte para a senha informada.
func (h *Hasher) Hash(plain string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), h.cost)
	if err != nil {
		return "", fmt.Errorf("falha ao gerar hash da senha: %w", err)
	}
	return string(hashed), nil
}

// Verify compara a senha em texto puro com o hash salvo.
func (h *Hasher) Verify(plain, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
