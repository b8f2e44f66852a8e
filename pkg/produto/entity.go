// Package produto holds the product entity and the client-side checks that
// run before anything reaches the network.
package produto

type Produto struct {
	ID        int64   `json:"id,omitempty"`
	Nome      string  `json:"nome"`
	Descricao *string `json:"descricao"`
	Preco     float64 `json:"preco"`
	Categoria string  `json:"categoria"`
}
