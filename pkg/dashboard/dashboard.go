// Package dashboard keeps the last fetched product list in memory so views
// can filter locally and prune deletions without a full reload.
package dashboard

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoreira/produtos-cli/pkg/produto"
)

type ProductAPI interface {
	ListProdutos(ctx context.Context) ([]produto.Produto, error)
	SearchProdutosPorNome(ctx context.Context, nome string) ([]produto.Produto, error)
	DeleteProduto(ctx context.Context, id int64) error
}

type Dashboard struct {
	api      ProductAPI
	produtos []produto.Produto
}

func New(api ProductAPI) *Dashboard {
	return &Dashboard{api: api}
}

// Load replaces the cached list with a fresh fetch. Last writer wins; there
// is no request fencing.
func (d *Dashboard) Load(ctx context.Context) error {
	produtos, err := d.api.ListProdutos(ctx)
	if err != nil {
		return fmt.Errorf("dashboard: failed loading produtos, %w", err)
	}
	d.produtos = produtos
	return nil
}

func (d *Dashboard) Len() int {
	return len(d.produtos)
}

func (d *Dashboard) All() []produto.Produto {
	out := make([]produto.Produto, len(d.produtos))
	copy(out, d.produtos)
	return out
}

// Filter matches the cached list locally, case-insensitively, against
// nome, categoria and descricao. An empty term returns everything.
func (d *Dashboard) Filter(term string) []produto.Produto {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == `` {
		return d.All()
	}

	var matched []produto.Produto
	for _, p := range d.produtos {
		if strings.Contains(strings.ToLower(p.Nome), term) ||
			strings.Contains(strings.ToLower(p.Categoria), term) ||
			(p.Descricao != nil && strings.Contains(strings.ToLower(*p.Descricao), term)) {
			matched = append(matched, p)
		}
	}
	return matched
}

// Delete removes the product remotely, then prunes it from the cached list
// in place instead of reloading.
func (d *Dashboard) Delete(ctx context.Context, id int64) error {
	if err := d.api.DeleteProduto(ctx, id); err != nil {
		return fmt.Errorf("dashboard: failed deleting produto %d, %w", id, err)
	}

	kept := d.produtos[:0]
	for _, p := range d.produtos {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	d.produtos = kept
	return nil
}

// Search asks the server; the cached list stays as it is.
func (d *Dashboard) Search(ctx context.Context, nome string) ([]produto.Produto, error) {
	produtos, err := d.api.SearchProdutosPorNome(ctx, nome)
	if err != nil {
		return nil, fmt.Errorf("dashboard: failed searching produtos, %w", err)
	}
	return produtos, nil
}
