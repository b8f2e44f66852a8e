package produto_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jmoreira/produtos-cli/pkg/produto"
)

func TestParsePreco(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    float64
		wantErr bool
	}{
		{name: "plain integer", raw: "10", want: 10},
		{name: "dot decimal", raw: "12.5", want: 12.5},
		{name: "comma decimal", raw: "12,50", want: 12.5},
		{name: "currency prefix stripped", raw: "R$ 10,00", want: 10},
		{name: "leading dot", raw: ".5", want: 0.5},
		{name: "zero", raw: "0", want: 0},
		{name: "negative keeps sign", raw: "-5", want: -5},
		{name: "non numeric", raw: "abc", wantErr: true},
		{name: "only separators", raw: ",.", wantErr: true},
		{name: "empty", raw: "", wantErr: true},
		// Pinned quirk: grouping dots are not locale-handled, the first
		// comma becomes the decimal dot and parsing stops at the second
		// separator.
		{name: "thousands with comma decimal", raw: "1.234,56", want: 1.234},
		{name: "multiple commas", raw: "1,2,3", want: 1.2},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, err := produto.ParsePreco(test.raw)
			if test.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.InDelta(t, test.want, got, 1e-9)
		})
	}
}

func TestInput_Validate(t *testing.T) {
	t.Run("valid input", func(t *testing.T) {
		in := produto.Input{
			Nome:      "  Teclado ",
			Descricao: " mecânico ",
			Preco:     "129,90",
			Categoria: "Periféricos",
		}

		p, errs := in.Validate()
		assert.Nil(t, errs)
		assert.Equal(t, "Teclado", p.Nome)
		assert.Equal(t, "Periféricos", p.Categoria)
		assert.InDelta(t, 129.9, p.Preco, 1e-9)
		if assert.NotNil(t, p.Descricao) {
			assert.Equal(t, "mecânico", *p.Descricao)
		}
	})

	t.Run("blank descricao becomes null", func(t *testing.T) {
		in := produto.Input{Nome: "Mouse", Preco: "50", Categoria: "Periféricos"}

		p, errs := in.Validate()
		assert.Nil(t, errs)
		assert.Nil(t, p.Descricao)
	})

	t.Run("missing required fields", func(t *testing.T) {
		_, errs := produto.Input{}.Validate()
		assert.Len(t, errs, 3)
		assert.Contains(t, errs, "nome")
		assert.Contains(t, errs, "categoria")
		assert.Contains(t, errs, "preco")
	})

	t.Run("preco zero is rejected", func(t *testing.T) {
		in := produto.Input{Nome: "Mouse", Preco: "0", Categoria: "Periféricos"}
		_, errs := in.Validate()
		assert.Contains(t, errs, "preco")
	})

	t.Run("preco negative is rejected", func(t *testing.T) {
		in := produto.Input{Nome: "Mouse", Preco: "-5", Categoria: "Periféricos"}
		_, errs := in.Validate()
		assert.Contains(t, errs, "preco")
	})

	t.Run("preco non numeric is rejected", func(t *testing.T) {
		in := produto.Input{Nome: "Mouse", Preco: "abc", Categoria: "Periféricos"}
		_, errs := in.Validate()
		assert.Contains(t, errs, "preco")
	})

	t.Run("error message lists fields", func(t *testing.T) {
		_, errs := produto.Input{Preco: "0"}.Validate()
		assert.Contains(t, errs.Error(), "nome")
		assert.Contains(t, errs.Error(), "preco")
	})
}
