package produto

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Input is a product form as the user typed it. Preco stays a raw string
// until validation because the accepted syntax is looser than a float
// literal.
type Input struct {
	Nome      string
	Descricao string
	Preco     string
	Categoria string
}

// FieldErrors maps a field name to its validation message.
type FieldErrors map[string]string

func (fe FieldErrors) Error() string {
	fields := make([]string, 0, len(fe))
	for f := range fe {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f, fe[f]))
	}
	return "produto: invalid input (" + strings.Join(parts, "; ") + ")"
}

// Validate checks the form and builds the payload to send. A non-nil
// FieldErrors means nothing may be submitted.
func (in Input) Validate() (Produto, FieldErrors) {
	errs := FieldErrors{}

	nome := strings.TrimSpace(in.Nome)
	if nome == "" {
		errs["nome"] = "nome is required"
	}

	categoria := strings.TrimSpace(in.Categoria)
	if categoria == "" {
		errs["categoria"] = "categoria is required"
	}

	var preco float64
	rawPreco := strings.TrimSpace(in.Preco)
	if rawPreco == "" {
		errs["preco"] = "preco is required"
	} else {
		v, err := ParsePreco(rawPreco)
		if err != nil || v <= 0 {
			errs["preco"] = "preco must be a number greater than zero"
		} else {
			preco = v
		}
	}

	if len(errs) > 0 {
		return Produto{}, errs
	}

	p := Produto{
		Nome:      nome,
		Preco:     preco,
		Categoria: categoria,
	}
	if descricao := strings.TrimSpace(in.Descricao); descricao != "" {
		p.Descricao = &descricao
	}
	return p, nil
}

var errNoNumber = errors.New("produto: preco has no leading number")

// ParsePreco accepts what the product form accepted: everything outside
// [0-9.,] is dropped, the first comma becomes a decimal dot, and the
// longest leading float prefix wins. That makes "1.234,56" parse as 1.234;
// locale-aware grouping is deliberately not handled here. A leading minus
// keeps its meaning so negative prices can be rejected downstream.
func ParsePreco(raw string) (float64, error) {
	negative := strings.HasPrefix(strings.TrimSpace(raw), "-")
	cleaned := strings.Map(func(r rune) rune {
		if (r >= '0' && r <= '9') || r == '.' || r == ',' {
			return r
		}
		return -1
	}, raw)
	cleaned = strings.Replace(cleaned, ",", ".", 1)

	// Longest valid leading prefix: digits with at most one dot.
	seenDot := false
	seenDigit := false
	end := 0
	for _, r := range cleaned {
		if r == '.' {
			if seenDot {
				break
			}
			seenDot = true
		} else if r >= '0' && r <= '9' {
			seenDigit = true
		} else {
			// A second comma survives the sanitizing; it ends the number.
			break
		}
		end++
	}
	if !seenDigit {
		return 0, errNoNumber
	}

	v, err := strconv.ParseFloat(cleaned[:end], 64)
	if err != nil {
		return 0, fmt.Errorf("produto: failed parsing preco %q, %w", raw, err)
	}
	if negative {
		v = -v
	}
	return v, nil
}
