package filtering

import "github.com/vfg2006/dealership-sales-api/internal/domain"

type Paginator struct {
	defaultSize int
	maxSize     int
}

func NewPaginator(defaultSize, maxSize int) *Paginator {
	if defaultSize <= 0 {
		defaultSize = 20
	}
	if maxSize < defaultSize {
		maxSize = defaultSize
	}
	return &Paginator{defaultSize: defaultSize, maxSize: maxSize}
}

// Paginate normaliza índice e tamanho. Índice negativo vira zero, tamanho fica entre 1 e o máximo.
func (p *Paginator) Paginate(index, size int) domain.Page {
	if index < 0 {
		index = 0
	}
	switch {
	case size <= 0:
		size = p.defaultSize
	case size > p.maxSize:
		size = p.maxSize
	}
	return domain.Page{Index: index, Size: size}
}

// Slice pagina uma lista já filtrada em memória
func Slice[T any](items []T, page domain.Page) []T {
	start := page.Offset()
	if start >= len(items) {
		return []T{}
	}
	end := start + page.Size
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}
