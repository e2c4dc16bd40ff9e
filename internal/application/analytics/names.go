package analytics

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// nameOrder compara nombres de distritos, unidades y productos según el orden
// alfabético pt-BR ("Água" junto a "Agua", no después de "Z").
// collate.Collator no es seguro para uso concurrente: crear uno por llamada.
type nameOrder struct {
	c *collate.Collator
}

func newNameOrder() nameOrder {
	return nameOrder{c: collate.New(language.BrazilianPortuguese)}
}

// compare devuelve -1, 0 o 1. Nombres que la colación considera iguales se
// desempatan por bytes para que el orden sea total.
func (o nameOrder) compare(a, b string) int {
	if r := o.c.CompareString(a, b); r != 0 {
		return r
	}
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// sortNames ordena in place.
func (o nameOrder) sortNames(names []string) {
	sort.SliceStable(names, func(i, j int) bool { return o.compare(names[i], names[j]) < 0 })
}
