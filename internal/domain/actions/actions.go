// Package actions resolves marketing action recommendations for RFV scores.
package actions

// DefaultAction is returned for scores the catalog does not map.
const DefaultAction = "Ação padrão para segmentos não definidos."

// builtin holds the built-in score-to-action catalog. Not every one of the
// 64 possible codes needs an entry; unmapped codes resolve to the default.
var builtin = map[string]string{
	"AAA": "Enviar cupons de desconto e amostras grátis.",
	"AAB": "Enviar ofertas especiais para manter o engajamento.",
	"AAC": "Enviar conteúdos personalizados para fidelização.",
	"ABA": "Realizar campanhas de reativação.",
	"ABB": "Monitorar clientes com potencial de churn.",
	"ABC": "Oferecer incentivos para aumentar a frequência.",
	"BAA": "Realizar pesquisas de satisfação.",
	"BAD": "Implementar estratégias de retenção.",
	"DDD": "Clientes inativos, sem ações planejadas.",
}

// Catalog maps RFV scores to marketing actions with a default fallback.
type Catalog struct {
	entries  map[string]string
	fallback string
}

// NewCatalog builds a catalog from the built-in entries plus any options.
func NewCatalog(opts ...Option) *Catalog {
	c := &Catalog{
		entries:  make(map[string]string, len(builtin)),
		fallback: DefaultAction,
	}
	for score, action := range builtin {
		c.entries[score] = action
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Resolve returns the action for score, or the default for unmapped scores.
func (c *Catalog) Resolve(score string) string {
	if action, ok := c.entries[score]; ok {
		return action
	}
	return c.fallback
}

// All returns a copy of the catalog entries.
func (c *Catalog) All() map[string]string {
	out := make(map[string]string, len(c.entries))
	for score, action := range c.entries {
		out[score] = action
	}
	return out
}

// Default returns the fallback action for unmapped scores.
func (c *Catalog) Default() string {
	return c.fallback
}
