package utility

import (
	"strings"

	"go.uber.org/zap"

	"github.com/yacobolo/stylesheet/internal/ruleset"
)

// Config is threaded into the generator at construction.
type Config struct {
	// Safelist holds class lists that are always generated, one element
	// per entry, e.g. "flex col reverse".
	Safelist []string
}

// Generator turns scanned class groups into a rule table. It holds only
// read-only configuration and is safe for concurrent use.
type Generator struct {
	log      *zap.Logger
	safelist [][]string
}

// NewGenerator creates a generator. A nil logger disables logging.
func NewGenerator(log *zap.Logger, cfg Config) *Generator {
	if log == nil {
		log = zap.NewNop()
	}
	safelist := make([][]string, 0, len(cfg.Safelist))
	for _, s := range cfg.Safelist {
		if fields := strings.Fields(s); len(fields) > 0 {
			safelist = append(safelist, fields)
		}
	}
	return &Generator{log: log.Named("utility"), safelist: safelist}
}

// Generate runs every token with a registered trigger through its builder
// and merges all output into one table. Later rules win on conflicting
// properties. Tokens without a builder, or with a variant the builder does
// not know, contribute nothing.
func (g *Generator) Generate(groups [][]string) *ruleset.Table {
	t := ruleset.New()

	var tokens, matched int
	for _, raw := range append(groups[:len(groups):len(groups)], g.safelist...) {
		group := NewGroup(raw)
		for _, tok := range group.Tokens {
			tokens++
			b, ok := Lookup(tok.Trigger)
			if !ok {
				continue
			}
			rules := b.Build(tok, group)
			if len(rules) == 0 {
				g.log.Debug("No rule for token", zap.String("token", tok.Raw))
				continue
			}
			matched++
			for _, r := range rules {
				sel := r.Selector()
				for _, d := range r.Declarations {
					t.Set(sel, d.Property, d.Value)
				}
			}
		}
	}

	g.log.Debug("Generated utility rules",
		zap.Int("groups", len(groups)+len(g.safelist)),
		zap.Int("tokens", tokens),
		zap.Int("matched", matched),
		zap.Int("selectors", t.Len()))
	return t
}
