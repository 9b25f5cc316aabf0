package persist

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/td0m/todoboard/pkg/todo"
)

// Gateway keeps storage failures away from the caller. Loading falls back to
// an empty collection and saving reports success as a bool, both logging the cause.
type Gateway struct {
	p      Persistor
	logger *log.Logger
}

func NewGateway(p Persistor, logger *log.Logger) *Gateway {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Gateway{p: p, logger: logger}
}

func (g *Gateway) Load() todo.Collection {
	c, warnings, err := g.p.Load()
	if err != nil {
		g.logger.Error("could not load todos, starting empty", "err", err)
		return todo.Collection{}
	}
	for _, w := range warnings {
		g.logger.Warn("repaired stored todos", "detail", w)
	}
	g.logger.Debug("loaded todos", "count", len(c))
	return c
}

func (g *Gateway) Save(c todo.Collection) bool {
	if err := g.p.Save(c); err != nil {
		g.logger.Error("could not save todos", "err", err, "count", len(c))
		return false
	}
	return true
}

func (g *Gateway) Close() error {
	return g.p.Close()
}
