package bot

import (
	"log/slog"
	"strings"
	"sync"

	telebot "gopkg.in/telebot.v3"

	"github.com/Proton-105/telegram-payments/internal/bot/handlers"
)

// Router dispatches commands and callbacks through a shared middleware chain.
type Router struct {
	mu          sync.RWMutex
	commands    map[string]handlers.Handler
	callbacks   map[string]handlers.Handler
	fallback    handlers.Handler
	middlewares []handlers.Middleware
	log         *slog.Logger
}

// NewRouter builds a Router with empty registries.
func NewRouter(log *slog.Logger) *Router {
	if log == nil {
		log = slog.Default()
	}

	return &Router{
		commands:  make(map[string]handlers.Handler),
		callbacks: make(map[string]handlers.Handler),
		log:       log,
	}
}

// RegisterCommand registers h for cmd, e.g. "/buy". Matching ignores case.
func (r *Router) RegisterCommand(cmd string, h handlers.Handler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.commands[strings.ToLower(cmd)] = h
}

// RegisterCallback registers h for callback data starting with prefix.
func (r *Router) RegisterCallback(prefix string, h handlers.Handler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.callbacks[prefix] = h
}

// Use appends a middleware. The first registered middleware runs outermost.
func (r *Router) Use(mw handlers.Middleware) {
	if mw == nil {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.middlewares = append(r.middlewares, mw)
}

// SetDefault sets the handler for text that matches no command.
func (r *Router) SetDefault(h handlers.Handler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fallback = h
}

// Route runs the handler matching the update in c. Unmatched updates are dropped.
func (r *Router) Route(c telebot.Context) error {
	if c == nil {
		return nil
	}

	h := r.match(c)
	if h == nil {
		return nil
	}
	return r.chain(h)(c)
}

// Wrap applies the middleware chain to h, for handlers telebot routes itself
// such as pre-checkout queries and successful payments.
func (r *Router) Wrap(h handlers.Handler) telebot.HandlerFunc {
	return func(c telebot.Context) error {
		if h == nil {
			return nil
		}
		return r.chain(h)(c)
	}
}

func (r *Router) match(c telebot.Context) handlers.Handler {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if cb := c.Callback(); cb != nil {
		h := longestPrefix(r.callbacks, cb.Data)
		if h == nil {
			r.log.Info("no callback handler found", slog.String("data", cb.Data))
		}
		return h
	}

	if text := c.Text(); strings.HasPrefix(text, "/") {
		if h, ok := r.commands[commandName(text)]; ok {
			return h
		}
	}

	return r.fallback
}

// longestPrefix picks the handler whose prefix is the longest match for data.
func longestPrefix(routes map[string]handlers.Handler, data string) handlers.Handler {
	var (
		match   handlers.Handler
		longest = -1
	)
	for prefix, h := range routes {
		if strings.HasPrefix(data, prefix) && len(prefix) > longest {
			match, longest = h, len(prefix)
		}
	}
	return match
}

// commandName extracts "/buy" from "/buy@shop_bot coffee".
func commandName(text string) string {
	name, _, _ := strings.Cut(text, " ")
	name, _, _ = strings.Cut(name, "@")
	return strings.ToLower(name)
}

func (r *Router) chain(h handlers.Handler) handlers.Handler {
	r.mu.RLock()
	middlewares := r.middlewares
	r.mu.RUnlock()

	for i := len(middlewares) - 1; i >= 0; i-- {
		if wrapped := middlewares[i](h); wrapped != nil {
			h = wrapped
		}
	}
	return h
}
