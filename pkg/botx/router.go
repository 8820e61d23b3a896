package botx

import "context"

// Router returns a multiplexer for handlers.
type Router struct {
	notFound    Handler
	handlers    map[string]Handler
	middlewares []Middleware
}

// NewRouter returns a multiplexer for handlers.
func NewRouter() *Router {
	return &Router{
		handlers: make(map[string]Handler),
		notFound: NotFound,
	}
}

// Add adds a handler of the command to the router.
func (r *Router) Add(cmd string, h Handler) {
	r.handlers[cmd] = h
}

// Use applies middleware to all handlers.
func (r *Router) Use(mvs ...Middleware) *Router {
	r.middlewares = append(r.middlewares, mvs...)
	return r
}

// Group groups handlers.
func (r *Router) Group(f func(rtr *Router)) {
	nested := NewRouter()
	f(nested)

	for cmd, h := range nested.handlers {
		// wrap handler with middlewares
		for i := len(nested.middlewares) - 1; i >= 0; i-- {
			h = nested.middlewares[i](h)
		}
		r.Add(cmd, h)
	}
}

// NotFound sets a not found handler to the router.
func (r *Router) NotFound(h Handler) {
	r.notFound = h
}

// Handle routes the request by its command, anything else goes to the not found handler.
func (r *Router) Handle(ctx context.Context, req Request) ([]Response, error) {
	if req.Text == "" {
		return nil, nil
	}

	h, ok := r.handlers[req.Command()]
	if !ok {
		h = r.notFound
	}

	for i := len(r.middlewares) - 1; i >= 0; i-- {
		h = r.middlewares[i](h)
	}

	return h(ctx, req)
}
