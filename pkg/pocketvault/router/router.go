package router

import (
	"fmt"
	"runtime/debug"
	"sort"
)

// Route is the registered name of a screen.
// Applications should declare their routes as constants.
//
// Example:
//
//	const (
//	    RouteHome     Route = "home"
//	    RouteSettings Route = "settings"
//	)
type Route string

// ScreenFunc is a function that runs a screen.
// It takes an input and returns a result.
// The input and result types are screen-specific.
type ScreenFunc func(input any) (result any, err error)

// TransitionFunc is called after each screen completes to determine the next screen.
// It receives the route that just completed, its result, and the navigation stack.
// It returns the next route to navigate to and its input.
//
// Return (route, input) to navigate to a new screen.
// Return stack.Pop() values to go back.
// Return (RouteExit, nil) to exit the router.
type TransitionFunc func(from Route, result any, stack *Stack) (next Route, input any)

// RouteExit is a special Route value that signals the router to exit.
const RouteExit Route = ""

// PanicError is returned by Run when a screen panics.
type PanicError struct {
	Route Route
	Value any    // Value passed to panic
	Stack []byte // Goroutine stack at the point of the panic
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("router: screen %q panicked: %v", e.Route, e.Value)
}

// Unwrap exposes the panic value when it was an error.
func (e *PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}

// Router manages screen navigation with explicit data flow.
// Screens are registered under route names, and a single transition
// function handles all routing logic in one place.
type Router struct {
	screens    map[Route]ScreenFunc
	transition TransitionFunc
	stack      *Stack
}

// New creates a new Router.
func New() *Router {
	return &Router{
		screens: make(map[Route]ScreenFunc),
		stack:   NewStack(),
	}
}

// Register adds a screen to the router under route.
// Registering the same route twice replaces the earlier screen.
func (r *Router) Register(route Route, fn ScreenFunc) *Router {
	r.screens[route] = fn
	return r
}

// OnTransition sets the transition function that determines navigation flow.
// This function is called after each screen completes.
func (r *Router) OnTransition(fn TransitionFunc) *Router {
	r.transition = fn
	return r
}

// Routes returns the registered routes in lexical order.
func (r *Router) Routes() []Route {
	routes := make([]Route, 0, len(r.screens))
	for route := range r.screens {
		routes = append(routes, route)
	}
	sort.Slice(routes, func(i, j int) bool { return routes[i] < routes[j] })
	return routes
}

// Has reports whether route is registered.
func (r *Router) Has(route Route) bool {
	_, ok := r.screens[route]
	return ok
}

// Run starts the router at the given route with the given input.
// It continues running until the transition function returns RouteExit
// or an error occurs. A panicking screen stops the router with a *PanicError.
func (r *Router) Run(start Route, input any) error {
	if r.transition == nil {
		return fmt.Errorf("router: no transition function set")
	}

	current := start
	currentInput := input

	for current != RouteExit {
		fn, ok := r.screens[current]
		if !ok {
			return fmt.Errorf("router: route %q not registered", current)
		}

		result, err := runScreen(current, fn, currentInput)
		if err != nil {
			return err
		}

		current, currentInput = r.transition(current, result, r.stack)
	}
	return nil
}

// Stack returns the navigation stack for use in transition functions.
// This allows the transition function to push/pop for back navigation.
func (r *Router) Stack() *Stack {
	return r.stack
}

func runScreen(route Route, fn ScreenFunc, input any) (result any, err error) {
	defer func() {
		if v := recover(); v != nil {
			err = &PanicError{Route: route, Value: v, Stack: debug.Stack()}
		}
	}()

	result, err = fn(input)
	if err != nil {
		return nil, fmt.Errorf("router: screen %q error: %w", route, err)
	}
	return result, nil
}
