// Package router provides screen navigation with explicit data flow.
//
// Screens are registered under named routes, each with its own input and
// result types, and a single transition function decides where every screen
// leads. This keeps navigation traceable without a global navigator.
//
// # Basic Usage
//
//	const (
//	    RouteWallet   router.Route = "wallet"
//	    RouteActivity router.Route = "activity"
//	)
//
//	type WalletInput struct {
//	    Accounts []Account
//	    Resume   *WalletResume // nil if fresh, populated if returning
//	}
//
//	type WalletResult struct {
//	    Action   WalletAction
//	    Selected *Account
//	    Resume   *WalletResume // scroll position for back navigation
//	}
//
//	r := router.New()
//
//	r.Register(RouteWallet, func(input any) (any, error) {
//	    return walletScreen(input.(WalletInput)), nil
//	})
//
//	r.Register(RouteActivity, func(input any) (any, error) {
//	    return activityScreen(input.(ActivityInput)), nil
//	})
//
//	r.OnTransition(func(from router.Route, result any, stack *router.Stack) (router.Route, any) {
//	    switch from {
//	    case RouteWallet:
//	        res := result.(WalletResult)
//	        if res.Action == WalletActionOpen {
//	            stack.Push(from, WalletInput{Accounts: accounts}, res.Resume)
//	            return RouteActivity, ActivityInput{Account: *res.Selected}
//	        }
//	    case RouteActivity:
//	        if entry := stack.Pop(); entry != nil {
//	            in := entry.Input.(WalletInput)
//	            in.Resume, _ = entry.Resume.(*WalletResume)
//	            return entry.Route, in
//	        }
//	    }
//	    return router.RouteExit, nil
//	})
//
//	err := r.Run(RouteWallet, WalletInput{Accounts: accounts})
//
// # Resume State
//
// Screens can return resume state (like scroll position) that gets stored
// on the stack when navigating forward. When navigating back, this state
// is passed back to the screen via its input, allowing it to restore position.
//
// The Resume field should be nil for stateless screens (dialogs, confirmations).
//
// # Trapped Panics
//
// A screen that panics does not take the process down. Run stops and returns
// a *PanicError carrying the route, the panic value and the stack trace.
package router
