// Package theme owns the process-wide display mode (light or dark), the
// palette derived from it, and the durable copy of the user's choice.
//
// A Manager is constructed once at startup and handed to the screens that
// need it. Screens read State; settings controls call Toggle or SetMode.
//
//	store := storage.NewFileStore(prefsPath)
//	themes := theme.NewManager(store, statusBar, theme.Options{})
//	defer themes.Close(context.Background())
//
//	state := themes.State()
//	header.SetBackground(state.Theme.Colors.Background)
//
//	themes.Toggle()
//
// Reads and writes against the store are best effort. A failed read leaves
// the default mode in place, a failed write leaves the new mode applied for
// the rest of the session. Neither is returned to callers; both are logged
// and passed to Options.OnFailure.
package theme
