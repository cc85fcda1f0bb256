package models

// Route names the two top-level application regions the startup gate can
// select between. The gate decision is one-shot: the UI re-runs it after
// login or logout instead of watching for changes.
type Route string

const (
	// RouteAuth is the unauthenticated region (login / signup screens).
	RouteAuth Route = "auth"
	// RouteChat is the authenticated region (chat list, threads, settings).
	RouteChat Route = "chat"
)
