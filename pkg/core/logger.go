package core

// Logger is the logging seam shared by the renderer and its frontends.
// The CLI wires a stdout logger, the web server one that mirrors
// messages to the browser console.
type Logger interface {
	Printf(format string, args ...interface{})
}
