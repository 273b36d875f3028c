package theme

import "strings"

// Option represents a selectable theme exposed to the UI.
type Option struct {
	Value string
	Label string
}

// WorkspaceTheme contains resolved styling primitives for the application shell.
type WorkspaceTheme struct {
	Key               string
	BodyClass         string
	ShellClass        string
	PanelSurfaceClass string
	BorderSoftClass   string
	AccentTextClass   string
	MutedTextClass    string
}

const (
	// DefaultKey defines the fallback theme when no preference exists.
	DefaultKey = "licht"
)

var catalogue = map[string]WorkspaceTheme{
	"licht": {
		Key:               "licht",
		BodyClass:         "min-h-screen bg-slate-50 text-slate-900",
		ShellClass:        "shell light",
		PanelSurfaceClass: "rounded-xl bg-white shadow-sm",
		BorderSoftClass:   "border border-slate-200",
		AccentTextClass:   "text-sky-700",
		MutedTextClass:    "text-slate-500",
	},
	"donker": {
		Key:               "donker",
		BodyClass:         "min-h-screen bg-slate-950 text-slate-100",
		ShellClass:        "shell dark",
		PanelSurfaceClass: "rounded-xl bg-slate-900",
		BorderSoftClass:   "border border-slate-800",
		AccentTextClass:   "text-sky-300",
		MutedTextClass:    "text-slate-400",
	},
}

var options = []Option{
	{Value: "licht", Label: "Licht"},
	{Value: "donker", Label: "Donker"},
}

// Resolve returns the registered theme configuration for the provided key.
func Resolve(key string) WorkspaceTheme {
	normalized := strings.ToLower(strings.TrimSpace(key))
	if value, ok := catalogue[normalized]; ok {
		return value
	}
	return catalogue[DefaultKey]
}

// Options exposes the available theme selections for rendering in a form control.
func Options() []Option {
	return options
}

// Pastels are the concept colours offered to planners, in suggestion order.
var Pastels = []string{
	"#7dd3fc",
	"#86efac",
	"#fca5a5",
	"#fcd34d",
	"#c4b5fd",
	"#99f6e4",
	"#f9a8d4",
	"#fdba74",
}

// ColorAt suggests a colour for the n-th concept, cycling through Pastels.
func ColorAt(n int) string {
	if n < 0 {
		n = -n
	}
	return Pastels[n%len(Pastels)]
}
