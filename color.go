package envskema

import (
	"os"
	"runtime"

	"github.com/gookit/color"
	"github.com/mattn/go-isatty"
)

// ColorSupported reports whether stdout should receive ANSI colors. NO_COLOR
// disables and FORCE_COLOR enables colors regardless of the terminal.
func ColorSupported() bool {
	return colorSupported(os.LookupEnv, os.Stdout.Fd())
}

func colorSupported(lookup func(string) (string, bool), fd uintptr) bool {
	if _, ok := lookup("NO_COLOR"); ok {
		return false
	}
	if _, ok := lookup("FORCE_COLOR"); ok {
		return true
	}
	term, _ := lookup("TERM")
	if term == "dumb" {
		return false
	}
	if runtime.GOOS == "windows" {
		return true
	}
	if isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd) {
		return term != ""
	}
	// CI logs usually render colors even without a tty.
	if _, ci := lookup("CI"); ci {
		for _, v := range []string{"GITHUB_ACTIONS", "GITLAB_CI", "CIRCLECI"} {
			if _, ok := lookup(v); ok {
				return true
			}
		}
	}
	return false
}

// ColorFormatters returns colored report decorators when ColorSupported, and
// pass-through decorators otherwise. FORCE_COLOR also forces gookit/color
// rendering on, since gookit does its own terminal detection.
func ColorFormatters() Formatters {
	if !ColorSupported() {
		return Formatters{}
	}
	if _, forced := os.LookupEnv("FORCE_COLOR"); forced {
		color.ForceOpenColor()
	}
	return AnsiFormatters()
}

// AnsiFormatters colors yellow variable names, green field names, cyan
// values and a red header. Rendering goes through gookit/color, so tokens
// stay plain when color.Enable is off or the terminal has no color support.
func AnsiFormatters() Formatters {
	paint := func(c color.Color) func(string) string {
		return func(s string) string {
			if s == "" {
				return s
			}
			return c.Sprint(s)
		}
	}
	return Formatters{
		VarName:       paint(color.FgYellow),
		ObjKey:        paint(color.FgGreen),
		ReceivedValue: paint(color.FgCyan),
		DefaultValue:  paint(color.FgCyan),
		Header:        paint(color.FgRed),
	}
}
