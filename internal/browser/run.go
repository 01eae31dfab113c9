package browser

import (
	"context"
	"errors"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"

	"github.com/Aman-CERP/wicli/internal/search"
)

// Options configures Run.
type Options struct {
	// Input and Output default to stdin and stdout.
	Input  io.Reader
	Output io.Writer

	// NoColor drops all styling.
	NoColor bool
}

// Run shows matches in a full-screen browser until the user quits or ctx ends.
func Run(ctx context.Context, matches []search.Match, opts Options) error {
	in := opts.Input
	if in == nil {
		in = os.Stdin
	}
	out := opts.Output
	if out == nil {
		out = os.Stdout
	}

	p := tea.NewProgram(
		NewModel(matches, opts.NoColor),
		tea.WithContext(ctx),
		tea.WithInput(in),
		tea.WithOutput(out),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return ctx.Err()
	}
	return err
}

// IsTTY reports whether stream is an interactive terminal. Streams without
// a file descriptor, such as buffers, never are.
func IsTTY(stream any) bool {
	f, ok := stream.(interface{ Fd() uintptr })
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// DetectNoColor reports whether NO_COLOR is set, to any value.
func DetectNoColor() bool {
	_, exists := os.LookupEnv("NO_COLOR")
	return exists
}
