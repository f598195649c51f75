package adapter

import (
	"errors"
	"log/slog"
	"os/exec"
	"runtime"
)

// ErrNoURL is returned when a movie has no page to open
var ErrNoURL = errors.New("movie has no page to open")

// Launcher opens movie pages in a browser
type Launcher struct {
	command string   // configured browser command, empty for system default
	args    []string // additional arguments placed before the URL
	goos    string
	start   func(*exec.Cmd) error
	logger  *slog.Logger
}

// NewLauncher creates a Launcher. An empty command uses the system default handler.
func NewLauncher(command string, args []string, logger *slog.Logger) *Launcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Launcher{
		command: command,
		args:    args,
		goos:    runtime.GOOS,
		start:   (*exec.Cmd).Start,
		logger:  logger,
	}
}

// Launch opens url without waiting for the browser to exit
func (l *Launcher) Launch(url string) error {
	if url == "" {
		return ErrNoURL
	}

	name, args := l.commandFor(url)
	l.logger.Info("opening movie page", "command", name, "url", url)
	return l.start(exec.Command(name, args...))
}

// commandFor returns the program and arguments that open url
func (l *Launcher) commandFor(url string) (string, []string) {
	if l.command != "" {
		args := append([]string{}, l.args...)
		return l.command, append(args, url)
	}

	switch l.goos {
	case "darwin":
		return "open", []string{url}
	case "windows":
		return "cmd", []string{"/c", "start", "", url}
	default:
		// Linux and other Unix-like systems
		return "xdg-open", []string{url}
	}
}
