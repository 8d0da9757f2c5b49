package commands

import (
	"strings"

	"github.com/goliatone/go-solutions/internal/logging"
	"github.com/goliatone/go-solutions/pkg/interfaces"
)

// CommandLogger returns the commands logger tagged with the submodule name.
func CommandLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	name := strings.TrimSpace(module)
	if name == "" {
		name = "core"
	}
	return logging.WithFields(logging.CommandsLogger(provider), map[string]any{
		"component":      "command",
		"command_module": name,
	})
}
