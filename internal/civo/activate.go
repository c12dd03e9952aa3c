package civo

import (
	"context"
	"errors"

	"github.com/civo/action-civo/internal/actions"
)

const (
	// Tool is the civo CLI executable name and tool cache key
	Tool = "civo"
	// KeyName is the name the API key is stored under in the civo config
	KeyName = "action"
)

// ErrMissingToken is returned when no API token was supplied
var ErrMissingToken = errors.New("input required and not supplied: token")

// Activator registers an API key with the civo CLI and makes it current
type Activator struct {
	core   *actions.Core
	runner Runner
	tool   string
}

// NewActivator creates an activator invoking tool through runner
func NewActivator(core *actions.Core, runner Runner, tool string) *Activator {
	if tool == "" {
		tool = Tool
	}
	return &Activator{core: core, runner: runner, tool: tool}
}

// Activate runs `civo apikey add action <token>` then `civo apikey use action`.
// Workflow command processing is suspended while the token is on the
// command line.
func (a *Activator) Activate(ctx context.Context, token string) error {
	if token == "" {
		return ErrMissingToken
	}

	a.core.SetSecret(token)
	if m, ok := a.runner.(interface{ Mask(string) }); ok {
		m.Mask(token)
	}

	if err := a.register(ctx, token); err != nil {
		return err
	}

	a.core.Info(">>> Successfully logged into civo")
	return nil
}

func (a *Activator) register(ctx context.Context, token string) error {
	suspension := a.core.StopCommands()
	defer suspension.Resume()

	if err := a.runner.Run(ctx, a.tool, "apikey", "add", KeyName, token); err != nil {
		return err
	}
	return a.runner.Run(ctx, a.tool, "apikey", "use", KeyName)
}
