// Package setup runs the civo setup step: resolve a version, install the
// release from the tool cache or the network, and log the CLI in.
package setup

import (
	"context"

	"github.com/civo/action-civo/internal/actions"
	"github.com/civo/action-civo/internal/civo"
	"github.com/civo/action-civo/internal/config"
	"github.com/civo/action-civo/internal/platform"
	"github.com/civo/action-civo/internal/release"
	"github.com/civo/action-civo/internal/toolcache"
)

// Resolver is satisfied by *release.Resolver
type Resolver interface {
	Resolve(ctx context.Context, raw string) release.Resolution
}

// Activator is satisfied by *civo.Activator
type Activator interface {
	Activate(ctx context.Context, token string) error
}

// Result describes a completed setup
type Result struct {
	Version string
	Path    string
}

// Setup wires the three steps of a run together
type Setup struct {
	core      *actions.Core
	resolver  Resolver
	installer *Installer
	activator Activator
}

// New creates a Setup from its parts
func New(core *actions.Core, resolver Resolver, installer *Installer, activator Activator) *Setup {
	return &Setup{
		core:      core,
		resolver:  resolver,
		installer: installer,
		activator: activator,
	}
}

// FromInputs builds a Setup for the running host with the production
// release client, downloader and subprocess runner
func FromInputs(core *actions.Core, in *config.Inputs, userAgent string) *Setup {
	resolver := release.NewResolver(release.NewClient(in.APIURL, in.GitHubToken))
	cache := toolcache.New(in.ToolCache, toolcache.RunnerArch(platform.Arch))
	downloader := toolcache.NewDownloader(in.TempDir, userAgent)
	installer := NewInstaller(core, cache, downloader, platform.Detect(), in.DownloadURL, civo.Tool)
	activator := civo.NewActivator(core, civo.NewExecRunner(), civo.Tool)

	return New(core, resolver, installer, activator)
}

// Run performs the whole setup. Every returned error is fatal for the step.
func (s *Setup) Run(ctx context.Context, in *config.Inputs) (*Result, error) {
	if in.Token == "" {
		return nil, civo.ErrMissingToken
	}

	res := s.resolver.Resolve(ctx, in.Version)
	if res.Warning != nil {
		s.core.Warning("%s", res.Warning.Error())
	}
	version := res.Version

	if err := release.Validate(version); err != nil {
		return nil, err
	}

	path, err := s.installer.Install(ctx, version)
	if err != nil {
		return nil, err
	}
	s.core.Info(">>> civo version v%s installed to %s", version, path)

	s.core.SetOutput("version", version)
	s.core.SetOutput("path", path)

	if err := s.activator.Activate(ctx, in.Token); err != nil {
		return nil, err
	}

	return &Result{Version: version, Path: path}, nil
}
