// Package actions adapts the GitHub Actions runner protocol for a setup
// step: workflow commands on stdout, environment files for PATH and step
// outputs, and log masking. Outside of a runner only the log lines and the
// process PATH are touched.
package actions

import (
	"io"
	"os"

	"github.com/sethvargo/go-githubactions"
	"github.com/sirupsen/logrus"
)

// Core writes workflow commands and log lines for a single run
type Core struct {
	action    *githubactions.Action
	log       *logrus.Logger
	inActions bool
}

// New creates a Core writing to out. It detects GitHub Actions through the
// GITHUB_ACTIONS environment variable.
func New(out io.Writer) *Core {
	action := githubactions.New(githubactions.WithWriter(out))
	inActions := action.Getenv("GITHUB_ACTIONS") == "true"
	return &Core{
		action:    action,
		log:       NewLogger(out, inActions),
		inActions: inActions,
	}
}

func (c *Core) Info(format string, args ...interface{}) {
	c.log.Infof(format, args...)
}

func (c *Core) Debug(format string, args ...interface{}) {
	c.log.Debugf(format, args...)
}

func (c *Core) Warning(format string, args ...interface{}) {
	c.log.Warnf(format, args...)
}

// SetFailed reports err as the reason the step failed. The caller is
// responsible for exiting with a non-zero status.
func (c *Core) SetFailed(err error) {
	c.log.Error(err.Error())
}

// SetSecret registers value with the runner so it is masked in all later
// log output. Without a runner there is nothing to mask with, so nothing
// is written.
func (c *Core) SetSecret(value string) {
	if value == "" || !c.inActions {
		return
	}
	c.action.AddMask(value)
}

// AddPath prepends dir to PATH for this process and, through GITHUB_PATH,
// for every later step of the job
func (c *Core) AddPath(dir string) error {
	if c.inActions || c.action.Getenv("GITHUB_PATH") != "" {
		c.action.AddPath(dir)
	}

	current := os.Getenv("PATH")
	if current == "" {
		return os.Setenv("PATH", dir)
	}
	return os.Setenv("PATH", dir+string(os.PathListSeparator)+current)
}

// SetOutput records a step output through GITHUB_OUTPUT
func (c *Core) SetOutput(name, value string) {
	if c.inActions || c.action.Getenv("GITHUB_OUTPUT") != "" {
		c.action.SetOutput(name, value)
	}
}
