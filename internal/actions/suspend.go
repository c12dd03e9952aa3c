package actions

import (
	"sync"

	"github.com/google/uuid"
	"github.com/sethvargo/go-githubactions"
)

// Suspension is an active ::stop-commands:: region. The runner ignores
// workflow commands in the output until Resume echoes the same marker back.
type Suspension struct {
	action *githubactions.Action
	marker string
	once   sync.Once
}

// StopCommands suspends workflow command processing behind a fresh random
// marker. Callers must defer Resume. Outside of a runner the returned
// suspension writes nothing.
func (c *Core) StopCommands() *Suspension {
	s := &Suspension{marker: uuid.NewString()}
	if !c.inActions {
		return s
	}

	s.action = c.action
	s.action.IssueCommand(&githubactions.Command{Name: "stop-commands", Message: s.marker})
	return s
}

// Marker returns the token delimiting the suspended region
func (s *Suspension) Marker() string {
	return s.marker
}

// Resume re-enables workflow command processing. Only the first call has
// any effect.
func (s *Suspension) Resume() {
	s.once.Do(func() {
		if s.action == nil {
			return
		}
		s.action.IssueCommand(&githubactions.Command{Name: s.marker})
	})
}
