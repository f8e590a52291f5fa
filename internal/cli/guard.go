package cli

import (
	"fmt"

	"github.com/julianstephens/moodlit/internal/constants"
	"github.com/julianstephens/moodlit/internal/session"
)

// Guarded commands declare the session state they need. Commands that do
// not implement it run in any state.
type Guarded interface {
	Access() session.Access
}

// GuardError means the command is not available in the current session
// state. Redirect names where the user should go instead.
type GuardError struct {
	Access   session.Access
	Redirect string
}

func (e *GuardError) Error() string {
	switch e.Redirect {
	case constants.PathLogin:
		return "you are not logged in; run 'moodlit login' first"
	case constants.PathTest:
		return "you are logged in but have not taken the quiz yet; run 'moodlit test take'"
	case constants.PathMain:
		return "you have already finished onboarding; run 'moodlit home'"
	default:
		return fmt.Sprintf("command requires %s access", e.Access)
	}
}

// Guard evaluates the route guard for cmd against the session
func Guard(cmd any, s *session.Session) error {
	g, ok := cmd.(Guarded)
	if !ok {
		return nil
	}
	d := s.Check(g.Access())
	if d.Allow {
		return nil
	}
	return &GuardError{Access: g.Access(), Redirect: d.Redirect}
}
