package session

import "github.com/julianstephens/moodlit/internal/constants"

// Access is the guard level a command declares
type Access int

const (
	// Open commands run in any state (doctor, serve-mock)
	Open Access = iota
	// PublicOnly commands are for logged-out users (login, signup)
	PublicOnly
	// Authenticated commands need a session
	Authenticated
	// TestFlow commands need a session and an unfinished quiz
	TestFlow
)

func (a Access) String() string {
	switch a {
	case Open:
		return "open"
	case PublicOnly:
		return "public-only"
	case Authenticated:
		return "authenticated"
	case TestFlow:
		return "test-flow"
	default:
		return "unknown"
	}
}

// Decision is the guard outcome. Redirect is set when Allow is false.
type Decision struct {
	Allow    bool
	Redirect string
}

func allow() Decision {
	return Decision{Allow: true}
}

func redirect(path string) Decision {
	return Decision{Redirect: path}
}

// Evaluate applies the guard for access to the two session flags
func Evaluate(access Access, authenticated, completed bool) Decision {
	switch access {
	case PublicOnly:
		if !authenticated {
			return allow()
		}
		if completed {
			return redirect(constants.PathMain)
		}
		return redirect(constants.PathTest)
	case Authenticated:
		if !authenticated {
			return redirect(constants.PathLogin)
		}
		return allow()
	case TestFlow:
		if !authenticated {
			return redirect(constants.PathLogin)
		}
		if completed {
			return redirect(constants.PathMain)
		}
		return allow()
	default:
		return allow()
	}
}

// Check evaluates the guard against the session's current flags
func (s *Session) Check(access Access) Decision {
	return Evaluate(access, s.IsAuthenticated(), s.HasCompletedTest())
}
