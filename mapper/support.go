package mapper

import (
	"errors"

	"github.com/km-arc/go-batis/session"
)

// SessionSupport supplies the session resource to components that execute
// mapped statements. Exactly one binding must end up set before use; when
// both are present the explicit template wins and the factory is ignored.
// Embed it and call Session to obtain the shared, concurrency-safe
// session.
type SessionSupport struct {
	// SessionFactory builds a managed template on first use.
	SessionFactory session.Factory
	// SessionTemplate is used as-is when set.
	SessionTemplate *session.Template

	chosen session.Session
}

// Session returns the session resource, selecting and caching it on first
// call.
func (s *SessionSupport) Session() (session.Session, error) {
	if s.chosen != nil {
		return s.chosen, nil
	}
	switch {
	case s.SessionTemplate != nil:
		s.chosen = s.SessionTemplate
	case s.SessionFactory != nil:
		s.chosen = session.NewTemplate(s.SessionFactory)
	default:
		return nil, errors.New("a session factory or session template is required")
	}
	return s.chosen, nil
}

// SessionConfig returns the configuration behind the bound resource.
func (s *SessionSupport) SessionConfig() (*session.Config, error) {
	switch {
	case s.SessionTemplate != nil:
		return s.SessionTemplate.Factory().Config(), nil
	case s.SessionFactory != nil:
		return s.SessionFactory.Config(), nil
	default:
		return nil, errors.New("a session factory or session template is required")
	}
}
