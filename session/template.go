package session

import (
	"context"
	"errors"

	"go.uber.org/zap"
)

// Template is the Session implementation handed to shared components such
// as scanned mappers. It is safe for concurrent use: every operation opens
// a fresh session from the factory, closes it when done and translates
// failures into *ExecutionError. Lifecycle stays with the template, which
// is why manual Close is refused.
type Template struct {
	factory Factory
	log     *zap.Logger
}

// NewTemplate builds a template over a factory.
func NewTemplate(factory Factory) *Template {
	if factory == nil {
		panic("session: NewTemplate called with nil factory")
	}
	return &Template{factory: factory, log: zap.NewNop()}
}

// SetLogger replaces the template's logger.
func (t *Template) SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	t.log = l
}

// Factory returns the factory the template opens sessions from.
func (t *Template) Factory() Factory { return t.factory }

// SelectOne implements Session.
func (t *Template) SelectOne(ctx context.Context, statement string, param any) (any, error) {
	var result any
	err := t.withSession(ctx, statement, func(s Session) error {
		var opErr error
		result, opErr = s.SelectOne(ctx, statement, param)
		return opErr
	})
	return result, err
}

// SelectList implements Session.
func (t *Template) SelectList(ctx context.Context, statement string, param any) ([]any, error) {
	var result []any
	err := t.withSession(ctx, statement, func(s Session) error {
		var opErr error
		result, opErr = s.SelectList(ctx, statement, param)
		return opErr
	})
	return result, err
}

// Execute implements Session.
func (t *Template) Execute(ctx context.Context, statement string, param any) (int64, error) {
	var affected int64
	err := t.withSession(ctx, statement, func(s Session) error {
		var opErr error
		affected, opErr = s.Execute(ctx, statement, param)
		return opErr
	})
	return affected, err
}

// Close implements Session by refusing: the template manages session
// lifecycle itself.
func (t *Template) Close() error {
	return errors.New("manual close of a managed session is not allowed")
}

func (t *Template) withSession(ctx context.Context, statement string, op func(Session) error) error {
	s, err := t.factory.OpenSession(ctx)
	if err != nil {
		return translate(statement, err)
	}
	defer func() {
		if closeErr := s.Close(); closeErr != nil {
			t.log.Warn("closing session", zap.String("statement", statement), zap.Error(closeErr))
		}
	}()
	if err := op(s); err != nil {
		return translate(statement, err)
	}
	return nil
}
