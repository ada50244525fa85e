// Package confirm models the confirmation-prompt collaborator used by the
// edit and delete workflows. A workflow asks questions through a Confirmer;
// over HTTP an unanswered question surfaces as *Pending, the handler renders
// the modal with the original form replayed, and the resubmission carries the
// answer. Every abort path short-circuits before any mutation.
package confirm

import (
	"context"
	"net/url"
	"strings"
)

// FieldPrefix namespaces answer fields inside a replayed form.
const FieldPrefix = "confirm."

// Question is one yes/no prompt. An empty ConfirmLabel or CancelLabel hides
// that button.
type Question struct {
	Key          string
	Message      string
	ConfirmLabel string
	CancelLabel  string
}

// Confirmer resolves questions for a workflow.
type Confirmer interface {
	Confirm(ctx context.Context, q Question) (bool, error)
}

// Pending reports a question that has no answer yet. The handler must render
// the prompt and replay the triggering form.
type Pending struct {
	Question Question
}

func (p *Pending) Error() string {
	return "confirmation pending: " + p.Question.Key
}

// FormResponder answers questions from replayed confirm.<key> form values.
type FormResponder struct {
	values url.Values
}

func NewFormResponder(values url.Values) *FormResponder {
	return &FormResponder{values: values}
}

func (r *FormResponder) Confirm(_ context.Context, q Question) (bool, error) {
	switch r.values.Get(FieldPrefix + q.Key) {
	case "yes":
		return true, nil
	case "no":
		return false, nil
	default:
		return false, &Pending{Question: q}
	}
}

// ReplayValues returns the form values that must be carried into the prompt
// form so earlier answers survive the round trip. The CSRF field is excluded;
// it is re-injected client side.
func ReplayValues(values url.Values) url.Values {
	replay := url.Values{}
	for key, vs := range values {
		if key == "_csrf" || strings.HasPrefix(key, FieldPrefix) && len(vs) == 0 {
			continue
		}
		for _, v := range vs {
			replay.Add(key, v)
		}
	}
	return replay
}

type contextKey struct{}

// NewContext attaches the request's Confirmer for workflow callbacks.
func NewContext(ctx context.Context, c Confirmer) context.Context {
	return context.WithValue(ctx, contextKey{}, c)
}

// FromContext returns the attached Confirmer. Without one, every question is
// unanswered and surfaces as *Pending.
func FromContext(ctx context.Context) Confirmer {
	if c, ok := ctx.Value(contextKey{}).(Confirmer); ok {
		return c
	}
	return NewFormResponder(url.Values{})
}

// Scripted is a test Confirmer with canned answers per question key.
type Scripted map[string]bool

func (s Scripted) Confirm(_ context.Context, q Question) (bool, error) {
	answer, ok := s[q.Key]
	if !ok {
		return false, &Pending{Question: q}
	}
	return answer, nil
}
