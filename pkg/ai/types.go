package ai

import "context"

// Responder describes a generative model able to answer a counselling
// message in the requested language.
type Responder interface {
	Counsel(ctx context.Context, message, language string) (string, error)
}
