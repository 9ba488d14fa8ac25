package oracle

import "context"

// Shape names the payload a request expects back.
type Shape string

const (
	ShapeValidation Shape = "validation"
	ShapeTurn       Shape = "turn"
)

// Request is the conversation context sent to the oracle.
type Request struct {
	Shape  Shape
	System string
	Prompt string
}

// Oracle classifies conversational text. Implementations must honor ctx
// cancellation and return the raw textual payload.
type Oracle interface {
	Classify(ctx context.Context, req Request) (string, error)
}

// Func adapts a plain function to the Oracle interface.
type Func func(ctx context.Context, req Request) (string, error)

func (f Func) Classify(ctx context.Context, req Request) (string, error) {
	return f(ctx, req)
}
