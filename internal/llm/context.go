package llm

import "context"

// Purpose labels recorded in the event log.
const (
	PurposeChat    = "chat"
	PurposeBankGen = "bank-gen"
)

type purposeKey struct{}

// WithPurpose labels requests made with ctx for the event log.
func WithPurpose(ctx context.Context, purpose string) context.Context {
	return context.WithValue(ctx, purposeKey{}, purpose)
}

// PurposeFrom returns the purpose label, or "unknown".
func PurposeFrom(ctx context.Context) string {
	if v, ok := ctx.Value(purposeKey{}).(string); ok {
		return v
	}
	return "unknown"
}
