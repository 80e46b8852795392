package tracking

import "context"

// Provider is the outbound port to an upstream container-tracking data
// source. Implementations translate the identifier into whichever wire
// format the provider exposes and return the canonical Result, or a typed
// *Error classified from the upstream failure.
type Provider interface {
	Track(ctx context.Context, id Identifier) (*Result, error)
}
