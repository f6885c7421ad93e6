package track

import (
	"context"
	"errors"
	"fmt"
)

// Provider is the outbound analytics sink. Track receives an event name from
// the closed taxonomy set and an already-sanitized property bag. A provider
// may return an error or panic; the Tracker isolates both from its caller.
type Provider interface {
	Track(ctx context.Context, eventName string, properties map[string]any) error
}

// ProviderFunc adapts a function to the Provider interface.
type ProviderFunc func(ctx context.Context, eventName string, properties map[string]any) error

// Track implements Provider.
func (f ProviderFunc) Track(ctx context.Context, eventName string, properties map[string]any) error {
	return f(ctx, eventName, properties)
}

// NoopProvider discards every event. It is the default provider, so a Tracker
// is safe to construct and call with no analytics backend wired up.
type NoopProvider struct{}

// Compile-time interface check.
var _ Provider = NoopProvider{}

// Track does nothing.
func (NoopProvider) Track(_ context.Context, _ string, _ map[string]any) error {
	return nil
}

// MultiProvider fans an event out to several providers. Each sub-provider is
// isolated: a panic or error in one never stops delivery to the others.
type MultiProvider []Provider

// Track dispatches to every sub-provider and joins their failures.
func (m MultiProvider) Track(ctx context.Context, eventName string, properties map[string]any) error {
	var errs []error
	for _, p := range m {
		if err := safeTrack(ctx, p, eventName, properties); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// safeTrack invokes one provider, converting a panic into an error.
func safeTrack(ctx context.Context, p Provider, eventName string, properties map[string]any) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("provider panic: %v", r)
		}
	}()
	return p.Track(ctx, eventName, properties)
}
