package gate

import (
	"context"

	"vitrina/internal/gate/bridge"
	"vitrina/internal/initdata"
)

type identityKey struct{}
type bridgeKey struct{}

// WithIdentity stores the authorized identity in the context.
func WithIdentity(ctx context.Context, identity *initdata.Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, identity)
}

// IdentityFrom retrieves the authorized identity from the context.
func IdentityFrom(ctx context.Context) (*initdata.Identity, bool) {
	identity, ok := ctx.Value(identityKey{}).(*initdata.Identity)
	return identity, ok
}

// WithBridge stores the platform bridge in the context for downstream handlers.
func WithBridge(ctx context.Context, b bridge.Bridge) context.Context {
	return context.WithValue(ctx, bridgeKey{}, b)
}

// BridgeFrom retrieves the platform bridge from the context.
func BridgeFrom(ctx context.Context) (bridge.Bridge, bool) {
	b, ok := ctx.Value(bridgeKey{}).(bridge.Bridge)
	return b, ok
}
