package model

import (
	"context"
	"net"
)

// ContextManager carries verified access claims through a request context.
type ContextManager interface {
	SetIdentityToContext(ctx context.Context, claims AccessClaims) context.Context
	GetIdentityFromContext(ctx context.Context) (AccessClaims, bool)
}

// SecurityLayer opens the listener the transport serves on, plain or TLS.
type SecurityLayer interface {
	Listen(protocol, addr string) (net.Listener, error)
}

// Server is a transport with a blocking Start and a deadline-bound Stop.
type Server interface {
	Start(securityLayer SecurityLayer) error
	Stop(ctx context.Context) error
	Address() string
}
