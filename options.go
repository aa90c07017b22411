package petrinet

import "go.uber.org/zap"

// Option configures a Net at construction time. Options only affect
// observability (logging); none of them change firing, enabling, or
// reachability semantics.
type Option[P comparable] func(*Net[P])

// WithLogger attaches a structured logger to a Net. Every successful Fire
// logs at Debug with the fired transition's name; every cancelled Fire logs
// at Info. The default logger is zap.NewNop, so this option costs nothing
// when omitted.
func WithLogger[P comparable](logger *zap.Logger) Option[P] {
	return func(n *Net[P]) {
		n.logger = logger
	}
}
