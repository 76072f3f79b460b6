package eventstore

import "context"

// ConsistencyLevel tells an engine whether a read may be served by a replica.
type ConsistencyLevel int

const (
	// StrongConsistency reads from the primary. Command handlers need it for read-check-write.
	StrongConsistency ConsistencyLevel = iota

	// EventualConsistency allows a replica read. Fine for projections shown to a user.
	EventualConsistency
)

type contextKey string

const consistencyLevelKey contextKey = "eventstore.consistency_level"

// WithStrongConsistency marks ctx so that Query reads from the primary.
func WithStrongConsistency(ctx context.Context) context.Context {
	return context.WithValue(ctx, consistencyLevelKey, StrongConsistency)
}

// WithEventualConsistency marks ctx so that Query may read from a replica.
func WithEventualConsistency(ctx context.Context) context.Context {
	return context.WithValue(ctx, consistencyLevelKey, EventualConsistency)
}

// GetConsistencyLevel defaults to StrongConsistency when ctx carries no level.
func GetConsistencyLevel(ctx context.Context) ConsistencyLevel {
	if level, ok := ctx.Value(consistencyLevelKey).(ConsistencyLevel); ok {
		return level
	}

	return StrongConsistency
}

func (c ConsistencyLevel) String() string {
	switch c {
	case StrongConsistency:
		return "strong"
	case EventualConsistency:
		return "eventual"
	default:
		return "unknown"
	}
}
