package notify

import "context"

// UnconfiguredGuardian stands in when no messaging credentials are set.
// Every send reports itself unconfigured instead of erroring.
type UnconfiguredGuardian struct{}

func (UnconfiguredGuardian) Send(ctx context.Context, toPhone, body string) (bool, string) {
	return false, "Messaging provider credentials are not configured"
}
