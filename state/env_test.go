package state_test

import (
	"context"
	"testing"

	"oklchify/state"
)

func TestEnvRoundTrip(t *testing.T) {
	ctx := state.ContextWithEnv(context.Background())
	env := state.EnvFromContext(ctx)
	if env == nil {
		t.Fatal("expected environment in context")
	}
	if env.Uptime() < 0 {
		t.Error("uptime went backwards")
	}
	// same pointer on every lookup
	if state.EnvFromContext(ctx) != env {
		t.Error("environment lookup is not stable")
	}
}

func TestEnvFromContextPanicsWhenMissing(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic on context without environment")
		}
	}()
	state.EnvFromContext(context.Background())
}
