package main

import (
	"blog/config"
	"testing"
)

func TestSessionSecret(t *testing.T) {
	sessionKey := config.SESSION_KEY
	t.Cleanup(func() { config.SESSION_KEY = sessionKey })

	config.SESSION_KEY = "from the environment"
	if got := string(sessionSecret()); got != "from the environment" {
		t.Errorf("sessionSecret() = %q", got)
	}

	config.SESSION_KEY = ""
	first, second := string(sessionSecret()), string(sessionSecret())
	if first == "" || first == second {
		t.Errorf("generated secrets %q and %q", first, second)
	}
}
