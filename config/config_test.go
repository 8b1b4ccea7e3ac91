package config

import (
	"os"
	"testing"
)

func Test_readEnvBool(t *testing.T) {
	tests := []struct {
		name    string
		env     string
		initial bool
		want    bool
	}{
		{"true", "true", false, true},
		{"yes", "YES", false, true},
		{"1", "1", false, true},
		{"off", "off", true, false},
		{"0", "0", true, false},
		{"garbage keeps default", "maybe", true, true},
		{"empty keeps default", "", false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("BLOG_TEST_BOOL", tt.env)
			got := tt.initial
			readEnvBool("BLOG_TEST_BOOL", &got)
			if got != tt.want {
				t.Errorf("readEnvBool(%q) = %v, want %v", tt.env, got, tt.want)
			}
		})
	}
}

func Test_readEnvInt(t *testing.T) {
	tests := []struct {
		name string
		env  string
		want int
	}{
		{"number", "25", 25},
		{"negative", "-3", -3},
		{"not a number", "ten", 10},
		{"empty", "", 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("BLOG_TEST_INT", tt.env)
			got := 10
			readEnvInt("BLOG_TEST_INT", &got)
			if got != tt.want {
				t.Errorf("readEnvInt(%q) = %v, want %v", tt.env, got, tt.want)
			}
		})
	}
}

func Test_readEnvString(t *testing.T) {
	t.Setenv("BLOG_TEST_STRING", "value")
	got := "default"
	readEnvString("BLOG_TEST_STRING", &got)
	if got != "value" {
		t.Errorf("readEnvString() = %q, want %q", got, "value")
	}
	t.Setenv("BLOG_TEST_STRING", "")
	readEnvString("BLOG_TEST_STRING", &got)
	if got != "value" {
		t.Errorf("readEnvString() with empty env = %q, want it unchanged", got)
	}
}

func TestSessionKeyHasNoBuiltinDefault(t *testing.T) {
	if os.Getenv("SESSION_KEY") != "" {
		t.Skip("SESSION_KEY is set in the environment")
	}
	if SESSION_KEY != "" {
		t.Errorf("SESSION_KEY = %q without SESSION_KEY in the environment", SESSION_KEY)
	}
}
