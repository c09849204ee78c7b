package config

import "testing"

func TestLoadServerDefaults(t *testing.T) {
	t.Setenv("RELAY_HOST", "")
	t.Setenv("RELAY_PORT", "")

	cfg := LoadServer()
	if cfg.Addr() != ":5000" {
		t.Fatalf("expected default addr :5000, got %s", cfg.Addr())
	}
}

func TestLoadServerFromEnv(t *testing.T) {
	t.Setenv("RELAY_HOST", "0.0.0.0")
	t.Setenv("RELAY_PORT", "9001")

	cfg := LoadServer()
	if cfg.Addr() != "0.0.0.0:9001" {
		t.Fatalf("unexpected addr %s", cfg.Addr())
	}
}

func TestLoadServerBadPortFallsBack(t *testing.T) {
	t.Setenv("RELAY_PORT", "not-a-port")

	cfg := LoadServer()
	if cfg.Port != DefaultPort {
		t.Fatalf("expected default port, got %d", cfg.Port)
	}
}

func TestLoadClientPrecedence(t *testing.T) {
	t.Setenv("RELAY_SERVER", "env.example.com:5000")
	t.Setenv("STUN_SERVER", "")

	cfg := LoadClient(Options{Server: "flag.example.com:5000"})
	if cfg.Server != "flag.example.com:5000" {
		t.Fatalf("flag should beat env, got %s", cfg.Server)
	}
	if cfg.WebSocketURL != "ws://flag.example.com:5000/ws" {
		t.Fatalf("unexpected ws url %s", cfg.WebSocketURL)
	}
	if cfg.STUNServer != DefaultSTUN {
		t.Fatalf("expected default STUN, got %s", cfg.STUNServer)
	}

	cfg = LoadClient(Options{})
	if cfg.Server != "env.example.com:5000" {
		t.Fatalf("env should beat default, got %s", cfg.Server)
	}
}

func TestICEServerURLs(t *testing.T) {
	cfg := &Client{STUNServer: "stun:a", TURNServer: "turn:b"}
	urls := cfg.ICEServerURLs()
	if len(urls) != 2 || urls[0] != "stun:a" || urls[1] != "turn:b" {
		t.Fatalf("unexpected urls %v", urls)
	}

	cfg.TURNServer = ""
	if urls := cfg.ICEServerURLs(); len(urls) != 1 {
		t.Fatalf("TURN should be omitted when unset, got %v", urls)
	}
}
