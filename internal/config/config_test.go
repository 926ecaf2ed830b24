package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/pflag"
)

func TestLoad_Defaults(t *testing.T) {
	c, err := Load(New(), "")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Addr() != "0.0.0.0:5000" {
		t.Fatalf("Addr = %q", c.Addr())
	}
	if c.UploadDir != "uploads" || c.MaxUploadBytes != 32<<20 {
		t.Fatalf("upload = %q %d", c.UploadDir, c.MaxUploadBytes)
	}
	if c.WS.PongWait != 60*time.Second || c.WS.PingPeriod != 54*time.Second || c.WS.SendQueue != 256 {
		t.Fatalf("ws = %+v", c.WS)
	}
	if len(c.ICEServers) != 1 || c.ICEServers[0] != DefaultSTUN {
		t.Fatalf("ice = %v", c.ICEServers)
	}
	if len(c.CORS.AllowedOrigins) != 1 || c.CORS.AllowedOrigins[0] != "*" {
		t.Fatalf("cors = %v", c.CORS.AllowedOrigins)
	}
}

func TestLoad_Env(t *testing.T) {
	t.Setenv("RENDEZVOUS_PORT", "6001")
	t.Setenv("RENDEZVOUS_WS_PONG_WAIT", "2m")
	t.Setenv("RENDEZVOUS_LOG_FORMAT", "json")

	c, err := Load(New(), "")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Port != 6001 || c.WS.PongWait != 2*time.Minute || c.Log.Format != LogFormatJSON {
		t.Fatalf("config = %+v", c)
	}
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rendezvous.yaml")
	content := `
host: 127.0.0.1
port: 7000
ice_servers:
  - stun:stun.example.org:3478
  - turn:turn.example.org:3478?transport=udp
ws:
  send_queue: 8
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	c, err := Load(New(), path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Addr() != "127.0.0.1:7000" || c.WS.SendQueue != 8 {
		t.Fatalf("config = %+v", c)
	}
	servers := c.WebRTCICEServers()
	if len(servers) != 1 || len(servers[0].URLs) != 2 {
		t.Fatalf("ice servers = %+v", servers)
	}
}

func TestLoad_FlagsWin(t *testing.T) {
	t.Setenv("RENDEZVOUS_PORT", "6001")

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	RegisterFlags(fs)
	if err := fs.Parse([]string{"--port", "6500", "--upload-dir", "/tmp/rec"}); err != nil {
		t.Fatalf("parse: %v", err)
	}
	v := New()
	if err := BindFlags(v, fs); err != nil {
		t.Fatalf("BindFlags: %v", err)
	}

	c, err := Load(v, "")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Port != 6500 || c.UploadDir != "/tmp/rec" {
		t.Fatalf("config = %+v", c)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want string
	}{
		{name: "port", env: map[string]string{"RENDEZVOUS_PORT": "70000"}, want: "port"},
		{name: "log format", env: map[string]string{"RENDEZVOUS_LOG_FORMAT": "xml"}, want: "log.format"},
		{name: "log level", env: map[string]string{"RENDEZVOUS_LOG_LEVEL": "loud"}, want: "log.level"},
		{name: "ping above pong", env: map[string]string{"RENDEZVOUS_WS_PING_PERIOD": "90s"}, want: "ping_period"},
		{name: "ice url", env: map[string]string{"RENDEZVOUS_ICE_SERVERS": "http://nope"}, want: "ice server"},
		{name: "send queue", env: map[string]string{"RENDEZVOUS_WS_SEND_QUEUE": "0"}, want: "send_queue"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load(New(), "")
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("err = %v, want mention of %q", err, tt.want)
			}
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(New(), filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected error for missing config file")
	}
}
