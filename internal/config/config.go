package config

import (
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/pion/stun/v3"
	"github.com/pion/webrtc/v4"
	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const EnvPrefix = "RENDEZVOUS"

const (
	LogFormatConsole = "console"
	LogFormatJSON    = "json"
)

const (
	keyHost            = "host"
	keyPort            = "port"
	keyUploadDir       = "upload_dir"
	keyMaxUploadBytes  = "max_upload_bytes"
	keyShutdownTimeout = "shutdown_timeout"
	keyICEServers      = "ice_servers"
	keyLogLevel        = "log.level"
	keyLogFormat       = "log.format"
	keyWSMaxMessage    = "ws.max_message_bytes"
	keyWSSendQueue     = "ws.send_queue"
	keyWSWriteWait     = "ws.write_wait"
	keyWSPongWait      = "ws.pong_wait"
	keyWSPingPeriod    = "ws.ping_period"
	keyCORSOrigins     = "cors.allowed_origins"
)

const DefaultSTUN = "stun:stun.l.google.com:19302"

type Config struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	UploadDir       string        `mapstructure:"upload_dir"`
	MaxUploadBytes  int64         `mapstructure:"max_upload_bytes"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	ICEServers      []string      `mapstructure:"ice_servers"`

	Log struct {
		Level  string `mapstructure:"level"`
		Format string `mapstructure:"format"`
	} `mapstructure:"log"`

	WS struct {
		MaxMessageBytes int64         `mapstructure:"max_message_bytes"`
		SendQueue       int           `mapstructure:"send_queue"`
		WriteWait       time.Duration `mapstructure:"write_wait"`
		PongWait        time.Duration `mapstructure:"pong_wait"`
		PingPeriod      time.Duration `mapstructure:"ping_period"`
	} `mapstructure:"ws"`

	CORS struct {
		AllowedOrigins []string `mapstructure:"allowed_origins"`
	} `mapstructure:"cors"`
}

// New returns a viper instance with defaults and environment lookup
// configured. RENDEZVOUS_WS_PONG_WAIT overrides ws.pong_wait.
func New() *viper.Viper {
	v := viper.New()
	v.SetDefault(keyHost, "0.0.0.0")
	v.SetDefault(keyPort, 5000)
	v.SetDefault(keyUploadDir, "uploads")
	v.SetDefault(keyMaxUploadBytes, int64(32<<20))
	v.SetDefault(keyShutdownTimeout, 5*time.Second)
	v.SetDefault(keyICEServers, []string{DefaultSTUN})
	v.SetDefault(keyLogLevel, "info")
	v.SetDefault(keyLogFormat, LogFormatConsole)
	v.SetDefault(keyWSMaxMessage, int64(64*1024))
	v.SetDefault(keyWSSendQueue, 256)
	v.SetDefault(keyWSWriteWait, 10*time.Second)
	v.SetDefault(keyWSPongWait, 60*time.Second)
	v.SetDefault(keyWSPingPeriod, 54*time.Second)
	v.SetDefault(keyCORSOrigins, []string{"*"})

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	return v
}

// RegisterFlags adds the flags that BindFlags knows how to bind.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.String("host", "0.0.0.0", "interface to listen on")
	fs.IntP("port", "p", 5000, "port to listen on")
	fs.String("upload-dir", "uploads", "directory for uploaded recordings")
	fs.String("log-level", "info", "log level (trace, debug, info, warn, error)")
	fs.String("log-format", LogFormatConsole, "log format (console, json)")
	fs.StringSlice("ice-server", []string{DefaultSTUN}, "STUN/TURN URL served on /ice (repeatable)")
}

func BindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	bindings := map[string]string{
		keyHost:       "host",
		keyPort:       "port",
		keyUploadDir:  "upload-dir",
		keyLogLevel:   "log-level",
		keyLogFormat:  "log-format",
		keyICEServers: "ice-server",
	}
	for key, name := range bindings {
		f := fs.Lookup(name)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("bind flag %s: %w", name, err)
		}
	}
	return nil
}

// Load reads the optional config file at path and unmarshals v.
func Load(v *viper.Viper, path string) (*Config, error) {
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Config) Validate() error {
	var errs []error
	if c.Port < 0 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("port %d out of range", c.Port))
	}
	if c.UploadDir == "" {
		errs = append(errs, errors.New("upload_dir must not be empty"))
	}
	if c.MaxUploadBytes <= 0 {
		errs = append(errs, errors.New("max_upload_bytes must be positive"))
	}
	if _, err := zerolog.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("log.level: %w", err))
	}
	if c.Log.Format != LogFormatConsole && c.Log.Format != LogFormatJSON {
		errs = append(errs, fmt.Errorf("log.format %q must be %s or %s", c.Log.Format, LogFormatConsole, LogFormatJSON))
	}
	if c.WS.MaxMessageBytes <= 0 {
		errs = append(errs, errors.New("ws.max_message_bytes must be positive"))
	}
	if c.WS.SendQueue <= 0 {
		errs = append(errs, errors.New("ws.send_queue must be positive"))
	}
	if c.WS.WriteWait <= 0 {
		errs = append(errs, errors.New("ws.write_wait must be positive"))
	}
	if c.WS.PingPeriod <= 0 || c.WS.PingPeriod >= c.WS.PongWait {
		errs = append(errs, fmt.Errorf("ws.ping_period %s must be positive and below ws.pong_wait %s", c.WS.PingPeriod, c.WS.PongWait))
	}
	for _, raw := range c.ICEServers {
		if _, err := stun.ParseURI(raw); err != nil {
			errs = append(errs, fmt.Errorf("ice server %q: %w", raw, err))
		}
	}
	return errors.Join(errs...)
}

func (c *Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// WebRTCICEServers groups every configured URL into one ICEServer entry.
func (c *Config) WebRTCICEServers() []webrtc.ICEServer {
	if len(c.ICEServers) == 0 {
		return []webrtc.ICEServer{}
	}
	urls := make([]string, len(c.ICEServers))
	copy(urls, c.ICEServers)
	return []webrtc.ICEServer{{URLs: urls}}
}
