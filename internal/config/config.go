package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Defaults mirror the hosted deployment.
const (
	DefaultPort     = 5000
	DefaultServer   = "localhost:5000"
	DefaultSTUN     = "stun:stun.l.google.com:19302"
	DefaultTURN     = "turn:openrelay.metered.ca:80"
	DefaultTURNUser = "openrelayproject"
	DefaultTURNPass = "openrelayproject"
)

// Server holds the relay server's configuration.
type Server struct {
	Host string
	Port int
}

// Addr returns the listen address.
func (s *Server) Addr() string {
	return s.Host + ":" + strconv.Itoa(s.Port)
}

// LoadServer reads server configuration from the environment, with an
// optional .env file. All state is volatile; there is nothing else to
// configure.
func LoadServer() *Server {
	if err := godotenv.Load(); err != nil {
		logrus.Debug(".env file not found, using environment only")
	}

	return &Server{
		Host: os.Getenv("RELAY_HOST"),
		Port: envInt("RELAY_PORT", DefaultPort),
	}
}

// Client holds the CLI client's configuration.
type Client struct {
	// Server is the relay's host:port.
	Server string

	// WebSocketURL is derived from Server.
	WebSocketURL string

	// ICE servers for peer negotiation.
	STUNServer string
	TURNServer string
	TURNUser   string
	TURNPass   string
}

// Options carries CLI flag overrides for LoadClient.
type Options struct {
	Server     string
	STUNServer string
	TURNServer string
	TURNUser   string
	TURNPass   string
}

// LoadClient resolves client configuration with flag > environment >
// default precedence.
func LoadClient(opts Options) *Client {
	server := firstOf(opts.Server, os.Getenv("RELAY_SERVER"), DefaultServer)

	return &Client{
		Server:       server,
		WebSocketURL: fmt.Sprintf("ws://%s/ws", server),
		STUNServer:   firstOf(opts.STUNServer, os.Getenv("STUN_SERVER"), DefaultSTUN),
		TURNServer:   firstOf(opts.TURNServer, os.Getenv("TURN_SERVER"), DefaultTURN),
		TURNUser:     firstOf(opts.TURNUser, os.Getenv("TURN_USERNAME"), DefaultTURNUser),
		TURNPass:     firstOf(opts.TURNPass, os.Getenv("TURN_PASSWORD"), DefaultTURNPass),
	}
}

// ICEServerURLs returns the STUN and TURN URLs to hand to the peer
// connection, TURN last so direct candidates are tried first.
func (c *Client) ICEServerURLs() []string {
	urls := []string{c.STUNServer}
	if c.TURNServer != "" {
		urls = append(urls, c.TURNServer)
	}
	return urls
}

func firstOf(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func envInt(name string, defaultVal int) int {
	valStr := os.Getenv(name)
	if valStr == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(valStr)
	if err != nil {
		logrus.WithField("var", name).Warnf("invalid value %q, using default", valStr)
		return defaultVal
	}
	return val
}
