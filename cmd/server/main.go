package main

import (
	"net/http"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/campusconnect/campusconnect/internal/config"
	"github.com/campusconnect/campusconnect/internal/relay"
	"github.com/campusconnect/campusconnect/internal/server"
)

func main() {
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg := config.LoadServer()

	hub := relay.NewHub()
	go hub.Run()

	http.HandleFunc("/health", server.Health)
	http.HandleFunc("/ws", server.ServeWs(hub))

	logrus.WithField("addr", cfg.Addr()).Info("matchmaking relay listening")

	if err := http.ListenAndServe(cfg.Addr(), nil); err != nil {
		logrus.WithError(errors.WithStack(err)).Fatal("server stopped")
	}
}
