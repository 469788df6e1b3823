// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"github.com/SoftbearStudios/cosmic/server"
	"github.com/SoftbearStudios/cosmic/server_main/cloud"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"golang.org/x/net/netutil"
	"net"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"
)

const defaultPort = 3000

func main() {
	// .env is optional
	envErr := godotenv.Load()

	port := defaultPort
	if env := os.Getenv("PORT"); env != "" {
		if p, err := strconv.Atoi(env); err == nil {
			port = p
		}
	}

	var (
		bots           int
		maxConnections int
		logFile        string
		debug          bool
		offline        bool
		seed           int64
		statsLog       string
	)

	flag.IntVar(&port, "port", port, "http service port (env PORT)")
	flag.IntVar(&bots, "bots", 0, "minimum number of clients, topped up with bots")
	flag.IntVar(&maxConnections, "max-connections", 256, "maximum number of inbound TCP connections")
	flag.StringVar(&logFile, "log", "", "also log to this rolling file")
	flag.BoolVar(&debug, "debug", false, "debug logging")
	flag.BoolVar(&offline, "offline", false, "don't try to register with the cloud")
	flag.Int64Var(&seed, "seed", 0, "world generation seed, 0 for random")
	flag.StringVar(&statsLog, "stats", "", "append periodic stats to this CSV file")
	flag.Parse()

	logger := server.NewLogger(logFile, debug)
	defer func() { _ = logger.Sync() }()

	if envErr != nil && !errors.Is(envErr, os.ErrNotExist) {
		logger.Warnw("could not load .env", "err", envErr)
	}

	if bots < 0 {
		logger.Fatalw("invalid argument bots", "bots", bots)
	}

	var c server.Cloud = server.Offline{}
	if !offline {
		if awsCloud, err := cloud.New(); err == nil {
			c = awsCloud
		} else {
			// Cloud is not required for server to function
			logger.Infow("running offline", "err", err)
		}
	}

	hub := server.NewHub(server.HubOptions{
		Cloud:      c,
		Logger:     logger,
		MinClients: bots,
		Seed:       seed,
		StatsLog:   statsLog,
	})
	go hub.Run()

	if err := serve(logger, hub, newMux(hub, debug), port, maxConnections); err != nil {
		logger.Fatalw("server failed", "err", err)
	}
}

// newMux routes the game endpoints, plus profiling if debug.
func newMux(hub *server.Hub, debug bool) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/", hub.ServeIndex)
	mux.HandleFunc("/ws", hub.ServeSocket)
	if debug {
		mux.Handle("/debug/pprof/", http.DefaultServeMux)
	}
	return mux
}

// serve blocks until the listener fails or the process is told to stop.
func serve(logger *zap.SugaredLogger, hub *server.Hub, handler http.Handler, port, maxConnections int) error {
	l, err := net.Listen("tcp", fmt.Sprint(":", port))
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}
	l = netutil.LimitListener(l, maxConnections)

	httpServer := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- httpServer.Serve(l)
	}()
	logger.Infow("server started", "port", port)

	select {
	case err = <-serveErr:
		hub.Stop()
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}

	logger.Infow("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err = httpServer.Shutdown(shutdownCtx)
	hub.Stop()
	return err
}
