package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/wricardo/quoridor/api"
	"github.com/wricardo/quoridor/game/session"
	"github.com/wricardo/quoridor/transport/mcp"
	"github.com/wricardo/quoridor/transport/remote"
	"github.com/wricardo/quoridor/transport/websocket"
)

const (
	cleanupInterval = time.Hour
	sessionMaxAge   = 24 * time.Hour
)

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "run a match server whose opponent is the automatic player",
		Flags: append([]cli.Flag{
			&cli.StringFlag{
				Name:    "listen",
				Usage:   "address to listen on",
				Value:   "localhost:8080",
				Sources: cli.EnvVars(envListen),
			},
		}, ngrokFlags()...),
		Action: runServe,
	}
}

func mcpCommand() *cli.Command {
	return &cli.Command{
		Name:      "mcp",
		Usage:     "serve the MCP tools on stdio, playing as IDUL on the match server",
		ArgsUsage: "IDUL",
		Action:    runMCP,
	}
}

// newHandler combines the match server with the /mcp endpoint.
func newHandler(s settings, baseURL string, hub *websocket.Hub, sessions *session.Manager) (http.Handler, error) {
	svc, err := newService(s, sessions)
	if err != nil {
		return nil, err
	}
	if len(s.Tokens) == 0 {
		log.Warn().Msgf("%s is empty, any player may connect", envTokens)
	}

	mainRouter := http.NewServeMux()
	mainRouter.Handle("/", api.NewServer(svc, hub, s.Tokens))
	mainRouter.HandleFunc("/mcp", func(w http.ResponseWriter, r *http.Request) {
		handleMCP(w, r, baseURL)
	})
	return mainRouter, nil
}

// handleMCP answers one MCP message on behalf of the player named by the
// request's basic credentials, which are forwarded to the match server.
func handleMCP(w http.ResponseWriter, r *http.Request, baseURL string) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	player, secret, ok := r.BasicAuth()
	if !ok {
		w.Header().Set("WWW-Authenticate", `Basic realm="quoridor"`)
		http.Error(w, "credentials required", http.StatusUnauthorized)
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "Failed to read request", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	client := mcp.NewClient(remote.NewClient(baseURL, player, secret))
	response := client.GetMCPServer().HandleMessage(r.Context(), body)

	w.Header().Set("Content-Type", "application/json")
	responseData, err := json.Marshal(response)
	if err != nil {
		http.Error(w, "Failed to marshal response", http.StatusInternalServerError)
		return
	}
	w.Write(responseData)
}

func runServe(ctx context.Context, cmd *cli.Command) error {
	s, err := settingsFrom(cmd)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	hub := websocket.NewHub()
	go hub.Run(ctx)

	sessions := session.NewManager()
	handler, err := newHandler(s, "http://"+s.Listen, hub, sessions)
	if err != nil {
		return err
	}

	httpServer := &http.Server{
		Addr:         s.Listen,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		sessionCleanupRoutine(ctx, sessions)
	}()

	errc := make(chan error, 1)
	go func() {
		log.Info().Msgf("match server listening on %s", s.Listen)
		log.Info().Msgf("games: http://%s/jeux", s.Listen)
		log.Info().Msgf("spectators: ws://%s/ws?partie=<id>", s.Listen)
		log.Info().Msgf("MCP endpoint: http://%s/mcp", s.Listen)
		errc <- httpServer.ListenAndServe()
	}()

	if s.Ngrok.Enabled {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := serveTunnel(ctx, s.Ngrok, handler); err != nil {
				log.Warn().Err(err).Msg("ngrok tunnel unavailable")
			}
		}()
	}

	select {
	case err := <-errc:
		cancel()
		wg.Wait()
		return fmt.Errorf("HTTP server failed: %w", err)
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error().Err(err).Msg("HTTP server error")
	}

	wg.Wait()
	log.Info().Msg("server stopped")
	return nil
}

// sessionCleanupRoutine periodically removes games that have not been
// accessed within sessionMaxAge.
func sessionCleanupRoutine(ctx context.Context, manager *session.Manager) {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			manager.CleanupExpiredSessions(sessionMaxAge)
		case <-ctx.Done():
			return
		}
	}
}

// runMCP serves the MCP tools on stdio for an agent playing as IDUL.
func runMCP(ctx context.Context, cmd *cli.Command) error {
	idul := cmd.Args().First()
	if idul == "" {
		return errIDULRequired
	}
	s, err := settingsFrom(cmd)
	if err != nil {
		return err
	}
	secret, err := s.secretFor(idul)
	if err != nil {
		return err
	}

	client := mcp.NewClient(remote.NewClient(s.ServerURL, idul, secret))
	log.Info().Str("server", s.ServerURL).Str("player", idul).Msg("MCP stdio server ready")
	return server.ServeStdio(client.GetMCPServer())
}
