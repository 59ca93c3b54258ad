package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/bytedance/sonic"

	"github.com/GriffinCanCode/NavFS/internal/infrastructure/config"
	"github.com/GriffinCanCode/NavFS/internal/infrastructure/server"
	"github.com/GriffinCanCode/NavFS/internal/shared/types"
)

func main() {
	port := flag.String("port", "", "Server port (overrides PORT)")
	backendPath := flag.String("backend", "", "Dynamic backend library path (overrides NAVFS_BACKEND_PATH)")
	execJSON := flag.String("exec", "", `One-shot command, e.g. '{"command":"list","params":{"path":"/tmp"}}'`)
	flag.Parse()

	cfg := config.LoadOrDefault()
	if *port != "" {
		cfg.Server.Port = *port
	}
	if *backendPath != "" {
		cfg.Backend.Path = *backendPath
	}

	if *execJSON != "" {
		os.Exit(runOnce(cfg, *execJSON))
	}

	srv, err := server.NewServer(cfg)
	if err != nil {
		log.Fatalf("Failed to create server: %v", err)
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	errChan := make(chan error, 1)
	go func() {
		if err := srv.Run(); err != nil {
			errChan <- err
		}
	}()

	select {
	case <-sigChan:
		log.Println("Shutting down gracefully...")
		if err := srv.Close(); err != nil {
			log.Printf("Error during shutdown: %v", err)
		}
	case err := <-errChan:
		log.Fatalf("Server error: %v", err)
	}
}

// runOnce dispatches a single command and prints the result envelope.
// The exit code reports dispatch health only: a command that ran and
// failed still exits 0 with its failure envelope on stdout.
func runOnce(cfg *config.Config, raw string) int {
	var req types.ExecuteRequest
	if err := sonic.UnmarshalString(raw, &req); err != nil {
		fmt.Fprintf(os.Stderr, "malformed request: %v\n", err)
		return 2
	}
	if req.Command == "" {
		fmt.Fprintln(os.Stderr, "malformed request: command required")
		return 2
	}

	srv, err := server.NewServer(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "initialization failed: %v\n", err)
		return 1
	}
	defer srv.Close()

	var appCtx *types.Context
	if req.SessionID != nil {
		appCtx = &types.Context{SessionID: req.SessionID}
	}

	result, err := srv.Registry().Execute(context.Background(), req.Command, req.Params, appCtx)
	if err != nil {
		if result != nil {
			printResult(result)
		}
		fmt.Fprintf(os.Stderr, "dispatch failed: %v\n", err)
		return 1
	}

	printResult(result)
	return 0
}

func printResult(result *types.Result) {
	out, err := sonic.MarshalIndent(result, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "encode failed: %v\n", err)
		return
	}
	fmt.Println(string(out))
}
