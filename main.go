package main

import (
	"log/slog"
	"net/http"
	"os"

	_ "net/http/pprof" // profiling

	_ "github.com/joho/godotenv/autoload" // automatically load .env files

	"github.com/recyclerview/recycler/internal/cmd"
)

func main() {
	if os.Getenv("RECYCLER_PROFILE") != "" {
		go serveProfiler("localhost:6060")
	}

	cmd.Execute()
}

func serveProfiler(addr string) {
	slog.Info("profiler listening", "addr", addr)
	if err := http.ListenAndServe(addr, nil); err != nil {
		slog.Error("profiler stopped", "error", err)
	}
}
