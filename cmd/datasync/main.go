// Command datasync reconciles the store with the desired-state document once
// and prints the run counters as JSON.
package main

import (
	"context"
	"encoding/json"
	"log"
	"os"

	"github.com/Tao1925/poc-web/internal/server"
	"github.com/Tao1925/poc-web/internal/server/config"
)

func main() {

	ctx := context.Background()
	cfg := config.LoadConfig()
	app, err := server.NewApp(ctx, cfg)
	if err != nil {
		log.Printf("%v", err)
		os.Exit(1)
	}

	res, err := app.SyncOnce(ctx)
	app.Close()
	if err != nil {
		log.Printf("%v", err)
		os.Exit(1)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(res); err != nil {
		log.Printf("%v", err)
		os.Exit(1)
	}
}
