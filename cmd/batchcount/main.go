package main

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"log"
	"os"
	"os/exec"
	"os/signal"
	"runtime"
	"syscall"

	"batchcount/frontend/batches"
	"batchcount/frontend/counting"
	"batchcount/infrastructure/audit"
	httpserver "batchcount/infrastructure/http"
	"batchcount/infrastructure/sqlite"
	"batchcount/models"
)

func main() {
	addr := getenv("APP_ADDR", "127.0.0.1:8080")
	dbPath := getenv("SQLITE_PATH", "batchcount.db")
	seedPath := getenv("DEFAULT_BATCHES_PATH", "docs/default_batches.json")

	db, err := sqlite.OpenDB(dbPath)
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	defer db.Close()

	if err := sqlite.ApplyEmbeddedMigrations(context.Background(), db); err != nil {
		log.Fatalf("apply migrations: %v", err)
	}

	auditSvc := audit.NewService()
	batchStore := batches.NewStore(db, auditSvc)
	if err := batchStore.Load(context.Background()); err != nil {
		log.Fatalf("load batches: %v", err)
	}
	itemStore := counting.NewStore(db, auditSvc)
	if err := itemStore.Load(context.Background()); err != nil {
		log.Fatalf("load items: %v", err)
	}

	if batchStore.Len() == 0 {
		if err := seedDefaultBatches(context.Background(), batchStore, seedPath); err != nil {
			log.Printf("seed default batches: %v", err)
		}
	}

	server := httpserver.NewServer(addr, db, auditSvc, batchStore, itemStore)
	if err := server.Start(); err != nil {
		log.Fatalf("start server: %v", err)
	}
	log.Printf("batchcount listening on %s", server.URL())

	openBrowser(server.URL())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	if err := server.Stop(); err != nil {
		log.Printf("graceful shutdown error: %v", err)
	}
}

// seedDefaultBatches fills an empty registry from the bundled batch file. A
// missing file is not an error; a fresh install just starts empty.
func seedDefaultBatches(ctx context.Context, store *batches.Store, path string) error {
	payload, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	var entries map[string]models.BatchInfo
	if err := json.Unmarshal(payload, &entries); err != nil {
		return err
	}
	merged, err := store.Import(ctx, entries)
	if err != nil {
		return err
	}
	log.Printf("seeded %d default batches from %s", merged, path)
	return nil
}

func openBrowser(url string) {
	var err error
	switch runtime.GOOS {
	case "windows":
		err = exec.Command("rundll32", "url.dll,FileProtocolHandler", url).Start()
	case "darwin":
		err = exec.Command("open", url).Start()
	default:
		err = exec.Command("xdg-open", url).Start()
	}
	if err != nil {
		log.Printf("failed to open browser: %v", err)
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
