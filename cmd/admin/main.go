package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/anantbhadani/CareerCraft/internal/config"
	"github.com/anantbhadani/CareerCraft/internal/prefs"
)

const (
	actionShow   = "show"
	actionExport = "export"
	actionClear  = "clear"
)

// Support tool: inspect, export or wipe one workspace of the configured store.
func main() {
	var (
		workspace = flag.String("workspace", "default", "workspace id to operate on")
		action    = flag.String("action", actionShow, "one of show, export, clear")
		yes       = flag.Bool("yes", false, "skip the confirmation prompt for clear")
	)
	flag.Parse()

	ws := strings.TrimSpace(*workspace)
	if ws == "" {
		log.Fatal("missing required flag: -workspace")
	}

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("load .env: %v", err)
	}
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	kv, closeKV, err := prefs.OpenKV(ctx, cfg)
	if err != nil {
		log.Fatalf("open preference store: %v", err)
	}
	defer closeKV()

	store := prefs.NewStore(kv, logger, cfg.Store.MaxValueBytes)

	switch *action {
	case actionShow:
		err = show(ctx, store, ws)
	case actionExport:
		err = export(ctx, store, ws)
	case actionClear:
		if !*yes && !confirm(fmt.Sprintf("Clear all data of workspace %q? [y/N] ", ws)) {
			fmt.Println("aborted")
			return
		}
		err = store.ClearAll(ctx, ws)
		if err == nil {
			fmt.Printf("workspace %q cleared\n", ws)
		}
	default:
		log.Fatalf("unknown action %q (want show, export or clear)", *action)
	}
	if err != nil {
		log.Fatalf("%s: %v", *action, err)
	}
}

func show(ctx context.Context, store *prefs.Store, ws string) error {
	profile, err := store.Profile(ctx, ws)
	if err != nil {
		return err
	}
	settings, err := store.Settings(ctx, ws)
	if err != nil {
		return err
	}
	skills, _, err := store.SkillProgress(ctx, ws)
	if err != nil {
		return err
	}
	scans, err := store.ScanHistory(ctx, ws)
	if err != nil {
		return err
	}
	resumeText, err := store.LastResumeText(ctx, ws)
	if err != nil {
		return err
	}

	return printJSON(map[string]any{
		"workspace":         ws,
		"profile":           profile,
		"settings":          settings,
		"skills":            skills,
		"scans":             scans,
		"lastResumeTextLen": len(resumeText),
	})
}

func export(ctx context.Context, store *prefs.Store, ws string) error {
	data, err := store.Export(ctx, ws)
	if err != nil {
		return err
	}
	return printJSON(data)
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func confirm(prompt string) bool {
	fmt.Print(prompt)
	var answer string
	if _, err := fmt.Scanln(&answer); err != nil {
		return false
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}
