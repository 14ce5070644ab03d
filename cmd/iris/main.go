package main

import (
	"context"
	"flag"
	logg "log"
	"os"
	"os/signal"
	"syscall"

	"github.com/iris-civica/iris-client/internal/client"
	"github.com/iris-civica/iris-client/internal/config"
	"github.com/iris-civica/iris-client/internal/notify"
	"github.com/iris-civica/iris-client/internal/repository"
	"github.com/iris-civica/iris-client/pkg/logger"
	"github.com/iris-civica/iris-client/pkg/tarantool"
)

// Despacho de página: exatamente um controlador é construído por
// execução, escolhido pela página configurada. Páginas desconhecidas não
// constroem nada.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	defer stop()

	page := flag.String("page", "", "página a abrir: politicos, compasso ou chatbot")
	flag.Parse()

	cfg, err := config.New()
	if err != nil {
		logg.Fatalf("failed to load config: %s", err)
	}
	if *page != "" {
		cfg.Page = *page
	}

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		logg.Fatalf("failed to initalize logger: %s", err)
	}

	cl := client.New(cfg.APIBaseURL, log)
	notifier := notify.NewConsole(os.Stdout, log)

	switch cfg.Page {
	case "politicos":
		runPoliticos(ctx, cl, notifier, log)
	case "compasso":
		runCompasso(ctx, cl, notifier, log)
	case "chatbot":
		conn, err := tarantool.New(cfg.Tarantool)
		if err != nil {
			logg.Fatalf("failed to connect to Tarantool: %s", err)
		}
		repo := repository.New(conn, log)
		userID, err := repo.ObterOuCriarUserID()
		if err != nil {
			logg.Fatalf("failed to resolve user id: %s", err)
		}
		runChatbot(ctx, cl, repo, notifier, userID, cfg, log)
		conn.CloseGraceful()
	default:
		logg.Fatalf("unknown page: %s", cfg.Page)
	}
}
