package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"novel-board/internal/client"
	"novel-board/internal/config"
	"novel-board/internal/database"
	"novel-board/internal/interfaces"
	"novel-board/internal/logger"
	"novel-board/internal/service"
	"novel-board/pkg/ai"

	"go.uber.org/zap"
)

func main() {
	serverURL := flag.String("server", "http://localhost:8000", "novel-board server URL")
	steps := flag.Int("steps", 5, "number of choices before the ending")
	pause := flag.Duration("pause", time.Second, "pause before each generation call")
	share := flag.Bool("share", false, "offer to post the finished story to the board")
	direct := flag.Bool("direct", false, "call the AI provider in-process instead of the server")
	envFile := flag.String("env", ".env", "path to .env file (direct mode)")
	logLevel := flag.String("log-level", "warn", "log level")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: play [flags]\n       play [flags] board list | read <id> | delete <id>\n\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	log, err := logger.New(logger.Config{Level: *logLevel, Encoding: logger.EncodingConsole, OutputPath: "stderr", Service: "novel-board-play"})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	story, board, closeFn, err := setupBackends(*direct, *serverURL, *envFile, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	defer closeFn()

	a := &app{
		in:     bufio.NewScanner(os.Stdin),
		out:    os.Stdout,
		story:  story,
		board:  board,
		steps:  *steps,
		pause:  *pause,
		share:  *share,
		now:    time.Now,
		logger: log,
	}

	if args := flag.Args(); len(args) > 0 && args[0] == "board" {
		err = a.runBoard(ctx, args[1:])
	} else {
		err = a.play(ctx)
	}
	if err != nil && !errors.Is(err, errInputClosed) {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		closeFn()
		os.Exit(1)
	}
}

// setupBackends выбирает источник генерации и доски: HTTP-сервер или
// прямые вызовы провайдера с локальной SQLite-доской.
func setupBackends(direct bool, serverURL, envFile string, log *zap.Logger) (interfaces.StoryService, interfaces.BoardService, func(), error) {
	if !direct {
		c, err := client.NewNovelBoardClient(serverURL, 10*time.Minute, log)
		if err != nil {
			return nil, nil, nil, err
		}
		return c, c, func() {}, nil
	}

	cfg, err := config.LoadConfig(envFile)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("load config: %w", err)
	}
	aiClient, err := ai.NewClient(ai.Config{
		ClientType:  cfg.AIClientType,
		APIKey:      cfg.AIAPIKey,
		BaseURL:     cfg.AIBaseURL,
		Model:       cfg.AIModel,
		Timeout:     cfg.AITimeout,
		MaxAttempts: cfg.AIMaxAttempts,
		RetryDelay:  cfg.AIRetryDelay,
	}, log)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("create AI client: %w", err)
	}

	repo, err := database.OpenSQLitePostRepository(cfg.SQLitePath, log)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("open board store: %w", err)
	}
	closeFn := func() {
		if err := repo.Close(); err != nil {
			log.Warn("Failed to close board store", zap.Error(err))
		}
	}
	return service.NewStoryService(aiClient, log), service.NewBoardService(repo, log), closeFn, nil
}
