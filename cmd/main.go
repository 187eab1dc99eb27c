package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"pizza-pos/internal/config"
	"pizza-pos/internal/database"
	"pizza-pos/internal/logger"
	"pizza-pos/internal/messaging"
	"pizza-pos/internal/models"
	"pizza-pos/internal/services/order"
	"pizza-pos/internal/services/receipt"
	"pizza-pos/migrations"
)

func main() {
	// Parse command line flags
	var (
		mode       = flag.String("mode", "pos", "Service mode (pos, order-service, receipt-subscriber)")
		port       = flag.Int("port", 3000, "HTTP port for order-service")
		configPath = flag.String("config", "config.yaml", "Path to the YAML config file")
		prefetch   = flag.Int("prefetch", 1, "RabbitMQ prefetch count for receipt-subscriber")
	)
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	// The terminal owns stdout in pos mode
	var logOut io.Writer = os.Stdout
	if *mode == "pos" {
		logOut = os.Stderr
	}
	log := logger.NewWithWriter(*mode, logOut)
	requestID := logger.GenerateRequestID()

	log.Info("service_started", fmt.Sprintf("Starting %s", *mode), requestID, map[string]interface{}{
		"mode":        *mode,
		"config":      *configPath,
		"menu_source": cfg.Menu.Source,
		"database":    cfg.DatabaseEnabled(),
		"rabbitmq":    cfg.RabbitMQEnabled(),
	})

	// Set up graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		log.Info("graceful_shutdown", "Received shutdown signal", requestID, nil)
		cancel()
	}()

	// Route to appropriate service
	switch *mode {
	case "pos":
		err = runPOS(ctx, cfg, log)
	case "order-service":
		err = runOrderService(ctx, cfg, log, *port)
	case "receipt-subscriber":
		err = runReceiptSubscriber(ctx, cfg, log, *prefetch)
	default:
		log.Error("validation_failed", fmt.Sprintf("Unknown mode: %s", *mode), requestID, nil, nil)
		flag.Usage()
		os.Exit(1)
	}

	if err != nil {
		log.Error("service_failed", fmt.Sprintf("%s failed", *mode), requestID, err, nil)
		os.Exit(1)
	}

	log.Info("service_stopped", "Service stopped gracefully", requestID, nil)
}

// infrastructure holds the optional backends a till session reports to
type infrastructure struct {
	db        *database.DB
	publisher *messaging.Publisher
}

func (i *infrastructure) Close() {
	// Closing the publisher closes its broker connection
	if i.publisher != nil {
		i.publisher.Close()
	}
	if i.db != nil {
		i.db.Close()
	}
}

// connect opens the database and broker when they are configured
func connect(ctx context.Context, cfg *config.Config, log *logger.Logger) (*infrastructure, error) {
	requestID := logger.GenerateRequestID()
	infra := &infrastructure{}

	if cfg.DatabaseEnabled() {
		db, err := database.New(ctx, cfg, log)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		infra.db = db
		log.Info("db_connected", "Connected to PostgreSQL database", requestID, nil)

		if err := db.RunMigrations(ctx, migrations.FS); err != nil {
			infra.Close()
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}
	}

	if cfg.RabbitMQEnabled() {
		conn, err := messaging.New(cfg, log)
		if err != nil {
			infra.Close()
			return nil, fmt.Errorf("failed to initialize messaging: %w", err)
		}
		infra.publisher = messaging.NewPublisher(conn, log)
		log.Info("rabbitmq_connected", "Connected to RabbitMQ", requestID, nil)
	}

	return infra, nil
}

// newSession builds the catalog from its configured source and wires the session
func newSession(ctx context.Context, cfg *config.Config, infra *infrastructure, log *logger.Logger) (*order.Session, error) {
	var catalog *models.Catalog
	var err error

	if cfg.Menu.Source == config.MenuSourcePostgres {
		catalog, err = infra.db.LoadCatalog(ctx)
	} else {
		catalog, err = cfg.Catalog()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load menu: %w", err)
	}

	var opts []order.Option
	if infra.db != nil {
		opts = append(opts, order.WithJournal(infra.db))
	}
	if infra.publisher != nil {
		opts = append(opts, order.WithNotifier(infra.publisher))
	}

	return order.NewSession(catalog, log, opts...), nil
}

// runPOS runs the interactive till on stdin/stdout
func runPOS(ctx context.Context, cfg *config.Config, log *logger.Logger) error {
	infra, err := connect(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer infra.Close()

	session, err := newSession(ctx, cfg, infra, log)
	if err != nil {
		return err
	}

	terminal := order.NewTerminal(session, cfg.App.ShopName, os.Stdin, os.Stdout)

	done := make(chan error, 1)
	go func() {
		done <- terminal.Run(ctx)
	}()

	select {
	case <-ctx.Done():
		return nil
	case err := <-done:
		return err
	}
}

// runOrderService serves the till over HTTP
func runOrderService(ctx context.Context, cfg *config.Config, log *logger.Logger, port int) error {
	requestID := logger.GenerateRequestID()

	infra, err := connect(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer infra.Close()

	session, err := newSession(ctx, cfg, infra, log)
	if err != nil {
		return err
	}

	var pinger order.Pinger
	if infra.db != nil {
		pinger = infra.db
	}

	gin.SetMode(gin.ReleaseMode)
	handler := order.NewHandler(session, pinger, log)

	// Setup HTTP server
	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           handler.SetupRoutes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Start HTTP server in goroutine
	serverErr := make(chan error, 1)
	go func() {
		log.Info("service_started", fmt.Sprintf("Order Service started on port %d", port), requestID, map[string]interface{}{
			"port": port,
		})
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	// Wait for shutdown signal
	select {
	case <-ctx.Done():
	case err := <-serverErr:
		return fmt.Errorf("http server failed: %w", err)
	}

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	return server.Shutdown(shutdownCtx)
}

// runReceiptSubscriber prints and forwards receipts for settled payments
func runReceiptSubscriber(ctx context.Context, cfg *config.Config, log *logger.Logger, prefetch int) error {
	if !cfg.RabbitMQEnabled() {
		return fmt.Errorf("receipt-subscriber requires rabbitmq configuration")
	}

	conn, err := messaging.New(cfg, log)
	if err != nil {
		return fmt.Errorf("failed to initialize messaging: %w", err)
	}

	sinks := []receipt.Sink{receipt.NewConsoleSink(os.Stdout)}
	if cfg.TelegramEnabled() {
		tg, err := receipt.NewTelegramSink(cfg.Telegram.Token, cfg.Telegram.ChatID)
		if err != nil {
			conn.Close()
			return err
		}
		sinks = append(sinks, tg)
	}

	hostname, _ := os.Hostname()
	consumer := messaging.NewConsumer(conn, log, messaging.ReceiptsQueue, fmt.Sprintf("receipts-%s-%d", hostname, os.Getpid()), prefetch)

	// Start closes the consumer and its connection
	return receipt.NewSubscriber(consumer, cfg.App.ShopName, log, sinks...).Start(ctx)
}
