// cmd/worker-manager/main.go
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/camunda/zeebe/clients/go/v8/pkg/zbc"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"credentialing-workers/internal/common/aws"
	"credentialing-workers/internal/common/config"
	"credentialing-workers/internal/common/database"
	"credentialing-workers/internal/common/logger"
	"credentialing-workers/internal/common/observability"
	"credentialing-workers/internal/common/validation"
	"credentialing-workers/pkg/registry"

	// Dashboard workers (3)
	cs "credentialing-workers/internal/workers/dashboard/compute-statistics"
	qa "credentialing-workers/internal/workers/dashboard/query-applications"
	ra "credentialing-workers/internal/workers/dashboard/record-activity"

	// Roster and credentialing workers (3)
	gc "credentialing-workers/internal/workers/credentialing/generate-checklist"
	vp "credentialing-workers/internal/workers/credentialing/verify-provider"
	ir "credentialing-workers/internal/workers/roster/ingest-roster"

	// Committee and notification workers (2)
	sn "credentialing-workers/internal/workers/application/send-notification"
	crq "credentialing-workers/internal/workers/committee/check-review-queue"

	// Data access workers (2)
	qp "credentialing-workers/internal/workers/data-access/query-postgresql"
	sp "credentialing-workers/internal/workers/data-access/search-providers"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2 // Exponential backoff
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	zapLog := logger.New("info", "console")
	defer zapLog.Sync()

	// Wrap zap logger with our logger interface
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting worker manager...")

	cfg, err := config.Load()
	if err != nil {
		zapLog.Fatal("config load failed", zap.Error(err))
	}

	obs := observability.New("worker-manager")
	defer obs.Shutdown()

	ctx := context.Background()

	// --- Init Zeebe Client with retry ---
	var zeebeClient zbc.Client
	err = retryWithBackoff(func() error {
		var err error
		zeebeClient, err = zbc.NewClient(&zbc.ClientConfig{
			GatewayAddress:         cfg.Camunda.BrokerAddress,
			UsePlaintextConnection: true,
		})
		return err
	}, 10, 2*time.Second, zapLog, "Zeebe client initialization")

	if err != nil {
		zapLog.Fatal("zeebe client failed after retries", zap.Error(err))
	}
	zapLog.Info("Zeebe client connected successfully")

	// --- Init PostgreSQL with retry ---
	var pg *database.PostgresClient
	err = retryWithBackoff(func() error {
		var err error
		pg, err = database.NewPostgres(cfg.Database.Postgres)
		if err != nil {
			return err
		}
		return pg.Ping(ctx)
	}, 15, 2*time.Second, zapLog, "PostgreSQL connection")

	if err != nil {
		zapLog.Fatal("postgres failed after retries", zap.Error(err))
	}
	defer pg.Close()
	zapLog.Info("PostgreSQL connected successfully")

	// --- Init Elasticsearch with retry ---
	var esClient *database.ElasticsearchClient
	err = retryWithBackoff(func() error {
		var err error
		esClient, err = database.NewElasticsearch(cfg.Database.Elasticsearch)
		if err != nil {
			return err
		}
		return esClient.Ping()
	}, 15, 2*time.Second, zapLog, "Elasticsearch connection")

	if err != nil {
		zapLog.Fatal("elasticsearch failed after retries", zap.Error(err))
	}
	zapLog.Info("Elasticsearch connected successfully")

	// --- Init Redis with retry ---
	var redisClient *database.RedisClient
	err = retryWithBackoff(func() error {
		var err error
		redisClient, err = database.NewRedis(cfg.Database.Redis)
		if err != nil {
			return err
		}
		return redisClient.Ping(ctx)
	}, 10, 2*time.Second, zapLog, "Redis connection")

	if err != nil {
		zapLog.Fatal("redis failed after retries", zap.Error(err))
	}
	defer redisClient.Close()
	zapLog.Info("Redis connected successfully")

	// --- Init AWS notification clients ---
	var sesClient *aws.SESClient
	var snsClient *aws.SNSClient
	if cfg.Notifications.Email.Enabled || cfg.Notifications.SMS.Enabled {
		sesClient, err = aws.NewSESClient(ctx, cfg.Notifications.AWS.Region)
		if err != nil {
			zapLog.Fatal("ses client init failed", zap.Error(err))
		}
		snsClient, err = aws.NewSNSClient(ctx, cfg.Notifications.AWS.Region)
		if err != nil {
			zapLog.Fatal("sns client init failed", zap.Error(err))
		}
		zapLog.Info("AWS notification clients initialized")
	}

	rosterValidator, err := validation.NewRosterValidator()
	if err != nil {
		zapLog.Fatal("roster validator init failed", zap.Error(err))
	}

	if cfg.Registry.Path != "" {
		reg, err := registry.LoadRegistry(cfg.Registry.Path)
		if err != nil {
			zapLog.Warn("worker registry not loaded", zap.Error(err))
		} else {
			zapLog.Info("worker registry loaded",
				zap.String("version", reg.Version),
				zap.Int("workers", len(reg.Workers)),
			)
		}
	}

	// --- START: Register ALL 10 Workers ---

	// --- 1. Dashboard Workers (3) ---
	if cfg.Workers[qa.TaskType].Enabled {
		handler := qa.NewHandler(
			&qa.Config{
				Timeout:    time.Duration(cfg.Workers[qa.TaskType].Timeout) * time.Millisecond,
				MaxRecords: 10000,
			},
			log,
		)
		startWorker(zeebeClient, qa.TaskType, cfg.Workers[qa.TaskType], handler.Handle, zapLog)
	}

	if cfg.Workers[cs.TaskType].Enabled {
		handler := cs.NewHandler(
			&cs.Config{
				Timeout: time.Duration(cfg.Workers[cs.TaskType].Timeout) * time.Millisecond,
			},
			log,
		)
		startWorker(zeebeClient, cs.TaskType, cfg.Workers[cs.TaskType], handler.Handle, zapLog)
	}

	if cfg.Workers[ra.TaskType].Enabled {
		handler := ra.NewHandler(ra.LoadConfig(), redisClient.Client, log)
		startWorker(zeebeClient, ra.TaskType, cfg.Workers[ra.TaskType], handler.Handle, zapLog)
	}

	// --- 2. Roster & Credentialing Workers (3) ---
	if cfg.Workers[ir.TaskType].Enabled {
		handler := ir.NewHandler(
			&ir.Config{
				Timeout:       time.Duration(cfg.Workers[ir.TaskType].Timeout) * time.Millisecond,
				MaxBatchSize:  cfg.Roster.MaxBatchSize,
				DefaultMarket: cfg.Roster.DefaultMarket,
			},
			pg.DB, rosterValidator, log,
		)
		startWorker(zeebeClient, ir.TaskType, cfg.Workers[ir.TaskType], handler.Handle, zapLog)
	}

	if cfg.Workers[vp.TaskType].Enabled {
		handler := vp.NewHandler(vp.LoadConfig(), log)
		startWorker(zeebeClient, vp.TaskType, cfg.Workers[vp.TaskType], handler.Handle, zapLog)
	}

	if cfg.Workers[gc.TaskType].Enabled {
		handler := gc.NewHandler(
			&gc.Config{
				Timeout:      time.Duration(cfg.APIs.GenAI.Timeout) * time.Millisecond,
				GenAIBaseURL: cfg.APIs.GenAI.BaseURL,
				APIKey:       cfg.APIs.GenAI.APIKey,
				MaxRetries:   2,
				MaxItems:     12,
			},
			log,
		)
		startWorker(zeebeClient, gc.TaskType, cfg.Workers[gc.TaskType], handler.Handle, zapLog)
	}

	// --- 3. Committee & Notification Workers (2) ---
	if cfg.Workers[crq.TaskType].Enabled {
		handler := crq.NewHandler(crq.LoadConfig(), pg.DB, redisClient.Client, log)
		startWorker(zeebeClient, crq.TaskType, cfg.Workers[crq.TaskType], handler.Handle, zapLog)
	}

	if cfg.Workers[sn.TaskType].Enabled {
		if sesClient == nil {
			zapLog.Fatal("send-notification enabled but notifications are disabled in config")
		}
		handler := sn.NewHandler(
			&sn.Config{
				Timeout:            time.Duration(cfg.Workers[sn.TaskType].Timeout) * time.Millisecond,
				SenderAddress:      cfg.Notifications.Email.FromEmail,
				SMSEnabled:         cfg.Notifications.SMS.Enabled,
				SMSImpactThreshold: cfg.Notifications.SMS.ImpactThreshold,
			},
			sesClient, snsClient, log,
		)
		startWorker(zeebeClient, sn.TaskType, cfg.Workers[sn.TaskType], handler.Handle, zapLog)
	}

	// --- 4. Data Access Workers (2) ---
	if cfg.Workers[qp.TaskType].Enabled {
		handler := qp.NewHandler(
			&qp.Config{
				Timeout: time.Duration(cfg.Workers[qp.TaskType].Timeout) * time.Millisecond,
			},
			pg.DB, log,
		)
		startWorker(zeebeClient, qp.TaskType, cfg.Workers[qp.TaskType], handler.Handle, zapLog)
	}

	if cfg.Workers[sp.TaskType].Enabled {
		handler := sp.NewHandler(
			&sp.Config{
				Timeout:      time.Duration(cfg.Workers[sp.TaskType].Timeout) * time.Millisecond,
				DefaultIndex: cfg.Database.Elasticsearch.Index,
			},
			esClient.Client, log,
		)
		startWorker(zeebeClient, sp.TaskType, cfg.Workers[sp.TaskType], handler.Handle, zapLog)
	}

	zapLog.Info("All workers registered successfully")

	// --- Health & Metrics Server ---
	go func() {
		http.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			json.NewEncoder(w).Encode(map[string]string{
				"status": "healthy",
				"time":   time.Now().Format(time.RFC3339),
			})
		})
		http.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			json.NewEncoder(w).Encode(map[string]string{
				"status": "ready",
				"time":   time.Now().Format(time.RFC3339),
			})
		})
		http.Handle("/metrics", promhttp.Handler())
		zapLog.Info("Health/Metrics server listening on :8080")
		if err := http.ListenAndServe(":8080", nil); err != nil {
			zapLog.Error("Health/Metrics server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, stopping workers...")

	if err := zeebeClient.Close(); err != nil {
		zapLog.Error("Error closing Zeebe client", zap.Error(err))
	}

	zapLog.Info("Worker manager stopped gracefully")
}

func startWorker(client zbc.Client, taskType string, wcfg config.WorkerConfig, handlerFunc func(worker.JobClient, entities.Job), log *zap.Logger) {
	if !wcfg.Enabled {
		log.Info("worker disabled", zap.String("taskType", taskType))
		return
	}

	client.NewJobWorker().
		JobType(taskType).
		Handler(handlerFunc).
		MaxJobsActive(wcfg.MaxJobsActive).
		Timeout(time.Duration(wcfg.Timeout) * time.Millisecond).
		Open()

	log.Info("worker started",
		zap.String("taskType", taskType),
		zap.Int("maxJobsActive", wcfg.MaxJobsActive),
		zap.Int("timeout_ms", wcfg.Timeout),
	)
}
