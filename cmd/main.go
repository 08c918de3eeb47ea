package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	// Nossos pacotes de infraestrutura e utilitários
	"gotire/config"
	"gotire/internal/domain"
	"gotire/internal/pkg/cache"
	"gotire/internal/pkg/database"
	"gotire/internal/pkg/logger"
	"gotire/internal/pkg/middleware"
	"gotire/internal/pkg/seed"
	"gotire/internal/pkg/sse"
	"gotire/internal/pkg/token"

	// Camadas para Injeção de Dependências
	"gotire/internal/api/catalog"
	"gotire/internal/api/events"
	"gotire/internal/api/imports"
	"gotire/internal/api/operator"
	"gotire/internal/api/report"
	"gotire/internal/api/router"
	"gotire/internal/api/stock"
	"gotire/internal/repository/collection"
	"gotire/internal/repository/mirrorrepo"
	"gotire/internal/repository/stockrepo"
	"gotire/internal/service/catalogservice"
	"gotire/internal/service/importservice"
	"gotire/internal/service/operatorservice"
	"gotire/internal/service/reportservice"
	"gotire/internal/service/stockservice"
)

// mirror é o espelho remoto visto pelo main: escritas assíncronas mais o Wait do shutdown.
type mirror interface {
	stockservice.Mirror
	Wait()
}

func main() {
	// 1. Configuração e Inicialização
	log.Println("⚡ Inicializando serviço GoTire...")
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ Aviso: Arquivo .env não encontrado ou erro de leitura. Carregando configs apenas do ambiente do sistema.")
	}

	cfg := config.LoadConfig()
	appLog := logger.NewLogger(cfg.LogLevel)
	appLog.Info("Configurações carregadas.", map[string]interface{}{"store_backend": cfg.StoreBackend, "env": cfg.Environment})

	ctx := context.Background()

	// 2. Conexão com Recursos de Infraestrutura

	// A. Redis: obrigatório no backend redis; nos demais só alimenta o rate limiter.
	var cacheClient *cache.RedisClient
	if cfg.StoreBackend == config.StoreBackendRedis || cfg.RateLimitMaxRequests > 0 {
		client, err := cache.NewRedisClient(cfg.RedisAddr, cfg.CacheTimeout)
		switch {
		case err == nil:
			cacheClient = client
			defer cacheClient.Close()
			appLog.Info("Conexão Redis estabelecida.", map[string]interface{}{"addr": cfg.RedisAddr})
		case cfg.StoreBackend == config.StoreBackendRedis:
			appLog.Fatal("Falha ao conectar ao Redis.", err)
		default:
			appLog.Warn("Redis indisponível; rate limiting desativado.", map[string]interface{}{"error": err.Error()})
		}
	}

	// B. Backend das coleções locais
	var backend collection.Backend
	switch cfg.StoreBackend {
	case config.StoreBackendRedis:
		backend = collection.NewRedisBackend(cacheClient, cfg.RedisKeyPrefix)
	case config.StoreBackendSQLite:
		sqliteDB, err := database.NewSQLiteDB(cfg.SQLitePath)
		if err != nil {
			appLog.Fatal("Falha ao abrir o SQLite.", err)
		}
		defer sqliteDB.Close()
		sqliteBackend, err := collection.NewSQLiteBackend(ctx, sqliteDB)
		if err != nil {
			appLog.Fatal("Falha ao preparar as coleções no SQLite.", err)
		}
		backend = sqliteBackend
	default:
		backend = collection.NewMemoryBackend()
		appLog.Warn("Backend em memória: os dados serão perdidos ao encerrar.", nil)
	}

	// C. Store (migrações de esquema rodam na abertura)
	store, err := stockrepo.New(ctx, backend, appLog)
	if err != nil {
		appLog.Fatal("Falha ao inicializar o store local.", err)
	}
	appLog.Debug("Store local inicializado.", nil)

	// D. Espelho remoto (PostgreSQL), opcional
	var remoteMirror mirror = mirrorrepo.Nop{}
	var remoteReader reportservice.RemoteReader
	if cfg.MirrorEnabled() {
		db, err := database.NewPostgresDB(cfg.DatabaseURL, cfg.DBTimeout)
		if err != nil {
			appLog.Fatal("Falha ao conectar ao banco espelho.", err)
		}
		defer db.Close()
		mirrorRepo := mirrorrepo.NewRepository(db, cfg.DBTimeout)
		remoteMirror = mirrorrepo.NewAsync(mirrorRepo, cfg.MirrorTimeout, appLog)
		remoteReader = mirrorRepo
		appLog.Info("Espelho PostgreSQL conectado.", nil)
	} else {
		appLog.Info("DATABASE_URL vazia: espelho remoto desativado.", nil)
	}

	// 3. INJEÇÃO DE DEPENDÊNCIAS
	// Ordem: Repository -> Service -> Handler
	stockSvc := stockservice.NewService(store, remoteMirror, appLog, stockservice.Options{
		YieldEvery:   cfg.BatchYieldEvery,
		ActiveStatus: domain.Status(cfg.ActiveStatus),
	})
	importSvc := importservice.NewService(store, remoteMirror, appLog)
	reportSvc := reportservice.NewService(store, remoteReader, appLog)
	catalogSvc := catalogservice.NewService(store, appLog)

	if cfg.SeedFile != "" {
		catalogSeed, err := seed.LoadFile(cfg.SeedFile)
		if err != nil {
			appLog.Fatal("Falha ao ler o arquivo de seed.", err)
		}
		if _, err := seed.Apply(ctx, catalogSeed, catalogSvc, appLog); err != nil {
			appLog.Fatal("Falha ao aplicar o seed do cadastro.", err)
		}
	}

	// SSE: o hub assina todos os eventos do store
	hub := sse.NewHub(appLog)
	detach := hub.Attach(store)
	defer detach()

	tokenSvc := token.NewService(cfg.JWTSecretKey, cfg.TokenExpiry)
	appLog.Debug("Serviço de Tokens JWT inicializado.", nil)

	operatorSvc := operatorservice.NewService(store, tokenSvc, appLog)
	if cfg.AdminUsername != "" {
		created, err := operatorSvc.Bootstrap(ctx, cfg.AdminUsername, cfg.AdminPassword)
		if err != nil {
			appLog.Fatal("Falha ao criar a conta admin inicial.", err)
		}
		if created {
			appLog.Info("Conta admin inicial criada.", map[string]interface{}{"username": cfg.AdminUsername})
		}
	}

	handlers := router.Handlers{
		Stock:    stock.NewHandler(stockSvc, appLog),
		Catalog:  catalog.NewHandler(catalogSvc, appLog),
		Imports:  imports.NewHandler(importSvc, appLog),
		Report:   report.NewHandler(reportSvc, appLog),
		Events:   events.NewHandler(hub, appLog),
		Operator: operator.NewHandler(operatorSvc, appLog),
	}

	// 4. Configuração e Início do Roteador/Servidor
	var opts router.Options
	if cacheClient != nil && cfg.RateLimitMaxRequests > 0 {
		opts.RateLimit = middleware.RateLimiter(cacheClient, cfg.RateLimitMaxRequests, cfg.RateLimitPeriod, appLog)
	}
	r := router.NewRouter(handlers, tokenSvc, opts, appLog)

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		// sem WriteTimeout: o stream SSE fica aberto indefinidamente
		IdleTimeout: 60 * time.Second,
	}
	server.RegisterOnShutdown(hub.Close)

	// 5. Execução e Graceful Shutdown
	go func() {
		appLog.Info("Servidor GoTire ouvindo na porta", map[string]interface{}{"port": cfg.Port})
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLog.Fatal("Servidor falhou.", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit
	appLog.Info("Sinal de encerramento recebido. Desligando servidor...", nil)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		appLog.Error("Desligamento do servidor forçado.", err)
	}

	// escritas pendentes no espelho terminam antes de fechar o banco
	remoteMirror.Wait()

	appLog.Info("Servidor encerrado com sucesso.", nil)
	if syncer, ok := appLog.(interface{ Sync() error }); ok {
		syncer.Sync()
	}
}
