package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/avelasco/peliculas/internal/config"
	"github.com/avelasco/peliculas/internal/dynamo"
	"github.com/avelasco/peliculas/internal/handlers"
	"github.com/avelasco/peliculas/internal/logging"
	"github.com/avelasco/peliculas/internal/otel"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"go.opentelemetry.io/contrib/instrumentation/github.com/aws/aws-sdk-go-v2/otelaws"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("unable to load config: %s", err)
	}
	log.Printf("Using %q as the DynamoDB peliculas table", cfg.TableName)

	// Timeout for setup functions
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	if err := otel.SetupTracer(ctx, cfg.ServiceName); err != nil {
		log.Fatalf("unable to setup otel tracer: %s", err)
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		log.Fatalf("unable to load aws config: %s", err)
	}

	otelaws.AppendMiddlewares(&awsCfg.APIOptions)

	store := &dynamo.Store{Client: dynamodb.NewFromConfig(awsCfg)}
	logger := logging.New(os.Stdout)

	create := &handlers.CreatePelicula{
		Store: store,
		Table: cfg.TableName,
		Log:   logger,
	}

	mux := http.NewServeMux()

	// Simple health check endpoint
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(200)
	})

	mux.Handle("/api/pelicula", otelhttp.NewHandler(&handlers.Pelicula{
		Create: create,
		Getter: store,
		Log:    logger,
	}, "pelicula"))

	log.Printf("Starting server on %s", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, mux); err != nil {
		log.Fatalf("error serving: %s", err)
	}
}
