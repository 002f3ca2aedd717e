package main

import (
	"context"
	"log"
	"os"

	"github.com/avelasco/peliculas/internal/config"
	"github.com/avelasco/peliculas/internal/dynamo"
	"github.com/avelasco/peliculas/internal/handlers"
	"github.com/avelasco/peliculas/internal/logging"
	"github.com/avelasco/peliculas/internal/otel"
	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"go.opentelemetry.io/contrib/instrumentation/github.com/aws/aws-sdk-go-v2/otelaws"
	otelotel "go.opentelemetry.io/otel"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("unable to load config: %s", err)
	}
	if cfg.QueueName == "" {
		log.Fatalf("QUEUE_NAME is not set")
	}

	if err := otel.SetupTracer(context.Background(), cfg.ServiceName+"-processor"); err != nil {
		log.Fatalf("unable to setup otel tracer: %s", err)
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background())
	if err != nil {
		log.Fatalf("unable to load aws config: %s", err)
	}

	otelaws.AppendMiddlewares(&awsCfg.APIOptions)

	client := sqs.NewFromConfig(awsCfg)
	res, err := client.GetQueueUrl(context.Background(), &sqs.GetQueueUrlInput{
		QueueName: aws.String(cfg.QueueName),
	})
	if err != nil {
		log.Fatalf("unable to get queue url: %s", err)
	}

	q := &PeliculaQueue{
		SQS: client,
		Handler: &handlers.CreatePelicula{
			Store: &dynamo.Store{Client: dynamodb.NewFromConfig(awsCfg)},
			Table: cfg.TableName,
			Log:   logging.New(os.Stdout),
		},
		Tracer:    otelotel.Tracer(""),
		QueueName: cfg.QueueName,
		QueueURL:  aws.ToString(res.QueueUrl),
	}

	log.Printf("Waiting for events from %s", q.QueueURL)

	if err := q.ReceiveAndProcess(context.Background()); err != nil {
		log.Fatalf("unable to receive and process: %s", err)
	}
}
