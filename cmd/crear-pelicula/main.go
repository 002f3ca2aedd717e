package main

import (
	"context"
	"log"
	"os"

	"github.com/avelasco/peliculas/internal/config"
	"github.com/avelasco/peliculas/internal/dynamo"
	"github.com/avelasco/peliculas/internal/handlers"
	"github.com/avelasco/peliculas/internal/logging"
	"github.com/aws/aws-lambda-go/lambda"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-xray-sdk-go/instrumentation/awsv2"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("unable to load config: %s", err)
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background())
	if err != nil {
		log.Fatalf("unable to load aws config: %s", err)
	}

	awsv2.AWSV2Instrumentor(&awsCfg.APIOptions)

	h := &handlers.CreatePelicula{
		Store: &dynamo.Store{Client: dynamodb.NewFromConfig(awsCfg)},
		Table: cfg.TableName,
		Log:   logging.New(os.Stdout),
	}

	lambda.Start(h.Handle)
}
