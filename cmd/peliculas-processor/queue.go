package main

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"github.com/avelasco/peliculas/internal/handlers"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/aws/aws-sdk-go-v2/service/sqs/types"
	"github.com/samsarahq/go/oops"
	"go.opentelemetry.io/otel/codes"
	semconv "go.opentelemetry.io/otel/semconv/v1.4.0"
	"go.opentelemetry.io/otel/trace"
)

// sqsAPI is the subset of the SQS client the queue loop uses.
type sqsAPI interface {
	ReceiveMessage(ctx context.Context, params *sqs.ReceiveMessageInput, optFns ...func(*sqs.Options)) (*sqs.ReceiveMessageOutput, error)
	DeleteMessage(ctx context.Context, params *sqs.DeleteMessageInput, optFns ...func(*sqs.Options)) (*sqs.DeleteMessageOutput, error)
}

// PeliculaQueue drains create envelopes from SQS and runs each one through
// the create handler. Messages ending in a server error are not deleted,
// so the queue redelivers them; any other status is terminal.
type PeliculaQueue struct {
	SQS     sqsAPI
	Handler *handlers.CreatePelicula
	Tracer  trace.Tracer

	QueueName string
	QueueURL  string
}

func (q *PeliculaQueue) ReceiveAndProcess(ctx context.Context) error {
	recvAndProcess := func(ctx context.Context) error {
		ctx, span := q.Tracer.Start(ctx, "recvAndProcess",
			trace.WithSpanKind(trace.SpanKindServer),
			trace.WithAttributes(semconv.MessagingSystemKey.String("AmazonSQS")),
			trace.WithAttributes(semconv.MessagingDestinationKey.String(q.QueueName)),
			trace.WithAttributes(semconv.MessagingDestinationKindQueue))
		defer span.End()

		msgs, err := q.receiveMessages(ctx)
		if err != nil {
			return spanError(span, oops.Wrapf(err, "receive message"))
		}

		for _, msg := range msgs {
			if err := q.processMessage(ctx, msg); err != nil {
				return spanError(span, oops.Wrapf(err, "process message %q", aws.ToString(msg.MessageId)))
			}
		}

		return nil
	}

	for {
		if err := recvAndProcess(ctx); err != nil {
			log.Printf("error: %s", err)
		}
	}
}

func spanError(span trace.Span, err error) error {
	span.SetStatus(codes.Error, err.Error())
	return err
}

func (q *PeliculaQueue) receiveMessages(ctx context.Context) ([]types.Message, error) {
	res, err := q.SQS.ReceiveMessage(ctx, &sqs.ReceiveMessageInput{
		QueueUrl:            aws.String(q.QueueURL),
		MaxNumberOfMessages: 1,
		WaitTimeSeconds:     20,
	})
	if err != nil {
		return nil, err
	}

	return res.Messages, nil
}

func (q *PeliculaQueue) processMessage(ctx context.Context, msg types.Message) error {
	ctx, span := q.Tracer.Start(ctx, "processMessage", trace.WithAttributes(semconv.MessagingMessageIDKey.String(aws.ToString(msg.MessageId))))
	defer span.End()

	resp, _ := q.Handler.Handle(ctx, json.RawMessage(aws.ToString(msg.Body)))
	if resp.StatusCode >= http.StatusInternalServerError {
		// not deleted, so the queue redelivers it
		return spanError(span, oops.Errorf("crear pelicula: status %d", resp.StatusCode))
	}

	if resp.StatusCode != http.StatusOK {
		log.Printf("dropping message %q: terminal status %d", aws.ToString(msg.MessageId), resp.StatusCode)
	}

	if err := q.deleteMessage(ctx, msg.ReceiptHandle); err != nil {
		return spanError(span, oops.Wrapf(err, "delete message"))
	}

	return nil
}

func (q *PeliculaQueue) deleteMessage(ctx context.Context, receiptHandle *string) error {
	_, err := q.SQS.DeleteMessage(ctx, &sqs.DeleteMessageInput{
		QueueUrl:      aws.String(q.QueueURL),
		ReceiptHandle: receiptHandle,
	})

	return err
}
