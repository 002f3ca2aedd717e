package main

import (
	"context"
	"errors"
	"io"
	"net/http"
	"testing"

	"github.com/avelasco/peliculas/internal/handlers"
	"github.com/avelasco/peliculas/internal/logging"
	"github.com/avelasco/peliculas/internal/peliculas"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/aws/aws-sdk-go-v2/service/sqs/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
)

type fakeSQS struct {
	recvIn  *sqs.ReceiveMessageInput
	msgs    []types.Message
	recvErr error
	deleted []string
}

func (f *fakeSQS) ReceiveMessage(_ context.Context, params *sqs.ReceiveMessageInput, _ ...func(*sqs.Options)) (*sqs.ReceiveMessageOutput, error) {
	f.recvIn = params
	if f.recvErr != nil {
		return nil, f.recvErr
	}
	return &sqs.ReceiveMessageOutput{Messages: f.msgs}, nil
}

func (f *fakeSQS) DeleteMessage(_ context.Context, params *sqs.DeleteMessageInput, _ ...func(*sqs.Options)) (*sqs.DeleteMessageOutput, error) {
	f.deleted = append(f.deleted, aws.ToString(params.ReceiptHandle))
	return &sqs.DeleteMessageOutput{}, nil
}

type fakeStore struct {
	calls int
	err   error
}

func (f *fakeStore) Save(context.Context, string, peliculas.Pelicula) (int, error) {
	f.calls++
	if f.err != nil {
		return 0, f.err
	}
	return http.StatusOK, nil
}

func newQueue(store *fakeStore, client *fakeSQS) *PeliculaQueue {
	return &PeliculaQueue{
		SQS:       client,
		Handler:   &handlers.CreatePelicula{Store: store, Table: "peliculas-dev", Log: logging.New(io.Discard)},
		Tracer:    otel.Tracer("test"),
		QueueName: "crear-pelicula",
		QueueURL:  "https://sqs.us-east-1.amazonaws.com/123/crear-pelicula",
	}
}

func TestReceiveMessages(t *testing.T) {
	t.Run("long polls one message at a time", func(t *testing.T) {
		client := &fakeSQS{msgs: []types.Message{{MessageId: aws.String("m-1")}}}
		q := newQueue(&fakeStore{}, client)

		msgs, err := q.receiveMessages(context.Background())
		require.NoError(t, err)
		require.Len(t, msgs, 1)

		require.NotNil(t, client.recvIn)
		assert.Equal(t, q.QueueURL, aws.ToString(client.recvIn.QueueUrl))
		assert.Equal(t, int32(1), client.recvIn.MaxNumberOfMessages)
		assert.Equal(t, int32(20), client.recvIn.WaitTimeSeconds)
	})

	t.Run("surfaces receive failures", func(t *testing.T) {
		client := &fakeSQS{recvErr: errors.New("timeout")}
		q := newQueue(&fakeStore{}, client)

		_, err := q.receiveMessages(context.Background())
		require.Error(t, err)
	})
}

func TestProcessMessage(t *testing.T) {
	msg := func(body string) types.Message {
		return types.Message{
			MessageId:     aws.String("m-1"),
			ReceiptHandle: aws.String("rh-1"),
			Body:          aws.String(body),
		}
	}

	t.Run("deletes messages that created a record", func(t *testing.T) {
		store := &fakeStore{}
		client := &fakeSQS{}
		q := newQueue(store, client)

		err := q.processMessage(context.Background(), msg(`{"tenant_id": "t1", "pelicula_datos": {"titulo": "Dune"}}`))
		require.NoError(t, err)
		assert.Equal(t, 1, store.calls)
		assert.Equal(t, []string{"rh-1"}, client.deleted)
	})

	t.Run("drops messages with terminal client errors", func(t *testing.T) {
		store := &fakeStore{}
		client := &fakeSQS{}
		q := newQueue(store, client)

		err := q.processMessage(context.Background(), msg(`{"tenant_id": "t1"}`))
		require.NoError(t, err)
		assert.Zero(t, store.calls)
		assert.Equal(t, []string{"rh-1"}, client.deleted)
	})

	t.Run("keeps messages after server errors", func(t *testing.T) {
		store := &fakeStore{err: errors.New("disco roto")}
		client := &fakeSQS{}
		q := newQueue(store, client)

		err := q.processMessage(context.Background(), msg(`{"tenant_id": "t1", "pelicula_datos": 1}`))
		require.Error(t, err)
		assert.Empty(t, client.deleted)
	})
}
