// Package dynamo persists peliculas in DynamoDB behind a client interface
// narrow enough to fake in tests.
package dynamo

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/avelasco/peliculas/internal/peliculas"
	"github.com/aws/aws-sdk-go-v2/aws"
	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/aws/smithy-go"
)

// API is the subset of the DynamoDB client the store uses.
type API interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
}

type Store struct {
	Client API
}

// Save writes one record into table, overwriting any record with the same
// keys, and returns the status code the store reported for the write.
func (s *Store) Save(ctx context.Context, table string, p peliculas.Pelicula) (int, error) {
	av, err := attributevalue.MarshalMap(p)
	if err != nil {
		return 0, peliculas.WrapError(peliculas.ErrUnexpected, fmt.Sprintf("marshal pelicula: %s", err), err)
	}

	_, err = s.Client.PutItem(ctx, &dynamodb.PutItemInput{
		Item:      av,
		TableName: aws.String(table),
	})
	if err != nil {
		return 0, classify("put item", err)
	}

	return http.StatusOK, nil
}

// Get reads one record by tenant and id. The key is built from the string
// forms, so records written with non-string tenant ids are not reachable
// here.
func (s *Store) Get(ctx context.Context, table, tenantID, id string) (*peliculas.Pelicula, error) {
	res, err := s.Client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(table),
		Key: map[string]types.AttributeValue{
			"tenant_id": &types.AttributeValueMemberS{Value: tenantID},
			"uuid":      &types.AttributeValueMemberS{Value: id},
		},
	})
	switch {
	case err != nil:
		return nil, classify("get item", err)
	case res.Item == nil:
		return nil, peliculas.ErrNotFound
	}

	var p peliculas.Pelicula
	if err := attributevalue.UnmarshalMap(res.Item, &p); err != nil {
		return nil, peliculas.WrapError(peliculas.ErrUnexpected, fmt.Sprintf("unmarshal item: %s", err), err)
	}

	return &p, nil
}

// classify sorts a store failure into the client/server split: faults the
// store pins on the caller become StoreClientError, everything else stays
// unexpected.
func classify(op string, err error) error {
	mensaje := fmt.Sprintf("%s: %s", op, err)

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) && apiErr.ErrorFault() == smithy.FaultClient {
		return peliculas.WrapError(peliculas.ErrStoreClient, mensaje, err)
	}

	var respErr *awshttp.ResponseError
	if errors.As(err, &respErr) && respErr.HTTPStatusCode() >= 400 && respErr.HTTPStatusCode() < 500 {
		return peliculas.WrapError(peliculas.ErrStoreClient, mensaje, err)
	}

	return peliculas.WrapError(peliculas.ErrUnexpected, mensaje, err)
}
