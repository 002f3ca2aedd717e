package peliculas

import "github.com/google/uuid"

// Pelicula is one record in the peliculas table, keyed by tenant and
// generated id. TenantID and Datos hold whatever JSON the caller sent,
// untouched.
type Pelicula struct {
	TenantID any    `json:"tenant_id" dynamodbav:"tenant_id"`
	UUID     string `json:"uuid" dynamodbav:"uuid"`
	Datos    any    `json:"pelicula_datos" dynamodbav:"pelicula_datos"`
}

// NewID returns a canonical v4 UUID for a fresh record.
func NewID() string {
	return uuid.NewString()
}
