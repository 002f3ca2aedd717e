package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/avelasco/peliculas/internal/peliculas"
	"github.com/aws/aws-lambda-go/events"
	"github.com/rs/zerolog"
)

const (
	tracebackLines = 8
	mensajeInterno = "Error interno inesperado."
)

// Store writes one pelicula into a named table and reports the status code
// the store returned for the write.
type Store interface {
	Save(ctx context.Context, table string, p peliculas.Pelicula) (int, error)
}

// CreatePelicula handles one create request end to end: resolve the body
// out of the envelope, check the required fields, generate the record id,
// write the record, and answer with an API Gateway shaped response. No
// error ever propagates to the caller; every outcome is a structured
// response.
type CreatePelicula struct {
	Store Store
	Table string
	Log   zerolog.Logger
}

// Handle runs one invocation. The returned error is always nil.
func (h *CreatePelicula) Handle(ctx context.Context, event json.RawMessage) (events.APIGatewayProxyResponse, error) {
	h.logEvent(event)

	p, status, err := h.create(ctx, event)
	if err != nil {
		return h.fail(event, peliculas.Classify(err)), nil
	}

	d := zerolog.Dict().
		Str("operacion", "crear_pelicula").
		Str("estado", "ok").
		Str("tabla", h.Table).
		Interface("tenant_id", p.TenantID).
		Str("uuid", p.UUID).
		Interface("http_status", status)
	h.Log.Info().Dict("log_datos", d).Send()

	return respond(http.StatusOK, peliculas.SuccessBody{
		Pelicula: p,
		Response: peliculas.ResponseStatus{HTTPStatus: status},
	}), nil
}

func (h *CreatePelicula) create(ctx context.Context, event json.RawMessage) (peliculas.Pelicula, *int, error) {
	if h.Table == "" {
		return peliculas.Pelicula{}, nil, peliculas.NewError(peliculas.ErrConfiguration, "Variable de entorno 'TABLE_NAME' no definida.")
	}

	body, err := peliculas.ParseEventBody(event)
	if err != nil {
		return peliculas.Pelicula{}, nil, err
	}

	tenantID, ok := body["tenant_id"]
	if !ok {
		return peliculas.Pelicula{}, nil, peliculas.NewError(peliculas.ErrMissingField, "Falta 'tenant_id' en el body.")
	}
	datos, ok := body["pelicula_datos"]
	if !ok {
		return peliculas.Pelicula{}, nil, peliculas.NewError(peliculas.ErrMissingField, "Falta 'pelicula_datos' en el body.")
	}

	p := peliculas.Pelicula{
		TenantID: tenantID,
		UUID:     peliculas.NewID(),
		Datos:    datos,
	}

	status, err := h.Store.Save(ctx, h.Table, p)
	if err != nil {
		return peliculas.Pelicula{}, nil, err
	}

	return p, &status, nil
}

// logEvent records the raw inbound event before any processing happens.
func (h *CreatePelicula) logEvent(event json.RawMessage) {
	d := zerolog.Dict()
	if json.Valid(event) {
		d = d.RawJSON("evento_entrada", event)
	} else {
		d = d.Str("evento_entrada", string(event))
	}
	h.Log.Info().Dict("log_datos", d).Send()
}

// fail logs the classified error and builds the error response. The body is
// re-parsed here so the log can carry the tenant id and payload presence
// even when the original parse was what failed.
func (h *CreatePelicula) fail(event json.RawMessage, e *peliculas.Error) events.APIGatewayProxyResponse {
	body, err := peliculas.ParseEventBody(event)
	if err != nil {
		body = map[string]any{}
	}
	_, hasDatos := body["pelicula_datos"]

	var tabla any
	if h.Table != "" {
		tabla = h.Table
	}

	d := zerolog.Dict().
		Str("operacion", "crear_pelicula").
		Str("estado", "error").
		Str("mensaje", e.Mensaje).
		Str("tipo_error", string(e.Tipo)).
		Str("traceback", e.Traceback(tracebackLines)).
		Interface("tabla", tabla).
		Dict("entrada_relevante", zerolog.Dict().
			Interface("tenant_id", body["tenant_id"]).
			Bool("tiene_pelicula_datos", hasDatos))
	h.Log.Error().Dict("log_datos", d).Send()

	status := e.Status()
	mensaje := e.Mensaje
	if status == http.StatusInternalServerError {
		mensaje = mensajeInterno
	}

	return respond(status, peliculas.ErrorBody{
		Error: peliculas.ErrorDetail{
			Mensaje:   mensaje,
			TipoError: string(e.Tipo),
		},
	})
}

func respond(status int, body any) events.APIGatewayProxyResponse {
	data, err := json.Marshal(body)
	if err != nil {
		status = http.StatusInternalServerError
		data, _ = json.Marshal(peliculas.ErrorBody{
			Error: peliculas.ErrorDetail{
				Mensaje:   mensajeInterno,
				TipoError: string(peliculas.ErrUnexpected),
			},
		})
	}

	return events.APIGatewayProxyResponse{
		StatusCode: status,
		Headers:    map[string]string{"Content-Type": "application/json"},
		Body:       string(data),
	}
}
