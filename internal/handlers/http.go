package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/avelasco/peliculas/internal/otel"
	"github.com/avelasco/peliculas/internal/peliculas"
	"github.com/rs/zerolog"
	"github.com/segmentio/ksuid"
	"go.opentelemetry.io/otel/trace"
)

// Getter reads one pelicula back out of a named table.
type Getter interface {
	Get(ctx context.Context, table, tenantID, id string) (*peliculas.Pelicula, error)
}

// Pelicula serves the HTTP surface of the service: POST runs a create
// through the same handler the Lambda runs, with the request body as the
// invocation envelope; GET reads one record back by tenant and id.
type Pelicula struct {
	Create *CreatePelicula
	Getter Getter
	Log    zerolog.Logger
}

func (p *Pelicula) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	span := trace.SpanFromContext(r.Context())

	d := zerolog.Dict().
		Str("request_id", ksuid.New().String()).
		Str("trace_id", otel.XRayTraceID(span)).
		Str("metodo", r.Method).
		Str("ruta", r.URL.String())
	p.Log.Info().Dict("log_datos", d).Send()

	switch r.Method {
	case http.MethodGet:
		p.getPelicula(w, r)
	case http.MethodPost:
		p.createPelicula(w, r)
	default:
		http.NotFound(w, r)
	}
}

func (p *Pelicula) createPelicula(w http.ResponseWriter, r *http.Request) {
	event, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "leer body", http.StatusBadRequest)
		return
	}

	resp, _ := p.Create.Handle(r.Context(), json.RawMessage(event))

	for k, v := range resp.Headers {
		w.Header().Set(k, v)
	}
	w.WriteHeader(resp.StatusCode)
	if _, err := io.WriteString(w, resp.Body); err != nil {
		d := zerolog.Dict().
			Str("operacion", "crear_pelicula").
			Str("mensaje", err.Error())
		p.Log.Error().Dict("log_datos", d).Send()
	}
}

func (p *Pelicula) getPelicula(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	q := r.URL.Query()
	tenantID, id := q.Get("tenant_id"), q.Get("uuid")
	if tenantID == "" || id == "" {
		http.Error(w, "tenant_id y uuid son obligatorios", http.StatusBadRequest)
		return
	}

	d := zerolog.Dict().
		Str("operacion", "obtener_pelicula").
		Str("tenant_id", tenantID).
		Str("uuid", id)
	p.Log.Info().Dict("log_datos", d).Send()

	pel, err := p.Getter.Get(ctx, p.Create.Table, tenantID, id)
	switch {
	case errors.Is(err, peliculas.ErrNotFound):
		http.NotFound(w, r)
		return
	case err != nil:
		e := peliculas.Classify(err)
		http.Error(w, e.Mensaje, e.Status())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(pel); err != nil {
		d := zerolog.Dict().
			Str("operacion", "obtener_pelicula").
			Str("mensaje", err.Error())
		p.Log.Error().Dict("log_datos", d).Send()
	}
}
