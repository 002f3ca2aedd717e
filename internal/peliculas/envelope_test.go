package peliculas

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEventBody(t *testing.T) {
	t.Run("body as object", func(t *testing.T) {
		body, err := ParseEventBody([]byte(`{"body": {"tenant_id": "t1", "pelicula_datos": {"titulo": "Dune", "anio": 2021}}}`))
		require.NoError(t, err)
		assert.Equal(t, "t1", body["tenant_id"])
		assert.Equal(t, map[string]any{"titulo": "Dune", "anio": float64(2021)}, body["pelicula_datos"])
	})

	t.Run("body as JSON string", func(t *testing.T) {
		body, err := ParseEventBody([]byte(`{"body": "{\"tenant_id\": \"t2\", \"pelicula_datos\": 7}"}`))
		require.NoError(t, err)
		assert.Equal(t, "t2", body["tenant_id"])
		assert.Equal(t, float64(7), body["pelicula_datos"])
	})

	t.Run("body takes priority over top-level fields", func(t *testing.T) {
		body, err := ParseEventBody([]byte(`{"body": "{\"tenant_id\": \"inner\"}", "tenant_id": "outer"}`))
		require.NoError(t, err)
		assert.Equal(t, "inner", body["tenant_id"])
	})

	t.Run("top-level fallback", func(t *testing.T) {
		body, err := ParseEventBody([]byte(`{"tenant_id": "t3", "pelicula_datos": null}`))
		require.NoError(t, err)
		assert.Equal(t, "t3", body["tenant_id"])

		_, ok := body["pelicula_datos"]
		assert.True(t, ok)
	})

	t.Run("blank string bodies mean an empty object", func(t *testing.T) {
		for _, raw := range []string{`{"body": ""}`, `{"body": "   "}`, `{"body": "\n\t "}`} {
			body, err := ParseEventBody([]byte(raw))
			require.NoError(t, err, raw)
			assert.Empty(t, body, raw)
		}
	})

	t.Run("non-object events resolve to an empty body", func(t *testing.T) {
		for _, raw := range []string{`[1, 2]`, `"hola"`, `42`, `null`, ``, `no es json`} {
			body, err := ParseEventBody([]byte(raw))
			require.NoError(t, err, raw)
			require.NotNil(t, body, raw)
			assert.Empty(t, body, raw)
		}
	})

	t.Run("body of the wrong type", func(t *testing.T) {
		for _, raw := range []string{`{"body": null}`, `{"body": 5}`, `{"body": [1]}`, `{"body": true}`} {
			_, err := ParseEventBody([]byte(raw))

			var e *Error
			require.ErrorAs(t, err, &e, raw)
			assert.Equal(t, ErrValidation, e.Tipo, raw)
			assert.Equal(t, "El campo 'body' debe ser dict o string JSON.", e.Mensaje, raw)
		}
	})

	t.Run("malformed string body", func(t *testing.T) {
		_, err := ParseEventBody([]byte(`{"body": "{esto no es json"}`))

		var e *Error
		require.ErrorAs(t, err, &e)
		assert.Equal(t, ErrValidation, e.Tipo)
		assert.NotEmpty(t, e.Mensaje)
	})

	t.Run("string body decoding to a non-object", func(t *testing.T) {
		for _, raw := range []string{`{"body": "[1, 2]"}`, `{"body": "42"}`, `{"body": "null"}`, `{"body": "\"hola\""}`} {
			_, err := ParseEventBody([]byte(raw))

			var e *Error
			require.ErrorAs(t, err, &e, raw)
			assert.Equal(t, ErrValidation, e.Tipo, raw)
			assert.Equal(t, "El campo 'body' debe ser dict o string JSON.", e.Mensaje, raw)
		}
	})
}
