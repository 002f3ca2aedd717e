package peliculas

// SuccessBody is the response payload for a created record.
type SuccessBody struct {
	Pelicula Pelicula       `json:"pelicula"`
	Response ResponseStatus `json:"response"`
}

// ResponseStatus carries the status code the store reported for the write,
// null when it did not report one.
type ResponseStatus struct {
	HTTPStatus *int `json:"http_status"`
}

// ErrorBody is the response payload for a failed create.
type ErrorBody struct {
	Error ErrorDetail `json:"error"`
}

type ErrorDetail struct {
	Mensaje   string `json:"mensaje"`
	TipoError string `json:"tipo_error"`
}
