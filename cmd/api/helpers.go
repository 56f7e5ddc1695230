package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/cybrarymin/cinema/internal/data"
	"github.com/google/uuid"
	"github.com/julienschmidt/httprouter"
)

type envelope map[string]interface{}

// BackgroundJob runs nfunc in its own goroutine. Panics are logged with PanicErrMsg
// and the job is tracked so shutdown can wait for it.
func (app *application) BackgroundJob(nfunc func(), PanicErrMsg string) {
	app.wg.Add(1)
	go func() {
		defer app.wg.Done()
		defer func() {
			if panicErr := recover(); panicErr != nil {
				pErr := errors.New(fmt.Sprintln(panicErr))
				app.log.Error().Stack().Err(pErr).Msg(PanicErrMsg)
			}
		}()
		nfunc()
	}()
}

func (app *application) readIDParam(r *http.Request) (int64, error) {
	params := httprouter.ParamsFromContext(r.Context())
	id, err := strconv.ParseInt(params.ByName("id"), 10, 64)
	if err != nil || id < 1 {
		return 0, errors.New("invalid id parameter")
	}
	return id, nil
}

func (app *application) readUUIDParam(r *http.Request) (uuid.UUID, error) {
	params := httprouter.ParamsFromContext(r.Context())
	cuuid, err := uuid.Parse(params.ByName("id"))
	if err != nil {
		return uuid.Nil, err
	}
	return cuuid, nil
}

// readString function reads the query strings then extracts the the value of the specified key.
// If the key doesn't exist it will return default value
func (app *application) readString(qs url.Values, key string, defaultValue string) string {
	if value := qs.Get(key); value != "" {
		return value
	}
	return defaultValue
}

// The readCSV() helper reads a string value from the query string and then splits it
// into a slice on the comma character. If no matching key could be found, it returns
// the provided default value.
func (app *application) readCSV(qs url.Values, key string, defaultValue []string) []string {
	csv := qs.Get(key)
	if csv == "" {
		return defaultValue
	}
	return strings.Split(csv, ",")
}

// readIDList parses a comma separated list of positive ids such as genres=1,3.
// Malformed entries are recorded in v.
func (app *application) readIDList(qs url.Values, key string, v *data.Validator) []int64 {
	values := app.readCSV(qs, key, nil)
	if values == nil {
		return nil
	}
	ids := make([]int64, 0, len(values))
	for _, value := range values {
		id, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
		if err != nil || id < 1 {
			v.AddError(key, "must be a comma separated list of positive integers")
			return nil
		}
		ids = append(ids, id)
	}
	return ids
}

// The readInt() helper reads a string value from the query string and converts it to an
// integer before returning. If no matching key could be found it returns the provided
// default value. If the value couldn't be converted to an integer, then we record an
// error message in the provided Validator instance.
func (app *application) readInt(qs url.Values, key string, defaultValue int, v *data.Validator) int {
	numString := qs.Get(key)
	if numString == "" {
		return defaultValue
	}
	num, err := strconv.Atoi(numString)
	if err != nil {
		v.AddError(key, "must be an integer type")
		return defaultValue
	}
	return num
}

func (app *application) writeJson(w http.ResponseWriter, status int, data interface{}, headers http.Header) error {
	nBuffer := bytes.Buffer{}
	err := json.NewEncoder(&nBuffer).Encode(data)
	if err != nil {
		return err
	}
	for key, value := range headers {
		w.Header()[key] = value
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(nBuffer.Bytes())

	return nil
}

func (app *application) readJson(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	// Limit the amount of bytes accepted as post request body
	maxBytes := 1_048_576
	r.Body = http.MaxBytesReader(w, r.Body, int64(maxBytes))
	dec := json.NewDecoder(r.Body)
	// Fields that don't map to dst are rejected instead of being silently dropped.
	dec.DisallowUnknownFields()
	err := dec.Decode(dst)
	if err != nil {
		var syntaxError *json.SyntaxError
		var unmarshalTypeError *json.UnmarshalTypeError
		var invalidUnmarshalError *json.InvalidUnmarshalError
		var maxBytesError *http.MaxBytesError
		switch {
		// This happens if we json syntax errors. having wrong commas or indentation or missing quotes
		case errors.As(err, &syntaxError):
			return fmt.Errorf("body contains badly-formed json (at character %d)", syntaxError.Offset)
		case errors.Is(err, io.ErrUnexpectedEOF):
			return errors.New("body contains badly-formed JSON")

		// This will happen if we try to unmarshal a json value of a type to a struct field that doesn't support that specific type
		case errors.As(err, &unmarshalTypeError):
			if unmarshalTypeError.Field != "" {
				return fmt.Errorf("invalid type used for the key %s", unmarshalTypeError.Field)
			}
			return fmt.Errorf("body contains incorrect JSON type (at character %d)", unmarshalTypeError.Offset)

		case strings.HasPrefix(err.Error(), "json: unknown field"):
			fieldName := strings.TrimPrefix(err.Error(), "json: unknown field ")
			return fmt.Errorf("body contains unknown field %s", fieldName)

		case errors.As(err, &maxBytesError):
			return fmt.Errorf("body must not be larger than %d bytes", maxBytes)

		// Error will happen if we pass invalid type to json.Decode function. we should always pass a pointer otherwise it will give us error
		case errors.As(err, &invalidUnmarshalError):
			panic(err)
		case errors.Is(err, io.EOF):
			return errors.New("json body must not be empty")
		default:
			return err
		}
	}

	// A second Decode only hits io.EOF when the body held exactly one JSON value.
	err = dec.Decode(&struct{}{})
	if err != io.EOF {
		return errors.New("body must only contain a single json value")
	}
	return nil
}

func createKeyValuePairs(m map[string]string) string {
	b := new(bytes.Buffer)
	for key, value := range m {
		fmt.Fprintf(b, "%s=\"%s\"\n", key, value)
	}
	return b.String()
}
