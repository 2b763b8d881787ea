package binder

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/url"
	"slices"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/fieldrules/pkg/file"
	"github.com/dmitrymomot/fieldrules/pkg/validator"
)

const (
	// DefaultMaxMemory is the default maximum memory used for parsing multipart forms (10MB).
	DefaultMaxMemory = 10 << 20
	// DefaultMaxJSONSize is the default maximum size for JSON request bodies (1MB).
	DefaultMaxJSONSize = 1 << 20
)

// PathExtractor returns the value of a named path parameter.
// chi.URLParam satisfies it.
type PathExtractor func(r *http.Request, name string) string

type options struct {
	extractor   PathExtractor
	pathNames   []string
	chiParams   bool
	uploader    file.Uploader
	uploadDir   string
	maxMemory   int64
	maxJSONSize int64
}

// Option configures Collect.
type Option func(*options)

// WithPathParams reads the named path parameters through extractor.
// Empty values are skipped.
func WithPathParams(extractor PathExtractor, names ...string) Option {
	return func(o *options) {
		o.extractor = extractor
		o.pathNames = append(o.pathNames, names...)
	}
}

// WithChiPathParams reads every URL parameter chi matched for the request.
func WithChiPathParams() Option {
	return func(o *options) {
		o.chiParams = true
	}
}

// WithUploader persists multipart files under dir and stores the resulting
// path as the field value.
func WithUploader(u file.Uploader, dir string) Option {
	return func(o *options) {
		o.uploader = u
		o.uploadDir = dir
	}
}

// WithMaxMemory sets the memory limit for multipart parsing.
func WithMaxMemory(n int64) Option {
	return func(o *options) {
		if n > 0 {
			o.maxMemory = n
		}
	}
}

// WithMaxJSONSize limits the accepted JSON body size.
func WithMaxJSONSize(n int64) Option {
	return func(o *options) {
		if n > 0 {
			o.maxJSONSize = n
		}
	}
}

// Collect gathers path, query and body data of r into validator inputs.
func Collect(r *http.Request, opts ...Option) (validator.Inputs, error) {
	o := options{maxMemory: DefaultMaxMemory, maxJSONSize: DefaultMaxJSONSize}
	for _, opt := range opts {
		opt(&o)
	}

	if err := r.Context().Err(); err != nil {
		return nil, err
	}

	inputs := validator.Inputs{}
	collectPath(r, o, inputs)

	query, err := url.ParseQuery(r.URL.RawQuery)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedToParseQuery, err)
	}
	mergeValues(inputs, query)

	if err := collectBody(r, o, inputs); err != nil {
		return nil, err
	}
	return inputs, nil
}

func collectPath(r *http.Request, o options, inputs validator.Inputs) {
	if o.chiParams {
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			for i, key := range rctx.URLParams.Keys {
				// Wildcard segments are reported as "*".
				if key == "*" || i >= len(rctx.URLParams.Values) {
					continue
				}
				if val := rctx.URLParams.Values[i]; val != "" {
					inputs[key] = val
				}
			}
		}
	}

	if o.extractor == nil {
		return
	}
	for _, name := range o.pathNames {
		if val := o.extractor(r, name); val != "" {
			inputs[name] = val
		}
	}
}

func collectBody(r *http.Request, o options, inputs validator.Inputs) error {
	if r.Body == nil || r.Body == http.NoBody {
		return nil
	}
	contentType := r.Header.Get("Content-Type")
	if contentType == "" {
		if r.ContentLength > 0 {
			return fmt.Errorf("%w: missing content-type header", ErrUnsupportedMediaType)
		}
		return nil
	}

	mediaType, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnsupportedMediaType, err)
	}

	switch mediaType {
	case "application/x-www-form-urlencoded":
		if err := r.ParseForm(); err != nil {
			return fmt.Errorf("%w: %v", ErrFailedToParseForm, err)
		}
		mergeValues(inputs, r.PostForm)
		return nil
	case "multipart/form-data":
		if params["boundary"] == "" {
			return fmt.Errorf("%w: missing multipart boundary", ErrFailedToParseForm)
		}
		if err := r.ParseMultipartForm(o.maxMemory); err != nil {
			return fmt.Errorf("%w: %v", ErrFailedToParseForm, err)
		}
		mergeValues(inputs, r.MultipartForm.Value)
		return saveFiles(r, o, inputs, r.MultipartForm.File)
	case "application/json":
		return collectJSON(r, o, inputs)
	default:
		return fmt.Errorf("%w: got %s, expected application/json, application/x-www-form-urlencoded or multipart/form-data", ErrUnsupportedMediaType, mediaType)
	}
}

func saveFiles(r *http.Request, o options, inputs validator.Inputs, files map[string][]*multipart.FileHeader) error {
	if len(files) == 0 {
		return nil
	}
	if o.uploader == nil {
		return ErrMissingUploader
	}

	keys := make([]string, 0, len(files))
	for key := range files {
		keys = append(keys, key)
	}
	slices.Sort(keys)

	for _, key := range keys {
		paths := make([]string, 0, len(files[key]))
		for _, fh := range files[key] {
			up, err := o.uploader.Save(r.Context(), fh, o.uploadDir)
			if err != nil {
				return fmt.Errorf("%w: field %q: %w", ErrFailedToSaveUpload, key, err)
			}
			paths = append(paths, up.Path)
		}
		switch len(paths) {
		case 0:
		case 1:
			inputs[key] = paths[0]
		default:
			inputs[key] = paths
		}
	}
	return nil
}

func collectJSON(r *http.Request, o options, inputs validator.Inputs) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, o.maxJSONSize+1))
	if err != nil {
		return fmt.Errorf("%w: failed to read request body: %v", ErrFailedToParseJSON, err)
	}
	if int64(len(body)) > o.maxJSONSize {
		return fmt.Errorf("%w: request body exceeds %d bytes", ErrFailedToParseJSON, o.maxJSONSize)
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var payload map[string]any
	if err := dec.Decode(&payload); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return fmt.Errorf("%w: body must be a JSON object", ErrFailedToParseJSON)
		}
		return fmt.Errorf("%w: %v", ErrFailedToParseJSON, err)
	}
	if dec.More() {
		return fmt.Errorf("%w: unexpected data after JSON object", ErrFailedToParseJSON)
	}

	for key, val := range payload {
		inputs[key] = normalizeJSON(val)
	}
	return nil
}

// normalizeJSON replaces json.Number values with int64 when integral and
// float64 otherwise.
func normalizeJSON(v any) any {
	switch val := v.(type) {
	case json.Number:
		if n, err := val.Int64(); err == nil {
			return n
		}
		if f, err := val.Float64(); err == nil {
			return f
		}
		return val.String()
	case []any:
		for i := range val {
			val[i] = normalizeJSON(val[i])
		}
		return val
	case map[string]any:
		for k := range val {
			val[k] = normalizeJSON(val[k])
		}
		return val
	default:
		return v
	}
}

func mergeValues(inputs validator.Inputs, values map[string][]string) {
	for key, vals := range values {
		switch len(vals) {
		case 0:
		case 1:
			inputs[key] = vals[0]
		default:
			inputs[key] = slices.Clone(vals)
		}
	}
}
