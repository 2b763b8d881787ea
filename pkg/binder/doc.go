// Package binder collects HTTP request data into validator inputs.
//
// Collect merges every source a request carries into a single
// validator.Inputs map. Sources are applied in a fixed order and later
// sources overwrite earlier ones for the same key:
//
//  1. path parameters (WithPathParams or WithChiPathParams)
//  2. query string
//  3. request body: urlencoded form, multipart form or a JSON object
//
// Keys with a single value become a string and repeated keys become a
// []string. JSON bodies keep their decoded shape, with integral numbers
// converted to int64 and the rest to float64.
//
// Multipart files are persisted through a file.Uploader and the stored path
// becomes the field value, so file rules such as "file", "image" and
// "mimetypes" can inspect them afterwards:
//
//	storage, _ := file.NewLocalStorage("/var/uploads")
//
//	r := chi.NewRouter()
//	r.Post("/users/{id}/avatar", func(w http.ResponseWriter, req *http.Request) {
//		inputs, err := binder.Collect(req,
//			binder.WithChiPathParams(),
//			binder.WithUploader(storage, "avatars"),
//		)
//		if err != nil {
//			http.Error(w, err.Error(), http.StatusBadRequest)
//			return
//		}
//
//		v, err := validator.Validate(req.Context(), inputs, map[string]string{
//			"id":     "required|numeric",
//			"avatar": "required|file|image|size:512",
//		}, validator.WithFileInspector(storage))
//		// ...
//	})
//
// Errors wrap the package sentinels (ErrUnsupportedMediaType,
// ErrFailedToParseJSON and so on) and can be checked with errors.Is.
package binder
