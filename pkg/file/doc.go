// Package file stores uploaded files and inspects them for the file, image,
// mimetypes and size validation rules.
//
// Two backends are provided. LocalStorage keeps files under a base directory
// and remembers which paths it received as uploads. S3Storage keeps files in a
// bucket and treats every key under its upload prefix as an upload. Both
// implement Uploader and validator.FileInspector:
//
//	store, err := file.NewLocalStorage("/var/uploads", file.WithMaxUploadSize(10<<20))
//	if err != nil {
//	    return err
//	}
//	v := validator.MustNew(validator.WithFileInspector(store))
//
// MIME types are sniffed from content with http.DetectContentType. Image
// formats are read with image.DecodeConfig (png, jpeg, gif) and fall back to
// the sniffed type for webp, bmp and ico.
//
// All local paths are confined to the base directory; paths that escape it
// fail with ErrInvalidPath and are never reported as uploads.
package file
