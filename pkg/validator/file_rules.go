package validator

import (
	"context"
	"slices"
)

func fileInspector(in Input) (FileInspector, error) {
	if in.Env.Files == nil {
		return nil, misconfigured(in.Rule, ErrMissingCollaborator, "The %s validation rule requires a file inspector.", in.Rule)
	}
	return in.Env.Files, nil
}

func filePath(in Input) (string, bool) {
	path, ok := in.Value.(string)
	return path, ok && path != ""
}

// existingFile resolves the inspector and the path of a file that is present.
// Missing files and paths the inspector refuses to resolve report ok=false.
func existingFile(ctx context.Context, in Input) (files FileInspector, path string, ok bool, err error) {
	files, err = fileInspector(in)
	if err != nil {
		return nil, "", false, err
	}
	path, ok = filePath(in)
	if !ok {
		return nil, "", false, nil
	}
	ok, err = files.Exists(ctx, path)
	if err != nil || !ok {
		return nil, "", false, err
	}
	return files, path, true, nil
}

// checkFile passes for a path that was received as an upload and still exists.
func checkFile(ctx context.Context, in Input) (bool, error) {
	files, err := fileInspector(in)
	if err != nil {
		return false, err
	}
	path, ok := filePath(in)
	if !ok {
		return false, nil
	}

	uploaded, err := files.IsUploadedFile(ctx, path)
	if err != nil || !uploaded {
		return false, err
	}
	return files.Exists(ctx, path)
}

func checkImage(ctx context.Context, in Input) (bool, error) {
	files, path, ok, err := existingFile(ctx, in)
	if err != nil || !ok {
		return false, err
	}

	kind, err := files.DetectImageType(ctx, path)
	if err != nil {
		return false, err
	}
	return kind != "", nil
}

// checkMIMETypes passes when the detected MIME type is one of the parameters.
func checkMIMETypes(ctx context.Context, in Input) (bool, error) {
	files, path, ok, err := existingFile(ctx, in)
	if err != nil || !ok {
		return false, err
	}

	mimeType, err := files.DetectMIMEType(ctx, path)
	if err != nil {
		return false, err
	}
	return slices.Contains(in.Params, mimeType), nil
}

// checkSize passes when the file is at most the given number of bytes.
func checkSize(ctx context.Context, in Input) (bool, error) {
	limit, err := paramInt(in, 0)
	if err != nil {
		return false, err
	}
	files, path, ok, err := existingFile(ctx, in)
	if err != nil || !ok {
		return false, err
	}

	size, err := files.FileSize(ctx, path)
	if err != nil {
		return false, err
	}
	return size <= int64(limit), nil
}
