package validator

import "context"

// UniqueQuery describes the rows the unique rule must not find.
// ExceptColumn/ExceptValue and IDColumn/IDValue are optional exclusions;
// empty column names mean "no exclusion".
type UniqueQuery struct {
	Table        string
	Column       string
	Value        any
	ExceptColumn string
	ExceptValue  any
	IDColumn     string
	IDValue      any
}

// UniqueLookup counts stored records matching a UniqueQuery.
type UniqueLookup interface {
	CountMatching(ctx context.Context, q UniqueQuery) (int64, error)
}

// UniqueLookupFunc adapts a function to UniqueLookup.
type UniqueLookupFunc func(ctx context.Context, q UniqueQuery) (int64, error)

func (f UniqueLookupFunc) CountMatching(ctx context.Context, q UniqueQuery) (int64, error) {
	return f(ctx, q)
}

// FileInspector answers questions about uploaded files referenced by path.
// DetectImageType returns an empty string when the file is not an image.
type FileInspector interface {
	IsUploadedFile(ctx context.Context, path string) (bool, error)
	Exists(ctx context.Context, path string) (bool, error)
	DetectImageType(ctx context.Context, path string) (string, error)
	DetectMIMEType(ctx context.Context, path string) (string, error)
	FileSize(ctx context.Context, path string) (int64, error)
}
