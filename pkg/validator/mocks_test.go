package validator_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/dmitrymomot/fieldrules/pkg/validator"
)

type mockLookup struct {
	mock.Mock
}

func (m *mockLookup) CountMatching(ctx context.Context, q validator.UniqueQuery) (int64, error) {
	args := m.Called(ctx, q)
	return args.Get(0).(int64), args.Error(1)
}

type mockFiles struct {
	mock.Mock
}

func (m *mockFiles) IsUploadedFile(ctx context.Context, path string) (bool, error) {
	args := m.Called(ctx, path)
	return args.Bool(0), args.Error(1)
}

func (m *mockFiles) Exists(ctx context.Context, path string) (bool, error) {
	args := m.Called(ctx, path)
	return args.Bool(0), args.Error(1)
}

func (m *mockFiles) DetectImageType(ctx context.Context, path string) (string, error) {
	args := m.Called(ctx, path)
	return args.String(0), args.Error(1)
}

func (m *mockFiles) DetectMIMEType(ctx context.Context, path string) (string, error) {
	args := m.Called(ctx, path)
	return args.String(0), args.Error(1)
}

func (m *mockFiles) FileSize(ctx context.Context, path string) (int64, error) {
	args := m.Called(ctx, path)
	return args.Get(0).(int64), args.Error(1)
}
