package mocks

import (
	"context"

	"zotcurator/core/zotero"

	"github.com/stretchr/testify/mock"
)

// Store is a mock implementation of zotero.Store
type Store struct {
	mock.Mock
}

func (m *Store) ListCollections(ctx context.Context) ([]zotero.Collection, error) {
	args := m.Called(ctx)
	if cols, ok := args.Get(0).([]zotero.Collection); ok {
		return cols, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Store) CollectionItemKeys(ctx context.Context, collectionKey string) ([]string, error) {
	args := m.Called(ctx, collectionKey)
	if keys, ok := args.Get(0).([]string); ok {
		return keys, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Store) CreateCollection(ctx context.Context, parentKey, name string) (zotero.Collection, error) {
	args := m.Called(ctx, parentKey, name)
	return args.Get(0).(zotero.Collection), args.Error(1)
}

func (m *Store) AddItems(ctx context.Context, collectionKey string, itemKeys []string) (int, error) {
	args := m.Called(ctx, collectionKey, itemKeys)
	return args.Int(0), args.Error(1)
}

func (m *Store) RemoveItems(ctx context.Context, collectionKey string, itemKeys []string) (int, error) {
	args := m.Called(ctx, collectionKey, itemKeys)
	return args.Int(0), args.Error(1)
}
