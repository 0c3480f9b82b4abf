package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/schooladmin/internal/client/client"
	"github.com/dmitrijs2005/schooladmin/internal/client/models"
	"github.com/dmitrijs2005/schooladmin/internal/client/paging"
)

var ErrMissingID = errors.New("record id is required")

// RecordService manages one collection of school records.
type RecordService[T models.Record] interface {
	Kind() models.Kind
	List(ctx context.Context, q paging.Query) (paging.Page[T], error)
	Get(ctx context.Context, id string) (T, error)
	Create(ctx context.Context, v T) (T, error)
	Update(ctx context.Context, id string, v T) (T, error)
	Delete(ctx context.Context, id string) error
}

type recordService[T models.Record] struct {
	client    client.Client
	validator *models.Validator
	kind      models.Kind
}

// NewRecordService binds a service to the collection of T.
func NewRecordService[T models.Record](c client.Client, v *models.Validator) RecordService[T] {
	var zero T
	return &recordService[T]{client: c, validator: v, kind: zero.Kind()}
}

func (s *recordService[T]) Kind() models.Kind {
	return s.kind
}

// List loads the whole collection and applies search and paging locally.
func (s *recordService[T]) List(ctx context.Context, q paging.Query) (paging.Page[T], error) {
	var items []T
	if err := s.client.ListRecords(ctx, s.kind, &items); err != nil {
		return paging.Page[T]{}, fmt.Errorf("list %s: %w", s.kind, err)
	}
	return paging.Apply(items, q), nil
}

func (s *recordService[T]) Get(ctx context.Context, id string) (T, error) {
	var out T
	id = strings.TrimSpace(id)
	if id == "" {
		return out, ErrMissingID
	}
	if err := s.client.GetRecord(ctx, s.kind, id, &out); err != nil {
		return out, fmt.Errorf("get %s %s: %w", s.kind, id, err)
	}
	return out, nil
}

// Create validates v and sends it. The stored record comes back with its id.
func (s *recordService[T]) Create(ctx context.Context, v T) (T, error) {
	var out T
	if err := s.validator.Struct(v); err != nil {
		return out, err
	}
	if err := s.client.CreateRecord(ctx, s.kind, v, &out); err != nil {
		return out, fmt.Errorf("create %s: %w", s.kind, err)
	}
	return out, nil
}

func (s *recordService[T]) Update(ctx context.Context, id string, v T) (T, error) {
	var out T
	id = strings.TrimSpace(id)
	if id == "" {
		return out, ErrMissingID
	}
	if err := s.validator.Struct(v); err != nil {
		return out, err
	}
	if err := s.client.UpdateRecord(ctx, s.kind, id, v, &out); err != nil {
		return out, fmt.Errorf("update %s %s: %w", s.kind, id, err)
	}
	return out, nil
}

func (s *recordService[T]) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrMissingID
	}
	if err := s.client.DeleteRecord(ctx, s.kind, id); err != nil {
		return fmt.Errorf("delete %s %s: %w", s.kind, id, err)
	}
	return nil
}
