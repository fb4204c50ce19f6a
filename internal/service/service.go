// Package service exposes the request/response operations the CLI and the
// HTTP API call: list tables, fetch rows, build forms, submit and remove.
package service

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/leapstack-labs/leapcrud/internal/form"
	"github.com/leapstack-labs/leapcrud/internal/registry"
	"github.com/leapstack-labs/leapcrud/internal/repository"
	"github.com/leapstack-labs/leapcrud/internal/schema"
	"github.com/leapstack-labs/leapcrud/pkg/coerce"
	"github.com/leapstack-labs/leapcrud/pkg/core"
)

// TableRef is one entry of the table list.
type TableRef struct {
	Name       string `json:"name" yaml:"name"`
	PrimaryKey string `json:"primary_key" yaml:"primary_key"`
	Title      string `json:"title" yaml:"title"`
}

// Service wires the table registry, schema loader and repository together.
type Service struct {
	tables *registry.TableRegistry
	loader schema.Loader
	repo   *repository.Repository
	logger *slog.Logger
}

// New creates a Service.
func New(tables *registry.TableRegistry, loader schema.Loader, repo *repository.Repository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{tables: tables, loader: loader, repo: repo, logger: logger}
}

// Tables returns the registry, so callers can reload it.
func (s *Service) Tables() *registry.TableRegistry {
	return s.tables
}

// ListTables returns the configured tables in configuration order.
func (s *Service) ListTables() []TableRef {
	all := s.tables.All()
	refs := make([]TableRef, len(all))
	for i, t := range all {
		refs[i] = TableRef{Name: t.Name, PrimaryKey: t.PrimaryKey, Title: registry.Title(t)}
	}
	return refs
}

// GetRows returns a fresh snapshot of the table.
func (s *Service) GetRows(ctx context.Context, table string) (*core.RowSet, error) {
	log := s.opLogger("get_rows", table)
	desc, err := s.describe(ctx, table)
	if err != nil {
		log.Debug("describe failed", slog.Any("error", err))
		return nil, err
	}
	set, err := s.repo.FetchAll(ctx, desc)
	if err != nil {
		log.Debug("fetch failed", slog.Any("error", err))
		return nil, err
	}
	log.Debug("rows fetched", slog.Int("rows", set.Len()))
	return set, nil
}

// GetEditableFields returns the add form (existingRow == nil) or the edit
// form pre-filled from existingRow, which must be in descriptor order.
func (s *Service) GetEditableFields(ctx context.Context, table string, existingRow []any) ([]core.FieldSpec, error) {
	desc, err := s.describe(ctx, table)
	if err != nil {
		return nil, err
	}
	return form.BuildFields(desc, existingRow), nil
}

// FieldsForKey locates the row whose primary key equals pkValue, coerced to
// the key column's type, and returns its edit form.
func (s *Service) FieldsForKey(ctx context.Context, table, pkValue string) ([]core.FieldSpec, error) {
	log := s.opLogger("fields_for_key", table)
	desc, err := s.describe(ctx, table)
	if err != nil {
		return nil, err
	}
	if desc.IsEmpty() {
		return nil, &core.NotFoundError{Kind: "record", Name: pkValue}
	}

	key, err := s.repo.KeyValue(desc, pkValue)
	if err != nil {
		return nil, err
	}
	set, err := s.repo.FetchAll(ctx, desc)
	if err != nil {
		return nil, err
	}
	row, ok := findRow(desc, set, key)
	if !ok {
		log.Debug("record not found", slog.String("key", pkValue))
		return nil, &core.NotFoundError{Kind: "record", Name: pkValue}
	}
	return form.BuildFields(desc, row), nil
}

// Submit persists filled fields: an INSERT, or with isUpdate an UPDATE
// keyed by the primary key field.
func (s *Service) Submit(ctx context.Context, table string, fields []core.FieldSpec, isUpdate bool) error {
	op := "insert"
	if isUpdate {
		op = "update"
	}
	log := s.opLogger(op, table)

	desc, err := s.describe(ctx, table)
	if err != nil {
		return err
	}

	rec := form.ToRecord(fields)
	var n int64
	if isUpdate {
		key, ok := form.PrimaryKeyValue(fields)
		if !ok {
			return &core.ValidationError{Table: desc.Name, Column: desc.PrimaryKey, Msg: "primary key field is required for update"}
		}
		n, err = s.repo.Update(ctx, desc, key, rec)
	} else {
		n, err = s.repo.Insert(ctx, desc, rec)
	}
	if err != nil {
		log.Debug("submit failed", slog.Any("error", err))
		return err
	}
	log.Info("record saved", slog.Int64("rows_affected", n))
	return nil
}

// Add builds the add form, applies values and inserts the row.
func (s *Service) Add(ctx context.Context, table string, values core.Record) error {
	fields, err := s.GetEditableFields(ctx, table, nil)
	if err != nil {
		return err
	}
	if err := form.Apply(table, fields, values); err != nil {
		return err
	}
	return s.Submit(ctx, table, fields, false)
}

// Edit loads the row keyed by pkValue, applies values and updates it.
func (s *Service) Edit(ctx context.Context, table, pkValue string, values core.Record) error {
	fields, err := s.FieldsForKey(ctx, table, pkValue)
	if err != nil {
		return err
	}
	if err := form.Apply(table, fields, values); err != nil {
		return err
	}
	return s.Submit(ctx, table, fields, true)
}

// Remove deletes the row keyed by pkValue. Confirmation belongs to the caller.
func (s *Service) Remove(ctx context.Context, table, pkValue string) error {
	log := s.opLogger("delete", table)
	desc, err := s.describe(ctx, table)
	if err != nil {
		return err
	}
	n, err := s.repo.Delete(ctx, desc, pkValue)
	if err != nil {
		log.Debug("delete failed", slog.Any("error", err))
		return err
	}
	log.Info("record deleted", slog.String("key", pkValue), slog.Int64("rows_affected", n))
	return nil
}

// Describe returns the shape of a configured table.
func (s *Service) Describe(ctx context.Context, table string) (*core.TableDescriptor, error) {
	return s.describe(ctx, table)
}

// describe resolves a caller-supplied name against the registry before
// anything reaches the loader.
func (s *Service) describe(ctx context.Context, table string) (*core.TableDescriptor, error) {
	cfg, ok := s.tables.Resolve(table)
	if !ok {
		return nil, &core.NotFoundError{Kind: "table", Name: table}
	}
	return s.loader.Describe(ctx, cfg.Name, cfg.PrimaryKey)
}

func (s *Service) opLogger(op, table string) *slog.Logger {
	return s.logger.With(
		slog.String("op_id", uuid.NewString()),
		slog.String("op", op),
		slog.String("table", table),
	)
}

// findRow returns the row whose primary key equals key, reordered to
// descriptor column order.
func findRow(desc *core.TableDescriptor, set *core.RowSet, key any) ([]any, bool) {
	pk, _ := desc.PrimaryKeyColumn()
	pkIdx := set.ColumnIndex(pk.Name)
	if pkIdx < 0 {
		return nil, false
	}
	for _, row := range set.Rows {
		if !coerce.Equal(row[pkIdx], key) {
			continue
		}
		aligned := make([]any, len(desc.Columns))
		for i, c := range desc.Columns {
			if j := set.ColumnIndex(c.Name); j >= 0 {
				aligned[i] = row[j]
			}
		}
		return aligned, true
	}
	return nil, false
}
