package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/leapstack-labs/leapcrud/internal/service"
	"github.com/leapstack-labs/leapcrud/pkg/core"
)

// Service is the set of operations the API serves.
type Service interface {
	ListTables() []service.TableRef
	GetRows(ctx context.Context, table string) (*core.RowSet, error)
	GetEditableFields(ctx context.Context, table string, existingRow []any) ([]core.FieldSpec, error)
	FieldsForKey(ctx context.Context, table, pkValue string) ([]core.FieldSpec, error)
	Add(ctx context.Context, table string, values core.Record) error
	Edit(ctx context.Context, table, pkValue string, values core.Record) error
	Remove(ctx context.Context, table, pkValue string) error
}

// Handlers provides HTTP handlers for the table endpoints.
type Handlers struct {
	svc Service
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(svc Service) *Handlers {
	return &Handlers{svc: svc}
}

type tablesResponse struct {
	Tables []service.TableRef `json:"tables"`
}

type rowsResponse struct {
	Columns []string `json:"columns"`
	Rows    [][]any  `json:"rows"`
}

// Field is the JSON shape of one form field.
type Field struct {
	Name          string  `json:"name"`
	Type          string  `json:"type"`
	DataType      string  `json:"data_type,omitempty"`
	Nullable      bool    `json:"nullable"`
	PrimaryKey    bool    `json:"primary_key"`
	AutoGenerated bool    `json:"auto_generated"`
	Editable      bool    `json:"editable"`
	Value         *string `json:"value"`
}

type fieldsResponse struct {
	Fields []Field `json:"fields"`
}

// RecordRequest is the body of create and update calls.
// A null value stores SQL NULL.
type RecordRequest struct {
	Values map[string]*string `json:"values"`
}

type statusResponse struct {
	Status string `json:"status"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// ListTables returns the configured tables.
func (h *Handlers) ListTables(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, tablesResponse{Tables: h.svc.ListTables()})
}

// Rows returns a snapshot of a table.
func (h *Handlers) Rows(w http.ResponseWriter, r *http.Request) {
	set, err := h.svc.GetRows(r.Context(), chi.URLParam(r, "table"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rowsResponse{Columns: set.Columns, Rows: set.Rows})
}

// Fields returns the add form, or the edit form when ?key= is given.
func (h *Handlers) Fields(w http.ResponseWriter, r *http.Request) {
	table := chi.URLParam(r, "table")

	var (
		fields []core.FieldSpec
		err    error
	)
	if key := r.URL.Query().Get("key"); key != "" {
		fields, err = h.svc.FieldsForKey(r.Context(), table, key)
	} else {
		fields, err = h.svc.GetEditableFields(r.Context(), table, nil)
	}
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, fieldsResponse{Fields: toFields(fields)})
}

// Create inserts a record.
func (h *Handlers) Create(w http.ResponseWriter, r *http.Request) {
	values, ok := decodeRecord(w, r)
	if !ok {
		return
	}
	if err := h.svc.Add(r.Context(), chi.URLParam(r, "table"), values); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, statusResponse{Status: "created"})
}

// Update rewrites the record identified by {key}.
func (h *Handlers) Update(w http.ResponseWriter, r *http.Request) {
	values, ok := decodeRecord(w, r)
	if !ok {
		return
	}
	if err := h.svc.Edit(r.Context(), chi.URLParam(r, "table"), chi.URLParam(r, "key"), values); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, statusResponse{Status: "updated"})
}

// Delete removes the record identified by {key}.
func (h *Handlers) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Remove(r.Context(), chi.URLParam(r, "table"), chi.URLParam(r, "key")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func decodeRecord(w http.ResponseWriter, r *http.Request) (core.Record, bool) {
	var req RecordRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body: " + err.Error()})
		return nil, false
	}
	return core.Record(req.Values), true
}

func toFields(specs []core.FieldSpec) []Field {
	out := make([]Field, len(specs))
	for i, f := range specs {
		out[i] = Field{
			Name:          f.Column.Name,
			Type:          f.Column.Type.String(),
			DataType:      f.Column.DataType,
			Nullable:      f.Column.Nullable,
			PrimaryKey:    f.Column.PrimaryKey,
			AutoGenerated: f.Column.AutoGenerated,
			Editable:      f.Editable,
			Value:         f.Value,
		}
	}
	return out
}

// StatusFor maps an error onto its HTTP status.
func StatusFor(err error) int {
	var (
		parseErr      *core.ParseError
		validationErr *core.ValidationError
		notFoundErr   *core.NotFoundError
		queryErr      *core.QueryError
		connErr       *core.ConnectionError
	)
	switch {
	case errors.As(err, &parseErr), errors.As(err, &validationErr):
		return http.StatusBadRequest
	case errors.As(err, &notFoundErr):
		return http.StatusNotFound
	case errors.As(err, &queryErr):
		return http.StatusUnprocessableEntity
	case errors.As(err, &connErr):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, StatusFor(err), errorResponse{Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
