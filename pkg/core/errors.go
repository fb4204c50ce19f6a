package core

import "fmt"

// ConnectionError means the database could not be reached.
type ConnectionError struct {
	Target string
	Err    error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("cannot connect to %s: %v", e.Target, e.Err)
}

func (e *ConnectionError) Unwrap() error { return e.Err }

// ParseError means user-entered text does not fit the column type.
// It is raised before any statement is built.
type ParseError struct {
	Column string
	Value  string
	Msg    string
}

func (e *ParseError) Error() string {
	if e.Column == "" {
		return e.Msg
	}
	return fmt.Sprintf("%s: %s", e.Column, e.Msg)
}

// QueryError means the database rejected a well-formed statement.
// The driver message is kept verbatim.
type QueryError struct {
	Op    string
	Table string
	Err   error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("%s %s failed: %v", e.Op, e.Table, e.Err)
}

func (e *QueryError) Unwrap() error { return e.Err }

// ValidationError means the caller supplied input the form does not accept,
// such as an unknown column or a value for a locked field.
type ValidationError struct {
	Table  string
	Column string
	Msg    string
}

func (e *ValidationError) Error() string {
	if e.Column == "" {
		return fmt.Sprintf("%s: %s", e.Table, e.Msg)
	}
	return fmt.Sprintf("%s.%s: %s", e.Table, e.Column, e.Msg)
}

// SchemaError means the catalog and the configuration disagree.
type SchemaError struct {
	Table string
	Msg   string
}

func (e *SchemaError) Error() string {
	if e.Table == "" {
		return "schema: " + e.Msg
	}
	return fmt.Sprintf("schema %s: %s", e.Table, e.Msg)
}

// NotFoundError is returned for unknown tables and keys.
type NotFoundError struct {
	Kind string // "table" or "record"
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Kind, e.Name)
}
