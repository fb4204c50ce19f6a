// Package core defines the shared language of the LeapCRUD system.
//
// This package contains:
//   - Schema entities (Column, TableDescriptor, SQLType)
//   - Editing entities (FieldSpec, Record, RowSet)
//   - The error taxonomy shared by every layer
//   - Configuration types (TargetConfig, TableConfig)
//
// The Golden Rule: pkg/core imports ONLY stdlib.
// All other packages depend on core, not the reverse.
package core
