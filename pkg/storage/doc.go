// Package storage provides storage implementations for task and
// template persistence.
//
// This package includes:
//   - GormStorage: a GORM-based implementation backing both the task
//     store consumed by the engine and the opaque settings blob store
//     consumed by the template accessor
//
// The TaskStore interface is defined in pkg/core and the blob KV
// interface in pkg/templates; any custom backend can implement them.
//
// Most users should import the root package
// github.com/jdziat/recurring-tasks which provides NewGormStorage().
package storage
