// Package core provides the domain models and interfaces for the
// recurring-tasks package.
//
// This package includes:
//   - Rule, the recurrence rule union with pure date matching
//   - FixedEvent, MacroTask, and LifeTemplate, the user-authored
//     recurrence templates
//   - Task and Draft, the materialized instance entity and its
//     pre-persistence form
//   - Marker helpers linking an instance to its template and date
//   - The TaskStore persistence interface
//
// Most users should import the root package
// github.com/jdziat/recurring-tasks which re-exports these types.
package core
