// Package schema provides the option vocabulary for valobj value classes.
//
// A value class is configured with a set of independent generation toggles,
// two access levels (constructor and builder) and an optional piece of
// pre-constructor text. Properties are declared with the builders in the
// [property] subpackage.
//
// # Toggles
//
// Every toggle is independent and defaults to off. The "Exclude" toggles
// remove a member that is generated by default, the "Include" and "Allow"
// toggles opt into behavior that is off by default:
//
//	opts := schema.NewOptions(
//	    schema.ExcludeWith,
//	    schema.IncludeOperatorEquals,
//	)
//	opts.Has(schema.ExcludeWith) // true
//
// Options is a set, not a bitmask. Adding a new toggle never shifts the
// meaning of the existing ones.
//
// # Access Levels
//
// Constructor and builder access levels are configured independently:
//
//	schema.Public
//	schema.Protected
//	schema.Internal
//	schema.Private
//	schema.ProtectedInternal
//
// Both default to [Public].
//
// # Defaults
//
// [Defaults] returns a copy of the default table. The table itself is never
// mutated after initialization, so it can be read from any goroutine.
package schema
