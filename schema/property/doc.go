// Package property provides fluent builders for declaring the properties of
// a valobj value class.
//
// Every property has a name and an opaque type token. The engine never looks
// inside the token; it is handed to the renderer as is:
//
//	property.Of("x", "int")
//	property.Of("tags", "[]string")
//	property.GoType("created", time.Time{}) // token "time.Time", package "time"
//
// # Modifiers
//
//	property.Of("name", "string").
//	    NotNull().                    // not-null annotation, implies a Pre check
//	    PostNullCheck().              // explicit placement wins over the implication
//	    PreConstructorParam("/* x */") // verbatim text before the parameter
//
//	property.Of("area", "float64").Computed() // excluded from every member
//
// Declaring both PreNullCheck and PostNullCheck is not resolved here; the
// engine rejects it with a ConflictingNullCheckPlacement error.
package property
