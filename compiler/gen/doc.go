// Package gen derives emission contracts for value classes.
//
// A value class is a record declared only by its name, its options and an
// ordered list of properties. The engine turns such a declaration into a
// Contract: the complete, deterministic description of every member a
// renderer has to emit for it.
//
// # Pipeline
//
// Generation of one class runs these steps in order and stops at the first
// error:
//
//	load.Class (declaration)
//	        ↓
//	   validateClass   (name, access levels, unique property names)
//	        ↓
//	   Class.Merge     (explicit options over configured defaults)
//	        ↓
//	   ResolveProperty (modifier normalization, one per property)
//	        ↓
//	   Normalize       (implications, dead options, exclusions)
//	        ↓
//	   buildPlans      (one MemberPlan per emitted member kind)
//	        ↓
//	   Contract
//
// Property errors are reported before option errors. Generation is atomic:
// a failing class yields no contract at all.
//
// # Key Types
//
//   - Property: a resolved property with its null check placement
//   - MemberPlan: the fields, checks and flags of one generated member
//   - Contract: the member plans of a class, keyed by MemberKind
//   - Config: logger, worker count and class defaults
//
// # Concurrency
//
// Classes are independent. GenerateAll generates a batch in parallel and
// returns one Result per class in input order. Properties of a class are
// resolved in parallel too, and results never depend on the worker count.
//
// # Error Handling
//
// The package defines typed errors that work with errors.Is and errors.As:
//
//   - ConfigurationError: a rule violation, see Rule
//   - MalformedInputError: a declaration the engine cannot read
//   - OptionError: an invalid Config option
//
// Non-fatal findings, such as an option that has no effect, are reported as
// Diagnostics on the contract and logged at warn level.
package gen
