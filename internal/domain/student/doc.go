// Package student contains the student record model of the registry.
//
// This is the core of the domain. The package defines:
//
//   - Entity: Student, with the derived Average
//   - Validation: Validate, ValidateID, ValidationResult, ValidationError
//   - Repository contract: Gateway, implemented in infrastructure/persistence
//
// # Architectural principles
//
//  1. Zero external dependencies - only the Go standard library
//  2. Dependency inversion - the package declares the persistence contract,
//     infrastructure implements it
//
// # Validation
//
// Validate never stops at the first broken rule. Every violation is collected
// in a fixed order (id, name, age, department, marks) so callers can show all
// problems at once:
//
//	res := student.Validate(s)
//	if !res.Valid() {
//	    fmt.Println(res.Message()) // "Student ID must be positive.; Age must be between 15 and 100."
//	}
//
// Mutating operations return the same result wrapped in a *ValidationError,
// which matches shared.ErrValidation with errors.Is:
//
//	if ve, ok := student.ValidationErrorFrom(err); ok {
//	    for _, v := range ve.Result.Violations {
//	        fmt.Println(v.Field, v.Code)
//	    }
//	}
package student
