// Package parser converts text into typed values and resolves which conversion
// applies to a given type.
//
// # Core Interfaces
//
//   - Parser[T]: converts a string to a T
//   - Resolver: maps a reflect.Type to a Parser for that type, or reports that none applies
//   - Chain: the ordered, first-match Resolver used by Default
//
// # Resolution Order
//
// Default resolves the following types, each by exact type identity:
//
//  1. bool, the signed and unsigned integer kinds, float32, float64 and Char,
//     using the strconv conversion for each
//  2. pointers to the same types, where "" and "null" (any letter case) yield nil
//  3. string, returned as-is
//  4. time.Duration and *time.Duration
//
// Rules never match structurally, so two rules can never both apply to one
// type. Extend places additional rules ahead of an existing Resolver.
//
// Parsers do not trim whitespace. Malformed input is reported as *ErrFormat,
// which carries the offending text.
package parser
