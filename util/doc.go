// Package util provides small generic helpers and runtime type predicates
// used across gofetch.
//
// Typer reports a coarse type tag for any value ("null", "string",
// "number", "array", "object", ...) and Has answers containment questions
// over maps, structs, slices and strings using those tags.
package util
