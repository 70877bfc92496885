// Package errors defines AppError, the structured error returned by gofetch
// when configuration or input validation fails, and the code table used to
// translate transport failures into application errors.
package errors
