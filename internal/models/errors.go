package models

import "fmt"

// ErrorType represents different categories of errors
type ErrorType int

const (
	ErrScan ErrorType = iota
	ErrHeaderRead
	ErrStage
	ErrIndex
	ErrSign
	ErrInvalidConfig
)

// String returns the string representation of ErrorType
func (e ErrorType) String() string {
	switch e {
	case ErrScan:
		return "Scan"
	case ErrHeaderRead:
		return "HeaderRead"
	case ErrStage:
		return "Stage"
	case ErrIndex:
		return "Index"
	case ErrSign:
		return "Sign"
	case ErrInvalidConfig:
		return "InvalidConfig"
	default:
		return "Unknown"
	}
}

// RepoError represents an error during an update-repository operation
type RepoError struct {
	Type ErrorType
	Path string
	Err  error
}

// Error implements the error interface
func (e *RepoError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Path, e.Err)
	}
	return fmt.Sprintf("[%s] %v", e.Type, e.Err)
}

// Unwrap returns the wrapped error
func (e *RepoError) Unwrap() error {
	return e.Err
}
