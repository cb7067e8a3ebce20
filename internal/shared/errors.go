package shared

import "fmt"

var (
	// Database errors
	ErrConnection = fmt.Errorf("database connection failed")
	ErrQuery      = fmt.Errorf("query rejected")
	ErrNotFound   = fmt.Errorf("not found")

	// Configuration errors
	ErrMissingConfig = fmt.Errorf("configuration not found")
	ErrInvalidConfig = fmt.Errorf("invalid configuration")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
)
