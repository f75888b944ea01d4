package app

import "fmt"

// DomainError is an error with a fixed HTTP mapping. Service methods return
// one whenever the failure is part of the API contract (validation, conflicts,
// token states); everything else maps to SERVER_ERROR in mapError.
type DomainError struct {
	Status  int
	Code    string
	Message string
	Details any
}

func (e *DomainError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func domainError(status int, code, message string, details any) *DomainError {
	return &DomainError{
		Status:  status,
		Code:    code,
		Message: message,
		Details: details,
	}
}
