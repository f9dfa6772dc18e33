package domain

import "errors"

// StoreError is an error surfaced by the data store, carrying the backend's
// error code (Postgres SQLSTATE or PostgREST code) when one exists.
type StoreError struct {
	Code    string
	Message string
}

func (e *StoreError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Code
}

// Classify maps a backend error to the user-facing message shown in the
// admin panel. Unknown codes pass the backend message through.
func Classify(err error) string {
	if err == nil {
		return ""
	}

	var storeErr *StoreError
	if !errors.As(err, &storeErr) {
		if msg := err.Error(); msg != "" {
			return msg
		}
		return "An unknown error occurred. Please try again."
	}

	switch storeErr.Code {
	case "PGRST116":
		return "Access denied. Admin privileges are required for this action."
	case "23505":
		return "A record with these details already exists."
	case "23503":
		return "This record references another record that does not exist."
	case "23502":
		return "A required field is missing."
	case "23514":
		return "One of the fields has an invalid format."
	case "PGRST301", "PGRST302":
		return "Your session has expired. Please sign in again."
	case "":
		if storeErr.Message != "" {
			return storeErr.Message
		}
		return "An unknown error occurred. Please try again."
	default:
		if storeErr.Message != "" {
			return storeErr.Message
		}
		return "An unknown error occurred. Please try again."
	}
}
