package errors

import (
	"fmt"
	"strings"
)

type MissingEnvErr struct {
	EnvMap map[string]string
}

func (e MissingEnvErr) Error() string {
	// Get keys of missing environment variables
	missingKeys := make([]string, 0, len(e.EnvMap))
	for key, val := range e.EnvMap {
		if val == "" {
			missingKeys = append(missingKeys, key)
		}
	}

	if len(missingKeys) > 0 {
		allKeys := strings.Join(missingKeys, ", ")
		return fmt.Sprintf("insufficient env variables: [%s]", allKeys)
	}
	return "insufficient env variables"
}

// InvalidRequestErr indicates a request is missing a required field or
// carries a malformed value.
type InvalidRequestErr struct {
	Field  string
	Reason string
}

func (e InvalidRequestErr) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("invalid request: %s %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("invalid request: missing %s", e.Field)
}

// NotFoundErr indicates a referenced entity does not exist in the store.
type NotFoundErr struct {
	Entity string
}

func (e NotFoundErr) Error() string {
	return fmt.Sprintf("%s not found", e.Entity)
}

// UpstreamErr indicates an external service returned a non-success status
// or an unusable body.
type UpstreamErr struct {
	Service string
	Detail  string
}

func (e UpstreamErr) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s request failed: %s", e.Service, e.Detail)
	}
	return fmt.Sprintf("%s request failed", e.Service)
}
