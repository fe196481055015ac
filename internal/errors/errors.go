// internal/errors/errors.go
package appErrors

import "fmt"

// ErrNotFound is returned when a requested record does not exist.
type ErrNotFound struct {
	Resource string
	ID       int
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("%s with ID %d not found", e.Resource, e.ID)
}

// Helper constructors
func NewPostNotFound(id int) error  { return &ErrNotFound{Resource: "post", ID: id} }
func NewBrandNotFound(id int) error { return &ErrNotFound{Resource: "brand", ID: id} }
func NewUserNotFound(id int) error  { return &ErrNotFound{Resource: "user", ID: id} }

// StorageError wraps a failed query or update against the database.
// The scheduler treats it as "no items this cycle" and keeps running.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

func NewStorageError(op string, err error) error {
	return &StorageError{Op: op, Err: err}
}

// TransportError marks a network-level failure talking to the delivery
// channel (DNS, connection refused, timeout). Ordinary API rejections are
// plain errors; both leave the post eligible for the next cycle.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport: %v", e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

func NewTransportError(err error) error {
	return &TransportError{Err: err}
}

// ConfigError reports missing required configuration. It is surfaced once
// at startup, never per cycle.
type ConfigError struct {
	Key string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config: %s is not set", e.Key)
}

func NewConfigError(key string) error {
	return &ConfigError{Key: key}
}
