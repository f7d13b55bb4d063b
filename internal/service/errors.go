package service

import (
	"errors"
	"fmt"

	"github.com/pageza/mealplanner/backend/internal/repository"
)

var (
	// ErrNotFound is the repository sentinel, re-exported so callers need only this package.
	ErrNotFound = repository.ErrNotFound

	ErrDuplicateName      = errors.New("a recipe with this name already exists")
	ErrInvalidCredentials = errors.New("invalid username and/or password")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrInvalidToken       = errors.New("invalid token")
)

// ValidationError reports a rejected input field. Nothing is written when it is returned.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// DuplicateNameError is returned when a recipe name is already in use.
type DuplicateNameError struct {
	Name string
}

func (e *DuplicateNameError) Error() string {
	return fmt.Sprintf("a recipe named %q already exists", e.Name)
}

func (e *DuplicateNameError) Is(target error) bool {
	return target == ErrDuplicateName
}

// NotFoundError names the missing resource.
type NotFoundError struct {
	Resource string
	Key      string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Resource, e.Key)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

func notFound(resource, key string, err error) error {
	if errors.Is(err, ErrNotFound) {
		return &NotFoundError{Resource: resource, Key: key}
	}
	return err
}
