package clamp

import (
	"fmt"
	"os"
	"regexp"
)

// ordered covers the kinds range validation makes sense for.
type ordered interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64 | ~string
}

// Validation helper functions

// ValidateFile creates a validation function for file paths
func ValidateFile(mustExist bool) func(string) error {
	return func(path string) error {
		if path == "" {
			return fmt.Errorf("file path cannot be empty")
		}
		if mustExist {
			if _, err := os.Stat(path); os.IsNotExist(err) {
				return fmt.Errorf("file does not exist: %s", path)
			} else if err != nil {
				return fmt.Errorf("cannot access file %s: %v", path, err)
			}
		}
		return nil
	}
}

// ValidateDir creates a validation function for directory paths
func ValidateDir(mustExist bool) func(string) error {
	return func(path string) error {
		if path == "" {
			return fmt.Errorf("directory path cannot be empty")
		}
		if mustExist {
			info, err := os.Stat(path)
			if os.IsNotExist(err) {
				return fmt.Errorf("directory does not exist: %s", path)
			} else if err != nil {
				return fmt.Errorf("cannot access directory %s: %v", path, err)
			} else if !info.IsDir() {
				return fmt.Errorf("path is not a directory: %s", path)
			}
		}
		return nil
	}
}

// ValidateRegex creates a validation function that validates strings against a regex pattern
func ValidateRegex(pattern string) func(string) error {
	// Compile the regex once during function creation
	regex, err := regexp.Compile(pattern)
	if err != nil {
		// Return a function that always returns this compilation error
		return func(string) error {
			return fmt.Errorf("invalid regex pattern '%s': %v", pattern, err)
		}
	}

	return func(value string) error {
		if !regex.MatchString(value) {
			return fmt.Errorf("value '%s' does not match pattern '%s'", value, pattern)
		}
		return nil
	}
}

// ValidateOneOf creates a validation function that ensures the value is one of the allowed values
func ValidateOneOf[T comparable](values ...T) func(T) error {
	return func(value T) error {
		for _, v := range values {
			if value == v {
				return nil
			}
		}
		return fmt.Errorf("value %v is not one of the allowed values: %v", value, values)
	}
}

// ValidateRange creates a validation function that keeps the value within
// the inclusive bounds.
func ValidateRange[T ordered](min, max T) func(T) error {
	return func(value T) error {
		if value < min || value > max {
			return fmt.Errorf("value %v is out of range [%v, %v]", value, min, max)
		}
		return nil
	}
}
