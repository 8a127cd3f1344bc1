package utils

import (
	"fmt"
	"os"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
)

func Ternary(cond bool, a, b any) any {
	if cond {
		return a
	}
	return b
}

// ArrayContains checks if an element exists in the array based on the
// custom check function; also doubles as a for-each when check always
// returns false.
func ArrayContains[T any](array []T, check func(elem T) bool) (int, bool) {
	for idx, elem := range array {
		if check(elem) {
			return idx, true
		}
	}

	return -1, false
}

func ForEach[T any](array []T, fn func(elem T) error) error {
	for _, elem := range array {
		if err := fn(elem); err != nil {
			return err
		}
	}

	return nil
}

// UnmarshalFile reads a JSON document from file into the object
func UnmarshalFile(file string, obj any) error {
	data, err := os.ReadFile(file)
	if err != nil {
		return fmt.Errorf("failed to read file %s: %s", file, err)
	}

	if err := json.Unmarshal(data, obj); err != nil {
		return fmt.Errorf("failed to unmarshal file %s: %s", file, err)
	}

	return nil
}

func IsValidSubcommand(available []*cobra.Command, sub string) bool {
	_, found := ArrayContains(available, func(cmd *cobra.Command) bool {
		return cmd.Use == sub
	})

	return found
}

func Pointer[T any](value T) *T {
	return &value
}
