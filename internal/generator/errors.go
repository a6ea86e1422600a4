package generator

import "fmt"

// NoTemplatesError indicates the template catalog is empty.
type NoTemplatesError struct{}

func (e *NoTemplatesError) Error() string {
	return "generate error: template catalog is empty"
}

// UnknownCategoryError indicates a placeholder referenced a category
// that does not exist in the word bank.
type UnknownCategoryError struct {
	Category string
}

func (e *UnknownCategoryError) Error() string {
	return fmt.Sprintf("generate error: unknown category %q", e.Category)
}

// EmptyCategoryError indicates a placeholder resolved to a category
// whose word list is empty.
type EmptyCategoryError struct {
	Category string
}

func (e *EmptyCategoryError) Error() string {
	return fmt.Sprintf("generate error: category %q has no words", e.Category)
}
