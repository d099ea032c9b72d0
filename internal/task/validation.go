package task

// ValidateTitle only checks that a title was given. Whitespace is kept as
// submitted.
func ValidateTitle(title string) (string, error) {
	if title == "" {
		return "", ErrEmptyTitle
	}
	return title, nil
}
