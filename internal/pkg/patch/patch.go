package patch

// Coalesce returns the value pointed to by ptr if it's not nil, otherwise returns fallback
func Coalesce[T any](ptr *T, fallback T) T {
	if ptr != nil {
		return *ptr
	}
	return fallback
}

// NonEmpty returns nil for nil or blank-after-trim pointers, keeping the trimmed value otherwise.
func NonEmpty(s *string, trim func(string) string) *string {
	if s == nil {
		return nil
	}
	v := trim(*s)
	if v == "" {
		return nil
	}
	return &v
}
