package entry

// InvalidArgumentError reports a rejected factory or mutator input.
type InvalidArgumentError struct {
	Field   string
	Message string
}

func (e *InvalidArgumentError) Error() string {
	return "invalid argument " + e.Field + ": " + e.Message
}
