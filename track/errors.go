package track

import "fmt"

// ConfigurationError reports a broken asset: a malformed path, an unknown
// effect kind or an unreadable track descriptor. It is fatal for race setup.
type ConfigurationError struct {
	Op   string
	Name string
	Err  error
}

func (e *ConfigurationError) Error() string {
	if e.Name == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s %q: %v", e.Op, e.Name, e.Err)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}
