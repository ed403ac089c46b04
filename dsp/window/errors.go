package window

import "fmt"

func validateName(name string) error {
	return fmt.Errorf("unknown window %q", name)
}
