package cli

import "fmt"

type tagInUseError struct {
	name      string
	postCount int
}

func (e tagInUseError) Error() string {
	return fmt.Sprintf("tag %q is attached to %d post(s); remove it from those posts first", e.name, e.postCount)
}

type selfAccountError struct {
	action string
}

func (e selfAccountError) Error() string {
	return fmt.Sprintf("refusing to %s your own account", e.action)
}
