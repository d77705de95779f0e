package core

import (
	"testing"

	"go.uber.org/goleak"
)

// CleanAll must not leave workers behind, even when a library fails.
func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}
