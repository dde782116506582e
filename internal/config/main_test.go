package config

import (
	"io"
	"os"
	"testing"

	"bizlink/pkg/logging"
)

func TestMain(m *testing.M) {
	logging.InitForCLI(logging.LevelError, io.Discard)
	os.Exit(m.Run())
}
