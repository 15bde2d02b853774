package cli

import (
	"os"
	"time"
)

var fixedGenTime = time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)

func writeFile(path, body string) error {
	return os.WriteFile(path, []byte(body), 0o644)
}
