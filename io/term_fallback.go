package snapio

import (
	"os"
	"strconv"
)

// fallbackTermSizeFromEnv reads $COLUMNS and $LINES for environments where
// the output is not a terminal (CI logs, pagers).
func fallbackTermSizeFromEnv() (int, int) {
	return envInt("COLUMNS"), envInt("LINES")
}

func envInt(name string) int {
	v, err := strconv.Atoi(os.Getenv(name))
	if err != nil || v < 0 {
		return 0
	}
	return v
}
