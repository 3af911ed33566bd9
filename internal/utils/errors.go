package utils

import (
	"fmt"
	"os"
)

func Error(msg string) {
	fmt.Fprintf(os.Stderr, "error: %s\n", msg)
}

func Warning(msg string) {
	fmt.Fprintf(os.Stderr, "warning: %s\n", msg)
}
