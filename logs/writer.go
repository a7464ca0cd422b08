package logs

import (
	"fmt"
	"io"
	"os"

	"github.com/reusee/mailx/cmds"
)

// Writer receives the text handler output.
type Writer io.Writer

var logFileFlag = cmds.Var[string]("-log-file")

// Writer is stderr, teed to the file named by -log-file when set.
func (Module) Writer() Writer {
	if *logFileFlag == "" {
		return os.Stderr
	}
	f, err := os.OpenFile(*logFileFlag, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open log file: %v\n", err)
		return os.Stderr
	}
	return io.MultiWriter(os.Stderr, f)
}
