package cli

import (
	"fmt"
	"io"
)

func Help(program string, stdout io.Writer) {
	Version(stdout)
	fmt.Fprintf(stdout, "Usage: \"%s [-Options...] FileName1 [Filename2...]\"\n", program)
	fmt.Fprintln(stdout, "")
	fmt.Fprintln(stdout, "Options:")
	fmt.Fprintln(stdout, "--Help, -h")
	fmt.Fprintln(stdout, "                    Display this help and exit")
	fmt.Fprintln(stdout, "--Version")
	fmt.Fprintln(stdout, "                    Display version information and exit")
	fmt.Fprintln(stdout, "--Help-Output")
	fmt.Fprintln(stdout, "                    Display help for Output= option")
	fmt.Fprintln(stdout, "")
	fmt.Fprintln(stdout, "--Output=TEXT|JSON")
	fmt.Fprintln(stdout, "                    Select output format (default TEXT)")
	fmt.Fprintln(stdout, "--LogFile=...")
	fmt.Fprintln(stdout, "                    Save the output in the specified file")
	fmt.Fprintln(stdout, "--Budget=SIZE")
	fmt.Fprintln(stdout, "                    Maximum bytes scanned from the start of each file (default 2M)")
	fmt.Fprintln(stdout, "--Timeout=DURATION")
	fmt.Fprintln(stdout, "                    Abort a probe after DURATION, e.g. 5s (default none)")
	fmt.Fprintln(stdout, "--Trailing-GOP")
	fmt.Fprintln(stdout, "                    Report the time code of the last GOP near the end of the file")
	fmt.Fprintln(stdout, "--Jobs=N")
	fmt.Fprintln(stdout, "                    Number of files probed in parallel (default: number of CPUs)")
	fmt.Fprintln(stdout, "--Debug")
	fmt.Fprintln(stdout, "                    Log scan details to stderr (also enabled by DEBUG=1)")
	fmt.Fprintln(stdout, "")
	fmt.Fprintln(stdout, "Commands:")
	fmt.Fprintln(stdout, "completion           Generate the autocompletion script for the specified shell")
	fmt.Fprintln(stdout, "help                 Help about any command")
	fmt.Fprintln(stdout, "version              Print go-mpegprobe version information")
	fmt.Fprintln(stdout, "update               Update mpegprobe to latest version (release builds only)")
}

func HelpNothing(program string, stdout io.Writer) {
	fmt.Fprintf(stdout, "Usage: \"%s [-Options...] FileName1 [Filename2...]\"\n", program)
	fmt.Fprintf(stdout, "\"%s --help\" for displaying more information\n", program)
}

func HelpOutput(program string, stdout io.Writer) {
	fmt.Fprintln(stdout, "--Output=...  Select an output format")
	fmt.Fprintf(stdout, "Usage: \"%s --Output=JSON FileName\"\n", program)
	fmt.Fprintln(stdout, "")
	fmt.Fprintln(stdout, "Supported formats:")
	fmt.Fprintln(stdout, "TEXT, JSON")
}

func Usage(program string, stdout io.Writer) int {
	HelpNothing(program, stdout)
	return exitError
}
