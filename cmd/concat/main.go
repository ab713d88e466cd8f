// Command concat prints the concatenation of its two arguments.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/golang/glog"

	"github.com/sonic-net/sonic-gnmi/concat-standalone/pkg/concat"
)

var sep = flag.String("sep", "", "separator placed between the two arguments")

func main() {
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [-sep s] <first> <second>\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()
	defer glog.Flush()

	if err := run(os.Stdout, flag.Args(), *sep); err != nil {
		fmt.Fprintf(os.Stderr, "concat: %v\n", err)
		flag.Usage()
		glog.Flush()
		os.Exit(2)
	}
}

func run(w io.Writer, args []string, sep string) error {
	if len(args) != 2 {
		return fmt.Errorf("expected 2 arguments, got %d", len(args))
	}

	result := concat.Concatenate(args[0], args[1])
	if sep != "" {
		result = concat.ConcatenateWith(args[0], sep, args[1])
	}
	glog.V(2).Infof("Concatenated %d and %d bytes into %d", len(args[0]), len(args[1]), len(result))

	_, err := fmt.Fprintln(w, result)
	return err
}
