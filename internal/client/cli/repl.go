package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// printlnFn is a test seam for REPL output.
var printlnFn = fmt.Println

// execIface is the command surface the REPL drives. App implements it;
// tests use a recording stub.
type execIface interface {
	Add(ctx context.Context) error
	Scan(ctx context.Context) error
	List(ctx context.Context) error
	Search(ctx context.Context, term string) error
	Delete(ctx context.Context, id string) error
	Dashboard(ctx context.Context) error
	Backup(ctx context.Context) error
	Restore(ctx context.Context) error
	Settings(ctx context.Context, args []string) error
	Export(ctx context.Context, path string) error
}

const helpText = `Available commands:
  add                 add a product by hand
  scan                scan a barcode, then fill in the product
  (l)ist              list all products with warranty status
  search <text>       find products by name or serial number
  delete <id>         delete a product
  dash                show active/expired counts and recent products
  backup              upload all products to the backup server
  restore             replace local products with the server backup
  settings [url|user <value>]
                      show or change backup settings
  export <file.csv>   write all products to a CSV file
  exit | quit         leave the program`

// runREPL reads one command per line and dispatches it to a. It returns on
// end of input, on "exit"/"quit", or when ctx is cancelled. Command errors
// are reported to the user and never end the loop.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		if ctx.Err() != nil {
			return
		}
		printlnFn(fmt.Sprintf("wg%s> ", statusFn()))

		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]
		rest := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), cmd))

		var cmdErr error
		switch cmd {
		case "help", "h", "?":
			printlnFn(helpText)
		case "add":
			cmdErr = a.Add(ctx)
		case "scan":
			cmdErr = a.Scan(ctx)
		case "l", "list":
			cmdErr = a.List(ctx)
		case "search", "find":
			cmdErr = a.Search(ctx, rest)
		case "delete", "rm":
			if len(args) != 1 {
				printlnFn("Usage: delete <id>")
				continue
			}
			cmdErr = a.Delete(ctx, args[0])
		case "dash", "dashboard":
			cmdErr = a.Dashboard(ctx)
		case "backup":
			cmdErr = a.Backup(ctx)
		case "restore":
			cmdErr = a.Restore(ctx)
		case "settings":
			cmdErr = a.Settings(ctx, args)
		case "export":
			if rest == "" {
				printlnFn("Usage: export <file.csv>")
				continue
			}
			cmdErr = a.Export(ctx, rest)
		case "exit", "quit":
			printlnFn("Bye!")
			return
		default:
			printlnFn("Unknown command:", cmd)
		}

		if cmdErr != nil {
			printlnFn(describeError(cmdErr))
		}

		if errors.Is(err, io.EOF) {
			return
		}
	}
}
