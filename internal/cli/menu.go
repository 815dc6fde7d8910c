package cli

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"strings"
)

var menuItems = []string{
	"Latest summary",
	"Peaks and troughs",
	"Generate charts",
	"Export dataset",
	"Exit",
}

func (a *app) printMenu() {
	writeLine(a.out, "")
	writeLine(a.out, "Dwellings commenced")
	for i, item := range menuItems {
		writeLine(a.out, "  %d) %s", i+1, item)
	}
}

// menu loops until Exit or end of input. Action errors are reported and
// the menu is shown again, except a failed load, which ends the session.
func (a *app) menu(ctx context.Context) error {
	if _, err := a.load(ctx); err != nil {
		return err
	}

	scanner := bufio.NewScanner(a.in)
	a.printMenu()
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		fmt.Fprintf(a.out, "Select an option (1-%d): ", len(menuItems))
		if !scanner.Scan() {
			return scanner.Err()
		}

		var err error
		switch strings.TrimSpace(scanner.Text()) {
		case "1":
			err = a.summary(ctx, false)
		case "2":
			err = a.peaks(ctx)
		case "3":
			_, err = a.charts(ctx, "")
		case "4":
			_, err = a.export(ctx, "")
		case "5", "q", "exit":
			writeLine(a.out, "Goodbye.")
			return nil
		default:
			writeLine(a.out, "Invalid choice, please enter a number from 1 to %d.", len(menuItems))
			continue
		}

		if err != nil {
			a.logger.ErrorContext(ctx, "Menu action failed", slog.String("error", err.Error()))
			writeLine(a.errOut, "Error: %v", err)
		}
		a.printMenu()
	}
}
