package console

import (
	"fmt"
	"sort"
	"strings"
)

const (
	helpHeader   = "Documented commands (type help <topic>):"
	displayWidth = 80
)

func (c *Console) doHelp(arg string) (bool, error) {
	if arg != "" {
		if cmd, ok := c.commands[arg]; ok && cmd.help != "" {
			fmt.Fprintln(c.out, cmd.help)
		} else {
			fmt.Fprintf(c.out, "*** No help on %s\n", arg)
		}
		return false, nil
	}

	names := make([]string, 0, len(c.commands))
	for name := range c.commands {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Fprintln(c.out)
	fmt.Fprintln(c.out, helpHeader)
	fmt.Fprintln(c.out, strings.Repeat("=", len(helpHeader)))
	for _, row := range columnize(names, displayWidth) {
		fmt.Fprintln(c.out, row)
	}
	fmt.Fprintln(c.out)
	return false, nil
}

// columnize lays words out column-major in the fewest rows that fit width,
// separating columns with two spaces.
func columnize(words []string, width int) []string {
	if len(words) == 0 {
		return []string{"<empty>"}
	}

	nrows, colWidths := len(words), []int(nil)
	for rows := 1; rows <= len(words); rows++ {
		ncols := (len(words) + rows - 1) / rows
		widths := make([]int, 0, ncols)
		total := -2
		for col := 0; col < ncols; col++ {
			w := 0
			for row := 0; row < rows; row++ {
				if i := row + rows*col; i < len(words) && len(words[i]) > w {
					w = len(words[i])
				}
			}
			widths = append(widths, w)
			total += w + 2
		}
		if total <= width || rows == len(words) {
			nrows, colWidths = rows, widths
			break
		}
	}

	lines := make([]string, 0, nrows)
	for row := 0; row < nrows; row++ {
		var cells []string
		for col := range colWidths {
			if i := row + nrows*col; i < len(words) {
				cells = append(cells, words[i])
			}
		}
		for i := 0; i < len(cells)-1; i++ {
			cells[i] += strings.Repeat(" ", colWidths[i]-len(cells[i]))
		}
		lines = append(lines, strings.Join(cells, "  "))
	}
	return lines
}
