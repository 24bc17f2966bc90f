package diff

import "strings"

// CountLineChanges calculates the number of added and deleted lines in a
// unified diff. File headers (+++/---) are not counted.
// returns: addedLines, deletedLines, totalLines
func CountLineChanges(diffContent string) (int, int, int) {
	addedLines := 0
	deletedLines := 0
	for _, line := range strings.Split(diffContent, "\n") {
		switch {
		case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"):
		case strings.HasPrefix(line, "+"):
			addedLines++
		case strings.HasPrefix(line, "-"):
			deletedLines++
		}
	}
	return addedLines, deletedLines, addedLines + deletedLines
}
