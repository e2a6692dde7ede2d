// Command ixview renders IX agent task transcripts in the terminal.
package main

import "github.com/diogo/ixview/internal/commands"

func main() {
	commands.Execute()
}
