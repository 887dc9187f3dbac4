// Trellis is a terminal dashboard for Kanban boards.
package main

func main() {
	Execute()
}
