package main

import (
	"github.com/faiface/pixel/pixelgl"

	"github.com/go-chippy/chippy/cmd"
)

func main() {
	// pixelgl needs access to the main thread, so cobra's command tree
	// runs from inside pixelgl.Run even for subcommands (version, --tui)
	// that never open a window.
	pixelgl.Run(cmd.Execute)
}
