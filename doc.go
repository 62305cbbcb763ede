/*
Package batticon renders the battery percentage icon shown in the system tray.

Each icon is a 44x44 pixel square holding the percentage as a bold numeral.
Above 50% the icon is a template image: an opaque square with the digits cut
out, which the host is free to re-tint for the light or dark menu bar. At 50%
and below the icon is drawn in color, amber down to 21% and red from 20%,
with the digits in white.

The package provides a command line interface which renders single icons,
contact sheets of all the percentages, or runs the tray indicator itself.
To check the supported commands type:

	$ batticon --help

In case you wish to integrate the API in a self constructed environment here is a simple example:

	package main

	import (
		"fmt"
		"os"

		"github.com/esimov/batticon"
	)

	func main() {
		r := batticon.NewRenderer(batticon.EmbeddedFont{})

		icon, err := r.Render(75)
		if err != nil {
			fmt.Printf("Error rendering the icon: %s", err.Error())
			return
		}
		os.WriteFile("battery.png", icon, 0644)
	}
*/
package batticon
