package main

import "github.com/dalemusser/fresherlink/internal/app/ctl"

func main() {
	ctl.Execute()
}
