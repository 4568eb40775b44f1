package main

import "github.com/sueun-dev/polymarket-alpha-lab-sub001/cmd"

func main() {
	cmd.Execute()
}
