package main

import "github.com/MeKo-Tech/textspot/cmd/textspot/cmd"

func main() {
	cmd.Execute()
}
