package main

import "github.com/LegacyCodeHQ/tsdeps/cmd"

func main() {
	cmd.Execute()
}
