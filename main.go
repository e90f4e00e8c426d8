package main

import "github.com/buildsy/buildsy-backend/cmd"

func main() {
	cmd.Execute()
}
