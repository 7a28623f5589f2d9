package main

import "movies-app/cmd"

func main() {
	cmd.Execute()
}
