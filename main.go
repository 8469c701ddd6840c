package main

import "meditation-backend/cmd"

func main() {
	cmd.Execute()
}
