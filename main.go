package main

import "github.com/medalytics/medalytics-cli/cmd"

func main() {
	cmd.Execute()
}
