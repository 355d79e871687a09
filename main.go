package main

import "github.com/demanddesk/api/cmd"

func main() {
	cmd.Execute()
}
