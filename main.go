package main

import "zotcurator/cmd"

func main() {
	cmd.Execute()
}
