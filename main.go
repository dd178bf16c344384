package main

import "github.com/praveen001/trailmap/cmd"

func main() {
	cmd.Execute()
}
