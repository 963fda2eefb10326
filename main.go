package main

import "github.com/Ning0612/fdname/cmd"

func main() {
	cmd.Execute()
}
