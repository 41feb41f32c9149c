package main

import "github.com/gaurav-prasanna/a11ypipe/cmd"

func main() {
	cmd.Execute()
}
