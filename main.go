package main

import "github.com/ValentinKolb/dBookstore/cmd"

func main() {
	cmd.Execute()
}
