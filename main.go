package main

import "github.com/roobyn/sap-bi/cmd"

func main() {
	cmd.Execute()
}
