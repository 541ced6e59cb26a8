package main

import "github.com/skmalhotra72/MediBridge24x7-DotCom-Main-App-sub001/cmd"

func main() {
	cmd.Execute()
}
