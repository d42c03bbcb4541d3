package main

import "github.com/inovacc/sweepr/cmd"

func main() {
	cmd.Execute()
}
