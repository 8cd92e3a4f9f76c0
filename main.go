package main

import "github.com/frahmantamala/review-marketplace/cmd"

func main() {
	cmd.Execute()
}
