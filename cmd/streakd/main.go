package main

import "github.com/sandeepkv93/streakd/internal/cli"

func main() {
	cli.Execute()
}
