package main

import (
	"fmt"
	"os"
)

func main() {
	fmt.Println("stdout is fine in main")
	defer fmt.Println("skipped")
	os.Exit(1) // want "использование os.Exit в main-функции"
}

func helper() {
	os.Exit(2)
}
