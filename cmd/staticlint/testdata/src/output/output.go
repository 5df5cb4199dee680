package output

import (
	"fmt"
	"io"
	"os"
)

func Write(w io.Writer) {
	fmt.Println("page") // want "fmt.Println пишет в stdout"
	fmt.Printf("%d", 1) // want "fmt.Printf пишет в stdout"
	fmt.Fprintln(w, "page")
	fmt.Fprintln(os.Stdout, "page") // want "использование os.Stdout вне пакета main"
	_, _ = fmt.Fprintln(os.Stderr, "log")
}
