package main

import "github.com/musliminonesmart/Gasspoll-Matika/cmd/gpm/root"

func main() {
	root.Execute()
}
