// Command petctl es un cliente de línea de comandos para la API de mascotas.
//
//	petctl [-api URL] [-token T] <comando> [flags]
//
// Comandos: register, login, me, logout, list, get, create, update, delete.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
