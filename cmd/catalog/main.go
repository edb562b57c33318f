package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/jhoicas/Catalogo-atributos/internal/interfaces/cli"
)

func main() {
	// SIGINT/SIGTERM cancelan el contexto: la transacción en curso se descarta y el almacén se cierra.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := cli.Execute(ctx, os.Args[1:], cli.Options{})
	stop()
	os.Exit(code)
}
