package main

import (
	"github.com/asistencia/asistencia-deploy/cmd/asistencia-deploy/cmd"
)

func main() {
	cmd.Execute()
}
