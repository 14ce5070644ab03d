package notify

import (
	"fmt"
	"io"

	"go.uber.org/zap"
)

// Notifier é a camada de avisos ao usuário: todo desfecho visível passa
// por aqui, nunca por prints espalhados nos controladores.
type Notifier interface {
	Sucesso(mensagem string)
	Erro(mensagem string)
}

// Console escreve banners no terminal e espelha no log estruturado.
type Console struct {
	out io.Writer
	log *zap.Logger
}

func NewConsole(out io.Writer, log *zap.Logger) *Console {
	return &Console{out: out, log: log}
}

func (c *Console) Sucesso(mensagem string) {
	fmt.Fprintf(c.out, "✅ %s\n", mensagem)
	c.log.Info("notification", zap.String("tipo", "sucesso"), zap.String("mensagem", mensagem))
}

func (c *Console) Erro(mensagem string) {
	fmt.Fprintf(c.out, "⚠️  %s\n", mensagem)
	c.log.Warn("notification", zap.String("tipo", "erro"), zap.String("mensagem", mensagem))
}
